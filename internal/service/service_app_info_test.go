package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "semver", version: "1.0.0"},
		{name: "pre-release with build", version: "v1.2.3-beta+build.42"},
		{name: "empty version", version: "", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.ServerApp{Version: tt.version}, logger.Nop())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestAppInfoService_ClientVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.ServerApp{Version: "1.0.0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// версия протокола не зависит от контекста
	assert.Equal(t, taskProtocolVersion, svc.ClientVersion(ctx))
	assert.Equal(t, int64(1), svc.ClientVersion(context.Background()))
}
