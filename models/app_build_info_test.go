package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("v1.2.0", "2026-10-01", "abc123")

	assert.Equal(t, "v1.2.0", info.BuildVersion())
	assert.Equal(t, "2026-10-01", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
	assert.Equal(t, "Build version: v1.2.0\nBuild date: 2026-10-01\nBuild commit: abc123\n", info.String())
}

func TestNewAppBuildInfo_EmptyValues(t *testing.T) {
	info := NewAppBuildInfo("", "", "")

	assert.Equal(t, "N/A", info.BuildVersion())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "N/A", info.BuildCommit())
}
