// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithUserID(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
	}{
		{"regular id", 42},
		{"zero id", 0},
		{"negative id", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithUserID(context.Background(), tt.userID)

			got, ok := GetUserIDFromContext(ctx)

			assert.True(t, ok)
			assert.Equal(t, tt.userID, got)
		})
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	got, ok := GetUserIDFromContext(context.Background())

	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestGetUserIDFromContext_ForeignKey(t *testing.T) {
	// строковый ключ с тем же значением не должен совпадать с ключом пакета
	ctx := context.WithValue(context.Background(), "userID", int64(42))

	_, ok := GetUserIDFromContext(ctx)

	assert.False(t, ok)
}

func TestWithUserID_Overrides(t *testing.T) {
	ctx := WithUserID(context.Background(), 1)
	ctx = WithUserID(ctx, 2)

	got, ok := GetUserIDFromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, int64(2), got)
}
