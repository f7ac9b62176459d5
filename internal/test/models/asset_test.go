package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ugc-ads-backend/internal/models"
)

func TestMediaAsset_Retryable(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		retryCount int
		want       bool
	}{
		{"failed with budget left", models.StatusError, 0, true},
		{"failed at last attempt", models.StatusError, models.MaxRetryAttempts - 1, true},
		{"failed with budget exhausted", models.StatusError, models.MaxRetryAttempts, false},
		{"ready is never retryable", models.StatusReady, 0, false},
		{"processing is never retryable", models.StatusProcessing, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := &models.MediaAsset{Status: tt.status, RetryCount: tt.retryCount}
			assert.Equal(t, tt.want, asset.Retryable())
		})
	}
}

func TestMediaAsset_IsVideo(t *testing.T) {
	video := &models.MediaAsset{Provider: models.ProviderKieVeo}
	assert.True(t, video.IsVideo())

	for _, p := range []string{models.ProviderGemini, models.ProviderKieFlux, models.ProviderKie4o} {
		image := &models.MediaAsset{Provider: p}
		assert.False(t, image.IsVideo(), p)
	}
}
