package resolver_test

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"ugc-ads-backend/internal/models"
	"ugc-ads-backend/internal/resolver"
)

func TestMediaURL_CanonicalColumnWins(t *testing.T) {
	asset := &models.MediaAsset{
		ResultURL:   sql.NullString{String: "https://cdn.test/canonical.mp4", Valid: true},
		ResultURLs:  []string{"https://cdn.test/array.mp4"},
		Metadata:    json.RawMessage(`{"result_url":"https://cdn.test/meta.mp4"}`),
		APIResponse: json.RawMessage(`{"data":{"resultUrls":["https://cdn.test/api.mp4"]}}`),
	}

	assert.Equal(t, "https://cdn.test/canonical.mp4", resolver.MediaURL(asset))
}

func TestMediaURL_ArrayBeforeMetadata(t *testing.T) {
	asset := &models.MediaAsset{
		ResultURLs: []string{"", "  ", "https://cdn.test/array.mp4"},
		Metadata:   json.RawMessage(`{"result_url":"https://cdn.test/meta.mp4"}`),
	}

	assert.Equal(t, "https://cdn.test/array.mp4", resolver.MediaURL(asset))
}

func TestMediaURL_MetadataPathOrder(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
		want     string
	}{
		{"snake case result_url", `{"result_url":"https://cdn.test/a.png"}`, "https://cdn.test/a.png"},
		{"camel case resultUrl", `{"resultUrl":"https://cdn.test/b.png"}`, "https://cdn.test/b.png"},
		{"video url", `{"video_url":"https://cdn.test/c.mp4"}`, "https://cdn.test/c.mp4"},
		{"image url", `{"imageUrl":"https://cdn.test/d.png"}`, "https://cdn.test/d.png"},
		{"first of resultUrls", `{"resultUrls":["https://cdn.test/e.png","https://cdn.test/f.png"]}`, "https://cdn.test/e.png"},
		{"nested output", `{"output":{"url":"https://cdn.test/g.png"}}`, "https://cdn.test/g.png"},
		{"result_url beats video_url", `{"video_url":"https://cdn.test/lo.mp4","result_url":"https://cdn.test/hi.png"}`, "https://cdn.test/hi.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := &models.MediaAsset{Metadata: json.RawMessage(tt.metadata)}
			assert.Equal(t, tt.want, resolver.MediaURL(asset))
		})
	}
}

func TestMediaURL_APIResponseFallback(t *testing.T) {
	asset := &models.MediaAsset{
		Metadata:    json.RawMessage(`{"source":"kie"}`),
		APIResponse: json.RawMessage(`{"data":{"response":{"resultUrls":["https://cdn.test/deep.mp4"]}}}`),
	}

	assert.Equal(t, "https://cdn.test/deep.mp4", resolver.MediaURL(asset))
}

func TestMediaURL_NonStringCandidateSkipped(t *testing.T) {
	asset := &models.MediaAsset{
		Metadata:    json.RawMessage(`{"result_url":42}`),
		APIResponse: json.RawMessage(`{"url":"https://cdn.test/fallback.png"}`),
	}

	assert.Equal(t, "https://cdn.test/fallback.png", resolver.MediaURL(asset))
}

func TestMediaURL_InvalidJSONIgnored(t *testing.T) {
	asset := &models.MediaAsset{
		Metadata: json.RawMessage(`{"result_url": truncated`),
	}

	assert.Equal(t, "", resolver.MediaURL(asset))
}

func TestMediaURL_NoCandidates(t *testing.T) {
	assert.Equal(t, "", resolver.MediaURL(&models.MediaAsset{}))
	assert.Equal(t, "", resolver.MediaURL(nil))
}

func TestURLMissing(t *testing.T) {
	ready := &models.MediaAsset{Status: models.StatusReady}
	assert.True(t, resolver.URLMissing(ready))

	readyWithURL := &models.MediaAsset{
		Status:    models.StatusReady,
		ResultURL: sql.NullString{String: "https://cdn.test/ok.png", Valid: true},
	}
	assert.False(t, resolver.URLMissing(readyWithURL))

	// Only ready assets can be url-missing; processing and error are not.
	assert.False(t, resolver.URLMissing(&models.MediaAsset{Status: models.StatusProcessing}))
	assert.False(t, resolver.URLMissing(&models.MediaAsset{Status: models.StatusError}))
}
