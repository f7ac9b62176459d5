// Package resolver extracts a usable media URL from an asset record.
//
// Generation providers deliver results in several coexisting payload shapes:
// a canonical column, an array column, and URLs nested at various depths
// inside the free-form metadata and raw API-response blobs. New completions
// are normalized into the canonical column at ingestion time; the resolver
// covers rows written before normalization existed and any provider shape
// the normalizer does not know about.
package resolver

import (
	"strings"

	"github.com/tidwall/gjson"

	"ugc-ads-backend/internal/models"
)

// metadataPaths are probed against the asset's metadata blob, in order.
// Both camelCase and snake_case namings occur in the wild.
var metadataPaths = []string{
	"result_url",
	"resultUrl",
	"video_url",
	"videoUrl",
	"image_url",
	"imageUrl",
	"resultUrls.0",
	"output.url",
}

// apiResponsePaths are probed against the raw provider response blob.
var apiResponsePaths = []string{
	"data.resultUrls.0",
	"data.result_urls.0",
	"data.response.resultUrls.0",
	"data.output.url",
	"url",
}

// MediaURL returns the first non-empty trimmed string found among the
// candidate locations, highest priority first. It returns "" when no
// candidate yields one. No scheme validation is performed: a ready asset
// with no resolvable URL is a legitimate state the caller must surface
// explicitly.
func MediaURL(a *models.MediaAsset) string {
	if a == nil {
		return ""
	}

	if u := strings.TrimSpace(a.ResultURL.String); u != "" {
		return u
	}
	for _, u := range a.ResultURLs {
		if u = strings.TrimSpace(u); u != "" {
			return u
		}
	}

	if len(a.Metadata) > 0 {
		if u := firstMatch(string(a.Metadata), metadataPaths); u != "" {
			return u
		}
	}
	if len(a.APIResponse) > 0 {
		if u := firstMatch(string(a.APIResponse), apiResponsePaths); u != "" {
			return u
		}
	}

	return ""
}

// URLMissing reports the "ready but no URL" condition.
func URLMissing(a *models.MediaAsset) bool {
	return a != nil && a.Status == models.StatusReady && MediaURL(a) == ""
}

func firstMatch(blob string, paths []string) string {
	if !gjson.Valid(blob) {
		return ""
	}
	for _, path := range paths {
		if v := gjson.Get(blob, path); v.Type == gjson.String {
			if u := strings.TrimSpace(v.Str); u != "" {
				return u
			}
		}
	}
	return ""
}
