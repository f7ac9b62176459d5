package late_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"ugc-ads-backend/internal/late"
	"ugc-ads-backend/internal/provider"
)

func TestClient_CreatePost(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/posts", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"post-1","platforms":[{"platform":"tiktok","platformPostUrl":"https://tiktok.com/@u/video/1"}]}`))
	}))
	defer server.Close()

	client := late.NewClient(server.URL, "test-key")
	result, err := client.CreatePost(late.PostRequest{
		Platform:  "tiktok",
		Caption:   "new drop",
		MediaURL:  "https://cdn.test/out.mp4",
		MediaType: "video",
	})

	assert.NoError(t, err)
	assert.Equal(t, "post-1", result.PostID)
	assert.Equal(t, "https://tiktok.com/@u/video/1", result.PostURL)

	platforms, ok := gotBody["platforms"].([]any)
	assert.True(t, ok)
	assert.Len(t, platforms, 1)
	assert.Equal(t, "new drop", gotBody["content"])
	_, scheduled := gotBody["scheduledFor"]
	assert.False(t, scheduled)
}

func TestClient_CreatePost_ScheduleSentAsUTC(t *testing.T) {
	var gotScheduledFor string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotScheduledFor, _ = body["scheduledFor"].(string)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"post-2"}`))
	}))
	defer server.Close()

	// 09:30 at UTC-7 must cross the wire as 16:30Z.
	loc := time.FixedZone("PDT", -7*3600)
	scheduled := time.Date(2026, 9, 1, 9, 30, 0, 0, loc)

	client := late.NewClient(server.URL, "test-key")
	result, err := client.CreatePost(late.PostRequest{
		Platform:     "instagram",
		Caption:      "scheduled drop",
		MediaURL:     "https://cdn.test/out.png",
		MediaType:    "image",
		ScheduledFor: scheduled,
	})

	assert.NoError(t, err)
	assert.Equal(t, "post-2", result.PostID)
	assert.Equal(t, "2026-09-01T16:30:00Z", gotScheduledFor)

	parsed, err := time.Parse(time.RFC3339, gotScheduledFor)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(scheduled))
}

func TestClient_CreatePost_NestedPostID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"post":{"_id":"nested-id"}}`))
	}))
	defer server.Close()

	client := late.NewClient(server.URL, "test-key")
	result, err := client.CreatePost(late.PostRequest{
		Platform: "youtube",
		MediaURL: "https://cdn.test/out.mp4",
	})

	assert.NoError(t, err)
	assert.Equal(t, "nested-id", result.PostID)
}

func TestClient_CreatePost_ProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"platform not connected"}`))
	}))
	defer server.Close()

	client := late.NewClient(server.URL, "test-key")
	_, err := client.CreatePost(late.PostRequest{
		Platform: "tiktok",
		MediaURL: "https://cdn.test/out.mp4",
	})

	var provErr *provider.ProviderError
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusUnprocessableEntity, provErr.StatusCode)
}

func TestClient_CreatePost_NoAPIKey(t *testing.T) {
	client := late.NewClient("https://getlate.dev/api/", "")
	_, err := client.CreatePost(late.PostRequest{Platform: "tiktok", MediaURL: "https://cdn.test/out.mp4"})

	assert.ErrorIs(t, err, provider.ErrMissingCredential)
}

func TestClient_CreatePost_MissingPostID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := late.NewClient(server.URL, "test-key")
	_, err := client.CreatePost(late.PostRequest{Platform: "tiktok", MediaURL: "https://cdn.test/out.mp4"})

	var malformed *provider.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}
