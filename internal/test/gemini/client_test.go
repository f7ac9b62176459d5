package gemini_test

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"ugc-ads-backend/internal/gemini"
	"ugc-ads-backend/internal/provider"
)

func TestClient_GenerateImage(t *testing.T) {
	imageBytes := []byte{0x89, 0x50, 0x4e, 0x47}
	encoded := base64.StdEncoding.EncodeToString(imageBytes)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash-image:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"%s"}}]}}]}`, encoded)
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "gemini-2.5-flash-image")
	result, err := client.GenerateImage("a corgi surfing at sunset")

	assert.NoError(t, err)
	assert.Equal(t, imageBytes, result.Data)
	assert.Equal(t, "image/png", result.MimeType)
	assert.Equal(t, "gemini-2.5-flash-image", result.Model)
	assert.Equal(t, "a corgi surfing at sunset", result.Prompt)
	assert.False(t, result.GeneratedAt.IsZero())
}

func TestClient_GenerateImage_NoAPIKey(t *testing.T) {
	client := gemini.NewClient("https://generativelanguage.googleapis.com/v1beta/", "", "gemini-2.5-flash-image")
	_, err := client.GenerateImage("prompt")

	assert.ErrorIs(t, err, provider.ErrMissingCredential)
}

func TestClient_GenerateImage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "gemini-2.5-flash-image")
	_, err := client.GenerateImage("prompt")

	var provErr *provider.ProviderError
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
	assert.Equal(t, 429, provErr.Code)
	assert.Contains(t, provErr.Message, "quota exceeded")
}

func TestClient_GenerateImage_TextOnlyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"I cannot generate that image."}]}}]}`))
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "gemini-2.5-flash-image")
	_, err := client.GenerateImage("prompt")

	assert.ErrorIs(t, err, provider.ErrUnsupportedCapability)
}

func TestClient_GenerateImage_BadBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"not-base64!!!"}}]}}]}`))
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "gemini-2.5-flash-image")
	_, err := client.GenerateImage("prompt")

	var malformed *provider.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestClient_GenerateImage_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "gemini-2.5-flash-image")
	_, err := client.GenerateImage("prompt")

	assert.ErrorIs(t, err, provider.ErrEmptyResponse)
}
