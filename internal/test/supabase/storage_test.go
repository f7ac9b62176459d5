package supabase_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"ugc-ads-backend/internal/supabase"
)

func TestStorageClient_PublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://project.supabase.co/", "service-role-key", "media")
	assert.NoError(t, err)

	url := client.PublicURL("users/u1/assets/a1/result.png")
	assert.Equal(t, "https://project.supabase.co/storage/v1/object/public/media/users/u1/assets/a1/result.png", url)
}

func TestStorageClient_DeleteAssetFiles_NothingMirrored(t *testing.T) {
	var listed bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listed = true
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := supabase.NewStorageClient(server.URL, "service-role-key", "media")
	assert.NoError(t, err)

	// No mirrored files under the asset prefix: the cleanup is a no-op.
	assert.NoError(t, client.DeleteAssetFiles(uuid.New(), uuid.New()))
	assert.True(t, listed)
}

func TestStoragePathFormat(t *testing.T) {
	userID := uuid.New()
	assetID := uuid.New()
	filename := "result.png"

	expectedPath := "users/" + userID.String() + "/assets/" + assetID.String() + "/" + filename

	// Verify path format
	assert.Contains(t, expectedPath, "users/")
	assert.Contains(t, expectedPath, "assets/")
	assert.Contains(t, expectedPath, filename)
}
