package kie_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"ugc-ads-backend/internal/kie"
	"ugc-ads-backend/internal/provider"
)

func TestClient_CreateTask(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/jobs/createTask", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"msg":"success","data":{"taskId":"task-abc"}}`))
	}))
	defer server.Close()

	client := kie.NewClient(server.URL, "test-key")
	taskID, err := client.CreateTask("veo3", "a corgi surfing", []string{"https://cdn.test/ref.png"}, "https://api.test/webhooks/kie")

	assert.NoError(t, err)
	assert.Equal(t, "task-abc", taskID)
	assert.Equal(t, "veo3", gotBody["model"])
	assert.Equal(t, "https://api.test/webhooks/kie", gotBody["callBackUrl"])

	input, ok := gotBody["input"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "a corgi surfing", input["prompt"])
}

func TestClient_CreateTask_EnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":402,"msg":"insufficient credits","data":null}`))
	}))
	defer server.Close()

	client := kie.NewClient(server.URL, "test-key")
	_, err := client.CreateTask("veo3", "prompt", nil, "")

	assert.Error(t, err)
	var provErr *provider.ProviderError
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, 402, provErr.Code)
	assert.Contains(t, provErr.Message, "insufficient credits")
}

func TestClient_CreateTask_MissingTaskID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"msg":"success","data":{}}`))
	}))
	defer server.Close()

	client := kie.NewClient(server.URL, "test-key")
	_, err := client.CreateTask("veo3", "prompt", nil, "")

	var malformed *provider.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestClient_CreateTask_NoAPIKey(t *testing.T) {
	client := kie.NewClient("https://api.kie.ai/", "")
	_, err := client.CreateTask("veo3", "prompt", nil, "")

	assert.ErrorIs(t, err, provider.ErrMissingCredential)
}

func TestClient_GetTaskRecord_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs/recordInfo", r.URL.Path)
		assert.Equal(t, "task-abc", r.URL.Query().Get("taskId"))

		// resultJson is a JSON string inside the envelope, not an object.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"msg":"success","data":{"taskId":"task-abc","state":"success","resultJson":"{\"resultUrls\":[\"https://cdn.test/out.mp4\",\" \"]}"}}`))
	}))
	defer server.Close()

	client := kie.NewClient(server.URL, "test-key")
	record, err := client.GetTaskRecord("task-abc")

	assert.NoError(t, err)
	assert.Equal(t, "task-abc", record.TaskID)
	assert.Equal(t, kie.StateSuccess, record.State)
	assert.Equal(t, []string{"https://cdn.test/out.mp4"}, record.ResultURLs)
	assert.NotEmpty(t, record.Raw)
}

func TestClient_GetTaskRecord_Failed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"msg":"success","data":{"taskId":"task-abc","state":"fail","failMsg":"content policy violation"}}`))
	}))
	defer server.Close()

	client := kie.NewClient(server.URL, "test-key")
	record, err := client.GetTaskRecord("task-abc")

	assert.NoError(t, err)
	assert.Equal(t, kie.StateFail, record.State)
	assert.Equal(t, "content policy violation", record.FailMsg)
	assert.Empty(t, record.ResultURLs)
}

func TestClient_GetCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/credit", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"msg":"success","data":42.5}`))
	}))
	defer server.Close()

	client := kie.NewClient(server.URL, "test-key")
	credits, err := client.GetCredits()

	assert.NoError(t, err)
	assert.Equal(t, 42.5, credits)
}

func TestClient_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := kie.NewClient(server.URL, "test-key")
	_, err := client.GetCredits()

	assert.ErrorIs(t, err, provider.ErrEmptyResponse)
}

func TestClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := kie.NewClient(server.URL, "test-key")
	_, err := client.GetCredits()

	var provErr *provider.ProviderError
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusInternalServerError, provErr.StatusCode)
}
