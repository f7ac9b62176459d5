// Package kie wraps the KIE.ai generation API: task submission, status
// polling and the account credit balance. KIE tasks complete asynchronously,
// either through the callback URL passed at submission or through recordInfo
// polling.
package kie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"ugc-ads-backend/internal/provider"
)

const providerName = "kie"

// Task states reported by recordInfo.
const (
	StateWaiting    = "waiting"
	StateQueuing    = "queuing"
	StateGenerating = "generating"
	StateSuccess    = "success"
	StateFail       = "fail"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type createTaskRequest struct {
	Model       string    `json:"model"`
	CallBackURL string    `json:"callBackUrl,omitempty"`
	Input       taskInput `json:"input"`
}

type taskInput struct {
	Prompt    string   `json:"prompt"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// TaskRecord is the normalized recordInfo result. Raw preserves the full
// provider payload for persistence.
type TaskRecord struct {
	TaskID     string
	State      string
	ResultURLs []string
	FailMsg    string
	Raw        json.RawMessage
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateTask submits a generation job and returns the provider task id.
func (c *Client) CreateTask(model, prompt string, imageURLs []string, callbackURL string) (string, error) {
	if c.apiKey == "" {
		return "", provider.ErrMissingCredential
	}

	reqBody := createTaskRequest{
		Model:       model,
		CallBackURL: callbackURL,
		Input: taskInput{
			Prompt:    prompt,
			ImageURLs: imageURLs,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	data, err := c.do("POST", "/api/v1/jobs/createTask", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	taskID := gjson.GetBytes(data, "taskId").String()
	if taskID == "" {
		return "", &provider.MalformedResponseError{Provider: providerName, Detail: "taskId missing from createTask response"}
	}

	return taskID, nil
}

// GetTaskRecord fetches the current state of a task. On success states the
// result URLs are pulled out of the resultJson payload, which KIE delivers
// as a JSON string inside the envelope.
func (c *Client) GetTaskRecord(taskID string) (*TaskRecord, error) {
	if c.apiKey == "" {
		return nil, provider.ErrMissingCredential
	}

	path := "/api/v1/jobs/recordInfo?taskId=" + url.QueryEscape(taskID)
	data, err := c.do("GET", path, nil)
	if err != nil {
		return nil, err
	}

	record := &TaskRecord{
		TaskID:  gjson.GetBytes(data, "taskId").String(),
		State:   gjson.GetBytes(data, "state").String(),
		FailMsg: gjson.GetBytes(data, "failMsg").String(),
		Raw:     data,
	}

	resultJSON := gjson.GetBytes(data, "resultJson").String()
	if resultJSON != "" {
		for _, v := range gjson.Get(resultJSON, "resultUrls").Array() {
			if u := strings.TrimSpace(v.String()); u != "" {
				record.ResultURLs = append(record.ResultURLs, u)
			}
		}
	}

	return record, nil
}

// GetCredits returns the remaining credit balance for the account.
func (c *Client) GetCredits() (float64, error) {
	if c.apiKey == "" {
		return 0, provider.ErrMissingCredential
	}

	data, err := c.do("GET", "/api/v1/chat/credit", nil)
	if err != nil {
		return 0, err
	}

	return gjson.ParseBytes(data).Float(), nil
}

// do issues one request and unwraps the {code, msg, data} envelope, mapping
// failures onto the provider error taxonomy.
func (c *Client) do(method, path string, body io.Reader) (json.RawMessage, error) {
	reqURL := strings.TrimSuffix(c.baseURL, "/") + path
	req, err := http.NewRequest(method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &provider.TransportError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.TransportError{Provider: providerName, Err: err}
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, provider.ErrEmptyResponse
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, &provider.MalformedResponseError{Provider: providerName, Detail: err.Error()}
	}

	if env.Code != 200 {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     env.Code,
			Message:  env.Msg,
		}
	}

	return env.Data, nil
}
