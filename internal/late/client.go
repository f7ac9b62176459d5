// Package late wraps the Late.dev social posting API.
package late

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ugc-ads-backend/internal/provider"
)

const providerName = "late"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// PostRequest describes one cross-post: a resolved media URL plus caption,
// target platform and optional schedule.
type PostRequest struct {
	Platform  string
	Caption   string
	MediaURL  string
	MediaType string // "image" or "video"
	// ScheduledFor, when non-zero, is transmitted as its UTC equivalent.
	ScheduledFor time.Time
}

type wirePost struct {
	Platforms    []wirePlatform  `json:"platforms"`
	Content      string          `json:"content"`
	MediaItems   []wireMediaItem `json:"mediaItems"`
	ScheduledFor string          `json:"scheduledFor,omitempty"`
}

type wirePlatform struct {
	Platform string `json:"platform"`
}

type wireMediaItem struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// PostResult carries the provider-assigned post id, the public post URL when
// the platform returned one, and the raw response body for persistence.
type PostResult struct {
	PostID  string
	PostURL string
	Raw     json.RawMessage
}

type postResponse struct {
	ID   string `json:"id"`
	Post struct {
		ID string `json:"_id"`
	} `json:"post"`
	Platforms []struct {
		Platform        string `json:"platform"`
		PlatformPostURL string `json:"platformPostUrl"`
	} `json:"platforms"`
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

// CreatePost submits one post or scheduled post. Schedule instants are
// normalized to UTC on the wire regardless of the offset they arrived with.
func (c *Client) CreatePost(post PostRequest) (*PostResult, error) {
	if c.apiKey == "" {
		return nil, provider.ErrMissingCredential
	}

	mediaType := post.MediaType
	if mediaType == "" {
		mediaType = "video"
	}

	wire := wirePost{
		Platforms:  []wirePlatform{{Platform: post.Platform}},
		Content:    post.Caption,
		MediaItems: []wireMediaItem{{Type: mediaType, URL: post.MediaURL}},
	}
	if !post.ScheduledFor.IsZero() {
		wire.ScheduledFor = post.ScheduledFor.UTC().Format(time.RFC3339)
	}

	jsonData, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/v1/posts"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
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

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.TransportError{Provider: providerName, Err: err}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &provider.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, provider.ErrEmptyResponse
	}

	var result postResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &provider.MalformedResponseError{Provider: providerName, Detail: err.Error()}
	}

	postID := result.ID
	if postID == "" {
		postID = result.Post.ID
	}
	if postID == "" {
		return nil, &provider.MalformedResponseError{Provider: providerName, Detail: "post id missing from response"}
	}

	out := &PostResult{PostID: postID, Raw: body}
	for _, p := range result.Platforms {
		if p.PlatformPostURL != "" {
			out.PostURL = p.PlatformPostURL
			break
		}
	}

	return out, nil
}
