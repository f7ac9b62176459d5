package gemini

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ugc-ads-backend/internal/provider"
)

const providerName = "gemini"

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Result is a normalized successful generation: raw media bytes plus the
// metadata callers persist alongside them.
type Result struct {
	Data        []byte
	MimeType    string
	Model       string
	Prompt      string
	GeneratedAt time.Time
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// GenerateImage issues one synchronous generateContent call and returns the
// first inline image from the response. No retry or backoff is performed
// here; failures propagate to the caller classified per the provider
// taxonomy.
func (c *Client) GenerateImage(prompt string) (*Result, error) {
	if c.apiKey == "" {
		return nil, provider.ErrMissingCredential
	}

	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/models/" + c.model + ":generateContent"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
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

	if resp.StatusCode != http.StatusOK {
		var errResp generateContentResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			return nil, &provider.ProviderError{
				Provider:   providerName,
				StatusCode: resp.StatusCode,
				Code:       errResp.Error.Code,
				Message:    errResp.Error.Message,
			}
		}
		return nil, &provider.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, provider.ErrEmptyResponse
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &provider.MalformedResponseError{Provider: providerName, Detail: err.Error()}
	}

	for _, cand := range result.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, &provider.MalformedResponseError{
					Provider: providerName,
					Detail:   "inline data is not valid base64: " + err.Error(),
				}
			}
			mimeType := p.InlineData.MimeType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return &Result{
				Data:        data,
				MimeType:    mimeType,
				Model:       c.model,
				Prompt:      prompt,
				GeneratedAt: time.Now().UTC(),
			}, nil
		}
	}

	return nil, provider.ErrUnsupportedCapability
}
