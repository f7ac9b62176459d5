package models

import "time"

type AssetResponse struct {
	ID                string `json:"id"`
	Provider          string `json:"provider"`
	Prompt            string `json:"prompt"`
	ReferenceImageURL string `json:"reference_image_url,omitempty"`
	Status            string `json:"status"`
	URL               string `json:"url,omitempty"`
	// URLMissing is true when the asset is ready but no candidate field
	// yielded a usable URL. A distinct state, not an error.
	URLMissing   bool       `json:"url_missing"`
	ErrorMessage string     `json:"error_message,omitempty"`
	RetryCount   int        `json:"retry_count"`
	Retryable    bool       `json:"retryable"`
	Rating       *int       `json:"rating,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

type AssetListResponse struct {
	Assets []AssetResponse `json:"assets"`
}

type GenerateResponse struct {
	AssetID string `json:"asset_id"`
	Status  string `json:"status"`
}

type SocialPostResponse struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	Platform        string     `json:"platform"`
	LatePostID      string     `json:"late_post_id,omitempty"`
	PlatformPostURL string     `json:"platform_post_url,omitempty"`
	Caption         string     `json:"caption"`
	Status          string     `json:"status"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

type SocialPostListResponse struct {
	Posts []SocialPostResponse `json:"posts"`
}

type CreditsResponse struct {
	Credits float64 `json:"credits"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
