package models

type GenerateRequest struct {
	// Provider identifies the generation backend: gemini, kie-veo, kie-flux
	// or kie-4o-image.
	Provider string `json:"provider" example:"kie-flux"`
	Prompt   string `json:"prompt" example:"a corgi surfing at sunset"`
	// Optional reference image fed to image-to-image / image-to-video models.
	ReferenceImageURL string `json:"reference_image_url,omitempty"`
	// Optional metadata stored verbatim with the asset.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type RatingRequest struct {
	Rating int `json:"rating" example:"4"`
}

type UseForVideoRequest struct {
	SourceAssetID string `json:"source_asset_id"`
	// Optional prompt override; defaults to the source asset's prompt.
	Prompt string `json:"prompt,omitempty"`
}

type SocialPostRequest struct {
	// Either media_asset_id or video_url must be set. When both are present
	// the asset takes precedence.
	MediaAssetID string `json:"media_asset_id,omitempty"`
	VideoURL     string `json:"video_url,omitempty"`
	ProjectID    string `json:"project_id"`
	Platform     string `json:"platform" example:"tiktok"`
	Caption      string `json:"caption"`
	// RFC 3339 instant, any offset. Forwarded to the posting provider in UTC.
	ScheduledFor string `json:"scheduled_for,omitempty" example:"2026-09-01T09:30:00-07:00"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
