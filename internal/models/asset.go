package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Asset lifecycle statuses. Exactly one holds at any time. A ready asset is
// not guaranteed to carry a resolvable URL; callers must treat that case as
// "URL missing", not as an error.
const (
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusError      = "error"
)

// MaxRetryAttempts is the number of user-initiated resubmissions allowed for
// a failed asset before the API refuses further retries.
const MaxRetryAttempts = 3

// Known generation providers.
const (
	ProviderGemini  = "gemini"
	ProviderKieVeo  = "kie-veo"
	ProviderKieFlux = "kie-flux"
	ProviderKie4o   = "kie-4o-image"
)

type MediaAsset struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Provider          string
	Prompt            string
	ReferenceImageURL sql.NullString
	Status            string
	ProviderTaskID    sql.NullString
	ResultURL         sql.NullString
	ResultURLs        []string
	Metadata          json.RawMessage
	APIResponse       json.RawMessage
	ErrorMessage      sql.NullString
	RetryCount        int
	Rating            sql.NullInt64
	DeletedAt         sql.NullTime
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       sql.NullTime
}

// Retryable reports whether a failed asset may still be resubmitted by the
// user. Only error assets are retriable; ready and processing never are.
func (a *MediaAsset) Retryable() bool {
	return a.Status == StatusError && a.RetryCount < MaxRetryAttempts
}

// IsVideo reports whether the asset was produced by a video model.
func (a *MediaAsset) IsVideo() bool {
	return a.Provider == ProviderKieVeo
}

type SocialPost struct {
	ID              uuid.UUID
	ProjectID       uuid.UUID
	TaskID          sql.NullString
	Platform        string
	LatePostID      sql.NullString
	PlatformPostURL sql.NullString
	Caption         string
	Status          string
	ErrorMessage    sql.NullString
	LateResponse    json.RawMessage
	CreatedAt       time.Time
	PublishedAt     sql.NullTime
}

// Social post statuses. Rows are written once and never reconciled
// afterwards; there is no provider webhook updating them.
const (
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)
