package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ugc-ads-backend/internal/late"
	"ugc-ads-backend/internal/models"
	"ugc-ads-backend/internal/resolver"
	"ugc-ads-backend/internal/supabase"
)

// SocialService forwards resolved media to the posting provider and records
// the outcome. Rows are written once; there is no later reconciliation with
// the provider.
type SocialService struct {
	lateClient *late.Client
	dbClient   *supabase.DatabaseClient
}

func NewSocialService(lateClient *late.Client, dbClient *supabase.DatabaseClient) *SocialService {
	return &SocialService{
		lateClient: lateClient,
		dbClient:   dbClient,
	}
}

// ErrNoMediaURL is returned when neither a direct URL nor a resolvable asset
// URL was available. Distinct from a provider failure.
var ErrNoMediaURL = fmt.Errorf("no usable media URL for post")

// CreatePost submits one cross-post. The schedule instant, when present, is
// forwarded to the provider in UTC. On provider failure a failed row is still
// persisted so the gallery can show the attempt, and the provider error is
// returned alongside it.
func (s *SocialService) CreatePost(userID uuid.UUID, projectID uuid.UUID, req models.SocialPostRequest, scheduledFor time.Time) (*models.SocialPost, error) {
	mediaURL := req.VideoURL
	mediaType := "video"
	var taskID string

	if req.MediaAssetID != "" {
		assetID, err := uuid.Parse(req.MediaAssetID)
		if err != nil {
			return nil, fmt.Errorf("invalid media asset id: %w", err)
		}
		asset, err := s.dbClient.GetAsset(assetID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load asset: %w", err)
		}
		mediaURL = resolver.MediaURL(asset)
		if !asset.IsVideo() {
			mediaType = "image"
		}
		if asset.ProviderTaskID.Valid {
			taskID = asset.ProviderTaskID.String
		}
	}

	if mediaURL == "" {
		return nil, ErrNoMediaURL
	}

	result, postErr := s.lateClient.CreatePost(late.PostRequest{
		Platform:     req.Platform,
		Caption:      req.Caption,
		MediaURL:     mediaURL,
		MediaType:    mediaType,
		ScheduledFor: scheduledFor,
	})

	post := &models.SocialPost{
		ProjectID: projectID,
		Platform:  req.Platform,
		Caption:   req.Caption,
	}
	if taskID != "" {
		post.TaskID = sql.NullString{String: taskID, Valid: true}
	}

	if postErr != nil {
		post.Status = models.PostStatusFailed
		post.ErrorMessage = sql.NullString{String: postErr.Error(), Valid: true}
		created, err := s.dbClient.CreateSocialPost(post)
		if err != nil {
			log.Error().Err(err).Msg("failed to persist failed social post")
			return nil, postErr
		}
		return created, postErr
	}

	post.LatePostID = sql.NullString{String: result.PostID, Valid: true}
	if result.PostURL != "" {
		post.PlatformPostURL = sql.NullString{String: result.PostURL, Valid: true}
	}
	post.LateResponse = result.Raw

	if scheduledFor.IsZero() {
		post.Status = models.PostStatusPublished
		post.PublishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	} else {
		post.Status = models.PostStatusPending
	}

	return s.dbClient.CreateSocialPost(post)
}
