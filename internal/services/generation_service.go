package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ugc-ads-backend/internal/gemini"
	"ugc-ads-backend/internal/kie"
	"ugc-ads-backend/internal/models"
	"ugc-ads-backend/internal/resolver"
	"ugc-ads-backend/internal/supabase"
)

// kieModels maps provider identifiers onto KIE model names.
var kieModels = map[string]string{
	models.ProviderKieVeo:  "veo3",
	models.ProviderKieFlux: "flux-kontext-pro",
	models.ProviderKie4o:   "4o-image",
}

// GenerationService owns the asset lifecycle: submission, provider dispatch,
// completion/failure ingestion and the storage mirror.
type GenerationService struct {
	geminiClient   *gemini.Client
	kieClient      *kie.Client
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
	callbackURL    string
	httpClient     *http.Client
}

func NewGenerationService(
	geminiClient *gemini.Client,
	kieClient *kie.Client,
	dbClient *supabase.DatabaseClient,
	storageClient *supabase.StorageClient,
	realtimeClient *supabase.RealtimeClient,
	callbackURL string,
) *GenerationService {
	return &GenerationService{
		geminiClient:   geminiClient,
		kieClient:      kieClient,
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
		callbackURL:    callbackURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SubmitGeneration creates a processing asset and dispatches the provider.
// KIE providers complete asynchronously via webhook or poll; Gemini runs in
// a background goroutine because its call is synchronous.
func (s *GenerationService) SubmitGeneration(userID uuid.UUID, req models.GenerateRequest) (*models.MediaAsset, error) {
	switch req.Provider {
	case models.ProviderGemini:
		asset, err := s.dbClient.CreateAsset(userID, req.Provider, req.Prompt, req.ReferenceImageURL, "", req.Metadata)
		if err != nil {
			return nil, err
		}
		s.realtimeClient.PublishAssetEvent(asset.UserID, "asset_processing",
			supabase.AssetProcessingPayload(asset.ID, asset.Provider))
		go s.runGeminiGeneration(asset)
		return asset, nil

	case models.ProviderKieVeo, models.ProviderKieFlux, models.ProviderKie4o:
		var imageURLs []string
		if req.ReferenceImageURL != "" {
			imageURLs = []string{req.ReferenceImageURL}
		}
		taskID, err := s.kieClient.CreateTask(kieModels[req.Provider], req.Prompt, imageURLs, s.callbackURL)
		if err != nil {
			return nil, err
		}
		asset, err := s.dbClient.CreateAsset(userID, req.Provider, req.Prompt, req.ReferenceImageURL, taskID, req.Metadata)
		if err != nil {
			return nil, err
		}
		s.realtimeClient.PublishAssetEvent(asset.UserID, "asset_processing",
			supabase.AssetProcessingPayload(asset.ID, asset.Provider))
		return asset, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", req.Provider)
	}
}

// RetryGeneration resubmits a failed asset to its provider as the same row,
// retry counter bumped. Callers check Retryable first.
func (s *GenerationService) RetryGeneration(asset *models.MediaAsset) error {
	switch asset.Provider {
	case models.ProviderGemini:
		if err := s.dbClient.MarkAssetRetrying(asset.ID, ""); err != nil {
			return err
		}
		s.realtimeClient.PublishAssetEvent(asset.UserID, "asset_processing",
			supabase.AssetProcessingPayload(asset.ID, asset.Provider))
		go s.runGeminiGeneration(asset)
		return nil

	case models.ProviderKieVeo, models.ProviderKieFlux, models.ProviderKie4o:
		var imageURLs []string
		if asset.ReferenceImageURL.Valid && asset.ReferenceImageURL.String != "" {
			imageURLs = []string{asset.ReferenceImageURL.String}
		}
		taskID, err := s.kieClient.CreateTask(kieModels[asset.Provider], asset.Prompt, imageURLs, s.callbackURL)
		if err != nil {
			return err
		}
		if err := s.dbClient.MarkAssetRetrying(asset.ID, taskID); err != nil {
			return err
		}
		s.realtimeClient.PublishAssetEvent(asset.UserID, "asset_processing",
			supabase.AssetProcessingPayload(asset.ID, asset.Provider))
		return nil

	default:
		return fmt.Errorf("unknown provider: %s", asset.Provider)
	}
}

// UseForVideo submits a video generation seeded with the resolved media URL
// of an existing asset.
func (s *GenerationService) UseForVideo(userID uuid.UUID, source *models.MediaAsset, prompt string) (*models.MediaAsset, error) {
	sourceURL := resolver.MediaURL(source)
	if sourceURL == "" {
		return nil, fmt.Errorf("source asset has no resolvable media URL")
	}
	if prompt == "" {
		prompt = source.Prompt
	}

	taskID, err := s.kieClient.CreateTask(kieModels[models.ProviderKieVeo], prompt, []string{sourceURL}, s.callbackURL)
	if err != nil {
		return nil, err
	}

	return s.dbClient.CreateAsset(userID, models.ProviderKieVeo, prompt, sourceURL, taskID, map[string]interface{}{
		"source_asset_id": source.ID.String(),
	})
}

// HandleGenerationCompleted ingests a successful provider result, normalizing
// the URL into the canonical column so readers never re-probe the raw payload
// for new rows. Idempotent across duplicate webhook deliveries.
func (s *GenerationService) HandleGenerationCompleted(taskID string, resultURLs []string, raw json.RawMessage) {
	asset, err := s.dbClient.GetAssetByTaskID(taskID)
	if err != nil {
		log.Warn().Str("task_id", taskID).Err(err).Msg("completion for unknown task")
		return
	}

	var canonical string
	if len(resultURLs) > 0 {
		canonical = resultURLs[0]
	}

	if err := s.dbClient.MarkAssetReady(asset.ID, canonical, resultURLs, raw); err != nil {
		log.Error().Str("asset_id", asset.ID.String()).Err(err).Msg("failed to mark asset ready")
		return
	}

	log.Info().Str("asset_id", asset.ID.String()).Str("provider", asset.Provider).Msg("asset ready")

	if canonical != "" {
		go s.mirrorAsset(asset.UserID, asset.ID, canonical, asset.IsVideo())
	}

	s.realtimeClient.PublishAssetEvent(asset.UserID, "asset_ready",
		supabase.AssetReadyPayload(asset.ID, canonical))
}

// HandleGenerationFailed records a provider-reported failure.
func (s *GenerationService) HandleGenerationFailed(taskID, errorMsg string, raw json.RawMessage) {
	asset, err := s.dbClient.GetAssetByTaskID(taskID)
	if err != nil {
		log.Warn().Str("task_id", taskID).Err(err).Msg("failure for unknown task")
		return
	}

	if errorMsg == "" {
		errorMsg = "generation failed"
	}

	if err := s.dbClient.MarkAssetError(asset.ID, errorMsg, raw); err != nil {
		log.Error().Str("asset_id", asset.ID.String()).Err(err).Msg("failed to mark asset error")
		return
	}

	log.Info().Str("asset_id", asset.ID.String()).Str("provider", asset.Provider).Str("error", errorMsg).Msg("asset failed")

	s.realtimeClient.PublishAssetEvent(asset.UserID, "asset_failed",
		supabase.AssetFailedPayload(asset.ID, errorMsg))
}

// runGeminiGeneration performs the synchronous Gemini call off the request
// path, mirrors the bytes and settles the asset.
func (s *GenerationService) runGeminiGeneration(asset *models.MediaAsset) {
	result, err := s.geminiClient.GenerateImage(asset.Prompt)
	if err != nil {
		log.Warn().Str("asset_id", asset.ID.String()).Err(err).Msg("gemini generation failed")
		if dbErr := s.dbClient.MarkAssetError(asset.ID, err.Error(), nil); dbErr != nil {
			log.Error().Str("asset_id", asset.ID.String()).Err(dbErr).Msg("failed to mark asset error")
		}
		s.realtimeClient.PublishAssetEvent(asset.UserID, "asset_failed",
			supabase.AssetFailedPayload(asset.ID, err.Error()))
		return
	}

	filename := fmt.Sprintf("%s.png", asset.ID.String())
	if result.MimeType == "image/jpeg" {
		filename = fmt.Sprintf("%s.jpg", asset.ID.String())
	}

	_, publicURL, err := s.storageClient.UploadAssetFile(asset.UserID, asset.ID, filename, result.MimeType, result.Data)
	if err != nil {
		log.Warn().Str("asset_id", asset.ID.String()).Err(err).Msg("failed to store generated image")
		if dbErr := s.dbClient.MarkAssetError(asset.ID, "failed to store generated image", nil); dbErr != nil {
			log.Error().Str("asset_id", asset.ID.String()).Err(dbErr).Msg("failed to mark asset error")
		}
		return
	}

	raw, _ := json.Marshal(map[string]interface{}{
		"model":        result.Model,
		"mime_type":    result.MimeType,
		"generated_at": result.GeneratedAt.Format(time.RFC3339),
	})

	if err := s.dbClient.MarkAssetReady(asset.ID, publicURL, []string{publicURL}, raw); err != nil {
		log.Error().Str("asset_id", asset.ID.String()).Err(err).Msg("failed to mark asset ready")
		return
	}

	s.realtimeClient.PublishAssetEvent(asset.UserID, "asset_ready",
		supabase.AssetReadyPayload(asset.ID, publicURL))
}

// CleanupAssetFiles removes the mirrored storage copies of a soft-deleted
// asset. Best-effort: the row keeps its provider URLs either way.
func (s *GenerationService) CleanupAssetFiles(userID, assetID uuid.UUID) {
	if err := s.storageClient.DeleteAssetFiles(userID, assetID); err != nil {
		log.Warn().Str("asset_id", assetID.String()).Err(err).Msg("failed to clean up asset files")
	}
}

// mirrorAsset copies a provider-hosted result into the Supabase bucket.
// Best-effort: the provider URL stays usable either way.
func (s *GenerationService) mirrorAsset(userID, assetID uuid.UUID, sourceURL string, video bool) {
	data, contentType, err := s.fetchMedia(sourceURL)
	if err != nil {
		log.Warn().Str("asset_id", assetID.String()).Err(err).Msg("failed to mirror asset")
		return
	}

	ext := ".png"
	if video {
		ext = ".mp4"
	}
	filename := assetID.String() + ext

	_, mirrorURL, err := s.storageClient.UploadAssetFile(userID, assetID, filename, contentType, data)
	if err != nil {
		log.Warn().Str("asset_id", assetID.String()).Err(err).Msg("failed to upload mirror copy")
		return
	}

	if err := s.dbClient.SetAssetMirrorURL(assetID, mirrorURL); err != nil {
		log.Warn().Str("asset_id", assetID.String()).Err(err).Msg("failed to record mirror url")
	}
}

func (s *GenerationService) fetchMedia(url string) ([]byte, string, error) {
	resp, err := s.httpClient.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch media: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read media body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return data, contentType, nil
}
