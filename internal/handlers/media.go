package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ugc-ads-backend/internal/middleware"
	"ugc-ads-backend/internal/models"
	"ugc-ads-backend/internal/resolver"
	"ugc-ads-backend/internal/services"
	"ugc-ads-backend/internal/supabase"
)

type MediaHandler struct {
	dbClient          *supabase.DatabaseClient
	generationService *services.GenerationService
}

func NewMediaHandler(dbClient *supabase.DatabaseClient, generationService *services.GenerationService) *MediaHandler {
	return &MediaHandler{
		dbClient:          dbClient,
		generationService: generationService,
	}
}

func toAssetResponse(a *models.MediaAsset) models.AssetResponse {
	resp := models.AssetResponse{
		ID:         a.ID.String(),
		Provider:   a.Provider,
		Prompt:     a.Prompt,
		Status:     a.Status,
		RetryCount: a.RetryCount,
		Retryable:  a.Retryable(),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.ReferenceImageURL.Valid {
		resp.ReferenceImageURL = a.ReferenceImageURL.String
	}
	if a.Status == models.StatusReady {
		resp.URL = resolver.MediaURL(a)
		resp.URLMissing = resp.URL == ""
	}
	if a.ErrorMessage.Valid {
		resp.ErrorMessage = a.ErrorMessage.String
	} else if a.Status == models.StatusError {
		resp.ErrorMessage = "generation failed"
	}
	if a.Rating.Valid {
		rating := int(a.Rating.Int64)
		resp.Rating = &rating
	}
	if a.CompletedAt.Valid {
		completedAt := a.CompletedAt.Time
		resp.CompletedAt = &completedAt
	}
	return resp
}

// ListMedia godoc
// @Summary     List media assets
// @Description Returns the caller's media assets, newest first. Soft-deleted assets are excluded. Ready assets without a resolvable URL carry url_missing=true.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.AssetListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /ai/media [get]
func (h *MediaHandler) ListMedia(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	assets, err := h.dbClient.ListAssets(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list assets",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.AssetResponse, 0, len(assets))
	for i := range assets {
		responses = append(responses, toAssetResponse(&assets[i]))
	}

	c.JSON(http.StatusOK, models.AssetListResponse{Assets: responses})
}

// Generate godoc
// @Summary     Submit a media generation
// @Description Creates a processing asset and dispatches the chosen provider. The asset settles to ready or error via provider callback or poll.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateRequest true "Generation request"
// @Success     202 {object} models.GenerateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /ai/media/generate [post]
func (h *MediaHandler) Generate(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "prompt is required"})
		return
	}

	switch req.Provider {
	case models.ProviderGemini, models.ProviderKieVeo, models.ProviderKieFlux, models.ProviderKie4o:
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown provider: " + req.Provider})
		return
	}

	asset, err := h.generationService.SubmitGeneration(userID, req)
	if err != nil {
		status, resp := providerErrorResponse("failed to submit generation", err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusAccepted, models.GenerateResponse{
		AssetID: asset.ID.String(),
		Status:  asset.Status,
	})
}

// DeleteMedia godoc
// @Summary     Delete a media asset
// @Description Soft-deletes the asset. The row is retained but excluded from listings.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Asset ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /ai/media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid asset id"})
		return
	}

	if err := h.dbClient.SoftDeleteAsset(assetID, userID); err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete asset",
			Message: err.Error(),
		})
		return
	}

	if h.generationService != nil {
		go h.generationService.CleanupAssetFiles(userID, assetID)
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// RateMedia godoc
// @Summary     Rate a media asset
// @Description Stores a 1-5 rating on the asset.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Asset ID (UUID)"
// @Param       request body models.RatingRequest true "Rating"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /ai/media/{id}/rating [post]
func (h *MediaHandler) RateMedia(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid asset id"})
		return
	}

	var req models.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "rating must be between 1 and 5"})
		return
	}

	if err := h.dbClient.SetAssetRating(assetID, userID, req.Rating); err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to set rating",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rated"})
}

// RetryMedia godoc
// @Summary     Retry a failed generation
// @Description Resubmits a failed asset to its provider. Allowed only while the asset is in the error state and under the retry limit.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Asset ID (UUID)"
// @Success     202 {object} models.GenerateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /ai/media/{id}/retry [post]
func (h *MediaHandler) RetryMedia(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid asset id"})
		return
	}

	asset, err := h.dbClient.GetAsset(assetID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "asset not found",
			Message: err.Error(),
		})
		return
	}

	if asset.Status != models.StatusError {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "asset is not in the error state"})
		return
	}
	if !asset.Retryable() {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "maximum retry attempts reached"})
		return
	}

	if err := h.generationService.RetryGeneration(asset); err != nil {
		status, resp := providerErrorResponse("failed to retry generation", err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusAccepted, models.GenerateResponse{
		AssetID: asset.ID.String(),
		Status:  models.StatusProcessing,
	})
}

// UseForVideo godoc
// @Summary     Use an asset as video input
// @Description Submits a video generation seeded with the resolved URL of an existing asset. Fails with 409 when the source asset is ready but has no resolvable URL.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UseForVideoRequest true "Source asset"
// @Success     202 {object} models.GenerateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /ai/media/use-for-video [post]
func (h *MediaHandler) UseForVideo(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req models.UseForVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	sourceID, err := uuid.Parse(req.SourceAssetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid source asset id"})
		return
	}

	source, err := h.dbClient.GetAsset(sourceID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "source asset not found",
			Message: err.Error(),
		})
		return
	}

	if resolver.MediaURL(source) == "" {
		// Ready without a URL is its own state, not an error.
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "source asset has no resolvable media URL"})
		return
	}

	asset, err := h.generationService.UseForVideo(userID, source, req.Prompt)
	if err != nil {
		status, resp := providerErrorResponse("failed to submit video generation", err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusAccepted, models.GenerateResponse{
		AssetID: asset.ID.String(),
		Status:  asset.Status,
	})
}
