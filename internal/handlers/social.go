package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ugc-ads-backend/internal/middleware"
	"ugc-ads-backend/internal/models"
	"ugc-ads-backend/internal/services"
	"ugc-ads-backend/internal/supabase"
)

type SocialHandler struct {
	dbClient      *supabase.DatabaseClient
	socialService *services.SocialService
}

func NewSocialHandler(dbClient *supabase.DatabaseClient, socialService *services.SocialService) *SocialHandler {
	return &SocialHandler{
		dbClient:      dbClient,
		socialService: socialService,
	}
}

func toSocialPostResponse(p *models.SocialPost) models.SocialPostResponse {
	resp := models.SocialPostResponse{
		ID:        p.ID.String(),
		ProjectID: p.ProjectID.String(),
		Platform:  p.Platform,
		Caption:   p.Caption,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
	if p.LatePostID.Valid {
		resp.LatePostID = p.LatePostID.String
	}
	if p.PlatformPostURL.Valid {
		resp.PlatformPostURL = p.PlatformPostURL.String
	}
	if p.ErrorMessage.Valid {
		resp.ErrorMessage = p.ErrorMessage.String
	}
	if p.PublishedAt.Valid {
		publishedAt := p.PublishedAt.Time
		resp.PublishedAt = &publishedAt
	}
	return resp
}

// CreatePost godoc
// @Summary     Cross-post media to a social platform
// @Description Resolves the asset's media URL (or takes a direct video URL), normalizes the optional schedule to UTC, and submits to the posting provider. The outcome is persisted either way.
// @Tags        social
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SocialPostRequest true "Post request"
// @Success     201 {object} models.SocialPostResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /social/post [post]
func (h *SocialHandler) CreatePost(c *gin.Context) {
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

	var req models.SocialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if req.Platform == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "platform is required"})
		return
	}
	if req.MediaAssetID == "" && req.VideoURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "media_asset_id or video_url is required"})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var scheduledFor time.Time
	if req.ScheduledFor != "" {
		scheduledFor, err = time.Parse(time.RFC3339, req.ScheduledFor)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid scheduled_for",
				Message: "must be an RFC 3339 timestamp",
			})
			return
		}
		if scheduledFor.Before(time.Now()) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "scheduled_for must be in the future"})
			return
		}
	}

	post, err := h.socialService.CreatePost(userID, projectID, req, scheduledFor)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "asset not found"})
			return
		}
		if errors.Is(err, services.ErrNoMediaURL) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "asset has no resolvable media URL"})
			return
		}
		status, resp := providerErrorResponse("failed to create post", err)
		if post != nil {
			// The failed attempt was still recorded.
			resp.Error = "posting provider rejected the post"
		}
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, toSocialPostResponse(post))
}

// ListPosts godoc
// @Summary     List social posts for a project
// @Tags        social
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.SocialPostListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /social/posts/{project_id} [get]
func (h *SocialHandler) ListPosts(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	posts, err := h.dbClient.ListSocialPosts(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list posts",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.SocialPostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, toSocialPostResponse(&posts[i]))
	}

	c.JSON(http.StatusOK, models.SocialPostListResponse{Posts: responses})
}
