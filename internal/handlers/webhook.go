package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"ugc-ads-backend/internal/config"
	"ugc-ads-backend/internal/models"
	"ugc-ads-backend/internal/services"
)

type WebhookHandler struct {
	config            *config.Config
	generationService *services.GenerationService
}

func NewWebhookHandler(cfg *config.Config, generationService *services.GenerationService) *WebhookHandler {
	return &WebhookHandler{
		config:            cfg,
		generationService: generationService,
	}
}

// kieWebhookEvent is the callback KIE posts when a task settles. The
// envelope mirrors recordInfo: code 200 on success, anything else a failure.
type kieWebhookEvent struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// HandleKieWebhook godoc
// @Summary     KIE generation callback
// @Description Receives task completion callbacks from KIE. Authenticated with a shared token rather than a user JWT.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       Authorization header string true "Shared webhook token"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /webhooks/kie [post]
func (h *WebhookHandler) HandleKieWebhook(c *gin.Context) {
	if h.generationService == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "generation service not available"})
		return
	}

	authHeader := c.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	if h.config.KieWebhookToken != "" && token != h.config.KieWebhookToken {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid authorization token"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read request body",
			Message: err.Error(),
		})
		return
	}

	var event kieWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse event",
			Message: err.Error(),
		})
		return
	}

	taskID := gjson.GetBytes(event.Data, "taskId").String()
	if taskID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "taskId missing from event"})
		return
	}

	if event.Code == 200 {
		var resultURLs []string
		resultJSON := gjson.GetBytes(event.Data, "resultJson").String()
		if resultJSON != "" {
			for _, v := range gjson.Get(resultJSON, "resultUrls").Array() {
				if u := strings.TrimSpace(v.String()); u != "" {
					resultURLs = append(resultURLs, u)
				}
			}
		}
		go h.generationService.HandleGenerationCompleted(taskID, resultURLs, event.Data)
	} else {
		msg := gjson.GetBytes(event.Data, "failMsg").String()
		if msg == "" {
			msg = event.Msg
		}
		go h.generationService.HandleGenerationFailed(taskID, msg, event.Data)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
