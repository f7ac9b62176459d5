package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ugc-ads-backend/internal/kie"
	"ugc-ads-backend/internal/models"
)

type CreditsHandler struct {
	kieClient *kie.Client
}

func NewCreditsHandler(kieClient *kie.Client) *CreditsHandler {
	return &CreditsHandler{
		kieClient: kieClient,
	}
}

// GetCredits godoc
// @Summary     Remaining generation credits
// @Description Proxies the generation provider's credit balance for the account.
// @Tags        credits
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CreditsResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /credits [get]
func (h *CreditsHandler) GetCredits(c *gin.Context) {
	credits, err := h.kieClient.GetCredits()
	if err != nil {
		status, resp := providerErrorResponse("failed to fetch credits", err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.CreditsResponse{Credits: credits})
}
