package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"ugc-ads-backend/internal/config"
	"ugc-ads-backend/internal/handlers"
	"ugc-ads-backend/internal/services"
)

func newWebhookRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	// The service is never reached by the failure paths under test; real
	// dispatch needs a database and is covered by the service tests.
	svc := services.NewGenerationService(nil, nil, nil, nil, nil, "")
	handler := handlers.NewWebhookHandler(cfg, svc)

	router := gin.New()
	router.POST("/api/webhooks/kie", handler.HandleKieWebhook)
	return router
}

func TestHandleKieWebhook_InvalidToken(t *testing.T) {
	router := newWebhookRouter(&config.Config{KieWebhookToken: "expected-token"})

	body := []byte(`{"code":200,"data":{"taskId":"task-1"}}`)
	req, _ := http.NewRequest("POST", "/api/webhooks/kie", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer wrong-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleKieWebhook_MissingTaskID(t *testing.T) {
	router := newWebhookRouter(&config.Config{KieWebhookToken: "expected-token"})

	body := []byte(`{"code":200,"data":{"state":"success"}}`)
	req, _ := http.NewRequest("POST", "/api/webhooks/kie", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer expected-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "taskId")
}

func TestHandleKieWebhook_MalformedBody(t *testing.T) {
	router := newWebhookRouter(&config.Config{KieWebhookToken: "expected-token"})

	req, _ := http.NewRequest("POST", "/api/webhooks/kie", bytes.NewBufferString("not json"))
	req.Header.Set("Authorization", "Bearer expected-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
