package handlers_test

import (
	"bytes"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"ugc-ads-backend/internal/handlers"
	"ugc-ads-backend/internal/late"
	"ugc-ads-backend/internal/middleware"
	"ugc-ads-backend/internal/services"
	"ugc-ads-backend/internal/supabase"
)

func newSocialRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbClient := supabase.NewDatabaseClientFromDB(db)
	socialService := services.NewSocialService(late.NewClient("https://getlate.dev/api/", ""), dbClient)
	handler := handlers.NewSocialHandler(dbClient, socialService)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
	})
	router.POST("/api/social/post", handler.CreatePost)
	return router, mock
}

func TestCreatePost_AssetNotFound(t *testing.T) {
	userID := uuid.New()
	assetID := uuid.New()
	projectID := uuid.New()
	router, mock := newSocialRouter(t, userID)

	mock.ExpectQuery(`(?s)SELECT .+ FROM media_assets\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(assetID, userID).
		WillReturnError(sql.ErrNoRows)

	body := []byte(fmt.Sprintf(`{"media_asset_id":"%s","project_id":"%s","platform":"tiktok","caption":"c"}`, assetID, projectID))
	req, _ := http.NewRequest("POST", "/api/social/post", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "asset not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePost_SourceWithoutURLConflicts(t *testing.T) {
	userID := uuid.New()
	assetID := uuid.New()
	projectID := uuid.New()
	router, mock := newSocialRouter(t, userID)

	rows := sqlmock.NewRows(assetColumns).
		AddRow(readyAssetRow(assetID, userID, "")...)
	mock.ExpectQuery(`(?s)SELECT .+ FROM media_assets\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(assetID, userID).
		WillReturnRows(rows)

	body := []byte(fmt.Sprintf(`{"media_asset_id":"%s","project_id":"%s","platform":"tiktok","caption":"c"}`, assetID, projectID))
	req, _ := http.NewRequest("POST", "/api/social/post", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no resolvable media URL")
}
