package supabase

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"ugc-ads-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

// ErrNotFound is returned when a row-scoped mutation matched nothing the
// caller owns.
var ErrNotFound = sql.ErrNoRows

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewDatabaseClientFromDB wraps an existing connection. Tests use it to
// stub the database.
func NewDatabaseClientFromDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

const assetColumns = `id, user_id, provider, prompt, reference_image_url, status,
	provider_task_id, result_url, result_urls, metadata, api_response,
	error_message, retry_count, rating, deleted_at, created_at, updated_at, completed_at`

func scanAsset(row interface{ Scan(...interface{}) error }) (*models.MediaAsset, error) {
	var a models.MediaAsset
	err := row.Scan(
		&a.ID, &a.UserID, &a.Provider, &a.Prompt, &a.ReferenceImageURL, &a.Status,
		&a.ProviderTaskID, &a.ResultURL, pq.Array(&a.ResultURLs), &a.Metadata, &a.APIResponse,
		&a.ErrorMessage, &a.RetryCount, &a.Rating, &a.DeletedAt, &a.CreatedAt, &a.UpdatedAt, &a.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (d *DatabaseClient) CreateAsset(userID uuid.UUID, providerName, prompt, referenceImageURL, taskID string, metadata map[string]interface{}) (*models.MediaAsset, error) {
	metadataJSON, _ := json.Marshal(metadata)

	row := d.db.QueryRow(`
		INSERT INTO media_assets (id, user_id, provider, prompt, reference_image_url, status, provider_task_id, metadata)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8)
		RETURNING `+assetColumns+`
	`, uuid.New(), userID, providerName, prompt, referenceImageURL, models.StatusProcessing, taskID, metadataJSON)

	asset, err := scanAsset(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return asset, nil
}

func (d *DatabaseClient) GetAsset(assetID, userID uuid.UUID) (*models.MediaAsset, error) {
	row := d.db.QueryRow(`
		SELECT `+assetColumns+`
		FROM media_assets
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, assetID, userID)

	asset, err := scanAsset(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

// GetAssetByTaskID looks an asset up by the provider-assigned task id. Used
// by webhook and poller paths where no user context exists.
func (d *DatabaseClient) GetAssetByTaskID(taskID string) (*models.MediaAsset, error) {
	row := d.db.QueryRow(`
		SELECT `+assetColumns+`
		FROM media_assets
		WHERE provider_task_id = $1
	`, taskID)

	asset, err := scanAsset(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset by task id: %w", err)
	}
	return asset, nil
}

// ListAssets returns the caller's assets, soft-deleted rows excluded, newest
// first.
func (d *DatabaseClient) ListAssets(userID uuid.UUID) ([]models.MediaAsset, error) {
	rows, err := d.db.Query(`
		SELECT `+assetColumns+`
		FROM media_assets
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []models.MediaAsset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, *asset)
	}

	return assets, rows.Err()
}

// ListProcessingAssets returns assets still processing that carry a provider
// task id, oldest first. The poller sweeps these as a webhook backstop.
func (d *DatabaseClient) ListProcessingAssets(limit int) ([]models.MediaAsset, error) {
	rows, err := d.db.Query(`
		SELECT `+assetColumns+`
		FROM media_assets
		WHERE status = $1 AND provider_task_id IS NOT NULL AND deleted_at IS NULL
		ORDER BY created_at ASC
		LIMIT $2
	`, models.StatusProcessing, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list processing assets: %w", err)
	}
	defer rows.Close()

	var assets []models.MediaAsset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, *asset)
	}

	return assets, rows.Err()
}

// MarkAssetReady records a completed generation: the canonical result URL,
// the full URL list, the raw provider response and the completion time.
// Idempotent; re-marking an already ready asset writes the same values.
func (d *DatabaseClient) MarkAssetReady(assetID uuid.UUID, resultURL string, resultURLs []string, apiResponse json.RawMessage) error {
	_, err := d.db.Exec(`
		UPDATE media_assets
		SET status = $1, result_url = NULLIF($2, ''), result_urls = $3,
		    api_response = $4, error_message = NULL,
		    completed_at = NOW(), updated_at = NOW()
		WHERE id = $5
	`, models.StatusReady, resultURL, pq.Array(resultURLs), []byte(apiResponse), assetID)
	if err != nil {
		return fmt.Errorf("failed to mark asset ready: %w", err)
	}
	return nil
}

func (d *DatabaseClient) MarkAssetError(assetID uuid.UUID, errorMsg string, apiResponse json.RawMessage) error {
	_, err := d.db.Exec(`
		UPDATE media_assets
		SET status = $1, error_message = $2,
		    api_response = COALESCE($3, api_response), updated_at = NOW()
		WHERE id = $4
	`, models.StatusError, errorMsg, []byte(apiResponse), assetID)
	if err != nil {
		return fmt.Errorf("failed to mark asset error: %w", err)
	}
	return nil
}

// MarkAssetRetrying flips a failed asset back to processing under a fresh
// provider task id and bumps the retry counter.
func (d *DatabaseClient) MarkAssetRetrying(assetID uuid.UUID, taskID string) error {
	_, err := d.db.Exec(`
		UPDATE media_assets
		SET status = $1, provider_task_id = NULLIF($2, ''),
		    error_message = NULL, retry_count = retry_count + 1, updated_at = NOW()
		WHERE id = $3
	`, models.StatusProcessing, taskID, assetID)
	if err != nil {
		return fmt.Errorf("failed to mark asset retrying: %w", err)
	}
	return nil
}

func (d *DatabaseClient) SetAssetRating(assetID, userID uuid.UUID, rating int) error {
	res, err := d.db.Exec(`
		UPDATE media_assets
		SET rating = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL
	`, rating, assetID, userID)
	if err != nil {
		return fmt.Errorf("failed to set rating: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteAsset stamps deleted_at; the row stays and the list query
// filters it out.
func (d *DatabaseClient) SoftDeleteAsset(assetID, userID uuid.UUID) error {
	res, err := d.db.Exec(`
		UPDATE media_assets
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, assetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAssetMirrorURL records the Supabase storage copy of a generated file in
// the asset metadata.
func (d *DatabaseClient) SetAssetMirrorURL(assetID uuid.UUID, mirrorURL string) error {
	_, err := d.db.Exec(`
		UPDATE media_assets
		SET metadata = COALESCE(metadata, '{}'::jsonb) || jsonb_build_object('mirror_url', $1::text),
		    updated_at = NOW()
		WHERE id = $2
	`, mirrorURL, assetID)
	if err != nil {
		return fmt.Errorf("failed to set mirror url: %w", err)
	}
	return nil
}

func (d *DatabaseClient) CreateSocialPost(post *models.SocialPost) (*models.SocialPost, error) {
	var created models.SocialPost
	err := d.db.QueryRow(`
		INSERT INTO social_posts (id, project_id, task_id, platform, late_post_id, platform_post_url, caption, status, error_message, late_response, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, project_id, task_id, platform, late_post_id, platform_post_url, caption, status, error_message, late_response, created_at, published_at
	`, uuid.New(), post.ProjectID, post.TaskID, post.Platform, post.LatePostID,
		post.PlatformPostURL, post.Caption, post.Status, post.ErrorMessage,
		[]byte(post.LateResponse), post.PublishedAt,
	).Scan(
		&created.ID, &created.ProjectID, &created.TaskID, &created.Platform,
		&created.LatePostID, &created.PlatformPostURL, &created.Caption, &created.Status,
		&created.ErrorMessage, &created.LateResponse, &created.CreatedAt, &created.PublishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create social post: %w", err)
	}
	return &created, nil
}

func (d *DatabaseClient) ListSocialPosts(projectID uuid.UUID) ([]models.SocialPost, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, task_id, platform, late_post_id, platform_post_url, caption, status, error_message, late_response, created_at, published_at
		FROM social_posts
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list social posts: %w", err)
	}
	defer rows.Close()

	var posts []models.SocialPost
	for rows.Next() {
		var p models.SocialPost
		err := rows.Scan(
			&p.ID, &p.ProjectID, &p.TaskID, &p.Platform,
			&p.LatePostID, &p.PlatformPostURL, &p.Caption, &p.Status,
			&p.ErrorMessage, &p.LateResponse, &p.CreatedAt, &p.PublishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan social post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
