package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient fans asset lifecycle events out to gallery clients.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish; the media_assets
	// row updates trigger Realtime change events on their own. This hook
	// exists for explicit event publishing via the Realtime REST API later.
	return nil
}

func (r *RealtimeClient) PublishAssetEvent(userID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("user:%s:assets", userID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads

func AssetProcessingPayload(assetID uuid.UUID, providerName string) map[string]interface{} {
	return map[string]interface{}{
		"asset_id": assetID.String(),
		"status":   "processing",
		"provider": providerName,
	}
}

func AssetReadyPayload(assetID uuid.UUID, url string) map[string]interface{} {
	return map[string]interface{}{
		"asset_id": assetID.String(),
		"status":   "ready",
		"url":      url,
	}
}

func AssetFailedPayload(assetID uuid.UUID, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"asset_id": assetID.String(),
		"status":   "error",
		"error":    errorMsg,
	}
}
