// Package poller sweeps assets stuck in the processing state and reconciles
// them against the provider. It is a backstop for lost webhook deliveries;
// the webhook path settles most assets first.
package poller

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"ugc-ads-backend/internal/kie"
	"ugc-ads-backend/internal/services"
	"ugc-ads-backend/internal/supabase"
)

// sweepLimit bounds how many assets one sweep inspects.
const sweepLimit = 50

// graceAge is how old a processing asset must be before the poller touches
// it, leaving room for the normal webhook delivery.
const graceAge = 30 * time.Second

type Poller struct {
	kieClient         *kie.Client
	dbClient          *supabase.DatabaseClient
	generationService *services.GenerationService
	cron              *cron.Cron
}

func New(kieClient *kie.Client, dbClient *supabase.DatabaseClient, generationService *services.GenerationService) *Poller {
	return &Poller{
		kieClient:         kieClient,
		dbClient:          dbClient,
		generationService: generationService,
		cron:              cron.New(),
	}
}

// Start schedules the sweep at the given interval and begins running it.
func (p *Poller) Start(interval time.Duration) error {
	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", interval), p.Sweep); err != nil {
		return fmt.Errorf("failed to schedule poller: %w", err)
	}
	p.cron.Start()
	log.Info().Dur("interval", interval).Msg("status poller started")
	return nil
}

func (p *Poller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
}

// Sweep reconciles processing assets against the provider. Marking an asset
// ready twice writes the same values, so racing a webhook delivery is
// harmless.
func (p *Poller) Sweep() {
	assets, err := p.dbClient.ListProcessingAssets(sweepLimit)
	if err != nil {
		log.Error().Err(err).Msg("poller failed to list processing assets")
		return
	}

	for i := range assets {
		asset := &assets[i]
		if time.Since(asset.CreatedAt) < graceAge {
			continue
		}
		if !asset.ProviderTaskID.Valid {
			continue
		}

		record, err := p.kieClient.GetTaskRecord(asset.ProviderTaskID.String)
		if err != nil {
			log.Warn().Str("asset_id", asset.ID.String()).Err(err).Msg("poller failed to fetch task record")
			continue
		}

		switch record.State {
		case kie.StateSuccess:
			p.generationService.HandleGenerationCompleted(record.TaskID, record.ResultURLs, record.Raw)
		case kie.StateFail:
			p.generationService.HandleGenerationFailed(record.TaskID, record.FailMsg, record.Raw)
		case kie.StateWaiting, kie.StateQueuing, kie.StateGenerating:
			// Still in flight.
		default:
			log.Warn().Str("asset_id", asset.ID.String()).Str("state", record.State).Msg("unknown task state")
		}
	}
}
