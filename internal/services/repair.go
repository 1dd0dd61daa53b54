package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/internal/infrastructure/localstore"
	"github.com/casaflow/backend/repository"
)

// repairItem is one pending image write-back, keyed by property id so a
// row sanitized twice keeps a single queue entry.
type repairItem struct {
	PropertyID     string    `json:"property_id"`
	Images         []string  `json:"images"`
	MainPhotoIndex int       `json:"main_photo_index"`
	Retries        int       `json:"retries"`
	Timestamp      time.Time `json:"timestamp"`
}

// RepairConfig controls how frequently the repair queue is drained.
type RepairConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// RepairProcessor pushes sanitized image lists back to the remote store in
// the background. Write-backs are best-effort: failures are retried a few
// times and then dropped, never surfaced to the mutation that queued them.
type RepairProcessor struct {
	store  *localstore.Store
	remote repository.PropertyRepository
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RepairConfig
}

func NewRepairProcessor(store *localstore.Store, remote repository.PropertyRepository, logger *zap.Logger, cfg RepairConfig) *RepairProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 25
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rp := &RepairProcessor{
		store:  store,
		remote: remote,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = rp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := rp.Drain(ctx); err != nil {
			rp.logger.Error("repair drain failed", zap.Error(err))
		}
	})

	return rp
}

// Enqueue records the sanitized image state of a property for later
// write-back. Implements the fallback layer's RepairQueue.
func (rp *RepairProcessor) Enqueue(property *domain.Property) error {
	if rp == nil || rp.store == nil || property == nil || property.ID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(repairItem{
		PropertyID:     property.ID,
		Images:         property.Images,
		MainPhotoIndex: property.MainPhotoIndex,
		Timestamp:      time.Now(),
	})
	if err != nil {
		return err
	}
	return rp.store.Put(localstore.BucketRepairs, property.ID, payload)
}

// Start launches the cron scheduler.
func (rp *RepairProcessor) Start() {
	if rp == nil || rp.cron == nil {
		return
	}
	rp.cron.Start()
	rp.logger.Info("repair processor started")
}

// Stop gracefully stops the scheduler.
func (rp *RepairProcessor) Stop(ctx context.Context) {
	if rp == nil || rp.cron == nil {
		return
	}
	stopCtx := rp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	rp.logger.Info("repair processor stopped")
}

// Drain pushes queued repairs to the remote store synchronously.
func (rp *RepairProcessor) Drain(ctx context.Context) error {
	if rp == nil || rp.store == nil {
		return nil
	}

	raw, err := rp.store.List(localstore.BucketRepairs)
	if err != nil {
		return err
	}

	processed := 0
	for _, payload := range raw {
		if processed >= rp.cfg.BatchSize {
			break
		}
		var item repairItem
		if err := json.Unmarshal(payload, &item); err != nil {
			continue
		}
		processed++

		if err := rp.writeBack(ctx, item); err != nil {
			rp.logger.Warn("image repair write-back failed",
				zap.String("property_id", item.PropertyID),
				zap.Error(err))

			item.Retries++
			if item.Retries >= rp.cfg.MaxRetries {
				rp.logger.Warn("dropping image repair (max retries reached)",
					zap.String("property_id", item.PropertyID))
				_ = rp.store.Delete(localstore.BucketRepairs, item.PropertyID)
				continue
			}
			if updated, err := json.Marshal(item); err == nil {
				_ = rp.store.Put(localstore.BucketRepairs, item.PropertyID, updated)
			}
			continue
		}

		if err := rp.store.Delete(localstore.BucketRepairs, item.PropertyID); err != nil {
			rp.logger.Warn("failed to purge repaired item", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of queued repairs.
func (rp *RepairProcessor) Size() int {
	if rp == nil || rp.store == nil {
		return 0
	}
	size, err := rp.store.Size(localstore.BucketRepairs)
	if err != nil {
		return 0
	}
	return size
}

func (rp *RepairProcessor) writeBack(ctx context.Context, item repairItem) error {
	property, err := rp.remote.GetByID(ctx, item.PropertyID)
	if err != nil {
		// A row deleted since sanitization has nothing left to repair.
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil
		}
		return err
	}
	property.Images = item.Images
	property.MainPhotoIndex = item.MainPhotoIndex
	return rp.remote.Update(ctx, property)
}
