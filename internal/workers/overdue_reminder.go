package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/logging"
	"blueline/reservehub/internal/metrics"
	models "blueline/reservehub/internal/models/gorm"
	"blueline/reservehub/internal/services"
)

// OverdueReminderWorker scans active checkouts past their expected return
// date and nags the holder plus the admins. The cache entry keeps it to one
// reminder per assignment per day.
type OverdueReminderWorker struct {
	db       *gorm.DB
	notifier *services.NotificationService
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
	interval time.Duration
}

func NewOverdueReminderWorker(
	db *gorm.DB,
	notifier *services.NotificationService,
	cache common.CacheInterface,
	m *metrics.MetricsRegistry,
	interval time.Duration,
) *OverdueReminderWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &OverdueReminderWorker{
		db:       db,
		notifier: notifier,
		cache:    cache,
		metrics:  m,
		interval: interval,
	}
}

// Start runs the scan loop until the context is cancelled.
func (w *OverdueReminderWorker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logging.Info("Overdue reminder worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			logging.Info("Overdue reminder worker stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := w.scan(ctx); err != nil {
				log.Printf("[OverdueWorker] scan failed: %v", err)
			}
		}
	}
}

func (w *OverdueReminderWorker) scan(ctx context.Context) error {
	var overdue []models.AssignedEquipment
	err := w.db.WithContext(ctx).
		Preload("Equipment").
		Where("checked_in_at IS NULL").
		Where("expected_return_date IS NOT NULL AND expected_return_date < ?", time.Now()).
		Find(&overdue).Error
	if err != nil {
		return fmt.Errorf("failed to query overdue assignments: %w", err)
	}

	for i := range overdue {
		a := &overdue[i]

		cacheKey := string(constants.CachePrefixOverdueNotice) + a.ID
		if _, seen := w.cache.Get(cacheKey); seen {
			continue
		}

		msg := fmt.Sprintf("%s (serial %s) was due back on %s",
			a.Equipment.Name,
			a.Equipment.SerialNumber,
			a.ExpectedReturnDate.Format("2006-01-02"),
		)

		if _, err := w.notifier.Notify(ctx, constants.NotifEquipmentOverdue, msg, nil, []string{a.UserID}); err != nil {
			log.Printf("[OverdueWorker] failed to notify holder for assignment %s: %v", a.ID, err)
			continue
		}

		admins, err := w.notifier.AdminAudience(ctx)
		if err == nil && len(admins) > 0 {
			adminMsg := fmt.Sprintf("Overdue equipment: %s", msg)
			if _, err := w.notifier.Notify(ctx, constants.NotifEquipmentOverdue, adminMsg, nil, admins); err != nil {
				log.Printf("[OverdueWorker] failed to notify admins for assignment %s: %v", a.ID, err)
			}
		}

		w.cache.Set(cacheKey, true, 24*time.Hour)
		if w.metrics != nil {
			w.metrics.OverdueReminders.Inc()
		}
	}

	return nil
}

// InitWorkers starts all background workers under one errgroup.
func InitWorkers(
	ctx context.Context,
	db *gorm.DB,
	notifier *services.NotificationService,
	cache common.CacheInterface,
	m *metrics.MetricsRegistry,
) *errgroup.Group {
	g, ctx := errgroup.WithContext(ctx)

	overdue := NewOverdueReminderWorker(db, notifier, cache, m, time.Hour)
	g.Go(func() error {
		return overdue.Start(ctx)
	})

	return g
}
