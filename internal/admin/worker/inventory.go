// Package worker runs the admin server's background jobs.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/idx"
	"github.com/aussiebroadwan/cmsadmin/pkg/platformsdk"
	"github.com/aussiebroadwan/cmsadmin/pkg/slogx"
)

// InventorySyncer fetches inventory changes since the last stored watermark.
// *platformsdk.Client satisfies it.
type InventorySyncer interface {
	SyncInventory(ctx context.Context) (*platformsdk.InventoryChanges, error)
}

// SyncStatus describes the most recent sync run.
type SyncStatus struct {
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
	Updated   int       `json:"updated"`
	Deleted   int       `json:"deleted"`
	Runs      int       `json:"runs"`
	Skipped   int       `json:"skipped"`

	// SKUs from the last run whose available stock is at or below their
	// reorder level.
	LowStock []string `json:"low_stock,omitempty"`
}

// InventorySyncService periodically pulls inventory deltas from the
// platform so the dashboard's low-stock view stays current. Runs are
// skipped while no session is stored.
type InventorySyncService struct {
	Syncer     InventorySyncer
	HasSession func(ctx context.Context) bool
	Logger     *slog.Logger
	Interval   time.Duration
	Timeout    time.Duration

	mu     sync.RWMutex
	status SyncStatus

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewInventorySyncService creates the worker. If interval is 0 or negative,
// defaults to 5 minutes.
func NewInventorySyncService(
	syncer InventorySyncer,
	hasSession func(ctx context.Context) bool,
	logger *slog.Logger,
	interval time.Duration,
) *InventorySyncService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &InventorySyncService{
		Syncer:     syncer,
		HasSession: hasSession,
		Logger:     logger,
		Interval:   interval,
		Timeout:    30 * time.Second,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *InventorySyncService) Start() {
	go s.run()
	s.Logger.Info("inventory sync started", "interval", s.Interval)
}

// Stop blocks until any in-progress sync has finished.
func (s *InventorySyncService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("inventory sync stopped")
}

// Status returns a copy of the latest run's outcome.
func (s *InventorySyncService) Status() SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.status
	out.LowStock = append([]string(nil), s.status.LowStock...)
	return out
}

func (s *InventorySyncService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sync immediately on startup
	s.RunOnce()

	for {
		select {
		case <-ticker.C:
			s.RunOnce()
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs a single sync. It is exported so the CLI can trigger one
// without starting the loop.
func (s *InventorySyncService) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	ctx = slogx.WithRequestID(slogx.WithContext(ctx, s.Logger), idx.New().String())
	logger := slogx.FromContext(ctx)

	if s.HasSession != nil && !s.HasSession(ctx) {
		logger.Debug("no session stored, skipping inventory sync")
		s.mu.Lock()
		s.status.Skipped++
		s.mu.Unlock()
		return
	}

	changes, err := s.Syncer.SyncInventory(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.LastRun = time.Now()
	s.status.Runs++

	if err != nil {
		s.status.LastError = err.Error()
		logger.Error("inventory sync failed", "error", err)
		return
	}

	var low []string
	for _, item := range changes.Items {
		if item.LowStock() {
			low = append(low, item.SKU)
		}
	}

	s.status.LastError = ""
	s.status.Updated = len(changes.Items)
	s.status.Deleted = len(changes.Deleted)
	s.status.LowStock = low

	logger.Info("inventory sync completed",
		"updated", len(changes.Items),
		"deleted", len(changes.Deleted),
		"low_stock", len(low),
	)
}
