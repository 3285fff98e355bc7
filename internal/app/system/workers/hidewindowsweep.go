// internal/app/system/workers/hidewindowsweep.go
package workers

import (
	"context"
	"sync"
	"time"

	assignmentstore "github.com/homeclass/portal/internal/app/store/assignments"
	"go.uber.org/zap"
)

// HideWindowSweep is a background worker that clears elapsed per-user
// hide windows on completed assignments. The sweep only unsets the
// window fields; assignment documents are never deleted here, so
// history stays intact for staff views.
type HideWindowSweep struct {
	assignments *assignmentstore.Store
	log         *zap.Logger
	interval    time.Duration
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

// NewHideWindowSweep creates the sweep worker. interval is how often
// to scan (e.g., 5 minutes); precision beyond that is not needed
// because reads also apply the window at render time.
func NewHideWindowSweep(assignments *assignmentstore.Store, logger *zap.Logger, interval time.Duration) *HideWindowSweep {
	return &HideWindowSweep{
		assignments: assignments,
		log:         logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *HideWindowSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("hide-window sweep worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *HideWindowSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("hide-window sweep worker stopped")
}

func (w *HideWindowSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *HideWindowSweep) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.assignments.ExpireHideWindows(ctx, time.Now().UTC())
	if err != nil {
		w.log.Error("hide-window sweep failed", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("cleared elapsed hide windows", zap.Int64("count", count))
	}
}
