package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"college-portal.backend/pkg/logger"
	"college-portal.backend/pkg/metrics"
)

// PendingCounter is the slice of the verification ledger the job reads
type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

// PendingBacklogJob periodically publishes the number of undecided
// verification requests to the pending gauge
type PendingBacklogJob struct {
	repo     PendingCounter
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	setGauge func(float64)
}

func NewPendingBacklogJob(repo PendingCounter, interval time.Duration) *PendingBacklogJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PendingBacklogJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
		setGauge: metrics.PendingVerificationRequests.Set,
	}
}

// Start blocks until ctx is cancelled or Stop is called. The gauge is
// refreshed once immediately.
func (j *PendingBacklogJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting pending verification backlog job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Pending verification backlog job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Pending verification backlog job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

// Stop ends Start. Safe to call more than once.
func (j *PendingBacklogJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *PendingBacklogJob) refresh(ctx context.Context) {
	count, err := j.repo.CountPending(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to count pending verification requests", zap.Error(err))
		return
	}
	j.setGauge(float64(count))
}
