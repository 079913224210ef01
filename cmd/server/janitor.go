package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/tasklist-api/internal/service/auth"
)

// revocationJanitor periodically removes revoked tokens whose natural expiry
// has passed; they can no longer authenticate anyway.
type revocationJanitor struct {
	authService auth.Service
	interval    time.Duration
	timeFunc    func() time.Time
	logger      *slog.Logger
	wg          sync.WaitGroup
}

func newRevocationJanitor(authService auth.Service, interval time.Duration, logger *slog.Logger) *revocationJanitor {
	return &revocationJanitor{
		authService: authService,
		interval:    interval,
		timeFunc:    time.Now,
		logger:      logger.With("component", "revocation_janitor"),
	}
}

// Start runs the purge loop until ctx is canceled.
func (j *revocationJanitor) Start(ctx context.Context) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				j.logger.Debug("revocation janitor stopped")
				return
			case <-ticker.C:
				j.purge(ctx)
			}
		}
	}()
}

// Wait blocks until the purge loop has returned.
func (j *revocationJanitor) Wait() {
	j.wg.Wait()
}

func (j *revocationJanitor) purge(ctx context.Context) {
	removed, err := j.authService.PurgeExpired(ctx, j.timeFunc())
	if err != nil {
		if ctx.Err() == nil {
			j.logger.Error("failed to purge expired revocations", "error", err)
		}
		return
	}
	if removed > 0 {
		j.logger.Info("purged expired revocations", "count", removed)
	}
}
