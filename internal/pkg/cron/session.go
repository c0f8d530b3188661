package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
)

const PurgeRefreshTokensJob = "purge_expired_refresh_tokens"

// SessionJobs keeps the refresh_tokens table from growing without bound.
type SessionJobs struct {
	refreshTokenRepo auth.RefreshTokenRepository
	now              func() time.Time
}

func NewSessionJobs(refreshTokenRepo auth.RefreshTokenRepository) *SessionJobs {
	return &SessionJobs{
		refreshTokenRepo: refreshTokenRepo,
		now:              time.Now,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(PurgeRefreshTokensJob, 6*time.Hour, j.PurgeExpiredRefreshTokens)
}

func (j *SessionJobs) PurgeExpiredRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokenRepo.DeleteExpired(ctx, j.now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Cron: purged expired refresh tokens", "count", deleted)
	}
	return nil
}
