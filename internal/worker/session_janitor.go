package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal-service/internal/config"
	"github.com/spec-kit/admin-portal-service/internal/service"
)

// StartSessionJanitor periodically deletes inactive session rows. It only
// ever touches deactivated rows, so it is safe alongside live traffic. The
// goroutine exits when ctx is cancelled.
func StartSessionJanitor(ctx context.Context, authService *service.AuthService, cfg config.JanitorConfig, logger *zap.Logger) {
	if !cfg.Enabled || authService == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(cfg.Interval())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := authService.DeleteInactiveSessions(ctx)
				if err != nil {
					logger.Error("session janitor sweep failed", zap.Error(err))
					continue
				}
				if deleted > 0 {
					logger.Info("session janitor sweep", zap.Int64("deleted", deleted))
				}
			}
		}
	}()
}
