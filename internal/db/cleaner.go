package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartOTPCleaner removes expired one-time codes with interval
func StartOTPCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    DELETE FROM otps
                     WHERE expires_at < now()
                `)
				if err != nil {
					log.Error("failed to clean expired otps", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned expired otps", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
