package usecase

import (
	"context"
	"time"

	"labournet-backend/pkg/cache"
	"labournet-backend/pkg/logger"
)

// Pinger is anything that can report its own reachability, e.g. *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	db    Pinger
	cache cache.Store
}

func NewHealthUsecase(db Pinger, store cache.Store) HealthUsecase {
	return &healthUsecase{db: db, cache: store}
}

// Check pings each dependency; the bool is false when any of them is down
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok", "cache": "ok"}
	healthy := true

	if u.db == nil {
		status["database"] = "unavailable"
		healthy = false
	} else if err := u.db.Ping(ctx); err != nil {
		logger.Log.WithError(err).Error("health: database ping failed")
		status["database"] = "unavailable"
		healthy = false
	}

	if u.cache != nil {
		if err := u.cache.Ping(ctx); err != nil {
			logger.Log.WithError(err).Warn("health: cache ping failed")
			status["cache"] = "unavailable"
			healthy = false
		}
	}

	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
