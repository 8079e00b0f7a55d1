package usecase

import (
	"context"
	"time"

	"go-inquiry-backend/config"
	"go-inquiry-backend/internal/domain"
)

type healthUsecase struct {
	ping  func(ctx context.Context) error
	email config.EmailConfig
}

// NewHealthUsecase reports liveness. ping is nil when no database is configured.
func NewHealthUsecase(ping func(ctx context.Context) error, email config.EmailConfig) domain.HealthUsecase {
	return &healthUsecase{ping: ping, email: email}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	status := domain.HealthStatus{
		Status:   "OK",
		Message:  "Server running",
		Database: "not_configured",
		Email:    "not_configured",
	}

	if u.ping != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := u.ping(ctx); err != nil {
			status.Database = "unavailable"
		} else {
			status.Database = "connected"
		}
	}

	if u.email.IsConfigured() {
		status.Email = "configured"
	}
	return status
}
