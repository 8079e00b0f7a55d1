package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-inquiry-backend/config"
	"go-inquiry-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name     string
		ping     func(context.Context) error
		email    config.EmailConfig
		database string
		mail     string
	}{
		{name: "nothing configured", database: "not_configured", mail: "not_configured"},
		{
			name:     "database up",
			ping:     func(context.Context) error { return nil },
			email:    testEmailConfig(),
			database: "connected",
			mail:     "configured",
		},
		{
			name:     "database down",
			ping:     func(context.Context) error { return errors.New("connection refused") },
			email:    testEmailConfig(),
			database: "unavailable",
			mail:     "configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := usecase.NewHealthUsecase(tt.ping, tt.email).Check(context.Background())

			assert.Equal(t, "OK", status.Status)
			assert.Equal(t, "Server running", status.Message)
			assert.Equal(t, tt.database, status.Database)
			assert.Equal(t, tt.mail, status.Email)
		})
	}
}
