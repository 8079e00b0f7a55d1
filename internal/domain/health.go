package domain

import "context"

type HealthStatus struct {
	Status   string `json:"status" example:"OK"`
	Message  string `json:"message" example:"Server running"`
	Database string `json:"database" example:"connected"`
	Email    string `json:"email" example:"configured"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}
