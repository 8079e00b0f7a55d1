package postgres

import (
	"context"

	"go-inquiry-backend/internal/domain"

	"gorm.io/gorm"
)

type emailLogRepo struct {
	db *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) domain.EmailLogRepository {
	return &emailLogRepo{db: db}
}

func (r *emailLogRepo) Create(ctx context.Context, entry *domain.EmailLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return wrapStorageError("create email log", err)
	}
	return nil
}

// Models lists every table owned by this package, for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&domain.Contact{},
		&domain.QuoteRequest{},
		&domain.EmailLog{},
	}
}
