package postgres

import (
	"context"

	"go-inquiry-backend/internal/domain"

	"gorm.io/gorm"
)

type contactRepo struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) domain.ContactRepository {
	return &contactRepo{db: db}
}

// Create inserts the row and fills in the generated id.
func (r *contactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return wrapStorageError("create contact", err)
	}
	return nil
}
