package postgres

import (
	"context"

	"go-inquiry-backend/internal/domain"

	"gorm.io/gorm"
)

type quoteRepo struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) domain.QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, quote *domain.QuoteRequest) error {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return wrapStorageError("create quote request "+quote.QuoteNumber, err)
	}
	return nil
}
