package actionlog

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	Add(ctx context.Context, log *ActionLog) error
}

type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository binds the repository to db, which may be a transaction handle.
func NewRepository(db *gorm.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Add(ctx context.Context, log *ActionLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create action log: %w", err)
	}
	return nil
}
