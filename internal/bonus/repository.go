package bonus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Repository reads never return soft-deleted rows.
type Repository interface {
	GetAllPaged(ctx context.Context, page int, pageSize int) ([]PlayerBonus, int64, error)
	GetByID(ctx context.Context, id int64) (*PlayerBonus, error)
	ExistsActiveBonus(ctx context.Context, playerID int64, bonusType BonusType) (bool, error)
	Add(ctx context.Context, bonus *PlayerBonus) error
	Update(ctx context.Context, bonus *PlayerBonus) error
	SoftDelete(ctx context.Context, id int64) error
}

type RepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

func (r *RepositoryImpl) GetAllPaged(ctx context.Context, page int, pageSize int) ([]PlayerBonus, int64, error) {
	page, pageSize = NormalizePaging(page, pageSize)

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&PlayerBonus{}).
		Scopes(notDeleted).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bonuses: %w", err)
	}

	var bonuses []PlayerBonus
	err := r.db.WithContext(ctx).
		Scopes(notDeleted).
		Preload("Player").
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bonuses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bonuses: %w", err)
	}

	return bonuses, total, nil
}

func (r *RepositoryImpl) GetByID(ctx context.Context, id int64) (*PlayerBonus, error) {
	var bonus PlayerBonus
	err := r.db.WithContext(ctx).
		Scopes(notDeleted).
		Preload("Player").
		Where("id = ?", id).
		First(&bonus).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBonusNotFound, id)
		}
		return nil, fmt.Errorf("failed to get bonus: %w", err)
	}

	return &bonus, nil
}

func (r *RepositoryImpl) ExistsActiveBonus(ctx context.Context, playerID int64, bonusType BonusType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PlayerBonus{}).
		Scopes(notDeleted).
		Where("player_id = ? AND bonus_type = ? AND is_active = ?", playerID, bonusType, true).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check active bonus: %w", err)
	}
	return count > 0, nil
}

func (r *RepositoryImpl) Add(ctx context.Context, bonus *PlayerBonus) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(bonus).Error
	if err != nil {
		return translateWriteError(err, "create player bonus")
	}
	return nil
}

func (r *RepositoryImpl) Update(ctx context.Context, bonus *PlayerBonus) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&PlayerBonus{}).
		Scopes(notDeleted).
		Where("id = ?", bonus.ID).
		Updates(map[string]interface{}{
			"amount":     bonus.Amount,
			"is_active":  bonus.IsActive,
			"updated_at": now,
		})

	if result.Error != nil {
		return translateWriteError(result.Error, "update player bonus")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrBonusNotFound, bonus.ID)
	}

	bonus.UpdatedAt = now
	return nil
}

func (r *RepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&PlayerBonus{}).
		Scopes(notDeleted).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to soft delete player bonus: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrBonusNotFound, id)
	}
	return nil
}

// translateWriteError maps constraint violations raised by the storage engine
// onto the service's error kinds. A unique violation can only come from the
// active-bonus index, so it means another writer won the race.
func translateWriteError(err error, action string) error {
	switch {
	case isUniqueViolation(err):
		return ErrActiveBonusExists
	case isForeignKeyViolation(err):
		return ErrPlayerNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
