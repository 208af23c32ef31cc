package bonus

import (
	"context"

	"player_bonus_service/internal/actionlog"

	"gorm.io/gorm"
)

// Store groups the repositories that take part in one unit of work.
// A successful InTx is the single commit of a mutating operation.
type Store interface {
	Bonuses() Repository
	ActionLogs() actionlog.Repository
	InTx(ctx context.Context, fn func(tx Store) error) error
}

type GormStore struct {
	db         *gorm.DB
	bonuses    *RepositoryImpl
	actionLogs *actionlog.RepositoryImpl
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:         db,
		bonuses:    NewRepository(db),
		actionLogs: actionlog.NewRepository(db),
	}
}

func (s *GormStore) Bonuses() Repository {
	return s.bonuses
}

func (s *GormStore) ActionLogs() actionlog.Repository {
	return s.actionLogs
}

// InTx runs fn against repositories bound to a single transaction. Returning
// an error from fn rolls everything back.
func (s *GormStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
