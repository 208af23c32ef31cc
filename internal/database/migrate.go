package database

import (
	"fmt"

	"player_bonus_service/internal/actionlog"
	"player_bonus_service/internal/bonus"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema, including the partial unique index
// that keeps one active bonus per player and type.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&bonus.Player{},
		&bonus.PlayerBonus{},
		&actionlog.ActionLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
