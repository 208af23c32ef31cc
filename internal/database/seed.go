package database

import (
	"context"
	"fmt"

	"player_bonus_service/internal/bonus"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedPlayer struct {
	player  bonus.Player
	bonuses []bonus.PlayerBonus
}

func seedData() []seedPlayer {
	return []seedPlayer{
		{
			player: bonus.Player{Name: "Alice Johnson", Email: "alice.johnson@example.com"},
			bonuses: []bonus.PlayerBonus{
				{BonusType: bonus.BonusTypeWelcome, Amount: decimal.NewFromInt(50), IsActive: true},
				{BonusType: bonus.BonusTypeFreeSpins, Amount: decimal.NewFromInt(20), IsActive: true},
			},
		},
		{
			player: bonus.Player{Name: "Mark Petrov", Email: "mark.petrov@example.com"},
			bonuses: []bonus.PlayerBonus{
				{BonusType: bonus.BonusTypeCashback, Amount: decimal.NewFromInt(15), IsActive: true},
			},
		},
	}
}

// Seed inserts demo players and bonuses into an empty players table.
// It does nothing once any player exists.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&bonus.Player{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count players: %w", err)
	}
	if count > 0 {
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sp := range seedData() {
			player := sp.player
			if err := tx.Create(&player).Error; err != nil {
				return fmt.Errorf("failed to seed player %s: %w", player.Email, err)
			}
			for _, b := range sp.bonuses {
				b.PlayerID = player.ID
				if err := tx.Omit(clause.Associations).Create(&b).Error; err != nil {
					return fmt.Errorf("failed to seed bonus for %s: %w", player.Email, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("database seeded")
	return nil
}
