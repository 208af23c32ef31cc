package bonus

import (
	"time"

	"player_bonus_service/internal/actionlog"

	"github.com/shopspring/decimal"
)

type BonusType string

const (
	BonusTypeWelcome   BonusType = "Welcome"
	BonusTypeCashback  BonusType = "Cashback"
	BonusTypeFreeSpins BonusType = "FreeSpins"
)

var knownBonusTypes = map[BonusType]struct{}{
	BonusTypeWelcome:   {},
	BonusTypeCashback:  {},
	BonusTypeFreeSpins: {},
}

// Valid reports whether t is one of the recognized bonus types.
func (t BonusType) Valid() bool {
	_, ok := knownBonusTypes[t]
	return ok
}

// Player is owned by the seeding step; the bonus core only reads it.
type Player struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;size:120;not null;index"`
	Email     string    `gorm:"column:email;size:255;not null"`
	IsDeleted bool      `gorm:"column:is_deleted;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (Player) TableName() string { return "players" }

// PlayerBonus is one promotional grant to one player. At most one row per
// (player_id, bonus_type) may be active and not deleted; the partial unique
// index below enforces that for concurrent writers.
type PlayerBonus struct {
	ID         int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID   int64                 `gorm:"column:player_id;not null;uniqueIndex:ux_player_bonuses_active_type,where:is_active = true AND is_deleted = false"`
	Player     Player                `gorm:"foreignKey:PlayerID;constraint:OnDelete:RESTRICT"`
	BonusType  BonusType             `gorm:"column:bonus_type;type:varchar(20);not null;uniqueIndex:ux_player_bonuses_active_type"`
	Amount     decimal.Decimal       `gorm:"column:amount;type:numeric(18,2);not null"`
	IsActive   bool                  `gorm:"column:is_active;not null"`
	IsDeleted  bool                  `gorm:"column:is_deleted;not null"`
	CreatedAt  time.Time             `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;not null;autoUpdateTime"`
	ActionLogs []actionlog.ActionLog `gorm:"foreignKey:PlayerBonusID;constraint:OnDelete:RESTRICT"`
}

func (PlayerBonus) TableName() string { return "player_bonuses" }

type CreateBonusRequest struct {
	PlayerID  int64           `json:"playerId" binding:"required"`
	BonusType BonusType       `json:"bonusType" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

type UpdateBonusRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	IsActive bool            `json:"isActive"`
}

type BonusResponse struct {
	ID          int64           `json:"id"`
	PlayerID    int64           `json:"playerId"`
	PlayerName  string          `json:"playerName"`
	PlayerEmail string          `json:"playerEmail"`
	BonusType   BonusType       `json:"bonusType"`
	Amount      decimal.Decimal `json:"amount"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// NormalizePaging clamps page to >= 1 and pageSize to [1, MaxPageSize],
// substituting DefaultPageSize for non-positive sizes.
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

type PagedResult[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

func NewPagedResult[T any](items []T, page, pageSize int, totalCount int64) *PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}
	return &PagedResult[T]{
		Items:       items,
		Page:        page,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
