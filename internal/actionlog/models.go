package actionlog

import (
	"time"

	"gorm.io/datatypes"
)

type ActionType string

const (
	ActionUpdated ActionType = "Updated"
	ActionDeleted ActionType = "Deleted"
)

// ActionLog is one append-only audit row documenting a change to a bonus.
type ActionLog struct {
	ID               int64          `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerBonusID    int64          `gorm:"column:player_bonus_id;not null;index"`
	ActionType       ActionType     `gorm:"column:action_type;type:varchar(20);not null;index"`
	OperatorUserID   string         `gorm:"column:operator_user_id;size:100;not null"`
	OperatorUserName string         `gorm:"column:operator_user_name;size:200;not null"`
	Note             *string        `gorm:"column:note;size:500"`
	Changes          datatypes.JSON `gorm:"column:changes"`
	CreatedAt        time.Time      `gorm:"column:created_at;not null;autoCreateTime"`
}

func (ActionLog) TableName() string { return "player_bonus_action_logs" }

// Change describes the before and after state of the fields an action touched.
type Change struct {
	AmountBefore   string `json:"amountBefore"`
	AmountAfter    string `json:"amountAfter"`
	IsActiveBefore bool   `json:"isActiveBefore"`
	IsActiveAfter  bool   `json:"isActiveAfter"`
}
