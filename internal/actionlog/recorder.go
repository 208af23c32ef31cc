package actionlog

import (
	"context"
	"encoding/json"
	"fmt"

	"player_bonus_service/internal/auth"

	"gorm.io/datatypes"
)

// Entry is what the caller knows about an action; Recorder turns it into a row.
type Entry struct {
	BonusID  int64
	Action   ActionType
	Operator auth.Principal
	Note     string
	Change   *Change
}

// Recorder appends audit rows. It writes through whatever repository it is
// handed, so callers pass the one bound to their open transaction and the row
// commits or rolls back together with the mutation it documents.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(ctx context.Context, repo Repository, entry Entry) error {
	operator := entry.Operator.Normalize()
	log := &ActionLog{
		PlayerBonusID:    entry.BonusID,
		ActionType:       entry.Action,
		OperatorUserID:   operator.UserID,
		OperatorUserName: operator.UserName,
	}
	if entry.Note != "" {
		note := entry.Note
		log.Note = &note
	}
	if entry.Change != nil {
		raw, err := json.Marshal(entry.Change)
		if err != nil {
			return fmt.Errorf("failed to encode action log change: %w", err)
		}
		log.Changes = datatypes.JSON(raw)
	}
	return repo.Add(ctx, log)
}
