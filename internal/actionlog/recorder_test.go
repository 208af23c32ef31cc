package actionlog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"player_bonus_service/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRepository struct {
	logs []*ActionLog
	err  error
}

func (r *captureRepository) Add(_ context.Context, log *ActionLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, log)
	return nil
}

func TestRecord_BuildsLog(t *testing.T) {
	repo := &captureRepository{}
	recorder := NewRecorder()

	err := recorder.Record(context.Background(), repo, Entry{
		BonusID:  42,
		Action:   ActionUpdated,
		Operator: auth.Principal{UserID: "u-1", UserName: "Jane", Role: "admin"},
		Note:     "Bonus updated",
		Change:   &Change{AmountBefore: "10.00", AmountAfter: "12.50", IsActiveBefore: true, IsActiveAfter: false},
	})

	require.NoError(t, err)
	require.Len(t, repo.logs, 1)
	log := repo.logs[0]
	assert.Equal(t, int64(42), log.PlayerBonusID)
	assert.Equal(t, ActionUpdated, log.ActionType)
	assert.Equal(t, "u-1", log.OperatorUserID)
	assert.Equal(t, "Jane", log.OperatorUserName)
	require.NotNil(t, log.Note)
	assert.Equal(t, "Bonus updated", *log.Note)

	var change Change
	require.NoError(t, json.Unmarshal(log.Changes, &change))
	assert.Equal(t, "12.50", change.AmountAfter)
	assert.False(t, change.IsActiveAfter)
}

func TestRecord_UnknownOperatorAndNoNote(t *testing.T) {
	repo := &captureRepository{}

	err := NewRecorder().Record(context.Background(), repo, Entry{BonusID: 1, Action: ActionDeleted})

	require.NoError(t, err)
	require.Len(t, repo.logs, 1)
	assert.Equal(t, auth.Unknown, repo.logs[0].OperatorUserID)
	assert.Equal(t, auth.Unknown, repo.logs[0].OperatorUserName)
	assert.Nil(t, repo.logs[0].Note)
	assert.Nil(t, repo.logs[0].Changes)
}

func TestRecord_PropagatesRepositoryError(t *testing.T) {
	repo := &captureRepository{err: errors.New("boom")}

	err := NewRecorder().Record(context.Background(), repo, Entry{BonusID: 1, Action: ActionDeleted})

	assert.EqualError(t, err, "boom")
}
