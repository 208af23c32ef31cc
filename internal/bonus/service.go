package bonus

import (
	"context"
	"errors"
	"fmt"

	"player_bonus_service/internal/actionlog"
	"player_bonus_service/internal/auth"
	"player_bonus_service/internal/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	noteUpdated = "Bonus updated"
	noteDeleted = "Bonus deleted"
)

type LifecycleService interface {
	GetAllPaged(ctx context.Context, page int, pageSize int) (*PagedResult[BonusResponse], error)
	GetByID(ctx context.Context, id int64) (*BonusResponse, error)
	Create(ctx context.Context, principal auth.Principal, playerID int64, bonusType BonusType, amount decimal.Decimal) (*BonusResponse, error)
	Update(ctx context.Context, principal auth.Principal, id int64, amount decimal.Decimal, isActive bool) (*BonusResponse, error)
	SoftDelete(ctx context.Context, principal auth.Principal, id int64) error
}

type BonusService struct {
	store    Store
	recorder *actionlog.Recorder
	logger   *zap.Logger
}

func NewBonusService(store Store, recorder *actionlog.Recorder, logger *zap.Logger) *BonusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BonusService{
		store:    store,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *BonusService) GetAllPaged(ctx context.Context, page int, pageSize int) (*PagedResult[BonusResponse], error) {
	page, pageSize = NormalizePaging(page, pageSize)

	bonuses, total, err := s.store.Bonuses().GetAllPaged(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	return NewPagedResult(ToResponses(bonuses), page, pageSize, total), nil
}

func (s *BonusService) GetByID(ctx context.Context, id int64) (*BonusResponse, error) {
	bonus, err := s.store.Bonuses().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(bonus)
	return &resp, nil
}

func (s *BonusService) Create(ctx context.Context, principal auth.Principal, playerID int64, bonusType BonusType, amount decimal.Decimal) (resp *BonusResponse, err error) {
	defer func() { metrics.ObserveBonusOperation("create", outcomeOf(err)) }()

	if !bonusType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBonusType, bonusType)
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	exists, err := s.store.Bonuses().ExistsActiveBonus(ctx, playerID, bonusType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrActiveBonusExists
	}

	bonus := &PlayerBonus{
		PlayerID:  playerID,
		BonusType: bonusType,
		Amount:    amount,
		IsActive:  true,
		IsDeleted: false,
	}

	err = s.store.InTx(ctx, func(tx Store) error {
		return tx.Bonuses().Add(ctx, bonus)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bonus created",
		zap.Int64("bonus_id", bonus.ID),
		zap.Int64("player_id", playerID),
		zap.String("bonus_type", string(bonusType)),
		zap.String("operator", principal.Normalize().UserID),
	)

	return s.reload(ctx, bonus), nil
}

func (s *BonusService) Update(ctx context.Context, principal auth.Principal, id int64, amount decimal.Decimal, isActive bool) (resp *BonusResponse, err error) {
	defer func() { metrics.ObserveBonusOperation("update", outcomeOf(err)) }()

	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	bonus, err := s.store.Bonuses().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if isActive && !bonus.IsActive {
		exists, err := s.store.Bonuses().ExistsActiveBonus(ctx, bonus.PlayerID, bonus.BonusType)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrActiveBonusExists
		}
	}

	change := &actionlog.Change{
		AmountBefore:   bonus.Amount.StringFixed(2),
		AmountAfter:    amount.StringFixed(2),
		IsActiveBefore: bonus.IsActive,
		IsActiveAfter:  isActive,
	}
	bonus.Amount = amount
	bonus.IsActive = isActive

	err = s.store.InTx(ctx, func(tx Store) error {
		if err := tx.Bonuses().Update(ctx, bonus); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx.ActionLogs(), actionlog.Entry{
			BonusID:  bonus.ID,
			Action:   actionlog.ActionUpdated,
			Operator: principal,
			Note:     noteUpdated,
			Change:   change,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bonus updated",
		zap.Int64("bonus_id", id),
		zap.String("amount", amount.String()),
		zap.Bool("is_active", isActive),
		zap.String("operator", principal.Normalize().UserID),
	)

	return s.reload(ctx, bonus), nil
}

// SoftDelete is idempotent: deleting a missing or already deleted bonus
// succeeds without writing anything.
func (s *BonusService) SoftDelete(ctx context.Context, principal auth.Principal, id int64) (err error) {
	defer func() { metrics.ObserveBonusOperation("delete", outcomeOf(err)) }()

	bonus, err := s.store.Bonuses().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	err = s.store.InTx(ctx, func(tx Store) error {
		if err := tx.Bonuses().SoftDelete(ctx, bonus.ID); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx.ActionLogs(), actionlog.Entry{
			BonusID:  bonus.ID,
			Action:   actionlog.ActionDeleted,
			Operator: principal,
			Note:     noteDeleted,
			Change: &actionlog.Change{
				AmountBefore:   bonus.Amount.StringFixed(2),
				AmountAfter:    bonus.Amount.StringFixed(2),
				IsActiveBefore: bonus.IsActive,
				IsActiveAfter:  false,
			},
		})
	})
	if err != nil {
		// lost a race with another delete
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	s.logger.Info("bonus deleted",
		zap.Int64("bonus_id", id),
		zap.String("operator", principal.Normalize().UserID),
	)
	return nil
}

// reload re-reads a just-written bonus so the response carries the player
// details and storage timestamps. The in-memory entity is used if the row
// cannot be read back.
func (s *BonusService) reload(ctx context.Context, bonus *PlayerBonus) *BonusResponse {
	fresh, err := s.store.Bonuses().GetByID(ctx, bonus.ID)
	if err != nil {
		s.logger.Warn("failed to reload bonus", zap.Int64("bonus_id", bonus.ID), zap.Error(err))
		resp := ToResponse(bonus)
		return &resp
	}
	resp := ToResponse(fresh)
	return &resp
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrBadRequest):
		return metrics.OutcomeBadRequest
	case errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
