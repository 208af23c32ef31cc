package bonus

import "errors"

// Error kinds. Every error returned by the service that is not an internal
// failure wraps exactly one of these.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrInvalidBonusType  = newKindError(ErrBadRequest, "unrecognized bonus type")
	ErrNegativeAmount    = newKindError(ErrBadRequest, "amount must not be negative")
	ErrPlayerNotFound    = newKindError(ErrBadRequest, "player does not exist")
	ErrBonusNotFound     = newKindError(ErrNotFound, "bonus not found")
	ErrActiveBonusExists = newKindError(ErrConflict, "player already has an active bonus of this type")
)

type kindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
