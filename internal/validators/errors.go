package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyActions       = errors.New("action list cannot be empty")
	ErrInvalidActionType  = errors.New("invalid action type")
	ErrInvalidActionID    = errors.New("invalid action id")
	ErrDuplicateActionID  = errors.New("duplicate action id")
	ErrEmptyEntityID      = errors.New("entity id is required")
	ErrEmptyEntityDelta   = errors.New("entity delta is required")
	ErrInvalidEntityType  = errors.New("invalid entity type")
	ErrEmptyListID        = errors.New("list id is required")
	ErrEmptyMoveSource    = errors.New("source list is required")
	ErrEmptyMoveDest      = errors.New("destination parent is required")
	ErrNegativeIndex      = errors.New("index cannot be negative")
	ErrEmptyAccountName   = errors.New("account name is required")
	ErrEmptyAccountSecret = errors.New("account secret is required")
)
