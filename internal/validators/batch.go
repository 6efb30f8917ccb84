package validators

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldActions targets the action list of a batch request.
	FieldActions = "action_list"

	// FieldActionIDs enforces positive, unique action ids inside a batch.
	FieldActionIDs = "action_ids"

	FieldActionType  = "action_type"
	FieldEntityID    = "id"
	FieldEntityDelta = "entity_delta"
	FieldEntityType  = "entity_type"
	FieldListID      = "list_id"
	FieldIndex       = "index"
	FieldSourceList  = "source_list"
	FieldDestParent  = "dest_parent"

	FieldAccountName   = "user"
	FieldAccountSecret = "secret"
)

// BatchValidator implements the Validator interface for the wire models of
// the task service: Action, BatchRequest and Account.
//
// Value and pointer forms of every model are accepted. When no fields are
// given an action is checked against the fields its type requires.
type BatchValidator struct {
}

// NewBatchValidator constructs a new BatchValidator and returns it as the
// Validator interface.
func NewBatchValidator() Validator {
	return &BatchValidator{}
}

// Validate dispatches validation to the type-specific method. Returns
// ErrUnsupportedType for any other value.
func (v *BatchValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Action:
		return v.validateAction(ctx, value, fields...)
	case *models.Action:
		return v.validateAction(ctx, *value, fields...)

	case models.BatchRequest:
		return v.validateBatchRequest(ctx, value, fields...)
	case *models.BatchRequest:
		return v.validateBatchRequest(ctx, *value, fields...)

	case models.Account:
		return v.validateAccount(ctx, value, fields...)
	case *models.Account:
		return v.validateAccount(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// requiredActionFields lists what each action type cannot do without.
func requiredActionFields(action models.Action) []string {
	switch action.ActionType {
	case models.ActionTypeCreate:
		if action.EntityDelta != nil && action.EntityDelta.EntityType == models.EntityTypeTask {
			return []string{FieldEntityDelta, FieldEntityType, FieldListID, FieldIndex}
		}
		return []string{FieldEntityDelta, FieldEntityType, FieldIndex}
	case models.ActionTypeUpdate:
		return []string{FieldEntityID, FieldEntityDelta}
	case models.ActionTypeMove:
		return []string{FieldEntityID, FieldSourceList, FieldDestParent}
	case models.ActionTypeGetAll:
		return []string{FieldListID}
	default:
		return nil
	}
}

func (v *BatchValidator) validateAction(ctx context.Context, action models.Action, fields ...string) error {
	if len(fields) == 0 {
		fields = append([]string{FieldActionType}, requiredActionFields(action)...)
	}

	for _, f := range fields {
		switch f {
		case FieldActionType:
			switch action.ActionType {
			case models.ActionTypeCreate, models.ActionTypeUpdate, models.ActionTypeMove, models.ActionTypeGetAll:
			default:
				return ErrInvalidActionType
			}
		case FieldEntityID:
			if action.ID == "" {
				return ErrEmptyEntityID
			}
		case FieldEntityDelta:
			if action.EntityDelta == nil {
				return ErrEmptyEntityDelta
			}
		case FieldEntityType:
			if action.EntityDelta == nil {
				return ErrEmptyEntityDelta
			}
			if t := action.EntityDelta.EntityType; t != models.EntityTypeGroup && t != models.EntityTypeTask {
				return ErrInvalidEntityType
			}
		case FieldListID:
			if action.ListID == "" {
				return ErrEmptyListID
			}
		case FieldIndex:
			if action.Index < 0 {
				return ErrNegativeIndex
			}
		case FieldSourceList:
			if action.SourceList == "" {
				return ErrEmptyMoveSource
			}
		case FieldDestParent:
			if action.DestParent == "" {
				return ErrEmptyMoveDest
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateBatchRequest checks the batch as a whole and then every action
// with the fields its type requires.
//
// Default validated fields (when none specified): FieldActions, FieldActionIDs.
func (v *BatchValidator) validateBatchRequest(ctx context.Context, req models.BatchRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldActions, FieldActionIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldActions:
			if len(req.Actions) == 0 {
				return ErrEmptyActions
			}
			for _, action := range req.Actions {
				if err := v.validateAction(ctx, action); err != nil {
					return err
				}
			}
		case FieldActionIDs:
			seen := make(map[int]struct{}, len(req.Actions))
			for _, action := range req.Actions {
				if action.ActionID <= 0 {
					return ErrInvalidActionID
				}
				if _, dup := seen[action.ActionID]; dup {
					return ErrDuplicateActionID
				}
				seen[action.ActionID] = struct{}{}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BatchValidator) validateAccount(ctx context.Context, account models.Account, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountName, FieldAccountSecret}
	}

	for _, f := range fields {
		switch f {
		case FieldAccountName:
			if account.Name == "" {
				return ErrEmptyAccountName
			}
		case FieldAccountSecret:
			if account.Secret == "" {
				return ErrEmptyAccountSecret
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
