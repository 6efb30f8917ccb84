package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/validators"
	"github.com/MKhiriev/go-notes-sync/models"
)

type TaskValidationService struct {
	inner     TaskService
	validator validators.Validator
}

func NewTaskValidationService() TaskServiceWrapper {
	return &TaskValidationService{
		validator: validators.NewBatchValidator(),
	}
}

func (v *TaskValidationService) Lists(ctx context.Context, userID int64) ([]models.RemoteEntity, error) {
	if userID <= 0 {
		return nil, ErrValidationNoUserID
	}

	return v.inner.Lists(ctx, userID)
}

func (v *TaskValidationService) ExecuteBatch(ctx context.Context, userID int64, req models.BatchRequest) (models.BatchResponse, error) {
	if userID <= 0 {
		return models.BatchResponse{}, ErrValidationNoUserID
	}
	if len(req.Actions) == 0 {
		return models.BatchResponse{}, ErrValidationNoActionsProvided
	}

	// every action has to be well formed before the first one is applied
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.BatchResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ExecuteBatch(ctx, userID, req)
}

func (v *TaskValidationService) Wrap(wrapper TaskService) TaskService {
	v.inner = wrapper
	return v
}
