package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
)

type syncStateRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *syncStateRepository) LastSyncTime(ctx context.Context) (int64, error) {
	value, err := r.get(ctx, syncStateKeyLastSyncTime)
	if err != nil || value == "" {
		return 0, err
	}

	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStateRepository.LastSyncTime").
			Str("value", value).
			Msg("stored last sync time is not a number")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return millis, nil
}

func (r *syncStateRepository) SetLastSyncTime(ctx context.Context, millis int64) error {
	return r.set(ctx, syncStateKeyLastSyncTime, strconv.FormatInt(millis, 10))
}

func (r *syncStateRepository) SyncAccount(ctx context.Context) (string, error) {
	return r.get(ctx, syncStateKeyAccount)
}

func (r *syncStateRepository) SetSyncAccount(ctx context.Context, name string) error {
	return r.set(ctx, syncStateKeyAccount, name)
}

func (r *syncStateRepository) get(ctx context.Context, key string) (string, error) {
	query, args, err := buildGetSyncStateQuery(key)
	if err != nil {
		return "", err
	}

	var value string
	err = scanValue(ctx, r.DB, &value, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStateRepository.get").
			Str("key", key).
			Msg("failed to read sync state")
		return "", err
	}
	return value, nil
}

func (r *syncStateRepository) set(ctx context.Context, key, value string) error {
	query, args, err := buildSetSyncStateQuery(key, value)
	if err != nil {
		return err
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStateRepository.set").
			Str("key", key).
			Msg("failed to write sync state")
		return errors.Join(ErrExecutingStatement, err)
	}
	return nil
}
