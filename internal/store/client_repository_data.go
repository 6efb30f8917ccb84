package store

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// dataRepository is the SQLite-backed implementation of [DataRepository].
// Every committed write is published on the data collection of the
// [ChangeNotifier].
type dataRepository struct {
	*DB
	notifier *ChangeNotifier
	logger   *logger.Logger
}

func NewDataRepository(db *DB, notifier *ChangeNotifier, logger *logger.Logger) DataRepository {
	return &dataRepository{
		DB:       db,
		notifier: notifier,
		logger:   logger,
	}
}

func (r *dataRepository) Query(ctx context.Context, filter DataFilter) ([]models.DataRow, error) {
	log := logger.FromContext(ctx)

	rows, err := queryData(ctx, r.DB, filter)
	if err != nil {
		log.Err(err).
			Str("func", "dataRepository.Query").
			Int("note ids count", len(filter.NoteIDs)).
			Msg("failed to query data")
		return nil, err
	}

	return rows, nil
}

func (r *dataRepository) Insert(ctx context.Context, noteID int64, fields Fields) (int64, error) {
	log := logger.FromContext(ctx)

	id, err := insertData(ctx, r.DB, noteID, fields)
	if err != nil {
		log.Err(err).
			Str("func", "dataRepository.Insert").
			Int64("note_id", noteID).
			Msg("failed to insert data")
		return 0, err
	}

	r.notifier.Publish(ChangeEvent{Entity: EntityData, Op: ChangeInsert, IDs: []int64{id}})
	return id, nil
}

func (r *dataRepository) Update(ctx context.Context, id int64, fields Fields, noteVersion *int64) (int64, error) {
	log := logger.FromContext(ctx)

	affected, err := updateData(ctx, r.DB, id, fields, noteVersion)
	if err != nil {
		log.Err(err).
			Str("func", "dataRepository.Update").
			Int64("data_id", id).
			Msg("failed to update data")
		return 0, err
	}

	if affected > 0 {
		r.notifier.Publish(ChangeEvent{Entity: EntityData, Op: ChangeUpdate, IDs: []int64{id}})
	}
	return affected, nil
}

func (r *dataRepository) Delete(ctx context.Context, ids ...int64) (int64, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return 0, nil
	}

	affected, err := deleteRows(ctx, r.DB, EntityData, ids)
	if err != nil {
		log.Err(err).
			Str("func", "dataRepository.Delete").
			Int("ids count", len(ids)).
			Msg("failed to delete data")
		return 0, err
	}

	if affected > 0 {
		r.notifier.Publish(ChangeEvent{Entity: EntityData, Op: ChangeDelete, IDs: ids})
	}
	return affected, nil
}

func queryData(ctx context.Context, ex queryExecer, filter DataFilter) ([]models.DataRow, error) {
	query, args, err := buildSelectDataQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := ex.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var data []models.DataRow
	for rows.Next() {
		var d models.DataRow
		if err := rows.Scan(
			&d.ID,
			&d.MimeType,
			&d.NoteID,
			&d.CreatedDate,
			&d.ModifiedDate,
			&d.Content,
			&d.Data1,
			&d.Data2,
			&d.Data3,
		); err != nil {
			return nil, errors.Join(ErrScanningRow, err)
		}
		data = append(data, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return data, nil
}

func insertData(ctx context.Context, ex queryExecer, noteID int64, fields Fields) (int64, error) {
	query, args, err := buildInsertDataQuery(noteID, fields)
	if err != nil {
		return 0, err
	}

	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Join(ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Join(ErrExecutingStatement, err)
	}
	return id, nil
}

func updateData(ctx context.Context, ex queryExecer, id int64, fields Fields, noteVersion *int64) (int64, error) {
	query, args, err := buildUpdateDataQuery(id, fields, noteVersion)
	if err != nil {
		return 0, err
	}

	return execAffected(ctx, ex, query, args)
}
