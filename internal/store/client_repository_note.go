package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// noteRepository is the SQLite-backed implementation of [NoteRepository].
// Every committed write is published on the note collection of the
// [ChangeNotifier].
type noteRepository struct {
	*DB
	notifier *ChangeNotifier
	logger   *logger.Logger
}

func NewNoteRepository(db *DB, notifier *ChangeNotifier, logger *logger.Logger) NoteRepository {
	return &noteRepository{
		DB:       db,
		notifier: notifier,
		logger:   logger,
	}
}

func (r *noteRepository) Query(ctx context.Context, filter NoteFilter) ([]models.NoteRow, error) {
	log := logger.FromContext(ctx)

	rows, err := queryNotes(ctx, r.DB, filter)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Query").
			Msg("failed to query notes")
		return nil, err
	}

	return rows, nil
}

func (r *noteRepository) Get(ctx context.Context, id int64) (models.NoteRow, error) {
	log := logger.FromContext(ctx)

	rows, err := queryNotes(ctx, r.DB, NoteFilter{IDs: []int64{id}})
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Get").
			Int64("note_id", id).
			Msg("failed to query note")
		return models.NoteRow{}, err
	}
	if len(rows) == 0 {
		return models.NoteRow{}, fmt.Errorf("%w: id=%d", ErrNoteNotFound, id)
	}

	return rows[0], nil
}

func (r *noteRepository) Insert(ctx context.Context, fields Fields) (int64, error) {
	log := logger.FromContext(ctx)

	id, err := insertNote(ctx, r.DB, fields)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Insert").
			Msg("failed to insert note")
		return 0, err
	}

	r.notifier.Publish(ChangeEvent{Entity: EntityNote, Op: ChangeInsert, IDs: []int64{id}})
	return id, nil
}

func (r *noteRepository) Update(ctx context.Context, id int64, fields Fields, expectedVersion *int64) (int64, error) {
	log := logger.FromContext(ctx)

	affected, err := updateNote(ctx, r.DB, id, fields, expectedVersion)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Update").
			Int64("note_id", id).
			Msg("failed to update note")
		return 0, err
	}

	if affected > 0 {
		r.notifier.Publish(ChangeEvent{Entity: EntityNote, Op: ChangeUpdate, IDs: []int64{id}})
	}
	return affected, nil
}

func (r *noteRepository) Delete(ctx context.Context, ids ...int64) (int64, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return 0, nil
	}

	affected, err := deleteRows(ctx, r.DB, EntityNote, ids)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Delete").
			Int("ids count", len(ids)).
			Msg("failed to delete notes")
		return 0, err
	}

	if affected > 0 {
		r.notifier.Publish(ChangeEvent{Entity: EntityNote, Op: ChangeDelete, IDs: ids})
	}
	return affected, nil
}

func (r *noteRepository) ClearSyncMarks(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := buildClearSyncMarksQuery()
	if err != nil {
		return err
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "noteRepository.ClearSyncMarks").
			Msg("failed to clear sync marks")
		return errors.Join(ErrExecutingStatement, err)
	}

	log.Info().Str("func", "noteRepository.ClearSyncMarks").Msg("sync marks cleared")
	return nil
}

func queryNotes(ctx context.Context, ex queryExecer, filter NoteFilter) ([]models.NoteRow, error) {
	query, args, err := buildSelectNotesQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := ex.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.NoteRow
	for rows.Next() {
		var n models.NoteRow
		if err := rows.Scan(
			&n.ID,
			&n.ParentID,
			&n.AlertDate,
			&n.BgColorID,
			&n.CreatedDate,
			&n.HasAttachment,
			&n.ModifiedDate,
			&n.NotesCount,
			&n.Snippet,
			&n.Type,
			&n.WidgetID,
			&n.WidgetType,
			&n.SyncID,
			&n.LocalModified,
			&n.OriginParentID,
			&n.GTaskID,
			&n.Version,
		); err != nil {
			return nil, errors.Join(ErrScanningRow, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return notes, nil
}

func insertNote(ctx context.Context, ex queryExecer, fields Fields) (int64, error) {
	query, args, err := buildInsertNoteQuery(fields)
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

func updateNote(ctx context.Context, ex queryExecer, id int64, fields Fields, expectedVersion *int64) (int64, error) {
	query, args, err := buildUpdateNoteQuery(id, fields, expectedVersion)
	if err != nil {
		return 0, err
	}

	return execAffected(ctx, ex, query, args)
}

func deleteRows(ctx context.Context, ex queryExecer, entity EntityKind, ids []int64) (int64, error) {
	var (
		query string
		args  []any
		err   error
	)
	if entity == EntityData {
		query, args, err = buildDeleteDataQuery(ids)
	} else {
		query, args, err = buildDeleteNotesQuery(ids)
	}
	if err != nil {
		return 0, err
	}

	return execAffected(ctx, ex, query, args)
}

func execAffected(ctx context.Context, ex queryExecer, query string, args []any) (int64, error) {
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Join(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrExecutingStatement, err)
	}
	return affected, nil
}

// scanValue reads a single column of a single row. sql.ErrNoRows is
// returned unchanged.
func scanValue(ctx context.Context, ex queryExecer, dest any, query string, args []any) error {
	err := ex.QueryRowContext(ctx, query, args...).Scan(dest)
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if err != nil {
		return errors.Join(ErrScanningRow, err)
	}
	return nil
}
