package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	noteTable      = "note"
	dataTable      = "data"
	syncStateTable = "sync_state"

	syncStateKeyLastSyncTime = "last_sync_time"
	syncStateKeyAccount      = "sync_account"
)

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildSelectNotesQuery(filter NoteFilter) (string, []any, error) {
	query := sqlite.Select(noteColumns...).From(noteTable).OrderBy(NoteColumnID)

	if len(filter.IDs) > 0 {
		query = query.Where(sq.Eq{NoteColumnID: filter.IDs})
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where(sq.NotEq{NoteColumnID: filter.ExcludeIDs})
	}
	if len(filter.ParentIDs) > 0 {
		query = query.Where(sq.Eq{NoteColumnParentID: filter.ParentIDs})
	}
	if len(filter.ExcludeParentIDs) > 0 {
		query = query.Where(sq.NotEq{NoteColumnParentID: filter.ExcludeParentIDs})
	}
	if len(filter.Types) > 0 {
		types := make([]int, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, int(t))
		}
		query = query.Where(sq.Eq{NoteColumnType: types})
	}
	if filter.Synced != nil {
		if *filter.Synced {
			query = query.Where(sq.NotEq{NoteColumnGTaskID: ""})
		} else {
			query = query.Where(sq.Eq{NoteColumnGTaskID: ""})
		}
	}
	if filter.LocalModified != nil {
		query = query.Where(sq.Eq{NoteColumnLocalModified: *filter.LocalModified})
	}

	return toSQL(query)
}

func buildInsertNoteQuery(fields Fields) (string, []any, error) {
	if err := checkFields(fields, writableNoteColumns, true); err != nil {
		return "", nil, err
	}

	return toSQL(sqlite.Insert(noteTable).SetMap(fields))
}

// buildUpdateNoteQuery increments the version of the row with every write.
// The optional guard turns the update into a compare-and-set on the version.
func buildUpdateNoteQuery(id int64, fields Fields, expectedVersion *int64) (string, []any, error) {
	if err := checkFields(fields, writableNoteColumns, true); err != nil {
		return "", nil, err
	}

	query := sqlite.Update(noteTable).
		SetMap(fields).
		Set(NoteColumnVersion, sq.Expr(NoteColumnVersion+" + 1")).
		Where(sq.Eq{NoteColumnID: id})
	if expectedVersion != nil {
		query = query.Where(sq.Eq{NoteColumnVersion: *expectedVersion})
	}

	return toSQL(query)
}

func buildDeleteNotesQuery(ids []int64) (string, []any, error) {
	return toSQL(sqlite.Delete(noteTable).Where(sq.Eq{NoteColumnID: ids}))
}

// buildClearSyncMarksQuery detaches every row from the remote account.
func buildClearSyncMarksQuery() (string, []any, error) {
	return toSQL(sqlite.Update(noteTable).
		Set(NoteColumnGTaskID, "").
		Set(NoteColumnSyncID, 0).
		Set(NoteColumnLocalModified, true))
}

func buildSelectDataQuery(filter DataFilter) (string, []any, error) {
	query := sqlite.Select(dataColumns...).From(dataTable).OrderBy(DataColumnID)

	if len(filter.IDs) > 0 {
		query = query.Where(sq.Eq{DataColumnID: filter.IDs})
	}
	if len(filter.NoteIDs) > 0 {
		query = query.Where(sq.Eq{DataColumnNoteID: filter.NoteIDs})
	}
	if len(filter.MimeTypes) > 0 {
		query = query.Where(sq.Eq{DataColumnMimeType: filter.MimeTypes})
	}

	return toSQL(query)
}

func buildInsertDataQuery(noteID int64, fields Fields) (string, []any, error) {
	if err := checkFields(fields, writableDataColumns, false); err != nil {
		return "", nil, err
	}

	values := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values[DataColumnNoteID] = noteID

	return toSQL(sqlite.Insert(dataTable).SetMap(values))
}

// buildUpdateDataQuery guards the write with the version of the owning note:
// the row is only touched while the note still has noteVersion.
func buildUpdateDataQuery(id int64, fields Fields, noteVersion *int64) (string, []any, error) {
	if err := checkFields(fields, writableDataColumns, true); err != nil {
		return "", nil, err
	}

	query := sqlite.Update(dataTable).
		SetMap(fields).
		Where(sq.Eq{DataColumnID: id})
	if noteVersion != nil {
		guard := sqlite.Select(NoteColumnID).From(noteTable).Where(sq.Eq{NoteColumnVersion: *noteVersion})
		guardSQL, guardArgs, err := guard.ToSql()
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		query = query.Where(sq.Expr(DataColumnNoteID+" IN ("+guardSQL+")", guardArgs...))
	}

	return toSQL(query)
}

func buildDeleteDataQuery(ids []int64) (string, []any, error) {
	return toSQL(sqlite.Delete(dataTable).Where(sq.Eq{DataColumnID: ids}))
}

func buildGetSyncStateQuery(key string) (string, []any, error) {
	return toSQL(sqlite.Select("value").From(syncStateTable).Where(sq.Eq{"key": key}))
}

func buildSetSyncStateQuery(key, value string) (string, []any, error) {
	return toSQL(sqlite.Insert(syncStateTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value"))
}

// checkFields rejects unknown columns. Updates need at least one field.
func checkFields(fields Fields, allowed map[string]struct{}, required bool) error {
	if required && len(fields) == 0 {
		return ErrEmptyFields
	}
	for column := range fields {
		if _, ok := allowed[column]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
		}
	}
	return nil
}

func toSQL(builder sq.Sqlizer) (string, []any, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
