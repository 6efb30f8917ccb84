package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
)

type batchApplier struct {
	*DB
	notifier *ChangeNotifier
	logger   *logger.Logger
}

// NewBatchApplier returns a [BatchApplier] that runs all operations of a
// batch in one SQLite transaction.
func NewBatchApplier(db *DB, notifier *ChangeNotifier, logger *logger.Logger) BatchApplier {
	return &batchApplier{
		DB:       db,
		notifier: notifier,
		logger:   logger,
	}
}

// BatchApply executes ops in order inside a transaction. Either every
// operation is applied or none. A guarded update that matches no row is not
// an error: its result simply reports zero affected rows.
//
// Change notifications are published only after the commit.
func (b *batchApplier) BatchApply(ctx context.Context, ops []Operation) ([]OperationResult, error) {
	log := logger.FromContext(ctx)

	if len(ops) == 0 {
		return nil, nil
	}

	var results []OperationResult
	err := b.inTx(ctx, func(tx *sql.Tx) error {
		results = make([]OperationResult, 0, len(ops))
		for i, op := range ops {
			res, err := applyOperation(ctx, tx, op)
			if err != nil {
				return fmt.Errorf("operation %d (%s): %w", i, op.Entity, err)
			}
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "batchApplier.BatchApply").
			Int("operations", len(ops)).
			Msg("batch rolled back")
		return nil, err
	}

	for i, op := range ops {
		b.notify(op, results[i])
	}

	return results, nil
}

func applyOperation(ctx context.Context, tx queryExecer, op Operation) (OperationResult, error) {
	switch {
	case op.Entity == EntityNote && op.Type == OperationInsert:
		id, err := insertNote(ctx, tx, op.Fields)
		return OperationResult{ID: id, Affected: 1}, err

	case op.Entity == EntityNote && op.Type == OperationUpdate:
		affected, err := updateNote(ctx, tx, op.ID, op.Fields, op.Version)
		return OperationResult{ID: op.ID, Affected: affected}, err

	case op.Entity == EntityData && op.Type == OperationInsert:
		id, err := insertData(ctx, tx, op.NoteID, op.Fields)
		return OperationResult{ID: id, Affected: 1}, err

	case op.Entity == EntityData && op.Type == OperationUpdate:
		affected, err := updateData(ctx, tx, op.ID, op.Fields, op.Version)
		return OperationResult{ID: op.ID, Affected: affected}, err

	case op.Type == OperationDelete:
		affected, err := deleteRows(ctx, tx, op.Entity, []int64{op.ID})
		return OperationResult{ID: op.ID, Affected: affected}, err

	default:
		return OperationResult{}, fmt.Errorf("%w: entity=%s type=%d", ErrUnknownOperation, op.Entity, op.Type)
	}
}

func (b *batchApplier) notify(op Operation, res OperationResult) {
	if res.Affected == 0 {
		return
	}

	var change ChangeOp
	switch op.Type {
	case OperationInsert:
		change = ChangeInsert
	case OperationUpdate:
		change = ChangeUpdate
	default:
		change = ChangeDelete
	}

	b.notifier.Publish(ChangeEvent{Entity: op.Entity, Op: change, IDs: []int64{res.ID}})
}
