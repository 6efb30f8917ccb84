package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoteNotFound is returned when a note row addressed by id does not
	// exist, for example because it was deleted between classification and
	// commit of a sync pass.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrDataNotFound is returned when a data row addressed by id does not
	// exist.
	ErrDataNotFound = errors.New("data was not found")

	// ErrUnknownColumn is returned when a field set names a column that does
	// not belong to the target table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrEmptyFields is returned when an update carries no fields.
	ErrEmptyFields = errors.New("no fields to write")

	// ErrUnknownOperation is returned by BatchApply for an operation kind it
	// cannot execute.
	ErrUnknownOperation = errors.New("unknown batch operation")

	// ErrContentNotCommitted is returned when the content of a row proxy is
	// read before the row was ever written.
	ErrContentNotCommitted = errors.New("row has not been committed yet")

	// ErrLoginAlreadyExists is returned when an account with the same login
	// is already registered on the task service.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when no account matches a login.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTaskNotFound is returned by the task service repositories when an
	// entity id does not exist for the user.
	ErrTaskNotFound = errors.New("task was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
