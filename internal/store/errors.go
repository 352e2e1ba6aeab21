package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user insert or update collides
	// with the unique email index.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a user lookup matches no row.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTokenNotFound is returned when the user has no active token.
	ErrTokenNotFound = errors.New("token was not found")

	// ErrRecipeNotFound is returned when a recipe does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable.
	ErrRecipeNotFound = errors.New("recipe was not found")

	// ErrAttributeNotFound is returned when a recipe link references a tag or
	// ingredient row that does not exist.
	ErrAttributeNotFound = errors.New("tag or ingredient was not found")

	// ErrUnknownAttributeKind is returned for an attribute kind that has no
	// backing table.
	ErrUnknownAttributeKind = errors.New("unknown attribute kind")

	// ErrImageNotFound is returned by image storages when deleting or reading
	// a file that does not exist.
	ErrImageNotFound = errors.New("image was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrUnsupportedDriver is returned by NewConnectDB for an unknown driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrDatabaseUnavailable is returned when the database did not answer a
	// ping within the configured connect timeout.
	ErrDatabaseUnavailable = errors.New("database is unavailable")

	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
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

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
