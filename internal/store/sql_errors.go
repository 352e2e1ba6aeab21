package store

// ErrorClassification is the result of [ErrorClassificator.Classify]: the
// kind of constraint a failed statement violated, if any.
type ErrorClassification int

const (
	// Unclassified covers every error that is not a known constraint
	// violation (connection loss, syntax errors, cancellations).
	Unclassified ErrorClassification = iota

	// UniqueViolation means a UNIQUE or PRIMARY KEY constraint rejected the row.
	UniqueViolation

	// ForeignKeyViolation means a referenced row does not exist.
	ForeignKeyViolation

	// CheckViolation means a CHECK or NOT NULL constraint rejected the row.
	CheckViolation
)

// ErrorClassificator maps driver-specific errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
