package core

import "errors"

// Predefined errors returned by SQLForge statement construction and compilation.
// All misuse is reported synchronously at the call (or compile) that caused it;
// the library performs no I/O and has no transient failure modes.
var (
	// ErrInvalidIdentifier is returned when an identifier is empty or contains
	// characters outside [A-Za-z0-9_.].
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrEmptyInClause is returned when an IN predicate is built with no values.
	ErrEmptyInClause = errors.New("IN clause requires at least one value")
	// ErrMissingJoinCondition is returned when a JOIN is added without an ON predicate.
	ErrMissingJoinCondition = errors.New("join requires an ON condition")
	// ErrInvalidLimit is returned when LIMIT or OFFSET is negative.
	ErrInvalidLimit = errors.New("limit and offset must be non-negative")
	// ErrIllegalClause is returned when a clause is attached to a statement kind
	// that forbids it.
	ErrIllegalClause = errors.New("clause is not legal for this statement kind")
	// ErrDuplicateColumn is returned when the same column is assigned twice in an
	// INSERT or UPDATE.
	ErrDuplicateColumn = errors.New("column assigned more than once")
	// ErrEmptyStatement is returned when compiling an underspecified statement
	// (no projection, no table, or no assignments, depending on kind).
	ErrEmptyStatement = errors.New("statement is underspecified")
	// ErrUnsupportedLiteral is returned when a bound value has a type the
	// compiler cannot hand to a database driver.
	ErrUnsupportedLiteral = errors.New("unsupported literal type")
	// ErrUnsupportedDialect is returned when an unknown dialect name is configured.
	ErrUnsupportedDialect = errors.New("unsupported SQL dialect")
	// ErrMissingParam is returned when a named query template is built without a
	// binding for one of its parameters.
	ErrMissingParam = errors.New("missing named parameter")
	// ErrUnsafeFragment is returned when the configured security validator
	// rejects a compiled query containing an injection-shaped fragment.
	ErrUnsafeFragment = errors.New("unsafe SQL fragment")
)

// WrapError wraps an error with additional context message.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
