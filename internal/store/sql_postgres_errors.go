package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the retry loop in retry.go whether a failed
// read may be attempted again.
type ErrorClassification int

// PostgresErrorClassifier implements [ErrorClassificator] and
// [constraintInspector] over *pgconn.PgError values from the pgx driver.
type PostgresErrorClassifier struct{}

const (
	// NonRetryable is the default for any error not known to be transient.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures such as a dropped connection.
	Retryable
)

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not
// *pgconn.PgError anywhere in the chain are [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}

	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] by its
// SQLSTATE (https://www.postgresql.org/docs/current/errcodes-appendix.html).
//
// Retryable:
//   - class 08, connection exceptions;
//   - class 40, transaction rollback (serialization failure, deadlock);
//   - 57P03 cannot_connect_now and 53300 too_many_connections.
//
// Everything else, constraint violations included, is [NonRetryable].
// 57014 query_canceled is deliberately absent: it follows a cancelled context.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	code := pgErr.Code

	switch {
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code):
		return Retryable
	case code == pgerrcode.CannotConnectNow,
		code == pgerrcode.TooManyConnections:
		return Retryable
	}

	return NonRetryable
}

// UniqueViolation implements [constraintInspector]. The duplicated column is
// derived from the violated constraint name (e.g. users_email_key).
func (c *PostgresErrorClassifier) UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	return userColumnFromConstraint(pgErr.ConstraintName), true
}

// ForeignKeyViolation implements [constraintInspector].
func (c *PostgresErrorClassifier) ForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
