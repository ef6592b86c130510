package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers used by the classifier.
// See https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	mysqlErrTooManyConnections = 1040
	mysqlErrLockWaitTimeout    = 1205
	mysqlErrLockDeadlock       = 1213
	mysqlErrDupEntry           = 1062
	mysqlErrNoReferencedRow    = 1216
	mysqlErrNoReferencedRow2   = 1452
	mysqlDuplicateKeyMarker    = "for key "
)

func mysqlDialect() dialect {
	return dialect{
		name:        config.DriverMySQL,
		placeholder: sq.Question,
		returning:   false,
		onConflict:  false,
		errors:      NewMySQLErrorClassifier(),
		open:        openMySQL,
	}
}

// openMySQL forces parseTime so DATETIME columns scan into time.Time, and
// clientFoundRows so UPDATE reports matched rather than changed rows.
func openMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing mysql DSN: %w", err)
	}

	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	return sql.OpenDB(connector), nil
}

// MySQLErrorClassifier implements [ErrorClassificator] for MySQL and MariaDB.
type MySQLErrorClassifier struct{}

// NewMySQLErrorClassifier constructs a [MySQLErrorClassifier] ready for use.
func NewMySQLErrorClassifier() *MySQLErrorClassifier {
	return &MySQLErrorClassifier{}
}

// Classify implements [ErrorClassificator].
//
// Retryable: deadlocks (1213), lock wait timeouts (1205), too many
// connections (1040) and broken connections reported by the driver.
// Everything else is [NonRetryable].
func (c *MySQLErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	if errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, driver.ErrBadConn) {
		return Retryable
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrLockDeadlock, mysqlErrLockWaitTimeout, mysqlErrTooManyConnections:
			return Retryable
		}
	}

	return NonRetryable
}

// UniqueViolation implements [constraintInspector]. MySQL reports the key
// name at the end of the message: Duplicate entry 'x' for key 'users.users_email_unique'.
func (c *MySQLErrorClassifier) UniqueViolation(err error) (string, bool) {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) || myErr.Number != mysqlErrDupEntry {
		return "", false
	}

	key := myErr.Message
	if i := strings.LastIndex(key, mysqlDuplicateKeyMarker); i >= 0 {
		key = key[i+len(mysqlDuplicateKeyMarker):]
	} else {
		key = ""
	}

	return userColumnFromConstraint(key), true
}

// ForeignKeyViolation implements [constraintInspector].
func (c *MySQLErrorClassifier) ForeignKeyViolation(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}

	return myErr.Number == mysqlErrNoReferencedRow || myErr.Number == mysqlErrNoReferencedRow2
}
