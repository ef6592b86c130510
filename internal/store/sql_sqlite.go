package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-blog/internal/config"
	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// sqliteDefaultParams are appended to the DSN unless already present.
// Foreign keys are off by default in SQLite; without them ON DELETE CASCADE
// does nothing.
var sqliteDefaultParams = []string{"_foreign_keys=on", "_busy_timeout=5000"}

// SQLite error messages matched by the classifier.
const (
	sqliteUniqueFailed     = "UNIQUE constraint failed"
	sqliteForeignKeyFailed = "FOREIGN KEY constraint failed"
	sqliteBusy             = "database is locked"
	sqliteTableLocked      = "database table is locked"
)

func sqliteDialect() dialect {
	return dialect{
		name:        config.DriverSQLite,
		placeholder: sq.Question,
		returning:   true,
		onConflict:  true,
		errors:      NewSQLiteErrorClassifier(),
		open:        openSQLite,
	}
}

func openSQLite(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", sqliteDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// a single writer avoids SQLITE_BUSY storms and keeps :memory: databases
	// on one connection
	conn.SetMaxOpenConns(1)

	return conn, nil
}

func sqliteDSN(dsn string) string {
	for _, param := range sqliteDefaultParams {
		key := param[:strings.Index(param, "=")+1]
		if strings.Contains(dsn, key) {
			continue
		}

		if strings.Contains(dsn, "?") {
			dsn += "&" + param
		} else {
			dsn += "?" + param
		}
	}

	return dsn
}

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. SQLITE_BUSY and SQLITE_LOCKED are
// retryable; everything else is not.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	msg := err.Error()
	if strings.Contains(msg, sqliteBusy) || strings.Contains(msg, sqliteTableLocked) {
		return Retryable
	}

	return NonRetryable
}

// UniqueViolation implements [constraintInspector]. SQLite names the column:
// UNIQUE constraint failed: users.email.
func (c *SQLiteErrorClassifier) UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	msg := err.Error()
	i := strings.Index(msg, sqliteUniqueFailed)
	if i < 0 {
		return "", false
	}

	return userColumnFromConstraint(msg[i+len(sqliteUniqueFailed):]), true
}

// ForeignKeyViolation implements [constraintInspector].
func (c *SQLiteErrorClassifier) ForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), sqliteForeignKeyFailed)
}
