// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-blog/internal/config"
	sq "github.com/Masterminds/squirrel"
)

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// constraintInspector extracts constraint details from driver errors.
type constraintInspector interface {
	// UniqueViolation reports whether err is a unique violation and, when it
	// can be told, which users column was duplicated.
	UniqueViolation(err error) (column string, ok bool)
	// ForeignKeyViolation reports whether err is a foreign key failure.
	ForeignKeyViolation(err error) bool
}

// dialectErrors is implemented by each driver's error classifier.
type dialectErrors interface {
	ErrorClassificator
	constraintInspector
}

// dialect captures the SQL differences between the supported databases.
type dialect struct {
	// name is the configured driver name (config.DriverPostgres, ...).
	name string
	// placeholder is the bind parameter style ($1 or ?).
	placeholder sq.PlaceholderFormat
	// returning is true when INSERT ... RETURNING id is available.
	returning bool
	// onConflict is true when INSERT ... ON CONFLICT (col) DO UPDATE is available.
	onConflict bool
	// errors classifies and inspects driver errors.
	errors dialectErrors
	// open opens a connection pool for the given DSN.
	open func(dsn string) (*sql.DB, error)
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return postgresDialect(), nil
	case config.DriverMySQL:
		return mysqlDialect(), nil
	case config.DriverSQLite:
		return sqliteDialect(), nil
	default:
		return dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func (d dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// titleSearch matches blog titles containing pattern. PostgreSQL LIKE is case
// sensitive, so ILIKE is used there.
func (d dialect) titleSearch(term string) sq.Sqlizer {
	pattern := "%" + term + "%"
	if d.name == config.DriverPostgres {
		return sq.ILike{"blogs.title": pattern}
	}
	return sq.Like{"blogs.title": pattern}
}

// upsertSuffix renders the conflict clause that overwrites columns when a row
// with the same conflict key already exists.
func (d dialect) upsertSuffix(conflictColumn string, columns []string) string {
	set := make([]string, 0, len(columns))
	for _, c := range columns {
		set = append(set, fmt.Sprintf("%s = excluded.%s", c, c))
	}

	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", conflictColumn, strings.Join(set, ", "))
}

// userColumnFromConstraint maps a constraint name or driver message to the
// users column it guards.
func userColumnFromConstraint(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "email"):
		return "email"
	case strings.Contains(s, "username"):
		return "username"
	case strings.Contains(s, "open_id"):
		return "open_id"
	default:
		return ""
	}
}
