package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/config"
	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func postgresDialect() dialect {
	return dialect{
		name:        config.DriverPostgres,
		placeholder: sq.Dollar,
		returning:   true,
		onConflict:  true,
		errors:      NewPostgresErrorClassifier(),
		open:        openPostgres,
	}
}

func openPostgres(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	return conn, nil
}
