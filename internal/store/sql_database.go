package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/migrations"
	sq "github.com/Masterminds/squirrel"
)

const (
	defaultRetryBase = 100 * time.Millisecond
	connectRetryBase = 500 * time.Millisecond
)

// DB is a dialect-aware connection pool shared by all repositories.
type DB struct {
	*sql.DB
	dialect            dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	retryAttempts uint64
	retryBase     time.Duration
	now           func() time.Time
}

// NewDB opens a pool for cfg.Driver, applies the pool limits and waits for
// the database to answer a ping. The ping is retried with exponential
// backoff up to cfg.RetryAttempts times, so the server can start before the
// database container is ready.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		log.Err(err).Str("func", "NewDB").Msg("unsupported database driver")
		return nil, err
	}

	conn, err := d.open(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewDB").Str("driver", d.name).Msg("error occured during database connection")
		return nil, err
	}

	if cfg.MaxOpenConns > 0 && d.name != config.DriverSQLite {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	db := &DB{
		DB:                 conn,
		dialect:            d,
		errorClassificator: d.errors,
		logger:             log,
		retryAttempts:      uint64(max(cfg.RetryAttempts, 0)),
		retryBase:          defaultRetryBase,
		now:                utcNow,
	}

	// ping database
	if err = db.ping(ctx, connectRetryBase); err != nil {
		log.Err(err).Str("func", "NewDB").Str("driver", d.name).Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewDB").Str("driver", d.name).Msg("connected to database successfully")

	return db, nil
}

// Migrate applies the embedded migrations for the DB's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.name)
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.dialect.name
}

func (db *DB) builder() sq.StatementBuilderType {
	return db.dialect.builder()
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// insert executes an INSERT and returns the generated id, using RETURNING
// where the dialect supports it and LastInsertId otherwise.
func (db *DB) insert(ctx context.Context, query string, args []any) (int64, error) {
	if db.dialect.returning {
		var id int64
		if err := db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return id, nil
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return id, nil
}

// exec executes a DML statement and returns the number of affected rows.
func (db *DB) exec(ctx context.Context, query string, args []any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return affected, nil
}

// userConstraintError maps unique violations on the users table to the
// matching sentinel and returns any other error unchanged.
func (db *DB) userConstraintError(err error) error {
	column, ok := db.dialect.errors.UniqueViolation(err)
	if !ok {
		return err
	}

	switch column {
	case "email":
		return ErrEmailAlreadyExists
	case "username":
		return ErrUsernameAlreadyExists
	default:
		return ErrUserAlreadyExists
	}
}

// foreignKeyError maps foreign key failures to [ErrReferencedRowNotFound].
func (db *DB) foreignKeyError(err error) error {
	if db.dialect.errors.ForeignKeyViolation(err) {
		return ErrReferencedRowNotFound
	}
	return err
}
