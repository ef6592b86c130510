package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with the
// server-assigned fields (ID, Role default, CreatedAt, UpdatedAt) filled in.
//
// Unique violations are the last line of defense against concurrent
// registrations with the same identity:
//   - users.email    → [ErrEmailAlreadyExists]
//   - users.username → [ErrUsernameAlreadyExists]
//   - other/unknown  → [ErrUserAlreadyExists]
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)
	now := r.db.now()

	query, args, err := buildCreateUserQuery(r.db.builder(), user, now, r.db.dialect.returning)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to create query")
		return models.User{}, err
	}

	// create user in db
	id, err := r.db.insert(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.db.userConstraintError(err)
	}

	user.ID = id
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	return user, nil
}

// FindUserByEmail returns the user with the given (already normalized) email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", "email", email)
}

// FindUserByUsername returns the user with the given username.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByUsername", "username", username)
}

// FindUserByID returns the user with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", "id", id)
}

// FindUserByOpenID returns the user linked to the given external identity.
func (r *userRepository) FindUserByOpenID(ctx context.Context, openID string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByOpenID", "open_id", openID)
}

// findUser runs a single-row lookup on column. No rows →
// [ErrNoUserWasFound]; retryable driver errors are retried.
func (r *userRepository) findUser(ctx context.Context, funcName, column string, value any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.db.builder(), column, value)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to create query")
		return models.User{}, err
	}

	var user models.User
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		user, scanErr = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	default:
		log.Err(err).Str("func", funcName).Str("column", column).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// UpsertByExternalID inserts the user identified by openID or, if one exists,
// updates it in place. Attributes left unset in attrs are not touched on
// update and take their column default on insert; last_signed_in is always
// written.
//
// PostgreSQL and SQLite do this in one INSERT ... ON CONFLICT (open_id)
// statement. MySQL's ON DUPLICATE KEY UPDATE fires on any unique key (a
// colliding email would update somebody else's row), so there it runs as
// UPDATE-then-INSERT inside a transaction.
func (r *userRepository) UpsertByExternalID(ctx context.Context, openID string, attrs models.ExternalUserAttributes) error {
	log := logger.FromContext(ctx)
	now := r.db.now()

	if !r.db.dialect.onConflict {
		return r.upsertInTx(ctx, openID, attrs)
	}

	query, args, err := buildUpsertUserQuery(r.db.builder(), r.db.dialect, openID, attrs, now)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpsertByExternalID").Msg("failed to create query")
		return err
	}

	if _, err = r.db.exec(ctx, query, args); err != nil {
		log.Err(err).Str("func", "*userRepository.UpsertByExternalID").Msg("error upserting user")
		return r.db.userConstraintError(err)
	}

	return nil
}

func (r *userRepository) upsertInTx(ctx context.Context, openID string, attrs models.ExternalUserAttributes) error {
	log := logger.FromContext(ctx)
	now := r.db.now()

	updateQuery, updateArgs, err := buildUpdateExternalUserQuery(r.db.builder(), openID, attrs, now)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.upsertInTx").Msg("failed to create update query")
		return err
	}

	insertQuery, insertArgs, err := buildInsertExternalUserQuery(r.db.builder(), openID, attrs, now)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.upsertInTx").Msg("failed to create insert query")
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.upsertInTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.upsertInTx").Msg("error updating external user")
		return r.db.userConstraintError(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		if _, err = tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			log.Err(err).Str("func", "*userRepository.upsertInTx").Msg("error inserting external user")
			return r.db.userConstraintError(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.upsertInTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
