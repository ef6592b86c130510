package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
)

type commentRepository struct {
	*DB
	logger *logger.Logger
}

// NewCommentRepository constructs a [CommentRepository] backed by db.
func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	logger.Debug().Msg("creating comment repository")
	return &commentRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *commentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)
	now := c.now()

	query, args, err := buildCreateCommentQuery(c.builder(), comment, now, c.dialect.returning)
	if err != nil {
		log.Err(err).Str("func", "commentRepository.CreateComment").Msg("failed to create query")
		return models.Comment{}, err
	}

	id, err := c.insert(ctx, query, args)
	if err != nil {
		log.Err(err).
			Str("func", "commentRepository.CreateComment").
			Int64("blog_id", comment.BlogID).
			Int64("author_id", comment.AuthorID).
			Msg("error inserting comment")
		return models.Comment{}, c.foreignKeyError(err)
	}

	comment.ID = id
	comment.CreatedAt = now
	comment.UpdatedAt = now

	return comment, nil
}

func (c *commentRepository) GetCommentByID(ctx context.Context, id int64) (models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetCommentQuery(c.builder(), id)
	if err != nil {
		log.Err(err).Str("func", "commentRepository.GetCommentByID").Msg("failed to create query")
		return models.Comment{}, err
	}

	var comment models.Comment
	err = c.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		comment, scanErr = scanComment(c.QueryRowContext(ctx, query, args...))
		return scanErr
	})

	switch {
	case err == nil:
		return comment, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Comment{}, ErrCommentNotFound
	default:
		log.Err(err).Str("func", "commentRepository.GetCommentByID").Int64("comment_id", id).Msg("error getting comment")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// ListCommentsByBlogID returns the comments of a blog, newest first.
func (c *commentRepository) ListCommentsByBlogID(ctx context.Context, blogID int64) ([]models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCommentsQuery(c.builder(), blogID)
	if err != nil {
		log.Err(err).Str("func", "commentRepository.ListCommentsByBlogID").Msg("failed to create query")
		return nil, err
	}

	var comments []models.Comment
	err = c.withRetry(ctx, func(ctx context.Context) error {
		rows, queryErr := c.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		defer rows.Close()

		comments = make([]models.Comment, 0, 16)
		for rows.Next() {
			comment, scanErr := scanComment(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			comments = append(comments, comment)
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "commentRepository.ListCommentsByBlogID").Int64("blog_id", blogID).Msg("error listing comments")
		return nil, err
	}

	return comments, nil
}

func (c *commentRepository) DeleteComment(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCommentQuery(c.builder(), id)
	if err != nil {
		log.Err(err).Str("func", "commentRepository.DeleteComment").Msg("failed to create query")
		return err
	}

	affected, err := c.exec(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "commentRepository.DeleteComment").Int64("comment_id", id).Msg("error deleting comment")
		return err
	}
	if affected == 0 {
		return ErrCommentNotFound
	}

	return nil
}
