package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
)

// blogRepository is the SQL implementation of [BlogRepository].
type blogRepository struct {
	*DB
	logger *logger.Logger
}

// NewBlogRepository constructs a [BlogRepository] backed by db.
func NewBlogRepository(db *DB, logger *logger.Logger) BlogRepository {
	logger.Debug().Msg("creating blog repository")
	return &blogRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateBlog inserts blog and returns it with ID and timestamps set.
// A missing author row yields [ErrReferencedRowNotFound].
func (b *blogRepository) CreateBlog(ctx context.Context, blog models.Blog) (models.Blog, error) {
	log := logger.FromContext(ctx)
	now := b.now()

	query, args, err := buildCreateBlogQuery(b.builder(), blog, now, b.dialect.returning)
	if err != nil {
		log.Err(err).Str("func", "blogRepository.CreateBlog").Msg("failed to create query")
		return models.Blog{}, err
	}

	id, err := b.insert(ctx, query, args)
	if err != nil {
		log.Err(err).
			Str("func", "blogRepository.CreateBlog").
			Int64("author_id", blog.AuthorID).
			Msg("error inserting blog")
		return models.Blog{}, b.foreignKeyError(err)
	}

	blog.ID = id
	blog.CreatedAt = now
	blog.UpdatedAt = now

	return blog, nil
}

// GetBlogByID returns the blog with its author, or [ErrBlogNotFound].
func (b *blogRepository) GetBlogByID(ctx context.Context, id int64) (models.Blog, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetBlogQuery(b.builder(), id)
	if err != nil {
		log.Err(err).Str("func", "blogRepository.GetBlogByID").Msg("failed to create query")
		return models.Blog{}, err
	}

	var blog models.Blog
	err = b.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		blog, scanErr = scanBlog(b.QueryRowContext(ctx, query, args...))
		return scanErr
	})

	switch {
	case err == nil:
		return blog, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Blog{}, ErrBlogNotFound
	default:
		log.Err(err).Str("func", "blogRepository.GetBlogByID").Int64("blog_id", id).Msg("error getting blog")
		return models.Blog{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// ListBlogs returns blogs newest first, optionally filtered by a title
// substring and paginated. An empty result is an empty slice.
func (b *blogRepository) ListBlogs(ctx context.Context, q models.BlogQuery) ([]models.Blog, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListBlogsQuery(b.builder(), b.dialect, q)
	if err != nil {
		log.Err(err).Str("func", "blogRepository.ListBlogs").Msg("failed to create query")
		return nil, err
	}

	var blogs []models.Blog
	err = b.withRetry(ctx, func(ctx context.Context) error {
		rows, queryErr := b.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		defer rows.Close()

		blogs = make([]models.Blog, 0, max(q.PageLimit(), 16))
		for rows.Next() {
			blog, scanErr := scanBlog(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			blogs = append(blogs, blog)
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "blogRepository.ListBlogs").Str("search", q.Search).Msg("error listing blogs")
		return nil, err
	}

	return blogs, nil
}

// UpdateBlog applies the non-nil fields of update and bumps updated_at.
func (b *blogRepository) UpdateBlog(ctx context.Context, id int64, update models.BlogUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateBlogQuery(b.builder(), id, update, b.now())
	if err != nil {
		log.Err(err).Str("func", "blogRepository.UpdateBlog").Msg("failed to create query")
		return err
	}

	affected, err := b.exec(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "blogRepository.UpdateBlog").Int64("blog_id", id).Msg("error updating blog")
		return err
	}
	if affected == 0 {
		return ErrBlogNotFound
	}

	return nil
}

// DeleteBlog removes the blog; its comments go with it (ON DELETE CASCADE).
func (b *blogRepository) DeleteBlog(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteBlogQuery(b.builder(), id)
	if err != nil {
		log.Err(err).Str("func", "blogRepository.DeleteBlog").Msg("failed to create query")
		return err
	}

	affected, err := b.exec(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "blogRepository.DeleteBlog").Int64("blog_id", id).Msg("error deleting blog")
		return err
	}
	if affected == 0 {
		return ErrBlogNotFound
	}

	return nil
}
