package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/models"
)

type blogService struct {
	blogRepository store.BlogRepository

	timeout operationTimeout
	logger  *logger.Logger
}

func NewBlogService(blogRepository store.BlogRepository, cfg config.App, logger *logger.Logger) BlogService {
	return &blogService{
		blogRepository: blogRepository,
		timeout:        operationTimeout(cfg.OperationTimeout),
		logger:         logger,
	}
}

func (b *blogService) CreateBlog(ctx context.Context, actor models.User, input models.BlogInput) (models.Blog, error) {
	if actor.ID <= 0 {
		return models.Blog{}, ErrUnauthenticated
	}

	ctx, cancel := b.timeout.start(ctx)
	defer cancel()

	blog, err := b.blogRepository.CreateBlog(ctx, models.Blog{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: actor.ID,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*blogService.CreateBlog").Int64("author_id", actor.ID).Msg("error creating blog")
		if errors.Is(err, store.ErrReferencedRowNotFound) {
			return models.Blog{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return models.Blog{}, finish(fmt.Errorf("error creating blog: %w", err))
	}

	blog.Author = &models.Author{ID: actor.ID, Username: actor.Username}
	return blog, nil
}

func (b *blogService) GetBlog(ctx context.Context, id int64) (models.Blog, error) {
	ctx, cancel := b.timeout.start(ctx)
	defer cancel()

	blog, err := b.getBlog(ctx, id)
	return blog, finish(err)
}

func (b *blogService) ListBlogs(ctx context.Context, query models.BlogQuery) ([]models.Blog, error) {
	ctx, cancel := b.timeout.start(ctx)
	defer cancel()

	blogs, err := b.blogRepository.ListBlogs(ctx, query)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*blogService.ListBlogs").Msg("error listing blogs")
		return nil, finish(fmt.Errorf("error listing blogs: %w", err))
	}

	return blogs, nil
}

// UpdateBlog applies update to the blog when actor is its author and
// returns the stored result.
func (b *blogService) UpdateBlog(ctx context.Context, actor models.User, id int64, update models.BlogUpdate) (models.Blog, error) {
	ctx, cancel := b.timeout.start(ctx)
	defer cancel()

	blog, err := b.updateBlog(ctx, actor, id, update)
	return blog, finish(err)
}

func (b *blogService) updateBlog(ctx context.Context, actor models.User, id int64, update models.BlogUpdate) (models.Blog, error) {
	log := logger.FromContext(ctx)

	blog, err := b.getBlog(ctx, id)
	if err != nil {
		return models.Blog{}, err
	}

	if err = authorize(actor, blog, false); err != nil {
		log.Warn().Str("func", "*blogService.UpdateBlog").Int64("blog_id", id).Int64("actor_id", actor.ID).Msg("blog update denied")
		return models.Blog{}, err
	}

	if err = b.blogRepository.UpdateBlog(ctx, id, update); err != nil {
		log.Err(err).Str("func", "*blogService.UpdateBlog").Int64("blog_id", id).Msg("error updating blog")
		return models.Blog{}, mapBlogError(err, "error updating blog")
	}

	return b.getBlog(ctx, id)
}

// DeleteBlog removes the blog and, through the foreign key, its comments.
func (b *blogService) DeleteBlog(ctx context.Context, actor models.User, id int64) error {
	ctx, cancel := b.timeout.start(ctx)
	defer cancel()

	return finish(b.deleteBlog(ctx, actor, id))
}

func (b *blogService) deleteBlog(ctx context.Context, actor models.User, id int64) error {
	log := logger.FromContext(ctx)

	blog, err := b.getBlog(ctx, id)
	if err != nil {
		return err
	}

	if err = authorize(actor, blog, false); err != nil {
		log.Warn().Str("func", "*blogService.DeleteBlog").Int64("blog_id", id).Int64("actor_id", actor.ID).Msg("blog deletion denied")
		return err
	}

	if err = b.blogRepository.DeleteBlog(ctx, id); err != nil {
		log.Err(err).Str("func", "*blogService.DeleteBlog").Int64("blog_id", id).Msg("error deleting blog")
		return mapBlogError(err, "error deleting blog")
	}

	return nil
}

func (b *blogService) getBlog(ctx context.Context, id int64) (models.Blog, error) {
	blog, err := b.blogRepository.GetBlogByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrBlogNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*blogService.getBlog").Int64("blog_id", id).Msg("error loading blog")
		}
		return models.Blog{}, mapBlogError(err, "error loading blog")
	}

	return blog, nil
}

func mapBlogError(err error, msg string) error {
	if errors.Is(err, store.ErrBlogNotFound) {
		return fmt.Errorf("%w: %w", ErrBlogNotFound, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
