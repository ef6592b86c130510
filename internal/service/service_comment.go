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

type commentService struct {
	commentRepository store.CommentRepository
	blogRepository    store.BlogRepository

	timeout operationTimeout
	logger  *logger.Logger
}

func NewCommentService(commentRepository store.CommentRepository, blogRepository store.BlogRepository, cfg config.App, logger *logger.Logger) CommentService {
	return &commentService{
		commentRepository: commentRepository,
		blogRepository:    blogRepository,
		timeout:           operationTimeout(cfg.OperationTimeout),
		logger:            logger,
	}
}

// CreateComment attaches a comment by actor to the blog. A missing blog is
// ErrBlogNotFound, whether seen up front or through the foreign key.
func (c *commentService) CreateComment(ctx context.Context, actor models.User, blogID int64, input models.CommentInput) (models.Comment, error) {
	if actor.ID <= 0 {
		return models.Comment{}, ErrUnauthenticated
	}

	ctx, cancel := c.timeout.start(ctx)
	defer cancel()

	comment, err := c.createComment(ctx, actor, blogID, input)
	return comment, finish(err)
}

func (c *commentService) createComment(ctx context.Context, actor models.User, blogID int64, input models.CommentInput) (models.Comment, error) {
	log := logger.FromContext(ctx)

	if _, err := c.blogRepository.GetBlogByID(ctx, blogID); err != nil {
		if !errors.Is(err, store.ErrBlogNotFound) {
			log.Err(err).Str("func", "*commentService.CreateComment").Int64("blog_id", blogID).Msg("error loading blog")
		}
		return models.Comment{}, mapBlogError(err, "error loading blog")
	}

	comment, err := c.commentRepository.CreateComment(ctx, models.Comment{
		Content:  input.Content,
		AuthorID: actor.ID,
		BlogID:   blogID,
	})
	if err != nil {
		log.Err(err).Str("func", "*commentService.CreateComment").Int64("blog_id", blogID).Msg("error creating comment")
		if errors.Is(err, store.ErrReferencedRowNotFound) {
			return models.Comment{}, fmt.Errorf("%w: %w", ErrBlogNotFound, err)
		}
		return models.Comment{}, fmt.Errorf("error creating comment: %w", err)
	}

	comment.Author = &models.Author{ID: actor.ID, Username: actor.Username}
	return comment, nil
}

func (c *commentService) ListComments(ctx context.Context, blogID int64) ([]models.Comment, error) {
	ctx, cancel := c.timeout.start(ctx)
	defer cancel()

	comments, err := c.commentRepository.ListCommentsByBlogID(ctx, blogID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentService.ListComments").Int64("blog_id", blogID).Msg("error listing comments")
		return nil, finish(fmt.Errorf("error listing comments: %w", err))
	}

	return comments, nil
}

// DeleteComment removes the comment when actor wrote it or is an admin.
func (c *commentService) DeleteComment(ctx context.Context, actor models.User, id int64) error {
	ctx, cancel := c.timeout.start(ctx)
	defer cancel()

	return finish(c.deleteComment(ctx, actor, id))
}

func (c *commentService) deleteComment(ctx context.Context, actor models.User, id int64) error {
	log := logger.FromContext(ctx)

	comment, err := c.commentRepository.GetCommentByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrCommentNotFound) {
			log.Err(err).Str("func", "*commentService.DeleteComment").Int64("comment_id", id).Msg("error loading comment")
		}
		return mapCommentError(err, "error loading comment")
	}

	if err = authorize(actor, comment, true); err != nil {
		log.Warn().Str("func", "*commentService.DeleteComment").Int64("comment_id", id).Int64("actor_id", actor.ID).Msg("comment deletion denied")
		return err
	}

	if err = c.commentRepository.DeleteComment(ctx, id); err != nil {
		log.Err(err).Str("func", "*commentService.DeleteComment").Int64("comment_id", id).Msg("error deleting comment")
		return mapCommentError(err, "error deleting comment")
	}

	return nil
}

func mapCommentError(err error, msg string) error {
	if errors.Is(err, store.ErrCommentNotFound) {
		return fmt.Errorf("%w: %w", ErrCommentNotFound, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
