package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

// BlogValidationService validates blog input before handing it to the
// wrapped BlogService.
type BlogValidationService struct {
	inner     BlogService
	validator validators.Validator
}

func NewBlogValidationService() BlogServiceWrapper {
	return &BlogValidationService{
		validator: validators.NewBlogValidator(),
	}
}

func (v *BlogValidationService) Wrap(inner BlogService) BlogService {
	v.inner = inner
	return v
}

func (v *BlogValidationService) CreateBlog(ctx context.Context, actor models.User, input models.BlogInput) (models.Blog, error) {
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Blog{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateBlog(ctx, actor, input)
}

func (v *BlogValidationService) GetBlog(ctx context.Context, id int64) (models.Blog, error) {
	return v.inner.GetBlog(ctx, id)
}

func (v *BlogValidationService) ListBlogs(ctx context.Context, query models.BlogQuery) ([]models.Blog, error) {
	if err := v.validator.Validate(ctx, query); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ListBlogs(ctx, query)
}

func (v *BlogValidationService) UpdateBlog(ctx context.Context, actor models.User, id int64, update models.BlogUpdate) (models.Blog, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Blog{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateBlog(ctx, actor, id, update)
}

func (v *BlogValidationService) DeleteBlog(ctx context.Context, actor models.User, id int64) error {
	return v.inner.DeleteBlog(ctx, actor, id)
}

// CommentValidationService validates comment input before handing it to the
// wrapped CommentService.
type CommentValidationService struct {
	inner     CommentService
	validator validators.Validator
}

func NewCommentValidationService() CommentServiceWrapper {
	return &CommentValidationService{
		validator: validators.NewBlogValidator(),
	}
}

func (v *CommentValidationService) Wrap(inner CommentService) CommentService {
	v.inner = inner
	return v
}

func (v *CommentValidationService) CreateComment(ctx context.Context, actor models.User, blogID int64, input models.CommentInput) (models.Comment, error) {
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateComment(ctx, actor, blogID, input)
}

func (v *CommentValidationService) ListComments(ctx context.Context, blogID int64) ([]models.Comment, error) {
	return v.inner.ListComments(ctx, blogID)
}

func (v *CommentValidationService) DeleteComment(ctx context.Context, actor models.User, id int64) error {
	return v.inner.DeleteComment(ctx, actor, id)
}
