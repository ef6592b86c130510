package store

import (
	"context"

	"github.com/MKhiriev/go-blog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts for both identity modes.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByOpenID(ctx context.Context, openID string) (models.User, error)
	UpsertByExternalID(ctx context.Context, openID string, attrs models.ExternalUserAttributes) error
}

// BlogRepository persists blog posts.
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog models.Blog) (models.Blog, error)
	GetBlogByID(ctx context.Context, id int64) (models.Blog, error)
	ListBlogs(ctx context.Context, query models.BlogQuery) ([]models.Blog, error)
	UpdateBlog(ctx context.Context, id int64, update models.BlogUpdate) error
	DeleteBlog(ctx context.Context, id int64) error
}

// CommentRepository persists comments attached to blogs.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetCommentByID(ctx context.Context, id int64) (models.Comment, error)
	ListCommentsByBlogID(ctx context.Context, blogID int64) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}
