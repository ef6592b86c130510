package service

import (
	"context"

	"github.com/MKhiriev/go-blog/models"
)

// AuthService registers users, resolves credentials through the active
// IdentityProvider and issues and verifies session tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// Authenticate verifies a session token and loads the user it belongs to.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)
	// IdentityMode is the Mode of the active IdentityProvider.
	IdentityMode() string
}

// IdentityProvider turns credentials into a stored user. A deployment runs
// exactly one provider.
type IdentityProvider interface {
	Mode() string
	Resolve(ctx context.Context, credentials models.Credentials) (models.User, error)
}

// BlogService manages blog posts. Mutations are allowed to the author only.
type BlogService interface {
	CreateBlog(ctx context.Context, actor models.User, input models.BlogInput) (models.Blog, error)
	GetBlog(ctx context.Context, id int64) (models.Blog, error)
	ListBlogs(ctx context.Context, query models.BlogQuery) ([]models.Blog, error)
	UpdateBlog(ctx context.Context, actor models.User, id int64, update models.BlogUpdate) (models.Blog, error)
	DeleteBlog(ctx context.Context, actor models.User, id int64) error
}

// CommentService manages comments. Deletion is allowed to the author and to
// admins.
type CommentService interface {
	CreateComment(ctx context.Context, actor models.User, blogID int64, input models.CommentInput) (models.Comment, error)
	ListComments(ctx context.Context, blogID int64) ([]models.Comment, error)
	DeleteComment(ctx context.Context, actor models.User, id int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// BlogServiceWrapper defines middleware composition for BlogService.
// Implementations wrap an existing BlogService to add behavior such as
// validating.
type BlogServiceWrapper interface {
	Wrap(BlogService) BlogService
}

// CommentServiceWrapper is the CommentService counterpart of BlogServiceWrapper.
type CommentServiceWrapper interface {
	Wrap(CommentService) CommentService
}
