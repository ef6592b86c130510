package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
)

type Services struct {
	AuthService    AuthService
	BlogService    BlogService
	CommentService CommentService
	AppInfoService AppInfoService
}

// NewServices builds every service on top of storages. The identity
// provider is chosen by cfg.App.IdentityMode.
func NewServices(ctx context.Context, storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	hasher, err := utils.NewPasswordHasher(cfg.App.PasswordHashCost)
	if err != nil {
		return nil, err
	}

	identityProvider, err := newIdentityProvider(ctx, storages, hasher, cfg.App)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	blogService := NewBlogValidationService().Wrap(NewBlogService(storages.BlogRepository, cfg.App, logger))
	commentService := NewCommentValidationService().Wrap(NewCommentService(storages.CommentRepository, storages.BlogRepository, cfg.App, logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, identityProvider, hasher, cfg.App, logger),
		BlogService:    blogService,
		CommentService: commentService,
		AppInfoService: appInfoService,
	}, nil
}

func newIdentityProvider(ctx context.Context, storages *store.Storages, hasher *utils.PasswordHasher, cfg config.App) (IdentityProvider, error) {
	switch cfg.IdentityMode {
	case config.IdentityModePassword:
		return NewPasswordIdentityProvider(ctx, storages.UserRepository, hasher)
	case config.IdentityModeExternal:
		return NewExternalIdentityProvider(storages.UserRepository, cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedIdentityMode, cfg.IdentityMode)
	}
}
