package http

import (
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
)

type Handler struct {
	services *service.Services
	cookies  *CookiePolicy

	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. The cookie policy is derived from
// cfg.Cookie and every request is bounded by cfg.Server.RequestTimeout.
func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handler, error) {
	cookies, err := NewCookiePolicy(cfg.Cookie)
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		cookies:        cookies,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}, nil
}
