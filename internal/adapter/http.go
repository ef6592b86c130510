package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const traceIDHeader = "X-Trace-ID"

type httpBlogAPI struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPBlogAPI constructs the HTTP implementation of [BlogAPI] for the
// server at cfg.HTTPAddress. A bare host:port is treated as http.
func NewHTTPBlogAPI(cfg config.Adapter, logger *logger.Logger) (BlogAPI, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpBlogAPI{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpBlogAPI) Register(ctx context.Context, request models.RegisterRequest) error {
	resp, err := h.request(ctx).
		SetBody(request).
		Post("/api/auth/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpBlogAPI) Login(ctx context.Context, request models.LoginRequest) (models.UserSummary, error) {
	return h.signIn(ctx, "/api/auth/login", request)
}

func (h *httpBlogAPI) ExternalSignIn(ctx context.Context, assertion string) (models.UserSummary, error) {
	return h.signIn(ctx, "/api/auth/external", models.ExternalSignInRequest{Assertion: assertion})
}

// signIn posts body to path. The session cookie from the response is kept by
// the client's cookie jar.
func (h *httpBlogAPI) signIn(ctx context.Context, path string, body any) (models.UserSummary, error) {
	var result models.LoginResponse

	resp, err := h.request(ctx).
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("sign in request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserSummary{}, err
	}

	h.logger.Debug().Int64("user_id", result.User.ID).Msg("signed in")
	return result.User, nil
}

func (h *httpBlogAPI) Logout(ctx context.Context) error {
	resp, err := h.request(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpBlogAPI) Me(ctx context.Context) (*models.UserSummary, error) {
	var user *models.UserSummary

	resp, err := h.request(ctx).
		SetResult(&user).
		Get("/api/auth/me")
	if err != nil {
		return nil, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return user, nil
}

func (h *httpBlogAPI) ListBlogs(ctx context.Context, query models.BlogQuery) ([]models.Blog, error) {
	var blogs []models.Blog

	req := h.request(ctx).SetResult(&blogs)
	if query.Search != "" {
		req.SetQueryParam("q", query.Search)
	}
	if query.Limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(query.Limit, 10))
	}
	if query.Offset > 0 {
		req.SetQueryParam("offset", strconv.FormatUint(query.Offset, 10))
	}

	resp, err := req.Get("/api/blogs")
	if err != nil {
		return nil, fmt.Errorf("list blogs request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (h *httpBlogAPI) GetBlog(ctx context.Context, id int64) (models.Blog, error) {
	var blog models.Blog

	resp, err := h.request(ctx).
		SetResult(&blog).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Get("/api/blogs/{id}")
	if err != nil {
		return models.Blog{}, fmt.Errorf("get blog request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Blog{}, err
	}

	return blog, nil
}

func (h *httpBlogAPI) CreateBlog(ctx context.Context, input models.BlogInput) (models.Blog, error) {
	var blog models.Blog

	resp, err := h.request(ctx).
		SetBody(input).
		SetResult(&blog).
		Post("/api/blogs")
	if err != nil {
		return models.Blog{}, fmt.Errorf("create blog request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Blog{}, err
	}

	return blog, nil
}

func (h *httpBlogAPI) UpdateBlog(ctx context.Context, id int64, update models.BlogUpdate) (models.Blog, error) {
	var blog models.Blog

	resp, err := h.request(ctx).
		SetBody(update).
		SetResult(&blog).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Patch("/api/blogs/{id}")
	if err != nil {
		return models.Blog{}, fmt.Errorf("update blog request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Blog{}, err
	}

	return blog, nil
}

func (h *httpBlogAPI) DeleteBlog(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/api/blogs/{id}")
	if err != nil {
		return fmt.Errorf("delete blog request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpBlogAPI) ListComments(ctx context.Context, blogID int64) ([]models.Comment, error) {
	var comments []models.Comment

	resp, err := h.request(ctx).
		SetResult(&comments).
		SetPathParam("id", strconv.FormatInt(blogID, 10)).
		Get("/api/blogs/{id}/comments")
	if err != nil {
		return nil, fmt.Errorf("list comments request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return comments, nil
}

func (h *httpBlogAPI) CreateComment(ctx context.Context, blogID int64, input models.CommentInput) (models.Comment, error) {
	var comment models.Comment

	resp, err := h.request(ctx).
		SetBody(input).
		SetResult(&comment).
		SetPathParam("id", strconv.FormatInt(blogID, 10)).
		Post("/api/blogs/{id}/comments")
	if err != nil {
		return models.Comment{}, fmt.Errorf("create comment request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Comment{}, err
	}

	return comment, nil
}

func (h *httpBlogAPI) DeleteComment(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/api/comments/{id}")
	if err != nil {
		return fmt.Errorf("delete comment request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpBlogAPI) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// request starts a request carrying a fresh trace id, so that client and
// server log lines for one call can be matched.
func (h *httpBlogAPI) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(traceIDHeader, uuid.NewString())
}
