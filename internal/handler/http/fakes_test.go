package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fake services
// ─────────────────────────────────────────────

// fakeAuthService implements service.AuthService. Each method field can be
// overridden per test case; unset fields panic so that unexpected calls fail
// loudly.
type fakeAuthService struct {
	mode           string
	registerUserFn func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, credentials models.Credentials) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	authenticateFn func(ctx context.Context, tokenString string) (models.User, error)
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	return f.registerUserFn(ctx, request)
}

func (f *fakeAuthService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	return f.loginFn(ctx, credentials)
}

func (f *fakeAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return f.createTokenFn(ctx, user)
}

func (f *fakeAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return f.parseTokenFn(ctx, tokenString)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	if f.authenticateFn == nil {
		return models.User{}, service.ErrTokenIsInvalid
	}
	return f.authenticateFn(ctx, tokenString)
}

func (f *fakeAuthService) IdentityMode() string {
	if f.mode == "" {
		return config.IdentityModePassword
	}
	return f.mode
}

type fakeBlogService struct {
	createBlogFn func(ctx context.Context, actor models.User, input models.BlogInput) (models.Blog, error)
	getBlogFn    func(ctx context.Context, id int64) (models.Blog, error)
	listBlogsFn  func(ctx context.Context, query models.BlogQuery) ([]models.Blog, error)
	updateBlogFn func(ctx context.Context, actor models.User, id int64, update models.BlogUpdate) (models.Blog, error)
	deleteBlogFn func(ctx context.Context, actor models.User, id int64) error
}

func (f *fakeBlogService) CreateBlog(ctx context.Context, actor models.User, input models.BlogInput) (models.Blog, error) {
	return f.createBlogFn(ctx, actor, input)
}

func (f *fakeBlogService) GetBlog(ctx context.Context, id int64) (models.Blog, error) {
	return f.getBlogFn(ctx, id)
}

func (f *fakeBlogService) ListBlogs(ctx context.Context, query models.BlogQuery) ([]models.Blog, error) {
	return f.listBlogsFn(ctx, query)
}

func (f *fakeBlogService) UpdateBlog(ctx context.Context, actor models.User, id int64, update models.BlogUpdate) (models.Blog, error) {
	return f.updateBlogFn(ctx, actor, id, update)
}

func (f *fakeBlogService) DeleteBlog(ctx context.Context, actor models.User, id int64) error {
	return f.deleteBlogFn(ctx, actor, id)
}

type fakeCommentService struct {
	createCommentFn func(ctx context.Context, actor models.User, blogID int64, input models.CommentInput) (models.Comment, error)
	listCommentsFn  func(ctx context.Context, blogID int64) ([]models.Comment, error)
	deleteCommentFn func(ctx context.Context, actor models.User, id int64) error
}

func (f *fakeCommentService) CreateComment(ctx context.Context, actor models.User, blogID int64, input models.CommentInput) (models.Comment, error) {
	return f.createCommentFn(ctx, actor, blogID, input)
}

func (f *fakeCommentService) ListComments(ctx context.Context, blogID int64) ([]models.Comment, error) {
	return f.listCommentsFn(ctx, blogID)
}

func (f *fakeCommentService) DeleteComment(ctx context.Context, actor models.User, id int64) error {
	return f.deleteCommentFn(ctx, actor, id)
}

// fakeAppInfoService implements service.AppInfoService for testing.
type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string {
	return f.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testCookieName = "app_session_id"

var handlerNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		Cookie: config.Cookie{Name: testCookieName, SameSite: config.SameSiteLax},
	}
}

// newTestHandler builds a Handler over services. Nil services are replaced
// by empty fakes.
func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	if services.AuthService == nil {
		services.AuthService = &fakeAuthService{}
	}
	if services.BlogService == nil {
		services.BlogService = &fakeBlogService{}
	}
	if services.CommentService == nil {
		services.CommentService = &fakeCommentService{}
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &fakeAppInfoService{version: "test"}
	}

	h, err := NewHandler(services, testConfig(), logger.Nop())
	require.NoError(t, err)
	h.cookies.now = func() time.Time { return handlerNow }
	return h
}

// sessionAs returns an authenticateFn accepting the token "token-<id>" for
// each given user.
func sessionAs(users ...models.User) func(context.Context, string) (models.User, error) {
	return func(_ context.Context, token string) (models.User, error) {
		for _, u := range users {
			if token == sessionToken(u) {
				return u, nil
			}
		}
		return models.User{}, service.ErrTokenIsInvalid
	}
}

func sessionToken(u models.User) string {
	return "token-" + u.Username
}

func withSession(r *http.Request, u models.User) *http.Request {
	r.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionToken(u)})
	return r
}

func jsonBody(t *testing.T, v any) *strings.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return strings.NewReader(string(b))
}

func serve(h *Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, r)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
