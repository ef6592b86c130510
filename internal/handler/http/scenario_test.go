package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ─────────────────────────────────────────────
// In-memory repositories
// ─────────────────────────────────────────────

type memDB struct {
	mu       sync.Mutex
	users    []models.User
	blogs    []models.Blog
	comments []models.Comment
}

type memUsers struct{ *memDB }
type memBlogs struct{ *memDB }
type memComments struct{ *memDB }

func (m memUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
		if u.Username == user.Username {
			return models.User{}, store.ErrUsernameAlreadyExists
		}
	}
	user.ID = int64(len(m.users) + 1)
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	m.users = append(m.users, user)
	return user, nil
}

func (m memUsers) find(match func(models.User) bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.IndexFunc(m.users, match); i >= 0 {
		return m.users[i], nil
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m memUsers) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m memUsers) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Username == username })
}

func (m memUsers) FindUserByID(_ context.Context, id int64) (models.User, error) {
	return m.find(func(u models.User) bool { return u.ID == id })
}

func (m memUsers) FindUserByOpenID(_ context.Context, openID string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.OpenID != "" && u.OpenID == openID })
}

func (m memUsers) UpsertByExternalID(context.Context, string, models.ExternalUserAttributes) error {
	panic("not used in password mode")
}

func (m memBlogs) CreateBlog(_ context.Context, blog models.Blog) (models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blog.ID = int64(len(m.blogs) + 1)
	m.blogs = append(m.blogs, blog)
	return blog, nil
}

func (m memBlogs) GetBlogByID(_ context.Context, id int64) (models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.IndexFunc(m.blogs, func(b models.Blog) bool { return b.ID == id }); i >= 0 {
		return m.blogs[i], nil
	}
	return models.Blog{}, store.ErrBlogNotFound
}

func (m memBlogs) ListBlogs(_ context.Context, query models.BlogQuery) ([]models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Blog
	for _, b := range m.blogs {
		if strings.Contains(b.Title, query.Search) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m memBlogs) UpdateBlog(_ context.Context, id int64, update models.BlogUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.blogs, func(b models.Blog) bool { return b.ID == id })
	if i < 0 {
		return store.ErrBlogNotFound
	}
	if update.Title != nil {
		m.blogs[i].Title = *update.Title
	}
	if update.Content != nil {
		m.blogs[i].Content = *update.Content
	}
	return nil
}

func (m memBlogs) DeleteBlog(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.blogs)
	m.blogs = slices.DeleteFunc(m.blogs, func(b models.Blog) bool { return b.ID == id })
	if len(m.blogs) == n {
		return store.ErrBlogNotFound
	}
	m.comments = slices.DeleteFunc(m.comments, func(c models.Comment) bool { return c.BlogID == id })
	return nil
}

func (m memComments) CreateComment(_ context.Context, comment models.Comment) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = int64(len(m.comments) + 1)
	m.comments = append(m.comments, comment)
	return comment, nil
}

func (m memComments) GetCommentByID(_ context.Context, id int64) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.IndexFunc(m.comments, func(c models.Comment) bool { return c.ID == id }); i >= 0 {
		return m.comments[i], nil
	}
	return models.Comment{}, store.ErrCommentNotFound
}

func (m memComments) ListCommentsByBlogID(_ context.Context, blogID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Comment
	for _, c := range m.comments {
		if c.BlogID == blogID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m memComments) DeleteComment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.comments)
	m.comments = slices.DeleteFunc(m.comments, func(c models.Comment) bool { return c.ID == id })
	if len(m.comments) == n {
		return store.ErrCommentNotFound
	}
	return nil
}

// ─────────────────────────────────────────────
// Scenario helpers
// ─────────────────────────────────────────────

const scenarioTokenDuration = 24 * time.Hour

func newScenarioRouter(t *testing.T) http.Handler {
	t.Helper()

	db := &memDB{}
	storages := &store.Storages{
		UserRepository:    memUsers{db},
		BlogRepository:    memBlogs{db},
		CommentRepository: memComments{db},
	}

	cfg := testConfig()
	cfg.App = config.App{
		TokenSignKey:     "scenario-sign-key",
		TokenIssuer:      "go-blog",
		TokenDuration:    scenarioTokenDuration,
		PasswordHashCost: bcrypt.MinCost,
		OperationTimeout: 5 * time.Second,
		IdentityMode:     config.IdentityModePassword,
		Version:          "scenario",
	}

	services, err := service.NewServices(context.Background(), storages, cfg, logger.Nop())
	require.NoError(t, err)

	h, err := NewHandler(services, cfg, logger.Nop())
	require.NoError(t, err)
	return h.Init()
}

type client struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if c.cookie != nil {
		req.AddCookie(&http.Cookie{Name: c.cookie.Name, Value: c.cookie.Value})
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	if cookie := findCookie(rec, testCookieName); cookie != nil {
		if cookie.MaxAge < 0 {
			c.cookie = nil
		} else {
			c.cookie = cookie
		}
	}
	return rec
}

// ─────────────────────────────────────────────
// Scenarios
// ─────────────────────────────────────────────

func TestScenario_RegisterLoginPublishComment(t *testing.T) {
	router := newScenarioRouter(t)
	writer := &client{t: t, router: router}
	reader := &client{t: t, router: router}

	rec := writer.do(http.MethodPost, "/api/auth/register", `{"username":"alice1","email":"Alice@Example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, writer.cookie)

	rec = writer.do(http.MethodPost, "/api/auth/register", `{"username":"alice2","email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgEmailAlreadyRegistered, decodeError(t, rec))

	rec = writer.do(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, writer.cookie)
	assert.Equal(t, int(scenarioTokenDuration/time.Second), writer.cookie.MaxAge)

	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, "alice1", login.User.Username)
	assert.Equal(t, "alice@example.com", login.User.Email)

	rec = writer.do(http.MethodGet, "/api/auth/me", "")
	assert.Contains(t, rec.Body.String(), `"username":"alice1"`)

	rec = writer.do(http.MethodPost, "/api/blogs", `{"title":"Hello","content":"First post"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var blog models.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blog))
	assert.Equal(t, login.User.ID, blog.AuthorID)

	require.Equal(t, http.StatusCreated, reader.do(http.MethodPost, "/api/auth/register", `{"username":"bobby","email":"bob@example.com","password":"password456"}`).Code)
	require.Equal(t, http.StatusOK, reader.do(http.MethodPost, "/api/auth/login", `{"email":"bob@example.com","password":"password456"}`).Code)

	rec = reader.do(http.MethodDelete, "/api/blogs/1", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = reader.do(http.MethodPatch, "/api/blogs/1", `{"title":"Mine now"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = reader.do(http.MethodPost, "/api/blogs/1/comments", `{"content":"Nice one"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = writer.do(http.MethodDelete, "/api/comments/1", "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = writer.do(http.MethodGet, "/api/blogs/1/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 1)

	rec = writer.do(http.MethodPatch, "/api/blogs/1", `{"title":"Hello again"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Hello again"`)

	rec = writer.do(http.MethodDelete, "/api/blogs/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, writer.do(http.MethodGet, "/api/blogs/1", "").Code)

	rec = writer.do(http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, writer.cookie)
	assert.Equal(t, "null", writer.do(http.MethodGet, "/api/auth/me", "").Body.String())
	assert.Equal(t, http.StatusUnauthorized, writer.do(http.MethodPost, "/api/blogs", `{"title":"t","content":"c"}`).Code)
}

func TestScenario_CredentialFailuresLookAlike(t *testing.T) {
	router := newScenarioRouter(t)
	c := &client{t: t, router: router}

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/auth/register", `{"username":"alice1","email":"alice@example.com","password":"password123"}`).Code)

	unknown := c.do(http.MethodPost, "/api/auth/login", `{"email":"nobody@example.com","password":"password123"}`)
	wrong := c.do(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"password124"}`)

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	assert.Nil(t, c.cookie)

	missing := c.do(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com"}`)
	require.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, app.MsgEmailPasswordRequired, decodeError(t, missing))
}

func TestScenario_TamperedCookieIsAnonymous(t *testing.T) {
	router := newScenarioRouter(t)
	c := &client{t: t, router: router}

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/auth/register", `{"username":"alice1","email":"alice@example.com","password":"password123"}`).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"password123"}`).Code)
	require.NotNil(t, c.cookie)

	c.cookie.Value += "x"
	assert.Equal(t, "null", c.do(http.MethodGet, "/api/auth/me", "").Body.String())
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/blogs", `{"title":"t","content":"c"}`).Code)
}
