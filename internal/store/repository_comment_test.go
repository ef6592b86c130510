package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commentRowColumns = []string{"id", "content", "author_id", "blog_id", "created_at", "updated_at", "username"}

func newTestCommentRepo(t *testing.T, d dialect) (*commentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t, d)
	return &commentRepository{DB: db, logger: logger.Nop()}, mock
}

func TestCreateComment_Success(t *testing.T) {
	repo, mock := newTestCommentRepo(t, mysqlDialect())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO comments (content,author_id,blog_id,created_at,updated_at) VALUES (?,?,?,?,?)")).
		WithArgs("Nice post", int64(2), int64(10), testNow, testNow).
		WillReturnResult(sqlmock.NewResult(5, 1))

	comment, err := repo.CreateComment(context.Background(), models.Comment{Content: "Nice post", AuthorID: 2, BlogID: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(5), comment.ID)
	assert.Equal(t, int64(10), comment.BlogID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateComment_BlogGone(t *testing.T) {
	repo, mock := newTestCommentRepo(t, mysqlDialect())

	mock.ExpectExec("INSERT INTO comments").WillReturnError(&mysql.MySQLError{Number: 1452})

	_, err := repo.CreateComment(context.Background(), models.Comment{Content: "x", AuthorID: 2, BlogID: 10})
	require.ErrorIs(t, err, ErrReferencedRowNotFound)
}

func TestGetCommentByID(t *testing.T) {
	repo, mock := newTestCommentRepo(t, postgresDialect())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE comments.id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(commentRowColumns).AddRow(5, "Nice post", 2, 10, testNow, testNow, "bob"))
	mock.ExpectQuery("FROM comments").WillReturnRows(sqlmock.NewRows(commentRowColumns))

	comment, err := repo.GetCommentByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), comment.OwnerID())
	assert.Equal(t, "bob", comment.Author.Username)

	_, err = repo.GetCommentByID(context.Background(), 6)
	require.ErrorIs(t, err, ErrCommentNotFound)
}

func TestListCommentsByBlogID(t *testing.T) {
	repo, mock := newTestCommentRepo(t, postgresDialect())

	rows := sqlmock.NewRows(commentRowColumns).
		AddRow(6, "Second", 3, 10, testNow, testNow, "carol").
		AddRow(5, "First", 2, 10, testNow, testNow, "bob")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE comments.blog_id = $1 ORDER BY comments.created_at DESC")).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	comments, err := repo.ListCommentsByBlogID(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "carol", comments[0].Author.Username)
	assert.Equal(t, int64(10), comments[1].BlogID)
}

func TestListCommentsByBlogID_ScanError(t *testing.T) {
	repo, mock := newTestCommentRepo(t, postgresDialect())

	mock.ExpectQuery("FROM comments").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.ListCommentsByBlogID(context.Background(), 10)
	require.ErrorIs(t, err, ErrScanningRow)
}

func TestDeleteComment(t *testing.T) {
	repo, mock := newTestCommentRepo(t, postgresDialect())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM comments").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteComment(context.Background(), 5))
	require.ErrorIs(t, repo.DeleteComment(context.Background(), 5), ErrCommentNotFound)
}
