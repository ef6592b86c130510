// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/models"
	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"role",
	"open_id",
	"name",
	"login_method",
	"last_signed_in",
	"created_at",
	"updated_at",
}

var blogColumns = []string{
	"blogs.id",
	"blogs.title",
	"blogs.content",
	"blogs.author_id",
	"blogs.created_at",
	"blogs.updated_at",
	"users.username",
}

var commentColumns = []string{
	"comments.id",
	"comments.content",
	"comments.author_id",
	"comments.blog_id",
	"comments.created_at",
	"comments.updated_at",
	"users.username",
}

// ── users ──

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User, now time.Time, returning bool) (string, []any, error) {
	role := user.Role
	if role == "" {
		role = models.RoleUser
	}

	insert := b.Insert("users").
		Columns("username", "email", "password_hash", "role", "name", "login_method", "created_at", "updated_at").
		Values(
			nullString(user.Username),
			nullString(user.Email),
			nullString(user.PasswordHash),
			string(role),
			nullString(user.Name),
			nullString(user.LoginMethod),
			now,
			now,
		)

	if returning {
		insert = insert.Suffix("RETURNING id")
	}

	return wrapBuild(insert.ToSql())
}

func buildFindUserQuery(b sq.StatementBuilderType, column string, value any) (string, []any, error) {
	return wrapBuild(b.Select(userColumns...).
		From("users").
		Where(sq.Eq{column: value}).
		ToSql())
}

// externalUserValues returns the columns written by an external sign-in.
// Omitted attributes are left out entirely; null attributes are written as
// NULL (role falls back to "user" because the column is NOT NULL).
// last_signed_in is always present: the supplied value, or now.
func externalUserValues(attrs models.ExternalUserAttributes, now time.Time) ([]string, []any) {
	columns := make([]string, 0, 6)
	values := make([]any, 0, 6)

	add := func(column string, value any) {
		columns = append(columns, column)
		values = append(values, value)
	}

	if attrs.Name.Set {
		add("name", attrs.Name.SQLValue())
	}
	if attrs.Email.Set {
		add("email", attrs.Email.SQLValue())
	}
	if attrs.LoginMethod.Set {
		add("login_method", attrs.LoginMethod.SQLValue())
	}
	if attrs.Role.Set {
		role := models.RoleUser
		if r, ok := attrs.Role.Get(); ok && r != "" {
			role = r
		}
		add("role", string(role))
	}

	lastSignedIn := now
	if t, ok := attrs.LastSignedIn.Get(); ok {
		lastSignedIn = t
	}
	add("last_signed_in", lastSignedIn)
	add("updated_at", now)

	return columns, values
}

func buildUpsertUserQuery(b sq.StatementBuilderType, d dialect, openID string, attrs models.ExternalUserAttributes, now time.Time) (string, []any, error) {
	columns, values := externalUserValues(attrs, now)

	return wrapBuild(b.Insert("users").
		Columns(append([]string{"open_id", "created_at"}, columns...)...).
		Values(append([]any{openID, now}, values...)...).
		Suffix(d.upsertSuffix("open_id", columns)).
		ToSql())
}

func buildInsertExternalUserQuery(b sq.StatementBuilderType, openID string, attrs models.ExternalUserAttributes, now time.Time) (string, []any, error) {
	columns, values := externalUserValues(attrs, now)

	return wrapBuild(b.Insert("users").
		Columns(append([]string{"open_id", "created_at"}, columns...)...).
		Values(append([]any{openID, now}, values...)...).
		ToSql())
}

func buildUpdateExternalUserQuery(b sq.StatementBuilderType, openID string, attrs models.ExternalUserAttributes, now time.Time) (string, []any, error) {
	columns, values := externalUserValues(attrs, now)

	update := b.Update("users")
	for i, column := range columns {
		update = update.Set(column, values[i])
	}

	return wrapBuild(update.Where(sq.Eq{"open_id": openID}).ToSql())
}

// ── blogs ──

func buildCreateBlogQuery(b sq.StatementBuilderType, blog models.Blog, now time.Time, returning bool) (string, []any, error) {
	insert := b.Insert("blogs").
		Columns("title", "content", "author_id", "created_at", "updated_at").
		Values(blog.Title, blog.Content, blog.AuthorID, now, now)

	if returning {
		insert = insert.Suffix("RETURNING id")
	}

	return wrapBuild(insert.ToSql())
}

func selectBlogs(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(blogColumns...).
		From("blogs").
		LeftJoin("users ON users.id = blogs.author_id")
}

func buildGetBlogQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return wrapBuild(selectBlogs(b).Where(sq.Eq{"blogs.id": id}).ToSql())
}

func buildListBlogsQuery(b sq.StatementBuilderType, d dialect, query models.BlogQuery) (string, []any, error) {
	sel := selectBlogs(b).OrderBy("blogs.created_at DESC", "blogs.id DESC")

	if query.Search != "" {
		sel = sel.Where(d.titleSearch(query.Search))
	}
	if limit := query.PageLimit(); limit > 0 {
		sel = sel.Limit(limit)
		if query.Offset > 0 {
			sel = sel.Offset(query.Offset)
		}
	}

	return wrapBuild(sel.ToSql())
}

func buildUpdateBlogQuery(b sq.StatementBuilderType, id int64, update models.BlogUpdate, now time.Time) (string, []any, error) {
	upd := b.Update("blogs").Set("updated_at", now)

	if update.Title != nil {
		upd = upd.Set("title", *update.Title)
	}
	if update.Content != nil {
		upd = upd.Set("content", *update.Content)
	}

	return wrapBuild(upd.Where(sq.Eq{"id": id}).ToSql())
}

func buildDeleteBlogQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return wrapBuild(b.Delete("blogs").Where(sq.Eq{"id": id}).ToSql())
}

// ── comments ──

func buildCreateCommentQuery(b sq.StatementBuilderType, comment models.Comment, now time.Time, returning bool) (string, []any, error) {
	insert := b.Insert("comments").
		Columns("content", "author_id", "blog_id", "created_at", "updated_at").
		Values(comment.Content, comment.AuthorID, comment.BlogID, now, now)

	if returning {
		insert = insert.Suffix("RETURNING id")
	}

	return wrapBuild(insert.ToSql())
}

func selectComments(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(commentColumns...).
		From("comments").
		LeftJoin("users ON users.id = comments.author_id")
}

func buildGetCommentQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return wrapBuild(selectComments(b).Where(sq.Eq{"comments.id": id}).ToSql())
}

func buildListCommentsQuery(b sq.StatementBuilderType, blogID int64) (string, []any, error) {
	return wrapBuild(selectComments(b).
		Where(sq.Eq{"comments.blog_id": blogID}).
		OrderBy("comments.created_at DESC", "comments.id DESC").
		ToSql())
}

func buildDeleteCommentQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return wrapBuild(b.Delete("comments").Where(sq.Eq{"id": id}).ToSql())
}

func wrapBuild(query string, args []any, err error) (string, []any, error) {
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
