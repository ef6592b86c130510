package store

import (
	"database/sql"

	"github.com/MKhiriev/go-blog/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user                                                     models.User
		username, email, passwordHash, openID, name, loginMethod sql.NullString
		role                                                     string
		lastSignedIn                                             sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&username,
		&email,
		&passwordHash,
		&role,
		&openID,
		&name,
		&loginMethod,
		&lastSignedIn,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Username = username.String
	user.Email = email.String
	user.PasswordHash = passwordHash.String
	user.Role = models.Role(role)
	user.OpenID = openID.String
	user.Name = name.String
	user.LoginMethod = loginMethod.String
	user.LastSignedIn = lastSignedIn.Time

	return user, nil
}

func scanBlog(row rowScanner) (models.Blog, error) {
	var (
		blog     models.Blog
		username sql.NullString
	)

	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.AuthorID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&username,
	)
	if err != nil {
		return models.Blog{}, err
	}

	blog.Author = &models.Author{ID: blog.AuthorID, Username: username.String}
	return blog, nil
}

func scanComment(row rowScanner) (models.Comment, error) {
	var (
		comment  models.Comment
		username sql.NullString
	)

	err := row.Scan(
		&comment.ID,
		&comment.Content,
		&comment.AuthorID,
		&comment.BlogID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&username,
	)
	if err != nil {
		return models.Comment{}, err
	}

	comment.Author = &models.Author{ID: comment.AuthorID, Username: username.String}
	return comment, nil
}
