package models

import "time"

// Blog is a post written by a user.
type Blog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Author is populated by read queries that join users; it stays nil
	// when the author row is missing.
	Author *Author `json:"author,omitempty"`
}

// OwnerID implements the ownership contract checked before mutations.
func (b Blog) OwnerID() int64 {
	return b.AuthorID
}

// BlogInput is the payload for creating a blog.
type BlogInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BlogUpdate is a partial update: nil fields are left untouched.
type BlogUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u BlogUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}

// DefaultPageSize is the page length used when an offset is given without
// a limit.
const DefaultPageSize = 20

// BlogQuery filters and pages the blog list.
type BlogQuery struct {
	// Search matches blogs whose title contains the string.
	Search string
	Limit  uint64
	Offset uint64
}

// PageLimit returns the effective LIMIT, zero meaning unbounded. An offset
// on its own pages with DefaultPageSize.
func (q BlogQuery) PageLimit() uint64 {
	if q.Limit == 0 && q.Offset > 0 {
		return DefaultPageSize
	}
	return q.Limit
}

// Comment is a reply to a blog.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"authorId"`
	BlogID    int64     `json:"blogId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author *Author `json:"author,omitempty"`
}

// OwnerID implements the ownership contract checked before mutations.
func (c Comment) OwnerID() int64 {
	return c.AuthorID
}

// CommentInput is the payload for creating a comment.
type CommentInput struct {
	Content string `json:"content"`
}
