package api

import (
	"time"

	"github.com/darshvaidya/go-blog-client/session"
)

// PostStatus is the publication state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a blog post as returned by the API
type Post struct {
	ID        string     `json:"id"`
	AuthorID  string     `json:"author_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PostInput carries the writable post fields for create and update calls
type PostInput struct {
	Title   string     `json:"title,omitempty"`
	Content string     `json:"content,omitempty"`
	Status  PostStatus `json:"status,omitempty"`
}

// Pagination is the meta block of a list response
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PostPage is one page of posts
type PostPage struct {
	Data []Post     `json:"data"`
	Meta Pagination `json:"meta"`
}

// UserPage is one page of users from the admin listing
type UserPage struct {
	Data []session.User `json:"data"`
	Meta Pagination     `json:"meta"`
}
