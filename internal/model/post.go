package model

import "time"

// Post represents a piece of content written by a user. ID, AuthorID and
// CreatedAt are fixed at creation.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	Published bool      `json:"published"`
}

// CreatePostParams represents parameters for creating a new post.
type CreatePostParams struct {
	Title     string
	Content   string
	AuthorID  int64
	Published bool
}

// PostPatch carries the mutable post fields to merge. Nil fields are left
// untouched.
type PostPatch struct {
	Title     *string
	Content   *string
	Published *bool
}
