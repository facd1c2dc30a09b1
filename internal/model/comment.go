package model

// Comment is a single comment on a project. The client never patches
// cached comments; the panel refetches the whole list after every mutation.
type Comment struct {
	// ID is the backend-assigned identifier.
	ID int `json:"id"`

	// UserID is the author's login id.
	UserID string `json:"user_id"`

	// Nickname is the author's display name.
	Nickname string `json:"nickname"`

	// Content is the comment text, at most 300 characters.
	Content string `json:"content"`

	// CreatedAt is the creation timestamp as formatted by the backend.
	CreatedAt string `json:"created_at"`
}
