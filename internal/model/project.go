package model

// Project is a shared project as returned by the backend. The client keeps
// a read-mostly cached copy per feed render; Liked, LikeCount and
// CommentCount always hold the values last returned by the backend for this
// id; the client never derives them locally.
type Project struct {
	// ID is the backend-assigned identifier.
	ID int `json:"id"`

	// Title is the project name.
	Title string `json:"title"`

	// UserID is the owner's login id.
	UserID string `json:"user_id"`

	// Nickname is the owner's display name.
	Nickname string `json:"nickname"`

	// URL is the project's destination link.
	URL string `json:"url"`

	// Thumbnail is the thumbnail image URL, empty when none was uploaded.
	Thumbnail string `json:"thumbnail"`

	// Description is the free-form project description.
	Description string `json:"description"`

	// CreatedAt is the creation timestamp as formatted by the backend.
	CreatedAt string `json:"created_at"`

	// Liked reports whether the current viewer likes this project.
	Liked bool `json:"liked"`

	// LikeCount is the total number of likes.
	LikeCount int `json:"like_count"`

	// CommentCount is the total number of comments.
	CommentCount int `json:"comment_count"`
}

// ProjectDraft is the client-side input for creating or updating a project.
// ThumbnailPath points at a local image file to upload; it is optional.
type ProjectDraft struct {
	ID            int
	Title         string
	UserID        string
	URL           string
	ThumbnailPath string
	Description   string
}
