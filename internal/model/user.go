package model

// User is the account identity returned by the backend. UserID is the
// login id chosen at registration; Nickname is the public display name.
type User struct {
	// ID is the backend's internal numeric identifier.
	ID int `json:"id"`

	// UserID is the login id (the "username" in auth requests).
	UserID string `json:"user_id"`

	// Nickname is the display name shown next to projects and comments.
	Nickname string `json:"nickname"`
}
