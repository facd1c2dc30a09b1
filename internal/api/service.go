package api

import (
	"context"

	"github.com/wildprogrammer1000/codeconnect/internal/model"
)

// Service is the backend surface consumed by the views. *Client implements
// it; tests substitute in-memory fakes.
type Service interface {
	// CurrentUser asks the backend who the ambient credential belongs to.
	CurrentUser(ctx context.Context) (*model.User, error)

	// Login authenticates with a login id and password. The backend sets
	// the session credential cookie on success.
	Login(ctx context.Context, username, password string) (*model.User, error)

	// Logout invalidates the server-side session.
	Logout(ctx context.Context) error

	// Register creates a new account and signs it in.
	Register(ctx context.Context, username, password, nickname string) (*model.User, error)

	// CheckNickname asks whether a nickname is still available. The
	// returned message is backend-provided and shown to the user either way.
	CheckNickname(ctx context.Context, nickname string) (bool, string, error)

	// ListProjects fetches the whole project feed.
	ListProjects(ctx context.Context) ([]model.Project, error)

	// GetProject fetches a single project by id.
	GetProject(ctx context.Context, id int) (*model.Project, error)

	// CreateProject uploads a new project as a multipart form.
	CreateProject(ctx context.Context, draft model.ProjectDraft) error

	// UpdateProject replaces an existing project, same form shape as create.
	UpdateProject(ctx context.Context, draft model.ProjectDraft) error

	// DeleteProject removes a project by id.
	DeleteProject(ctx context.Context, id int) error

	// ToggleLike sets the viewer's like state for a project and returns
	// the authoritative post-mutation snapshot of that project.
	ToggleLike(ctx context.Context, projectID int, liked bool) (*model.Project, error)

	// ListComments fetches all comments for a project.
	ListComments(ctx context.Context, projectID int) ([]model.Comment, error)

	// AddComment posts a new comment on a project.
	AddComment(ctx context.Context, projectID int, userID, content string) error

	// DeleteComment removes a comment by id.
	DeleteComment(ctx context.Context, id int) error
}
