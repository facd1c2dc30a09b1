// Package testutil provides an in-memory api.Service fake and helpers for
// exercising Bubble Tea commands in tests.
package testutil

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/model"
)

// FakeService is an in-memory api.Service. Each call records its name in
// Calls so tests can assert call counts; the Last* fields capture the
// most recent arguments.
type FakeService struct {
	User    *model.User
	UserErr error

	LoginUser *model.User
	LoginErr  error
	LastLogin struct {
		Username string
		Password string
	}

	LogoutErr error

	RegisterUser *model.User
	RegisterErr  error
	LastRegister struct {
		Username string
		Password string
		Nickname string
	}

	NicknameAvailable bool
	NicknameMessage   string
	NicknameErr       error

	Projects        []model.Project
	ListProjectsErr error

	Project       *model.Project
	GetProjectErr error

	CreateProjectErr error
	UpdateProjectErr error
	DeleteProjectErr error
	LastDraft        model.ProjectDraft
	LastDeletedID    int

	LikeProject *model.Project
	LikeErr     error
	LastLike    struct {
		ProjectID int
		Liked     bool
	}

	CommentList     []model.Comment
	ListCommentsErr error

	AddCommentErr    error
	DeleteCommentErr error
	LastComment      struct {
		ProjectID int
		UserID    string
		Content   string
	}
	LastDeletedComment int

	Calls []string
}

var _ api.Service = (*FakeService)(nil)

func (f *FakeService) record(name string) {
	f.Calls = append(f.Calls, name)
}

// CallCount returns how many times the named method was invoked.
func (f *FakeService) CallCount(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *FakeService) CurrentUser(context.Context) (*model.User, error) {
	f.record("CurrentUser")
	return f.User, f.UserErr
}

func (f *FakeService) Login(_ context.Context, username, password string) (*model.User, error) {
	f.record("Login")
	f.LastLogin.Username = username
	f.LastLogin.Password = password
	return f.LoginUser, f.LoginErr
}

func (f *FakeService) Logout(context.Context) error {
	f.record("Logout")
	return f.LogoutErr
}

func (f *FakeService) Register(_ context.Context, username, password, nickname string) (*model.User, error) {
	f.record("Register")
	f.LastRegister.Username = username
	f.LastRegister.Password = password
	f.LastRegister.Nickname = nickname
	return f.RegisterUser, f.RegisterErr
}

func (f *FakeService) CheckNickname(_ context.Context, nickname string) (bool, string, error) {
	f.record("CheckNickname")
	return f.NicknameAvailable, f.NicknameMessage, f.NicknameErr
}

func (f *FakeService) ListProjects(context.Context) ([]model.Project, error) {
	f.record("ListProjects")
	return f.Projects, f.ListProjectsErr
}

func (f *FakeService) GetProject(_ context.Context, id int) (*model.Project, error) {
	f.record("GetProject")
	return f.Project, f.GetProjectErr
}

func (f *FakeService) CreateProject(_ context.Context, draft model.ProjectDraft) error {
	f.record("CreateProject")
	f.LastDraft = draft
	return f.CreateProjectErr
}

func (f *FakeService) UpdateProject(_ context.Context, draft model.ProjectDraft) error {
	f.record("UpdateProject")
	f.LastDraft = draft
	return f.UpdateProjectErr
}

func (f *FakeService) DeleteProject(_ context.Context, id int) error {
	f.record("DeleteProject")
	f.LastDeletedID = id
	return f.DeleteProjectErr
}

func (f *FakeService) ToggleLike(_ context.Context, projectID int, liked bool) (*model.Project, error) {
	f.record("ToggleLike")
	f.LastLike.ProjectID = projectID
	f.LastLike.Liked = liked
	return f.LikeProject, f.LikeErr
}

func (f *FakeService) ListComments(_ context.Context, projectID int) ([]model.Comment, error) {
	f.record("ListComments")
	return f.CommentList, f.ListCommentsErr
}

func (f *FakeService) AddComment(_ context.Context, projectID int, userID, content string) error {
	f.record("AddComment")
	f.LastComment.ProjectID = projectID
	f.LastComment.UserID = userID
	f.LastComment.Content = content
	return f.AddCommentErr
}

func (f *FakeService) DeleteComment(_ context.Context, id int) error {
	f.record("DeleteComment")
	f.LastDeletedComment = id
	return f.DeleteCommentErr
}

// Drain executes a command tree synchronously and collects every message
// it produces, flattening batches.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
