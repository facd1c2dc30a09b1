package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wildprogrammer1000/codeconnect/internal/model"
)

// Response envelopes used by the backend.
type userResponse struct {
	User *model.User `json:"user"`
}

type projectsResponse struct {
	Projects []model.Project `json:"projects"`
}

type projectResponse struct {
	Project *model.Project `json:"project"`
}

type commentsResponse struct {
	Comments []model.Comment `json:"comments"`
}

type checkNicknameResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// CurrentUser implements Service.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login implements Service.
func (c *Client) Login(ctx context.Context, username, password string) (*model.User, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var resp userResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout implements Service.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// Register implements Service.
func (c *Client) Register(ctx context.Context, username, password, nickname string) (*model.User, error) {
	body := map[string]string{
		"username": username,
		"password": password,
		"nickname": nickname,
	}
	var resp userResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// CheckNickname implements Service.
func (c *Client) CheckNickname(ctx context.Context, nickname string) (bool, string, error) {
	body := map[string]string{"nickname": nickname}
	var resp checkNicknameResponse
	if err := c.do(ctx, http.MethodPost, "/api/check-nickname", body, &resp); err != nil {
		return false, "", err
	}
	return resp.Available, resp.Message, nil
}

// ListProjects implements Service.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var resp projectsResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// GetProject implements Service.
func (c *Client) GetProject(ctx context.Context, id int) (*model.Project, error) {
	var resp projectResponse
	path := "/api/projects/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Project, nil
}

// CreateProject implements Service.
func (c *Client) CreateProject(ctx context.Context, draft model.ProjectDraft) error {
	return c.sendProjectForm(ctx, http.MethodPost, "/api/projects", draft)
}

// UpdateProject implements Service.
func (c *Client) UpdateProject(ctx context.Context, draft model.ProjectDraft) error {
	path := "/api/projects/" + strconv.Itoa(draft.ID)
	return c.sendProjectForm(ctx, http.MethodPut, path, draft)
}

// sendProjectForm submits a project draft as a multipart form with the
// fields title, user_id, url, description and an optional thumbnail file.
func (c *Client) sendProjectForm(
	ctx context.Context,
	method string,
	path string,
	draft model.ProjectDraft,
) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       draft.Title,
		"user_id":     draft.UserID,
		"url":         draft.URL,
		"description": draft.Description,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("writing form field %q: %w", name, err)
		}
	}

	if draft.ThumbnailPath != "" {
		if err := attachThumbnail(w, draft.ThumbnailPath); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, method, c.baseURL.String()+path, &buf,
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, method, path, nil)
}

// attachThumbnail streams a local image file into the multipart form.
func attachThumbnail(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening thumbnail %s: %w", path, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile("thumbnail", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("creating thumbnail part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copying thumbnail %s: %w", path, err)
	}
	return nil
}

// DeleteProject implements Service.
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	path := "/api/projects/" + strconv.Itoa(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ToggleLike implements Service.
func (c *Client) ToggleLike(ctx context.Context, projectID int, liked bool) (*model.Project, error) {
	body := map[string]interface{}{
		"projectId": projectID,
		"liked":     liked,
	}
	var resp projectResponse
	if err := c.do(ctx, http.MethodPost, "/api/like", body, &resp); err != nil {
		return nil, err
	}
	return resp.Project, nil
}

// ListComments implements Service.
func (c *Client) ListComments(ctx context.Context, projectID int) ([]model.Comment, error) {
	var resp commentsResponse
	path := "/api/comments/" + strconv.Itoa(projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// AddComment implements Service.
func (c *Client) AddComment(ctx context.Context, projectID int, userID, content string) error {
	body := map[string]interface{}{
		"projectId": projectID,
		"userId":    userID,
		"content":   content,
	}
	return c.do(ctx, http.MethodPost, "/api/comments", body, nil)
}

// DeleteComment implements Service.
func (c *Client) DeleteComment(ctx context.Context, id int) error {
	path := "/api/comments/" + strconv.Itoa(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Compile-time check that Client satisfies the Service interface.
var _ Service = (*Client)(nil)
