package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildprogrammer1000/codeconnect/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestLoginSetsAmbientCredential(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice123", body["username"])
		assert.Equal(t, "secretpass1", body["password"])

		http.SetCookie(w, &http.Cookie{Name: "connect.sid", Value: "s1", Path: "/"})
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 1, "user_id": "alice123", "nickname": "Alice"},
		})
	})
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("connect.sid")
		if err != nil || ck.Value != "s1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 1, "user_id": "alice123", "nickname": "Alice"},
		})
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	user, err := c.Login(ctx, "alice123", "secretpass1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, model.User{ID: 1, UserID: "alice123", Nickname: "Alice"}, *user)

	// The session cookie rides along without the caller passing it.
	user, err = c.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alice", user.Nickname)
}

func TestStatusMapping(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	_, err := c.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Register(ctx, "alice123", "secretpass1", "Alice")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = c.ListProjects(ctx)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "/api/projects", statusErr.Path)
}

func TestToggleLike(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/like", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(7), body["projectId"])
		assert.Equal(t, true, body["liked"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"project": map[string]interface{}{"id": 7, "liked": true, "like_count": 4},
		})
	})

	c := newTestClient(t, mux)

	p, err := c.ToggleLike(context.Background(), 7, true)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 7, p.ID)
	assert.True(t, p.Liked)
	assert.Equal(t, 4, p.LikeCount)
}

func TestCreateProjectMultipart(t *testing.T) {
	thumb := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, os.WriteFile(thumb, []byte("png-bytes"), 0o600))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "My Game", r.FormValue("title"))
		assert.Equal(t, "alice123", r.FormValue("user_id"))
		assert.Equal(t, "https://example.com/play", r.FormValue("url"))
		assert.Equal(t, "a tiny game", r.FormValue("description"))

		file, header, err := r.FormFile("thumbnail")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "shot.png", header.Filename)

		w.WriteHeader(http.StatusCreated)
	})

	c := newTestClient(t, mux)

	err := c.CreateProject(context.Background(), model.ProjectDraft{
		Title:         "My Game",
		UserID:        "alice123",
		URL:           "https://example.com/play",
		ThumbnailPath: thumb,
		Description:   "a tiny game",
	})
	require.NoError(t, err)
}

func TestUpdateProjectWithoutThumbnail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/3", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Renamed", r.FormValue("title"))
		_, _, err := r.FormFile("thumbnail")
		assert.Error(t, err, "no thumbnail part expected")
	})

	c := newTestClient(t, mux)

	err := c.UpdateProject(context.Background(), model.ProjectDraft{
		ID:     3,
		Title:  "Renamed",
		UserID: "alice123",
		URL:    "https://example.com",
	})
	require.NoError(t, err)
}

func TestDeleteProject(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.DeleteProject(context.Background(), 3))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/projects/3", gotPath)
}

func TestDeleteComment(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.DeleteComment(context.Background(), 42))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/comments/42", gotPath)
}

func TestSessionCookieRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("connect.sid")
		if err != nil || ck.Value != "persisted" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 2, "user_id": "bob45678", "nickname": "Bob"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	first, err := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	first.SetSessionCookie("connect.sid=persisted")

	serialized := first.SessionCookie()
	assert.Contains(t, serialized, "connect.sid=persisted")

	// A fresh client seeded from the serialized form is signed in.
	second, err := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	second.SetSessionCookie(serialized)

	user, err := second.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "bob45678", user.UserID)
}
