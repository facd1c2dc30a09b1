// Package session holds the client's belief about which user, if any, is
// currently authenticated, and keeps it synchronized with the server-side
// credential state.
package session

import "github.com/wildprogrammer1000/codeconnect/internal/model"

// Store is the process-wide session holder. It is replaced wholesale on
// login, registration, logout, and every "who am I" check result; it is
// never partially mutated and never persisted (the ambient credential
// cookie is the only durable state).
//
// The store is confined to the Bubble Tea event loop: all replacements
// happen inside Update handlers, so no locking is needed. If this client
// is ever driven from multiple goroutines, add synchronization here.
type Store struct {
	user *model.User
}

// NewStore creates an empty session store (no user signed in).
func NewStore() *Store {
	return &Store{}
}

// Current returns the signed-in user, or nil when there is none.
func (s *Store) Current() *model.User {
	return s.user
}

// Replace swaps the whole session value. Passing nil signs the user out
// locally.
func (s *Store) Replace(u *model.User) {
	s.user = u
}

// SignedIn reports whether a user is currently signed in.
func (s *Store) SignedIn() bool {
	return s.user != nil
}
