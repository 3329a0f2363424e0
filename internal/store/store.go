// Package store holds the in-memory user and post collections.
package store

import (
	"context"
	"sync"

	"postboard/internal/model"
)

type txKey struct{}

// Store owns the user and post collections and is the only place they are
// mutated. It does no validation. Collections keep insertion order.
//
// Every method takes the store lock unless ctx was produced by
// WithTransaction on the same Store, in which case the caller already holds
// the write lock.
type Store struct {
	mu    sync.RWMutex
	users []model.User
	posts []model.Post
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users: make([]model.User, 0),
		posts: make([]model.Post, 0),
	}
}

// WithTransaction runs fn while holding the write lock, so that the reads and
// writes fn performs through ctx are atomic with respect to other callers.
// Nested calls with a transactional ctx run fn directly.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTransaction(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, s))
}

func (s *Store) inTransaction(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

func (s *Store) read(ctx context.Context, fn func()) {
	if !s.inTransaction(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func()) {
	if !s.inTransaction(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

// Users returns a copy of the user collection in insertion order.
func (s *Store) Users(ctx context.Context) []model.User {
	var out []model.User
	s.read(ctx, func() {
		out = make([]model.User, len(s.users))
		copy(out, s.users)
	})
	return out
}

// Posts returns a copy of the post collection in insertion order.
func (s *Store) Posts(ctx context.Context) []model.Post {
	var out []model.Post
	s.read(ctx, func() {
		out = make([]model.Post, len(s.posts))
		copy(out, s.posts)
	})
	return out
}

// AppendUser adds a user at the end of the collection.
func (s *Store) AppendUser(ctx context.Context, u model.User) {
	s.write(ctx, func() {
		s.users = append(s.users, u)
	})
}

// AppendPost adds a post at the end of the collection.
func (s *Store) AppendPost(ctx context.Context, p model.Post) {
	s.write(ctx, func() {
		s.posts = append(s.posts, p)
	})
}

// SetUser replaces the user at index i. It reports false when i is out of range.
func (s *Store) SetUser(ctx context.Context, i int, u model.User) bool {
	ok := false
	s.write(ctx, func() {
		if i < 0 || i >= len(s.users) {
			return
		}
		s.users[i] = u
		ok = true
	})
	return ok
}

// SetPost replaces the post at index i. It reports false when i is out of range.
func (s *Store) SetPost(ctx context.Context, i int, p model.Post) bool {
	ok := false
	s.write(ctx, func() {
		if i < 0 || i >= len(s.posts) {
			return
		}
		s.posts[i] = p
		ok = true
	})
	return ok
}

// RemoveUser deletes the user at index i and returns it.
func (s *Store) RemoveUser(ctx context.Context, i int) (model.User, bool) {
	var removed model.User
	ok := false
	s.write(ctx, func() {
		if i < 0 || i >= len(s.users) {
			return
		}
		removed = s.users[i]
		s.users = append(s.users[:i], s.users[i+1:]...)
		ok = true
	})
	return removed, ok
}

// RemovePost deletes the post at index i and returns it.
func (s *Store) RemovePost(ctx context.Context, i int) (model.Post, bool) {
	var removed model.Post
	ok := false
	s.write(ctx, func() {
		if i < 0 || i >= len(s.posts) {
			return
		}
		removed = s.posts[i]
		s.posts = append(s.posts[:i], s.posts[i+1:]...)
		ok = true
	})
	return removed, ok
}
