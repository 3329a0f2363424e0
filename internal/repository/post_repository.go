package repository

import (
	"context"
	"time"

	"postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/store"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	GetAll(ctx context.Context) ([]model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetByAuthorID(ctx context.Context, authorID int64) ([]model.Post, error)
	Create(ctx context.Context, params model.CreatePostParams) (*model.Post, error)
	Update(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type postRepository struct {
	store *store.Store
	now   func() time.Time
}

// PostRepositoryOption configures a post repository.
type PostRepositoryOption func(*postRepository)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) PostRepositoryOption {
	return func(r *postRepository) {
		r.now = now
	}
}

// NewPostRepository builds a repository over the store's post collection.
func NewPostRepository(s *store.Store, opts ...PostRepositoryOption) PostRepository {
	r := &postRepository{store: s, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *postRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	return r.store.Posts(ctx), nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	for _, p := range r.store.Posts(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.ErrRecordNotFound
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID int64) ([]model.Post, error) {
	posts := make([]model.Post, 0)
	for _, p := range r.store.Posts(ctx) {
		if p.AuthorID == authorID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

// Create assigns the id as the current maximum plus one (1 for an empty
// collection), stamps CreatedAt and appends the post.
func (r *postRepository) Create(ctx context.Context, params model.CreatePostParams) (*model.Post, error) {
	var created *model.Post
	err := r.store.WithTransaction(ctx, func(ctx context.Context) error {
		var maxID int64
		for _, p := range r.store.Posts(ctx) {
			if p.ID > maxID {
				maxID = p.ID
			}
		}
		post := model.Post{
			ID:        maxID + 1,
			Title:     params.Title,
			Content:   params.Content,
			AuthorID:  params.AuthorID,
			CreatedAt: r.now(),
			Published: params.Published,
		}
		r.store.AppendPost(ctx, post)
		created = &post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update merges the non-nil patch fields into the stored post.
func (r *postRepository) Update(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error) {
	var updated *model.Post
	err := r.store.WithTransaction(ctx, func(ctx context.Context) error {
		posts := r.store.Posts(ctx)
		i := indexOfPost(posts, id)
		if i < 0 {
			return errors.ErrRecordNotFound
		}
		post := posts[i]
		if patch.Title != nil {
			post.Title = *patch.Title
		}
		if patch.Content != nil {
			post.Content = *patch.Content
		}
		if patch.Published != nil {
			post.Published = *patch.Published
		}
		r.store.SetPost(ctx, i, post)
		updated = &post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the post and reports whether it existed.
func (r *postRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.store.WithTransaction(ctx, func(ctx context.Context) error {
		i := indexOfPost(r.store.Posts(ctx), id)
		if i < 0 {
			return nil
		}
		_, deleted = r.store.RemovePost(ctx, i)
		return nil
	})
	return deleted, err
}

func indexOfPost(posts []model.Post, id int64) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
