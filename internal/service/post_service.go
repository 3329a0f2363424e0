package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/repository"
)

const (
	minTitleLength   = 3
	minContentLength = 10
)

const (
	msgTitleTooShort      = "title must be at least 3 characters"
	msgContentTooShort    = "content must be at least 10 characters"
	msgAuthorIDRequired   = "author id is required"
	msgAuthorNotFound     = "author not found"
	msgPublishedNotBool   = "published must be a boolean (true/false)"
	msgPostNotFound       = "post not found"
	msgPermissionDenied   = "permission denied: only the author or an admin can delete this post"
	msgFieldsNotUpdatable = "fields %s cannot be updated"
)

// immutablePostFields lists the post fields an update may not carry, in the
// order they are reported.
var immutablePostFields = []string{model.FieldID, model.FieldAuthorID, model.FieldCreatedAt}

// PostService exposes validated post operations.
type PostService interface {
	GetAllPosts(ctx context.Context) ([]model.Post, error)
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	GetPostsByAuthorID(ctx context.Context, authorID int64) ([]model.Post, error)
	CreatePost(ctx context.Context, title, content string, authorID int64) (*model.Post, error)
	UpdatePost(ctx context.Context, id int64, fields model.Fields) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) (bool, error)
	DeletePostWithAuth(ctx context.Context, postID, userID int64) (bool, error)
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	tx       repository.TransactionManager
}

// NewPostService builds a PostService.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	tx repository.TransactionManager,
) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		tx:       tx,
	}
}

func (s *postService) GetAllPosts(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.GetAll(ctx)
}

func (s *postService) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgPostNotFound)
	}
	return post, nil
}

// GetPostsByAuthorID lists the author's posts; the author must exist.
func (s *postService) GetPostsByAuthorID(ctx context.Context, authorID int64) ([]model.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, notFoundOr(err, msgAuthorNotFound)
	}
	return s.postRepo.GetByAuthorID(ctx, authorID)
}

// CreatePost collects every violated rule before failing. New posts start
// unpublished.
func (s *postService) CreatePost(ctx context.Context, title, content string, authorID int64) (*model.Post, error) {
	var created *model.Post
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var msgs []string

		if utf8.RuneCountInString(title) < minTitleLength {
			msgs = append(msgs, msgTitleTooShort)
		}
		if utf8.RuneCountInString(content) < minContentLength {
			msgs = append(msgs, msgContentTooShort)
		}

		if authorID == 0 {
			msgs = append(msgs, msgAuthorIDRequired)
		} else if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
			if !isRecordNotFound(err) {
				return fmt.Errorf("lookup author: %w", err)
			}
			msgs = append(msgs, msgAuthorNotFound)
		}

		if len(msgs) > 0 {
			return errors.Validation(msgs...)
		}

		post, err := s.postRepo.Create(ctx, model.CreatePostParams{
			Title:     title,
			Content:   content,
			AuthorID:  authorID,
			Published: false,
		})
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		created = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdatePost rejects payloads that touch immutable fields and validates the
// mutable ones that are present. Nothing is applied when any rule fails.
func (s *postService) UpdatePost(ctx context.Context, id int64, fields model.Fields) (*model.Post, error) {
	var msgs []string

	var illegal []string
	for _, name := range immutablePostFields {
		if fields.Has(name) {
			illegal = append(illegal, name)
		}
	}
	if len(illegal) > 0 {
		msgs = append(msgs, fmt.Sprintf(msgFieldsNotUpdatable, strings.Join(illegal, ", ")))
	}

	var patch model.PostPatch
	if fields.Has(model.FieldTitle) {
		title, ok := fields.String(model.FieldTitle)
		if !ok || utf8.RuneCountInString(title) < minTitleLength {
			msgs = append(msgs, msgTitleTooShort)
		} else {
			patch.Title = &title
		}
	}
	if fields.Has(model.FieldContent) {
		content, ok := fields.String(model.FieldContent)
		if !ok || utf8.RuneCountInString(content) < minContentLength {
			msgs = append(msgs, msgContentTooShort)
		} else {
			patch.Content = &content
		}
	}
	if fields.Has(model.FieldPublished) {
		published, ok := fields.Bool(model.FieldPublished)
		if !ok {
			msgs = append(msgs, msgPublishedNotBool)
		} else {
			patch.Published = &published
		}
	}

	if len(msgs) > 0 {
		return nil, errors.Validation(msgs...)
	}

	post, err := s.postRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, notFoundOr(err, msgPostNotFound)
	}
	return post, nil
}

// DeletePost removes a post without any authorization check.
func (s *postService) DeletePost(ctx context.Context, id int64) (bool, error) {
	return s.postRepo.Delete(ctx, id)
}

// DeletePostWithAuth deletes the post when userID is its author or an admin.
func (s *postService) DeletePostWithAuth(ctx context.Context, postID, userID int64) (bool, error) {
	deleted := false
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		post, err := s.postRepo.GetByID(ctx, postID)
		if err != nil {
			return notFoundOr(err, msgPostNotFound)
		}
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return notFoundOr(err, msgUserNotFound)
		}

		if post.AuthorID != user.ID && !user.IsAdmin() {
			slog.WarnContext(ctx, "post delete denied",
				slog.Int64("post_id", postID),
				slog.Int64("user_id", userID),
			)
			return errors.Forbidden(msgPermissionDenied)
		}

		deleted, err = s.postRepo.Delete(ctx, postID)
		if err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
