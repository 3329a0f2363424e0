package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"postboard/internal/cache"
	"postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/repository"
)

const (
	msgNameRequired      = "name is required"
	msgNameNotString     = "name must be a string"
	msgEmailRequired     = "email is required"
	msgEmailInvalid      = "invalid email format"
	msgAgeRequired       = "age is required"
	msgAgeInvalid        = "age must be a non-negative number"
	msgRoleRequired      = "role is required"
	msgRoleInvalid       = `role must be "admin" or "user"`
	msgEmailDuplicate    = "email already in use"
	msgUserNotFound      = "user not found"
	msgCleanupNotConfirm = "confirmation required: set confirm=true to remove inactive users"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService exposes validated user operations.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsersByAgeRange(ctx context.Context, minAge, maxAge *int) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, fields model.Fields) (*model.User, error)
	CleanupInactiveUsers(ctx context.Context, confirm bool) ([]model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	tx       repository.TransactionManager
	cache    *cache.Client
}

// NewUserService builds a UserService. cache may be nil.
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	tx repository.TransactionManager,
	cache *cache.Client,
) UserService {
	return &userService{
		userRepo: userRepo,
		postRepo: postRepo,
		tx:       tx,
		cache:    cache,
	}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgUserNotFound)
	}

	s.cache.SetJSON(ctx, userCacheKey(id), user)

	// A write that committed and invalidated the key between the read above
	// and SetJSON would leave a stale entry; drop it if the store moved on.
	if current, err := s.userRepo.GetByID(ctx, id); err != nil || *current != *user {
		s.cache.Delete(ctx, userCacheKey(id))
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, notFoundOr(err, msgUserNotFound)
	}
	return user, nil
}

func (s *userService) GetUsersByAgeRange(ctx context.Context, minAge, maxAge *int) ([]model.User, error) {
	return s.userRepo.GetByAgeRange(ctx, minAge, maxAge)
}

// UpdateUser validates every field as a batch, except the duplicate email
// check which fails on its own with a single message.
func (s *userService) UpdateUser(ctx context.Context, id int64, fields model.Fields) (*model.User, error) {
	var updated *model.User
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var msgs []string

		name, isString := fields.String(model.FieldName)
		switch {
		case fields[model.FieldName] == nil || (isString && name == ""):
			msgs = append(msgs, msgNameRequired)
		case !isString:
			msgs = append(msgs, msgNameNotString)
		}

		email, isString := fields.String(model.FieldEmail)
		switch {
		case fields[model.FieldEmail] == nil || (isString && email == ""):
			msgs = append(msgs, msgEmailRequired)
		case !isString || !emailPattern.MatchString(email):
			msgs = append(msgs, msgEmailInvalid)
		}

		age, isInt := fields.Int(model.FieldAge)
		switch {
		case !fields.Has(model.FieldAge):
			msgs = append(msgs, msgAgeRequired)
		case !isInt || age < 0:
			msgs = append(msgs, msgAgeInvalid)
		}

		role, isString := fields.String(model.FieldRole)
		switch {
		case fields[model.FieldRole] == nil || (isString && role == ""):
			msgs = append(msgs, msgRoleRequired)
		case role != model.RoleAdmin && role != model.RoleUser:
			msgs = append(msgs, msgRoleInvalid)
		}

		if email != "" {
			inUse, err := s.userRepo.IsEmailInUse(ctx, email, &id)
			if err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if inUse {
				return errors.Conflict(msgEmailDuplicate)
			}
		}

		if len(msgs) > 0 {
			return errors.Validation(msgs...)
		}

		user, err := s.userRepo.Update(ctx, id, model.User{Name: name, Email: email, Age: age, Role: role})
		if err != nil {
			return notFoundOr(err, msgUserNotFound)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, userCacheKey(id))
	return updated, nil
}

// CleanupInactiveUsers removes every non-admin user that authors no post.
// Admins are always kept; authors are kept regardless of role.
func (s *userService) CleanupInactiveUsers(ctx context.Context, confirm bool) ([]model.User, error) {
	if !confirm {
		return nil, errors.Precondition(msgCleanupNotConfirm)
	}

	removed := make([]model.User, 0)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		users, err := s.userRepo.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		posts, err := s.postRepo.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("list posts: %w", err)
		}

		authors := make(map[int64]struct{}, len(posts))
		for _, p := range posts {
			authors[p.AuthorID] = struct{}{}
		}

		var candidates []int64
		for _, u := range users {
			if u.IsAdmin() {
				continue
			}
			if _, isAuthor := authors[u.ID]; isAuthor {
				continue
			}
			candidates = append(candidates, u.ID)
		}
		if len(candidates) == 0 {
			return nil
		}

		removed, err = s.userRepo.RemoveMany(ctx, candidates)
		if err != nil {
			return fmt.Errorf("remove users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(removed))
	for _, u := range removed {
		keys = append(keys, userCacheKey(u.ID))
	}
	s.cache.Delete(ctx, keys...)

	slog.InfoContext(ctx, "inactive users removed", slog.Int("count", len(removed)))
	return removed, nil
}
