package repository

import (
	"context"

	"postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/store"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetAll(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByAgeRange(ctx context.Context, minAge, maxAge *int) ([]model.User, error)
	IsEmailInUse(ctx context.Context, email string, excludeID *int64) (bool, error)
	Update(ctx context.Context, id int64, data model.User) (*model.User, error)
	RemoveMany(ctx context.Context, ids []int64) ([]model.User, error)
}

type userRepository struct {
	store *store.Store
}

// NewUserRepository builds a repository over the store's user collection.
func NewUserRepository(s *store.Store) UserRepository {
	return &userRepository{store: s}
}

// Create appends a user, assigning the next id when user.ID is zero.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.store.WithTransaction(ctx, func(ctx context.Context) error {
		users := r.store.Users(ctx)
		if user.ID == 0 {
			user.ID = nextUserID(users)
		}
		r.store.AppendUser(ctx, *user)
		return nil
	})
}

func (r *userRepository) GetAll(ctx context.Context) ([]model.User, error) {
	return r.store.Users(ctx), nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	for _, u := range r.store.Users(ctx) {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, errors.ErrRecordNotFound
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.store.Users(ctx) {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, errors.ErrRecordNotFound
}

// GetByAgeRange filters on age >= minAge and age <= maxAge; a nil bound leaves
// that side open.
func (r *userRepository) GetByAgeRange(ctx context.Context, minAge, maxAge *int) ([]model.User, error) {
	filtered := make([]model.User, 0)
	for _, u := range r.store.Users(ctx) {
		if minAge != nil && u.Age < *minAge {
			continue
		}
		if maxAge != nil && u.Age > *maxAge {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered, nil
}

// IsEmailInUse reports whether a user other than excludeID has the email.
func (r *userRepository) IsEmailInUse(ctx context.Context, email string, excludeID *int64) (bool, error) {
	for _, u := range r.store.Users(ctx) {
		if u.Email != email {
			continue
		}
		if excludeID == nil || u.ID != *excludeID {
			return true, nil
		}
	}
	return false, nil
}

// Update replaces the mutable fields of the user, keeping its id.
func (r *userRepository) Update(ctx context.Context, id int64, data model.User) (*model.User, error) {
	var updated *model.User
	err := r.store.WithTransaction(ctx, func(ctx context.Context) error {
		i := indexOfUser(r.store.Users(ctx), id)
		if i < 0 {
			return errors.ErrRecordNotFound
		}
		data.ID = id
		r.store.SetUser(ctx, i, data)
		updated = &data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveMany removes every user whose id is listed and returns the removed
// records. Unknown ids are skipped.
func (r *userRepository) RemoveMany(ctx context.Context, ids []int64) ([]model.User, error) {
	removed := make([]model.User, 0, len(ids))
	err := r.store.WithTransaction(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			i := indexOfUser(r.store.Users(ctx), id)
			if i < 0 {
				continue
			}
			if u, ok := r.store.RemoveUser(ctx, i); ok {
				removed = append(removed, u)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func indexOfUser(users []model.User, id int64) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func nextUserID(users []model.User) int64 {
	var maxID int64
	for _, u := range users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}
