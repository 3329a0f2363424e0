package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"postboard/internal/model"
	"postboard/internal/repository"
	"postboard/internal/store"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByAgeRange(ctx context.Context, minAge, maxAge *int) ([]model.User, error) {
	args := m.Called(ctx, minAge, maxAge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) IsEmailInUse(ctx context.Context, email string, excludeID *int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, data model.User) (*model.User, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) RemoveMany(ctx context.Context, ids []int64) ([]model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetByAuthorID(ctx context.Context, authorID int64) ([]model.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, params model.CreatePostParams) (*model.Post, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// passthroughTx runs the unit of work directly; mocks need no locking.
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var testNow = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

// testEnv wires both services over a fresh store seeded with one admin and
// three regular users (ids 1..4).
type testEnv struct {
	store   *store.Store
	users   repository.UserRepository
	posts   repository.PostRepository
	userSvc UserService
	postSvc PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := store.New()
	users := repository.NewUserRepository(s)
	posts := repository.NewPostRepository(s, repository.WithClock(func() time.Time { return testNow }))

	ctx := context.Background()
	for _, u := range []model.User{
		{Name: "Admin Flavio", Email: "admin@example.com", Role: model.RoleAdmin, Age: 35},
		{Name: "Bela", Email: "bela@example.com", Role: model.RoleUser, Age: 28},
		{Name: "Antonio Smith", Email: "smith@example.com", Role: model.RoleUser, Age: 24},
		{Name: "Baiana", Email: "baiana@example.com", Role: model.RoleUser, Age: 42},
	} {
		u := u
		require.NoError(t, users.Create(ctx, &u))
	}

	return &testEnv{
		store:   s,
		users:   users,
		posts:   posts,
		userSvc: NewUserService(users, posts, s, nil),
		postSvc: NewPostService(posts, users, s),
	}
}
