package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"postboard/internal/cache"
	"postboard/internal/errors"
	"postboard/internal/model"
)

func newCachedUserService(t *testing.T, env *testEnv) (UserService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.New(cache.Options{Addr: mr.Addr(), TTL: time.Minute})
	t.Cleanup(func() { c.Close() })
	return NewUserService(env.users, env.posts, env.store, c), mr
}

func TestUserService_CachedReadSeesUpdate(t *testing.T) {
	env := newTestEnv(t)
	svc, mr := newCachedUserService(t, env)
	ctx := context.Background()

	user, err := svc.GetUserByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bela", user.Name)
	assert.True(t, mr.Exists("user:2"))

	fields := validUserFields()
	fields["name"] = "Renamed"
	_, err = svc.UpdateUser(ctx, 2, fields)
	require.NoError(t, err)
	assert.False(t, mr.Exists("user:2"))

	user, err = svc.GetUserByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
}

func TestUserService_CachedReadSeesCleanup(t *testing.T) {
	env := newTestEnv(t)
	svc, mr := newCachedUserService(t, env)
	ctx := context.Background()

	_, err := svc.GetUserByID(ctx, 3)
	require.NoError(t, err)
	require.True(t, mr.Exists("user:3"))

	_, err = svc.CleanupInactiveUsers(ctx, true)
	require.NoError(t, err)
	assert.False(t, mr.Exists("user:3"))

	user, err := svc.GetUserByID(ctx, 3)
	assert.Nil(t, user)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	assert.Equal(t, []string{msgUserNotFound}, errors.Messages(err))
}

func TestUserService_CachedReadServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(cache.Options{Addr: mr.Addr(), TTL: time.Minute})
	defer c.Close()

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&model.User{ID: 2, Name: "Bela"}, nil).Twice()

	svc := NewUserService(mockUsers, new(MockPostRepository), passthroughTx{}, c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		user, err := svc.GetUserByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Bela", user.Name)
	}
	mockUsers.AssertExpectations(t)
}

func TestUserService_CachedReadDropsEntryWhenStoreMovedOn(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(cache.Options{Addr: mr.Addr(), TTL: time.Minute})
	defer c.Close()

	// the store changes between the read and the cache write
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&model.User{ID: 2, Name: "Bela"}, nil).Once()
	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&model.User{ID: 2, Name: "Renamed"}, nil).Once()

	svc := NewUserService(mockUsers, new(MockPostRepository), passthroughTx{}, c)

	user, err := svc.GetUserByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Bela", user.Name)
	assert.False(t, mr.Exists("user:2"))
	mockUsers.AssertExpectations(t)
}

func TestUserService_CachedReadDropsEntryWhenUserRemoved(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(cache.Options{Addr: mr.Addr(), TTL: time.Minute})
	defer c.Close()

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(3)).Return(&model.User{ID: 3, Name: "Antonio Smith"}, nil).Once()
	mockUsers.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.ErrRecordNotFound).Once()

	svc := NewUserService(mockUsers, new(MockPostRepository), passthroughTx{}, c)

	_, err := svc.GetUserByID(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, mr.Exists("user:3"))
}
