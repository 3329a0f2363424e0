package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/internal/model"
	"postboard/internal/repository"
	"postboard/internal/store"
)

func TestDefault(t *testing.T) {
	users := Default()
	require.Len(t, users, 4)

	admins := 0
	for i, u := range users {
		assert.Equal(t, int64(i+1), u.ID)
		if u.IsAdmin() {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")

	require.NoError(t, Write(path, Default()))
	users, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), users)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("users: [::"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("users:\n  - id: 1\n    name: A\n  - id: 1\n    name: B\n"), 0o600))
	_, err = Load(dup)
	assert.ErrorContains(t, err, "duplicate user id 1")
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(store.New())

	n, err := Apply(ctx, repo, []model.User{
		{ID: 5, Name: "Five", Email: "five@example.com", Role: model.RoleUser, Age: 20},
		{Name: "Next", Email: "next@example.com", Role: model.RoleAdmin, Age: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(5), users[0].ID)
	assert.Equal(t, int64(6), users[1].ID)
}
