// Package seed provides the initial user set the store starts with.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"postboard/internal/model"
	"postboard/internal/repository"
)

// File is the on-disk seed layout.
type File struct {
	Users []model.User `yaml:"users"`
}

// Default returns the built-in seed set: one admin and three regular users.
func Default() []model.User {
	return []model.User{
		{ID: 1, Name: "Admin Flavio", Email: "admin@example.com", Role: model.RoleAdmin, Age: 35},
		{ID: 2, Name: "Bela", Email: "Bela@example.com", Role: model.RoleUser, Age: 28},
		{ID: 3, Name: "Antonio Smith", Email: "Smith@example.com", Role: model.RoleUser, Age: 24},
		{ID: 4, Name: "Baiana", Email: "Baiana@example.com", Role: model.RoleUser, Age: 42},
	}
}

// Load reads the users listed in a YAML seed file.
func Load(path string) ([]model.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	seen := make(map[int64]struct{}, len(f.Users))
	for _, u := range f.Users {
		if u.ID == 0 {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			return nil, fmt.Errorf("seed file: duplicate user id %d", u.ID)
		}
		seen[u.ID] = struct{}{}
	}
	return f.Users, nil
}

// Write stores users as a YAML seed file at path.
func Write(path string, users []model.User) error {
	data, err := yaml.Marshal(File{Users: users})
	if err != nil {
		return fmt.Errorf("encode seed file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	return nil
}

// Apply inserts users in order. Users without an id get the next free one.
func Apply(ctx context.Context, repo repository.UserRepository, users []model.User) (int, error) {
	created := 0
	for _, u := range users {
		u := u
		if err := repo.Create(ctx, &u); err != nil {
			return created, fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		created++
	}
	return created, nil
}
