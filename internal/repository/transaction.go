package repository

import (
	"context"

	"postboard/internal/store"
)

// TransactionManager runs a unit of work atomically. Repository calls made
// with the ctx passed to fn join the same unit of work.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ TransactionManager = (*store.Store)(nil)
