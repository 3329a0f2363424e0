package service

import (
	stderrors "errors"
	"fmt"

	"postboard/internal/errors"
)

func isRecordNotFound(err error) bool {
	return stderrors.Is(err, errors.ErrRecordNotFound)
}

// notFoundOr turns a repository miss into a not-found failure and wraps any
// other error.
func notFoundOr(err error, msg string) error {
	if isRecordNotFound(err) {
		return errors.NotFound(msg)
	}
	return fmt.Errorf("repository: %w", err)
}
