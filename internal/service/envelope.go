package service

import "postboard/internal/errors"

// Envelope is the uniform result of a service call as handed to the HTTP
// layer. Errors is empty on success and non-empty on failure.
type Envelope[T any] struct {
	Success bool     `json:"success"`
	Data    T        `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Err     error    `json:"-"`
}

// NewEnvelope wraps the (value, error) pair returned by a service method.
func NewEnvelope[T any](data T, err error) Envelope[T] {
	if err != nil {
		var zero T
		return Envelope[T]{Success: false, Data: zero, Errors: errors.Messages(err), Err: err}
	}
	return Envelope[T]{Success: true, Data: data}
}
