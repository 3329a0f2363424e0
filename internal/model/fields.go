package model

import (
	"encoding/json"
	"math"
)

// Field names of the update payloads as they appear on the wire.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldAge       = "age"
	FieldRole      = "role"
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldAuthorID  = "authorId"
	FieldCreatedAt = "createdAt"
	FieldPublished = "published"
)

// Fields is a decoded update payload. Keys that are absent were not sent by
// the caller; values keep their decoded dynamic type so type rules can be
// checked by the business layer.
type Fields map[string]any

// Has reports whether key was sent.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// String returns the value under key when it is a string.
func (f Fields) String(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

// Bool returns the value under key when it is a bool.
func (f Fields) Bool(key string) (bool, bool) {
	b, ok := f[key].(bool)
	return b, ok
}

// Int returns the value under key when it is a whole number. JSON numbers
// decoded as float64 or json.Number are accepted.
func (f Fields) Int(key string) (int, bool) {
	switch v := f[key].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
