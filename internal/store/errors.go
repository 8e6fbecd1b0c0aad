package store

import (
	"errors"
	"fmt"

	"lyricist/internal/services"
)

var (
	// ErrInvalidPath reports a write whose path lacks the resolver suffix.
	ErrInvalidPath = fmt.Errorf("%w: invalid lyrics path", services.ErrValidation)
	// ErrNothingToCorrect reports a correction against an empty cache.
	ErrNothingToCorrect = fmt.Errorf("%w: nothing to correct", services.ErrNotFound)
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
