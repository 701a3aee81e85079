package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors. Check with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateAccount  = errors.New("user with this email already exists")
	ErrAuthentication    = errors.New("invalid email or password")
	ErrInsufficientWords = errors.New("not enough words in catalog")
	ErrStorage           = errors.New("storage failure")
	ErrCorruptRecord     = errors.New("corrupt record")
	ErrNotFound          = errors.New("record not found")
)

// ValidationError lists the input fields that were rejected, keyed by field name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps a persistence failure with the operation that hit it
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
