package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateName      = errors.New("category name already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateLogin     = errors.New("login already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StorageError wraps a failure of the persistence layer. The cause stays
// reachable through errors.Is/As, e.g. gorm.ErrDuplicatedKey on a unique
// constraint that a pre-check did not catch.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is a uniqueness violation, caught either by a
// pre-check or by a database constraint.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicateLogin) ||
		errors.Is(err, gorm.ErrDuplicatedKey)
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicateLogin) ||
		errors.Is(err, ErrInvalidCredentials)
}

func wrapStorage(op string, err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// notFoundOr maps gorm.ErrRecordNotFound to ErrNotFound and leaves other errors untouched.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// runInTx executes fn in a single transaction bound to ctx.
func runInTx(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	return wrapStorage(op, db.WithContext(ctx).Transaction(fn))
}
