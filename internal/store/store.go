// Package store persists validated form documents into named collections.
// Backends are selected from DATABASE_URL; see Open.
package store

import (
	"context"
	"errors"
	"fmt"
)

// DefaultSampleSize bounds the collection listing used by diagnostics.
const DefaultSampleSize = 10

// Document is a validated record keyed by field name.
type Document map[string]any

// Store creates documents and exposes a read-only view of its collections.
type Store interface {
	// Create inserts doc as a new record and returns its generated id.
	// Every call creates exactly one record.
	Create(ctx context.Context, collection string, doc Document) (string, error)
	// ListCollections returns at most limit collection names.
	ListCollections(ctx context.Context, limit int) ([]string, error)
	// Name is the configured database name.
	Name() string
	Close(ctx context.Context) error
}

// ConfigurationError reports a store that was never initialised.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "database not configured: " + e.Reason
}

// PersistenceError wraps every failure of a store operation.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

const maxShort = 100

// Short is a bounded description of the cause, safe to hand to clients.
func (e *PersistenceError) Short() string {
	msg := "unknown error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	r := []rune(msg)
	if len(r) > maxShort {
		return string(r[:maxShort])
	}
	return msg
}

func wrap(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Collection: collection, Err: err}
}

func checkCollection(collection string) error {
	if collection == "" {
		return &PersistenceError{Op: "create", Err: errors.New("collection name is empty")}
	}
	return nil
}

// Unavailable stands in for a store that could not be opened. Writes fail with
// a PersistenceError wrapping the cause.
type Unavailable struct {
	Cause error
	name  string
}

// NewUnavailable returns a Store that fails every operation with cause.
func NewUnavailable(name string, cause error) *Unavailable {
	if cause == nil {
		cause = &ConfigurationError{Reason: "store not initialised"}
	}
	return &Unavailable{Cause: cause, name: name}
}

func (u *Unavailable) Create(_ context.Context, collection string, _ Document) (string, error) {
	return "", &PersistenceError{Op: "create", Collection: collection, Err: fmt.Errorf("database not available: %w", u.Cause)}
}

func (u *Unavailable) ListCollections(context.Context, int) ([]string, error) {
	return nil, &PersistenceError{Op: "list collections", Err: u.Cause}
}

func (u *Unavailable) Name() string { return u.name }

func (u *Unavailable) Close(context.Context) error { return nil }

// UnavailableCause returns the reason s is unusable, or nil for a live store.
func UnavailableCause(s Store) error {
	if s == nil {
		return &ConfigurationError{Reason: "store not initialised"}
	}
	if u, ok := s.(*Unavailable); ok {
		return u.Cause
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSampleSize
	}
	return limit
}
