package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrOffline  = errors.New("offline")
)

// APIError represents a failed call against one of the entity APIs
type APIError struct {
	Op      string // Operation: "list", "create", "update", "delete"
	Entity  string // Entity kind: "task", "deal", "phase", ...
	ID      string // Optional: specific entity ID
	Message string // Human-readable context
	Err     error  // Underlying error
}

func (e *APIError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s [%s]: %s", e.Entity, e.Op, e.ID, e.text())
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Op, e.text())
}

func (e *APIError) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "failed"
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// CacheError represents a failure in the durable local cache
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %s [%s]: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}
