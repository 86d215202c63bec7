package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrConcurrentUpdate is returned when a versioned write lost a race with another writer
	ErrConcurrentUpdate = errors.New("resource was modified concurrently")
	// ErrConstraintViolated is returned when the store rejected a write that breaks a
	// stored invariant, such as a balance dropping below its limit.
	ErrConstraintViolated = errors.New("store constraint violated")
)
