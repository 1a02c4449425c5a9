package service

import (
	"errors"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/repository"
)

var (
	// ErrPermissionDenied means the caller's capability does not allow the
	// operation. Fatal for the request; never retried.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConflict means a competing change got there first: a second
	// pending submission for the same target, or a decision on a record
	// whose target already moved on. Caller refreshes and retries.
	ErrConflict = errors.New("conflicting change outstanding")

	// ErrNotLive means a general-info edit targeted a service that has no
	// live snapshot to stage against.
	ErrNotLive = errors.New("service is not live")

	ErrNotFound  = repository.ErrNotFound
	ErrDuplicate = repository.ErrDuplicate
)
