package models

import "errors"

// Error taxonomy shared by services, repositories and handlers.
var (
	// ErrNotFound signals that the assignment (or a referenced
	// sub-resource such as a user's submission) does not exist.
	ErrNotFound = errors.New("assignment not found")

	// ErrAlreadySubmitted signals a violation of the one-submission-per-user
	// rule. Terminal for that user/assignment pair.
	ErrAlreadySubmitted = errors.New("already submitted")

	// ErrUnauthorized signals that the caller is not the assignment owner.
	ErrUnauthorized = errors.New("user not authorized")

	// ErrUploadFailed signals a failure in the external object store.
	ErrUploadFailed = errors.New("image could not be uploaded")
)
