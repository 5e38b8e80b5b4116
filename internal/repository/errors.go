// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the auction service to distinguish between different
// failure scenarios without string matching on driver errors.
package repository

import "errors"

// ErrListingNotFound indicates that a listing id does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrListingNotFound = errors.New("listing not found")

// ErrUserNotFound indicates that a user id does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned when registration collides with an
// existing username. Handlers translate this into an HTTP 409
// response with the literal "Username already taken." message.
var ErrUsernameExists = errors.New("username already exists")
