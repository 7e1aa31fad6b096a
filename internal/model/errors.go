package model

import "errors"

// Common errors used across the application
var (
	// Member errors
	ErrMemberNotFound = errors.New("member not found")

	// Rotation errors
	ErrEmptyRoster      = errors.New("roster has no members")
	ErrCursorOutOfRange = errors.New("cursor is out of range for the roster")

	// Movie errors
	ErrMovieNotFound = errors.New("movie not found")

	// Chat errors
	ErrEmptyMessage = errors.New("chat message is empty")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")
)
