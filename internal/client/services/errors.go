package services

import "errors"

// Validation errors raised before any request is made.
var (
	ErrEmptyMessage = errors.New("message must not be empty")
	ErrEmptyContent = errors.New("content must not be empty")
)
