package model

import "errors"

var (
	// Store level outcomes. Services translate these into API errors
	// with resource context attached.
	ErrNotFound = errors.New("document not found")
	ErrConflict = errors.New("document already exists")
)
