package repository

import "errors"

var (
	ErrNotFound = errors.New("document not found")
	ErrNotEvent = errors.New("post is not an event")
)
