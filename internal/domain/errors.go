package domain

import "errors"

// Common errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("a package with this id already exists")
	ErrUploadFailed       = errors.New("media upload failed")
	ErrNotificationFailed = errors.New("notification delivery failed")
	ErrCacheMiss          = errors.New("cache miss")
)
