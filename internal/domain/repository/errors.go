package repository

import "errors"

// Domain error values. Services return these unchanged; the HTTP layer maps
// them onto status codes.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPostNotFound     = errors.New("post not found")
	ErrBlobNotFound     = errors.New("media not found")
	ErrPlanNotFound     = errors.New("learning plan not found")
	ErrProgressNotFound = errors.New("learning progress not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflictingMedia = errors.New("cannot upload both images and video")
	ErrTooManyImages    = errors.New("maximum 3 images allowed")
)
