package domain

import "errors"

var (
	ErrEmptyInput       = errors.New("empty input")
	ErrNoImageSelected  = errors.New("no image selected")
	ErrPermissionDenied = errors.New("permission denied")
	ErrRequestInFlight  = errors.New("request already in flight")
	ErrRecordingActive  = errors.New("recording already active")
	ErrInvalidResponse  = errors.New("invalid response shape")
	ErrUserNotFound     = errors.New("user not found")
	ErrRecordNotFound   = errors.New("record not found")
	ErrEmptyRecord      = errors.New("record needs a note or an image")
)
