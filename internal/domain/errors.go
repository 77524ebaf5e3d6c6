package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrAnnotatorUnavailable = errors.New("annotator unavailable")
	ErrParseLogDisabled     = errors.New("parse log is disabled")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
)
