package contact

import "errors"

var (
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPhone    = errors.New("invalid phone")
	ErrInvalidStage    = errors.New("invalid stage")
	ErrInvalidEstimate = errors.New("invalid estimate")
	ErrContactNotFound = errors.New("contact not found")
)
