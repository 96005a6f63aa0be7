package account

import "errors"

var (
	ErrMissingSignupData  = errors.New("email, password, full name and company name are required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrInvalidCompanyID   = errors.New("invalid company id")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrInvalidUpload      = errors.New("invalid upload")
	ErrSignup             = errors.New("failed to sign up")
	ErrLogin              = errors.New("failed to log in")
	ErrLoadProfile        = errors.New("failed to load profile")
	ErrSaveProfile        = errors.New("failed to save profile")
	ErrSaveCompany        = errors.New("failed to save company")
	ErrUploadAvatar       = errors.New("failed to upload avatar")
)
