package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Please provide both an email address and a password.")
	ErrInvalidCredentials    = errors.New("The email address or password is incorrect.")
	ErrEmailTaken            = errors.New("An account with this email address already exists.")
	ErrInvalidEmail          = errors.New("Please enter a valid email address.")
	ErrWeakPassword          = errors.New("Your password must be at least 8 characters and include a letter, a number, and a special character.")
	ErrInvalidFullName       = errors.New("Please enter your full name using letters only.")
	ErrNotAuthenticated      = errors.New("Authentication credentials were not provided.")
)
