// Package usecase implements the business logic for the accounts feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username, email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when attempting to create a user with a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when attempting to create a user with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrDuplicateKey is returned by repositories when the storage layer rejects
	// an insert on a uniqueness constraint. The usecase maps it to ErrUsernameTaken
	// or ErrEmailTaken.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidCredentials is returned on login when the email is unknown or the
	// password does not match. The two causes are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPasswordTooShort is returned when a registration password is below the minimum length.
	ErrPasswordTooShort = errors.New("password is too short")
)
