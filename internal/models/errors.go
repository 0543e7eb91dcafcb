package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicatePhone     = errors.New("models: duplicate phone number")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidPassword    = errors.New("models: invalid password")
	ErrItemNotFound       = errors.New("models: item not found")
	ErrItemExchanged      = errors.New("models: item already exchanged")
)

var (
	ErrThreadNotFound     = errors.New("models: thread not found")
	ErrNotAParticipant    = errors.New("models: user is not a party of this thread")
	ErrThreadNotCompleted = errors.New("models: exchange is not completed yet")
	ErrInvalidScore       = errors.New("models: score must be an integer from 1 to 5")
	ErrAlreadyRated       = errors.New("models: exchange already rated by this user")
)
