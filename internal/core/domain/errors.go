package domain

import (
	"errors"
	"fmt"
)

// ErrFetch wraps every network or decoding failure against an external API.
var ErrFetch = errors.New("fetch failed")

// ErrValidation is the parent of every error caused by user input that the
// front end should report next to the form that produced it.
var ErrValidation = errors.New("validation failed")

// ErrPersistence is returned when a cart snapshot could not be written to
// durable storage. The in-memory mutation that triggered the write is kept.
var ErrPersistence = errors.New("cart could not be saved")

var (
	ErrCaptchaMismatch = fmt.Errorf("%w: security answer is not correct", ErrValidation)
	ErrUserExists      = fmt.Errorf("%w: username already taken", ErrValidation)
	ErrInvalidInput    = fmt.Errorf("%w: invalid input", ErrValidation)
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("no active session")
	ErrForbidden          = errors.New("access forbidden")
	ErrItemNotFound       = errors.New("item not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrStaleLoad          = errors.New("category load superseded")
)
