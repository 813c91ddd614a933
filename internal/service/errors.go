package service

import "errors"

// Common service errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotAuthorized = errors.New("not authorized")
)

// User service errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Match lifecycle errors
var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrInvalidAction     = errors.New("invalid action type")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Score ledger errors
var (
	ErrStatsNotFound    = errors.New("match stats not found")
	ErrPlayerNotFound   = errors.New("player not found in this match")
	ErrInvalidPointType = errors.New("invalid point type")
	ErrTeamNotResolved  = errors.New("could not determine which team to award points to")
)
