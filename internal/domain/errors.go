package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrEmptyDescription   = errors.New("description is required")
	ErrInvalidKind        = errors.New("invalid entry kind")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfAction         = errors.New("cannot perform this action on own account")
	ErrInvalidRequest     = errors.New("invalid request")
)
