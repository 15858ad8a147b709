package service

import "errors"

// Sentinel errors returned by the services. Handlers map these onto HTTP
// statuses; anything else is treated as an internal error.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrSelfFollow          = errors.New("cannot subscribe to yourself")
	ErrNotOwner            = errors.New("not the owner")
	ErrIngredientNotFound  = errors.New("ingredient does not exist")
	ErrTagNotFound         = errors.New("tag does not exist")
	ErrDuplicateIngredient = errors.New("duplicate ingredient in recipe")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrTokenRevoked        = errors.New("token has been revoked")
)
