package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handler layer. Bad login
// credentials, invalid tokens and tokens for deleted users all surface as
// the same ErrUnauthorized so callers cannot tell the cases apart.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrUnauthorized  = errors.New("invalid credentials")
	ErrNotFound      = errors.New("not found")
)
