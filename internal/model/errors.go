package model

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized is the only authentication failure visible outside the auth service.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrUnprocessableToken reports an undecodable email verification token.
	ErrUnprocessableToken = errors.New("invalid token for email verification")

	ErrEmailNotConfirmed    = errors.New("email not confirmed")
	ErrRefreshTokenMismatch = errors.New("refresh token mismatch")
)

// Token codec failures.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenWrongScope       = errors.New("invalid scope for token")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
)

// ErrCacheMiss is returned by IdentityCache.Lookup when no usable entry exists.
var ErrCacheMiss = errors.New("identity cache miss")
