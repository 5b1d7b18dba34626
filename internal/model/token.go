package model

import "time"

// Scope distinguishes otherwise identical tokens.
type Scope string

const (
	ScopeAccess      Scope = "access"
	ScopeRefresh     Scope = "refresh"
	ScopeEmailVerify Scope = "email_verify"
)

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopeAccess, ScopeRefresh, ScopeEmailVerify:
		return true
	}
	return false
}

// TokenTypeBearer is returned alongside every issued token pair.
const TokenTypeBearer = "bearer"

// TokenCodec issues and validates scoped tokens. Decoding always checks the
// scope: there is no way to obtain a subject without naming the expected one.
type TokenCodec interface {
	Issue(scope Scope, subject string, ttl time.Duration) (string, error)
	IssueDefault(scope Scope, subject string) (string, error)
	DecodeWithScope(token string, expected Scope) (string, error)
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}
