package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for identities.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
	SetRefreshToken(ctx context.Context, email string, fingerprint string) error
	RotateRefreshToken(ctx context.Context, email string, expected string, next string) (bool, error)
	SetConfirmed(ctx context.Context, email string) error
	SetAvatar(ctx context.Context, email string, url string) (User, error)
}

// User is the authenticated principal.
//
// PasswordHash and RefreshToken never leave the process in serialized form, so
// cached snapshots carry neither of them.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       *string   `json:"avatar,omitempty"`
	RefreshToken *string   `json:"-"`
	Confirmed    bool      `json:"confirmed"`
	CreatedAt    time.Time `json:"created_at"`
}

// AvatarURL returns the avatar reference or an empty string.
func (u User) AvatarURL() string {
	if u.Avatar == nil {
		return ""
	}
	return *u.Avatar
}
