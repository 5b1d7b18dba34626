package model

import (
	"context"
	"time"
)

// BirthdayWindowDays is how far ahead upcoming birthdays are looked up.
const BirthdayWindowDays = 7

// ContactStore defines persistence operations for contacts. Every operation is
// scoped by the owning user.
type ContactStore interface {
	List(ctx context.Context, ownerID int64) ([]Contact, error)
	GetByID(ctx context.Context, ownerID, id int64) (Contact, error)
	Search(ctx context.Context, ownerID int64, value string) ([]Contact, error)
	Create(ctx context.Context, contact Contact) (Contact, error)
	Update(ctx context.Context, contact Contact) (Contact, error)
	Delete(ctx context.Context, ownerID, id int64) (Contact, error)
}

// Contact is an address book entry owned by a user.
type Contact struct {
	ID          int64
	OwnerID     int64
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Birthday    time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactParams carries user supplied contact fields.
type ContactParams struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Birthday    time.Time
	Description string
}
