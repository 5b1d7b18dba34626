package rpc

import (
	"time"

	"github.com/dtroode/contacts-server/internal/model"
)

// DateLayout is the wire format of contact birthdays.
const DateLayout = "2006-01-02"

type Empty struct{}

type MessageResponse struct {
	Message string `json:"message"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser converts a model user, leaving secrets behind.
func NewUser(u model.User) *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.AvatarURL(),
		Confirmed: u.Confirmed,
		CreatedAt: u.CreatedAt,
	}
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type SignupResponse struct {
	User   *User  `json:"user"`
	Detail string `json:"detail"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func NewTokenResponse(p model.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
	}
}

type RequestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type Contact struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Birthday    string `json:"birthday"`
	Description string `json:"description"`
}

func NewContact(c model.Contact) *Contact {
	birthday := ""
	if !c.Birthday.IsZero() {
		birthday = c.Birthday.Format(DateLayout)
	}
	return &Contact{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		Birthday:    birthday,
		Description: c.Description,
	}
}

type ContactsResponse struct {
	Contacts []*Contact `json:"contacts"`
}

func NewContactsResponse(contacts []model.Contact) *ContactsResponse {
	out := make([]*Contact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, NewContact(c))
	}
	return &ContactsResponse{Contacts: out}
}

type ContactIDRequest struct {
	ID int64 `json:"id" validate:"gte=1"`
}

type SearchRequest struct {
	Value string `json:"value" validate:"required"`
}

type ContactFields struct {
	FirstName   string `json:"firstname" validate:"min=2,max=20"`
	LastName    string `json:"lastname" validate:"min=2,max=20"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"min=8,max=16"`
	Birthday    string `json:"birthday" validate:"required,datetime=2006-01-02"`
	Description string `json:"description"`
}

// Params converts validated fields to service parameters.
func (f ContactFields) Params() (model.ContactParams, error) {
	birthday, err := time.Parse(DateLayout, f.Birthday)
	if err != nil {
		return model.ContactParams{}, err
	}
	return model.ContactParams{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Email:       f.Email,
		Phone:       f.Phone,
		Birthday:    birthday,
		Description: f.Description,
	}, nil
}

type CreateContactRequest struct {
	ContactFields
}

type UpdateContactRequest struct {
	ID int64 `json:"id" validate:"gte=1"`
	ContactFields
}
