package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/contacts-server/internal/model"
)

// AuthService is a mock of the auth operations used by the transports.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Signup(ctx context.Context, username, email, password string) (model.User, error) {
	args := m.Called(ctx, username, email, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthService) ResolveIdentity(ctx context.Context, bearer string) (model.User, error) {
	args := m.Called(ctx, bearer)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *AuthService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *AuthService) RequestEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// NewAuthService creates an AuthService mock that asserts its expectations on cleanup.
func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// UsersService is a mock of the profile operations used by the transports.
type UsersService struct {
	mock.Mock
}

func (m *UsersService) Me(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UsersService) UpdateAvatar(ctx context.Context, user model.User, reader io.Reader, size int64, contentType string) (model.User, error) {
	args := m.Called(ctx, user, reader, size, contentType)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UsersService) Avatar(ctx context.Context, user model.User) (io.ReadCloser, error) {
	args := m.Called(ctx, user)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

// NewUsersService creates a UsersService mock that asserts its expectations on cleanup.
func NewUsersService(t testingT) *UsersService {
	m := &UsersService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ContactsService is a mock of the address book operations used by the transports.
type ContactsService struct {
	mock.Mock
}

func (m *ContactsService) List(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	args := m.Called(ctx, ownerID)
	contacts, _ := args.Get(0).([]model.Contact)
	return contacts, args.Error(1)
}

func (m *ContactsService) Get(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.Contact), args.Error(1)
}

func (m *ContactsService) Search(ctx context.Context, ownerID int64, value string) ([]model.Contact, error) {
	args := m.Called(ctx, ownerID, value)
	contacts, _ := args.Get(0).([]model.Contact)
	return contacts, args.Error(1)
}

func (m *ContactsService) Birthdays(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	args := m.Called(ctx, ownerID)
	contacts, _ := args.Get(0).([]model.Contact)
	return contacts, args.Error(1)
}

func (m *ContactsService) Create(ctx context.Context, ownerID int64, params model.ContactParams) (model.Contact, error) {
	args := m.Called(ctx, ownerID, params)
	return args.Get(0).(model.Contact), args.Error(1)
}

func (m *ContactsService) Update(ctx context.Context, ownerID, id int64, params model.ContactParams) (model.Contact, error) {
	args := m.Called(ctx, ownerID, id, params)
	return args.Get(0).(model.Contact), args.Error(1)
}

func (m *ContactsService) Delete(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.Contact), args.Error(1)
}

// NewContactsService creates a ContactsService mock that asserts its expectations on cleanup.
func NewContactsService(t testingT) *ContactsService {
	m := &ContactsService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
