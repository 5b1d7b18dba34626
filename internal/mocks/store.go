package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/contacts-server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) SetRefreshToken(ctx context.Context, email string, fingerprint string) error {
	args := m.Called(ctx, email, fingerprint)
	return args.Error(0)
}

func (m *UserStore) RotateRefreshToken(ctx context.Context, email string, expected string, next string) (bool, error) {
	args := m.Called(ctx, email, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *UserStore) SetConfirmed(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *UserStore) SetAvatar(ctx context.Context, email string, url string) (model.User, error) {
	args := m.Called(ctx, email, url)
	return args.Get(0).(model.User), args.Error(1)
}

// NewUserStore creates a UserStore mock that asserts its expectations on cleanup.
func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ContactStore is a mock of model.ContactStore.
type ContactStore struct {
	mock.Mock
}

func (m *ContactStore) List(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	args := m.Called(ctx, ownerID)
	contacts, _ := args.Get(0).([]model.Contact)
	return contacts, args.Error(1)
}

func (m *ContactStore) GetByID(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.Contact), args.Error(1)
}

func (m *ContactStore) Search(ctx context.Context, ownerID int64, value string) ([]model.Contact, error) {
	args := m.Called(ctx, ownerID, value)
	contacts, _ := args.Get(0).([]model.Contact)
	return contacts, args.Error(1)
}

func (m *ContactStore) Create(ctx context.Context, contact model.Contact) (model.Contact, error) {
	args := m.Called(ctx, contact)
	return args.Get(0).(model.Contact), args.Error(1)
}

func (m *ContactStore) Update(ctx context.Context, contact model.Contact) (model.Contact, error) {
	args := m.Called(ctx, contact)
	return args.Get(0).(model.Contact), args.Error(1)
}

func (m *ContactStore) Delete(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.Contact), args.Error(1)
}

// NewContactStore creates a ContactStore mock that asserts its expectations on cleanup.
func NewContactStore(t testingT) *ContactStore {
	m := &ContactStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
