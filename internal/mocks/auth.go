package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/contacts-server/internal/model"
)

// IdentityCache is a mock of model.IdentityCache.
type IdentityCache struct {
	mock.Mock
}

func (m *IdentityCache) Lookup(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *IdentityCache) Fill(ctx context.Context, email string, user model.User) {
	m.Called(ctx, email, user)
}

func (m *IdentityCache) Invalidate(ctx context.Context, email string) {
	m.Called(ctx, email)
}

// NewIdentityCache creates an IdentityCache mock that asserts its expectations on cleanup.
func NewIdentityCache(t testingT) *IdentityCache {
	m := &IdentityCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(plaintext, digest string) bool {
	args := m.Called(plaintext, digest)
	return args.Bool(0)
}

// NewPasswordHasher creates a PasswordHasher mock that asserts its expectations on cleanup.
func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// TokenCodec is a mock of model.TokenCodec.
type TokenCodec struct {
	mock.Mock
}

func (m *TokenCodec) Issue(scope model.Scope, subject string, ttl time.Duration) (string, error) {
	args := m.Called(scope, subject, ttl)
	return args.String(0), args.Error(1)
}

func (m *TokenCodec) IssueDefault(scope model.Scope, subject string) (string, error) {
	args := m.Called(scope, subject)
	return args.String(0), args.Error(1)
}

func (m *TokenCodec) DecodeWithScope(token string, expected model.Scope) (string, error) {
	args := m.Called(token, expected)
	return args.String(0), args.Error(1)
}

// NewTokenCodec creates a TokenCodec mock that asserts its expectations on cleanup.
func NewTokenCodec(t testingT) *TokenCodec {
	m := &TokenCodec{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Mailer is a mock of model.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendConfirmation(ctx context.Context, email, username, link string) error {
	args := m.Called(ctx, email, username, link)
	return args.Error(0)
}

// NewMailer creates a Mailer mock that asserts its expectations on cleanup.
func NewMailer(t testingT) *Mailer {
	m := &Mailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func (m *ContextManager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	args := m.Called(ctx, user)
	return args.Get(0).(context.Context)
}

func (m *ContextManager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	args := m.Called(ctx)
	return args.Get(0).(model.User), args.Bool(1)
}

// NewContextManager creates a ContextManager mock that asserts its expectations on cleanup.
func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
