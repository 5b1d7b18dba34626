package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/metrics"
	"github.com/dtroode/contacts-server/internal/model"
)

// dummyDigest is verified against when no identity exists for a login email,
// so both rejection paths pay for one bcrypt comparison.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// identityReadTimeout bounds the store read shared by concurrent cache misses.
const identityReadTimeout = 5 * time.Second

// Auth authenticates users and resolves bearer tokens to identities.
type Auth struct {
	userStore    model.UserStore
	cache        model.IdentityCache
	hasher       model.PasswordHasher
	codec        model.TokenCodec
	mailer       model.Mailer
	tokenService *TokenService
	confirmURL   string
	lookups      singleflight.Group
	logger       *logger.Logger
}

// NewAuth creates the auth service. confirmURL is the prefix the email
// verification token is appended to in confirmation mails.
func NewAuth(
	userStore model.UserStore,
	cache model.IdentityCache,
	hasher model.PasswordHasher,
	codec model.TokenCodec,
	mailer model.Mailer,
	confirmURL string,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		cache:        cache,
		hasher:       hasher,
		codec:        codec,
		mailer:       mailer,
		tokenService: NewTokenService(codec, userStore, cache, logger),
		confirmURL:   confirmURL,
		logger:       logger,
	}
}

// Signup creates an unconfirmed user and mails an email verification link.
func (a *Auth) Signup(ctx context.Context, username, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		metrics.RecordAuth("signup", metrics.OutcomeRejected)
		return model.User{}, model.ErrAlreadyExists
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		metrics.RecordAuth("signup", metrics.OutcomeError)
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		metrics.RecordAuth("signup", metrics.OutcomeError)
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			metrics.RecordAuth("signup", metrics.OutcomeRejected)
			return model.User{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		metrics.RecordAuth("signup", metrics.OutcomeError)
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	// The account exists either way; a lost mail is recovered through RequestEmail.
	if err := a.sendConfirmation(ctx, user); err != nil {
		a.logger.Error("Auth service: failed to send confirmation email",
			"email", email,
			"error", err.Error())
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"email", email,
		"user_id", user.ID)
	metrics.RecordAuth("signup", metrics.OutcomeSuccess)

	return user, nil
}

// Login exchanges email and password for a token pair. Unknown emails,
// unconfirmed accounts and wrong passwords are all reported as
// model.ErrUnauthorized.
func (a *Auth) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		metrics.RecordAuth("login", metrics.OutcomeError)
		return model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	found := err == nil

	digest := dummyDigest
	if found {
		digest = user.PasswordHash
	}
	verified := a.hasher.Verify(password, digest)

	switch {
	case !found:
		return a.rejectLogin(email, model.ErrNotFound)
	case !verified:
		return a.rejectLogin(email, errors.New("invalid password"))
	case !user.Confirmed:
		return a.rejectLogin(email, model.ErrEmailNotConfirmed)
	}

	pair, err := a.tokenService.Issue(ctx, user.Email)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"email", email,
			"error", err.Error())
		metrics.RecordAuth("login", metrics.OutcomeError)
		return model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"email", email)
	metrics.RecordAuth("login", metrics.OutcomeSuccess)

	return pair, nil
}

func (a *Auth) rejectLogin(email string, reason error) (model.TokenPair, error) {
	a.logger.Info("Auth service: login rejected",
		"email", email,
		"reason", reason.Error())
	metrics.RecordAuth("login", metrics.OutcomeRejected)
	return model.TokenPair{}, model.ErrUnauthorized
}

// Refresh rotates a refresh token into a new pair. Only the refresh token
// issued last for the identity is accepted.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	email, err := a.codec.DecodeWithScope(refreshToken, model.ScopeRefresh)
	if err != nil {
		a.logger.Info("Auth service: refresh token rejected",
			"reason", err.Error())
		metrics.RecordAuth("refresh", metrics.OutcomeRejected)
		return model.TokenPair{}, model.ErrUnauthorized
	}

	pair, err := a.tokenService.Rotate(ctx, email, refreshToken)
	if err != nil {
		if errors.Is(err, model.ErrRefreshTokenMismatch) {
			metrics.RecordAuth("refresh", metrics.OutcomeRejected)
			return model.TokenPair{}, model.ErrUnauthorized
		}
		a.logger.Error("Auth service: failed to rotate refresh token",
			"email", email,
			"error", err.Error())
		metrics.RecordAuth("refresh", metrics.OutcomeError)
		return model.TokenPair{}, err
	}

	a.logger.Info("Auth service: tokens refreshed",
		"email", email)
	metrics.RecordAuth("refresh", metrics.OutcomeSuccess)

	return pair, nil
}

// Logout forgets the recorded refresh token of user. Access tokens already
// handed out stay valid until they expire.
func (a *Auth) Logout(ctx context.Context, user model.User) error {
	if err := a.tokenService.Revoke(ctx, user.Email); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrUnauthorized
		}
		a.logger.Error("Auth service: failed to log out",
			"email", user.Email,
			"error", err.Error())
		return err
	}

	a.logger.Info("Auth service: user logged out",
		"email", user.Email)

	return nil
}

// ResolveIdentity maps an access token to the identity it was issued for.
func (a *Auth) ResolveIdentity(ctx context.Context, bearer string) (model.User, error) {
	email, err := a.codec.DecodeWithScope(bearer, model.ScopeAccess)
	if err != nil {
		a.logger.Debug("Auth service: access token rejected",
			"reason", err.Error())
		metrics.RecordAuth("resolve", metrics.OutcomeRejected)
		return model.User{}, model.ErrUnauthorized
	}

	user, err := a.identity(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			metrics.RecordAuth("resolve", metrics.OutcomeRejected)
			return model.User{}, model.ErrUnauthorized
		}
		a.logger.Error("Auth service: failed to resolve identity",
			"email", email,
			"error", err.Error())
		metrics.RecordAuth("resolve", metrics.OutcomeError)
		return model.User{}, err
	}

	metrics.RecordAuth("resolve", metrics.OutcomeSuccess)
	return user, nil
}

// identity reads through the cache. Concurrent misses for one email share a
// single store read.
func (a *Auth) identity(ctx context.Context, email string) (model.User, error) {
	if user, err := a.cache.Lookup(ctx, email); err == nil {
		return user, nil
	}

	// The shared read outlives any single caller: each caller stops waiting
	// on its own context, the read itself is bounded by identityReadTimeout.
	ch := a.lookups.DoChan(email, func() (any, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), identityReadTimeout)
		defer cancel()

		user, err := a.userStore.GetByEmail(readCtx, email)
		if err != nil {
			return model.User{}, err
		}
		a.cache.Fill(readCtx, email, user)
		return user, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return model.User{}, fmt.Errorf("failed to get user by email: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		if errors.Is(res.Err, model.ErrNotFound) {
			return model.User{}, res.Err
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", res.Err)
	}

	return res.Val.(model.User), nil
}

// IssueEmailToken returns an email verification token for email.
func (a *Auth) IssueEmailToken(email string) (string, error) {
	token, err := a.codec.IssueDefault(model.ScopeEmailVerify, email)
	if err != nil {
		return "", fmt.Errorf("failed to issue email token: %w", err)
	}
	return token, nil
}

// ResolveEmailToken returns the email an email verification token was issued
// for. A token of another scope is model.ErrUnauthorized; one that does not
// decode at all is model.ErrUnprocessableToken.
func (a *Auth) ResolveEmailToken(token string) (string, error) {
	email, err := a.codec.DecodeWithScope(token, model.ScopeEmailVerify)
	if err != nil {
		a.logger.Info("Auth service: email token rejected",
			"reason", err.Error())
		if errors.Is(err, model.ErrTokenWrongScope) {
			return "", model.ErrUnauthorized
		}
		return "", model.ErrUnprocessableToken
	}
	return email, nil
}

// ConfirmEmail marks the identity behind an email verification token as
// confirmed. alreadyConfirmed is true when nothing had to change.
func (a *Auth) ConfirmEmail(ctx context.Context, token string) (alreadyConfirmed bool, err error) {
	email, err := a.ResolveEmailToken(token)
	if err != nil {
		metrics.RecordAuth("confirm_email", metrics.OutcomeRejected)
		return false, err
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			metrics.RecordAuth("confirm_email", metrics.OutcomeRejected)
			return false, model.ErrUnprocessableToken
		}
		metrics.RecordAuth("confirm_email", metrics.OutcomeError)
		return false, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user.Confirmed {
		return true, nil
	}

	if err := a.userStore.SetConfirmed(ctx, email); err != nil {
		metrics.RecordAuth("confirm_email", metrics.OutcomeError)
		return false, fmt.Errorf("failed to confirm email: %w", err)
	}
	a.cache.Invalidate(ctx, email)

	a.logger.Info("Auth service: email confirmed",
		"email", email)
	metrics.RecordAuth("confirm_email", metrics.OutcomeSuccess)

	return false, nil
}

// RequestEmail sends a new verification link to an unconfirmed identity.
// Unknown and already confirmed emails are ignored without an error.
func (a *Auth) RequestEmail(ctx context.Context, email string) error {
	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if user.Confirmed {
		return nil
	}

	if err := a.sendConfirmation(ctx, user); err != nil {
		a.logger.Error("Auth service: failed to send confirmation email",
			"email", email,
			"error", err.Error())
		return err
	}

	return nil
}

func (a *Auth) sendConfirmation(ctx context.Context, user model.User) error {
	token, err := a.IssueEmailToken(user.Email)
	if err != nil {
		return err
	}

	if err := a.mailer.SendConfirmation(ctx, user.Email, user.Username, a.confirmURL+token); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	return nil
}
