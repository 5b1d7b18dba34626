package service

import (
	"context"
	"fmt"
	"io"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// Users serves profile operations of the authenticated user.
type Users struct {
	userStore model.UserStore
	cache     model.IdentityCache
	storage   model.Storage
	logger    *logger.Logger
}

func NewUsers(userStore model.UserStore, cache model.IdentityCache, storage model.Storage, logger *logger.Logger) *Users {
	return &Users{
		userStore: userStore,
		cache:     cache,
		storage:   storage,
		logger:    logger,
	}
}

// Me returns the profile of the resolved identity.
func (s *Users) Me(_ context.Context, user model.User) (model.User, error) {
	return user, nil
}

func avatarKey(userID int64) string {
	return fmt.Sprintf("avatars/%d", userID)
}

// UpdateAvatar stores a new avatar image and records its public URL.
func (s *Users) UpdateAvatar(ctx context.Context, user model.User, reader io.Reader, size int64, contentType string) (model.User, error) {
	s.logger.Debug("Users service: updating avatar",
		"email", user.Email,
		"size", size)

	key := avatarKey(user.ID)
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		s.logger.Error("Users service: failed to upload avatar",
			"email", user.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	updated, err := s.userStore.SetAvatar(ctx, user.Email, s.storage.URL(key))
	if err != nil {
		s.logger.Error("Users service: failed to save avatar url",
			"email", user.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to set avatar: %w", err)
	}
	s.cache.Invalidate(ctx, user.Email)

	s.logger.Info("Users service: avatar updated",
		"email", user.Email)

	return updated, nil
}

// Avatar opens the stored avatar of user. The caller closes the reader.
func (s *Users) Avatar(ctx context.Context, user model.User) (io.ReadCloser, error) {
	if user.Avatar == nil {
		return nil, model.ErrNotFound
	}

	exists, err := s.storage.Exists(ctx, avatarKey(user.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to check avatar: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	rc, err := s.storage.Download(ctx, avatarKey(user.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}
	return rc, nil
}
