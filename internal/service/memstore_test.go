package service

import (
	"context"
	"sync"

	"github.com/dtroode/contacts-server/internal/model"
)

// memUserStore is a UserStore whose rotation is a compare-and-swap under a
// mutex, mirroring the conditional UPDATE of the postgres repository.
type memUserStore struct {
	mu     sync.Mutex
	users  map[string]model.User
	nextID int64
	reads  int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]model.User)}
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	u, ok := s.users[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return model.User{}, model.ErrAlreadyExists
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.Email] = user
	return user, nil
}

func (s *memUserStore) SetRefreshToken(_ context.Context, email string, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return model.ErrNotFound
	}
	if fingerprint == "" {
		u.RefreshToken = nil
	} else {
		u.RefreshToken = &fingerprint
	}
	s.users[email] = u
	return nil
}

func (s *memUserStore) RotateRefreshToken(_ context.Context, email string, expected string, next string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok || u.RefreshToken == nil || *u.RefreshToken != expected {
		return false, nil
	}
	u.RefreshToken = &next
	s.users[email] = u
	return true, nil
}

func (s *memUserStore) SetConfirmed(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return model.ErrNotFound
	}
	u.Confirmed = true
	s.users[email] = u
	return nil
}

func (s *memUserStore) SetAvatar(_ context.Context, email string, url string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	u.Avatar = &url
	s.users[email] = u
	return u, nil
}

func (s *memUserStore) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// noopCache never holds anything.
type noopCache struct{}

func (noopCache) Lookup(context.Context, string) (model.User, error) {
	return model.User{}, model.ErrCacheMiss
}
func (noopCache) Fill(context.Context, string, model.User) {}
func (noopCache) Invalidate(context.Context, string)       {}

// recordingMailer keeps every confirmation link it was asked to send.
type recordingMailer struct {
	mu    sync.Mutex
	links []string
}

func (m *recordingMailer) SendConfirmation(_ context.Context, _, _, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, link)
	return nil
}

func (m *recordingMailer) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.links) == 0 {
		return ""
	}
	return m.links[len(m.links)-1]
}

// gatedUserStore blocks every GetByEmail until release is closed or the
// call's context is done. started is closed on the first call.
type gatedUserStore struct {
	*memUserStore
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newGatedUserStore(inner *memUserStore) *gatedUserStore {
	return &gatedUserStore{
		memUserStore: inner,
		started:      make(chan struct{}),
		release:      make(chan struct{}),
	}
}

func (s *gatedUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
		return s.memUserStore.GetByEmail(ctx, email)
	case <-ctx.Done():
		return model.User{}, ctx.Err()
	}
}
