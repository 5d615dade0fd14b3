package services

import (
	"context"
	"strings"
	"sync"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage"
)

// IdentityService owns the registered-user list and the persisted
// current-user pointer. Credentials are compared in plaintext; hardening is
// explicitly out of scope.
type IdentityService struct {
	mu     sync.Mutex
	kv     storage.KV
	saver  Saver
	logger *log.Logger
	users  []core.User
}

func NewIdentityService(ctx context.Context, kv storage.KV, saver Saver, logger *log.Logger) *IdentityService {
	s := &IdentityService{
		kv:     kv,
		saver:  saver,
		logger: logger.WithComponent(log.ComponentIdentity),
	}

	raw, ok, err := kv.Get(ctx, storage.UsersKey)
	if err != nil {
		s.logger.WarnContext(ctx, "Loading user list failed, starting empty", log.FieldError, err)
		return s
	}
	if !ok {
		return s
	}
	users, err := storage.Decode[[]core.User](raw)
	if err != nil {
		s.logger.WarnContext(ctx, "User list payload invalid, starting empty", log.FieldError, err)
		return s
	}
	s.users = users
	return s
}

// Register adds a new account and returns it. The email is the unique key.
func (s *IdentityService) Register(ctx context.Context, email, password string) (core.User, error) {
	u := core.User{Email: strings.TrimSpace(email), Password: password}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return core.User{}, core.ErrDuplicateUser
		}
	}
	s.users = append(s.users, u)
	s.persistLocked(ctx)

	s.logger.InfoContext(ctx, "User registered", log.FieldUserEmail, u.Email)
	return u, nil
}

// Authenticate checks credentials against the stored list. Anything but an
// exact email+password match is ErrInvalidCredentials.
func (s *IdentityService) Authenticate(_ context.Context, email, password string) (core.User, error) {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return core.User{}, core.ErrInvalidCredentials
}

// Exists reports whether an account with the given email is registered.
func (s *IdentityService) Exists(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

// PersistedCurrentUser reads the current-user pointer written by a previous
// run. Missing or unreadable pointers just mean nobody is logged in.
func (s *IdentityService) PersistedCurrentUser(ctx context.Context) (string, bool) {
	raw, ok, err := s.kv.Get(ctx, storage.CurrentUserKey)
	if err != nil {
		s.logger.WarnContext(ctx, "Reading current-user pointer failed", log.FieldError, err)
		return "", false
	}
	if !ok || len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

// SetCurrent persists the current-user pointer. The pointer is a bare email,
// not an envelope: it predates the versioned payloads and stays compatible.
func (s *IdentityService) SetCurrent(_ context.Context, email string) {
	s.saver.Save(storage.CurrentUserKey, []byte(email))
}

// ClearCurrent removes the persisted pointer. User data is untouched.
func (s *IdentityService) ClearCurrent(_ context.Context) {
	s.saver.Remove(storage.CurrentUserKey)
}

func (s *IdentityService) persistLocked(ctx context.Context) {
	raw, err := storage.Encode(s.users)
	if err != nil {
		s.logger.ErrorContext(ctx, "Encoding user list failed", log.FieldError, err)
		return
	}
	s.saver.Save(storage.UsersKey, raw)
}
