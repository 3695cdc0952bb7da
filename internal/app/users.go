package app

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/barboard/internal/domain"
	"github.com/example/barboard/internal/store"
)

var ErrBadCredentials = errors.New("invalid credentials")

// UserService owns staff accounts and acts as the authentication
// provider: it verifies a username/password pair and yields the
// account with its role.
type UserService struct {
	mu    sync.RWMutex
	store store.Store
	users []*domain.User
}

func NewUserService(st store.Store) (*UserService, error) {
	users, err := st.LoadUsers()
	if err != nil {
		return nil, err
	}
	log.Info().Str("module", "app.users").Int("users", len(users)).Msg("loaded users")
	return &UserService{store: st, users: users}, nil
}

// Authenticate checks the password against the stored bcrypt hash.
// Unknown username and wrong password are the same error; callers
// must not be able to probe which usernames exist.
func (s *UserService) Authenticate(username, password string) (*domain.User, error) {
	s.mu.RLock()
	var user *domain.User
	for _, u := range s.users {
		if u.Username == username {
			user = u
			break
		}
	}
	s.mu.RUnlock()
	if user == nil {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	cp := *user
	return &cp, nil
}

func (s *UserService) List() []domain.PublicUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PublicUser, len(s.users))
	for i, u := range s.users {
		out[i] = u.Public()
	}
	return out
}

func (s *UserService) Create(username, password string, role domain.Role, name string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.Validationf("username and password are required")
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, domain.Validationf("unknown role %q", role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.Username == username {
			s.mu.Unlock()
			return nil, domain.Validationf("username %q already exists", username)
		}
	}
	nextID := 1
	for _, u := range s.users {
		if u.ID >= nextID {
			nextID = u.ID + 1
		}
	}
	user := &domain.User{
		ID:       nextID,
		Username: username,
		Password: string(hash),
		Role:     role,
		Name:     name,
	}
	snapshot := append(append([]*domain.User(nil), s.users...), user)
	if err := s.store.SaveUsers(snapshot); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.users = snapshot
	s.mu.Unlock()

	log.Info().Str("module", "app.users").Str("username", username).Str("role", string(role)).Msg("user created")
	cp := *user
	return &cp, nil
}

// Delete removes a staff account. Admin accounts cannot be deleted,
// so the venue can never lock itself out.
func (s *UserService) Delete(id int) error {
	s.mu.Lock()
	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	if s.users[idx].Role == domain.RoleAdmin {
		s.mu.Unlock()
		return domain.Validationf("cannot delete admin user")
	}
	snapshot := append([]*domain.User(nil), s.users[:idx]...)
	snapshot = append(snapshot, s.users[idx+1:]...)
	if err := s.store.SaveUsers(snapshot); err != nil {
		s.mu.Unlock()
		return err
	}
	s.users = snapshot
	s.mu.Unlock()

	log.Info().Str("module", "app.users").Int("user_id", id).Msg("user deleted")
	return nil
}
