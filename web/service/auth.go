package service

import (
	"time"

	"blog/database"
	"blog/database/model"
	"blog/logger"
	"blog/util/crypto"
)

// SessionTTL is how long a login stays valid. Fixed at issuance; sessions
// are not refreshed on use.
const SessionTTL = 24 * time.Hour

// AuthService owns the login/logout lifecycle on top of an injected
// SessionStore.
type AuthService struct {
	store       SessionStore
	userService UserService
}

func NewAuthService(store SessionStore) *AuthService {
	return &AuthService{store: store}
}

// Login verifies the credentials and creates a fresh session. A second login
// for the same user leaves earlier sessions alive. Unknown user and wrong
// password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(userId string, password string) (string, error) {
	user, err := s.userService.GetByUserId(userId)
	if database.IsNotFound(err) {
		logger.Warningf("login rejected for %q: unknown user", userId)
		return "", ErrInvalidCredentials
	} else if err != nil {
		return "", err
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		logger.Warningf("login rejected for %q: wrong password", userId)
		return "", ErrInvalidCredentials
	}

	token, err := s.store.Create(snapshotOf(user), SessionTTL)
	if err != nil {
		return "", err
	}

	logger.Infof("%s logged in", user.UserId)
	return token, nil
}

// Logout deletes the session with exactly this token. Resolution is by token
// only, never by scanning payloads.
func (s *AuthService) Logout(token string) error {
	payload, err := s.store.Get(token)
	if err != nil {
		return err
	}
	if payload == nil {
		return ErrNotFound
	}

	if err := s.store.Delete(token); err != nil {
		return err
	}
	logger.Infof("%s logged out", payload.UserId)
	return nil
}

// ResolveUser turns a token into the user snapshot cached at login time. No
// database re-fetch happens here: a role or password change after login is
// invisible until the next login.
func (s *AuthService) ResolveUser(token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	payload, err := s.store.Get(token)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, ErrUnauthenticated
	}

	return &model.User{
		Id:        payload.Id,
		UserId:    payload.UserId,
		Nickname:  payload.Nickname,
		Password:  payload.HashedPassword,
		Role:      payload.Role,
		CreatedAt: payload.CreatedAt,
	}, nil
}

// IsOwnerOrAdmin is the single authorization rule of the backend: a user may
// mutate a resource they own, an admin may mutate anything.
func IsOwnerOrAdmin(user *model.User, ownerId int) bool {
	if user == nil {
		return false
	}
	return user.Id == ownerId || user.Role == model.RoleAdmin
}

func snapshotOf(user *model.User) *SessionPayload {
	return &SessionPayload{
		Id:             user.Id,
		UserId:         user.UserId,
		Nickname:       user.Nickname,
		Role:           user.Role,
		HashedPassword: user.Password,
		CreatedAt:      user.CreatedAt,
	}
}
