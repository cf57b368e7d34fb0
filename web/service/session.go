package service

import (
	"sync"
	"time"

	"blog/database"
	"blog/database/model"
	"blog/logger"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// SessionPayload is the snapshot of a user cached inside a session record at
// login time. Resolving a session deserializes this snapshot without going
// back to the users table, so role or password changes only take effect on
// the next login.
type SessionPayload struct {
	Id             int        `json:"id"`
	UserId         string     `json:"userid"`
	Nickname       string     `json:"nickname"`
	Role           model.Role `json:"role"`
	HashedPassword string     `json:"hashedPassword"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// SessionStore maps opaque tokens to session payloads with an absolute
// expiry. Get returns (nil, nil) for a token that is unknown or expired;
// errors are reserved for storage failures.
type SessionStore interface {
	Create(payload *SessionPayload, ttl time.Duration) (string, error)
	Get(token string) (*SessionPayload, error)
	Delete(token string) error
}

// newToken returns a random v4 UUID. 122 bits of randomness make collisions
// negligible; the primary-key constraint on the sessions table backs that up.
func newToken() string {
	return uuid.NewString()
}

// DBSessionStore persists sessions in the sessions table. Every mutation
// runs in its own transaction so a failed write is never visible to a
// concurrent reader.
type DBSessionStore struct{}

func (s *DBSessionStore) Create(payload *SessionPayload, ttl time.Duration) (token string, err error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", newStoreError("marshal session payload", err)
	}

	sess := &model.Session{
		Token:     newToken(),
		UserId:    payload.Id,
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	}

	db := database.GetDB()
	tx := db.Begin()
	defer func() {
		if err == nil {
			tx.Commit()
		} else {
			tx.Rollback()
		}
	}()

	if dbErr := tx.Create(sess).Error; dbErr != nil {
		err = newStoreError("create session", dbErr)
		return "", err
	}
	return sess.Token, nil
}

func (s *DBSessionStore) Get(token string) (*SessionPayload, error) {
	db := database.GetDB()

	sess := &model.Session{}
	err := db.Model(model.Session{}).
		Where("token = ?", token).
		First(sess).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, newStoreError("get session", err)
	}

	if !sess.ExpiresAt.After(time.Now()) {
		// Lazy eviction: the record is dead, purge it on the way out. A
		// failed purge is logged but the session still reads as absent.
		if err := s.Delete(token); err != nil {
			logger.Warning("purge expired session err:", err)
		}
		return nil, nil
	}

	payload := &SessionPayload{}
	if err := json.Unmarshal(sess.Data, payload); err != nil {
		return nil, newStoreError("unmarshal session payload", err)
	}
	return payload, nil
}

func (s *DBSessionStore) Delete(token string) (err error) {
	db := database.GetDB()
	tx := db.Begin()
	defer func() {
		if err == nil {
			tx.Commit()
		} else {
			tx.Rollback()
		}
	}()

	if dbErr := tx.Where("token = ?", token).Delete(&model.Session{}).Error; dbErr != nil {
		err = newStoreError("delete session", dbErr)
	}
	return err
}

// MemorySessionStore keeps sessions in process memory behind the same
// contract as DBSessionStore. Used by tests and by runs without a database.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

type memorySession struct {
	data      []byte
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
	}
}

func (s *MemorySessionStore) Create(payload *SessionPayload, ttl time.Duration) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", newStoreError("marshal session payload", err)
	}

	token := newToken()
	s.mu.Lock()
	s.sessions[token] = memorySession{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()
	return token, nil
}

func (s *MemorySessionStore) Get(token string) (*SessionPayload, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if !sess.expiresAt.After(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, nil
	}

	payload := &SessionPayload{}
	if err := json.Unmarshal(sess.data, payload); err != nil {
		return nil, newStoreError("unmarshal session payload", err)
	}
	return payload, nil
}

func (s *MemorySessionStore) Delete(token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
