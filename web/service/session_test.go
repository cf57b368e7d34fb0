package service

import (
	"testing"
	"time"

	"blog/database"
	"blog/database/model"

	"github.com/stretchr/testify/assert"
)

func testPayload() *SessionPayload {
	return &SessionPayload{
		Id:             1,
		UserId:         "alice",
		Nickname:       "Alice",
		Role:           model.RoleMember,
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func TestDBSessionStoreRoundTrip(t *testing.T) {
	setup(t)
	store := &DBSessionStore{}

	payload := testPayload()
	token, err := store.Create(payload, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := store.Get(token)
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, payload, got)
	}
}

func TestDBSessionStoreTokensAreUnique(t *testing.T) {
	setup(t)
	store := &DBSessionStore{}

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		token, err := store.Create(testPayload(), time.Hour)
		assert.NoError(t, err)
		assert.False(t, seen[token], "token issued twice: %s", token)
		seen[token] = true
	}
}

func TestDBSessionStoreExpiry(t *testing.T) {
	setup(t)
	store := &DBSessionStore{}

	token, err := store.Create(testPayload(), 0)
	assert.NoError(t, err)

	got, err := store.Get(token)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// Lazy eviction purged the row, so the expired record cannot resurrect.
	assert.EqualValues(t, 0, sessionCount(t))

	got, err = store.Get(token)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDBSessionStoreExpiredInPast(t *testing.T) {
	setup(t)
	store := &DBSessionStore{}

	token, err := store.Create(testPayload(), -time.Minute)
	assert.NoError(t, err)

	got, err := store.Get(token)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDBSessionStoreDeleteIsIdempotent(t *testing.T) {
	setup(t)
	store := &DBSessionStore{}

	token, err := store.Create(testPayload(), time.Hour)
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(token))
	assert.NoError(t, store.Delete(token))

	got, err := store.Get(token)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDBSessionStoreUnknownToken(t *testing.T) {
	setup(t)
	store := &DBSessionStore{}

	got, err := store.Get("no-such-token")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDBSessionStoreFailedCreateLeavesNoRecord(t *testing.T) {
	setup(t)
	store := &DBSessionStore{}

	// No user row exists for this id, so the foreign key rejects the write.
	payload := testPayload()
	payload.Id = 9999

	token, err := store.Create(payload, time.Hour)
	assert.Empty(t, token)
	assert.True(t, IsStoreError(err))

	// The rejected write rolled back; no partial row stays behind.
	assert.EqualValues(t, 0, sessionCount(t))
}

func TestDBSessionStoreClosedDBIsStoreError(t *testing.T) {
	setup(t)
	store := &DBSessionStore{}

	token, err := store.Create(testPayload(), time.Hour)
	assert.NoError(t, err)

	closeDB(t)

	_, err = store.Create(testPayload(), time.Hour)
	assert.True(t, IsStoreError(err))

	_, err = store.Get(token)
	assert.True(t, IsStoreError(err))

	assert.True(t, IsStoreError(store.Delete(token)))
}

func TestDBSessionStoreCascadeOnUserDelete(t *testing.T) {
	setup(t)
	store := &DBSessionStore{}

	user := mustCreateUser(t, "bob", "Bob", "Secret123", model.RoleMember)
	payload := testPayload()
	payload.Id = user.Id
	_, err := store.Create(payload, time.Hour)
	assert.NoError(t, err)

	assert.NoError(t, database.GetDB().Delete(user).Error)
	assert.EqualValues(t, 0, sessionCount(t))
}

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()

	payload := testPayload()
	token, err := store.Create(payload, time.Hour)
	assert.NoError(t, err)

	got, err := store.Get(token)
	assert.NoError(t, err)
	assert.Equal(t, payload, got)

	assert.NoError(t, store.Delete(token))
	got, err = store.Get(token)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, store.Delete(token))
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()

	token, err := store.Create(testPayload(), 0)
	assert.NoError(t, err)

	got, err := store.Get(token)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionStoreConcurrentCreate(t *testing.T) {
	store := NewMemorySessionStore()

	const n = 16
	tokens := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			token, err := store.Create(testPayload(), time.Hour)
			assert.NoError(t, err)
			tokens <- token
		}()
	}

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		token := <-tokens
		assert.False(t, seen[token])
		seen[token] = true
	}
}
