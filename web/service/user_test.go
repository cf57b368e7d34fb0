package service

import (
	"testing"

	"blog/database"
	"blog/database/model"
	"blog/util/crypto"

	"github.com/stretchr/testify/assert"
)

func TestGetByUserIdStorageFailure(t *testing.T) {
	setup(t)
	userService := UserService{}
	mustCreateUser(t, "alice", "Alice", "Secret123", model.RoleMember)

	closeDB(t)

	_, err := userService.GetByUserId("alice")
	assert.Error(t, err)
	assert.True(t, IsStoreError(err))
	assert.False(t, database.IsNotFound(err))
}

func TestCreateUserHashesPassword(t *testing.T) {
	setup(t)
	userService := UserService{}

	user, err := userService.CreateUser("alice", "Alice", "Secret123", "")
	assert.NoError(t, err)
	assert.NotEqual(t, "Secret123", user.Password)
	assert.True(t, crypto.CheckPasswordHash(user.Password, "Secret123"))
	assert.Equal(t, model.RoleMember, user.Role)
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	setup(t)
	userService := UserService{}

	_, err := userService.CreateUser("alice", "Alice", "Secret123", model.RoleMember)
	assert.NoError(t, err)

	_, err = userService.CreateUser("alice", "Other", "Secret123", model.RoleMember)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = userService.CreateUser("other", "Alice", "Secret123", model.RoleMember)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestCreateUserValidatesInput(t *testing.T) {
	setup(t)
	userService := UserService{}

	_, err := userService.CreateUser("", "Alice", "Secret123", "")
	assert.Error(t, err)
	_, err = userService.CreateUser("alice", "", "Secret123", "")
	assert.Error(t, err)
	_, err = userService.CreateUser("alice", "Alice", "", "")
	assert.Error(t, err)
	_, err = userService.CreateUser("alice", "Alice", "Secret123", "ROOT")
	assert.Error(t, err)
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	setup(t)
	userService := UserService{}

	user := mustCreateUser(t, "alice", "Alice", "Secret123", model.RoleMember)

	_, err := userService.UpdateUser(user.Id, "", "", "ROOT")
	assert.Error(t, err)

	got, err := userService.GetById(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleMember, got.Role)
}

func TestUpdateUserPatchesFields(t *testing.T) {
	setup(t)
	userService := UserService{}

	user, err := userService.CreateUser("alice", "Alice", "Secret123", model.RoleMember)
	assert.NoError(t, err)

	updated, err := userService.UpdateUser(user.Id, "Alicia", "NewSecret1", "")
	assert.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Nickname)
	assert.True(t, crypto.CheckPasswordHash(updated.Password, "NewSecret1"))
	assert.Equal(t, model.RoleMember, updated.Role)

	// Empty fields are left alone.
	again, err := userService.UpdateUser(user.Id, "", "", model.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, "Alicia", again.Nickname)
	assert.Equal(t, model.RoleAdmin, again.Role)
	assert.True(t, crypto.CheckPasswordHash(again.Password, "NewSecret1"))
}

func TestUpdateMissingUser(t *testing.T) {
	setup(t)
	userService := UserService{}

	_, err := userService.UpdateUser(999, "Nobody", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	setup(t)
	userService := UserService{}
	postService := PostService{}
	commentService := CommentService{}
	auth := NewAuthService(&DBSessionStore{})

	user, err := userService.CreateUser("alice", "Alice", "Secret123", model.RoleMember)
	assert.NoError(t, err)

	post, err := postService.CreatePost(user.Id, "hello", "first post")
	assert.NoError(t, err)
	_, err = commentService.CreateComment(user.Id, post.Id, "self reply")
	assert.NoError(t, err)
	token, err := auth.Login("alice", "Secret123")
	assert.NoError(t, err)

	assert.NoError(t, userService.DeleteUser(user.Id))

	_, err = postService.GetById(post.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	comments, err := userService.GetCommentsByUser(user.Id)
	assert.NoError(t, err)
	assert.Empty(t, comments)
	_, err = auth.ResolveUser(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.ErrorIs(t, userService.DeleteUser(user.Id), ErrNotFound)
}
