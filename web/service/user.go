package service

import (
	"blog/database"
	"blog/database/model"
	"blog/logger"
	"blog/util/common"
	"blog/util/crypto"
)

type UserService struct {
	RecordService[model.User]
}

// GetByUserId looks a user up by external identifier. Not-found comes back
// as the raw gorm error so callers can branch on it; any other failure is a
// StoreError.
func (s *UserService) GetByUserId(userId string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("user_id = ?", userId).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, err
	} else if err != nil {
		return nil, newStoreError("find user", err)
	}
	return user, nil
}

// CreateUser registers a new member. The password is stored as a bcrypt
// hash; userid and nickname must both be unused.
func (s *UserService) CreateUser(userId string, nickname string, password string, role model.Role) (*model.User, error) {
	if userId == "" || nickname == "" || password == "" {
		return nil, common.NewError("userid, nickname and password are required")
	}
	if err := checkRole(role); err != nil {
		return nil, err
	}

	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).
		Where("user_id = ? OR nickname = ?", userId, nickname).
		Count(&count).
		Error
	if err != nil {
		return nil, newStoreError("check existing user", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = model.RoleMember
	}
	user := &model.User{
		UserId:   userId,
		Nickname: nickname,
		Password: hashedPassword,
		Role:     role,
	}
	if err := s.Create(user); err != nil {
		return nil, err
	}

	logger.Infof("registered user %s", user.UserId)
	return user, nil
}

// UpdateUser patches nickname, password and role. Empty fields are left
// unchanged; a new password is re-hashed before it is written.
func (s *UserService) UpdateUser(id int, nickname string, password string, role model.Role) (*model.User, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}

	user, err := s.GetById(id)
	if err != nil {
		return nil, err
	}

	if nickname != "" {
		user.Nickname = nickname
	}
	if password != "" {
		hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}
	if role != "" {
		user.Role = role
	}

	if err := s.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// checkRole rejects role values outside the two known ones. Empty means
// "leave alone" for updates and "default" for creates.
func checkRole(role model.Role) error {
	if role != "" && role != model.RoleMember && role != model.RoleAdmin {
		return common.NewErrorf("unknown role %q", role)
	}
	return nil
}

// DeleteUser removes the user; owned posts, comments and sessions go with it
// through the cascade constraints.
func (s *UserService) DeleteUser(id int) error {
	return s.DeleteById(id)
}

func (s *UserService) GetPostsByUser(id int) ([]model.Post, error) {
	db := database.GetDB()

	var posts []model.Post
	err := db.Model(model.Post{}).
		Where("author_id = ?", id).
		Find(&posts).
		Error
	if err != nil {
		return nil, newStoreError("list posts by user", err)
	}
	return posts, nil
}

func (s *UserService) GetCommentsByUser(id int) ([]model.Comment, error) {
	db := database.GetDB()

	var comments []model.Comment
	err := db.Model(model.Comment{}).
		Where("author_id = ?", id).
		Find(&comments).
		Error
	if err != nil {
		return nil, newStoreError("list comments by user", err)
	}
	return comments, nil
}
