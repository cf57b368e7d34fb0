// Package model defines the gorm models persisted by the blog backend.
package model

import (
	"time"

	"blog/util/json_util"
)

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

type User struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId    string    `json:"userid" form:"userid" gorm:"uniqueIndex;not null"`
	Nickname  string    `json:"nickname" form:"nickname" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" form:"role" gorm:"not null;default:MEMBER"`
	CreatedAt time.Time `json:"createdAt"`

	Posts    []Post    `json:"-" gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`
	Sessions []Session `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

type Post struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorId  int       `json:"authorId" gorm:"index;not null"`
	Title     string    `json:"title" form:"title"`
	Content   string    `json:"content" form:"content"`
	CreatedAt time.Time `json:"createdAt"`

	Comments []Comment `json:"-" gorm:"foreignKey:PostId;constraint:OnDelete:CASCADE"`
}

type Comment struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorId  int       `json:"authorId" gorm:"index;not null"`
	PostId    int       `json:"postId" form:"postId" gorm:"index;not null"`
	Content   string    `json:"content" form:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session holds one live login: an opaque token, the serialized snapshot of
// the user taken at login time and an absolute expiry. A user may hold any
// number of live sessions at once.
type Session struct {
	Token     string               `json:"token" gorm:"primaryKey;size:36"`
	UserId    int                  `json:"userId" gorm:"index;not null"`
	Data      json_util.RawMessage `json:"-" gorm:"type:text"`
	ExpiresAt time.Time            `json:"expiresAt" gorm:"index"`
}
