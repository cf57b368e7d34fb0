// Package controller provides the HTTP handlers of the blog backend: auth,
// users, posts, comments and the admin log endpoint.
package controller

import (
	"net/http"

	"blog/database/model"
	"blog/web/service"
	"blog/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides shared authorization helpers for all controllers.
type BaseController struct{}

// checkAdmin aborts with 403 unless the resolved user is an admin. Must run
// behind the login middleware.
func (a *BaseController) checkAdmin(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user == nil || user.Role != model.RoleAdmin {
		pureJsonMsg(c, http.StatusForbidden, false, service.ErrForbidden.Error())
		c.Abort()
		return
	}
	c.Next()
}

// guardOwner aborts with 403 when the current user is neither the owner of
// the resource nor an admin. Returns false when aborted.
func (a *BaseController) guardOwner(c *gin.Context, ownerId int) bool {
	user := session.GetLoginUser(c)
	if !service.IsOwnerOrAdmin(user, ownerId) {
		pureJsonMsg(c, http.StatusForbidden, false, service.ErrForbidden.Error())
		c.Abort()
		return false
	}
	return true
}
