// Package middleware provides gin middleware for the blog web server.
package middleware

import (
	"net/http"

	"blog/logger"
	"blog/web/entity"
	"blog/web/service"
	"blog/web/session"

	"github.com/gin-gonic/gin"
)

// RequireLogin resolves the session token into a user and aborts with 401
// when there is no live session. Store failures surface as 500, never as a
// silent logout.
func RequireLogin(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// An outer group may have resolved the session already.
		if session.IsLogin(c) {
			c.Next()
			return
		}

		token := session.GetToken(c)

		user, err := auth.ResolveUser(token)
		if err != nil {
			if service.IsStoreError(err) {
				logger.Error("resolve session err:", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, entity.Msg{
					Success: false,
					Msg:     "internal error",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
				Success: false,
				Msg:     service.ErrUnauthenticated.Error(),
			})
			return
		}

		session.SetLoginUser(c, user)
		c.Next()
	}
}
