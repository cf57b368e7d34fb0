// Package session carries the session token between the HTTP layer and the
// auth service: cookie in, resolved user parked on the gin context.
package session

import (
	"net/http"
	"strings"

	"blog/config"
	"blog/database/model"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the credential the browser echoes back on every request.
	CookieName = "blog_session"

	loginUserKey = "LOGIN_USER"
)

// GetToken extracts the session token from the cookie, falling back to a
// bearer Authorization header for non-browser clients.
func GetToken(c *gin.Context) string {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// SetTokenCookie issues the session cookie: HTTP-only, SameSite=Lax, Secure
// outside debug runs.
func SetTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, maxAge, "/", "", !config.IsDebug(), true)
}

// ClearTokenCookie removes the session cookie from the client.
func ClearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", !config.IsDebug(), true)
}

// SetLoginUser parks the resolved user on the request context for handlers
// downstream of the auth middleware.
func SetLoginUser(c *gin.Context, user *model.User) {
	c.Set(loginUserKey, user)
}

// GetLoginUser returns the user resolved by the auth middleware, or nil.
func GetLoginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get(loginUserKey); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

// IsLogin reports whether the request carries an authenticated user.
func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}
