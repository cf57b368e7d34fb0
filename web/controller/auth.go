package controller

import (
	"errors"
	"net/http"

	"blog/logger"
	"blog/web/middleware"
	"blog/web/service"
	"blog/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm is the login request body.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthController handles login, logout and current-user resolution.
type AuthController struct {
	BaseController

	authService *service.AuthService
}

func NewAuthController(g *gin.RouterGroup, authService *service.AuthService) *AuthController {
	a := &AuthController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
	g.GET("/me", middleware.RequireLogin(a.authService), a.me)
}

// login verifies credentials, creates a session and hands the token back
// both in the body and as the session cookie.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "username is empty")
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "password is empty")
		return
	}

	token, err := a.authService.Login(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		}
		jsonErr(c, err)
		return
	}

	session.SetTokenCookie(c, token, int(service.SessionTTL.Seconds()))
	jsonMsgObj(c, "login successful", gin.H{"token": token})
}

// logout invalidates the presented session. Logging out twice with the same
// token yields 404; the cookie is cleared either way.
func (a *AuthController) logout(c *gin.Context) {
	token := session.GetToken(c)

	err := a.authService.Logout(token)
	session.ClearTokenCookie(c)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "logout successful")
}

// me returns the snapshot of the authenticated user cached at login time.
func (a *AuthController) me(c *gin.Context) {
	jsonObj(c, session.GetLoginUser(c))
}
