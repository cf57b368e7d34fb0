package controller

import (
	"net/http"
	"strconv"

	"blog/logger"
	"blog/web/middleware"
	"blog/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes operational endpoints for admins.
type ServerController struct {
	BaseController

	authService *service.AuthService
}

func NewServerController(g *gin.RouterGroup, authService *service.AuthService) *ServerController {
	a := &ServerController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/server", middleware.RequireLogin(a.authService), a.checkAdmin)

	g.POST("/logs/:count", a.getLogs)
}

// getLogs returns up to :count buffered log lines at or below the requested
// level.
func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid count")
		return
	}
	level := c.DefaultPostForm("level", "INFO")

	logs := logger.GetLogs(count, level)
	jsonObj(c, logs)
}
