package controller

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"blog/logger"
	"blog/web/entity"
	"blog/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real client IP from proxy headers or the remote
// address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonMsg sends a success envelope with a message only.
func jsonMsg(c *gin.Context, msg string) {
	jsonMsgObj(c, msg, nil)
}

// jsonObj sends a success envelope with a data object only.
func jsonObj(c *gin.Context, obj any) {
	jsonMsgObj(c, "", obj)
}

func jsonMsgObj(c *gin.Context, msg string, obj any) {
	c.JSON(http.StatusOK, entity.Msg{
		Success: true,
		Msg:     msg,
		Obj:     obj,
	})
}

// pureJsonMsg sends an envelope with an explicit status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// jsonErr maps the service error taxonomy onto status codes. Store failures
// are logged here and reported without internal detail.
func jsonErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated):
		pureJsonMsg(c, http.StatusUnauthorized, false, err.Error())
	case errors.Is(err, service.ErrForbidden):
		pureJsonMsg(c, http.StatusForbidden, false, err.Error())
	case errors.Is(err, service.ErrNotFound):
		pureJsonMsg(c, http.StatusNotFound, false, err.Error())
	case errors.Is(err, service.ErrUserExists):
		pureJsonMsg(c, http.StatusConflict, false, err.Error())
	case service.IsStoreError(err):
		logger.Error("store err:", err)
		pureJsonMsg(c, http.StatusInternalServerError, false, "internal error")
	default:
		pureJsonMsg(c, http.StatusBadRequest, false, err.Error())
	}
}
