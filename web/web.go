// Package web provides the HTTP server of the blog backend: routing,
// middleware, controllers and scheduled maintenance jobs.
package web

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"strconv"

	"blog/config"
	"blog/logger"
	"blog/util/common"
	"blog/web/controller"
	"blog/web/job"
	"blog/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server is the blog web server: a gin engine wired to the controllers plus
// a cron scheduler for database maintenance.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	authService *service.AuthService

	auth    *controller.AuthController
	user    *controller.UserController
	post    *controller.PostController
	comment *controller.CommentController
	server  *controller.ServerController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server backed by the database session store.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		authService: service.NewAuthService(&service.DBSessionStore{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	basePath := config.GetBasePath()
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	api := engine.Group(basePath + "api")
	s.auth = controller.NewAuthController(api, s.authService)
	s.user = controller.NewUserController(api, s.authService)
	s.post = controller.NewPostController(api, s.authService)
	s.comment = controller.NewCommentController(api, s.authService)
	s.server = controller.NewServerController(api, s.authService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the maintenance jobs. There is deliberately no session
// sweep here: expired sessions are evicted lazily on read.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewCheckpointJob())
	s.cron.AddJob("@daily", job.NewClearLogsJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	certFile := config.GetCertFile()
	keyFile := config.GetKeyFile()
	if certFile != "" || keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = tls.NewListener(listener, cfg)
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		defer common.Recover("serve http")
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and the cron scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}
