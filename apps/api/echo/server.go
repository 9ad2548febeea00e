package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/dashboard"
	"github.com/trezcool/investigacion/core/project"
	"github.com/trezcool/investigacion/core/student"
	"github.com/trezcool/investigacion/core/teacher"
	"github.com/trezcool/investigacion/services/metrics"
)

type (
	ServerDeps struct {
		Conf         *core.Config
		Logger       core.Logger
		Metrics      *metrics.Metrics
		StudentSvc   *student.Service
		TeacherSvc   *teacher.Service
		ProjectSvc   *project.Service
		DashboardSvc *dashboard.Service
		Validate     *validator.Validate
		Translator   ut.Translator
	}

	Server struct {
		ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		ServerDeps: deps,
		app:        echo.New(),
		errors:     make(chan error, 1),
		shutdown:   make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Server.ReadTimeout = s.Conf.Server.ReadTimeout
	s.app.Server.WriteTimeout = s.Conf.Server.WriteTimeout

	s.app.Pre(middleware.RemoveTrailingSlash())
	if s.Metrics != nil {
		s.app.Use(s.Metrics.Middleware())
	}
	if !s.Conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.Conf.Debug || s.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.Logger, s.Translator, s.SignalShutdown)
	s.app.Debug = s.Conf.Debug

	s.app.GET("/", s.home)
	if s.Metrics != nil {
		s.app.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	}

	v1 := s.app.Group("/v1")
	registerStudentAPI(v1, s.StudentSvc, s.Validate)
	registerTeacherAPI(v1, s.TeacherSvc, s.Validate)
	registerProjectAPI(v1, s.ProjectSvc, s.Validate)
	registerDashboardAPI(v1, s.DashboardSvc)
}

// Start listens for requests until the server is shut down. Failures are sent on Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the owner of the server to shut it down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, fmt.Sprintf("Welcome to %s API!", s.Conf.AppName))
}

// pathParam returns the named path parameter, unescaped when the router matched on the raw path.
func pathParam(ctx echo.Context, name string) string {
	val := ctx.Param(name)
	if ctx.Request().URL.RawPath == "" {
		return val
	}
	if unescaped, err := url.PathUnescape(val); err == nil {
		return unescaped
	}
	return val
}
