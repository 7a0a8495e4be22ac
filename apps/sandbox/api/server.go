// Package sandboxapi is an in-memory stand-in for the grading service, used
// for local development and end-to-end tests of the client.
package sandboxapi

import (
	"context"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/gradedesk/core"
)

type (
	Options struct {
		Address        string
		AppName        string
		SecretKey      string
		SessionTTL     time.Duration
		UploadLimit    string // e.g. "16M"
		Debug          bool
		TestMode       bool
		DisableReqLogs bool

		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Store      *Store
		Grader     Grader
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		auth authConfig
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Store == nil {
		opts.Store = NewStore()
	}
	if opts.Grader == nil {
		opts.Grader = NewFixedGrader(.85)
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.UploadLimit == "" {
		opts.UploadLimit = "16M"
	}

	s := &server{
		opts: opts,
		app:  echo.New(),
		auth: newAuthConfig(opts),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Debug = s.opts.Debug
	s.app.Logger.SetLevel(log.INFO)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.BodyLimit(s.opts.UploadLimit))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator)

	s.app.GET("/", home)

	g := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(s.auth.jwt)

	registerAuthAPI(g, jwt, s)
	registerCourseworkAPI(g, jwt, s)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "GradeDesk sandbox API")
}

// ok writes a success envelope carrying payload under key.
func ok(ctx echo.Context, code int, key string, payload interface{}) error {
	body := echo.Map{"success": true}
	if key != "" {
		body[key] = payload
	}
	return ctx.JSON(code, body)
}
