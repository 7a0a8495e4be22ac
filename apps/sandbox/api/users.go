package sandboxapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/session"
)

type authApi struct {
	srv *server
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := authApi{srv: srv}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)
	ag.POST("/logout", api.logout)

	// authed endpoints
	ag.GET("/current", api.current, jwt)
}

// Handlers

func (api authApi) login(ctx echo.Context) error {
	var data session.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	data.Username = core.CleanString(data.Username)
	data.Role = core.CleanString(data.Role, true /* lower */)
	if data.Username == "" || data.Password == "" {
		return errMissingCreds
	}

	usr, err := api.srv.opts.Store.Authenticate(data.Username, data.Password)
	if err != nil {
		if errors.Cause(err) == ErrBadCredentials {
			return errBadCredentials
		}
		return errors.Wrap(err, "authenticating")
	}
	if data.Role != "" && data.Role != usr.Role {
		return errRoleMismatch
	}

	if err = api.srv.auth.setSessionCookie(ctx, usr); err != nil {
		return errors.Wrap(err, "setting session cookie")
	}
	return ok(ctx, http.StatusOK, "user", usr)
}

func (api authApi) register(ctx echo.Context) error {
	var data session.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}
	if err := data.Validate(api.srv.opts.Validate); err != nil {
		return err
	}
	if err := checkPassword(data); err != nil {
		return err
	}

	usr, err := api.srv.opts.Store.CreateUser(data)
	if err != nil {
		if errors.Cause(err) == ErrUsernameTaken {
			return errUsernameTaken
		}
		return errors.Wrap(err, "creating user")
	}
	return ok(ctx, http.StatusCreated, "user", usr)
}

func (api authApi) logout(ctx echo.Context) error {
	api.srv.auth.clearSessionCookie(ctx)
	return ok(ctx, http.StatusOK, "", nil)
}

func (api authApi) current(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	usr, err := api.srv.opts.Store.UserByID(claims.Subject)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return notFound("User")
		}
		return errors.Wrap(err, "finding user by ID")
	}
	return ok(ctx, http.StatusOK, "user", usr)
}
