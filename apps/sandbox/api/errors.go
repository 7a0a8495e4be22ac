package sandboxapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/session"
)

var (
	errNotAuthenticated  = echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	errBadCredentials    = echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	errRoleMismatch      = echo.NewHTTPError(http.StatusUnauthorized, "Role mismatch")
	errMissingCreds      = echo.NewHTTPError(http.StatusBadRequest, "Missing credentials")
	errUsernameTaken     = echo.NewHTTPError(http.StatusBadRequest, "Username already exists")
	errForbidden         = echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	errAccessDenied      = echo.NewHTTPError(http.StatusForbidden, "Access denied")
	errMissingPDFs       = echo.NewHTTPError(http.StatusBadRequest, "Missing PDF files")
	errMissingSubmission = echo.NewHTTPError(http.StatusBadRequest, "Missing submission PDF")
	errMissingAssignment = echo.NewHTTPError(http.StatusBadRequest, "Missing assignment ID")
	errOnlyPDF           = echo.NewHTTPError(http.StatusBadRequest, "Only PDF files allowed")
	errAlreadySubmitted  = echo.NewHTTPError(http.StatusConflict, "Assignment already submitted")
)

func notFound(what string) error {
	return echo.NewHTTPError(http.StatusNotFound, what+" not found")
}

// newAppHTTPErrorHandler returns an echo.HTTPErrorHandler that answers every
// error with a `{success: false, error}` envelope.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(core.AsValidationError(err, translator)).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing || (origErr.Code == http.StatusUnauthorized && origErr.Internal != nil) {
				origErr = errNotAuthenticated
			}
			code = origErr.Code
			message = fmt.Sprint(origErr.Message)
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Message()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(http.StatusInternalServerError)

			var usr session.Session
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.Username = claims.Username
			}
			if logger != nil {
				logger.Error(message, errors.Wrap(err, message), usr)
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, echo.Map{"success": false, "error": message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
