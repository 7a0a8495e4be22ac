package sandboxapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/gradedesk/core/session"
)

// SessionCookie carries the signed session token.
const SessionCookie = "session"

const contextTokenKey = "sessionToken"

type authConfig struct {
	jwt     middleware.JWTConfig
	issuer  string
	ttl     time.Duration
	secured bool
}

func newAuthConfig(opts *Options) authConfig {
	return authConfig{
		jwt: middleware.JWTConfig{
			SigningKey:    []byte(opts.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
			TokenLookup:   "cookie:" + SessionCookie,
		},
		issuer:  opts.AppName,
		ttl:     opts.SessionTTL,
		secured: !(opts.Debug || opts.TestMode),
	}
}

// Claims represents the session claims transmitted via the cookie.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (a authConfig) claims(usr session.Session) *Claims {
	now := nowFunc()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.issuer,
			Subject:   usr.ID,
			ExpiresAt: now.Add(a.ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: usr.Username,
		Role:     usr.Role,
	}
}

// generateToken generates a signed JWT token string representing the Claims.
func (a authConfig) generateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.jwt.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.jwt.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (a authConfig) setSessionCookie(ctx echo.Context, usr session.Session) error {
	claims := a.claims(usr)
	token, err := a.generateToken(claims)
	if err != nil {
		return err
	}
	ctx.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(claims.ExpiresAt, 0),
		HttpOnly: true,
		Secure:   a.secured,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (a authConfig) clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errNotAuthenticated
}

func roleMiddleware(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if claims.Role != role {
				return errForbidden
			}
			return next(ctx)
		}
	}
}
