package portal

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/session"
)

const RegisteredNotice = "Registration successful! Redirecting to login..."

// base is what every controller shares.
type base struct {
	screen     *Screen
	remote     Remote
	validate   *validator.Validate
	translator ut.Translator
	logger     core.Logger
}

// rejectInvalid shows err (a validation failure) and reports whether there was one.
func (b base) rejectInvalid(err error) bool {
	if err == nil {
		return false
	}
	err = core.AsValidationError(err, b.translator)
	if vErr, ok := err.(*core.ValidationError); ok {
		b.screen.Error(vErr.Message())
	} else {
		b.screen.Error(err.Error())
	}
	return true
}

// Screen exposes the page's screen, e.g. to check whether it was left.
func (b base) Screen() *Screen { return b.screen }

type LoginController struct {
	base
	store  *session.Store
	submit *control
}

// Submit signs in with creds. On success the session is saved and the
// role dashboard opened.
func (c *LoginController) Submit(ctx context.Context, creds session.Credentials) bool {
	if c.rejectInvalid(creds.Validate(c.validate)) {
		return false
	}
	if !c.submit.begin(c.screen) {
		return false
	}

	res := c.remote.Login(ctx, creds)
	if !res.Success {
		c.submit.fail(c.screen)
		c.screen.Error(res.Message)
		return false
	}
	user := res.Data
	if err := c.store.Save(&user); err != nil {
		c.logger.Error("saving session after login", err, user)
		c.submit.fail(c.screen)
		c.screen.Error("Could not save session: " + err.Error())
		return false
	}

	c.submit.done()
	c.screen.Navigate(Navigation{Page: DashboardFor(user.Role)})
	return true
}

type RegisterController struct {
	base
	submit *control
}

func (c *RegisterController) Submit(ctx context.Context, acct session.NewAccount) bool {
	if c.rejectInvalid(acct.Validate(c.validate)) {
		return false
	}
	if !c.submit.begin(c.screen) {
		return false
	}

	res := c.remote.Register(ctx, acct)
	if !res.Success {
		c.submit.fail(c.screen)
		c.screen.Error(res.Message)
		return false
	}

	c.submit.done()
	c.screen.Notice(RegisteredNotice)
	c.screen.Navigate(Navigation{Page: PageLogin})
	return true
}

type LogoutController struct {
	base
	store   *session.Store
	sidebar *Sidebar
}

// Run tells the remote (best effort), then forgets the local identity.
func (c *LogoutController) Run(ctx context.Context) {
	if res := c.remote.Logout(ctx); !res.Success {
		c.logger.Warn("remote logout failed: " + res.Message)
	}
	if err := c.store.Clear(); err != nil {
		c.logger.Error("clearing session on logout", err)
	}
	c.sidebar.Invalidate()
	c.screen.Navigate(Navigation{Page: PageLogin})
}
