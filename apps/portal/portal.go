// Package portal holds the pages of the grading client: the auth gate that
// guards them and one controller per page.
package portal

import (
	"context"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/session"
)

func errMissing(what string) error {
	return fmt.Errorf("portal: %s is missing a collaborator", what)
}

// Options wires a Portal.
type Options struct {
	Store      *session.Store
	Remote     Remote
	Sidebar    *Sidebar
	Validate   *validator.Validate
	Translator ut.Translator
	Logger     core.Logger
}

// Portal builds the page controllers. Every Open* method is the entry point of
// one page: it runs the gate (where the page needs one) and constructs only the
// controller that page uses.
type Portal struct {
	opts Options
}

func New(opts Options) (*Portal, error) {
	if opts.Store == nil || opts.Remote == nil || opts.Sidebar == nil ||
		opts.Validate == nil || opts.Translator == nil || opts.Logger == nil {
		return nil, errMissing("portal")
	}
	return &Portal{opts: opts}, nil
}

func (p *Portal) Sidebar() *Sidebar { return p.opts.Sidebar }

func (p *Portal) base(scr *Screen) base {
	return base{
		screen:     scr,
		remote:     p.opts.Remote,
		validate:   p.opts.Validate,
		translator: p.opts.Translator,
		logger:     p.opts.Logger,
	}
}

// guard runs the gate of a protected page.
func (p *Portal) guard(ctx context.Context, v View, role string) (*Screen, session.Session, bool) {
	scr := NewScreen(v)
	gate, err := NewGate(p.opts.Store, p.opts.Remote, scr, p.opts.Logger)
	if err != nil {
		p.opts.Logger.Error("building gate", err)
		return scr, session.Session{}, false
	}
	sess, ok := gate.Require(ctx, role)
	return scr, sess, ok
}

// Public pages

func (p *Portal) OpenLogin(v View) *LoginController {
	return &LoginController{base: p.base(NewScreen(v)), store: p.opts.Store, submit: newControl("login")}
}

func (p *Portal) OpenRegister(v View) *RegisterController {
	return &RegisterController{base: p.base(NewScreen(v)), submit: newControl("register")}
}

// Logout signs the user out. It always succeeds locally.
func (p *Portal) Logout(ctx context.Context, v View) {
	ctrl := &LogoutController{base: p.base(NewScreen(v)), store: p.opts.Store, sidebar: p.opts.Sidebar}
	ctrl.Run(ctx)
}

// WhoAmI is the identity page: any authenticated role.
func (p *Portal) WhoAmI(ctx context.Context, v View) (session.Session, bool) {
	scr, sess, ok := p.guard(ctx, v, "")
	if !ok {
		return sess, false
	}
	if sum := p.opts.Sidebar.Cached(sess); sum != nil {
		scr.Render(*sum)
	} else if sum, ok := p.opts.Sidebar.Refresh(ctx, sess); ok {
		scr.Render(sum)
	}
	return sess, true
}

// Dashboard opens the dashboard matching the signed-in role.
func (p *Portal) Dashboard(ctx context.Context, v View) bool {
	scr, sess, ok := p.guard(ctx, v, "")
	if !ok {
		return false
	}
	if sess.IsFaculty() {
		_, ok = (&FacultyDashboardController{base: p.base(scr), user: sess}).Load(ctx)
	} else {
		_, ok = (&StudentDashboardController{base: p.base(scr), user: sess}).Load(ctx)
	}
	return ok
}

// Faculty pages

func (p *Portal) OpenFacultyDashboard(ctx context.Context, v View) (FacultyDashboard, bool) {
	scr, sess, ok := p.guard(ctx, v, session.RoleFaculty)
	if !ok {
		return FacultyDashboard{}, false
	}
	return (&FacultyDashboardController{base: p.base(scr), user: sess}).Load(ctx)
}

func (p *Portal) OpenAssignmentSubmissions(ctx context.Context, v View, assignmentID string) (AssignmentSubmissions, bool) {
	scr, _, ok := p.guard(ctx, v, session.RoleFaculty)
	if !ok {
		return AssignmentSubmissions{}, false
	}
	return (&AssignmentSubmissionsController{base: p.base(scr)}).Load(ctx, assignmentID)
}

func (p *Portal) OpenCreateAssignment(ctx context.Context, v View) (*CreateAssignmentController, bool) {
	scr, sess, ok := p.guard(ctx, v, session.RoleFaculty)
	if !ok {
		return nil, false
	}
	return &CreateAssignmentController{
		base:    p.base(scr),
		user:    sess,
		sidebar: p.opts.Sidebar,
		submit:  newControl("publish"),
	}, true
}

func (p *Portal) OpenPaperCheck(ctx context.Context, v View) (*PaperCheckController, bool) {
	scr, _, ok := p.guard(ctx, v, session.RoleFaculty)
	if !ok {
		return nil, false
	}
	return &PaperCheckController{base: p.base(scr), submit: newControl("check")}, true
}

func (p *Portal) OpenPapers(ctx context.Context, v View) (PaperList, bool) {
	scr, _, ok := p.guard(ctx, v, session.RoleFaculty)
	if !ok {
		return PaperList{}, false
	}
	return (&PapersController{base: p.base(scr)}).Load(ctx)
}

func (p *Portal) OpenPaperResult(ctx context.Context, v View, paperID string) (PaperResult, bool) {
	scr, _, ok := p.guard(ctx, v, session.RoleFaculty)
	if !ok {
		return PaperResult{}, false
	}
	return (&PaperResultController{base: p.base(scr)}).Load(ctx, paperID)
}

// Student pages

func (p *Portal) OpenStudentDashboard(ctx context.Context, v View) (StudentDashboard, bool) {
	scr, sess, ok := p.guard(ctx, v, session.RoleStudent)
	if !ok {
		return StudentDashboard{}, false
	}
	return (&StudentDashboardController{base: p.base(scr), user: sess}).Load(ctx)
}

func (p *Portal) OpenAssignments(ctx context.Context, v View) (AssignmentList, bool) {
	scr, sess, ok := p.guard(ctx, v, session.RoleStudent)
	if !ok {
		return AssignmentList{}, false
	}
	return (&AssignmentsController{base: p.base(scr), user: sess}).Load(ctx)
}

// OpenSubmission opens the submission form of assignmentID. It returns false
// when the form is not shown, e.g. because the student already submitted.
func (p *Portal) OpenSubmission(ctx context.Context, v View, assignmentID string) (*SubmissionController, bool) {
	scr, sess, ok := p.guard(ctx, v, session.RoleStudent)
	if !ok {
		return nil, false
	}
	ctrl := &SubmissionController{
		base:    p.base(scr),
		user:    sess,
		sidebar: p.opts.Sidebar,
		submit:  newControl("submit"),
	}
	if !ctrl.Open(ctx, assignmentID) {
		return nil, false
	}
	return ctrl, true
}

// OpenResult is readable by either role: faculty view student results too.
func (p *Portal) OpenResult(ctx context.Context, v View, submissionID string) (ResultView, bool) {
	scr, _, ok := p.guard(ctx, v, "")
	if !ok {
		return ResultView{}, false
	}
	return (&ResultController{base: p.base(scr)}).Load(ctx, submissionID)
}
