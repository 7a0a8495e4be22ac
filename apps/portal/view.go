package portal

import (
	"sync"

	"github.com/trezcool/gradedesk/core/session"
)

type Page string

const (
	PageLogin                 Page = "login"
	PageRegister              Page = "register"
	PageFacultyDashboard      Page = "faculty-dashboard"
	PageCreateAssignment      Page = "create-assignment"
	PageAssignmentSubmissions Page = "assignment-submissions"
	PageCheckPaper            Page = "check-paper"
	PagePapers                Page = "papers"
	PagePaperResult           Page = "paper-result"
	PageStudentDashboard      Page = "student-dashboard"
	PageAssignments           Page = "assignments"
	PageSubmitAssignment      Page = "submit-assignment"
	PageResult                Page = "result"
)

// DashboardFor returns the landing page of role.
func DashboardFor(role string) Page {
	if role == session.RoleFaculty {
		return PageFacultyDashboard
	}
	return PageStudentDashboard
}

// Navigation is a request to leave the current page.
type Navigation struct {
	Page Page
	ID   string
}

// View is whatever displays a page: a terminal, a test recorder...
type View interface {
	// Notice is a one-shot message the user has to acknowledge.
	Notice(msg string)
	// Error shows an inline failure next to the form or list.
	Error(msg string)
	// Busy marks control as disabled and in progress, or enables it again.
	Busy(control string, busy bool)
	Confirm(prompt string) bool
	// Render displays a page model (see models.go).
	Render(model interface{})
	Navigate(nav Navigation)
}

// Screen guards a View: once it navigated away, the screen is detached and
// every later write is dropped, so a late callback cannot resurrect a stale page.
type Screen struct {
	view View

	mu       sync.Mutex
	detached bool
}

func NewScreen(v View) *Screen {
	return &Screen{view: v}
}

func (s *Screen) attached(fn func(View)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return
	}
	fn(s.view)
}

func (s *Screen) Notice(msg string) { s.attached(func(v View) { v.Notice(msg) }) }
func (s *Screen) Error(msg string)  { s.attached(func(v View) { v.Error(msg) }) }

func (s *Screen) Busy(control string, busy bool) {
	s.attached(func(v View) { v.Busy(control, busy) })
}

func (s *Screen) Render(model interface{}) { s.attached(func(v View) { v.Render(model) }) }

// Confirm answers false on a detached screen. The lock is not held while the
// user answers, so other writes are not held up by the prompt.
func (s *Screen) Confirm(prompt string) bool {
	s.mu.Lock()
	detached := s.detached
	s.mu.Unlock()
	if detached {
		return false
	}
	return s.view.Confirm(prompt)
}

// Navigate forwards nav and detaches the screen.
func (s *Screen) Navigate(nav Navigation) {
	s.attached(func(v View) {
		s.detached = true
		v.Navigate(nav)
	})
}

func (s *Screen) Detach() {
	s.mu.Lock()
	s.detached = true
	s.mu.Unlock()
}

func (s *Screen) Detached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detached
}
