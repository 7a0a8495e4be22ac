package sandboxapi

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrBadCredentials   = errors.New("invalid credentials")
	ErrAlreadySubmitted = errors.New("assignment already submitted")
)

var nowFunc = time.Now // mockable

func newID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

func timestamp() string {
	return nowFunc().UTC().Format(time.RFC3339Nano)
}

type user struct {
	session.Session
	PasswordHash []byte
}

func (u *user) setPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *user) checkPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// Store keeps everything the sandbox knows in memory.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*user // by username
	assignments []coursework.Assignment
	submissions []coursework.Submission
	papers      []coursework.Paper
	files       map[string][]byte
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*user),
		files: make(map[string][]byte),
	}
}

// Users

func (s *Store) CreateUser(acct session.NewAccount) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[acct.Username]; ok {
		return session.Session{}, ErrUsernameTaken
	}
	name := acct.Name
	if name == "" {
		name = acct.Username
	}
	usr := &user{Session: session.Session{
		ID:         newID("u"),
		Username:   acct.Username,
		Name:       name,
		Role:       acct.Role,
		Department: acct.Department,
		Branch:     acct.Branch,
		Semester:   acct.Semester,
	}}
	if err := usr.setPassword(acct.Password); err != nil {
		return session.Session{}, errors.Wrap(err, "hashing password")
	}
	s.users[usr.Username] = usr
	return usr.Session, nil
}

func (s *Store) Authenticate(username, pwd string) (session.Session, error) {
	s.mu.RLock()
	usr, ok := s.users[username]
	s.mu.RUnlock()
	if !ok || usr.checkPassword(pwd) != nil {
		return session.Session{}, ErrBadCredentials
	}
	return usr.Session, nil
}

func (s *Store) UserByID(id string) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, usr := range s.users {
		if usr.ID == id {
			return usr.Session, nil
		}
	}
	return session.Session{}, ErrNotFound
}

// Files

func (s *Store) PutFile(name string, data []byte) {
	s.mu.Lock()
	s.files[name] = data
	s.mu.Unlock()
}

func (s *Store) File(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// Assignments

func (s *Store) AddAssignment(a coursework.Assignment) coursework.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = newID("asg")
	}
	a.CreatedAt = timestamp()
	s.assignments = append(s.assignments, a)
	return a
}

// Assignments returns every assignment, newest first.
func (s *Store) Assignments() []coursework.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]coursework.Assignment, 0, len(s.assignments))
	for i := len(s.assignments) - 1; i >= 0; i-- {
		out = append(out, s.assignments[i])
	}
	return out
}

func (s *Store) Assignment(id string) (coursework.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return coursework.Assignment{}, ErrNotFound
}

// Submissions

// HasSubmitted reports whether studentID already submitted assignmentID.
func (s *Store) HasSubmitted(assignmentID, studentID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasSubmitted(assignmentID, studentID)
}

func (s *Store) hasSubmitted(assignmentID, studentID string) bool {
	for _, sub := range s.submissions {
		if sub.AssignmentID == assignmentID && sub.StudentID == studentID {
			return true
		}
	}
	return false
}

// AddSubmission records sub unless its student already submitted that assignment.
func (s *Store) AddSubmission(sub coursework.Submission) (coursework.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasSubmitted(sub.AssignmentID, sub.StudentID) {
		return coursework.Submission{}, ErrAlreadySubmitted
	}
	if sub.ID == "" {
		sub.ID = newID("sub")
	}
	sub.SubmittedAt = timestamp()
	s.submissions = append(s.submissions, sub)
	return sub, nil
}

// Submissions returns the submissions matching keep, newest first.
func (s *Store) Submissions(keep func(coursework.Submission) bool) []coursework.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]coursework.Submission, 0)
	for i := len(s.submissions) - 1; i >= 0; i-- {
		if keep == nil || keep(s.submissions[i]) {
			out = append(out, s.submissions[i])
		}
	}
	return out
}

func (s *Store) Submission(id string) (coursework.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.submissions {
		if sub.ID == id {
			return sub, nil
		}
	}
	return coursework.Submission{}, ErrNotFound
}

// Papers

func (s *Store) AddPaper(p coursework.Paper) coursework.Paper {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = newID("paper")
	}
	p.CreatedAt = timestamp()
	s.papers = append(s.papers, p)
	return p
}

// PapersOf returns the papers checked by teacherID, newest first.
func (s *Store) PapersOf(teacherID string) []coursework.Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]coursework.Paper, 0)
	for i := len(s.papers) - 1; i >= 0; i-- {
		if s.papers[i].TeacherID == teacherID {
			out = append(out, s.papers[i])
		}
	}
	return out
}

func (s *Store) Paper(id string) (coursework.Paper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.papers {
		if p.ID == id {
			return p, nil
		}
	}
	return coursework.Paper{}, ErrNotFound
}
