package session

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradedesk/core"
)

// Roles
const (
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

var AllRoles = []string{RoleFaculty, RoleStudent}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Session is the authenticated identity cached on this machine.
type Session struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name,omitempty"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Branch     string `json:"branch,omitempty"`
	Semester   string `json:"semester,omitempty"`
}

func (s Session) IsFaculty() bool { return s.Role == RoleFaculty }
func (s Session) IsStudent() bool { return s.Role == RoleStudent }

// DisplayName falls back to the username when no name was registered.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Username
}

// valid reports whether a decoded blob carries a usable identity.
func (s Session) valid() bool {
	return s.ID != "" && s.Username != "" && IsValidRole(s.Role)
}

// Merge returns the refreshed identity, keeping the profile fields it lacks from s.
func (s Session) Merge(fresh Session) Session {
	if fresh.Name == "" {
		fresh.Name = s.Name
	}
	if fresh.Department == "" {
		fresh.Department = s.Department
	}
	if fresh.Branch == "" {
		fresh.Branch = s.Branch
	}
	if fresh.Semester == "" {
		fresh.Semester = s.Semester
	}
	return fresh
}

// Credentials is what the login page collects.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,role"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Username = core.CleanString(c.Username)
	c.Role = core.CleanString(c.Role, true /* lower */)
	return validate.Struct(c)
}

// NewAccount contains information needed to register a new account.
type NewAccount struct {
	Name       string `json:"name"`
	Username   string `json:"username" validate:"required,alphanum_"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"required,role"`
	Department string `json:"department"`
	Branch     string `json:"branch"`
	Semester   string `json:"semester"`
}

func (na *NewAccount) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Username = core.CleanString(na.Username)
	na.Role = core.CleanString(na.Role, true /* lower */)
	na.Department = core.CleanString(na.Department)
	na.Branch = core.CleanString(na.Branch)
	na.Semester = core.CleanString(na.Semester)
	return validate.Struct(na)
}
