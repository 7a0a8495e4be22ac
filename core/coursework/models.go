package coursework

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradedesk/core"
)

type Question struct {
	ID       string  `json:"id"`
	Text     string  `json:"text,omitempty"`
	MaxMarks float64 `json:"max_marks"`
}

// UnmarshalJSON reads the question loosely: ids and marks may be numbers or
// strings, `marks` stands in for a missing or zero `max_marks`, and the id is
// the display text when neither `text` nor `question` is set.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       json.RawMessage `json:"id"`
		Text     string          `json:"text"`
		Question string          `json:"question"`
		MaxMarks json.RawMessage `json:"max_marks"`
		Marks    json.RawMessage `json:"marks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	q.ID = looseString(raw.ID)
	q.Text = raw.Text
	if q.Text == "" {
		q.Text = raw.Question
	}
	if q.Text == "" {
		q.Text = q.ID
	}
	q.MaxMarks = looseFloat(raw.MaxMarks)
	if q.MaxMarks == 0 {
		q.MaxMarks = looseFloat(raw.Marks)
	}
	return nil
}

// looseString returns a JSON string as is and a number as its literal text.
func looseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// looseFloat reads a number or a numeric string. Anything else is 0.
func looseFloat(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

type Assignment struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Deadline    string     `json:"deadline"`
	TeacherID   string     `json:"teacherId,omitempty"`
	QuestionPDF string     `json:"questionPdf"`
	SolutionPDF string     `json:"solutionPdf"`
	Questions   []Question `json:"questions"`
	CreatedAt   string     `json:"createdAt,omitempty"`
}

// UnmarshalJSON falls back to `structure` when `questions` is missing.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	type assignment Assignment
	var raw struct {
		assignment
		Structure []Question `json:"structure"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Assignment(raw.assignment)
	if a.Questions == nil {
		a.Questions = raw.Structure
	}
	return nil
}

// AiResult is produced by the grading engine. Every field is optional: a nil
// field means the engine has not produced it yet.
type AiResult struct {
	TotalMarks           *float64 `json:"totalMarks,omitempty"`
	MaxMarks             *float64 `json:"maxMarks,omitempty"`
	Grade                string   `json:"grade,omitempty"`
	PlagiarismPercentage *float64 `json:"plagiarismPercentage,omitempty"`
	Feedback             string   `json:"feedback,omitempty"`
}

// Graded reports whether a score is available.
func (r *AiResult) Graded() bool {
	return r != nil && r.TotalMarks != nil
}

type Submission struct {
	ID            string    `json:"id"`
	AssignmentID  string    `json:"assignmentId"`
	StudentID     string    `json:"studentId"`
	SubmittedAt   string    `json:"submittedAt"`
	SubmissionPDF string    `json:"submissionPdf"`
	AiResult      *AiResult `json:"aiResult,omitempty"`
	Status        string    `json:"status,omitempty"`
}

// Paper is a faculty ad-hoc check, unrelated to any assignment.
type Paper struct {
	ID          string    `json:"id"`
	TeacherID   string    `json:"teacherId,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	QuestionPDF string    `json:"questionPdf"`
	AnswerPDF   string    `json:"answerPdf"`
	Result      *AiResult `json:"result,omitempty"`
}

// ShortID is the last 6 characters of the paper ID.
func (p Paper) ShortID() string {
	if len(p.ID) <= 6 {
		return p.ID
	}
	return p.ID[len(p.ID)-6:]
}

// FormatDate renders a remote timestamp as a date, or "N/A".
func FormatDate(ts string) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return "N/A"
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ts
}

// Upload is a file the user selected, already read into memory.
type Upload struct {
	Filename string
	Data     []byte
}

// Selected reports whether a non-empty file was chosen.
func (u *Upload) Selected() bool {
	return u != nil && strings.TrimSpace(u.Filename) != "" && len(u.Data) > 0
}

// NewAssignment contains information needed to publish an assignment.
type NewAssignment struct {
	Title        string  `json:"title" validate:"required"`
	Subject      string  `json:"subject" validate:"required"`
	Description  string  `json:"description"`
	Deadline     string  `json:"deadline" validate:"required"`
	QuestionFile *Upload `json:"question_pdf"`
	SolutionFile *Upload `json:"faculty_solution_pdf"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Subject = core.CleanString(na.Subject)
	na.Description = core.CleanString(na.Description)
	na.Deadline = core.CleanString(na.Deadline)
	return validate.Struct(na)
}

// NewSubmission contains information needed to submit an answer paper.
type NewSubmission struct {
	AssignmentID string  `json:"assignment_id" validate:"required"`
	StudentID    string  `json:"student_id" validate:"required"`
	AnswerFile   *Upload `json:"sub_pdf"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.AssignmentID = core.CleanString(ns.AssignmentID)
	ns.StudentID = core.CleanString(ns.StudentID)
	return validate.Struct(ns)
}

// PaperCheck contains the question/answer pair of an ad-hoc check.
type PaperCheck struct {
	QuestionFile *Upload `json:"question_pdf"`
	AnswerFile   *Upload `json:"answer_pdf"`
}

func (pc *PaperCheck) Validate(validate *validator.Validate) error {
	return validate.Struct(pc)
}
