package portal

import (
	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
)

// Page models handed to View.Render.

// Grading is an AiResult prepared for display.
type Grading struct {
	Graded     bool
	Score      string
	Grade      string
	Tier       coursework.Tier
	Plagiarism string
	Feedback   string
}

func gradingOf(r *coursework.AiResult) Grading {
	return Grading{
		Graded:     r.Graded(),
		Score:      r.ScoreLabel(),
		Grade:      r.GradeLabel(),
		Tier:       r.Tier(),
		Plagiarism: r.PlagiarismLabel(),
		Feedback:   r.FeedbackLabel(),
	}
}

type AssignmentRow struct {
	ID          string
	Title       string
	Subject     string
	Deadline    string
	Questions   int
	Submissions int
}

func assignmentRow(a coursework.Assignment) AssignmentRow {
	return AssignmentRow{
		ID:        a.ID,
		Title:     a.Title,
		Subject:   a.Subject,
		Deadline:  coursework.FormatDate(a.Deadline),
		Questions: len(a.Questions),
	}
}

type FacultyDashboard struct {
	User             session.Session
	TotalAssignments int
	TotalSubmissions int
	Recent           []AssignmentRow
}

type SubmissionRow struct {
	ID          string
	StudentID   string
	SubmittedAt string
	Grading     Grading
	AnswerURL   string
}

type AssignmentSubmissions struct {
	Assignment AssignmentRow
	Rows       []SubmissionRow
}

type PaperRow struct {
	ID      string
	ShortID string
	Date    string
	Grading Grading
}

type PaperList struct {
	Rows []PaperRow
}

type PaperResult struct {
	ID          string
	ShortID     string
	Date        string
	Grading     Grading
	QuestionURL string
	AnswerURL   string
}

type StudentDashboard struct {
	User      session.Session
	Total     int
	Pending   int
	Completed int
	Preview   []AssignmentRow
}

type AssignmentStatus struct {
	AssignmentRow
	Submitted    bool
	SubmissionID string
	// Next is where the row's action leads: the result, or the submission form.
	Next Navigation
}

type AssignmentList struct {
	Rows []AssignmentStatus
}

type QuestionRow struct {
	Number   int
	Text     string
	MaxMarks float64
}

type SubmissionForm struct {
	Assignment  AssignmentRow
	Description string
	QuestionURL string
	Questions   []QuestionRow
}

type ResultView struct {
	SubmissionID    string
	AssignmentTitle string
	SubmittedAt     string
	Grading         Grading
	AnswerURL       string
}
