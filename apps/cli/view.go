package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/gradedesk/apps/portal"
	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
)

// terminalView renders one page on the terminal.
type terminalView struct {
	out       io.Writer
	in        *bufio.Reader
	assumeYes bool

	next *portal.Navigation
}

var _ portal.View = (*terminalView)(nil)

func (v *terminalView) Notice(msg string) {
	fmt.Fprintf(v.out, "* %s\n", msg)
}

func (v *terminalView) Error(msg string) {
	fmt.Fprintf(v.out, "error: %s\n", msg)
}

func (v *terminalView) Busy(control string, busy bool) {
	if busy {
		fmt.Fprintf(v.out, "%s...\n", control)
	}
}

func (v *terminalView) Confirm(prompt string) bool {
	if v.assumeYes {
		return true
	}
	fmt.Fprintf(v.out, "%s [y/N]: ", prompt)
	line, _ := v.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (v *terminalView) Navigate(nav portal.Navigation) {
	v.next = &nav
}

func (v *terminalView) Render(model interface{}) {
	switch m := model.(type) {
	case portal.Summary:
		v.summary(m)
	case portal.FacultyDashboard:
		fmt.Fprintf(v.out, "Welcome, %s\n", m.User.DisplayName())
		fmt.Fprintf(v.out, "Assignments: %d  Submissions: %d\n\n", m.TotalAssignments, m.TotalSubmissions)
		v.assignments("Recent assignments", m.Recent, true)
	case portal.StudentDashboard:
		fmt.Fprintf(v.out, "Welcome, %s\n", m.User.DisplayName())
		fmt.Fprintf(v.out, "Assignments: %d  Pending: %d  Completed: %d\n\n", m.Total, m.Pending, m.Completed)
		v.assignments("Pending assignments", m.Preview, false)
	case portal.AssignmentList:
		v.assignmentList(m)
	case portal.AssignmentSubmissions:
		v.submissions(m)
	case portal.SubmissionForm:
		v.submissionForm(m)
	case portal.ResultView:
		fmt.Fprintf(v.out, "%s\n", m.AssignmentTitle)
		fmt.Fprintf(v.out, "Submission %s, submitted %s\n", m.SubmissionID, m.SubmittedAt)
		v.grading(m.Grading)
		fmt.Fprintf(v.out, "Answer: %s\n", m.AnswerURL)
	case portal.PaperList:
		v.papers(m)
	case portal.PaperResult:
		fmt.Fprintf(v.out, "Paper #%s, checked %s\n", m.ShortID, m.Date)
		v.grading(m.Grading)
		fmt.Fprintf(v.out, "Question: %s\nAnswer: %s\n", m.QuestionURL, m.AnswerURL)
	default:
		fmt.Fprintf(v.out, "%+v\n", m)
	}
}

func (v *terminalView) table(fn func(w io.Writer)) {
	w := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fn(w)
	_ = w.Flush()
}

func (v *terminalView) summary(m portal.Summary) {
	fmt.Fprintf(v.out, "%s (%s)\n", m.Name, m.Role)
	if m.Role == session.RoleFaculty {
		fmt.Fprintf(v.out, "Assignments: %d  Submissions: %d\n", m.Assignments, m.Submissions)
		return
	}
	fmt.Fprintf(v.out, "Assignments: %d  Pending: %d  Completed: %d\n", m.Assignments, m.Pending, m.Completed)
}

func (v *terminalView) assignments(title string, rows []portal.AssignmentRow, withCounts bool) {
	if len(rows) == 0 {
		fmt.Fprintf(v.out, "%s: none\n", title)
		return
	}
	fmt.Fprintf(v.out, "%s:\n", title)
	v.table(func(w io.Writer) {
		if withCounts {
			fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tDEADLINE\tQUESTIONS\tSUBMISSIONS")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n", r.ID, r.Title, r.Subject, r.Deadline, r.Questions, r.Submissions)
			}
			return
		}
		fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tDEADLINE")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Subject, r.Deadline)
		}
	})
}

func (v *terminalView) assignmentList(m portal.AssignmentList) {
	if len(m.Rows) == 0 {
		fmt.Fprintln(v.out, "No assignments available.")
		return
	}
	v.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tDEADLINE\tSTATUS")
		for _, r := range m.Rows {
			status := "pending"
			if r.Submitted {
				status = "submitted (" + r.SubmissionID + ")"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Subject, r.Deadline, status)
		}
	})
}

func (v *terminalView) submissions(m portal.AssignmentSubmissions) {
	fmt.Fprintf(v.out, "%s (%s), due %s\n", m.Assignment.Title, m.Assignment.Subject, m.Assignment.Deadline)
	if len(m.Rows) == 0 {
		fmt.Fprintln(v.out, "No submissions yet.")
		return
	}
	v.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tSTUDENT\tSUBMITTED\tSCORE\tGRADE\tPLAGIARISM")
		for _, r := range m.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.StudentID, r.SubmittedAt, r.Grading.Score, gradeCell(r.Grading), r.Grading.Plagiarism)
		}
	})
}

func (v *terminalView) submissionForm(m portal.SubmissionForm) {
	fmt.Fprintf(v.out, "%s (%s), due %s\n", m.Assignment.Title, m.Assignment.Subject, m.Assignment.Deadline)
	if m.Description != "" {
		fmt.Fprintln(v.out, m.Description)
	}
	fmt.Fprintf(v.out, "Question paper: %s\n", m.QuestionURL)
	if len(m.Questions) == 0 {
		return
	}
	v.table(func(w io.Writer) {
		fmt.Fprintln(w, "#\tQUESTION\tMARKS")
		for _, q := range m.Questions {
			fmt.Fprintf(w, "%d\t%s\t%g\n", q.Number, q.Text, q.MaxMarks)
		}
	})
}

func (v *terminalView) papers(m portal.PaperList) {
	if len(m.Rows) == 0 {
		fmt.Fprintln(v.out, "No papers checked yet.")
		return
	}
	v.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tPAPER\tDATE\tSCORE\tGRADE")
		for _, r := range m.Rows {
			fmt.Fprintf(w, "%s\t#%s\t%s\t%s\t%s\n", r.ID, r.ShortID, r.Date, r.Grading.Score, gradeCell(r.Grading))
		}
	})
}

func (v *terminalView) grading(g portal.Grading) {
	fmt.Fprintf(v.out, "Score: %s\n", g.Score)
	fmt.Fprintf(v.out, "Grade: %s\n", gradeCell(g))
	fmt.Fprintf(v.out, "Plagiarism: %s\n", g.Plagiarism)
	fmt.Fprintf(v.out, "Feedback: %s\n", g.Feedback)
}

// gradeCell marks the tier next to the grade, the terminal stand-in for colors.
func gradeCell(g portal.Grading) string {
	switch g.Tier {
	case coursework.TierPositive:
		return g.Grade + " (+)"
	case coursework.TierNeutral:
		return g.Grade + " (~)"
	default:
		return g.Grade + " (-)"
	}
}
