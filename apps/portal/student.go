package portal

import (
	"context"
	"fmt"
	"strings"

	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
)

const (
	pendingPreview = 3

	SubmitConfirmPrompt = "Are you sure you want to submit? This cannot be undone."
	SubmittedNotice     = "Assignment submitted successfully!"
)

type StudentDashboardController struct {
	base
	user session.Session
}

func (c *StudentDashboardController) Load(ctx context.Context) (StudentDashboard, bool) {
	asgs := c.remote.ListAssignments(ctx)
	if !asgs.Success {
		c.screen.Error(asgs.Message)
		return StudentDashboard{}, false
	}
	subs := c.remote.ListSubmissions(ctx)
	if !subs.Success {
		c.screen.Error(subs.Message)
		return StudentDashboard{}, false
	}

	pending, completed := coursework.Partition(asgs.Data, subs.Data, c.user.ID)
	dash := StudentDashboard{
		User:      c.user,
		Total:     len(asgs.Data),
		Pending:   len(pending),
		Completed: len(completed),
		Preview:   make([]AssignmentRow, 0, pendingPreview),
	}
	for _, a := range pending {
		if len(dash.Preview) == pendingPreview {
			break
		}
		dash.Preview = append(dash.Preview, assignmentRow(a))
	}

	c.screen.Render(dash)
	return dash, true
}

type AssignmentsController struct {
	base
	user session.Session
}

func (c *AssignmentsController) Load(ctx context.Context) (AssignmentList, bool) {
	asgs := c.remote.ListAssignments(ctx)
	if !asgs.Success {
		c.screen.Error(asgs.Message)
		return AssignmentList{}, false
	}
	subs := c.remote.ListSubmissions(ctx)
	if !subs.Success {
		c.screen.Error(subs.Message)
		return AssignmentList{}, false
	}

	mine := coursework.SubmissionsByAssignment(subs.Data, c.user.ID)
	page := AssignmentList{Rows: make([]AssignmentStatus, 0, len(asgs.Data))}
	for _, a := range asgs.Data {
		row := AssignmentStatus{
			AssignmentRow: assignmentRow(a),
			Next:          Navigation{Page: PageSubmitAssignment, ID: a.ID},
		}
		if sub, ok := mine[a.ID]; ok {
			row.Submitted = true
			row.SubmissionID = sub.ID
			row.Next = Navigation{Page: PageResult, ID: sub.ID}
		}
		page.Rows = append(page.Rows, row)
	}

	c.screen.Render(page)
	return page, true
}

type SubmissionController struct {
	base
	user    session.Session
	sidebar *Sidebar
	submit  *control

	assignment *coursework.Assignment
}

// Open loads assignmentID and shows its form. A student who already
// submitted is sent to the existing result instead.
func (c *SubmissionController) Open(ctx context.Context, assignmentID string) bool {
	if strings.TrimSpace(assignmentID) == "" {
		c.screen.Notice("No assignment specified.")
		c.screen.Navigate(Navigation{Page: PageStudentDashboard})
		return false
	}

	asg := c.remote.GetAssignment(ctx, assignmentID)
	if !asg.Success {
		c.screen.Notice(asg.Message)
		c.screen.Navigate(Navigation{Page: PageStudentDashboard})
		return false
	}
	subs := c.remote.ListSubmissions(ctx)
	if !subs.Success {
		c.screen.Error(subs.Message)
		return false
	}
	if sub, ok := coursework.SubmissionsByAssignment(subs.Data, c.user.ID)[assignmentID]; ok {
		c.screen.Navigate(Navigation{Page: PageResult, ID: sub.ID})
		return false
	}

	a := asg.Data
	c.assignment = &a
	form := SubmissionForm{
		Assignment:  assignmentRow(a),
		Description: a.Description,
		Questions:   make([]QuestionRow, 0, len(a.Questions)),
	}
	if a.QuestionPDF != "" {
		form.QuestionURL = c.remote.FileURL(a.QuestionPDF)
	}
	for i, q := range a.Questions {
		text := q.Text
		if text == "" {
			text = fmt.Sprintf("Question %d", i+1)
		}
		form.Questions = append(form.Questions, QuestionRow{Number: i + 1, Text: text, MaxMarks: q.MaxMarks})
	}
	c.screen.Render(form)
	return true
}

// Submit sends answer for the opened assignment after the user confirmed.
func (c *SubmissionController) Submit(ctx context.Context, answer *coursework.Upload) bool {
	if c.assignment == nil {
		c.screen.Error("No assignment specified.")
		return false
	}
	ns := coursework.NewSubmission{
		AssignmentID: c.assignment.ID,
		StudentID:    c.user.ID,
		AnswerFile:   answer,
	}
	if c.rejectInvalid(ns.Validate(c.validate)) {
		return false
	}
	if c.submit.busy() || !c.screen.Confirm(SubmitConfirmPrompt) {
		return false
	}
	if !c.submit.begin(c.screen) {
		return false
	}

	res := c.remote.SubmitAssignment(ctx, ns)
	if !res.Success {
		c.submit.fail(c.screen)
		c.screen.Error(res.Message)
		return false
	}

	c.submit.done()
	c.screen.Notice(SubmittedNotice)
	c.sidebar.Refresh(ctx, c.user)
	c.screen.Navigate(Navigation{Page: PageResult, ID: res.Data.ID})
	return true
}

func (c *SubmissionController) Busy() bool { return c.submit.busy() }

type ResultController struct {
	base
}

func (c *ResultController) Load(ctx context.Context, submissionID string) (ResultView, bool) {
	if strings.TrimSpace(submissionID) == "" {
		c.screen.Error("No submission ID provided.")
		return ResultView{}, false
	}
	sub := c.remote.GetSubmission(ctx, submissionID)
	if !sub.Success {
		c.screen.Error(sub.Message)
		return ResultView{}, false
	}

	page := ResultView{
		SubmissionID: sub.Data.ID,
		SubmittedAt:  coursework.FormatDate(sub.Data.SubmittedAt),
		Grading:      gradingOf(sub.Data.AiResult),
	}
	if sub.Data.SubmissionPDF != "" {
		page.AnswerURL = c.remote.FileURL(sub.Data.SubmissionPDF)
	}
	// the title is cosmetic: a missing assignment does not hide the result
	if asg := c.remote.GetAssignment(ctx, sub.Data.AssignmentID); asg.Success {
		page.AssignmentTitle = asg.Data.Title
	} else {
		c.logger.Warn("loading assignment of result: " + asg.Message)
	}

	c.screen.Render(page)
	return page, true
}
