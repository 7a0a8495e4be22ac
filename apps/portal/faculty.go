package portal

import (
	"context"
	"strings"

	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
)

const (
	recentAssignments = 5

	PublishedNotice    = "Assignment published successfully!"
	PaperCheckedNotice = "Paper checked successfully!"
)

type FacultyDashboardController struct {
	base
	user session.Session
}

// Load shows totals and the most recent assignments with their submission counts.
func (c *FacultyDashboardController) Load(ctx context.Context) (FacultyDashboard, bool) {
	asgs := c.remote.ListAssignments(ctx)
	if !asgs.Success {
		c.screen.Error(asgs.Message)
		return FacultyDashboard{}, false
	}
	subs := c.remote.ListSubmissions(ctx)
	if !subs.Success {
		c.screen.Error(subs.Message)
		return FacultyDashboard{}, false
	}

	counts := coursework.CountByAssignment(subs.Data)
	dash := FacultyDashboard{
		User:             c.user,
		TotalAssignments: len(asgs.Data),
		TotalSubmissions: len(subs.Data),
		Recent:           make([]AssignmentRow, 0, recentAssignments),
	}
	for _, a := range asgs.Data {
		if len(dash.Recent) == recentAssignments {
			break
		}
		row := assignmentRow(a)
		row.Submissions = counts[a.ID]
		dash.Recent = append(dash.Recent, row)
	}

	c.screen.Render(dash)
	return dash, true
}

type AssignmentSubmissionsController struct {
	base
}

func (c *AssignmentSubmissionsController) Load(ctx context.Context, assignmentID string) (AssignmentSubmissions, bool) {
	if strings.TrimSpace(assignmentID) == "" {
		c.screen.Error("No assignment specified.")
		return AssignmentSubmissions{}, false
	}
	asg := c.remote.GetAssignment(ctx, assignmentID)
	if !asg.Success {
		c.screen.Error(asg.Message)
		return AssignmentSubmissions{}, false
	}
	subs := c.remote.ListSubmissionsForAssignment(ctx, assignmentID)
	if !subs.Success {
		c.screen.Error(subs.Message)
		return AssignmentSubmissions{}, false
	}

	page := AssignmentSubmissions{
		Assignment: assignmentRow(asg.Data),
		Rows:       make([]SubmissionRow, 0, len(subs.Data)),
	}
	page.Assignment.Submissions = len(subs.Data)
	for _, s := range subs.Data {
		row := SubmissionRow{
			ID:          s.ID,
			StudentID:   s.StudentID,
			SubmittedAt: coursework.FormatDate(s.SubmittedAt),
			Grading:     gradingOf(s.AiResult),
		}
		if s.SubmissionPDF != "" {
			row.AnswerURL = c.remote.FileURL(s.SubmissionPDF)
		}
		page.Rows = append(page.Rows, row)
	}

	c.screen.Render(page)
	return page, true
}

type CreateAssignmentController struct {
	base
	user    session.Session
	sidebar *Sidebar
	submit  *control
}

// Submit publishes na. Form values are left untouched on failure.
func (c *CreateAssignmentController) Submit(ctx context.Context, na coursework.NewAssignment) bool {
	if c.rejectInvalid(na.Validate(c.validate)) {
		return false
	}
	if !c.submit.begin(c.screen) {
		return false
	}

	res := c.remote.CreateAssignment(ctx, na)
	if !res.Success {
		c.submit.fail(c.screen)
		c.screen.Error(res.Message)
		return false
	}

	c.submit.done()
	c.screen.Notice(PublishedNotice)
	c.sidebar.Refresh(ctx, c.user)
	c.screen.Navigate(Navigation{Page: PageFacultyDashboard})
	return true
}

// Busy reports whether a publish request is in flight.
func (c *CreateAssignmentController) Busy() bool { return c.submit.busy() }

type PaperCheckController struct {
	base
	submit *control
}

func (c *PaperCheckController) Submit(ctx context.Context, pc coursework.PaperCheck) bool {
	if c.rejectInvalid(pc.Validate(c.validate)) {
		return false
	}
	if !c.submit.begin(c.screen) {
		return false
	}

	res := c.remote.CheckPaper(ctx, pc)
	if !res.Success {
		c.submit.fail(c.screen)
		c.screen.Error(res.Message)
		return false
	}

	c.submit.done()
	c.screen.Notice(PaperCheckedNotice)
	c.screen.Navigate(Navigation{Page: PagePaperResult, ID: res.Data.ID})
	return true
}

func (c *PaperCheckController) Busy() bool { return c.submit.busy() }

type PapersController struct {
	base
}

func (c *PapersController) Load(ctx context.Context) (PaperList, bool) {
	res := c.remote.ListPapers(ctx)
	if !res.Success {
		c.screen.Error(res.Message)
		return PaperList{}, false
	}
	page := PaperList{Rows: make([]PaperRow, 0, len(res.Data))}
	for _, p := range res.Data {
		page.Rows = append(page.Rows, PaperRow{
			ID:      p.ID,
			ShortID: p.ShortID(),
			Date:    coursework.FormatDate(p.CreatedAt),
			Grading: gradingOf(p.Result),
		})
	}
	c.screen.Render(page)
	return page, true
}

type PaperResultController struct {
	base
}

func (c *PaperResultController) Load(ctx context.Context, paperID string) (PaperResult, bool) {
	if strings.TrimSpace(paperID) == "" {
		c.screen.Error("No paper specified.")
		return PaperResult{}, false
	}
	res := c.remote.GetPaper(ctx, paperID)
	if !res.Success {
		c.screen.Error(res.Message)
		return PaperResult{}, false
	}
	p := res.Data
	page := PaperResult{
		ID:      p.ID,
		ShortID: p.ShortID(),
		Date:    coursework.FormatDate(p.CreatedAt),
		Grading: gradingOf(p.Result),
	}
	if p.QuestionPDF != "" {
		page.QuestionURL = c.remote.FileURL(p.QuestionPDF)
	}
	if p.AnswerPDF != "" {
		page.AnswerURL = c.remote.FileURL(p.AnswerPDF)
	}
	c.screen.Render(page)
	return page, true
}
