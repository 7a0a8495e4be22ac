package remote

import (
	"context"
	"net/url"

	"github.com/trezcool/gradedesk/core/coursework"
)

// Assignments

func (c *Client) ListAssignments(ctx context.Context) Result[[]coursework.Assignment] {
	return list[coursework.Assignment](ctx, c, "assignments", "assignments")
}

func (c *Client) GetAssignment(ctx context.Context, id string) Result[coursework.Assignment] {
	return get[coursework.Assignment](ctx, c, "assignments/"+url.PathEscape(id), "assignment")
}

func (c *Client) ListSubmissionsForAssignment(ctx context.Context, assignmentID string) Result[[]coursework.Submission] {
	return list[coursework.Submission](ctx, c, "assignments/"+url.PathEscape(assignmentID)+"/submissions", "submissions")
}

// CreateAssignment expects na to be validated already.
func (c *Client) CreateAssignment(ctx context.Context, na coursework.NewAssignment) Result[coursework.Assignment] {
	r, err := multipartRequest(
		"faculty/create-assignment",
		[]formField{
			{"title", na.Title},
			{"subject", na.Subject},
			{"description", na.Description},
			{"deadline", na.Deadline},
		},
		[]formFile{
			{"question_pdf", na.QuestionFile},
			{"faculty_solution_pdf", na.SolutionFile},
		},
		"assignment", "Failed to create assignment",
	)
	if err != nil {
		return failed[coursework.Assignment](c.transportFailure(r, err).message)
	}
	return call[coursework.Assignment](ctx, c, r, true)
}

// Submissions

func (c *Client) ListSubmissions(ctx context.Context) Result[[]coursework.Submission] {
	return list[coursework.Submission](ctx, c, "submissions", "submissions")
}

func (c *Client) GetSubmission(ctx context.Context, id string) Result[coursework.Submission] {
	return get[coursework.Submission](ctx, c, "submissions/"+url.PathEscape(id), "submission")
}

// SubmitAssignment expects ns to be validated already.
func (c *Client) SubmitAssignment(ctx context.Context, ns coursework.NewSubmission) Result[coursework.Submission] {
	r, err := multipartRequest(
		"student/submit-assignment",
		[]formField{
			{"assignment_id", ns.AssignmentID},
			{"student_id", ns.StudentID},
		},
		[]formFile{{"sub_pdf", ns.AnswerFile}},
		"result", "Submission failed",
	)
	if err != nil {
		return failed[coursework.Submission](c.transportFailure(r, err).message)
	}
	return call[coursework.Submission](ctx, c, r, true)
}

// Papers

// CheckPaper expects pc to be validated already.
func (c *Client) CheckPaper(ctx context.Context, pc coursework.PaperCheck) Result[coursework.Paper] {
	r, err := multipartRequest(
		"faculty/check-paper",
		nil,
		[]formFile{
			{"question_pdf", pc.QuestionFile},
			{"answer_pdf", pc.AnswerFile},
		},
		"paper", "Paper check failed",
	)
	if err != nil {
		return failed[coursework.Paper](c.transportFailure(r, err).message)
	}
	return call[coursework.Paper](ctx, c, r, true)
}

func (c *Client) ListPapers(ctx context.Context) Result[[]coursework.Paper] {
	return list[coursework.Paper](ctx, c, "faculty/papers", "papers")
}

func (c *Client) GetPaper(ctx context.Context, id string) Result[coursework.Paper] {
	return get[coursework.Paper](ctx, c, "faculty/papers/"+url.PathEscape(id), "paper")
}
