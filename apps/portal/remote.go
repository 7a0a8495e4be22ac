package portal

import (
	"context"

	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
	"github.com/trezcool/gradedesk/services/remote"
)

// Remote is the part of the grading service the pages talk to.
// *remote.Client implements it.
type Remote interface {
	Login(ctx context.Context, creds session.Credentials) remote.Result[session.Session]
	Register(ctx context.Context, acct session.NewAccount) remote.Result[session.Session]
	Logout(ctx context.Context) remote.Result[struct{}]
	Current(ctx context.Context) remote.Result[session.Session]

	ListAssignments(ctx context.Context) remote.Result[[]coursework.Assignment]
	GetAssignment(ctx context.Context, id string) remote.Result[coursework.Assignment]
	ListSubmissionsForAssignment(ctx context.Context, assignmentID string) remote.Result[[]coursework.Submission]
	CreateAssignment(ctx context.Context, na coursework.NewAssignment) remote.Result[coursework.Assignment]

	ListSubmissions(ctx context.Context) remote.Result[[]coursework.Submission]
	GetSubmission(ctx context.Context, id string) remote.Result[coursework.Submission]
	SubmitAssignment(ctx context.Context, ns coursework.NewSubmission) remote.Result[coursework.Submission]

	CheckPaper(ctx context.Context, pc coursework.PaperCheck) remote.Result[coursework.Paper]
	ListPapers(ctx context.Context) remote.Result[[]coursework.Paper]
	GetPaper(ctx context.Context, id string) remote.Result[coursework.Paper]

	FileURL(name string) string
}

var _ Remote = (*remote.Client)(nil)
