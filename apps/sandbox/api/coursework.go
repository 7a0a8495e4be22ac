package sandboxapi

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
)

type courseworkApi struct {
	srv *server
}

func registerCourseworkAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := courseworkApi{srv: srv}
	faculty := roleMiddleware(session.RoleFaculty)
	student := roleMiddleware(session.RoleStudent)

	// authed endpoints
	ag := g.Group("", jwt)
	ag.GET("/assignments", api.listAssignments)
	ag.GET("/assignments/:id", api.retrieveAssignment)
	ag.GET("/assignments/:id/submissions", api.listAssignmentSubmissions, faculty)
	ag.GET("/submissions", api.listSubmissions)
	ag.GET("/submissions/:id", api.retrieveSubmission)
	ag.GET("/files/:name", api.file)

	fg := ag.Group("/faculty", faculty)
	fg.POST("/create-assignment", api.createAssignment)
	fg.POST("/check-paper", api.checkPaper)
	fg.GET("/papers", api.listPapers)
	fg.GET("/papers/:id", api.retrievePaper)

	sg := ag.Group("/student", student)
	sg.POST("/submit-assignment", api.submitAssignment)
}

// readPDF reads the uploaded file of field. A missing file yields nil, nil.
func readPDF(ctx echo.Context, field string) ([]byte, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		if errors.Cause(err) == http.ErrMissingFile {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading form file %s", field)
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return nil, errOnlyPDF
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "opening form file %s", field)
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	return data, errors.Wrapf(err, "reading form file %s", field)
}

// Assignments

func (api courseworkApi) listAssignments(ctx echo.Context) error {
	return ok(ctx, http.StatusOK, "assignments", api.srv.opts.Store.Assignments())
}

func (api courseworkApi) retrieveAssignment(ctx echo.Context) error {
	asg, err := api.srv.opts.Store.Assignment(ctx.Param("id"))
	if err != nil {
		return notFound("Assignment")
	}
	return ok(ctx, http.StatusOK, "assignment", asg)
}

func (api courseworkApi) listAssignmentSubmissions(ctx echo.Context) error {
	id := ctx.Param("id")
	subs := api.srv.opts.Store.Submissions(func(sub coursework.Submission) bool {
		return sub.AssignmentID == id
	})
	return ok(ctx, http.StatusOK, "submissions", subs)
}

func (api courseworkApi) createAssignment(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	question, err := readPDF(ctx, "question_pdf")
	if err != nil {
		return err
	}
	solution, err := readPDF(ctx, "faculty_solution_pdf")
	if err != nil {
		return err
	}
	if question == nil || solution == nil {
		return errMissingPDFs
	}

	questions, err := api.srv.opts.Grader.Structure(ctx.Request().Context(), question)
	if err != nil {
		return errors.Wrap(err, "processing question paper")
	}

	title := strings.TrimSpace(ctx.FormValue("title"))
	if title == "" {
		title = "Untitled Assignment"
	}
	id := newID("asg")
	asg := coursework.Assignment{
		ID:          id,
		Title:       title,
		Subject:     ctx.FormValue("subject"),
		Description: ctx.FormValue("description"),
		Deadline:    ctx.FormValue("deadline"),
		TeacherID:   claims.Subject,
		QuestionPDF: id + "_question.pdf",
		SolutionPDF: id + "_solution.pdf",
		Questions:   questions,
	}
	api.srv.opts.Store.PutFile(asg.QuestionPDF, question)
	api.srv.opts.Store.PutFile(asg.SolutionPDF, solution)

	return ok(ctx, http.StatusCreated, "assignment", api.srv.opts.Store.AddAssignment(asg))
}

// Submissions

// listSubmissions answers a student's own submissions, or the submissions to
// a teacher's assignments.
func (api courseworkApi) listSubmissions(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	store := api.srv.opts.Store

	var keep func(coursework.Submission) bool
	switch claims.Role {
	case session.RoleStudent:
		keep = func(sub coursework.Submission) bool { return sub.StudentID == claims.Subject }
	case session.RoleFaculty:
		mine := make(map[string]bool)
		for _, asg := range store.Assignments() {
			if asg.TeacherID == claims.Subject {
				mine[asg.ID] = true
			}
		}
		keep = func(sub coursework.Submission) bool { return mine[sub.AssignmentID] }
	default:
		keep = func(coursework.Submission) bool { return false }
	}
	return ok(ctx, http.StatusOK, "submissions", store.Submissions(keep))
}

func (api courseworkApi) retrieveSubmission(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	sub, err := api.srv.opts.Store.Submission(ctx.Param("id"))
	if err != nil {
		return notFound("Submission")
	}
	if claims.Role == session.RoleStudent && sub.StudentID != claims.Subject {
		return errAccessDenied
	}
	return ok(ctx, http.StatusOK, "submission", sub)
}

func (api courseworkApi) submitAssignment(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	store := api.srv.opts.Store

	answer, err := readPDF(ctx, "sub_pdf")
	if err != nil {
		return err
	}
	if answer == nil {
		return errMissingSubmission
	}
	assignmentID := strings.TrimSpace(ctx.FormValue("assignment_id"))
	if assignmentID == "" {
		return errMissingAssignment
	}
	asg, err := store.Assignment(assignmentID)
	if err != nil {
		return notFound("Assignment")
	}
	if store.HasSubmitted(asg.ID, claims.Subject) {
		return errAlreadySubmitted
	}

	key, err := store.File(asg.SolutionPDF)
	if err != nil {
		return errors.Wrap(err, "loading solution paper")
	}
	result, err := api.srv.opts.Grader.Grade(ctx.Request().Context(), asg.Questions, key, answer)
	if err != nil {
		return errors.Wrap(err, "grading submission")
	}

	id := newID("sub")
	sub, err := store.AddSubmission(coursework.Submission{
		ID:            id,
		AssignmentID:  asg.ID,
		StudentID:     claims.Subject,
		SubmissionPDF: id + "_student.pdf",
		AiResult:      &result,
		Status:        "graded",
	})
	if err != nil {
		if errors.Cause(err) == ErrAlreadySubmitted {
			return errAlreadySubmitted
		}
		return errors.Wrap(err, "saving submission")
	}
	store.PutFile(sub.SubmissionPDF, answer)

	return ok(ctx, http.StatusCreated, "result", sub)
}

// Papers

func (api courseworkApi) checkPaper(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	question, err := readPDF(ctx, "question_pdf")
	if err != nil {
		return err
	}
	answer, err := readPDF(ctx, "answer_pdf")
	if err != nil {
		return err
	}
	if question == nil || answer == nil {
		return errMissingPDFs
	}

	reqCtx := ctx.Request().Context()
	questions, err := api.srv.opts.Grader.Structure(reqCtx, question)
	if err != nil {
		return errors.Wrap(err, "processing question paper")
	}
	// the answer paper doubles as its own key
	result, err := api.srv.opts.Grader.Grade(reqCtx, questions, answer, answer)
	if err != nil {
		return errors.Wrap(err, "grading paper")
	}
	result.PlagiarismPercentage = nil

	id := newID("paper")
	paper := coursework.Paper{
		ID:          id,
		TeacherID:   claims.Subject,
		QuestionPDF: id + "_question.pdf",
		AnswerPDF:   id + "_answer.pdf",
		Result:      &result,
	}
	api.srv.opts.Store.PutFile(paper.QuestionPDF, question)
	api.srv.opts.Store.PutFile(paper.AnswerPDF, answer)

	return ok(ctx, http.StatusCreated, "paper", api.srv.opts.Store.AddPaper(paper))
}

func (api courseworkApi) listPapers(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, "papers", api.srv.opts.Store.PapersOf(claims.Subject))
}

func (api courseworkApi) retrievePaper(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	paper, err := api.srv.opts.Store.Paper(ctx.Param("id"))
	if err != nil {
		return notFound("Paper")
	}
	if paper.TeacherID != claims.Subject {
		return errAccessDenied
	}
	return ok(ctx, http.StatusOK, "paper", paper)
}

// Files

func (api courseworkApi) file(ctx echo.Context) error {
	data, err := api.srv.opts.Store.File(ctx.Param("name"))
	if err != nil {
		return notFound("File")
	}
	return ctx.Blob(http.StatusOK, "application/pdf", data)
}
