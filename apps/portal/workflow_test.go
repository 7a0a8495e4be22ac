package portal

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
	"github.com/trezcool/gradedesk/services/remote"
	"github.com/trezcool/gradedesk/tests"
)

func TestLoginController_Submit(t *testing.T) {
	valid := session.Credentials{Username: " prof ", Password: "secret", Role: "Faculty"}

	tests := []struct {
		name       string
		creds      session.Credentials
		login      remote.Result[session.Session]
		wantOK     bool
		wantErr    string
		wantCalls  int
		wantNav    *Navigation
		wantStored *session.Session
	}{
		{
			name:    "missing fields",
			creds:   session.Credentials{Role: session.RoleFaculty},
			wantErr: "password: this field is required; username: this field is required",
		},
		{
			name:    "invalid role",
			creds:   session.Credentials{Username: "prof", Password: "secret", Role: "admin"},
			wantErr: "role: role must be one of: faculty, student",
		},
		{
			name:      "rejected credentials",
			creds:     valid,
			login:     failRes[session.Session]("Invalid username or password"),
			wantErr:   "Invalid username or password",
			wantCalls: 1,
		},
		{
			name:      "backend down",
			creds:     valid,
			login:     failRes[session.Session](remote.NetworkErrorMessage),
			wantErr:   remote.NetworkErrorMessage,
			wantCalls: 1,
		},
		{
			name:       "success",
			creds:      valid,
			login:      okRes(faculty),
			wantOK:     true,
			wantCalls:  1,
			wantNav:    &Navigation{Page: PageFacultyDashboard},
			wantStored: &faculty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := setup(t, nil)
			fx.remote.login = tt.login
			view := &recordingView{}

			got := fx.portal.OpenLogin(view).Submit(context.Background(), tt.creds)

			assert.Equal(t, tt.wantOK, got)
			assert.Equal(t, tt.wantCalls, fx.remote.count("Login"))
			assert.Equal(t, tt.wantStored, fx.store.Current())
			if tt.wantErr != "" {
				assert.Equal(t, []string{tt.wantErr}, view.errors)
			} else {
				assert.Empty(t, view.errors)
			}
			if tt.wantNav != nil {
				assert.Equal(t, []Navigation{*tt.wantNav}, view.navs)
			} else {
				assert.Empty(t, view.navs)
			}
			if tt.wantCalls == 1 && !tt.wantOK {
				assert.Equal(t, []bool{true, false}, view.busy, "control re-enabled after failure")
			}
		})
	}
}

func TestRegisterController_Submit(t *testing.T) {
	fx := setup(t, nil)
	fx.remote.register = okRes(student)
	view := &recordingView{}

	ctrl := fx.portal.OpenRegister(view)
	assert.False(t, ctrl.Submit(context.Background(), session.NewAccount{Username: "stud"}))
	assert.Equal(t, 0, fx.remote.count("Register"))

	ok := ctrl.Submit(context.Background(), session.NewAccount{Username: "stud", Password: "pw", Role: "student"})
	assert.True(t, ok)
	assert.Equal(t, []string{RegisteredNotice}, view.notices)
	assert.Equal(t, []Navigation{{Page: PageLogin}}, view.navs)
	assert.Nil(t, fx.store.Current(), "registering does not sign in")
}

func TestLogout(t *testing.T) {
	fx := setup(t, &student)
	fx.portal.Sidebar().Refresh(context.Background(), student)
	view := &recordingView{}

	fx.portal.Logout(context.Background(), view)

	assert.Equal(t, 1, fx.remote.count("Logout"))
	assert.Nil(t, fx.store.Current(), "cleared although the remote logout failed")
	blob, _ := fx.records.GetRecord(SummaryKey)
	assert.Nil(t, blob)
	assert.Equal(t, []Navigation{{Page: PageLogin}}, view.navs)
}

// Concurrent activations of one control produce a single remote call.
func TestBusyGuard(t *testing.T) {
	fx := setup(t, nil)
	fx.remote.login = failRes[session.Session]("Invalid username or password")
	fx.remote.block = make(chan struct{})
	view := &recordingView{}
	ctrl := fx.portal.OpenLogin(view)
	creds := session.Credentials{Username: "prof", Password: "secret", Role: session.RoleFaculty}

	first := make(chan bool)
	go func() { first <- ctrl.Submit(context.Background(), creds) }()

	require.Eventually(t, func() bool { return fx.remote.count("Login") == 1 }, timeout, tick)
	assert.True(t, ctrl.submit.busy())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.False(t, ctrl.Submit(context.Background(), creds))
		}()
	}
	wg.Wait()

	close(fx.remote.block)
	assert.False(t, <-first)
	assert.Equal(t, 1, fx.remote.count("Login"))
	assert.False(t, ctrl.submit.busy())

	// re-enabled: the user may retry
	fx.remote.block = nil
	fx.remote.login = okRes(faculty)
	assert.True(t, ctrl.Submit(context.Background(), creds))
	assert.Equal(t, 2, fx.remote.count("Login"))
}

func TestScreen_detached(t *testing.T) {
	view := &recordingView{}
	scr := NewScreen(view)

	scr.Navigate(Navigation{Page: PageLogin})
	scr.Error("late")
	scr.Notice("late")
	scr.Render("late")
	scr.Busy("submit", false)
	scr.Navigate(Navigation{Page: PageResult})

	assert.True(t, scr.Detached())
	assert.False(t, scr.Confirm("sure?"))
	assert.Equal(t, []string{"navigate"}, view.events)
}

// promptingView waits in Confirm until answer is closed.
type promptingView struct {
	*recordingView
	asked  chan struct{}
	answer chan struct{}
}

func (v *promptingView) Confirm(string) bool {
	close(v.asked)
	<-v.answer
	return true
}

func TestScreen_confirmDoesNotBlockWrites(t *testing.T) {
	view := &promptingView{recordingView: &recordingView{}, asked: make(chan struct{}), answer: make(chan struct{})}
	scr := NewScreen(view)

	confirmed := make(chan bool)
	go func() { confirmed <- scr.Confirm("sure?") }()
	<-view.asked

	wrote := make(chan struct{})
	go func() {
		scr.Error("late")
		close(wrote)
	}()
	select {
	case <-wrote:
	case <-time.After(time.Second):
		t.Fatal("Error waited for the prompt")
	}

	close(view.answer)
	assert.True(t, <-confirmed)
	assert.Equal(t, []string{"late"}, view.errors)
}

func newAssignment() coursework.NewAssignment {
	return coursework.NewAssignment{
		Title:        "Midterm",
		Subject:      "Algorithms",
		Deadline:     "2026-12-01",
		QuestionFile: testutil.PDF("questions.pdf"),
		SolutionFile: testutil.PDF("solutions.pdf"),
	}
}

// Publishing an assignment: validate, one call, sidebar refreshed, then leave.
func TestCreateAssignmentController_Submit(t *testing.T) {
	t.Run("missing solution file", func(t *testing.T) {
		fx := setup(t, &faculty)
		view := &recordingView{}
		ctrl, ok := fx.portal.OpenCreateAssignment(context.Background(), view)
		require.True(t, ok)

		na := newAssignment()
		na.SolutionFile = &coursework.Upload{Filename: "empty.pdf"}
		assert.False(t, ctrl.Submit(context.Background(), na))
		assert.Equal(t, []string{"faculty_solution_pdf: please select a non-empty solution PDF file"}, view.errors)
		assert.Equal(t, 0, fx.remote.count("CreateAssignment"))
	})

	t.Run("rejected", func(t *testing.T) {
		fx := setup(t, &faculty)
		fx.remote.created = failRes[coursework.Assignment]("Deadline must be in the future")
		view := &recordingView{}
		ctrl, ok := fx.portal.OpenCreateAssignment(context.Background(), view)
		require.True(t, ok)

		assert.False(t, ctrl.Submit(context.Background(), newAssignment()))
		assert.Equal(t, []string{"Deadline must be in the future"}, view.errors)
		assert.Empty(t, view.navs)
		assert.False(t, ctrl.Busy())
	})

	t.Run("published", func(t *testing.T) {
		fx := setup(t, &faculty)
		fx.remote.created = okRes(coursework.Assignment{ID: "a1", Title: "Midterm"})
		fx.remote.assignments = okRes([]coursework.Assignment{{ID: "a1", Title: "Midterm"}})
		view := &recordingView{}
		ctrl, ok := fx.portal.OpenCreateAssignment(context.Background(), view)
		require.True(t, ok)

		assert.True(t, ctrl.Submit(context.Background(), newAssignment()))
		assert.Equal(t, 1, fx.remote.count("CreateAssignment"))
		assert.Equal(t, []string{PublishedNotice}, view.notices)
		assert.Equal(t, []Navigation{{Page: PageFacultyDashboard}}, view.navs)

		sum := fx.portal.Sidebar().Cached(faculty)
		require.NotNil(t, sum)
		assert.Equal(t, 1, sum.Assignments)

		// the control stays disabled once the page was left
		assert.False(t, ctrl.Submit(context.Background(), newAssignment()))
		assert.Equal(t, 1, fx.remote.count("CreateAssignment"))
	})

	t.Run("sidebar refresh failed", func(t *testing.T) {
		fx := setup(t, &faculty)
		fx.remote.created = okRes(coursework.Assignment{ID: "a1"})
		stale, _ := json.Marshal(Summary{UserID: faculty.ID, Assignments: 7})
		require.NoError(t, fx.records.PutRecord(SummaryKey, stale))
		fx.remote.assignments = failRes[[]coursework.Assignment](remote.NetworkErrorMessage)
		view := &recordingView{}
		ctrl, ok := fx.portal.OpenCreateAssignment(context.Background(), view)
		require.True(t, ok)

		assert.True(t, ctrl.Submit(context.Background(), newAssignment()))
		assert.Nil(t, fx.portal.Sidebar().Cached(faculty), "stale summary invalidated")
		assert.Equal(t, []Navigation{{Page: PageFacultyDashboard}}, view.navs)
	})
}

func TestPaperCheckController_Submit(t *testing.T) {
	fx := setup(t, &faculty)
	fx.remote.checked = okRes(coursework.Paper{ID: "paper-123456"})
	view := &recordingView{}
	ctrl, ok := fx.portal.OpenPaperCheck(context.Background(), view)
	require.True(t, ok)

	assert.False(t, ctrl.Submit(context.Background(), coursework.PaperCheck{QuestionFile: testutil.PDF("q.pdf")}))
	assert.Equal(t, []string{"answer_pdf: please select a non-empty answer PDF file"}, view.errors)

	assert.True(t, ctrl.Submit(context.Background(), coursework.PaperCheck{
		QuestionFile: testutil.PDF("q.pdf"),
		AnswerFile:   testutil.PDF("a.pdf"),
	}))
	assert.Equal(t, 1, fx.remote.count("CheckPaper"))
	assert.Equal(t, []Navigation{{Page: PagePaperResult, ID: "paper-123456"}}, view.navs)
}

func assignments(n int) []coursework.Assignment {
	asgs := make([]coursework.Assignment, 0, n)
	for i := 1; i <= n; i++ {
		asgs = append(asgs, coursework.Assignment{
			ID:        "a" + strconv.Itoa(i),
			Title:     "Assignment " + strconv.Itoa(i),
			Questions: make([]coursework.Question, i%3),
		})
	}
	return asgs
}

func TestFacultyDashboard(t *testing.T) {
	fx := setup(t, &faculty)
	fx.remote.assignments = okRes(assignments(7))
	fx.remote.submissions = okRes([]coursework.Submission{
		{ID: "x1", AssignmentID: "a1", StudentID: "s1"},
		{ID: "x2", AssignmentID: "a1", StudentID: "s2"},
		{ID: "x3", AssignmentID: "a3", StudentID: "s1"},
		{ID: "x4", AssignmentID: "a7", StudentID: "s1"},
	})

	first, ok := fx.portal.OpenFacultyDashboard(context.Background(), &recordingView{})
	require.True(t, ok)
	second, ok := fx.portal.OpenFacultyDashboard(context.Background(), &recordingView{})
	require.True(t, ok)

	assert.Equal(t, first, second, "idempotent")
	assert.Equal(t, 7, first.TotalAssignments)
	assert.Equal(t, 4, first.TotalSubmissions)
	require.Len(t, first.Recent, 5)
	assert.Equal(t, 2, first.Recent[0].Submissions)
	assert.Equal(t, 0, first.Recent[1].Submissions)
	assert.Equal(t, 1, first.Recent[2].Submissions)
	assert.Equal(t, 1, first.Recent[0].Questions)
}

func TestFacultyDashboard_failure(t *testing.T) {
	fx := setup(t, &faculty)
	fx.remote.submissions = failRes[[]coursework.Submission](remote.NetworkErrorMessage)
	view := &recordingView{}

	_, ok := fx.portal.OpenFacultyDashboard(context.Background(), view)
	assert.False(t, ok)
	assert.Equal(t, []string{remote.NetworkErrorMessage}, view.errors)
	assert.Empty(t, view.models)
}

func TestStudentDashboard(t *testing.T) {
	fx := setup(t, &student)
	fx.remote.assignments = okRes(assignments(6))
	fx.remote.submissions = okRes([]coursework.Submission{
		{ID: "x1", AssignmentID: "a2", StudentID: student.ID},
		{ID: "x2", AssignmentID: "a2", StudentID: student.ID},
		{ID: "x3", AssignmentID: "a5", StudentID: "someone-else"},
	})
	view := &recordingView{}

	dash, ok := fx.portal.OpenStudentDashboard(context.Background(), view)
	require.True(t, ok)

	assert.Equal(t, 6, dash.Total)
	assert.Equal(t, 5, dash.Pending)
	assert.Equal(t, 1, dash.Completed)
	assert.Equal(t, dash.Total, dash.Pending+dash.Completed)
	require.Len(t, dash.Preview, 3)
	assert.Equal(t, []string{"a1", "a3", "a4"}, []string{dash.Preview[0].ID, dash.Preview[1].ID, dash.Preview[2].ID})
	assert.Equal(t, []interface{}{dash}, view.models)
}

func TestPortal_Dashboard(t *testing.T) {
	fx := setup(t, &faculty)
	view := &recordingView{}
	assert.True(t, fx.portal.Dashboard(context.Background(), view))
	require.Len(t, view.models, 1)
	assert.IsType(t, FacultyDashboard{}, view.models[0])
}

func TestAssignmentsController(t *testing.T) {
	fx := setup(t, &student)
	fx.remote.assignments = okRes(assignments(2))
	fx.remote.submissions = okRes([]coursework.Submission{{ID: "x9", AssignmentID: "a2", StudentID: student.ID}})

	page, ok := fx.portal.OpenAssignments(context.Background(), &recordingView{})
	require.True(t, ok)
	require.Len(t, page.Rows, 2)
	assert.False(t, page.Rows[0].Submitted)
	assert.Equal(t, Navigation{Page: PageSubmitAssignment, ID: "a1"}, page.Rows[0].Next)
	assert.True(t, page.Rows[1].Submitted)
	assert.Equal(t, Navigation{Page: PageResult, ID: "x9"}, page.Rows[1].Next)
}

func TestAssignmentSubmissionsController(t *testing.T) {
	fx := setup(t, &faculty)
	fx.remote.assignment = okRes(coursework.Assignment{ID: "a1", Title: "Midterm"})
	fx.remote.forAsg = okRes([]coursework.Submission{
		{ID: "x1", StudentID: "s1", SubmissionPDF: "x1.pdf", AiResult: &coursework.AiResult{TotalMarks: testutil.Float(18), MaxMarks: testutil.Float(20), Grade: "A"}},
		{ID: "x2", StudentID: "s2"},
	})

	page, ok := fx.portal.OpenAssignmentSubmissions(context.Background(), &recordingView{}, "a1")
	require.True(t, ok)
	assert.Equal(t, "Midterm", page.Assignment.Title)
	assert.Equal(t, 2, page.Assignment.Submissions)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "18/20", page.Rows[0].Grading.Score)
	assert.Equal(t, coursework.TierPositive, page.Rows[0].Grading.Tier)
	assert.Equal(t, "http://files/x1.pdf", page.Rows[0].AnswerURL)
	assert.Equal(t, "not yet graded", page.Rows[1].Grading.Score)
	assert.Equal(t, coursework.TierNegative, page.Rows[1].Grading.Tier)
	assert.Empty(t, page.Rows[1].AnswerURL)
}

func TestSubmissionController(t *testing.T) {
	asg := coursework.Assignment{
		ID:          "a1",
		Title:       "Midterm",
		QuestionPDF: "q.pdf",
		Questions:   []coursework.Question{{ID: "q1", Text: "Prove it", MaxMarks: 10}},
	}

	t.Run("already submitted", func(t *testing.T) {
		fx := setup(t, &student)
		fx.remote.assignment = okRes(asg)
		fx.remote.submissions = okRes([]coursework.Submission{{ID: "x1", AssignmentID: "a1", StudentID: student.ID}})
		view := &recordingView{}

		ctrl, ok := fx.portal.OpenSubmission(context.Background(), view, "a1")
		assert.False(t, ok)
		assert.Nil(t, ctrl)
		assert.Equal(t, []Navigation{{Page: PageResult, ID: "x1"}}, view.navs)
		assert.Empty(t, view.models, "form never shown")
	})

	t.Run("unknown assignment", func(t *testing.T) {
		fx := setup(t, &student)
		fx.remote.assignment = failRes[coursework.Assignment]("Assignment not found")
		view := &recordingView{}

		_, ok := fx.portal.OpenSubmission(context.Background(), view, "nope")
		assert.False(t, ok)
		assert.Equal(t, []string{"Assignment not found"}, view.notices)
		assert.Equal(t, []Navigation{{Page: PageStudentDashboard}}, view.navs)
	})

	t.Run("declined confirmation", func(t *testing.T) {
		fx := setup(t, &student)
		fx.remote.assignment = okRes(asg)
		view := &recordingView{confirm: false}

		ctrl, ok := fx.portal.OpenSubmission(context.Background(), view, "a1")
		require.True(t, ok)
		assert.False(t, ctrl.Submit(context.Background(), testutil.PDF("answer.pdf")))
		assert.Equal(t, 1, view.confirmed)
		assert.Equal(t, 0, fx.remote.count("SubmitAssignment"))
	})

	t.Run("no file", func(t *testing.T) {
		fx := setup(t, &student)
		fx.remote.assignment = okRes(asg)
		view := &recordingView{confirm: true}

		ctrl, ok := fx.portal.OpenSubmission(context.Background(), view, "a1")
		require.True(t, ok)
		assert.False(t, ctrl.Submit(context.Background(), nil))
		assert.Equal(t, []string{"sub_pdf: please select a non-empty answer PDF file"}, view.errors)
		assert.Equal(t, 0, view.confirmed)
		assert.Equal(t, 0, fx.remote.count("SubmitAssignment"))
	})

	t.Run("unlabeled question", func(t *testing.T) {
		fx := setup(t, &student)
		bare := asg
		bare.Questions = []coursework.Question{asg.Questions[0], {MaxMarks: 5}}
		fx.remote.assignment = okRes(bare)
		view := &recordingView{}

		_, ok := fx.portal.OpenSubmission(context.Background(), view, "a1")
		require.True(t, ok)
		require.Len(t, view.models, 1)
		assert.Equal(t, []QuestionRow{
			{Number: 1, Text: "Prove it", MaxMarks: 10},
			{Number: 2, Text: "Question 2", MaxMarks: 5},
		}, view.models[0].(SubmissionForm).Questions)
	})

	t.Run("duplicate rejected by the server", func(t *testing.T) {
		fx := setup(t, &student)
		fx.remote.assignment = okRes(asg)
		fx.remote.submitted = failRes[coursework.Submission]("Assignment already submitted")
		view := &recordingView{confirm: true}

		ctrl, ok := fx.portal.OpenSubmission(context.Background(), view, "a1")
		require.True(t, ok)
		assert.False(t, ctrl.Submit(context.Background(), testutil.PDF("answer.pdf")))
		assert.Equal(t, []string{"Assignment already submitted"}, view.errors)
		assert.Empty(t, view.navs)
	})

	t.Run("submitted", func(t *testing.T) {
		fx := setup(t, &student)
		fx.remote.assignment = okRes(asg)
		fx.remote.submitted = okRes(coursework.Submission{ID: "x2", AssignmentID: "a1", StudentID: student.ID})
		view := &recordingView{confirm: true}

		ctrl, ok := fx.portal.OpenSubmission(context.Background(), view, "a1")
		require.True(t, ok)
		require.Len(t, view.models, 1)
		form := view.models[0].(SubmissionForm)
		assert.Equal(t, "http://files/q.pdf", form.QuestionURL)
		assert.Equal(t, []QuestionRow{{Number: 1, Text: "Prove it", MaxMarks: 10}}, form.Questions)

		// the sidebar sees the new submission before the page is left
		fx.remote.submissions = okRes([]coursework.Submission{{ID: "x2", AssignmentID: "a1", StudentID: student.ID}})
		fx.remote.assignments = okRes([]coursework.Assignment{asg})

		assert.True(t, ctrl.Submit(context.Background(), testutil.PDF("answer.pdf")))
		assert.Equal(t, 1, fx.remote.count("SubmitAssignment"))
		assert.Equal(t, []Navigation{{Page: PageResult, ID: "x2"}}, view.navs)
		sum := fx.portal.Sidebar().Cached(student)
		require.NotNil(t, sum)
		assert.Equal(t, 0, sum.Pending)
		assert.Equal(t, 1, sum.Completed)
	})
}

func TestResultController(t *testing.T) {
	t.Run("ungraded", func(t *testing.T) {
		fx := setup(t, &student)
		fx.remote.submission = okRes(coursework.Submission{ID: "x1", AssignmentID: "a1", SubmittedAt: "2026-10-01T10:00:00Z"})
		fx.remote.assignment = okRes(coursework.Assignment{ID: "a1", Title: "Midterm"})

		page, ok := fx.portal.OpenResult(context.Background(), &recordingView{}, "x1")
		require.True(t, ok)
		assert.Equal(t, "Midterm", page.AssignmentTitle)
		assert.Equal(t, "2026-10-01", page.SubmittedAt)
		assert.False(t, page.Grading.Graded)
		assert.Equal(t, "not yet graded", page.Grading.Score)
		assert.Equal(t, "not yet graded", page.Grading.Plagiarism)
		assert.Equal(t, "-", page.Grading.Grade)
		assert.Equal(t, "No feedback available.", page.Grading.Feedback)
	})

	t.Run("assignment gone", func(t *testing.T) {
		fx := setup(t, &student)
		fx.remote.submission = okRes(coursework.Submission{ID: "x1", AssignmentID: "a1", AiResult: &coursework.AiResult{Grade: "C", TotalMarks: testutil.Float(7)}})
		fx.remote.assignment = failRes[coursework.Assignment]("Assignment not found")

		page, ok := fx.portal.OpenResult(context.Background(), &recordingView{}, "x1")
		require.True(t, ok)
		assert.Empty(t, page.AssignmentTitle)
		assert.Equal(t, "7/-", page.Grading.Score)
		assert.Equal(t, coursework.TierNeutral, page.Grading.Tier)
	})

	t.Run("no id", func(t *testing.T) {
		fx := setup(t, &student)
		view := &recordingView{}
		_, ok := fx.portal.OpenResult(context.Background(), view, "")
		assert.False(t, ok)
		assert.Equal(t, []string{"No submission ID provided."}, view.errors)
		assert.Equal(t, 0, fx.remote.count("GetSubmission"))
	})
}

func TestPapers(t *testing.T) {
	fx := setup(t, &faculty)
	fx.remote.papers = okRes([]coursework.Paper{{ID: "paper-abcdef123", CreatedAt: "2026-10-02"}})
	fx.remote.paper = okRes(coursework.Paper{ID: "paper-abcdef123", QuestionPDF: "q.pdf", AnswerPDF: "a.pdf",
		Result: &coursework.AiResult{Grade: "b", TotalMarks: testutil.Float(8), MaxMarks: testutil.Float(10)}})

	list, ok := fx.portal.OpenPapers(context.Background(), &recordingView{})
	require.True(t, ok)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, "def123", list.Rows[0].ShortID)
	assert.Equal(t, "2026-10-02", list.Rows[0].Date)

	paper, ok := fx.portal.OpenPaperResult(context.Background(), &recordingView{}, "paper-abcdef123")
	require.True(t, ok)
	assert.Equal(t, "8/10", paper.Grading.Score)
	assert.Equal(t, coursework.TierPositive, paper.Grading.Tier)
	assert.Equal(t, "http://files/q.pdf", paper.QuestionURL)
	assert.Equal(t, "http://files/a.pdf", paper.AnswerURL)
}

func TestNew_missingCollaborator(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
