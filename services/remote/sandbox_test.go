package remote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sandboxapi "github.com/trezcool/gradedesk/apps/sandbox/api"
	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
	"github.com/trezcool/gradedesk/services/remote"
	"github.com/trezcool/gradedesk/storage/boltdb"
	"github.com/trezcool/gradedesk/tests"
)

type sandbox struct {
	url    string
	logger *testutil.Logger
}

func startSandbox(t *testing.T) sandbox {
	t.Helper()
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	session.InitValidators(validate, translator)

	logger := &testutil.Logger{}
	srv := httptest.NewServer(sandboxapi.NewServer(&sandboxapi.Options{
		AppName:        "GradeDesk",
		SecretKey:      "test-secret",
		TestMode:       true,
		DisableReqLogs: true,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
	}))
	t.Cleanup(srv.Close)
	return sandbox{url: srv.URL, logger: logger}
}

// newClient returns a client whose cookies live in its own state file.
func (sb sandbox) newClient(t *testing.T) (*remote.Client, *boltdb.CookieJar) {
	t.Helper()
	jar, err := boltdb.NewCookieJar(testutil.OpenBoltDB(t), &testutil.Logger{})
	require.NoError(t, err)
	return remote.NewClient(sb.url+"/api", &http.Client{Jar: jar}, &testutil.Logger{}), jar
}

func TestClient_sandboxFlow(t *testing.T) {
	ctx := context.Background()
	sb := startSandbox(t)
	fac, facJar := sb.newClient(t)
	stu, _ := sb.newClient(t)

	// registration
	reg := fac.Register(ctx, session.NewAccount{Name: "Ada Lovelace", Username: "ada", Password: "Engines#1843", Role: session.RoleFaculty, Department: "CS"})
	require.True(t, reg.Success, reg.Message)
	assert.Equal(t, "Ada Lovelace", reg.Data.Name)

	dup := fac.Register(ctx, session.NewAccount{Username: "ada", Password: "Engines#1843", Role: session.RoleFaculty})
	assert.False(t, dup.Success)
	assert.Equal(t, "Username already exists", dup.Message)

	reg = stu.Register(ctx, session.NewAccount{Username: "bob", Password: "Turing*1936", Role: session.RoleStudent, Semester: "4"})
	require.True(t, reg.Success, reg.Message)

	// unauthenticated access
	cur := fac.Current(ctx)
	assert.False(t, cur.Success)
	assert.Equal(t, "Not authenticated", cur.Message)

	// login
	bad := fac.Login(ctx, session.Credentials{Username: "ada", Password: "nope", Role: session.RoleFaculty})
	assert.False(t, bad.Success)
	assert.Equal(t, "Invalid credentials", bad.Message)

	mismatch := fac.Login(ctx, session.Credentials{Username: "ada", Password: "Engines#1843", Role: session.RoleStudent})
	assert.False(t, mismatch.Success)
	assert.Equal(t, "Role mismatch", mismatch.Message)

	login := fac.Login(ctx, session.Credentials{Username: "ada", Password: "Engines#1843", Role: session.RoleFaculty})
	require.True(t, login.Success, login.Message)
	login = stu.Login(ctx, session.Credentials{Username: "bob", Password: "Turing*1936", Role: session.RoleStudent})
	require.True(t, login.Success, login.Message)
	bobID := login.Data.ID

	cur = fac.Current(ctx)
	require.True(t, cur.Success, cur.Message)
	assert.Equal(t, "ada", cur.Data.Username)
	assert.Equal(t, "CS", cur.Data.Department)

	// role enforcement
	forbidden := stu.CreateAssignment(ctx, coursework.NewAssignment{
		Title: "x", Subject: "y", Deadline: "2026-12-01",
		QuestionFile: testutil.PDF("q.pdf"), SolutionFile: testutil.PDF("s.pdf"),
	})
	assert.False(t, forbidden.Success)
	assert.Equal(t, "Insufficient permissions", forbidden.Message)

	// publish
	created := fac.CreateAssignment(ctx, coursework.NewAssignment{
		Title: "Midterm", Subject: "Algorithms", Deadline: "2026-12-01",
		QuestionFile: testutil.PDF("q.pdf"), SolutionFile: testutil.PDF("s.pdf"),
	})
	require.True(t, created.Success, created.Message)
	asg := created.Data
	assert.NotEmpty(t, asg.ID)
	assert.NotEmpty(t, asg.Questions)

	asgs := stu.ListAssignments(ctx)
	require.True(t, asgs.Success, asgs.Message)
	require.Len(t, asgs.Data, 1)
	assert.Equal(t, "Midterm", asgs.Data[0].Title)

	one := stu.GetAssignment(ctx, asg.ID)
	require.True(t, one.Success, one.Message)
	assert.Equal(t, asg.ID, one.Data.ID)

	missing := stu.GetAssignment(ctx, "nope")
	assert.False(t, missing.Success)
	assert.Equal(t, "Assignment not found", missing.Message)

	// submit
	subs := stu.ListSubmissions(ctx)
	require.True(t, subs.Success, subs.Message)
	assert.Empty(t, subs.Data)

	sub := stu.SubmitAssignment(ctx, coursework.NewSubmission{AssignmentID: asg.ID, StudentID: bobID, AnswerFile: testutil.PDF("answer.pdf")})
	require.True(t, sub.Success, sub.Message)
	assert.True(t, sub.Data.AiResult.Graded())
	assert.NotEmpty(t, sub.Data.AiResult.Grade)

	again := stu.SubmitAssignment(ctx, coursework.NewSubmission{AssignmentID: asg.ID, StudentID: bobID, AnswerFile: testutil.PDF("answer.pdf")})
	assert.False(t, again.Success)
	assert.Equal(t, "Assignment already submitted", again.Message)

	got := stu.GetSubmission(ctx, sub.Data.ID)
	require.True(t, got.Success, got.Message)
	assert.Equal(t, asg.ID, got.Data.AssignmentID)

	forAsg := fac.ListSubmissionsForAssignment(ctx, asg.ID)
	require.True(t, forAsg.Success, forAsg.Message)
	require.Len(t, forAsg.Data, 1)
	assert.Equal(t, bobID, forAsg.Data[0].StudentID)

	facSubs := fac.ListSubmissions(ctx)
	require.True(t, facSubs.Success, facSubs.Message)
	assert.Len(t, facSubs.Data, 1)

	// papers
	paper := fac.CheckPaper(ctx, coursework.PaperCheck{QuestionFile: testutil.PDF("q.pdf"), AnswerFile: testutil.PDF("a.pdf")})
	require.True(t, paper.Success, paper.Message)
	papers := fac.ListPapers(ctx)
	require.True(t, papers.Success, papers.Message)
	require.Len(t, papers.Data, 1)
	p := fac.GetPaper(ctx, paper.Data.ID)
	require.True(t, p.Success, p.Message)
	assert.Equal(t, paper.Data.ID, p.Data.ID)

	// the session cookie is in the jar until logout
	u, err := url.Parse(sb.url)
	require.NoError(t, err)
	assert.NotEmpty(t, facJar.Cookies(u))

	// logout
	out := fac.Logout(ctx)
	assert.True(t, out.Success, out.Message)
	assert.Empty(t, facJar.Cookies(u))
	cur = fac.Current(ctx)
	assert.False(t, cur.Success)
	assert.Equal(t, "Not authenticated", cur.Message)
}

func TestClient_sandboxPersistedLogin(t *testing.T) {
	ctx := context.Background()
	sb := startSandbox(t)
	db := testutil.OpenBoltDB(t)

	jar, err := boltdb.NewCookieJar(db, &testutil.Logger{})
	require.NoError(t, err)
	c := remote.NewClient(sb.url+"/api", &http.Client{Jar: jar}, nil)

	require.True(t, c.Register(ctx, session.NewAccount{Username: "carol", Password: "Hopper!1952", Role: session.RoleStudent}).Success)
	require.True(t, c.Login(ctx, session.Credentials{Username: "carol", Password: "Hopper!1952", Role: session.RoleStudent}).Success)

	// a restarted client reads the same state file
	reloaded, err := boltdb.NewCookieJar(db, &testutil.Logger{})
	require.NoError(t, err)
	c = remote.NewClient(sb.url+"/api", &http.Client{Jar: reloaded}, nil)

	cur := c.Current(ctx)
	require.True(t, cur.Success, cur.Message)
	assert.Equal(t, "carol", cur.Data.Username)

	require.NoError(t, reloaded.Clear())
	cur = c.Current(ctx)
	assert.False(t, cur.Success)
}
