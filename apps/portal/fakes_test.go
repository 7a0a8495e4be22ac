package portal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
	"github.com/trezcool/gradedesk/services/remote"
	"github.com/trezcool/gradedesk/storage/inmem"
	"github.com/trezcool/gradedesk/tests"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

var (
	faculty = session.Session{ID: "f1", Username: "prof", Name: "Prof X", Role: session.RoleFaculty, Department: "CS"}
	student = session.Session{ID: "s1", Username: "stud", Name: "Stu Dent", Role: session.RoleStudent, Semester: "5"}
)

func okRes[T any](data T) remote.Result[T]       { return remote.Result[T]{Success: true, Data: data} }
func failRes[T any](msg string) remote.Result[T] { return remote.Result[T]{Message: msg} }

// fakeRemote answers from its fields and counts calls per method.
type fakeRemote struct {
	mu    sync.Mutex
	calls map[string]int

	login       remote.Result[session.Session]
	register    remote.Result[session.Session]
	current     remote.Result[session.Session]
	assignments remote.Result[[]coursework.Assignment]
	assignment  remote.Result[coursework.Assignment]
	forAsg      remote.Result[[]coursework.Submission]
	created     remote.Result[coursework.Assignment]
	submissions remote.Result[[]coursework.Submission]
	submission  remote.Result[coursework.Submission]
	submitted   remote.Result[coursework.Submission]
	checked     remote.Result[coursework.Paper]
	papers      remote.Result[[]coursework.Paper]
	paper       remote.Result[coursework.Paper]

	// block, when set, is waited on inside write calls.
	block chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		calls:       map[string]int{},
		assignments: okRes([]coursework.Assignment{}),
		submissions: okRes([]coursework.Submission{}),
	}
}

func (f *fakeRemote) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeRemote) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRemote) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeRemote) wait() {
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeRemote) Login(context.Context, session.Credentials) remote.Result[session.Session] {
	f.hit("Login")
	f.wait()
	return f.login
}

func (f *fakeRemote) Register(context.Context, session.NewAccount) remote.Result[session.Session] {
	f.hit("Register")
	return f.register
}

func (f *fakeRemote) Logout(context.Context) remote.Result[struct{}] {
	f.hit("Logout")
	return failRes[struct{}](remote.NetworkErrorMessage)
}

func (f *fakeRemote) Current(context.Context) remote.Result[session.Session] {
	f.hit("Current")
	return f.current
}

func (f *fakeRemote) ListAssignments(context.Context) remote.Result[[]coursework.Assignment] {
	f.hit("ListAssignments")
	return f.assignments
}

func (f *fakeRemote) GetAssignment(context.Context, string) remote.Result[coursework.Assignment] {
	f.hit("GetAssignment")
	return f.assignment
}

func (f *fakeRemote) ListSubmissionsForAssignment(context.Context, string) remote.Result[[]coursework.Submission] {
	f.hit("ListSubmissionsForAssignment")
	return f.forAsg
}

func (f *fakeRemote) CreateAssignment(context.Context, coursework.NewAssignment) remote.Result[coursework.Assignment] {
	f.hit("CreateAssignment")
	f.wait()
	return f.created
}

func (f *fakeRemote) ListSubmissions(context.Context) remote.Result[[]coursework.Submission] {
	f.hit("ListSubmissions")
	return f.submissions
}

func (f *fakeRemote) GetSubmission(context.Context, string) remote.Result[coursework.Submission] {
	f.hit("GetSubmission")
	return f.submission
}

func (f *fakeRemote) SubmitAssignment(context.Context, coursework.NewSubmission) remote.Result[coursework.Submission] {
	f.hit("SubmitAssignment")
	f.wait()
	return f.submitted
}

func (f *fakeRemote) CheckPaper(context.Context, coursework.PaperCheck) remote.Result[coursework.Paper] {
	f.hit("CheckPaper")
	return f.checked
}

func (f *fakeRemote) ListPapers(context.Context) remote.Result[[]coursework.Paper] {
	f.hit("ListPapers")
	return f.papers
}

func (f *fakeRemote) GetPaper(context.Context, string) remote.Result[coursework.Paper] {
	f.hit("GetPaper")
	return f.paper
}

func (f *fakeRemote) FileURL(name string) string { return "http://files/" + name }

// recordingView keeps everything a page displayed.
type recordingView struct {
	mu        sync.Mutex
	notices   []string
	errors    []string
	busy      []bool
	models    []interface{}
	navs      []Navigation
	confirm   bool
	confirmed int
	events    []string
}

func (v *recordingView) log(ev string) { v.events = append(v.events, ev) }

func (v *recordingView) Notice(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, msg)
	v.log("notice")
}

func (v *recordingView) Error(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, msg)
	v.log("error")
}

func (v *recordingView) Busy(_ string, busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = append(v.busy, busy)
	v.log("busy")
}

func (v *recordingView) Confirm(string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.confirmed++
	v.log("confirm")
	return v.confirm
}

func (v *recordingView) Render(model interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.models = append(v.models, model)
	v.log("render")
}

func (v *recordingView) Navigate(nav Navigation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.navs = append(v.navs, nav)
	v.log("navigate")
}

func (v *recordingView) lastNav() (Navigation, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.navs) == 0 {
		return Navigation{}, false
	}
	return v.navs[len(v.navs)-1], true
}

type fixture struct {
	portal  *Portal
	remote  *fakeRemote
	store   *session.Store
	records *inmemdb.RecordRepository
	logger  *testutil.Logger
}

func setup(t *testing.T, signedIn *session.Session) fixture {
	t.Helper()
	records := inmemdb.NewRecordRepository(inmemdb.Open())
	store := session.NewStore(records)
	if signedIn != nil {
		if err := store.Save(signedIn); err != nil {
			t.Fatalf("setup() failed: %v", err)
		}
	}

	rmt := newFakeRemote()
	if signedIn != nil {
		rmt.current = okRes(*signedIn)
	} else {
		rmt.current = failRes[session.Session]("Not authenticated")
	}

	logger := &testutil.Logger{}
	sidebar, err := NewSidebar(records, rmt, logger)
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	session.InitValidators(validate, translator)
	coursework.InitValidators(validate, translator)

	p, err := New(Options{
		Store:      store,
		Remote:     rmt,
		Sidebar:    sidebar,
		Validate:   validate,
		Translator: translator,
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return fixture{portal: p, remote: rmt, store: store, records: records, logger: logger}
}
