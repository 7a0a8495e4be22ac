package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/gradedesk/apps/portal"
	"github.com/trezcool/gradedesk/core/coursework"
)

// maxHops bounds how many navigations a single command follows.
const maxHops = 3

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
	// errAborted is returned when the page already told the user what went wrong.
	errAborted = errors.New("aborted")
)

type cookieClearer interface {
	Clear() error
}

type commandLine struct {
	portal *portal.Portal
	remote portal.Remote
	http   *http.Client
	jar    cookieClearer

	out io.Writer
	in  *bufio.Reader
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME -role faculty|student      - sign in (password is prompted)")
	fmt.Fprintln(cli.out, "  register -username USERNAME -role ROLE [-name ...]  - create an account")
	fmt.Fprintln(cli.out, "  logout                                             - sign out")
	fmt.Fprintln(cli.out, "  whoami                                             - show the signed in user")
	fmt.Fprintln(cli.out, "  dashboard                                          - open your dashboard")
	fmt.Fprintln(cli.out, "  assignments                                        - list assignments and their status (student)")
	fmt.Fprintln(cli.out, "  submit -id ASSIGNMENT [-file ANSWER.pdf] [-yes]    - show or submit an assignment (student)")
	fmt.Fprintln(cli.out, "  result -id SUBMISSION                              - show a graded submission")
	fmt.Fprintln(cli.out, "  create-assignment -title ... -question Q.pdf -solution S.pdf - publish an assignment (faculty)")
	fmt.Fprintln(cli.out, "  submissions -id ASSIGNMENT                         - list submissions to an assignment (faculty)")
	fmt.Fprintln(cli.out, "  check-paper -question Q.pdf -answer A.pdf          - grade a paper (faculty)")
	fmt.Fprintln(cli.out, "  papers                                             - list checked papers (faculty)")
	fmt.Fprintln(cli.out, "  paper -id PAPER                                    - show a checked paper (faculty)")
	fmt.Fprintln(cli.out, "  file -name FILE [-out PATH]                        - print the URL of a stored file, or download it")
}

func (cli *commandLine) newView() *terminalView {
	return &terminalView{out: cli.out, in: cli.in}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "login":
		return cli.login(ctx, rest)
	case "register":
		return cli.register(ctx, rest)
	case "logout":
		return cli.logout(ctx)
	case "whoami":
		return cli.page(ctx, func(v *terminalView) bool {
			_, ok := cli.portal.WhoAmI(ctx, v)
			return ok
		})
	case "dashboard":
		return cli.page(ctx, func(v *terminalView) bool {
			return cli.portal.Dashboard(ctx, v)
		})
	case "assignments":
		return cli.page(ctx, func(v *terminalView) bool {
			_, ok := cli.portal.OpenAssignments(ctx, v)
			return ok
		})
	case "submit":
		return cli.submit(ctx, rest)
	case "result":
		return cli.withID(ctx, cmd, rest, "The submission ID.", func(v *terminalView, id string) bool {
			_, ok := cli.portal.OpenResult(ctx, v, id)
			return ok
		})
	case "create-assignment":
		return cli.createAssignment(ctx, rest)
	case "submissions":
		return cli.withID(ctx, cmd, rest, "The assignment ID.", func(v *terminalView, id string) bool {
			_, ok := cli.portal.OpenAssignmentSubmissions(ctx, v, id)
			return ok
		})
	case "check-paper":
		return cli.checkPaper(ctx, rest)
	case "papers":
		return cli.page(ctx, func(v *terminalView) bool {
			_, ok := cli.portal.OpenPapers(ctx, v)
			return ok
		})
	case "paper":
		return cli.withID(ctx, cmd, rest, "The paper ID.", func(v *terminalView, id string) bool {
			_, ok := cli.portal.OpenPaperResult(ctx, v, id)
			return ok
		})
	case "file":
		return cli.file(ctx, rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

// page runs open on a fresh view, then follows wherever the page navigated.
func (cli *commandLine) page(ctx context.Context, open func(v *terminalView) bool) error {
	v := cli.newView()
	ok := open(v)
	cli.follow(ctx, v.next)
	if !ok {
		return errAborted
	}
	return nil
}

func (cli *commandLine) withID(ctx context.Context, name string, args []string, usage string, open func(v *terminalView, id string) bool) error {
	fs := cli.newFlagSet(name)
	id := fs.String("id", "", usage)
	if err := parse(fs, args); err != nil {
		return err
	}
	// an empty ID is left to the page, which explains it
	return cli.page(ctx, func(v *terminalView) bool { return open(v, *id) })
}

// follow renders the pages a command navigated to. Pages that need input are
// not opened; the matching command is suggested instead.
func (cli *commandLine) follow(ctx context.Context, nav *portal.Navigation) {
	for hops := 0; nav != nil && hops < maxHops; hops++ {
		v := cli.newView()
		switch nav.Page {
		case portal.PageFacultyDashboard:
			cli.portal.OpenFacultyDashboard(ctx, v)
		case portal.PageStudentDashboard:
			cli.portal.OpenStudentDashboard(ctx, v)
		case portal.PageAssignments:
			cli.portal.OpenAssignments(ctx, v)
		case portal.PageAssignmentSubmissions:
			cli.portal.OpenAssignmentSubmissions(ctx, v, nav.ID)
		case portal.PagePapers:
			cli.portal.OpenPapers(ctx, v)
		case portal.PagePaperResult:
			cli.portal.OpenPaperResult(ctx, v, nav.ID)
		case portal.PageResult:
			cli.portal.OpenResult(ctx, v, nav.ID)
		case portal.PageSubmitAssignment:
			cli.portal.OpenSubmission(ctx, v, nav.ID)
		default:
			fmt.Fprintf(cli.out, "Next: %s\n", hint(nav.Page))
			return
		}
		nav = v.next
	}
}

func hint(page portal.Page) string {
	switch page {
	case portal.PageLogin:
		return "login -username USERNAME -role faculty|student"
	case portal.PageRegister:
		return "register -username USERNAME -role faculty|student"
	case portal.PageCreateAssignment:
		return "create-assignment -title TITLE -subject SUBJECT -deadline DATE -question Q.pdf -solution S.pdf"
	case portal.PageCheckPaper:
		return "check-paper -question Q.pdf -answer A.pdf"
	default:
		return string(page)
	}
}

func (cli *commandLine) readPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}

// readUpload loads the file at path. An empty path selects nothing.
func readUpload(path string) (*coursework.Upload, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return &coursework.Upload{Filename: filepath.Base(path), Data: data}, nil
}
