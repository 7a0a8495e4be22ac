package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
)

func (cli *commandLine) login(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("login")
	uname := fs.String("username", "", "Your username. The password will be prompted next.")
	role := fs.String("role", "", "faculty or student.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *uname == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword()
	if err != nil {
		return err
	}
	if pwd == "" {
		fs.Usage()
		return errHelp
	}

	creds := session.Credentials{Username: *uname, Password: pwd, Role: *role}
	return cli.page(ctx, func(v *terminalView) bool {
		return cli.portal.OpenLogin(v).Submit(ctx, creds)
	})
}

func (cli *commandLine) register(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("register")
	acct := session.NewAccount{}
	fs.StringVar(&acct.Username, "username", "", "The username to sign in with. The password will be prompted next.")
	fs.StringVar(&acct.Role, "role", "", "faculty or student.")
	fs.StringVar(&acct.Name, "name", "", "Full name.")
	fs.StringVar(&acct.Department, "department", "", "Department (faculty).")
	fs.StringVar(&acct.Branch, "branch", "", "Branch (student).")
	fs.StringVar(&acct.Semester, "semester", "", "Semester (student).")
	if err := parse(fs, args); err != nil {
		return err
	}
	if acct.Username == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword()
	if err != nil {
		return err
	}
	if pwd == "" {
		fs.Usage()
		return errHelp
	}
	acct.Password = pwd

	return cli.page(ctx, func(v *terminalView) bool {
		return cli.portal.OpenRegister(v).Submit(ctx, acct)
	})
}

func (cli *commandLine) logout(ctx context.Context) error {
	v := cli.newView()
	cli.portal.Logout(ctx, v)
	if err := cli.jar.Clear(); err != nil {
		return errors.Wrap(err, "clearing cookies")
	}
	fmt.Fprintln(cli.out, "Signed out.")
	cli.follow(ctx, v.next)
	return nil
}

func (cli *commandLine) submit(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("submit")
	id := fs.String("id", "", "The assignment ID.")
	file := fs.String("file", "", "The answer PDF. Without it the assignment is only shown.")
	yes := fs.Bool("yes", false, "Do not ask for confirmation.")
	if err := parse(fs, args); err != nil {
		return err
	}
	answer, err := readUpload(*file)
	if err != nil {
		return err
	}

	return cli.page(ctx, func(v *terminalView) bool {
		v.assumeYes = *yes
		ctrl, ok := cli.portal.OpenSubmission(ctx, v, *id)
		if !ok || *file == "" {
			return ok
		}
		return ctrl.Submit(ctx, answer)
	})
}

func (cli *commandLine) createAssignment(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("create-assignment")
	na := coursework.NewAssignment{}
	fs.StringVar(&na.Title, "title", "", "Title of the assignment.")
	fs.StringVar(&na.Subject, "subject", "", "Subject.")
	fs.StringVar(&na.Description, "description", "", "Optional description.")
	fs.StringVar(&na.Deadline, "deadline", "", "Deadline, e.g. 2026-12-01.")
	question := fs.String("question", "", "The question paper PDF.")
	solution := fs.String("solution", "", "The solution PDF.")
	if err := parse(fs, args); err != nil {
		return err
	}

	var err error
	if na.QuestionFile, err = readUpload(*question); err != nil {
		return err
	}
	if na.SolutionFile, err = readUpload(*solution); err != nil {
		return err
	}

	return cli.page(ctx, func(v *terminalView) bool {
		ctrl, ok := cli.portal.OpenCreateAssignment(ctx, v)
		if !ok {
			return false
		}
		return ctrl.Submit(ctx, na)
	})
}

func (cli *commandLine) checkPaper(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("check-paper")
	question := fs.String("question", "", "The question paper PDF.")
	answer := fs.String("answer", "", "The answer PDF.")
	if err := parse(fs, args); err != nil {
		return err
	}

	var (
		pc  coursework.PaperCheck
		err error
	)
	if pc.QuestionFile, err = readUpload(*question); err != nil {
		return err
	}
	if pc.AnswerFile, err = readUpload(*answer); err != nil {
		return err
	}

	return cli.page(ctx, func(v *terminalView) bool {
		ctrl, ok := cli.portal.OpenPaperCheck(ctx, v)
		if !ok {
			return false
		}
		return ctrl.Submit(ctx, pc)
	})
}

func (cli *commandLine) file(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("file")
	name := fs.String("name", "", "The stored file name, as shown by other commands.")
	out := fs.String("out", "", "Where to save the file. Without it only the URL is printed.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *name == "" {
		fs.Usage()
		return errHelp
	}

	url := cli.remote.FileURL(*name)
	if *out == "" {
		fmt.Fprintln(cli.out, url)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	resp, err := cli.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "downloading %s", *name)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("downloading %s: %s", *name, resp.Status)
	}

	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrapf(err, "creating %s", *out)
	}
	if _, err = io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "writing %s", *out)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", *out)
	}
	fmt.Fprintf(cli.out, "Saved %s to %s\n", *name, *out)
	return nil
}
