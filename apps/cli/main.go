package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/gradedesk/apps/portal"
	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
	logsvc "github.com/trezcool/gradedesk/services/logger"
	"github.com/trezcool/gradedesk/services/remote"
	"github.com/trezcool/gradedesk/storage/boltdb"
)

func main() {
	os.Exit(run())
}

func run() int {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "GRADEDESK : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := boltdb.Open(conf.StatePath())
	if err != nil {
		logger.Error(fmt.Sprintf("opening state: %v", err), err)
		return 1
	}
	defer func() { _ = db.Close() }()

	cli, err := newCommandLine(db, conf.APIBaseURL, conf.RequestTimeout, logger, os.Stdout, os.Stdin)
	if err != nil {
		logger.Error(err.Error(), err)
		return 1
	}

	// =========================================================================
	// Start CLI

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp && err != errAborted {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		return 1
	}
	return 0
}

// newCommandLine wires the pages over the state in db and the API at baseURL.
func newCommandLine(db *bbolt.DB, baseURL string, timeout time.Duration, logger core.Logger, out io.Writer, in io.Reader) (*commandLine, error) {
	jar, err := boltdb.NewCookieJar(db, logger)
	if err != nil {
		return nil, errors.Wrap(err, "loading cookies")
	}
	httpClient := &http.Client{Jar: jar, Timeout: timeout}
	rmt := remote.NewClient(baseURL, httpClient, logger)

	records := boltdb.NewRecordRepository(db)
	sidebar, err := portal.NewSidebar(records, rmt, logger)
	if err != nil {
		return nil, err
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	session.InitValidators(validate, translator)
	coursework.InitValidators(validate, translator)

	p, err := portal.New(portal.Options{
		Store:      session.NewStore(records),
		Remote:     rmt,
		Sidebar:    sidebar,
		Validate:   validate,
		Translator: translator,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	return &commandLine{
		portal: p,
		remote: rmt,
		http:   httpClient,
		jar:    jar,
		out:    out,
		in:     bufio.NewReader(in),
	}, nil
}
