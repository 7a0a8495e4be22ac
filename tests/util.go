package testutil

import (
	"path/filepath"
	"sync"
	"testing"

	"go.etcd.io/bbolt"

	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/storage/boltdb"
)

// OpenBoltDB opens a fresh state database that is closed when t ends.
func OpenBoltDB(t *testing.T) *bbolt.DB {
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenBoltDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Float(f float64) *float64 { return &f }

// PDF returns a selected upload named name.
func PDF(name string) *coursework.Upload {
	return &coursework.Upload{Filename: name, Data: []byte("%PDF-1.4 " + name)}
}

// Logger records messages instead of printing them.
type Logger struct {
	mu       sync.Mutex
	Messages []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, level+": "+msg)
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.record("debug", msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.record("info", msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.record("warn", msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.record("error", msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.record("fatal", msg) }
