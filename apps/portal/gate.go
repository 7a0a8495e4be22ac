package portal

import (
	"context"
	"sync"

	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/session"
)

type GateState int

const (
	GateUnchecked GateState = iota
	GateChecking
	GateAuthorized
	GateRejected
)

func (s GateState) String() string {
	switch s {
	case GateChecking:
		return "checking"
	case GateAuthorized:
		return "authorized"
	case GateRejected:
		return "rejected"
	default:
		return "unchecked"
	}
}

const UnauthorizedNotice = "Unauthorized access"

// Gate decides whether a page may run. It is used once per page.
type Gate struct {
	store  *session.Store
	remote Remote
	screen *Screen
	logger core.Logger

	mu     sync.Mutex
	state  GateState
	result session.Session
}

func NewGate(store *session.Store, rmt Remote, screen *Screen, logger core.Logger) (*Gate, error) {
	if store == nil || rmt == nil || screen == nil || logger == nil {
		return nil, errMissing("gate")
	}
	return &Gate{store: store, remote: rmt, screen: screen, logger: logger}, nil
}

func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Require returns the server-confirmed identity and true when the page may run.
// requiredRole may be empty to admit any authenticated user. On rejection the
// screen has already been navigated away. Later calls return the first outcome.
func (g *Gate) Require(ctx context.Context, requiredRole string) (session.Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case GateAuthorized:
		return g.result, true
	case GateRejected, GateChecking:
		return session.Session{}, false
	}
	g.state = GateChecking

	stored := g.store.Load()
	if stored == nil {
		return g.reject(PageLogin)
	}

	res := g.remote.Current(ctx)
	if !res.Success {
		g.clear()
		return g.reject(PageLogin)
	}

	if res.Data.Role != stored.Role {
		g.logger.Warn("role changed on revalidation, dropping session", *stored)
		g.clear()
		return g.reject(PageLogin)
	}

	fresh := stored.Merge(res.Data)
	if err := g.store.Save(&fresh); err != nil {
		g.logger.Error("saving refreshed session", err, fresh)
	}

	if requiredRole != "" && fresh.Role != requiredRole {
		g.screen.Notice(UnauthorizedNotice)
		return g.reject(DashboardFor(fresh.Role))
	}

	g.state = GateAuthorized
	g.result = fresh
	return fresh, true
}

func (g *Gate) clear() {
	if err := g.store.Clear(); err != nil {
		g.logger.Error("clearing session", err)
	}
}

func (g *Gate) reject(to Page) (session.Session, bool) {
	g.state = GateRejected
	g.screen.Navigate(Navigation{Page: to})
	return session.Session{}, false
}
