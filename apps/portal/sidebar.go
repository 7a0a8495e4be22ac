package portal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/coursework"
	"github.com/trezcool/gradedesk/core/session"
)

// SummaryKey is the record the navigation summary is cached under.
const SummaryKey = "nav_summary"

var nowFunc = time.Now // mockable

// Summary is the navigation sidebar: who is signed in and how much work is open.
type Summary struct {
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Assignments int       `json:"assignments"`
	Pending     int       `json:"pending,omitempty"`
	Completed   int       `json:"completed,omitempty"`
	Submissions int       `json:"submissions,omitempty"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// Sidebar caches the Summary between pages.
type Sidebar struct {
	repo   session.Repository
	remote Remote
	logger core.Logger
}

func NewSidebar(repo session.Repository, rmt Remote, logger core.Logger) (*Sidebar, error) {
	if repo == nil || rmt == nil || logger == nil {
		return nil, errMissing("sidebar")
	}
	return &Sidebar{repo: repo, remote: rmt, logger: logger}, nil
}

// Cached returns the last stored summary for sess, or nil.
func (sb *Sidebar) Cached(sess session.Session) *Summary {
	blob, err := sb.repo.GetRecord(SummaryKey)
	if err != nil || len(blob) == 0 {
		return nil
	}
	var sum Summary
	if err = json.Unmarshal(blob, &sum); err != nil || sum.UserID != sess.ID {
		return nil
	}
	return &sum
}

// Refresh recomputes the summary of sess from the remote and caches it.
// When it cannot, the cache is invalidated so no stale counts are shown.
func (sb *Sidebar) Refresh(ctx context.Context, sess session.Session) (Summary, bool) {
	sum, err := sb.compute(ctx, sess)
	if err == nil {
		var blob []byte
		if blob, err = json.Marshal(sum); err == nil {
			err = sb.repo.PutRecord(SummaryKey, blob)
		}
	}
	if err != nil {
		sb.logger.Warn("refreshing sidebar summary", err, sess)
		sb.Invalidate()
		return Summary{}, false
	}
	return sum, true
}

func (sb *Sidebar) Invalidate() {
	if err := sb.repo.DeleteRecord(SummaryKey); err != nil {
		sb.logger.Error("invalidating sidebar summary", err)
	}
}

func (sb *Sidebar) compute(ctx context.Context, sess session.Session) (Summary, error) {
	sum := Summary{
		UserID:      sess.ID,
		Name:        sess.DisplayName(),
		Role:        sess.Role,
		RefreshedAt: nowFunc().UTC(),
	}

	asgs := sb.remote.ListAssignments(ctx)
	if !asgs.Success {
		return sum, errors.New(asgs.Message)
	}
	subs := sb.remote.ListSubmissions(ctx)
	if !subs.Success {
		return sum, errors.New(subs.Message)
	}

	sum.Assignments = len(asgs.Data)
	if sess.IsStudent() {
		pending, completed := coursework.Partition(asgs.Data, subs.Data, sess.ID)
		sum.Pending = len(pending)
		sum.Completed = len(completed)
	} else {
		sum.Submissions = len(subs.Data)
	}
	return sum, nil
}
