package portal

import "sync/atomic"

const (
	controlIdle int32 = iota
	controlBusy
	controlDone
)

// control is the triggering button of a write workflow. It admits one
// activation at a time and stays disabled once its workflow succeeded.
type control struct {
	name  string
	state int32
}

func newControl(name string) *control {
	return &control{name: name}
}

// begin disables the control and shows it busy. It refuses when a request is
// already in flight or the workflow already completed.
func (c *control) begin(s *Screen) bool {
	if !atomic.CompareAndSwapInt32(&c.state, controlIdle, controlBusy) {
		return false
	}
	s.Busy(c.name, true)
	return true
}

// fail re-enables the control so the user can retry.
func (c *control) fail(s *Screen) {
	atomic.StoreInt32(&c.state, controlIdle)
	s.Busy(c.name, false)
}

// done keeps the control disabled; the page is about to be left.
func (c *control) done() {
	atomic.StoreInt32(&c.state, controlDone)
}

func (c *control) busy() bool {
	return atomic.LoadInt32(&c.state) == controlBusy
}
