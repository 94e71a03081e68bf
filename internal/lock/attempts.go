package lock

import (
	"time"

	"github.com/akyairhashvil/applock/internal/models"
)

// pendingAttempts is the PIN attempt bookkeeping from the last write that
// did not reach the store. While set it overrides the persisted fields, so
// a read-only or full disk cannot roll the failure counter back.
type pendingAttempts struct {
	set          bool
	failed       uint
	lastFailed   *time.Time
	lockoutUntil *time.Time
}

func (p *pendingAttempts) record(st models.LockSettings) {
	p.set = true
	p.failed = st.FailedAttempts
	p.lastFailed = copyTime(st.LastFailedAttempt)
	p.lockoutUntil = copyTime(st.LockoutUntil)
}

func (p *pendingAttempts) clear() {
	*p = pendingAttempts{}
}

func (p pendingAttempts) same(st models.LockSettings) bool {
	return p.failed == st.FailedAttempts &&
		sameTime(p.lastFailed, st.LastFailedAttempt) &&
		sameTime(p.lockoutUntil, st.LockoutUntil)
}

// apply folds the pending fields into st and reports whether st changed.
// A persisted lockout that is still running and ends later than ours was
// written by someone else and is kept.
func (p *pendingAttempts) apply(st *models.LockSettings, now time.Time) bool {
	if !p.set {
		return false
	}
	if st.LockoutUntil != nil && st.LockoutUntil.After(now) &&
		(p.lockoutUntil == nil || st.LockoutUntil.After(*p.lockoutUntil)) {
		return false
	}
	changed := !p.same(*st)
	st.FailedAttempts = p.failed
	st.LastFailedAttempt = copyTime(p.lastFailed)
	st.LockoutUntil = copyTime(p.lockoutUntil)
	return changed
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
