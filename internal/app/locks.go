package service

import "sync"

// meetLocks serializes scoring passes per meet. Two overlapping rescores of
// one meet would read stale totals and interleave their writes; holding the
// meet's lock for the whole pass makes each rescore atomic with respect to
// the others. Different meets never contend.
type meetLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newMeetLocks() *meetLocks {
	return &meetLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for meetID, creating it on first use, and
// returns the unlock function.
func (l *meetLocks) acquire(meetID string) func() {
	l.mu.Lock()
	m, ok := l.locks[meetID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[meetID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
