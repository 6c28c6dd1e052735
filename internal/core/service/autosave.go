package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/api/metrics"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

// DefaultQuietWindow is how long a page must go without edits before its
// blocks are saved.
const DefaultQuietWindow = time.Second

// Autosaver debounces block edits per page. Every Schedule replaces the
// pending save for that page and restarts its quiet window; only the last
// edit of a burst reaches flush.
type Autosaver struct {
	quiet time.Duration
	flush func(ports.SaveJob)
	log   zerolog.Logger

	mu      sync.Mutex
	seq     uint64
	pending map[string]*pendingSave
}

type pendingSave struct {
	seq   uint64
	timer *time.Timer
	job   ports.SaveJob
}

// NewAutosaver returns an Autosaver that hands due saves to flush, typically
// the save dispatcher's Enqueue. quiet <= 0 selects DefaultQuietWindow.
func NewAutosaver(quiet time.Duration, flush func(ports.SaveJob), log zerolog.Logger) *Autosaver {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &Autosaver{
		quiet:   quiet,
		flush:   flush,
		log:     log,
		pending: make(map[string]*pendingSave),
	}
}

// Schedule cancels any pending save of job.PageID and arms a new one.
func (a *Autosaver) Schedule(job ports.SaveJob) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if prev, ok := a.pending[job.PageID]; ok {
		prev.timer.Stop()
	}
	a.seq++
	p := &pendingSave{seq: a.seq, job: job}
	p.timer = time.AfterFunc(a.quiet, func() { a.fire(job.PageID, p.seq) })
	a.pending[job.PageID] = p

	metrics.AutosaveScheduledTotal.Inc()
	a.log.Debug().Str("page_id", job.PageID).Int("blocks", len(job.Blocks)).Msg("autosave scheduled")
}

// fire runs on the timer goroutine. A timer whose Stop lost the race against
// expiry finds a newer seq and does nothing.
func (a *Autosaver) fire(pageID string, seq uint64) {
	a.mu.Lock()
	p, ok := a.pending[pageID]
	if !ok || p.seq != seq {
		a.mu.Unlock()
		return
	}
	delete(a.pending, pageID)
	a.mu.Unlock()

	a.flush(p.job)
}

// Flush saves pageID now instead of waiting for the quiet window. It reports
// whether a save was pending.
func (a *Autosaver) Flush(pageID string) bool {
	a.mu.Lock()
	p, ok := a.pending[pageID]
	if ok {
		p.timer.Stop()
		delete(a.pending, pageID)
	}
	a.mu.Unlock()

	if ok {
		a.flush(p.job)
	}
	return ok
}

// Cancel drops the pending save of pageID without sending it.
func (a *Autosaver) Cancel(pageID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pending[pageID]; ok {
		p.timer.Stop()
		delete(a.pending, pageID)
	}
}

func (a *Autosaver) Pending(pageID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.pending[pageID]
	return ok
}

// Stop cancels every pending save.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, p := range a.pending {
		p.timer.Stop()
		delete(a.pending, id)
	}
}
