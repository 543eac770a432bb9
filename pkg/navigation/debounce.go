package navigation

import (
	"sync"
	"time"

	"cv-builder-be/internal/entity"
)

// NavigateFunc receives the surviving target once a session's debounce
// window elapses.
type NavigateFunc func(sessionId string, step entity.Step, url string)

type pendingTarget struct {
	step entity.Step
	url  string
}

// Debouncer collapses rapid repeated navigation calls per session: of N
// calls inside the window only the last target fires. Sessions are handled
// independently.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	fire    NavigateFunc
	timers  map[string]*time.Timer
	targets map[string]pendingTarget
	closed  bool
}

func NewDebouncer(window time.Duration, fire NavigateFunc) *Debouncer {
	return &Debouncer{
		window:  window,
		fire:    fire,
		timers:  make(map[string]*time.Timer),
		targets: make(map[string]pendingTarget),
	}
}

// Navigate records the requested target and (re)arms the session's timer.
func (d *Debouncer) Navigate(sessionId string, step entity.Step, url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.targets[sessionId] = pendingTarget{step: step, url: url}

	if timer, ok := d.timers[sessionId]; ok {
		timer.Reset(d.window)
		return
	}

	d.timers[sessionId] = time.AfterFunc(d.window, func() {
		d.flush(sessionId)
	})
}

func (d *Debouncer) flush(sessionId string) {
	d.mu.Lock()
	target, ok := d.targets[sessionId]
	delete(d.targets, sessionId)
	delete(d.timers, sessionId)
	closed := d.closed
	d.mu.Unlock()

	if !ok || closed {
		return
	}
	d.fire(sessionId, target.step, target.url)
}

// Pending reports whether a navigation is still waiting for the session.
func (d *Debouncer) Pending(sessionId string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.timers[sessionId]
	return ok
}

// Cleanup stops all timers and drops pending targets. Safe to call more
// than once.
func (d *Debouncer) Cleanup() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for id, timer := range d.timers {
		timer.Stop()
		delete(d.timers, id)
	}
	d.targets = make(map[string]pendingTarget)
}
