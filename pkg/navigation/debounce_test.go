package navigation

import (
	"sync"
	"testing"
	"time"

	"cv-builder-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

type firedNav struct {
	sessionId string
	step      entity.Step
	url       string
}

type navRecorder struct {
	mu    sync.Mutex
	fired []firedNav
}

func (r *navRecorder) record(sessionId string, step entity.Step, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, firedNav{sessionId: sessionId, step: step, url: url})
}

func (r *navRecorder) all() []firedNav {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]firedNav{}, r.fired...)
}

func TestDebounceCollapsesRapidCalls(t *testing.T) {
	recorder := &navRecorder{}
	d := NewDebouncer(100*time.Millisecond, recorder.record)
	defer d.Cleanup()

	d.Navigate("s1", entity.StepAnalysis, "/analysis")
	d.Navigate("s1", entity.StepTemplates, "/templates")
	d.Navigate("s1", entity.StepFeatures, "/features")

	time.Sleep(250 * time.Millisecond)

	fired := recorder.all()
	assert.Len(t, fired, 1, "three rapid calls must collapse to one navigation")
	assert.Equal(t, entity.StepFeatures, fired[0].step, "the last-requested target wins")
	assert.Equal(t, "/features", fired[0].url)
}

func TestDebounceSessionsAreIndependent(t *testing.T) {
	recorder := &navRecorder{}
	d := NewDebouncer(50*time.Millisecond, recorder.record)
	defer d.Cleanup()

	d.Navigate("s1", entity.StepFeatures, "/features")
	d.Navigate("s2", entity.StepPreview, "/preview")

	time.Sleep(200 * time.Millisecond)

	fired := recorder.all()
	assert.Len(t, fired, 2)
	seen := map[string]entity.Step{}
	for _, f := range fired {
		seen[f.sessionId] = f.step
	}
	assert.Equal(t, entity.StepFeatures, seen["s1"])
	assert.Equal(t, entity.StepPreview, seen["s2"])
}

func TestDebounceCleanupIsIdempotent(t *testing.T) {
	recorder := &navRecorder{}
	d := NewDebouncer(50*time.Millisecond, recorder.record)

	d.Navigate("s1", entity.StepFeatures, "/features")
	d.Cleanup()
	d.Cleanup() // must not panic or change observable state

	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, recorder.all(), "cleanup cancels pending navigations")
	assert.False(t, d.Pending("s1"))

	// Navigations after cleanup are dropped, not resurrected.
	d.Navigate("s1", entity.StepPreview, "/preview")
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, recorder.all())
}
