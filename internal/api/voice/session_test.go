package voice

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

var errTest = errors.New("recognizer failure")

type fakeRecognizer struct {
	starts   int
	stops    int
	releases int
	startErr error
}

func (r *fakeRecognizer) Start() error {
	if r.startErr != nil {
		return r.startErr
	}
	r.starts++
	return nil
}

func (r *fakeRecognizer) Stop()    { r.stops++ }
func (r *fakeRecognizer) Release() { r.releases++ }

type fakeTimer struct {
	f       func()
	d       time.Duration
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return !t.fired
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{f: f, d: d}
	s.timers = append(s.timers, t)
	return t
}

// fire runs every pending timer that has not been stopped.
func (s *fakeScheduler) fire() {
	pending := s.timers
	s.timers = nil
	for _, t := range pending {
		if t.stopped {
			continue
		}
		t.fired = true
		t.f()
	}
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func newTestSession(process func(string)) (*Session, *fakeRecognizer, *fakeScheduler) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	rec := &fakeRecognizer{}
	sched := &fakeScheduler{}
	return NewSession(log, "till-1", rec, sched, process), rec, sched
}

func TestSessionEnableStartsListening(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	if err := s.Enable(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if got := s.Status(); got.State != "listening" || !got.Enabled {
		t.Fatalf("status after enable: %+v", got)
	}
	if rec.starts != 1 {
		t.Fatalf("recognizer starts = %d, want 1", rec.starts)
	}

	// Enabling again does not start a second cycle.
	if err := s.Enable(true); err != nil {
		t.Fatalf("re-enable: %v", err)
	}
	if rec.starts != 1 {
		t.Fatalf("re-enable started another cycle, starts = %d", rec.starts)
	}
}

func TestSessionContinuousRestart(t *testing.T) {
	var heard []string
	s, rec, sched := newTestSession(func(raw string) { heard = append(heard, raw) })

	if err := s.Enable(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	s.HandleResult("add to cart")

	if len(heard) != 1 || heard[0] != "add to cart" {
		t.Fatalf("heard = %v", heard)
	}
	if got := s.Status(); got.State != "idle" {
		t.Fatalf("state after result = %s, want idle", got.State)
	}

	sched.fire()
	if rec.starts != 2 {
		t.Fatalf("restart did not start a new cycle, starts = %d", rec.starts)
	}
	if got := s.Status(); got.State != "listening" {
		t.Fatalf("state after restart = %s, want listening", got.State)
	}
}

func TestSessionSingleShotDoesNotRestart(t *testing.T) {
	s, rec, sched := newTestSession(func(string) {})

	if err := s.Enable(false); err != nil {
		t.Fatalf("enable: %v", err)
	}
	s.HandleResult("clear cart")

	sched.fire()
	if rec.starts != 1 {
		t.Fatalf("single shot session restarted, starts = %d", rec.starts)
	}
}

func TestSessionDedup(t *testing.T) {
	var heard []string
	s, _, sched := newTestSession(func(raw string) { heard = append(heard, raw) })

	if err := s.Enable(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	s.HandleResult("print bill")
	s.HandleResult("print bill")

	if len(heard) != 1 {
		t.Fatalf("duplicate within the window processed, heard = %v", heard)
	}

	// Both the dedup window and the restart delay elapse.
	sched.fire()
	s.HandleResult("print bill")
	if len(heard) != 2 {
		t.Fatalf("utterance after the window dropped, heard = %v", heard)
	}
}

func TestSessionErrorRecovery(t *testing.T) {
	s, _, sched := newTestSession(nil)

	if err := s.Enable(true); err != nil {
		t.Fatalf("enable: %v", err)
	}

	s.HandleError("no-speech")
	if got := s.Status(); got.State != "idle" || got.StatusText == "recognition error: no-speech" {
		t.Fatalf("no-speech should be silent, got %+v", got)
	}
	if sched.pending() == 0 {
		t.Fatal("no restart scheduled after no-speech")
	}

	sched.fire()
	s.HandleError("network")
	if got := s.Status(); got.StatusText != "recognition error: network" {
		t.Fatalf("real error should surface, got %+v", got)
	}
	if sched.pending() == 0 {
		t.Fatal("no restart scheduled after a recognition error")
	}
}

func TestSessionDisableCancelsRestart(t *testing.T) {
	s, rec, sched := newTestSession(func(string) {})

	if err := s.Enable(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	s.HandleResult("search for aspirin")

	s.Disable()
	sched.fire()
	if rec.starts != 1 {
		t.Fatalf("disable did not cancel the restart, starts = %d", rec.starts)
	}
	if err := s.Listen(); err != ErrVoiceDisabled {
		t.Fatalf("listen while disabled = %v, want ErrVoiceDisabled", err)
	}
}

func TestSessionDisableDropsInFlightEvents(t *testing.T) {
	var processed []string
	s, _, sched := newTestSession(func(raw string) { processed = append(processed, raw) })

	if err := s.Enable(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	s.Disable()

	// A transcript that was already in flight when the operator hit
	// disable must not dispatch anything.
	s.HandleResult("clear cart")
	if len(processed) != 0 {
		t.Fatalf("disabled session dispatched %v", processed)
	}
	if got := s.Status(); got.LastUtterance != "" || got.State != "idle" {
		t.Fatalf("disabled session mutated state: %+v", got)
	}

	s.HandleError("network")
	s.HandleEnd()
	if sched.pending() != 0 {
		t.Fatalf("disabled session still has %d timers pending", sched.pending())
	}
}

func TestSessionDisableStopsDedupTimer(t *testing.T) {
	s, _, sched := newTestSession(func(string) {})

	if err := s.Enable(false); err != nil {
		t.Fatalf("enable: %v", err)
	}
	s.HandleResult("search for aspirin")
	if sched.pending() == 0 {
		t.Fatal("expected a pending dedup timer after a result")
	}

	s.Disable()
	if sched.pending() != 0 {
		t.Fatalf("disable left %d timers pending", sched.pending())
	}

	// The dedup marker is cleared on disable, a repeat after re-enable
	// is a deliberate command again.
	var processed []string
	s.process = func(raw string) { processed = append(processed, raw) }
	if err := s.Enable(false); err != nil {
		t.Fatalf("re-enable: %v", err)
	}
	s.HandleResult("search for aspirin")
	if len(processed) != 1 {
		t.Fatalf("repeat after re-enable processed %v", processed)
	}
}

func TestSessionTerminateIdempotent(t *testing.T) {
	s, rec, sched := newTestSession(nil)

	if err := s.Enable(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	s.Terminate()
	s.Terminate()

	if rec.releases != 1 {
		t.Fatalf("recognizer released %d times, want 1", rec.releases)
	}
	if rec.stops != 1 {
		t.Fatalf("recognizer stopped %d times, want 1", rec.stops)
	}
	if got := s.Status(); got.State != "terminated" {
		t.Fatalf("state after terminate = %s", got.State)
	}

	// A terminated session ignores everything.
	if err := s.Enable(true); err != ErrSessionClosed {
		t.Fatalf("enable after terminate = %v, want ErrSessionClosed", err)
	}
	s.HandleResult("add to cart")
	sched.fire()
	if rec.starts != 1 {
		t.Fatalf("terminated session started a cycle, starts = %d", rec.starts)
	}
}

func TestSessionUnsupported(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	s.MarkUnsupported()
	if err := s.Enable(true); err != ErrVoiceUnsupported {
		t.Fatalf("enable on unsupported terminal = %v, want ErrVoiceUnsupported", err)
	}
	if rec.starts != 0 {
		t.Fatalf("unsupported session started a cycle, starts = %d", rec.starts)
	}
	if got := s.Status(); got.Supported {
		t.Fatalf("status still reports supported: %+v", got)
	}
}

func TestSessionStartFailure(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	rec := &fakeRecognizer{startErr: errTest}
	s := NewSession(log, "till-1", rec, &fakeScheduler{}, nil)

	if err := s.Enable(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if got := s.Status(); got.State != "idle" {
		t.Fatalf("state after start failure = %s, want idle", got.State)
	}
}
