package voice

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type State int

const (
	StateIdle State = iota
	StateListening
	StateProcessing
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateProcessing:
		return "processing"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

const (
	// RestartDelay is how long a continuous session waits before it
	// starts listening again after a recognition cycle ends.
	RestartDelay = 1000 * time.Millisecond

	// DedupWindow is how long a heard utterance suppresses an
	// identical repeat.
	DedupWindow = 1000 * time.Millisecond
)

// Recognizer is the speech capture device bound to one session. Start
// begins a single recognition cycle, Stop aborts the current cycle,
// Release gives the device back when the session is torn down.
type Recognizer interface {
	Start() error
	Stop()
	Release()
}

type Timer interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realTimer struct{ *time.Timer }

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{time.AfterFunc(d, f)}
}

func NewScheduler() Scheduler {
	return realScheduler{}
}

// Session is the capture state machine for one terminal. Recognition
// events arrive from the transport via HandleResult, HandleError and
// HandleEnd; commands the session resolves are handed to the process
// callback outside the session lock.
type Session struct {
	mu  sync.Mutex
	log *logrus.Logger

	terminalID string
	recognizer Recognizer
	sched      Scheduler
	process    func(raw string)

	state      State
	supported  bool
	enabled    bool
	continuous bool
	alive      bool

	lastUtterance string
	lastHeard     string
	statusText    string

	restartTimer Timer
	dedupTimer   Timer
}

func NewSession(log *logrus.Logger, terminalID string, rec Recognizer, sched Scheduler, process func(raw string)) *Session {
	if sched == nil {
		sched = NewScheduler()
	}
	return &Session{
		log:        log,
		terminalID: terminalID,
		recognizer: rec,
		sched:      sched,
		process:    process,
		state:      StateIdle,
		supported:  true,
		alive:      true,
		statusText: "voice control ready",
	}
}

// Enable turns voice control on and starts the first listening cycle.
// Enabling an already enabled session only updates the continuous flag.
func (s *Session) Enable(continuous bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive {
		return ErrSessionClosed
	}
	if !s.supported {
		return ErrVoiceUnsupported
	}

	s.continuous = continuous
	if s.enabled {
		return nil
	}
	s.enabled = true
	s.statusText = "voice control enabled"
	s.startLocked()
	return nil
}

// Disable stops listening but keeps the session usable; Enable brings
// it back.
func (s *Session) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive || !s.enabled {
		return
	}
	s.enabled = false
	s.cancelRestartLocked()
	s.cancelDedupLocked()
	if s.state == StateListening {
		s.recognizer.Stop()
	}
	if s.state != StateProcessing {
		s.state = StateIdle
	}
	s.statusText = "voice control disabled"
}

// Listen triggers one listening cycle immediately, also when the
// session is not continuous.
func (s *Session) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive {
		return ErrSessionClosed
	}
	if !s.supported {
		return ErrVoiceUnsupported
	}
	if !s.enabled {
		return ErrVoiceDisabled
	}
	s.cancelRestartLocked()
	s.startLocked()
	return nil
}

// MarkUnsupported records that the terminal has no speech capture.
// The session stays alive so status queries keep working, but it can
// not be enabled again until it is rebuilt.
func (s *Session) MarkUnsupported() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive || !s.supported {
		return
	}
	s.supported = false
	s.enabled = false
	s.cancelRestartLocked()
	s.state = StateIdle
	s.statusText = "speech recognition is not available on this terminal"
	s.log.WithField("terminal_id", s.terminalID).Warn("speech recognition unsupported")
}

// Terminate tears the session down and releases the recognizer. Safe
// to call more than once.
func (s *Session) Terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive {
		return
	}
	s.alive = false
	s.cancelRestartLocked()
	s.cancelDedupLocked()
	if s.state == StateListening {
		s.recognizer.Stop()
	}
	s.recognizer.Release()
	s.state = StateTerminated
	s.statusText = "voice session closed"
}

// HandleResult is called by the transport when a recognition cycle
// produced a final transcript.
func (s *Session) HandleResult(text string) {
	s.mu.Lock()
	// A result that lands after the operator disabled voice is dropped,
	// it must not dispatch.
	if !s.alive || !s.enabled {
		s.mu.Unlock()
		return
	}
	s.lastHeard = text

	if text == s.lastUtterance {
		// Same utterance inside the dedup window, treat it as an
		// empty cycle.
		s.state = StateIdle
		s.scheduleRestartLocked()
		s.mu.Unlock()
		return
	}
	s.rememberUtteranceLocked(text)
	s.state = StateProcessing
	s.statusText = "processing: " + text
	process := s.process
	s.mu.Unlock()

	if process != nil {
		process(text)
	}

	s.mu.Lock()
	if s.alive && s.state == StateProcessing {
		s.state = StateIdle
		s.scheduleRestartLocked()
	}
	s.mu.Unlock()
}

// HandleError is called by the transport when a recognition cycle
// failed. No speech and aborted cycles are part of normal operation.
func (s *Session) HandleError(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive || !s.enabled {
		return
	}
	switch code {
	case "no-speech", "aborted":
	default:
		s.statusText = "recognition error: " + code
		s.log.WithFields(logrus.Fields{
			"terminal_id": s.terminalID,
			"code":        code,
		}).Warn("speech recognition error")
	}
	if s.state == StateListening {
		s.state = StateIdle
		s.scheduleRestartLocked()
	}
}

// HandleEnd is called by the transport when a recognition cycle ended
// without a result.
func (s *Session) HandleEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive || !s.enabled {
		return
	}
	if s.state == StateListening {
		s.state = StateIdle
		s.scheduleRestartLocked()
	}
}

func (s *Session) Status() StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StatusResponse{
		TerminalID:    s.terminalID,
		State:         s.state.String(),
		Enabled:       s.enabled,
		Continuous:    s.continuous,
		Listening:     s.state == StateListening,
		Supported:     s.supported,
		LastUtterance: s.lastHeard,
		StatusText:    s.statusText,
	}
}

func (s *Session) SetStatusText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alive {
		s.statusText = text
	}
}

func (s *Session) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

func (s *Session) startLocked() {
	if !s.alive || !s.enabled || s.state == StateListening || s.state == StateProcessing {
		return
	}
	if err := s.recognizer.Start(); err != nil {
		s.state = StateIdle
		s.statusText = "could not start listening"
		s.log.WithFields(logrus.Fields{
			"terminal_id": s.terminalID,
			"error":       err,
		}).Error("failed to start speech recognition")
		return
	}
	s.state = StateListening
	s.statusText = "listening"
}

func (s *Session) scheduleRestartLocked() {
	if !s.alive || !s.enabled || !s.continuous || s.state != StateIdle {
		return
	}
	s.cancelRestartLocked()
	s.restartTimer = s.sched.AfterFunc(RestartDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.restartTimer = nil
		s.startLocked()
	})
}

func (s *Session) cancelRestartLocked() {
	if s.restartTimer != nil {
		s.restartTimer.Stop()
		s.restartTimer = nil
	}
}

func (s *Session) cancelDedupLocked() {
	if s.dedupTimer != nil {
		s.dedupTimer.Stop()
		s.dedupTimer = nil
	}
	s.lastUtterance = ""
}

func (s *Session) rememberUtteranceLocked(text string) {
	s.lastUtterance = text
	if s.dedupTimer != nil {
		s.dedupTimer.Stop()
	}
	s.dedupTimer = s.sched.AfterFunc(DedupWindow, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.lastUtterance == text {
			s.lastUtterance = ""
		}
	})
}
