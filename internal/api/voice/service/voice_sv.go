package voiceService

import (
	"time"

	"golang.org/x/net/context"

	"PharmaPOS/internal/api/voice"
)

// processTimeout bounds one utterance dispatch, including the remote
// correction call and any catalog lookups it triggers.
const processTimeout = 10 * time.Second

// AttachRecognizer binds a freshly connected recognition stream to a
// terminal. An earlier session on the same terminal is terminated so a
// reconnect always starts from a clean state. The command log survives
// across sessions.
func (s *voiceService) AttachRecognizer(terminalID string, rec voice.Recognizer, notify func(voice.FeedbackResponse)) *voice.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.sessions[terminalID]; ok {
		old.Terminate()
	}

	process := func(raw string) {
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()

		fb := s.ProcessUtterance(ctx, terminalID, raw)
		if notify != nil {
			notify(fb)
		}
	}

	session := voice.NewSession(s.log, terminalID, rec, s.sched, process)
	s.sessions[terminalID] = session
	return session
}

// ReleaseSession tears down the terminal's session when its stream
// disconnects.
func (s *voiceService) ReleaseSession(terminalID string) {
	s.mu.Lock()
	session, ok := s.sessions[terminalID]
	if ok {
		delete(s.sessions, terminalID)
	}
	s.mu.Unlock()

	if ok {
		session.Terminate()
	}
}

func (s *voiceService) EnableVoice(terminalID string, continuous bool) error {
	session, err := s.session(terminalID)
	if err != nil {
		return err
	}
	return session.Enable(continuous)
}

func (s *voiceService) DisableVoice(terminalID string) error {
	session, err := s.session(terminalID)
	if err != nil {
		return err
	}
	session.Disable()
	return nil
}

func (s *voiceService) Listen(terminalID string) error {
	session, err := s.session(terminalID)
	if err != nil {
		return err
	}
	return session.Listen()
}

func (s *voiceService) MarkUnsupported(terminalID string) error {
	session, err := s.session(terminalID)
	if err != nil {
		return err
	}
	session.MarkUnsupported()
	return nil
}

// Status works without a live session so the UI can render the voice
// widget before the stream connects.
func (s *voiceService) Status(terminalID string) voice.StatusResponse {
	session, err := s.session(terminalID)
	if err != nil {
		return voice.StatusResponse{
			TerminalID: terminalID,
			State:      voice.StateIdle.String(),
			StatusText: "no voice session",
		}
	}
	return session.Status()
}

func (s *voiceService) CommandLog(terminalID string, limit int) voice.CommandLogResponse {
	return voice.CommandLogResponse{
		Entries: s.commandLog(terminalID).Recent(limit),
	}
}

// ProcessUtterance normalizes one utterance and dispatches the resolved
// command against the terminal. It is called by the session's process
// callback and directly by the REST test endpoint.
func (s *voiceService) ProcessUtterance(ctx context.Context, terminalID, raw string) voice.FeedbackResponse {
	result := s.normalizer.Normalize(ctx, raw)
	s.commandLog(terminalID).Append(raw, result.Command, time.Now())

	term := s.posService.Terminal(terminalID)
	snap := voice.Snapshot{
		Results:    term.Results(),
		Quantities: term.QuantitySelections(),
		CartLines:  term.CartLines(),
	}

	fb := s.dispatcher.Execute(ctx, result.Command, snap, &terminalActions{
		pos:        s.posService,
		terminalID: terminalID,
		disable: func() {
			_ = s.DisableVoice(terminalID)
		},
	})

	if session, err := s.session(terminalID); err == nil {
		session.SetStatusText(fb.Message)
	}

	return voice.FeedbackResponse{Level: fb.Level, Message: fb.Message}
}

func (s *voiceService) session(terminalID string) (*voice.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[terminalID]
	if !ok {
		return nil, voice.ErrSessionNotFound
	}
	return session, nil
}

func (s *voiceService) commandLog(terminalID string) *voice.CommandLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[terminalID]
	if !ok {
		log = voice.NewCommandLog(0)
		s.logs[terminalID] = log
	}
	return log
}
