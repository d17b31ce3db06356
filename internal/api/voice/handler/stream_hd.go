package voiceHandler

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"PharmaPOS/internal/api/voice"
)

const (
	streamReadTimeout  = 120 * time.Second
	streamWriteTimeout = 10 * time.Second
)

// streamWriter serializes writes to the recognition websocket. The
// session fires start and stop from timer goroutines while feedback is
// pushed from the dispatch path, so writes need a lock.
type streamWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *streamWriter) send(ev voice.StreamEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}
	return w.conn.WriteJSON(ev)
}

// streamRecognizer drives the browser's speech capture over the
// websocket. Start and Stop are commands to the client; results come
// back as stream events on the read loop.
type streamRecognizer struct {
	w *streamWriter
}

func (r *streamRecognizer) Start() error {
	return r.w.send(voice.StreamEvent{Type: "start"})
}

func (r *streamRecognizer) Stop() {
	_ = r.w.send(voice.StreamEvent{Type: "stop"})
}

func (r *streamRecognizer) Release() {}

func (h *VoiceHandler) handleStream(c *websocket.Conn) {
	terminalID := c.Params("terminalId")

	h.log.WithField("terminal_id", terminalID).Info("Voice stream connected")
	defer h.log.WithField("terminal_id", terminalID).Info("Voice stream disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(streamWriteTimeout)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	writer := &streamWriter{conn: c}
	session := h.voiceService.AttachRecognizer(terminalID, &streamRecognizer{w: writer},
		func(fb voice.FeedbackResponse) {
			_ = writer.send(voice.StreamEvent{Type: "feedback", Feedback: &fb})
		})
	defer h.voiceService.ReleaseSession(terminalID)

	for {
		if err := c.SetReadDeadline(time.Now().Add(streamReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		var ev voice.StreamEvent
		if err := c.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Voice stream error: %v", err)
			}
			break
		}

		switch ev.Type {
		case "result":
			session.HandleResult(ev.Text)
		case "error":
			session.HandleError(ev.Code)
		case "end":
			session.HandleEnd()
		case "unsupported":
			session.MarkUnsupported()
		default:
			h.log.WithField("type", ev.Type).Warn("Unknown voice stream event")
			continue
		}

		status := session.Status()
		if err := writer.send(voice.StreamEvent{Type: "status", Status: &status}); err != nil {
			break
		}
	}
}
