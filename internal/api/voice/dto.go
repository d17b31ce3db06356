package voice

import "PharmaPOS/internal/entity"

type EnableVoiceRequest struct {
	Continuous bool `json:"continuous"`
}

type UtteranceRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

type FeedbackResponse struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type StatusResponse struct {
	TerminalID    string `json:"terminal_id"`
	State         string `json:"state"`
	Enabled       bool   `json:"enabled"`
	Continuous    bool   `json:"continuous"`
	Listening     bool   `json:"listening"`
	Supported     bool   `json:"supported"`
	LastUtterance string `json:"last_utterance"`
	StatusText    string `json:"status_text"`
}

type CommandLogResponse struct {
	Entries []entity.CommandLogEntry `json:"entries"`
}

// StreamEvent is a message on the recognition websocket, both directions.
// Client to server types: result, error, end, unsupported.
// Server to client types: start, stop, feedback, status.
type StreamEvent struct {
	Type     string            `json:"type"`
	Text     string            `json:"text,omitempty"`
	Code     string            `json:"code,omitempty"`
	Feedback *FeedbackResponse `json:"feedback,omitempty"`
	Status   *StatusResponse   `json:"status,omitempty"`
}
