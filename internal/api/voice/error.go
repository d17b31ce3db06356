package voice

import "PharmaPOS/pkg/response"

var (
	ErrSessionNotFound  = response.NewError(404, "voice session not found")
	ErrVoiceUnsupported = response.NewError(409, "speech recognition is not available on this terminal")
	ErrVoiceDisabled    = response.NewError(409, "voice control is disabled")
	ErrSessionClosed    = response.NewError(410, "voice session already terminated")
)
