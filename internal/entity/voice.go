package entity

import (
	"time"
)

type CommandLogEntry struct {
	Raw       string    `json:"raw"`
	Corrected string    `json:"corrected"`
	Timestamp time.Time `json:"timestamp"`
}
