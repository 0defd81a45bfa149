package tui

import (
	"time"

	"viralengine/types"
)

// Messages for the tea program (snapshot-polling based)

// VoicesLoadedMsg carries the voice catalog fetched at startup.
type VoicesLoadedMsg struct {
	Voices []types.Voice
	Err    error
}

// SubmitResultMsg reports the outcome of a session submission.
type SubmitResultMsg struct {
	Err error
}

// TickMsg is sent periodically to refresh the session snapshot.
type TickMsg struct {
	Time time.Time
}
