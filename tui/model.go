package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"viralengine/client"
	"viralengine/config"
	"viralengine/session"
	"viralengine/types"
)

// Model represents the TUI client state. The generation lifecycle itself
// lives in the session; the model only collects form input and renders
// session snapshots.
type Model struct {
	Client  *client.Client
	Session *session.Session

	// Voice catalog (fetched once at startup)
	Voices  []types.Voice
	LoadErr error

	// Form state
	VoiceIndex int
	StyleIndex int
	Topic      string
	Duration   int

	// Latest session snapshot (refreshed on every tick)
	Snapshot session.Snapshot

	// Last submission error (validation or transport)
	SubmitErr error
}

// NewModel creates a new TUI model talking to the given API base URL.
func NewModel(baseURL string) Model {
	c := client.NewClient(baseURL)
	sess := session.New(c)
	return Model{
		Client:   c,
		Session:  sess,
		Duration: config.DefaultDuration,
		Snapshot: sess.Snapshot(),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadVoices(m.Client),
		tickCmd(),
	)
}

// selectedVoice returns the currently highlighted voice, if any.
func (m Model) selectedVoice() (types.Voice, bool) {
	if len(m.Voices) == 0 || m.VoiceIndex < 0 || m.VoiceIndex >= len(m.Voices) {
		return types.Voice{}, false
	}
	return m.Voices[m.VoiceIndex], true
}

// buildRequest assembles the GenerationRequest from the current form state.
func (m Model) buildRequest() types.GenerationRequest {
	req := types.GenerationRequest{
		Topic:    m.Topic,
		Duration: m.Duration,
		Style:    types.Styles[m.StyleIndex],
	}
	if voice, ok := m.selectedVoice(); ok {
		req.VoiceID = voice.ID
	}
	return req
}
