package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"viralengine/config"
	"viralengine/session"
	"viralengine/types"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		m.Snapshot = m.Session.Snapshot()
		return m, tickCmd()
	case VoicesLoadedMsg:
		m.LoadErr = msg.Err
		if msg.Err == nil {
			m.Voices = msg.Voices
		}
		return m, nil
	case SubmitResultMsg:
		m.SubmitErr = msg.Err
		m.Snapshot = m.Session.Snapshot()
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Session.Cancel()
		return m, tea.Quit
	case "esc":
		if m.Snapshot.State == session.StateSubmitting || m.Snapshot.State == session.StatePolling {
			m.Session.Cancel()
			m.Snapshot = m.Session.Snapshot()
			return m, nil
		}
		m.Session.Cancel()
		return m, tea.Quit
	}

	// Form editing is only meaningful while no job is running.
	if m.Snapshot.State != session.StateIdle {
		return m, nil
	}

	switch msg.String() {
	case "up":
		if m.VoiceIndex > 0 {
			m.VoiceIndex--
		}
	case "down":
		if m.VoiceIndex < len(m.Voices)-1 {
			m.VoiceIndex++
		}
	case "left":
		if m.StyleIndex > 0 {
			m.StyleIndex--
		}
	case "right":
		if m.StyleIndex < len(types.Styles)-1 {
			m.StyleIndex++
		}
	case "+":
		if m.Duration+durationStep <= config.MaxDuration {
			m.Duration += durationStep
		}
	case "-":
		if m.Duration-durationStep >= durationStep {
			m.Duration -= durationStep
		}
	case "enter":
		m.SubmitErr = nil
		return m, submitRequest(m.Session, m.buildRequest())
	case "backspace":
		if len(m.Topic) > 0 {
			runes := []rune(m.Topic)
			m.Topic = string(runes[:len(runes)-1])
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.Topic += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.Topic += " "
		}
	}
	return m, nil
}

// durationStep is the increment for the requested video length.
const durationStep = 15
