package tui

import (
	"fmt"
	"strings"

	"viralengine/session"
	"viralengine/types"
)

// maxVisibleLogs bounds the activity feed shown under the status line.
const maxVisibleLogs = 6

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🎬 Viral Engine"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	if m.Snapshot.State == session.StateIdle {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderProgress())
	}

	// Logs
	if logs := m.Snapshot.Logs; len(logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		start := 0
		if len(logs) > maxVisibleLogs {
			start = len(logs) - maxVisibleLogs
		}
		for _, entry := range logs[start:] {
			b.WriteString(InfoStyle.Render("   " + entry.Message))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Result
	if m.Snapshot.State == session.StateCompleted {
		b.WriteString(BoxStyle.Render(m.formatResult()))
		b.WriteString("\n\n")
	}

	// Help text
	switch {
	case m.Snapshot.State == session.StateIdle:
		b.WriteString(InfoStyle.Render(TextFooterIdle))
	case m.Snapshot.State.Terminal():
		b.WriteString(HighlightStyle.Render(TextFooterDone))
	default:
		b.WriteString(InfoStyle.Render(TextFooterRunning))
	}
	b.WriteString("\n")

	return b.String()
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	if m.LoadErr != nil {
		return ErrorStyle.Render(fmt.Sprintf("❌ Could not load voices: %v", m.LoadErr))
	}

	switch m.Snapshot.State {
	case session.StateIdle:
		if m.SubmitErr != nil {
			return ErrorStyle.Render(fmt.Sprintf("❌ %v", m.SubmitErr))
		}
		return HighlightStyle.Render("👋 Describe your video and press Enter")
	case session.StateSubmitting:
		return StatusStyle.Render("📤 Submitting generation request...")
	case session.StatePolling:
		return StatusStyle.Render(fmt.Sprintf("⏳ Generating (project %s)...", m.Snapshot.ProjectID))
	case session.StateCompleted:
		return HighlightStyle.Render("✅ COMPLETE")
	case session.StateFailed:
		return ErrorStyle.Render("❌ Generation failed: " + m.Snapshot.Failure)
	default:
		return ""
	}
}

// renderForm draws the request form shown while idle.
func (m Model) renderForm() string {
	var b strings.Builder

	topic := m.Topic
	if topic == "" {
		topic = InfoStyle.Render("(start typing...)")
	}
	b.WriteString(fmt.Sprintf("Topic:    %s▏\n", topic))
	b.WriteString(fmt.Sprintf("Style:    %s\n", renderStyleRow(m.StyleIndex)))
	b.WriteString(fmt.Sprintf("Duration: %ds\n\n", m.Duration))

	if len(m.Voices) == 0 {
		b.WriteString(InfoStyle.Render("Loading voices..."))
		b.WriteString("\n\n")
		return b.String()
	}

	b.WriteString(InfoStyle.Render("Voice:"))
	b.WriteString("\n")
	for i, voice := range m.Voices {
		line := fmt.Sprintf("  %s (%s) — %s", voice.Name, voice.Category, voice.Description)
		if i == m.VoiceIndex {
			line = SelectedStyle.Render("▸" + line[1:])
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderStyleRow(selected int) string {
	parts := make([]string, len(types.Styles))
	for i, style := range types.Styles {
		if i == selected {
			parts[i] = SelectedStyle.Render("[" + style + "]")
		} else {
			parts[i] = style
		}
	}
	return strings.Join(parts, "  ")
}

// renderProgress draws the live progress of the running job.
func (m Model) renderProgress() string {
	status := m.Snapshot.Latest
	if status == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(renderProgressBar(status.Progress))
	b.WriteString("\n")
	b.WriteString(StatusStyle.Render(fmt.Sprintf("%s — %s", status.Status, status.CurrentStep)))
	b.WriteString("\n")
	if m.Snapshot.PollErr != "" {
		b.WriteString(ErrorStyle.Render("⚠️  " + m.Snapshot.PollErr + " (retrying)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// renderProgressBar draws a 30-cell bar for a 0-100 progress value.
// Out-of-range values are clamped for display only.
func renderProgressBar(progress int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	const width = 30
	filled := progress * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", StatusStyle.Render(bar), progress)
}

// formatResult formats the completed generation for display
func (m Model) formatResult() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Video Ready"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Project: %s\n", m.Snapshot.ProjectID))
	b.WriteString(fmt.Sprintf("Topic:   %s\n", m.Snapshot.Request.Topic))
	b.WriteString(fmt.Sprintf("URL:     %s\n", StatusStyle.Render(m.Snapshot.ResultURL)))

	return b.String()
}
