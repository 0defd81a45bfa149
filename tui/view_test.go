package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"viralengine/config"
	"viralengine/session"
)

func TestRenderProgressBarClamps(t *testing.T) {
	cases := []struct {
		progress int
		want     string
	}{
		{-10, "  0%"},
		{0, "  0%"},
		{50, " 50%"},
		{100, "100%"},
		{250, "100%"}, // out-of-range values are display-clamped
	}
	for _, c := range cases {
		got := renderProgressBar(c.progress)
		if !strings.HasSuffix(got, c.want) {
			t.Errorf("renderProgressBar(%d) = %q; want suffix %q", c.progress, got, c.want)
		}
	}
}

func TestUpdateTopicTyping(t *testing.T) {
	m := NewModel("")
	m.Snapshot.State = session.StateIdle

	for _, r := range "cats" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(Model)

	if m.Topic != "cat" {
		t.Fatalf("Topic = %q; want %q", m.Topic, "cat")
	}
}

func TestUpdateDurationClamps(t *testing.T) {
	m := NewModel("")
	m.Snapshot.State = session.StateIdle

	for i := 0; i < 50; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
		m = next.(Model)
	}
	if m.Duration > config.MaxDuration {
		t.Fatalf("Duration grew past the maximum: %d", m.Duration)
	}

	for i := 0; i < 50; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
		m = next.(Model)
	}
	if m.Duration < durationStep {
		t.Fatalf("Duration shrank below one step: %d", m.Duration)
	}
}

func TestFormKeysIgnoredWhileRunning(t *testing.T) {
	m := NewModel("")
	m.Snapshot.State = session.StatePolling
	m.Topic = "pyramids"

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = next.(Model)

	if m.Topic != "pyramids" {
		t.Fatalf("form edited while polling: Topic = %q", m.Topic)
	}
}
