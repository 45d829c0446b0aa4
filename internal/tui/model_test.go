package tui

import (
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/typing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, cfg typing.Config) (*Model, *typing.FakeClock) {
	t.Helper()
	clock := typing.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	m, err := New("hero", cfg, clock)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m, clock
}

// pump feeds every queued sequencer event through Update.
func pump(m *Model) {
	for {
		select {
		case msg := <-m.events:
			m.Update(msg)
		default:
			return
		}
	}
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelFollowsSequencer(t *testing.T) {
	m, clock := newTestModel(t, typing.Config{
		Phrases:     []string{"hi"},
		TypingSpeed: 100 * time.Millisecond,
		ShowCursor:  true,
	})

	require.NotNil(t, m.Init())
	assert.Equal(t, typing.Idle, m.Frame().Mode)

	clock.Advance(0)
	pump(m)
	assert.Equal(t, "", m.Frame().Text)
	assert.Equal(t, typing.Typing, m.Frame().Mode)

	clock.Advance(100 * time.Millisecond)
	pump(m)
	assert.Equal(t, "h", m.Frame().Text)

	clock.Advance(100 * time.Millisecond)
	pump(m)
	assert.Equal(t, "hi", m.Frame().Text)
	assert.Equal(t, typing.Done, m.Frame().Mode)
	assert.True(t, m.Done())

	view := m.View()
	assert.Contains(t, view, "typing: hero")
	assert.Contains(t, view, "hi")
	assert.Contains(t, view, "complete")
	assert.Contains(t, view, "q quit")
}

func TestModelCountsAdvances(t *testing.T) {
	m, clock := newTestModel(t, typing.Config{
		Phrases:       []string{"a", "b"},
		TypingSpeed:   10 * time.Millisecond,
		DeletingSpeed: 10 * time.Millisecond,
		PauseDuration: 10 * time.Millisecond,
		Loop:          true,
	})
	m.Init()

	clock.Advance(0)
	for i := 0; i < 4; i++ {
		clock.Advance(10 * time.Millisecond)
	}
	pump(m)
	assert.Equal(t, "b", m.Frame().Text)
	assert.Equal(t, 1, m.advances)
	assert.Equal(t, 1, m.Frame().PhraseIndex)
	assert.Contains(t, m.View(), "phrase 2")
}

func TestModelRestart(t *testing.T) {
	m, clock := newTestModel(t, typing.Config{Phrases: []string{"ok"}})
	m.Init()
	clock.Advance(0)
	pump(m)
	require.True(t, m.Done())

	_, cmd := m.Update(keyPress("r"))
	assert.NotNil(t, cmd, "listening resumes after a finished run")
	assert.False(t, m.Done())
	assert.Equal(t, typing.Idle, m.Frame().Mode)

	clock.Advance(0)
	pump(m)
	assert.Equal(t, "ok", m.Frame().Text)
	assert.True(t, m.Done())
}

func TestModelQuit(t *testing.T) {
	m, clock := newTestModel(t, typing.Config{Phrases: []string{"bye"}, TypingSpeed: time.Second})
	m.Init()

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "", m.View())
	assert.Equal(t, 0, clock.Pending())
	assert.Nil(t, m.waitForEvent())

	m.Close()
}

func TestModelCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, typing.Config{Phrases: []string{"x"}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelCursorBlink(t *testing.T) {
	m, clock := newTestModel(t, typing.Config{
		Phrases:             []string{"x"},
		ShowCursor:          true,
		CursorBlinkInterval: 500 * time.Millisecond,
	})
	m.Init()
	clock.Advance(0)
	pump(m)
	assert.True(t, m.Frame().CursorVisible)

	clock.Advance(500 * time.Millisecond)
	pump(m)
	m.Update(blinkMsg{})
	assert.False(t, m.Frame().CursorVisible)
	assert.Contains(t, m.View(), "x")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New("bad", typing.Config{TypingSpeed: -time.Second}, nil)
	assert.ErrorIs(t, err, typing.ErrInvalidConfig)
}
