// Package tui previews a typing sequence in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/typing"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameMsg carries a new frame from the sequencer.
type FrameMsg typing.Frame

// AdvanceMsg reports the index of the phrase being typed next.
type AdvanceMsg int

// DoneMsg reports that a one-shot sequence has finished.
type DoneMsg struct{}

type blinkMsg struct{}

// Model is the bubbletea model for the preview.
type Model struct {
	name  string
	seq   *typing.Sequencer
	keys  KeyMap
	blink time.Duration

	events    chan tea.Msg
	closed    chan struct{}
	listening bool

	frame    typing.Frame
	advances int
	done     bool
	quitting bool
}

// New creates a preview for the named sequence. The sequencer starts on Init.
func New(name string, cfg typing.Config, clock typing.Clock) (*Model, error) {
	m := &Model{
		name:   name,
		keys:   DefaultKeyMap(),
		events: make(chan tea.Msg, 64),
		closed: make(chan struct{}),
	}
	cfg.OnChange = func(f typing.Frame) { m.emit(FrameMsg(f)) }
	cfg.OnSequenceAdvance = func(next int) { m.emit(AdvanceMsg(next)) }
	cfg.OnAllComplete = func() { m.emit(DoneMsg{}) }

	seq, err := typing.New(cfg, clock)
	if err != nil {
		return nil, err
	}
	m.seq = seq
	m.frame = seq.Snapshot()
	if cfg.ShowCursor && cfg.CursorBlinkInterval > 0 {
		m.blink = cfg.CursorBlinkInterval
	}
	return m, nil
}

func (m *Model) emit(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.closed:
	}
}

// waitForEvent blocks until the sequencer reports something.
func (m *Model) waitForEvent() tea.Msg {
	select {
	case msg := <-m.events:
		return msg
	case <-m.closed:
		return nil
	}
}

func (m *Model) blinkCmd() tea.Cmd {
	if m.blink <= 0 {
		return nil
	}
	return tea.Tick(m.blink/2, func(time.Time) tea.Msg { return blinkMsg{} })
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.seq.Start()
	m.listening = true
	return tea.Batch(m.waitForEvent, m.blinkCmd())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case FrameMsg:
		m.frame = typing.Frame(msg)
		return m, m.waitForEvent

	case AdvanceMsg:
		m.advances++
		return m, m.waitForEvent

	case DoneMsg:
		m.done = true
		m.listening = false
		return m, nil

	case blinkMsg:
		if m.quitting {
			return m, nil
		}
		m.frame = m.seq.Snapshot()
		return m, m.blinkCmd()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart):
		m.done = false
		m.advances = 0
		m.seq.Start()
		m.frame = m.seq.Snapshot()
		if !m.listening {
			m.listening = true
			return m, m.waitForEvent
		}
	}
	return m, nil
}

// Close stops the sequencer and releases pending callbacks. It is safe to
// call more than once.
func (m *Model) Close() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.seq.Stop()
	close(m.closed)
}

// Frame returns the frame currently displayed.
func (m *Model) Frame() typing.Frame {
	return m.frame
}

// Done reports whether a one-shot sequence has finished.
func (m *Model) Done() bool {
	return m.done
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("typing: " + m.name))
	b.WriteString("\n\n")

	line := TextStyle.Render(m.frame.Text)
	if m.frame.Cursor != "" {
		if m.frame.CursorVisible {
			line += CursorStyle.Render(m.frame.Cursor)
		} else {
			line += strings.Repeat(" ", lipgloss.Width(m.frame.Cursor))
		}
	}
	b.WriteString(line)
	b.WriteString("\n\n")

	status := fmt.Sprintf("%s · phrase %d · %d advance(s)", m.frame.Mode, m.frame.PhraseIndex+1, m.advances)
	if m.done {
		b.WriteString(SuccessStyle.Render(status + " · complete"))
	} else {
		b.WriteString(StatusStyle.Render(status))
	}
	b.WriteString("\n")

	help := make([]string, 0, 2)
	for _, kb := range m.keys.ShortHelp() {
		h := kb.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(HelpStyle.Render(strings.Join(help, " • ")))

	return App.Render(b.String())
}
