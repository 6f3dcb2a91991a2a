// Package spinner shows a progress indicator while a long sequential step
// runs. The indicator renders on its own goroutine; the work it decorates
// stays on the caller's.
package spinner

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Terminal renders a dot spinner followed by a message.
type Terminal struct {
	Out io.Writer

	program *tea.Program
	done    chan struct{}
}

// New returns a Terminal spinner writing to out (os.Stderr when nil).
func New(out io.Writer) *Terminal {
	if out == nil {
		out = os.Stderr
	}
	return &Terminal{Out: out}
}

// Start begins rendering. Calling Start on a running spinner is a no-op.
func (t *Terminal) Start(message string) {
	if t.program != nil {
		return
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	t.program = tea.NewProgram(
		model{spinner: s, message: message},
		tea.WithOutput(t.Out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	t.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(t.program, t.done)
}

// Stop clears the spinner line and waits for the renderer to exit.
func (t *Terminal) Stop() {
	if t.program == nil {
		return
	}
	t.program.Send(stopMsg{})
	<-t.done
	t.program = nil
	t.done = nil
}

// None is a spinner that renders nothing.
type None struct{}

// Start does nothing.
func (None) Start(string) {}

// Stop does nothing.
func (None) Stop() {}

type stopMsg struct{}

type model struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}
