package ui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type doneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newSpinnerModel(label string, style lipgloss.Style) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = style
	return spinnerModel{spinner: sp, label: label}
}

func (m spinnerModel) Init() tea.Cmd { return m.spinner.Tick }

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	// Clear the line once finished so the result prints cleanly
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label
}

// Load runs fn while showing a spinner labelled label on out. When out is
// not a terminal fn simply runs.
func Load[T any](ctx context.Context, out io.Writer, s Styles, label string, fn func(context.Context) (T, error)) (T, error) {
	if !IsTerminal(out) {
		return fn(ctx)
	}

	type result struct {
		v   T
		err error
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		newSpinnerModel(label, s.Spinner),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)

	results := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		results <- result{v, err}
		p.Send(doneMsg{})
	}()

	// Run also returns on interrupt, in which case fn is cancelled.
	if _, err := p.Run(); err != nil {
		cancel()
	}

	r := <-results
	return r.v, r.err
}
