// Package step implements an interactive expansion stepper: a terminal UI
// that drives the engine one node per keypress, rendering the partially
// flattened tree so grammar authors can watch rules resolve and keys bind.
package step

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/caranatar/tracerz/grammar"
)

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Run drives the stepper UI to completion over the given grammar.
func Run(ctx context.Context, gram *grammar.Grammar, start string) error {
	program := tea.NewProgram(
		newModel(gram, start),
		tea.WithContext(ctx),
	)

	_, err := program.Run()

	return err
}

// mode distinguishes stepping from editing the start text.
type mode int

const (
	modeStep mode = iota
	modeEdit
)

type model struct {
	gram  *grammar.Grammar
	tree  *grammar.Tree
	input textinput.Model

	start      string
	output     string
	mode       mode
	steps      int
	done       bool
	showHidden bool
	err        error
}

func newModel(gram *grammar.Grammar, start string) model {
	input := textinput.New()
	input.Placeholder = start

	m := model{
		gram:  gram,
		input: input,
		start: start,
	}

	m.reset(start)

	return m
}

// reset discards the current tree and begins a fresh expansion.
func (m *model) reset(start string) {
	m.start = start
	m.tree = m.gram.Tree(start)
	m.steps = 0
	m.done = false
	m.err = nil
	m.refresh()
}

// step advances the expansion by one node.
func (m *model) step() {
	if m.done || m.err != nil {
		return
	}

	more, err := m.tree.Step()
	if err != nil {
		m.err = err

		return
	}

	m.steps++
	m.done = !more
	m.refresh()
}

// finish drives the expansion to completion.
func (m *model) finish() {
	for !m.done && m.err == nil {
		m.step()
	}
}

// refresh recomputes the rendered intermediate output.
func (m *model) refresh() {
	output, err := m.tree.FlattenWith(!m.showHidden, false)
	if err != nil {
		m.err = err

		return
	}

	m.output = output
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode == modeEdit {
		return m.updateEdit(key)
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "s", " ", "enter":
		m.step()
	case "f":
		m.finish()
	case "r":
		m.reset(m.start)
	case "h":
		m.showHidden = !m.showHidden
		m.refresh()
	case "e":
		m.mode = modeEdit
		m.input.SetValue(m.start)
		m.input.Focus()
	}

	return m, nil
}

func (m model) updateEdit(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.mode = modeStep
		m.input.Blur()

		if value := m.input.Value(); value != "" {
			m.reset(value)
		}

		return m, nil
	case "esc":
		m.mode = modeStep
		m.input.Blur()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(key)

	return m, cmd
}

func (m model) View() string {
	var body string

	switch {
	case m.err != nil:
		body = errorStyle.Render(m.err.Error())
	default:
		body = outputStyle.Render(m.output)
	}

	status := fmt.Sprintf("step %d", m.steps)
	if m.done {
		status = doneStyle.Render(status + " (complete)")
	}

	if m.mode == modeEdit {
		return titleStyle.Render("tracerz step") + "\n" +
			m.input.View() + "\n" +
			hintStyle.Render("enter: restart with new start text  esc: cancel") + "\n"
	}

	return titleStyle.Render("tracerz step") + "  " + status + "\n" +
		body + "\n" +
		hintStyle.Render(
			"s/space: step  f: finish  r: restart  h: toggle hidden  e: edit start  q: quit",
		) + "\n"
}
