package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/evm-abi/abitype"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateInput modelState = iota
	stateShowResult
)

const (
	inputSignature = iota
	inputValues
	inputPrefix
)

type interactiveModel struct {
	err      error
	canon    string
	lines    []wordLine
	inputs   []textinput.Model
	focusIdx int
	state    modelState
}

type encodedMsg struct {
	err   error
	canon string
	lines []wordLine
}

func newInteractiveModel() *interactiveModel {
	prompts := []struct{ prompt, placeholder string }{
		{"signature: ", "transfer(address to, uint256 amount)"},
		{"values:    ", `["0x00000000000000000000000000000000000000aa", 1000]`},
		{"prefix:    ", "0xa9059cbb"},
	}

	m := &interactiveModel{state: stateInput}
	for i, p := range prompts {
		ti := textinput.New()
		ti.Prompt = p.prompt
		ti.Placeholder = p.placeholder
		ti.Width = 60
		if i == 0 {
			ti.Focus()
		}
		m.inputs = append(m.inputs, ti)
	}
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowResult {
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateInput:
				return m, m.encode
			case stateShowResult:
				m.state = stateInput
				m.err = nil
				m.lines = nil
				return m, nil
			}

		case "tab", "shift+tab":
			if m.state == stateInput {
				step := 1
				if msg.String() == "shift+tab" {
					step = len(m.inputs) - 1
				}
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + step) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}

		case "esc":
			if m.state == stateShowResult {
				m.state = stateInput
				m.err = nil
				m.lines = nil
				return m, nil
			}
			return m, tea.Quit
		}

	case encodedMsg:
		m.err = msg.err
		m.canon = msg.canon
		m.lines = msg.lines
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInput {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) encode() tea.Msg {
	args, err := parseSignatureOrArgs(m.inputs[inputSignature].Value())
	if err != nil {
		return encodedMsg{err: err}
	}

	raw := strings.TrimSpace(m.inputs[inputValues].Value())
	if raw == "" {
		raw = "[]"
	}
	values, err := decodeValues(raw)
	if err != nil {
		return encodedMsg{err: err}
	}

	v, err := abitype.Build(args, values)
	if err != nil {
		return encodedMsg{err: err}
	}

	prefix, err := decodePrefix(strings.TrimSpace(m.inputs[inputPrefix].Value()))
	if err != nil {
		return encodedMsg{err: err}
	}
	return encodedMsg{canon: args.String(), lines: formatWords(v.Encode(prefix), len(prefix))}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ABI Encoder"))
	b.WriteString("\n\n")

	switch m.state {
	case stateInput:
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter encode • esc quit"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(typeStyle.Render(m.canon))
			b.WriteString("\n\n")
			for _, line := range m.lines {
				b.WriteString(helpStyle.Render(line.offset))
				b.WriteString("  ")
				b.WriteString(resultStyle.Render(line.hex))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit • q quit"))
	}

	return b.String()
}

// parseSignatureOrArgs accepts either name(args) or a bare argument list.
func parseSignatureOrArgs(s string) (*abitype.Type, error) {
	if _, args, err := abitype.ParseSignature(s); err == nil {
		return args, nil
	}
	return abitype.ParseArgs(s)
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
