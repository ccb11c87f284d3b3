package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/amqp-codec/codec"
	"github.com/wippyai/amqp-codec/framing"
	"github.com/wippyai/amqp-codec/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	domainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectStruct modelState = iota
	stateInputFields
	stateShowResult
)

type interactiveModel struct {
	err        error
	instance   *codec.Struct
	result     string
	structures []*schema.Structure
	fields     []leaf
	inputs     []textinput.Model
	selected   int
	focusIdx   int
	state      modelState
	framed     bool
}

type encodedMsg struct {
	err      error
	instance *codec.Struct
	result   string
}

func newInteractiveModel() *interactiveModel {
	return &interactiveModel{
		structures: framing.Registry().All(),
		state:      stateSelectStruct,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputFields {
				return m, tea.Quit
			}

		case "f":
			if m.state == stateSelectStruct {
				m.framed = !m.framed
			}

		case "up", "k":
			if m.state == stateSelectStruct && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectStruct && m.selected < len(m.structures)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectStruct:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.encode
				}
				m.state = stateInputFields
				return m, nil

			case stateInputFields:
				return m, m.encode

			case stateShowResult:
				m.reset()
			}

		case "tab", "shift+tab":
			if m.state == stateInputFields && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				step := 1
				if msg.String() == "shift+tab" {
					step = len(m.inputs) - 1
				}
				m.focusIdx = (m.focusIdx + step) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInputFields:
				m.state = stateSelectStruct
				m.inputs = nil
			case stateShowResult:
				m.reset()
			}
		}

	case encodedMsg:
		m.result = msg.result
		m.instance = msg.instance
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputFields {
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

func (m *interactiveModel) reset() {
	m.state = stateSelectStruct
	m.result = ""
	m.instance = nil
	m.err = nil
	m.inputs = nil
}

func (m *interactiveModel) prepareInputs() {
	m.fields = leaves(m.structures[m.selected])
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, l := range m.fields {
		ti := textinput.New()
		ti.Placeholder = l.field.Domain()
		ti.Prompt = l.path + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) encode() tea.Msg {
	s := codec.New(m.structures[m.selected])
	for i, input := range m.inputs {
		if input.Value() == "" {
			continue
		}
		if err := assign(s, m.fields[i].path, input.Value()); err != nil {
			return encodedMsg{err: err}
		}
	}

	data, err := encode(s, m.framed)
	if err != nil {
		return encodedMsg{err: err}
	}
	return encodedMsg{instance: s, result: hex.Dump(data)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("AMQP Layout"))
	if m.framed {
		b.WriteString(" framed")
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectStruct:
		b.WriteString("Select a structure to encode:\n\n")
		for i, s := range m.structures {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + formatStructure(s)))
			} else {
				b.WriteString("  " + formatStructure(s))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter encode • f toggle framing • q quit"))

	case stateInputFields:
		s := m.structures[m.selected]
		b.WriteString(fmt.Sprintf("Encoding %s\n\n", nameStyle.Render(s.QualifiedName())))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(domainStyle.Render(m.fields[i].field.Domain()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter encode • esc back"))

	case stateShowResult:
		s := m.structures[m.selected]
		b.WriteString(fmt.Sprintf("Encoding of %s:\n\n", nameStyle.Render(s.QualifiedName())))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(fmt.Sprintf("Size: %d bytes\n", m.instance.Size()))
			if s.Packed() {
				b.WriteString(fmt.Sprintf("Flags: %0*x\n", s.PackWidth()*2, codec.Flags(m.instance)))
			}
			b.WriteString(m.instance.String())
			b.WriteString("\n\n")
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatStructure(s *schema.Structure) string {
	var fields []string
	for _, f := range s.Fields() {
		fields = append(fields, f.Name+": "+domainStyle.Render(f.Domain()))
	}
	kind := "struct"
	if s.IsMethod() {
		kind = fmt.Sprintf("method %d.%d", s.ClassID(), s.MethodID())
	}
	return nameStyle.Render(s.QualifiedName()) + " " + kind + " (" + strings.Join(fields, ", ") + ")"
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
