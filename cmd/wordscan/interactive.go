package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateGoto
	stateInspect
)

const browseWindow = 20

type interactiveModel struct {
	err      error
	name     string
	words    []uint32
	gotoIn   textinput.Model
	selected int
	top      int
	state    modelState
}

func newInteractiveModel(name string, words []uint32) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "index: "
	ti.Width = 12
	return &interactiveModel{
		name:   name,
		words:  words,
		gotoIn: ti,
		state:  stateBrowse,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		if m.state != stateGoto || keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case "up", "k":
		if m.state == stateBrowse && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateBrowse && m.selected < len(m.words)-1 {
			m.selected++
		}

	case "g":
		if m.state == stateBrowse {
			m.gotoIn.SetValue("")
			m.gotoIn.Focus()
			m.state = stateGoto
			return m, nil
		}

	case "enter":
		switch m.state {
		case stateBrowse:
			if len(m.words) > 0 {
				m.state = stateInspect
			}
		case stateGoto:
			m.applyGoto()
		case stateInspect:
			m.state = stateBrowse
		}

	case "esc":
		if m.state != stateBrowse {
			m.gotoIn.Blur()
			m.err = nil
			m.state = stateBrowse
		}
	}

	if m.state == stateGoto {
		var cmd tea.Cmd
		m.gotoIn, cmd = m.gotoIn.Update(msg)
		return m, cmd
	}

	m.clampWindow()
	return m, nil
}

func (m *interactiveModel) applyGoto() {
	idx, err := strconv.Atoi(strings.TrimSpace(m.gotoIn.Value()))
	if err != nil || idx < 0 || idx >= len(m.words) {
		m.err = fmt.Errorf("no word at index %q", m.gotoIn.Value())
		return
	}
	m.selected = idx
	m.err = nil
	m.gotoIn.Blur()
	m.state = stateBrowse
}

func (m *interactiveModel) clampWindow() {
	if m.selected < m.top {
		m.top = m.selected
	}
	if m.selected >= m.top+browseWindow {
		m.top = m.selected - browseWindow + 1
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("wordscan"))
	b.WriteString(fmt.Sprintf(" %s (%d words)\n\n", m.name, len(m.words)))

	if len(m.words) == 0 {
		b.WriteString("No words loaded.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateBrowse, stateGoto:
		end := min(m.top+browseWindow, len(m.words))
		for i := m.top; i < end; i++ {
			line := fmt.Sprintf("%5d  0x%08X  %11d  %s  %s",
				i, m.words[i], m.words[i], laneString(m.words[i]), asciiLanes(m.words[i]))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateGoto {
			b.WriteString(m.gotoIn.View())
			b.WriteString("\n")
			if m.err != nil {
				b.WriteString(errorStyle.Render(m.err.Error()))
				b.WriteString("\n")
			}
			b.WriteString(helpStyle.Render("enter jump • esc back"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • g goto • q quit"))
		}

	case stateInspect:
		b.WriteString(fmt.Sprintf("Word %d:\n\n", m.selected))
		for _, line := range interpretations(m.words[m.selected]) {
			b.WriteString("  ")
			b.WriteString(valueStyle.Render(line))
			b.WriteString("\n")
		}
		if m.selected+1 < len(m.words) {
			pair := uint64(m.words[m.selected]) | uint64(m.words[m.selected+1])<<32
			b.WriteString("\n  with next word as the high half:\n")
			b.WriteString("  ")
			b.WriteString(valueStyle.Render(fmt.Sprintf("u64      %d", pair)))
			b.WriteString("\n  ")
			b.WriteString(valueStyle.Render(fmt.Sprintf("s64      %d", int64(pair))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter back • q quit"))
	}

	return b.String()
}

func runInteractive(name string, words []uint32) error {
	p := tea.NewProgram(newInteractiveModel(name, words), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
