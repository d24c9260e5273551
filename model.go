package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// screen represents which page has keyboard input.
type screen int

const (
	screenMenu screen = iota
	screenLab
)

// Model represents the TUI application state.
type Model struct {
	session   *Session
	cfg       *Config
	log       *zap.Logger
	screen    screen
	width     int
	height    int
	statusMsg string // transient status message (e.g. save confirmation)
	statusErr bool

	// Menu state
	menuIdx int

	// Lab state
	lab      labKind
	fields   []formField
	fieldIdx int
	result   *RunResult
	output   viewport.Model
}

func initialModel(session *Session, cfg *Config, log *zap.Logger) Model {
	vp := viewport.New(60, 20)
	return Model{
		session: session,
		cfg:     cfg,
		log:     log,
		screen:  screenMenu,
		output:  vp,
	}
}

// openLab switches to the lab screen with a fresh form.
func (m *Model) openLab(kind labKind) {
	m.screen = screenLab
	m.lab = kind
	m.fields = labFields(kind, m.cfg)
	m.fieldIdx = 0
	m.result = nil
	m.output.SetContent(dimStyle.Render("Fill in the form and press Enter to run the simulation."))
	m.output.GotoTop()
	m.focusField(0)
}

// focusField moves keyboard focus to field i, blurring the others.
func (m *Model) focusField(i int) {
	if len(m.fields) == 0 {
		return
	}
	m.fieldIdx = (i + len(m.fields)) % len(m.fields)
	for j := range m.fields {
		if m.fields[j].kind != fieldText {
			continue
		}
		if j == m.fieldIdx {
			m.fields[j].input.Focus()
		} else {
			m.fields[j].input.Blur()
		}
	}
}

// runLab validates the form, runs it through the session and shows the result.
func (m *Model) runLab() {
	in, err := labRequest(m.lab, m.fields)
	if err == nil {
		var res *RunResult
		res, err = m.session.Run(in)
		if err == nil {
			m.result = res
			m.setStatus(fmt.Sprintf("Ran %d shots on %d qubit(s)", res.Request.Shots, res.Request.Qubits), false)
			m.output.SetContent(renderResult(res))
			m.output.GotoTop()
			return
		}
	}
	m.log.Warn("lab run failed", zap.String("lab", labMenu[m.lab].name), zap.Error(err))
	m.setStatus(err.Error(), true)
}

// saveQASM writes the last run's circuit to circuit.qasm.
func (m *Model) saveQASM() {
	if m.result == nil {
		m.setStatus("Nothing to save yet, run the simulation first", true)
		return
	}
	if err := os.WriteFile("circuit.qasm", []byte(m.result.QASM), 0644); err != nil {
		m.setStatus(fmt.Sprintf("Save error: %v", err), true)
		return
	}
	m.setStatus("Saved circuit.qasm", false)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.output.Width = max(msg.Width-formW-8, 20)
		m.output.Height = max(msg.Height-8, 4)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.screen {
		case screenMenu:
			switch key {
			case "q", "esc":
				return m, tea.Quit
			case "up", "k":
				if m.menuIdx > 0 {
					m.menuIdx--
				}
			case "down", "j":
				if m.menuIdx < len(labMenu)-1 {
					m.menuIdx++
				}
			case "enter":
				m.statusMsg = ""
				m.openLab(labMenu[m.menuIdx].kind)
			}

		case screenLab:
			f := &m.fields[m.fieldIdx]
			switch key {
			case "esc":
				m.screen = screenMenu
				m.statusMsg = ""
			case "tab", "down":
				m.focusField(m.fieldIdx + 1)
			case "shift+tab", "up":
				m.focusField(m.fieldIdx - 1)
			case "enter":
				m.runLab()
			case "ctrl+s":
				m.saveQASM()
			case "pgup", "pgdown", "ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				m.output, cmd = m.output.Update(msg)
				cmds = append(cmds, cmd)
			case " ":
				switch f.kind {
				case fieldToggle:
					f.on = !f.on
				case fieldText:
					var cmd tea.Cmd
					f.input, cmd = f.input.Update(msg)
					cmds = append(cmds, cmd)
				}
			case "left", "right":
				if f.kind == fieldChoice {
					step := 1
					if key == "left" {
						step = len(f.choices) - 1
					}
					f.choice = (f.choice + step) % len(f.choices)
					break
				}
				fallthrough
			default:
				if f.kind == fieldText {
					var cmd tea.Cmd
					f.input, cmd = f.input.Update(msg)
					cmds = append(cmds, cmd)
				}
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.screen == screenMenu {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderMenu())
	}

	panelH := max(m.height-6, 6)
	form := m.renderForm(panelH)
	results := resultStyle.Width(max(m.width-formW-6, 24)).Height(panelH).Render(m.output.View())
	top := lipgloss.JoinHorizontal(lipgloss.Top, form, results)

	return lipgloss.JoinVertical(lipgloss.Left, top, m.renderControlsPanel(m.width-4))
}

// renderControlsPanel renders the bottom help/status bar.
func (m Model) renderControlsPanel(width int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Keys: "))
	sb.WriteString("Tab/↑↓ Field  Space Toggle  ←→ Choose  ⏎ Run  PgUp/PgDn Scroll  ^S Save QASM  Esc Menu  ^C Quit")
	sb.WriteString("\n")
	switch {
	case m.statusMsg == "":
		sb.WriteString(dimStyle.Render("Ready"))
	case m.statusErr:
		sb.WriteString(errorStyle.Render(m.statusMsg))
	default:
		sb.WriteString(activeGateStyle.Render(m.statusMsg))
	}

	return controlsStyle.Width(width).Render(sb.String())
}
