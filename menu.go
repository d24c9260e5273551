package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// labItem is one entry of the main menu.
type labItem struct {
	name    string
	kind    labKind
	summary string
}

// labMenu lists the labs in menu order.
var labMenu = []labItem{
	{name: "Single Qubit Superposition", kind: labSuperposition, summary: "|0⟩ through an optional Hadamard"},
	{name: "Multi-Qubit Superposition", kind: labMultiQubit, summary: "one gate on one target qubit"},
	{name: "Effects of Measurement", kind: labMeasurement, summary: "H or X on every qubit, then measure"},
	{name: "Interference Simulation", kind: labInterference, summary: "H / X / CNOT chain with bit-flip noise"},
	{name: "Custom Circuit", kind: labCustom, summary: "free-form gate list, e.g. h 0; cx 0 1"},
}

// fieldKind selects how a form field is edited.
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldToggle
	fieldChoice
)

// formField is one input on a lab screen.
type formField struct {
	label   string
	kind    fieldKind
	input   textinput.Model
	on      bool
	choices []string
	choice  int
}

func newTextField(label, value, placeholder string) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = formW - 4
	ti.SetValue(value)
	return formField{label: label, kind: fieldText, input: ti}
}

func newToggleField(label string, on bool) formField {
	return formField{label: label, kind: fieldToggle, on: on}
}

func newChoiceField(label string, choices ...string) formField {
	return formField{label: label, kind: fieldChoice, choices: choices}
}

// value returns the field's current text (or selected choice).
func (f formField) value() string {
	switch f.kind {
	case fieldChoice:
		return f.choices[f.choice]
	case fieldToggle:
		if f.on {
			return "on"
		}
		return "off"
	default:
		return f.input.Value()
	}
}

// gateChoices are the gate kinds offered by choice fields.
var gateChoices = []string{
	Hadamard.DisplayName(), PauliX.DisplayName(), PauliY.DisplayName(), PauliZ.DisplayName(), CNOT.DisplayName(),
}

// labFields returns the initial form for a lab.
func labFields(kind labKind, cfg *Config) []formField {
	shots := fmt.Sprintf("%d", cfg.DefaultShots)
	switch kind {
	case labSuperposition:
		return []formField{
			newToggleField("Apply Hadamard", true),
			newTextField("Number of Shots", shots, "1024"),
		}
	case labMultiQubit:
		return []formField{
			newTextField("Number of Qubits", "2", "2"),
			newChoiceField("Gate Type", gateChoices...),
			newTextField("Target Qubit", "0", "0"),
			newTextField("Control Qubit (CNOT)", "1", "1"),
			newTextField("Number of Shots", shots, "1024"),
		}
	case labMeasurement:
		return []formField{
			newTextField("Number of Qubits", "2", "2"),
			newTextField("Number of Shots", shots, "1024"),
			newChoiceField("Quantum Operation", Hadamard.DisplayName(), PauliX.DisplayName()),
		}
	case labInterference:
		return []formField{
			newTextField("Number of Qubits", "2", "2"),
			newTextField("Number of Shots", shots, "1024"),
			newToggleField("Apply Hadamard Gate", true),
			newToggleField("Apply CNOT Gates", true),
			newToggleField("Apply Pauli-X Gate", false),
			newTextField("Noise Level", formatProbability(cfg.DefaultNoise), "0.05 or 5%"),
		}
	default:
		return []formField{
			newTextField("Number of Qubits", "2", "2"),
			newTextField("Number of Shots", shots, "1024"),
			newTextField("Gates", "h 0; cx 0 1", "h 0; cx 0 1"),
			newTextField("Noise Level", "", "empty for none"),
		}
	}
}

// labRequest turns a filled-in form into a request input.
func labRequest(kind labKind, fields []formField) (RequestInput, error) {
	v := func(i int) string { return fields[i].value() }
	switch kind {
	case labSuperposition:
		return superpositionInput(fields[0].on, v(1))
	case labMultiQubit:
		return multiQubitInput(v(0), v(1), v(2), v(3), v(4))
	case labMeasurement:
		op, _ := ParseGateKind(v(2))
		return measurementInput(v(0), v(1), op)
	case labInterference:
		return interferenceInput(v(0), v(1), fields[2].on, fields[4].on, fields[3].on, v(5))
	default:
		return ParseRequestFields(v(0), v(1), v(2), v(3))
	}
}

// renderMenu renders the lab picker.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Simulation Toolkit"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 48)))
	sb.WriteString("\n")

	for i, item := range labMenu {
		if i == m.menuIdx {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-28s", item.name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-28s", item.name)))
		}
		sb.WriteString("\n")
		sb.WriteString("   " + dimStyle.Render(item.summary) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" noise policy: %s", m.session.Policy())))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Open  q Quit"))

	return menuBorderStyle.Render(sb.String())
}

// renderForm renders the lab form panel.
func (m Model) renderForm(height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(labMenu[m.lab].name))
	sb.WriteString("\n\n")

	for i, f := range m.fields {
		label := f.label
		if i == m.fieldIdx {
			sb.WriteString(menuSelectedStyle.Render("▸ " + label))
		} else {
			sb.WriteString(menuNormalStyle.Render("  " + label))
		}
		sb.WriteString("\n  ")
		switch f.kind {
		case fieldToggle:
			box := "[ ]"
			if f.on {
				box = "[x]"
			}
			sb.WriteString(gateStyle.Render(box))
			if i == m.fieldIdx {
				sb.WriteString(dimStyle.Render("  space toggles"))
			}
		case fieldChoice:
			sb.WriteString(gateStyle.Render("◂ " + f.value() + " ▸"))
		default:
			sb.WriteString(f.input.View())
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(activeGateStyle.Render("⏎ Run Simulation"))

	return formStyle.Width(formW).Height(height).Render(sb.String())
}
