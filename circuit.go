package main

import (
	"fmt"
	"strings"
)

// Gate represents a gate placed on the circuit timeline.
type Gate struct {
	Type    string // "H", "X", "Y", "Z", "CX" or "MEASURE"
	Target  int
	Control int // -1 if not a controlled gate
	Step    int // position in circuit timeline
}

// Circuit holds the gates of one request laid out in time steps.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

// AddGate appends a gate to the circuit.
func (c *Circuit) AddGate(gateType string, target, step int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// BuildCircuit lays out a validated request. Each gate goes into the first
// step after the last one that touched any of its qubits. With measure set,
// every qubit is measured into the classical bit of the same index, one per
// step after all gates.
func BuildCircuit(req CircuitRequest, measure bool) *Circuit {
	c := &Circuit{NumQubits: req.Qubits}
	next := make([]int, req.Qubits) // first free step per qubit

	for _, op := range req.Gates {
		step := 0
		for _, q := range op.Operands {
			step = max(step, next[q])
		}
		if op.Kind == CNOT {
			// the connector crosses every wire between control and target
			lo, hi := min(op.Operands[0], op.Operands[1]), max(op.Operands[0], op.Operands[1])
			for q := lo; q <= hi; q++ {
				step = max(step, next[q])
			}
			c.AddGate(string(CNOT), op.Operands[1], step, op.Operands[0])
			for q := lo; q <= hi; q++ {
				next[q] = step + 1
			}
			continue
		}
		c.AddGate(string(op.Kind), op.Operands[0], step)
		next[op.Operands[0]] = step + 1
	}

	if measure {
		step := c.MaxSteps
		for q := range req.Qubits {
			c.AddGate("MEASURE", q, step+q)
		}
	}
	return c
}

// gateReferences reports whether the gate references the given qubit.
func (g Gate) gateReferences(qubit int) bool {
	return g.Target == qubit || g.Control == qubit
}

// GetGateAt returns the gate at the given step and qubit, or nil.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.gateReferences(qubit) {
			return g
		}
	}
	return nil
}

// NumCbits returns the number of classical bits needed (derived from measurements).
// Returns 0 when no measurements exist.
func (c *Circuit) NumCbits() int {
	maxMeasureQubit := -1
	for _, gate := range c.Gates {
		if gate.Type == "MEASURE" {
			maxMeasureQubit = max(maxMeasureQubit, gate.Target)
		}
	}
	return maxMeasureQubit + 1
}

// GetMeasureAtStep returns the qubit index being measured at the given step, or -1 if none.
func (c *Circuit) GetMeasureAtStep(step int) int {
	for _, g := range c.Gates {
		if g.Step == step && g.Type == "MEASURE" {
			return g.Target
		}
	}
	return -1
}

// UnitaryGates returns the gates in step order, without measurements.
func (c *Circuit) UnitaryGates() []Gate {
	var out []Gate
	for step := range c.MaxSteps {
		for _, g := range c.Gates {
			if g.Step == step && g.Type != "MEASURE" {
				out = append(out, g)
			}
		}
	}
	return out
}

// ToQASM generates QASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	numQubits := max(c.NumQubits, 1)
	numCbits := max(c.NumCbits(), 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numCbits)

	for step := range c.MaxSteps {
		for _, gate := range c.Gates {
			if gate.Step != step {
				continue
			}
			switch {
			case gate.Type == "MEASURE":
				fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", gate.Target, gate.Target)
			case gate.Control >= 0:
				fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", gate.Control, gate.Target)
			default:
				fmt.Fprintf(&sb, "%s q[%d];\n", strings.ToLower(gate.Type), gate.Target)
			}
		}
	}

	return sb.String()
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate         *Gate
	isControl    bool
	isTarget     bool
	vertAbove    bool
	vertBelow    bool
	passThrough  bool
	measureBelow bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo

	gate := c.GetGateAt(step, qubit)
	if gate != nil {
		info.gate = gate
		info.isControl = gate.Control == qubit
		info.isTarget = gate.Target == qubit && gate.Control >= 0
	}

	for _, g := range c.Gates {
		if g.Step != step {
			continue
		}
		if g.Control >= 0 {
			minQ, maxQ := min(g.Control, g.Target), max(g.Control, g.Target)
			if qubit >= minQ && qubit <= maxQ {
				if qubit > minQ {
					info.vertAbove = true
				}
				if qubit < maxQ {
					info.vertBelow = true
				}
				if qubit > minQ && qubit < maxQ && info.gate == nil {
					info.passThrough = true
				}
			}
		}
		// the double wire runs from a measured qubit down to the classical register
		if g.Type == "MEASURE" && qubit > g.Target {
			info.measureBelow = true
		}
	}

	return info
}
