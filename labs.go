package main

import (
	"fmt"
	"strings"
)

// labKind identifies one of the lab screens.
type labKind int

const (
	labSuperposition labKind = iota
	labMultiQubit
	labMeasurement
	labInterference
	labCustom
)

// maxBroadcastQubits bounds how many per-qubit gates a lab will generate
// before the request is validated.
const maxBroadcastQubits = 64

// superpositionInput is the single-qubit lab: |0⟩, optionally through a Hadamard.
func superpositionInput(applyH bool, shots string) (RequestInput, error) {
	gates := ""
	if applyH {
		gates = "h 0"
	}
	return ParseRequestFields("1", shots, gates, "")
}

// multiQubitInput applies one gate to one target. control is only read for CNOT.
func multiQubitInput(qubits, gate, target, control, shots string) (RequestInput, error) {
	item := fmt.Sprintf("%s %s", gate, strings.TrimSpace(target))
	if kind, ok := ParseGateKind(gate); ok && kind == CNOT {
		item = fmt.Sprintf("%s %s %s", gate, strings.TrimSpace(control), strings.TrimSpace(target))
	}
	return ParseRequestFields(qubits, shots, item, "")
}

// measurementInput applies op to every qubit and measures all of them.
func measurementInput(qubits, shots string, op GateKind) (RequestInput, error) {
	n, err := parseCountField(qubits, ErrInvalidQubitCount, "number of qubits")
	if err != nil {
		return RequestInput{}, err
	}
	gates, err := broadcast(op, n)
	if err != nil {
		return RequestInput{}, err
	}
	return ParseRequestFields(qubits, shots, gates, "")
}

// interferenceInput layers Hadamard on all qubits, Pauli-X on all qubits and a
// CNOT chain i→i+1, each optional, then bit-flip noise on the counts.
func interferenceInput(qubits, shots string, applyH, applyX, applyCNOT bool, noise string) (RequestInput, error) {
	n, err := parseCountField(qubits, ErrInvalidQubitCount, "number of qubits")
	if err != nil {
		return RequestInput{}, err
	}
	var items []string
	for _, layer := range []struct {
		on   bool
		kind GateKind
	}{{applyH, Hadamard}, {applyX, PauliX}} {
		if !layer.on {
			continue
		}
		gates, err := broadcast(layer.kind, n)
		if err != nil {
			return RequestInput{}, err
		}
		items = append(items, gates)
	}
	if applyCNOT {
		if n > maxBroadcastQubits {
			return RequestInput{}, errLabTooWide(n)
		}
		for i := 0; i < n-1; i++ {
			items = append(items, fmt.Sprintf("cx %d %d", i, i+1))
		}
	}
	return ParseRequestFields(qubits, shots, strings.Join(items, ";"), noise)
}

// broadcast returns a gate list applying kind to qubits 0..n-1. An empty
// register yields no gates and is left to the validator.
func broadcast(kind GateKind, n int) (string, error) {
	if n > maxBroadcastQubits {
		return "", errLabTooWide(n)
	}
	if n < 1 {
		return "", nil
	}
	items := make([]string, n)
	for q := range n {
		items[q] = fmt.Sprintf("%s %d", strings.ToLower(string(kind)), q)
	}
	return strings.Join(items, ";"), nil
}

func errLabTooWide(n int) error {
	return requestErr(ErrInvalidQubitCount, -1, "labs generate gates for at most %d qubits, got %d", maxBroadcastQubits, n)
}
