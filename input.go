package main

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrGateSyntax is returned when a gate list item cannot be parsed.
var ErrGateSyntax = errors.New("unreadable gate")

// gateItemRegex matches one gate list item. Examples: "h 0", "H q[2]",
// "cx 0 1", "cnot 0,1", "Pauli-X(3)".
var gateItemRegex = regexp.MustCompile(`^([A-Za-z][\w-]*)\s*\(?\s*(?:q\[)?(-?\d+)\]?(?:\s*[,\s]\s*(?:q\[)?(-?\d+)\]?)?\s*\)?;?$`)

// bareGateRegex matches an item that names a gate but gives no operands.
var bareGateRegex = regexp.MustCompile(`^([A-Za-z][\w-]*)$`)

// ParseRequestFields builds a RequestInput from the raw text of the lab form.
// Numbers that do not parse are reported with the same error kind the
// validator would use for a bad value.
func ParseRequestFields(qubits, shots, gates, noise string) (RequestInput, error) {
	var in RequestInput
	var err error

	if in.Qubits, err = parseCountField(qubits, ErrInvalidQubitCount, "number of qubits"); err != nil {
		return in, err
	}
	if in.Shots, err = parseCountField(shots, ErrInvalidShotCount, "number of shots"); err != nil {
		return in, err
	}
	if in.Gates, err = parseGateList(gates); err != nil {
		return in, err
	}
	if in.FlipProbability, err = parseProbability(noise); err != nil {
		return in, err
	}
	return in, nil
}

// parseCountField parses a whole number typed by the user.
func parseCountField(s string, kind error, label string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, requestErr(kind, -1, "%s must be a whole number, got %q", label, s)
	}
	return n, nil
}

// parseGateList splits a gate list on semicolons or newlines and parses each item.
func parseGateList(s string) ([]GateSpec, error) {
	var specs []GateSpec
	items := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' })
	for i, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if m := bareGateRegex.FindStringSubmatch(item); m != nil {
			specs = append(specs, GateSpec{Name: m[1]})
			continue
		}
		m := gateItemRegex.FindStringSubmatch(item)
		if m == nil {
			return nil, requestErr(ErrGateSyntax, i, "%q (use e.g. \"h 0\" or \"cx 0 1\")", item)
		}
		spec := GateSpec{Name: m[1]}
		for _, op := range m[2:] {
			if op == "" {
				continue
			}
			q, err := strconv.Atoi(op)
			if err != nil {
				return nil, requestErr(ErrGateSyntax, i, "bad qubit index %q", op)
			}
			spec.Operands = append(spec.Operands, q)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// parseProbability parses "0.05" or "5%". Empty input means no noise.
func parseProbability(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		scale = 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, requestErr(ErrInvalidFlipProbability, -1, "noise level must be a number, got %q", s)
	}
	v /= scale
	if !(v >= 0 && v <= 1) {
		return nil, requestErr(ErrInvalidFlipProbability, -1, "got %v", v)
	}
	return &v, nil
}

// formatProbability renders a flip probability for form fields.
func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
