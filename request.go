package main

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for request validation. A *RequestError matches exactly one
// of them under errors.Is.
var (
	ErrInvalidQubitCount  = errors.New("invalid qubit count")
	ErrInvalidShotCount   = errors.New("invalid shot count")
	ErrOperandOutOfRange  = errors.New("operand out of range")
	ErrUnsupportedGate    = errors.New("unsupported gate")
	ErrInsufficientQubits = errors.New("insufficient qubits")
	ErrOperandCount       = errors.New("wrong number of operands")
)

// RequestError describes why a circuit request was rejected.
type RequestError struct {
	Kind   error // one of the sentinel errors above
	Gate   int   // index of the offending gate, -1 when not gate specific
	Detail string
}

func (e *RequestError) Error() string {
	if e.Gate >= 0 {
		return fmt.Sprintf("gate %d: %s: %s", e.Gate+1, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *RequestError) Unwrap() error { return e.Kind }

// KindName returns a stable identifier for the error kind, used in API responses.
func (e *RequestError) KindName() string {
	switch e.Kind {
	case ErrInvalidQubitCount:
		return "InvalidQubitCount"
	case ErrInvalidShotCount:
		return "InvalidShotCount"
	case ErrOperandOutOfRange:
		return "OperandOutOfRange"
	case ErrUnsupportedGate:
		return "UnsupportedGate"
	case ErrInsufficientQubits:
		return "InsufficientQubits"
	case ErrOperandCount:
		return "OperandCount"
	case ErrInvalidFlipProbability:
		return "InvalidFlipProbability"
	case ErrGateSyntax:
		return "GateSyntax"
	}
	return "InvalidRequest"
}

func requestErr(kind error, gate int, format string, args ...any) *RequestError {
	return &RequestError{Kind: kind, Gate: gate, Detail: fmt.Sprintf(format, args...)}
}

// GateKind is one of the gates the lab supports.
type GateKind string

const (
	Hadamard GateKind = "H"
	PauliX   GateKind = "X"
	PauliY   GateKind = "Y"
	PauliZ   GateKind = "Z"
	CNOT     GateKind = "CX"
)

// gateAliases maps accepted (lower-case) spellings to gate kinds.
var gateAliases = map[string]GateKind{
	"hadamard": Hadamard, "h": Hadamard,
	"pauli-x": PauliX, "paulix": PauliX, "x": PauliX, "not": PauliX,
	"pauli-y": PauliY, "pauliy": PauliY, "y": PauliY,
	"pauli-z": PauliZ, "pauliz": PauliZ, "z": PauliZ,
	"cnot": CNOT, "cx": CNOT,
}

// ParseGateKind resolves a user-facing gate name.
func ParseGateKind(name string) (GateKind, bool) {
	k, ok := gateAliases[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Arity returns the number of qubit operands the gate takes.
func (k GateKind) Arity() int {
	if k == CNOT {
		return 2
	}
	return 1
}

// DisplayName returns the long name shown in menus.
func (k GateKind) DisplayName() string {
	switch k {
	case Hadamard:
		return "Hadamard"
	case PauliX:
		return "Pauli-X"
	case PauliY:
		return "Pauli-Y"
	case PauliZ:
		return "Pauli-Z"
	case CNOT:
		return "CNOT"
	}
	return string(k)
}

// GateSpec is an unvalidated gate as entered by the user.
type GateSpec struct {
	Name     string `json:"name"`
	Operands []int  `json:"operands"`
}

// RequestInput is an unvalidated circuit request.
type RequestInput struct {
	Qubits          int        `json:"qubits"`
	Shots           int        `json:"shots"`
	Gates           []GateSpec `json:"gates"`
	FlipProbability *float64   `json:"flip_probability,omitempty"`
}

// GateOp is a validated gate. For CNOT, Operands is [control, target].
type GateOp struct {
	Kind     GateKind `json:"kind"`
	Operands []int    `json:"operands"`
}

// CircuitRequest is a request that passed validation and can be simulated.
type CircuitRequest struct {
	Qubits          int      `json:"qubits"`
	Shots           int      `json:"shots"`
	Gates           []GateOp `json:"gates"`
	FlipProbability *float64 `json:"flip_probability,omitempty"`
}

// NoiseEnabled reports whether bit-flip noise should be applied to the counts.
func (r CircuitRequest) NoiseEnabled() bool {
	return r.FlipProbability != nil && *r.FlipProbability > 0
}

// Limits bounds request sizes. Zero fields are unbounded.
type Limits struct {
	MaxQubits int
	MaxShots  int
}

// ValidateRequest checks a request before it reaches the simulator. Failures
// are returned as *RequestError.
func ValidateRequest(in RequestInput, limits Limits) (CircuitRequest, error) {
	n := in.Qubits
	if n < 1 {
		return CircuitRequest{}, requestErr(ErrInvalidQubitCount, -1, "need at least 1 qubit, got %d", n)
	}
	if limits.MaxQubits > 0 && n > limits.MaxQubits {
		return CircuitRequest{}, requestErr(ErrInvalidQubitCount, -1, "at most %d qubits are supported, got %d", limits.MaxQubits, n)
	}
	if in.Shots < 1 {
		return CircuitRequest{}, requestErr(ErrInvalidShotCount, -1, "need at least 1 shot, got %d", in.Shots)
	}
	if limits.MaxShots > 0 && in.Shots > limits.MaxShots {
		return CircuitRequest{}, requestErr(ErrInvalidShotCount, -1, "at most %d shots are supported, got %d", limits.MaxShots, in.Shots)
	}

	req := CircuitRequest{
		Qubits: n,
		Shots:  in.Shots,
		Gates:  make([]GateOp, 0, len(in.Gates)),
	}
	if in.FlipProbability != nil {
		p := *in.FlipProbability
		if !(p >= 0 && p <= 1) {
			return CircuitRequest{}, requestErr(ErrInvalidFlipProbability, -1, "got %v", p)
		}
		req.FlipProbability = &p
	}

	for i, g := range in.Gates {
		kind, ok := ParseGateKind(g.Name)
		if !ok {
			return CircuitRequest{}, requestErr(ErrUnsupportedGate, i, "%q is not one of Hadamard, Pauli-X, Pauli-Y, Pauli-Z, CNOT", g.Name)
		}
		if kind == CNOT && n < 2 {
			return CircuitRequest{}, requestErr(ErrInsufficientQubits, i, "CNOT needs at least 2 qubits, circuit has %d", n)
		}
		if len(g.Operands) != kind.Arity() {
			return CircuitRequest{}, requestErr(ErrOperandCount, i, "%s takes %d operand(s), got %d", kind.DisplayName(), kind.Arity(), len(g.Operands))
		}
		for _, q := range g.Operands {
			if q < 0 || q >= n {
				return CircuitRequest{}, requestErr(ErrOperandOutOfRange, i, "qubit %d is outside [0, %d)", q, n)
			}
		}
		if kind == CNOT && g.Operands[0] == g.Operands[1] {
			return CircuitRequest{}, requestErr(ErrInsufficientQubits, i, "control and target are both qubit %d", g.Operands[0])
		}
		req.Gates = append(req.Gates, GateOp{Kind: kind, Operands: append([]int(nil), g.Operands...)})
	}
	return req, nil
}
