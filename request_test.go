package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prob(p float64) *float64 { return &p }

func TestValidateRequestScenarios(t *testing.T) {
	t.Run("CNOT on one qubit with equal operands", func(t *testing.T) {
		_, err := ValidateRequest(RequestInput{
			Qubits: 1, Shots: 100,
			Gates: []GateSpec{{Name: "CNOT", Operands: []int{0, 0}}},
		}, Limits{})
		assert.ErrorIs(t, err, ErrInsufficientQubits)
	})

	t.Run("Hadamard on two qubits", func(t *testing.T) {
		req, err := ValidateRequest(RequestInput{
			Qubits: 2, Shots: 10,
			Gates: []GateSpec{{Name: "Hadamard", Operands: []int{0}}},
		}, Limits{})
		require.NoError(t, err)
		assert.Equal(t, 2, req.Qubits)
		assert.Equal(t, 10, req.Shots)
		assert.Equal(t, []GateOp{{Kind: Hadamard, Operands: []int{0}}}, req.Gates)
		assert.False(t, req.NoiseEnabled())
	})

	t.Run("operand outside the register", func(t *testing.T) {
		_, err := ValidateRequest(RequestInput{
			Qubits: 3, Shots: 10,
			Gates: []GateSpec{{Name: "Hadamard", Operands: []int{5}}},
		}, Limits{})
		assert.ErrorIs(t, err, ErrOperandOutOfRange)
	})
}

func TestValidateRequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     RequestInput
		limits Limits
		want   error
		gate   int
	}{
		{"zero qubits", RequestInput{Qubits: 0, Shots: 1}, Limits{}, ErrInvalidQubitCount, -1},
		{"negative qubits", RequestInput{Qubits: -2, Shots: 1}, Limits{}, ErrInvalidQubitCount, -1},
		{"too many qubits", RequestInput{Qubits: 11, Shots: 1}, Limits{MaxQubits: 10}, ErrInvalidQubitCount, -1},
		{"zero shots", RequestInput{Qubits: 1, Shots: 0}, Limits{}, ErrInvalidShotCount, -1},
		{"too many shots", RequestInput{Qubits: 1, Shots: 5}, Limits{MaxShots: 4}, ErrInvalidShotCount, -1},
		{"probability above one", RequestInput{Qubits: 1, Shots: 1, FlipProbability: prob(1.2)}, Limits{}, ErrInvalidFlipProbability, -1},
		{"unknown gate", RequestInput{Qubits: 2, Shots: 1, Gates: []GateSpec{{Name: "H", Operands: []int{0}}, {Name: "T", Operands: []int{1}}}}, Limits{}, ErrUnsupportedGate, 1},
		{"CNOT needs two qubits", RequestInput{Qubits: 1, Shots: 1, Gates: []GateSpec{{Name: "cx", Operands: []int{0, 1}}}}, Limits{}, ErrInsufficientQubits, 0},
		{"CNOT same control and target", RequestInput{Qubits: 3, Shots: 1, Gates: []GateSpec{{Name: "cnot", Operands: []int{2, 2}}}}, Limits{}, ErrInsufficientQubits, 0},
		{"CNOT target out of range", RequestInput{Qubits: 2, Shots: 1, Gates: []GateSpec{{Name: "CNOT", Operands: []int{0, 2}}}}, Limits{}, ErrOperandOutOfRange, 0},
		{"negative operand", RequestInput{Qubits: 2, Shots: 1, Gates: []GateSpec{{Name: "Z", Operands: []int{-1}}}}, Limits{}, ErrOperandOutOfRange, 0},
		{"missing operand", RequestInput{Qubits: 2, Shots: 1, Gates: []GateSpec{{Name: "Pauli-Y"}}}, Limits{}, ErrOperandCount, 0},
		{"extra operand", RequestInput{Qubits: 2, Shots: 1, Gates: []GateSpec{{Name: "X", Operands: []int{0, 1}}}}, Limits{}, ErrOperandCount, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRequest(tt.in, tt.limits)
			require.ErrorIs(t, err, tt.want)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.gate, reqErr.Gate)
			assert.NotEmpty(t, reqErr.Error())
			assert.NotEqual(t, "InvalidRequest", reqErr.KindName())
		})
	}
}

func TestValidateRequestAcceptsAliasesAndCopies(t *testing.T) {
	ops := []int{1, 0}
	in := RequestInput{
		Qubits: 2, Shots: 3,
		Gates: []GateSpec{
			{Name: "h", Operands: []int{0}},
			{Name: "Pauli-X", Operands: []int{1}},
			{Name: "PAULI-Y", Operands: []int{0}},
			{Name: " z ", Operands: []int{1}},
			{Name: "cx", Operands: ops},
		},
		FlipProbability: prob(0.25),
	}
	req, err := ValidateRequest(in, Limits{MaxQubits: 2, MaxShots: 3})
	require.NoError(t, err)

	kinds := make([]GateKind, len(req.Gates))
	for i, g := range req.Gates {
		kinds[i] = g.Kind
	}
	assert.Equal(t, []GateKind{Hadamard, PauliX, PauliY, PauliZ, CNOT}, kinds)
	assert.True(t, req.NoiseEnabled())

	ops[0] = 9
	assert.Equal(t, []int{1, 0}, req.Gates[4].Operands)
}

func TestRequestErrorKindNames(t *testing.T) {
	tests := map[error]string{
		ErrInvalidQubitCount:      "InvalidQubitCount",
		ErrInvalidShotCount:       "InvalidShotCount",
		ErrOperandOutOfRange:      "OperandOutOfRange",
		ErrUnsupportedGate:        "UnsupportedGate",
		ErrInsufficientQubits:     "InsufficientQubits",
		ErrOperandCount:           "OperandCount",
		ErrInvalidFlipProbability: "InvalidFlipProbability",
		ErrGateSyntax:             "GateSyntax",
	}
	for kind, want := range tests {
		e := &RequestError{Kind: kind, Gate: -1}
		assert.Equal(t, want, e.KindName())
	}
}
