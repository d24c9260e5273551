package main

import (
	"fmt"
	"math"
	"math/cmplx"
)

type Complex = complex128

type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// ApplyGate applies one gate in place. control is ignored for single-qubit gates.
func (s *StateVector) ApplyGate(gateType string, target int, control int) error {
	if target < 0 || target >= s.NumQubits {
		return fmt.Errorf("gate %s: target qubit %d outside register of %d", gateType, target, s.NumQubits)
	}
	switch gateType {
	case "H":
		s.applyH(target)
	case "X":
		s.applyX(target)
	case "Y":
		s.applyY(target)
	case "Z":
		s.applyZ(target)
	case "CX":
		if control < 0 || control >= s.NumQubits || control == target {
			return fmt.Errorf("gate CX: bad control qubit %d for target %d", control, target)
		}
		s.applyCX(control, target)
	default:
		return fmt.Errorf("gate %q is not supported by the statevector simulator", gateType)
	}
	return nil
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Probabilities returns the Born probability of every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		probs[i] = real(amp * cmplx.Conj(amp))
	}
	return probs
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	n := len(s.Amplitudes)

	for i := 0; i < n; i++ {
		prob := real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}

	return probs
}

// BlochVector is the reduced single-qubit state as a point in the unit ball.
// Entangled qubits have length below 1.
type BlochVector struct {
	X, Y, Z float64
}

// GetBlochVectors traces out all other qubits and returns one vector per qubit.
func (s *StateVector) GetBlochVectors() []BlochVector {
	vecs := make([]BlochVector, s.NumQubits)
	n := len(s.Amplitudes)

	for q := 0; q < s.NumQubits; q++ {
		bit := 1 << q
		var rho00, rho11 float64
		var rho01 Complex
		for i := 0; i < n; i++ {
			if i&bit != 0 {
				continue
			}
			a0, a1 := s.Amplitudes[i], s.Amplitudes[i|bit]
			rho00 += real(a0 * cmplx.Conj(a0))
			rho11 += real(a1 * cmplx.Conj(a1))
			rho01 += a0 * cmplx.Conj(a1)
		}
		vecs[q] = BlochVector{
			X: 2 * real(rho01),
			Y: -2 * imag(rho01),
			Z: rho00 - rho11,
		}
	}
	return vecs
}
