package main

import (
	"errors"
	"fmt"
	"sort"
)

// ErrTooManyQubits is returned when a circuit is larger than the simulator accepts.
var ErrTooManyQubits = errors.New("circuit too large for simulator")

// MaxSimulatorQubits is the largest register the dense simulator will
// allocate, whatever MaxQubits says. 2^30 amplitudes is 16 GiB.
const MaxSimulatorQubits = 30

// Simulator evolves circuits and samples measurement shots. Its errors are
// passed to callers unchanged.
type Simulator interface {
	Statevector(c *Circuit) (*StateVector, error)
	Sample(state *StateVector, shots int, rng RandSource) (Counts, error)
}

// StatevectorSimulator is a dense in-memory simulator for small registers.
type StatevectorSimulator struct {
	MaxQubits int
}

// NewStatevectorSimulator returns a simulator accepting up to maxQubits qubits,
// capped at MaxSimulatorQubits. Zero means the cap alone applies.
func NewStatevectorSimulator(maxQubits int) *StatevectorSimulator {
	return &StatevectorSimulator{MaxQubits: maxQubits}
}

// Statevector applies every unitary gate of c to |0...0⟩. Measurements are
// not applied.
func (sim *StatevectorSimulator) Statevector(c *Circuit) (*StateVector, error) {
	if c.NumQubits < 1 {
		return nil, fmt.Errorf("statevector: circuit has %d qubits", c.NumQubits)
	}
	limit := MaxSimulatorQubits
	if sim.MaxQubits > 0 {
		limit = min(sim.MaxQubits, MaxSimulatorQubits)
	}
	if c.NumQubits > limit {
		return nil, fmt.Errorf("%w: %d qubits, limit %d", ErrTooManyQubits, c.NumQubits, limit)
	}
	state := NewStateVector(c.NumQubits)
	for _, g := range c.UnitaryGates() {
		if err := state.ApplyGate(g.Type, g.Target, g.Control); err != nil {
			return nil, fmt.Errorf("statevector: step %d: %w", g.Step, err)
		}
	}
	return state, nil
}

// Sample measures every qubit shots times and aggregates the outcomes.
func (sim *StatevectorSimulator) Sample(state *StateVector, shots int, rng RandSource) (Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("sample: shots must be positive, got %d", shots)
	}
	if rng == nil {
		return nil, fmt.Errorf("sample: %w", ErrNilRandSource)
	}

	probs := state.Probabilities()
	cumulative := make([]float64, len(probs))
	sum := 0.0
	last := 0
	for i, p := range probs {
		sum += p
		cumulative[i] = sum
		if p > 0 {
			last = i
		}
	}

	counts := make(Counts)
	for range shots {
		u := rng.Float64() * sum
		idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > u })
		if idx > last {
			// rounding at the top end of the cumulative sum
			idx = last
		}
		counts[formatOutcome(idx, state.NumQubits)]++
	}
	return counts, nil
}
