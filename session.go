package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// RunResult is everything one request produced.
type RunResult struct {
	ID          string         `json:"id"`
	Request     CircuitRequest `json:"request"`
	Circuit     *Circuit       `json:"-"`
	QASM        string         `json:"qasm"`
	State       *StateVector   `json:"-"`
	Counts      Counts         `json:"counts"`
	NoisyCounts Counts         `json:"noisy_counts,omitempty"`
	Policy      string         `json:"noise_policy,omitempty"`
	Elapsed     time.Duration  `json:"elapsed_ns"`
}

// DisplayCounts returns the noisy counts when noise was applied, else the raw counts.
func (r *RunResult) DisplayCounts() Counts {
	if r.NoisyCounts != nil {
		return r.NoisyCounts
	}
	return r.Counts
}

// Session holds the state that lives across requests: simulator, randomness
// and a statevector cache. It is not safe for concurrent use.
type Session struct {
	sim    Simulator
	rng    RandSource
	policy FlipPolicy
	limits Limits
	states *lru.Cache[string, *StateVector]
	log    *zap.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPolicy selects the noise flip policy.
func WithPolicy(p FlipPolicy) SessionOption {
	return func(s *Session) { s.policy = p }
}

// WithLimits bounds accepted request sizes.
func WithLimits(l Limits) SessionOption {
	return func(s *Session) { s.limits = l }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// NewSession creates a session. cacheSize bounds the number of cached statevectors.
func NewSession(sim Simulator, rng RandSource, cacheSize int, opts ...SessionOption) (*Session, error) {
	if sim == nil {
		return nil, fmt.Errorf("new session: nil simulator")
	}
	if rng == nil {
		return nil, fmt.Errorf("new session: %w", ErrNilRandSource)
	}
	cache, err := lru.New[string, *StateVector](max(cacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	s := &Session{
		sim:    sim,
		rng:    rng,
		policy: FlipPerOutcome,
		states: cache,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Policy returns the flip policy used for noisy runs.
func (s *Session) Policy() FlipPolicy { return s.policy }

// Limits returns the request limits the session validates against.
func (s *Session) Limits() Limits { return s.limits }

// Validate checks in against the session limits without running anything.
func (s *Session) Validate(in RequestInput) (CircuitRequest, error) {
	return ValidateRequest(in, s.limits)
}

// Run validates in, simulates it and applies noise when requested.
// Validation failures are *RequestError; simulator errors are returned as is.
func (s *Session) Run(in RequestInput) (*RunResult, error) {
	start := time.Now()
	req, err := s.Validate(in)
	if err != nil {
		s.log.Debug("request rejected", zap.Error(err))
		return nil, err
	}

	circuit := BuildCircuit(req, true)
	qasm := circuit.ToQASM()

	state, ok := s.states.Get(qasm)
	if !ok {
		state, err = s.sim.Statevector(circuit)
		if err != nil {
			return nil, err
		}
		s.states.Add(qasm, state)
	}

	counts, err := s.sim.Sample(state, req.Shots, s.rng)
	if err != nil {
		return nil, err
	}

	res := &RunResult{
		ID:      uuid.NewString(),
		Request: req,
		Circuit: circuit,
		QASM:    qasm,
		State:   state.Clone(),
		Counts:  counts,
	}
	if req.NoiseEnabled() {
		noisy, err := ApplyBitFlipNoise(counts, *req.FlipProbability, s.rng, s.policy)
		if err != nil {
			return nil, fmt.Errorf("apply noise: %w", err)
		}
		res.NoisyCounts = noisy
		res.Policy = s.policy.String()
	}
	res.Elapsed = time.Since(start)

	s.log.Info("circuit run",
		zap.String("run_id", res.ID),
		zap.Int("qubits", req.Qubits),
		zap.Int("shots", req.Shots),
		zap.Int("gates", len(req.Gates)),
		zap.Bool("cached", ok),
		zap.Bool("noise", res.NoisyCounts != nil),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
