package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

var (
	// ErrInvalidFlipProbability is returned for probabilities outside [0, 1].
	ErrInvalidFlipProbability = errors.New("flip probability must be between 0 and 1")
	// ErrNilRandSource is returned when noise needs randomness but none was supplied.
	ErrNilRandSource = errors.New("noise requires a randomness source")
)

// RandSource is the randomness capability the noise transform draws from.
// *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic PCG-backed source.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FlipPolicy selects how bit-flip draws map onto a count distribution.
type FlipPolicy int

const (
	// FlipPerOutcome draws once per bit per distinct outcome and moves that
	// outcome's whole count to the flipped key.
	FlipPerOutcome FlipPolicy = iota
	// FlipPerShot draws once per bit per shot, splitting counts across keys.
	FlipPerShot
)

func (p FlipPolicy) String() string {
	switch p {
	case FlipPerOutcome:
		return "outcome"
	case FlipPerShot:
		return "shot"
	default:
		return fmt.Sprintf("FlipPolicy(%d)", int(p))
	}
}

// ParseFlipPolicy accepts "outcome"/"count" and "shot".
func ParseFlipPolicy(s string) (FlipPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "outcome", "count":
		return FlipPerOutcome, nil
	case "shot":
		return FlipPerShot, nil
	}
	return FlipPerOutcome, fmt.Errorf("unknown noise policy %q (want outcome or shot)", s)
}

// ApplyBitFlipNoise returns a new distribution in which every output bit has
// been flipped independently with probability p. This is a classical
// post-processing of bitstrings, not a quantum channel. Resulting keys that
// collide are merged, so the total shot count is preserved.
//
// p == 0 returns a copy and draws nothing; p == 1 maps every key to its
// complement and draws nothing. Outcomes are visited in sorted order so a
// seeded source reproduces the same result.
func ApplyBitFlipNoise(counts Counts, p float64, rng RandSource, policy FlipPolicy) (Counts, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFlipProbability, p)
	}
	if _, err := counts.Width(); err != nil {
		return nil, err
	}

	out := make(Counts, len(counts))
	switch {
	case p == 0:
		for k, v := range counts {
			out[k] = v
		}
		return out, nil
	case p == 1:
		for k, v := range counts {
			out[Complement(k)] += v
		}
		return out, nil
	}

	if rng == nil {
		return nil, ErrNilRandSource
	}

	for _, key := range counts.Keys() {
		n := counts[key]
		switch policy {
		case FlipPerShot:
			for range n {
				out[flipBits(key, p, rng)]++
			}
		default:
			out[flipBits(key, p, rng)] += n
		}
	}
	return out, nil
}

// flipBits draws one flip decision per bit, left to right.
func flipBits(key string, p float64, rng RandSource) string {
	b := []byte(key)
	for i := range b {
		if rng.Float64() < p {
			b[i] ^= 1 // '0' <-> '1'
		}
	}
	return string(b)
}
