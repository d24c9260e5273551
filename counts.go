package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMalformedCounts is returned when a count distribution breaks its shape
// invariants: mixed key widths, non-binary keys or negative counts.
var ErrMalformedCounts = errors.New("malformed count distribution")

// Counts maps a measured bitstring to the number of shots that produced it.
// Qubit 0 is the rightmost character of every key.
type Counts map[string]int

// Total returns the number of shots recorded in the distribution.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Width returns the common bit-length of all keys, or 0 for an empty
// distribution. Keys must be non-empty strings of '0' and '1' of equal length
// and counts must be non-negative.
func (c Counts) Width() (int, error) {
	width := -1
	for key, n := range c {
		if n < 0 {
			return 0, fmt.Errorf("%w: negative count %d for %q", ErrMalformedCounts, n, key)
		}
		if key == "" || strings.Trim(key, "01") != "" {
			return 0, fmt.Errorf("%w: %q is not a bitstring", ErrMalformedCounts, key)
		}
		if width == -1 {
			width = len(key)
			continue
		}
		if len(key) != width {
			return 0, fmt.Errorf("%w: key %q has %d bits, want %d", ErrMalformedCounts, key, len(key), width)
		}
	}
	return max(width, 0), nil
}

// Keys returns the outcomes in ascending bitstring order.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clone returns an independent copy of the distribution.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Probabilities returns each outcome's share of the total shot count.
func (c Counts) Probabilities() map[string]float64 {
	total := c.Total()
	probs := make(map[string]float64, len(c))
	if total == 0 {
		return probs
	}
	for k, v := range c {
		probs[k] = float64(v) / float64(total)
	}
	return probs
}

// Complement flips every bit of a bitstring. Characters other than '0' and
// '1' are copied through.
func Complement(outcome string) string {
	b := []byte(outcome)
	for i, ch := range b {
		switch ch {
		case '0':
			b[i] = '1'
		case '1':
			b[i] = '0'
		}
	}
	return string(b)
}

// formatOutcome renders a basis-state index as an n-bit key, qubit 0 rightmost.
func formatOutcome(index, numQubits int) string {
	b := make([]byte, numQubits)
	for q := range numQubits {
		if index&(1<<q) != 0 {
			b[numQubits-1-q] = '1'
		} else {
			b[numQubits-1-q] = '0'
		}
	}
	return string(b)
}
