package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed values and counts how many were drawn.
type scriptedSource struct {
	vals  []float64
	draws int
}

func (s *scriptedSource) Float64() float64 {
	v := s.vals[s.draws%len(s.vals)]
	s.draws++
	return v
}

func TestApplyBitFlipNoiseZeroProbabilityIsIdentity(t *testing.T) {
	counts := Counts{"000": 7, "101": 3, "111": 0}
	src := &scriptedSource{vals: []float64{0}}

	for _, policy := range []FlipPolicy{FlipPerOutcome, FlipPerShot} {
		out, err := ApplyBitFlipNoise(counts, 0, src, policy)
		require.NoError(t, err)
		assert.Equal(t, counts, out)
	}
	assert.Zero(t, src.draws, "p=0 must not consume randomness")

	// the result is a copy
	out, err := ApplyBitFlipNoise(counts, 0, nil, FlipPerOutcome)
	require.NoError(t, err)
	out["000"] = 99
	assert.Equal(t, 7, counts["000"])
}

func TestApplyBitFlipNoiseFullProbabilityComplements(t *testing.T) {
	out, err := ApplyBitFlipNoise(Counts{"00": 10, "01": 5}, 1, nil, FlipPerOutcome)
	require.NoError(t, err)
	assert.Equal(t, Counts{"11": 10, "10": 5}, out)

	out, err = ApplyBitFlipNoise(Counts{"0110": 4}, 1, nil, FlipPerShot)
	require.NoError(t, err)
	assert.Equal(t, Counts{"1001": 4}, out)
}

func TestApplyBitFlipNoiseEmpty(t *testing.T) {
	out, err := ApplyBitFlipNoise(Counts{}, 0.3, NewSeededSource(1), FlipPerOutcome)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApplyBitFlipNoisePreservesShotsAndWidth(t *testing.T) {
	counts := Counts{"000": 500, "011": 120, "101": 80, "111": 300}
	for _, policy := range []FlipPolicy{FlipPerOutcome, FlipPerShot} {
		for _, p := range []float64{0.01, 0.25, 0.5, 0.9} {
			out, err := ApplyBitFlipNoise(counts, p, NewSeededSource(42), policy)
			require.NoError(t, err)
			assert.Equal(t, counts.Total(), out.Total(), "policy=%s p=%v", policy, p)
			width, err := out.Width()
			require.NoError(t, err)
			assert.Equal(t, 3, width)
		}
	}
}

func TestApplyBitFlipNoiseDeterministicUnderSeed(t *testing.T) {
	counts := Counts{"00": 250, "01": 250, "10": 250, "11": 250}
	for _, policy := range []FlipPolicy{FlipPerOutcome, FlipPerShot} {
		a, err := ApplyBitFlipNoise(counts, 0.3, NewSeededSource(2024), policy)
		require.NoError(t, err)
		b, err := ApplyBitFlipNoise(counts, 0.3, NewSeededSource(2024), policy)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestApplyBitFlipNoisePerOutcomeMovesWholeCount(t *testing.T) {
	// leftmost bit draws 0.1 (flip), rightmost draws 0.9 (keep)
	src := &scriptedSource{vals: []float64{0.1, 0.9}}
	out, err := ApplyBitFlipNoise(Counts{"00": 6}, 0.5, src, FlipPerOutcome)
	require.NoError(t, err)
	assert.Equal(t, Counts{"10": 6}, out)
	assert.Equal(t, 2, src.draws, "one draw per bit per distinct outcome")
}

func TestApplyBitFlipNoisePerShotSplitsCount(t *testing.T) {
	src := &scriptedSource{vals: []float64{0.1, 0.9, 0.9, 0.1}}
	out, err := ApplyBitFlipNoise(Counts{"00": 2}, 0.5, src, FlipPerShot)
	require.NoError(t, err)
	assert.Equal(t, Counts{"10": 1, "01": 1}, out)
	assert.Equal(t, 4, src.draws)
}

func TestApplyBitFlipNoiseMergesCollisions(t *testing.T) {
	// keys are visited in sorted order: "00" then "01"
	src := &scriptedSource{vals: []float64{0.9, 0.1, 0.9, 0.9}}
	out, err := ApplyBitFlipNoise(Counts{"00": 2, "01": 3}, 0.5, src, FlipPerOutcome)
	require.NoError(t, err)
	assert.Equal(t, Counts{"01": 5}, out)
}

func TestApplyBitFlipNoiseErrors(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		p      float64
		rng    RandSource
		want   error
	}{
		{"negative p", Counts{"0": 1}, -0.1, NewSeededSource(1), ErrInvalidFlipProbability},
		{"p above one", Counts{"0": 1}, 1.5, NewSeededSource(1), ErrInvalidFlipProbability},
		{"NaN", Counts{"0": 1}, math.NaN(), NewSeededSource(1), ErrInvalidFlipProbability},
		{"nil source", Counts{"0": 1}, 0.5, nil, ErrNilRandSource},
		{"mixed widths", Counts{"0": 1, "01": 1}, 0.5, NewSeededSource(1), ErrMalformedCounts},
		{"not binary", Counts{"0a": 1}, 0.5, NewSeededSource(1), ErrMalformedCounts},
		{"negative count", Counts{"01": -1}, 0.5, NewSeededSource(1), ErrMalformedCounts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyBitFlipNoise(tt.counts, tt.p, tt.rng, FlipPerOutcome)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseFlipPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    FlipPolicy
		wantErr bool
	}{
		{"", FlipPerOutcome, false},
		{"outcome", FlipPerOutcome, false},
		{"Count", FlipPerOutcome, false},
		{" shot ", FlipPerShot, false},
		{"channel", FlipPerOutcome, true},
	}
	for _, tt := range tests {
		got, err := ParseFlipPolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "outcome", FlipPerOutcome.String())
	assert.Equal(t, "shot", FlipPerShot.String())
}
