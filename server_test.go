package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	s := newTestSession(t, NewStatevectorSimulator(10), WithLimits(Limits{MaxQubits: 10, MaxShots: 1000}))
	return NewServer(s, zap.NewNop())
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServerRun(t *testing.T) {
	rec := post(newTestServer(t), "/api/run",
		`{"qubits":1,"shots":10,"gates":[{"name":"X","operands":[0]}],"flip_probability":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		ID          string `json:"id"`
		QASM        string `json:"qasm"`
		Counts      Counts `json:"counts"`
		NoisyCounts Counts `json:"noisy_counts"`
		Policy      string `json:"noise_policy"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.NotEmpty(t, got.ID)
	assert.Contains(t, got.QASM, "x q[0];")
	assert.Equal(t, Counts{"1": 10}, got.Counts)
	assert.Equal(t, Counts{"0": 10}, got.NoisyCounts)
	assert.Equal(t, "outcome", got.Policy)
}

func TestServerValidate(t *testing.T) {
	h := newTestServer(t)

	rec := post(h, "/api/validate", `{"qubits":2,"shots":10,"gates":[{"name":"Hadamard","operands":[0]}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var ok validateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ok))
	assert.True(t, ok.Valid)
	assert.Equal(t, Hadamard, ok.Request.Gates[0].Kind)

	tests := []struct {
		body string
		kind string
	}{
		{`{"qubits":1,"shots":100,"gates":[{"name":"CNOT","operands":[0,0]}]}`, "InsufficientQubits"},
		{`{"qubits":3,"shots":10,"gates":[{"name":"Hadamard","operands":[5]}]}`, "OperandOutOfRange"},
		{`{"qubits":2,"shots":10,"gates":[{"name":"T","operands":[0]}]}`, "UnsupportedGate"},
		{`{"qubits":2,"shots":5000}`, "InvalidShotCount"},
	}
	for _, tt := range tests {
		rec := post(h, "/api/validate", tt.body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, tt.body)
		var e errorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
		assert.Equal(t, tt.kind, e.Kind, tt.body)
		assert.NotEmpty(t, e.Error)
	}
}

func TestServerRejectsBadBodies(t *testing.T) {
	h := newTestServer(t)
	for _, body := range []string{`{`, `{"qubits":1,"shots":1,"color":"red"}`} {
		rec := post(h, "/api/run", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
