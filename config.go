package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings. Values come from a .env file, then
// QLAB_* environment variables, then command-line flags.
type Config struct {
	ServeAddr    string // non-empty runs the HTTP API instead of the TUI
	Seed         uint64 // 0 seeds from the clock
	Policy       FlipPolicy
	LogFile      string
	MaxQubits    int
	MaxShots     int
	CacheSize    int
	DefaultShots int
	DefaultNoise float64
}

// Limits returns the request limits derived from the config.
func (c *Config) Limits() Limits {
	return Limits{MaxQubits: c.MaxQubits, MaxShots: c.MaxShots}
}

// LoadConfig reads configuration for the given command-line arguments
// (without the program name).
func LoadConfig(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("qtermlab", flag.ContinueOnError)
	serve := fs.String("serve", envString("QLAB_SERVE", ""), "run the HTTP API on this address instead of the TUI (e.g. :8080)")
	seed := fs.Uint64("seed", envUint("QLAB_SEED", 0), "random seed for sampling and noise (0 = time based)")
	policy := fs.String("policy", envString("QLAB_NOISE_POLICY", "outcome"), "bit-flip noise policy: outcome or shot")
	logFile := fs.String("log", envString("QLAB_LOG_FILE", "qtermlab.log"), "log file used in TUI mode")
	maxQubits := fs.Int("max-qubits", envInt("QLAB_MAX_QUBITS", 10), "largest accepted register")
	maxShots := fs.Int("max-shots", envInt("QLAB_MAX_SHOTS", 100000), "largest accepted shot count")
	cacheSize := fs.Int("cache", envInt("QLAB_CACHE_SIZE", 128), "number of cached statevectors")
	shots := fs.Int("shots", envInt("QLAB_DEFAULT_SHOTS", 1024), "default shot count shown in lab forms")
	noise := fs.Float64("noise", envFloat("QLAB_DEFAULT_NOISE", 0), "default noise level for the interference lab")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	p, err := ParseFlipPolicy(*policy)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if *maxQubits < 1 || *maxQubits > MaxSimulatorQubits {
		return nil, fmt.Errorf("config: max-qubits must be between 1 and %d, got %d", MaxSimulatorQubits, *maxQubits)
	}
	if *noise < 0 || *noise > 1 {
		return nil, fmt.Errorf("config: noise must be between 0 and 1, got %v", *noise)
	}

	return &Config{
		ServeAddr:    normalizeAddr(*serve),
		Seed:         *seed,
		Policy:       p,
		LogFile:      *logFile,
		MaxQubits:    *maxQubits,
		MaxShots:     *maxShots,
		CacheSize:    *cacheSize,
		DefaultShots: *shots,
		DefaultNoise: *noise,
	}, nil
}

// normalizeAddr turns a bare port ("8080") into a listen address (":8080").
func normalizeAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" || strings.Contains(addr, ":") {
		return addr
	}
	return ":" + addr
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return v
	}
	return def
}

func envUint(key string, def uint64) uint64 {
	if v, err := strconv.ParseUint(strings.TrimSpace(os.Getenv(key)), 10, 64); err == nil {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64); err == nil {
		return v
	}
	return def
}
