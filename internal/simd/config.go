package simd

import "os"

// EnvOverride names the environment variable read by ConfigFromEnv.
const EnvOverride = "MODMESH_SIMD"

// Config controls which capability is published by Current.
type Config struct {
	Override string // Feature name to cap the detected capability at ("" keeps it).
}

// DefaultConfig returns a Config that keeps the detected capability.
func DefaultConfig() Config {
	return Config{}
}

// ConfigFromEnv reads the override from MODMESH_SIMD.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Override = os.Getenv(EnvOverride)
	return cfg
}
