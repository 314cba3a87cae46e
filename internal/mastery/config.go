package mastery

import (
	"os"
	"strconv"
)

// Config holds the mastery thresholds. Injected rather than read from
// globals so callers can tune per course and tests run hermetically.
type Config struct {
	// MasteryThreshold is the window score at which a concept is mastered.
	MasteryThreshold float64

	// ContinueThreshold is the floor below which remediation is
	// recommended instead of continued practice.
	ContinueThreshold float64

	// MinAssessments is the minimum sample size in the window before
	// mastery can be declared.
	MinAssessments int

	// WindowSize is the trailing assessment window mastery is computed
	// over.
	WindowSize int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MasteryThreshold:  0.85,
		ContinueThreshold: 0.70,
		MinAssessments:    3,
		WindowSize:        10,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or malformed values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v, ok := envFloat("GRADUS_MASTERY_THRESHOLD"); ok {
		cfg.MasteryThreshold = v
	}
	if v, ok := envFloat("GRADUS_CONTINUE_THRESHOLD"); ok {
		cfg.ContinueThreshold = v
	}
	if v, ok := envInt("GRADUS_MIN_ASSESSMENTS"); ok {
		cfg.MinAssessments = v
	}
	if v, ok := envInt("GRADUS_MASTERY_WINDOW"); ok {
		cfg.WindowSize = v
	}

	return cfg
}

func envFloat(key string) (float64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
