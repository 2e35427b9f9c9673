package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	for name, testcase := range map[string]struct {
		input        string
		defaultValue time.Duration
		want         time.Duration
	}{
		"valid minutes":      {"15m", time.Hour, 15 * time.Minute},
		"valid hours":        {"720h", time.Hour, 720 * time.Hour},
		"empty falls back":   {"", 15 * time.Minute, 15 * time.Minute},
		"garbage falls back": {"soon", time.Hour, time.Hour},
	} {
		t.Run(name, func(t *testing.T) {
			if got := ParseDuration(testcase.input, testcase.defaultValue); got != testcase.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", testcase.input, got, testcase.want)
			}
		})
	}
}
