package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rivebuild/internal/core/domain"
)

func TestStepStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.StepStatus
		isTerminal bool
	}{
		{"Pending", domain.StepStatusPending, false},
		{"Running", domain.StepStatusRunning, false},
		{"Completed", domain.StepStatusCompleted, true},
		{"Failed", domain.StepStatusFailed, true},
		{"Skipped", domain.StepStatusSkipped, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    domain.LogLevel
		expected string
	}{
		{domain.LogLevelDebug, "DEBUG"},
		{domain.LogLevelInfo, "INFO"},
		{domain.LogLevelWarn, "WARN"},
		{domain.LogLevelError, "ERROR"},
		{domain.LogLevel(999), "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}
