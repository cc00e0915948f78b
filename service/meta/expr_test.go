package meta

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		input    string
		expected string
	}{
		{
			name:     "no expressions",
			input:    "printers: 2",
			expected: "printers: 2",
		},
		{
			name:     "single expression",
			env:      map[string]string{"PRINTERS": "3"},
			input:    "printers: ${env.PRINTERS}",
			expected: "printers: 3",
		},
		{
			name:     "multiple expressions",
			env:      map[string]string{"A": "1", "B": "2"},
			input:    "${env.A}-${env.B}-${env.A}",
			expected: "1-2-1",
		},
		{
			name:     "unset variable becomes empty",
			input:    "seed: ${env.NOTSET}-end",
			expected: "seed: -end",
		},
		{
			name:     "malformed expression kept literally",
			env:      map[string]string{"X": "x"},
			input:    "start ${env.X and ${env.Y} end",
			expected: "start ${env.X and  end",
		},
		{
			name:     "missing closing brace",
			input:    "mean: ${env.MEAN",
			expected: "mean: ${env.MEAN",
		},
		{
			name:     "prefix only no key",
			input:    "oops ${env.} done",
			expected: "oops  done",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, kv := range []string{"PRINTERS", "A", "B", "X", "Y", "NOTSET", "MEAN"} {
				os.Unsetenv(kv)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tc.expected, ExpandEnv(tc.input))
		})
	}
}
