package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"dif", "diff"},
		{"diffs", "diff"},
		{"dfif", "diff"},
		{"fromat", "format"},
		{"formt", "format"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"verison", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"comparison", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"diff", "diff", 0},
		{"", "mcp", 3},
		{"kitten", "sitting", 3},
		{"dif", "diff", 1},
		{"héllo", "hello", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, editDistance(tt.a, tt.b))
			assert.Equal(t, tt.want, editDistance(tt.b, tt.a))
		})
	}
}

func TestRun(t *testing.T) {
	assert.Equal(t, 0, run("help", nil))
	assert.Equal(t, 0, run("version", nil))
	assert.Equal(t, 1, run("bogus", nil))
	assert.Equal(t, 1, run("diff", []string{"only-one.yaml"}))
	assert.Equal(t, 0, run("diff", []string{"--help"}))
}
