package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultsLimit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain number", "25", 25},
		{"padded", " 5 ", 5},
		{"empty", "", DefaultResultsLimit},
		{"not a number", "lots", DefaultResultsLimit},
		{"zero", "0", DefaultResultsLimit},
		{"negative", "-3", DefaultResultsLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Search: SearchConfig{ResultsLimit: tt.in}}
			assert.Equal(t, tt.want, c.ResultsLimit())
		})
	}
}

func TestUserIDInt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain number", "12345", 12345},
		{"padded", " 7 ", 7},
		{"empty", "", 0},
		{"not a number", "me", 0},
		{"negative", "-1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Hardcover: HardcoverConfig{UserID: tt.in}}
			assert.Equal(t, tt.want, c.UserIDInt())
		})
	}
}
