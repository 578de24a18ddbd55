package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRest(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSeconds int
		wantOK      bool
	}{
		{"colon form", "1:30", 90, true},
		{"colon form zero seconds", "2:00", 120, true},
		{"colon form single digit seconds", "1:5", 65, true},
		{"combined short units", "1m30s", 90, true},
		{"combined long units", "1min30sec", 90, true},
		{"combined spaced", "1 m 30 s", 90, true},
		{"combined no seconds unit", "1m30", 90, true},
		{"minutes only", "2m", 120, true},
		{"minutes word", "1 minute", 60, true},
		{"minutes plural", "3 minutes", 180, true},
		{"seconds only", "45s", 45, true},
		{"seconds word", "45 seconds", 45, true},
		{"bare number is seconds", "45", 45, true},
		{"bare number large", "90", 90, true},
		{"uppercase units", "1M30S", 90, true},
		{"surrounding whitespace", "  2m  ", 120, true},
		{"zero", "0", 0, true},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"prose", "until recovered", 0, false},
		{"trailing garbage", "45s extra", 0, false},
		{"negative", "-45", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seconds, ok := ParseRest(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSeconds, seconds)
		})
	}
}
