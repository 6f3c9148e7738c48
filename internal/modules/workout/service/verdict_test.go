package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdict(t *testing.T) {
	prev := 80.0

	tests := []struct {
		name     string
		score    float64
		prevBest *float64
		want     string
	}{
		{"no previous best", 10, nil, VerdictFirst},
		{"beats previous best", 80.5, &prev, VerdictWin},
		{"matches previous best", 80, &prev, VerdictDraw},
		{"below previous best", 79.9, &prev, VerdictLose},
		{"zero score still compares", 0, &prev, VerdictLose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verdict(tt.score, tt.prevBest))
		})
	}
}
