package scoring_test

import (
	"testing"

	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/scoring"
)

func TestMultiplier(t *testing.T) {
	cases := []struct {
		name       string
		suit       model.TrumpSuit
		heartBlind bool
		want       int
	}{
		{"herz blind", model.TrumpHerz, true, 4},
		{"herz", model.TrumpHerz, false, 2},
		{"eichel", model.TrumpEichel, false, 1},
		{"eichel blind flag ignored", model.TrumpEichel, true, 1},
		{"schell", model.TrumpSchell, false, 1},
		{"schell blind flag ignored", model.TrumpSchell, true, 1},
		{"blatt", model.TrumpBlatt, false, 1},
		{"blatt blind flag ignored", model.TrumpBlatt, true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoring.Multiplier(tc.suit, tc.heartBlind); got != tc.want {
				t.Fatalf("Multiplier(%s, %v) = %d, want %d", tc.suit, tc.heartBlind, got, tc.want)
			}
		})
	}
}

func TestRemainingPoints(t *testing.T) {
	cases := []struct {
		tricks int
		want   int
	}{
		{0, 20},
		{8, 12},
		{12, 8},
		{20, 0},
		{25, -5}, // winning past 20 goes negative; callers judge the win
		{-3, 23},
	}
	for _, tc := range cases {
		if got := scoring.RemainingPoints(tc.tricks); got != tc.want {
			t.Fatalf("RemainingPoints(%d) = %d, want %d", tc.tricks, got, tc.want)
		}
	}
}
