package model_test

import (
	"testing"

	"github.com/twentyab/stammtisch-tracker/internal/model"
)

func TestParseTrumpSuit(t *testing.T) {
	cases := []struct {
		in     string
		want   model.TrumpSuit
		wantOK bool
	}{
		{"HERZ", model.TrumpHerz, true},
		{"EICHEL", model.TrumpEichel, true},
		{"SCHELL", model.TrumpSchell, true},
		{"BLATT", model.TrumpBlatt, true},
		{"herz", "", false}, // wire values are upper case only
		{"PIK", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := model.ParseTrumpSuit(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ParseTrumpSuit(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestTrumpSuit_Valid(t *testing.T) {
	for _, suit := range model.TrumpSuits {
		if !suit.Valid() {
			t.Fatalf("%s must be valid", suit)
		}
	}
	if model.TrumpSuit("KARO").Valid() {
		t.Fatalf("unknown suit must not be valid")
	}
}

func TestTrumpSuit_DisplayName(t *testing.T) {
	cases := map[model.TrumpSuit]string{
		model.TrumpHerz:   "Herz",
		model.TrumpEichel: "Eichel",
		model.TrumpSchell: "Schell",
		model.TrumpBlatt:  "Blatt",
	}
	for suit, want := range cases {
		if got := suit.DisplayName(); got != want {
			t.Fatalf("DisplayName(%s) = %q, want %q", suit, got, want)
		}
	}
}
