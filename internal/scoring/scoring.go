// Package scoring holds the pure payout and point rules of the game.
// Both functions are total over their inputs and free of side effects.
package scoring

import "github.com/twentyab/stammtisch-tracker/internal/model"

// StartingPoints is every player's score at the beginning of a session.
const StartingPoints = 20

// Multiplier returns the payout multiplier for a trump call. A blind HERZ
// call doubles the already-doubled HERZ multiplier; the other three suits
// always pay single, blind or not.
func Multiplier(suit model.TrumpSuit, heartBlind bool) int {
	switch {
	case heartBlind && suit == model.TrumpHerz:
		return 4
	case suit == model.TrumpHerz:
		return 2
	default:
		return 1
	}
}

// RemainingPoints converts accumulated tricks into the running session
// score. The result can go negative when a player wins more than 20 tricks;
// reaching zero or below is the win condition and is judged by the caller.
func RemainingPoints(tricksWon int) int {
	return StartingPoints - tricksWon
}
