package model

// TrumpSuit is the declared trump for a game. Exactly four fixed values
// exist; HERZ carries scoring weight (see the scoring package).
type TrumpSuit string

const (
	TrumpHerz   TrumpSuit = "HERZ"
	TrumpEichel TrumpSuit = "EICHEL"
	TrumpSchell TrumpSuit = "SCHELL"
	TrumpBlatt  TrumpSuit = "BLATT"
)

// TrumpSuits lists all suits in declaration order. Aggregation relies on
// this to backfill complete per-suit maps.
var TrumpSuits = []TrumpSuit{TrumpHerz, TrumpEichel, TrumpSchell, TrumpBlatt}

// Valid reports whether t is one of the four known suits.
func (t TrumpSuit) Valid() bool {
	switch t {
	case TrumpHerz, TrumpEichel, TrumpSchell, TrumpBlatt:
		return true
	default:
		return false
	}
}

// DisplayName returns the German card-suit name used by the group.
func (t TrumpSuit) DisplayName() string {
	switch t {
	case TrumpHerz:
		return "Herz"
	case TrumpEichel:
		return "Eichel"
	case TrumpSchell:
		return "Schell"
	case TrumpBlatt:
		return "Blatt"
	default:
		return string(t)
	}
}

// ParseTrumpSuit resolves the symbolic name to a suit.
func ParseTrumpSuit(s string) (TrumpSuit, bool) {
	t := TrumpSuit(s)
	if t.Valid() {
		return t, true
	}
	return "", false
}
