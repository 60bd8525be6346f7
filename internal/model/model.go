// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Player is a member of the Stammtisch group. Identity is the exact name;
// players are created once per distinct name and never deleted.
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Session represents a single game night. Date is a calendar day with no
// time-of-day component.
type Session struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	Notes     *string   `json:"notes,omitempty"`
}

// SessionSeat is the cross reference assigning a player to a seat within a
// session. Seat indexes are 0-based and unique per session.
type SessionSeat struct {
	SessionID int64 `json:"session_id"`
	PlayerID  int64 `json:"player_id"`
	SeatIndex int   `json:"seat_index"`
}

// Game is a single hand played within a session. The caller declared the
// trump suit; HeartBlind is only meaningful when TrumpSuit is HERZ.
type Game struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"session_id"`
	CallerID   int64     `json:"caller_id"`
	TrumpSuit  TrumpSuit `json:"trump_suit"`
	HeartBlind bool      `json:"heart_blind"`
	CreatedAt  time.Time `json:"created_at"`
}

// GameParticipant records one player's involvement in one game.
// TricksWon is nil when the player sat out; sitting out and winning zero
// tricks are different states. AmountPaid is always present because
// sitting-out players can still owe a payment.
type GameParticipant struct {
	GameID     int64 `json:"game_id"`
	PlayerID   int64 `json:"player_id"`
	IsPlaying  bool  `json:"is_playing"`
	TricksWon  *int  `json:"tricks_won,omitempty"`
	AmountPaid int   `json:"amount_paid"`
}

// SeatedPlayer joins a session seat with its resolved player row.
type SeatedPlayer struct {
	Player    Player `json:"player"`
	SeatIndex int    `json:"seat_index"`
}

// SessionWithPlayers is the row shape repositories return for session reads.
type SessionWithPlayers struct {
	Session Session        `json:"session"`
	Players []SeatedPlayer `json:"players"`
}

// ParticipantWithPlayer joins a participant row with its resolved player.
type ParticipantWithPlayer struct {
	Player      Player          `json:"player"`
	Participant GameParticipant `json:"participant"`
}

// GameWithParticipants is the row shape repositories return for game reads.
type GameWithParticipants struct {
	Game         Game                    `json:"game"`
	Participants []ParticipantWithPlayer `json:"participants"`
}

// NewSessionPlayer is the input for one roster slot when creating a session.
type NewSessionPlayer struct {
	Name      string `json:"name"`
	SeatIndex int    `json:"seat_index"`
}

// NewGameParticipant is the input for one participant when creating a game.
type NewGameParticipant struct {
	PlayerID   int64 `json:"player_id"`
	IsPlaying  bool  `json:"is_playing"`
	TricksWon  *int  `json:"tricks_won"`
	AmountPaid int   `json:"amount_paid"`
}
