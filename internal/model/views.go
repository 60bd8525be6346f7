package model

import "time"

// Read-side views derived from stored rows. These models are recomputed in
// full on every observation and are never persisted.

// PlayerReference identifies a player inside derived views.
type PlayerReference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PlayerSeat is one slot in a session's ordered roster.
type PlayerSeat struct {
	PlayerID  int64  `json:"player_id"`
	Name      string `json:"name"`
	SeatIndex int    `json:"seat_index"`
}

// SessionSummary is one entry of the session list view.
type SessionSummary struct {
	ID        int64        `json:"id"`
	Date      time.Time    `json:"date"`
	SeatOrder []PlayerSeat `json:"seat_order"`
	GameCount int          `json:"game_count"`
}

// PlayerSessionStats aggregates one seated player's results within a single
// session. RemainingPoints is the running score: everyone starts at 20 and
// tricks won deplete it toward zero.
type PlayerSessionStats struct {
	PlayerID        int64  `json:"player_id"`
	Name            string `json:"name"`
	SeatIndex       int    `json:"seat_index"`
	TricksWon       int    `json:"tricks_won"`
	GamesPlayed     int    `json:"games_played"`
	GamesSkipped    int    `json:"games_skipped"`
	AmountPaid      int    `json:"amount_paid"`
	RemainingPoints int    `json:"remaining_points"`
}

// GameParticipantDetail is a participant row resolved for presentation.
type GameParticipantDetail struct {
	Player     PlayerReference `json:"player"`
	IsPlaying  bool            `json:"is_playing"`
	TricksWon  *int            `json:"tricks_won,omitempty"`
	AmountPaid int             `json:"amount_paid"`
}

// GameDetail is a stored game resolved for presentation: the caller is
// looked up among the game's own participants and the payout multiplier is
// derived from the trump call.
type GameDetail struct {
	ID           int64                   `json:"id"`
	SessionID    int64                   `json:"session_id"`
	TrumpSuit    TrumpSuit               `json:"trump_suit"`
	Caller       PlayerReference         `json:"caller"`
	HeartBlind   bool                    `json:"heart_blind"`
	CreatedAt    time.Time               `json:"created_at"`
	Multiplier   int                     `json:"multiplier"`
	Participants []GameParticipantDetail `json:"participants"`
}

// SessionDetail is the full view of one game night.
type SessionDetail struct {
	ID      int64                `json:"id"`
	Date    time.Time            `json:"date"`
	Players []PlayerSessionStats `json:"players"`
	Games   []GameDetail         `json:"games"`
}

// StatisticsOverview aggregates across all games ever played. Every known
// player appears in every map with a zero default, and every player's trump
// map carries all four suits. The maps key on PlayerReference so callers
// never need a second lookup for names.
type StatisticsOverview struct {
	CalledTrumpCounts map[PlayerReference]map[TrumpSuit]int
	HeartBlindCalls   map[PlayerReference]int
	SkippedGames      map[PlayerReference]int
	TotalPayments     map[PlayerReference]int
	TotalTricks       map[PlayerReference]int
}

// PlayerStatistics is the per-player row of the statistics overview in its
// transport shape. Struct-keyed maps don't survive JSON encoding, so the
// API serves the overview as a list of these, one per known player.
type PlayerStatistics struct {
	Player            PlayerReference   `json:"player"`
	CalledTrumpCounts map[TrumpSuit]int `json:"called_trump_counts"`
	HeartBlindCalls   int               `json:"heart_blind_calls"`
	SkippedGames      int               `json:"skipped_games"`
	TotalPayments     int               `json:"total_payments"`
	TotalTricks       int               `json:"total_tricks"`
}
