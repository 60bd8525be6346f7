package repository

import (
	"context"
	"time"

	"github.com/twentyab/stammtisch-tracker/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PlayerRepository declares persistence operations for players.
// Insert has ignore-on-duplicate semantics: a name collision surfaces as
// ErrAlreadyExists without writing anything, so callers can fall back to a
// re-read. Name matching is case-sensitive and exact.
type PlayerRepository interface {
	Insert(ctx context.Context, name string) (int64, error)
	GetByName(ctx context.Context, name string) (model.Player, error)
	List(ctx context.Context) ([]model.Player, error)
}

// SessionRepository declares persistence operations for sessions and their
// seat cross references. List/Get return sessions joined with their seated
// players; lists are ordered date DESC, id DESC and seats seat_index ASC.
type SessionRepository interface {
	Create(ctx context.Context, s model.Session) (model.Session, error)
	InsertSeats(ctx context.Context, seats []model.SessionSeat) error
	ListWithPlayers(ctx context.Context) ([]model.SessionWithPlayers, error)
	GetWithPlayers(ctx context.Context, id int64) (model.SessionWithPlayers, error)
}

// GameRepository declares persistence operations for games and their
// participant rows. Reads return games joined with participants, ordered
// created_at DESC, id DESC.
type GameRepository interface {
	Create(ctx context.Context, g model.Game) (model.Game, error)
	InsertParticipants(ctx context.Context, participants []model.GameParticipant) error
	ListBySession(ctx context.Context, sessionID int64) ([]model.GameWithParticipants, error)
	ListAll(ctx context.Context) ([]model.GameWithParticipants, error)
}

// DateOnly normalizes a timestamp to its calendar day in UTC. Sessions
// store whole days with no time-of-day or timezone shift.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
