// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/twentyab/stammtisch-tracker/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrPlayerPersistence signals that a player vanished between an
// insert-or-find and its fallback re-read. That breaks the persistence
// contract and the operation fails without retry.
var ErrPlayerPersistence = errors.New("player could not be resolved after insert")

// ErrCallerNotParticipant signals stored data violating the invariant that
// a game's caller is among its participants. Aggregation fails loudly for
// the affected pass.
var ErrCallerNotParticipant = errors.New("game caller is not among its participants")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// SessionService defines session-oriented use cases: the write side
// (create) and the two session read views.
type SessionService interface {
	CreateSession(ctx context.Context, date time.Time, players []model.NewSessionPlayer) (int64, error)
	SessionSummaries(ctx context.Context) ([]model.SessionSummary, error)
	SessionDetail(ctx context.Context, id int64) (model.SessionDetail, error)
}

// GameService defines game-oriented use cases.
type GameService interface {
	CreateGame(ctx context.Context, sessionID, callerID int64, trumpSuit model.TrumpSuit, heartBlind bool, participants []model.NewGameParticipant) (int64, error)
}

// PlayerService defines player-oriented use cases.
type PlayerService interface {
	ListPlayers(ctx context.Context) ([]model.Player, error)
}

// StatsService defines the global statistics view.
type StatsService interface {
	StatisticsOverview(ctx context.Context) (model.StatisticsOverview, error)
}
