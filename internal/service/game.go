package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
)

type gameService struct {
	games repository.GameRepository
	tx    repository.TxManager
	log   zerolog.Logger
}

func NewGameService(games repository.GameRepository, tx repository.TxManager, logger zerolog.Logger) GameService {
	l := logger.With().Str("module", "service").Str("component", "game").Logger()
	return &gameService{games: games, tx: tx, log: l}
}

// CreateGame writes the game row and all participant rows in one
// transaction. The caller-is-a-participant invariant is deliberately NOT
// checked here; it is enforced at read time when the game is resolved to a
// GameDetail. A write that slips past it fails the affected session's
// detail view, not this insert.
func (s *gameService) CreateGame(ctx context.Context, sessionID, callerID int64, trumpSuit model.TrumpSuit, heartBlind bool, participants []model.NewGameParticipant) (int64, error) {
	start := time.Now()

	var ferrs []FieldError
	if sessionID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "session_id", Message: "must be > 0"})
	}
	if callerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "caller_id", Message: "must be > 0"})
	}
	if !trumpSuit.Valid() {
		ferrs = append(ferrs, FieldError{Field: "trump_suit", Message: "must be one of HERZ, EICHEL, SCHELL, BLATT"})
	}
	if len(participants) == 0 {
		ferrs = append(ferrs, FieldError{Field: "participants", Message: "must not be empty"})
	}
	for i, p := range participants {
		if p.PlayerID <= 0 {
			ferrs = append(ferrs, FieldError{
				Field:   fmt.Sprintf("participants[%d].player_id", i),
				Message: "must be > 0",
			})
		}
	}

	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("game validation failed")
		return 0, err
	}

	var gameID int64
	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.games.Create(ctx, model.Game{
			SessionID:  sessionID,
			CallerID:   callerID,
			TrumpSuit:  trumpSuit,
			HeartBlind: heartBlind,
		})
		if err != nil {
			return err
		}
		gameID = created.ID

		rows := make([]model.GameParticipant, len(participants))
		for i, p := range participants {
			rows[i] = model.GameParticipant{
				GameID:     gameID,
				PlayerID:   p.PlayerID,
				IsPlaying:  p.IsPlaying,
				TricksWon:  p.TricksWon,
				AmountPaid: p.AmountPaid,
			}
		}
		return s.games.InsertParticipants(ctx, rows)
	}); err != nil {
		s.log.Error().Err(err).Int64("session_id", sessionID).Msg("create game failed")
		return 0, err
	}

	s.log.Info().Dur("took", time.Since(start)).Int64("game_id", gameID).Int("participants", len(participants)).Msg("game created")
	return gameID, nil
}
