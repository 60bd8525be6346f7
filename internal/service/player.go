package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
)

type playerService struct {
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, log: l}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]model.Player, error) {
	res, err := s.players.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list players failed")
		return nil, err
	}
	return res, nil
}

// resolvePlayer returns the id for a trimmed, non-empty name, inserting the
// player if needed. A duplicate-name conflict (concurrent writer won the
// insert) falls back to a re-read by name; if that re-read still finds
// nothing the persistence contract is broken and the operation fails with
// ErrPlayerPersistence.
func resolvePlayer(ctx context.Context, players repository.PlayerRepository, name string) (int64, error) {
	existing, err := players.GetByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, err
	}

	id, err := players.Insert(ctx, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, repository.ErrAlreadyExists) {
		return 0, err
	}

	inserted, err := players.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("%w: %q", ErrPlayerPersistence, name)
		}
		return 0, err
	}
	return inserted.ID, nil
}
