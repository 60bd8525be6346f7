package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
)

type statsService struct {
	games   repository.GameRepository
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewStatsService(games repository.GameRepository, players repository.PlayerRepository, logger zerolog.Logger) StatsService {
	l := logger.With().Str("module", "service").Str("component", "stats").Logger()
	return &statsService{games: games, players: players, log: l}
}

// StatisticsOverview recomputes the lifetime statistics from the full game
// history on every call. Rows referencing an unknown player id are skipped
// silently; unlike the session detail view, global statistics tolerate
// partial referential inconsistency.
func (s *statsService) StatisticsOverview(ctx context.Context) (model.StatisticsOverview, error) {
	games, err := s.games.ListAll(ctx)
	if err != nil {
		return model.StatisticsOverview{}, err
	}
	players, err := s.players.List(ctx)
	if err != nil {
		return model.StatisticsOverview{}, err
	}
	return buildStatistics(games, players), nil
}

func buildStatistics(games []model.GameWithParticipants, players []model.Player) model.StatisticsOverview {
	refs := make(map[int64]model.PlayerReference, len(players))
	for _, p := range players {
		refs[p.ID] = model.PlayerReference{ID: p.ID, Name: p.Name}
	}

	overview := model.StatisticsOverview{
		CalledTrumpCounts: make(map[model.PlayerReference]map[model.TrumpSuit]int, len(players)),
		HeartBlindCalls:   make(map[model.PlayerReference]int, len(players)),
		SkippedGames:      make(map[model.PlayerReference]int, len(players)),
		TotalPayments:     make(map[model.PlayerReference]int, len(players)),
		TotalTricks:       make(map[model.PlayerReference]int, len(players)),
	}

	for _, g := range games {
		if caller, ok := refs[g.Game.CallerID]; ok {
			suits := overview.CalledTrumpCounts[caller]
			if suits == nil {
				suits = make(map[model.TrumpSuit]int, len(model.TrumpSuits))
				overview.CalledTrumpCounts[caller] = suits
			}
			suits[g.Game.TrumpSuit]++
			if g.Game.HeartBlind && g.Game.TrumpSuit == model.TrumpHerz {
				overview.HeartBlindCalls[caller]++
			}
		}

		for _, part := range g.Participants {
			ref, ok := refs[part.Player.ID]
			if !ok {
				continue
			}
			if part.Participant.IsPlaying {
				// nil tricks collapse to 0 only here, at aggregation time.
				tricks := 0
				if part.Participant.TricksWon != nil {
					tricks = *part.Participant.TricksWon
				}
				overview.TotalTricks[ref] += tricks
			} else {
				overview.SkippedGames[ref]++
			}
			overview.TotalPayments[ref] += part.Participant.AmountPaid
		}
	}

	// Completeness invariant: every known player appears in every map, and
	// every trump map carries all four suits.
	for _, p := range players {
		ref := refs[p.ID]
		suits := overview.CalledTrumpCounts[ref]
		if suits == nil {
			suits = make(map[model.TrumpSuit]int, len(model.TrumpSuits))
			overview.CalledTrumpCounts[ref] = suits
		}
		for _, suit := range model.TrumpSuits {
			if _, ok := suits[suit]; !ok {
				suits[suit] = 0
			}
		}
		ensureEntry(overview.HeartBlindCalls, ref)
		ensureEntry(overview.SkippedGames, ref)
		ensureEntry(overview.TotalPayments, ref)
		ensureEntry(overview.TotalTricks, ref)
	}

	return overview
}

func ensureEntry(m map[model.PlayerReference]int, ref model.PlayerReference) {
	if _, ok := m[ref]; !ok {
		m[ref] = 0
	}
}

// FlattenOverview converts the map-keyed overview into per-player rows
// ordered by name (ties by id) for JSON transport.
func FlattenOverview(o model.StatisticsOverview) []model.PlayerStatistics {
	rows := make([]model.PlayerStatistics, 0, len(o.TotalTricks))
	for ref := range o.TotalTricks {
		rows = append(rows, model.PlayerStatistics{
			Player:            ref,
			CalledTrumpCounts: o.CalledTrumpCounts[ref],
			HeartBlindCalls:   o.HeartBlindCalls[ref],
			SkippedGames:      o.SkippedGames[ref],
			TotalPayments:     o.TotalPayments[ref],
			TotalTricks:       o.TotalTricks[ref],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Player.Name != rows[j].Player.Name {
			return rows[i].Player.Name < rows[j].Player.Name
		}
		return rows[i].Player.ID < rows[j].Player.ID
	})
	return rows
}
