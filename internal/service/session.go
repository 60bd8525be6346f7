package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
	"github.com/twentyab/stammtisch-tracker/internal/scoring"
)

type sessionService struct {
	sessions repository.SessionRepository
	games    repository.GameRepository
	players  repository.PlayerRepository
	tx       repository.TxManager
	log      zerolog.Logger
}

func NewSessionService(sessions repository.SessionRepository, games repository.GameRepository, players repository.PlayerRepository, tx repository.TxManager, logger zerolog.Logger) SessionService {
	l := logger.With().Str("module", "service").Str("component", "session").Logger()
	return &sessionService{sessions: sessions, games: games, players: players, tx: tx, log: l}
}

// CreateSession validates the full roster before touching storage, then
// writes the session, its players and all seat rows in one transaction.
// Either everything lands or nothing does.
func (s *sessionService) CreateSession(ctx context.Context, date time.Time, players []model.NewSessionPlayer) (int64, error) {
	start := time.Now()

	var ferrs []FieldError
	if date.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "must be set"})
	}

	// Normalize early so validation and persistence see canonical values.
	trimmed := make([]model.NewSessionPlayer, len(players))
	for i, p := range players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			ferrs = append(ferrs, FieldError{
				Field:   fmt.Sprintf("players[%d].name", i),
				Message: "must not be empty",
			})
		}
		trimmed[i] = model.NewSessionPlayer{Name: name, SeatIndex: p.SeatIndex}
	}

	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("session validation failed")
		return 0, err
	}

	var sessionID int64
	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		playerIDs := make([]int64, len(trimmed))
		for i, p := range trimmed {
			id, err := resolvePlayer(ctx, s.players, p.Name)
			if err != nil {
				return err
			}
			playerIDs[i] = id
		}

		created, err := s.sessions.Create(ctx, model.Session{Date: date})
		if err != nil {
			return err
		}
		sessionID = created.ID

		seats := make([]model.SessionSeat, len(trimmed))
		for i, p := range trimmed {
			seats[i] = model.SessionSeat{
				SessionID: sessionID,
				PlayerID:  playerIDs[i],
				SeatIndex: p.SeatIndex,
			}
		}
		return s.sessions.InsertSeats(ctx, seats)
	}); err != nil {
		s.log.Error().Err(err).Msg("create session failed")
		return 0, err
	}

	s.log.Info().Dur("took", time.Since(start)).Int64("session_id", sessionID).Int("seats", len(trimmed)).Msg("session created")
	return sessionID, nil
}

// SessionSummaries recomputes the session list view from the full row set:
// sessions come back newest date first (ties by newest id) and each carries
// its seat order and game count.
func (s *sessionService) SessionSummaries(ctx context.Context) ([]model.SessionSummary, error) {
	sessions, err := s.sessions.ListWithPlayers(ctx)
	if err != nil {
		return nil, err
	}
	games, err := s.games.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	gameCounts := make(map[int64]int, len(sessions))
	for _, g := range games {
		gameCounts[g.Game.SessionID]++
	}

	res := make([]model.SessionSummary, 0, len(sessions))
	for _, swp := range sessions {
		res = append(res, model.SessionSummary{
			ID:        swp.Session.ID,
			Date:      swp.Session.Date,
			SeatOrder: seatOrder(swp.Players),
			GameCount: gameCounts[swp.Session.ID],
		})
	}
	return res, nil
}

// SessionDetail recomputes the full view of one session: per-seat running
// stats plus every game resolved to its detail form, newest first.
func (s *sessionService) SessionDetail(ctx context.Context, id int64) (model.SessionDetail, error) {
	if id <= 0 {
		return model.SessionDetail{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}

	swp, err := s.sessions.GetWithPlayers(ctx, id)
	if err != nil {
		return model.SessionDetail{}, err
	}
	games, err := s.games.ListBySession(ctx, id)
	if err != nil {
		return model.SessionDetail{}, err
	}

	seated := sortedBySeat(swp.Players)
	stats := make([]model.PlayerSessionStats, 0, len(seated))
	for _, sp := range seated {
		ps := model.PlayerSessionStats{
			PlayerID:  sp.Player.ID,
			Name:      sp.Player.Name,
			SeatIndex: sp.SeatIndex,
		}
		for _, g := range games {
			for _, part := range g.Participants {
				if part.Player.ID != sp.Player.ID {
					continue
				}
				if part.Participant.IsPlaying {
					ps.GamesPlayed++
					if part.Participant.TricksWon != nil {
						ps.TricksWon += *part.Participant.TricksWon
					}
				} else {
					ps.GamesSkipped++
				}
				ps.AmountPaid += part.Participant.AmountPaid
			}
		}
		ps.RemainingPoints = scoring.RemainingPoints(ps.TricksWon)
		stats = append(stats, ps)
	}

	details := make([]model.GameDetail, 0, len(games))
	for _, g := range games {
		detail, err := gameDetail(g)
		if err != nil {
			s.log.Error().Err(err).Int64("session_id", id).Int64("game_id", g.Game.ID).Msg("session detail aggregation failed")
			return model.SessionDetail{}, err
		}
		details = append(details, detail)
	}

	return model.SessionDetail{
		ID:      swp.Session.ID,
		Date:    swp.Session.Date,
		Players: stats,
		Games:   details,
	}, nil
}

// gameDetail resolves a stored game for presentation. The caller must be
// found among the game's own participants; a miss means the stored data
// violates the caller-is-a-participant invariant and the whole pass fails.
func gameDetail(g model.GameWithParticipants) (model.GameDetail, error) {
	participants := make([]model.GameParticipantDetail, 0, len(g.Participants))
	var caller *model.PlayerReference
	for _, p := range g.Participants {
		ref := model.PlayerReference{ID: p.Player.ID, Name: p.Player.Name}
		participants = append(participants, model.GameParticipantDetail{
			Player:     ref,
			IsPlaying:  p.Participant.IsPlaying,
			TricksWon:  p.Participant.TricksWon,
			AmountPaid: p.Participant.AmountPaid,
		})
		if p.Player.ID == g.Game.CallerID && caller == nil {
			caller = &ref
		}
	}
	if caller == nil {
		return model.GameDetail{}, fmt.Errorf("%w: game %d, caller %d", ErrCallerNotParticipant, g.Game.ID, g.Game.CallerID)
	}

	return model.GameDetail{
		ID:           g.Game.ID,
		SessionID:    g.Game.SessionID,
		TrumpSuit:    g.Game.TrumpSuit,
		Caller:       *caller,
		HeartBlind:   g.Game.HeartBlind,
		CreatedAt:    g.Game.CreatedAt,
		Multiplier:   scoring.Multiplier(g.Game.TrumpSuit, g.Game.HeartBlind),
		Participants: participants,
	}, nil
}

func sortedBySeat(players []model.SeatedPlayer) []model.SeatedPlayer {
	out := make([]model.SeatedPlayer, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SeatIndex < out[j].SeatIndex })
	return out
}

func seatOrder(players []model.SeatedPlayer) []model.PlayerSeat {
	seated := sortedBySeat(players)
	out := make([]model.PlayerSeat, 0, len(seated))
	for _, sp := range seated {
		out = append(out, model.PlayerSeat{
			PlayerID:  sp.Player.ID,
			Name:      sp.Player.Name,
			SeatIndex: sp.SeatIndex,
		})
	}
	return out
}
