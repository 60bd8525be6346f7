package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
)

type gameRepository struct{ pool *pgxpool.Pool }

func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO games (session_id, caller_id, trump_suit, heart_blind)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, session_id, caller_id, trump_suit, heart_blind, created_at`,
		g.SessionID, g.CallerID, string(g.TrumpSuit), g.HeartBlind,
	)
	var out model.Game
	if err := row.Scan(&out.ID, &out.SessionID, &out.CallerID, &out.TrumpSuit, &out.HeartBlind, &out.CreatedAt); err != nil {
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) InsertParticipants(ctx context.Context, participants []model.GameParticipant) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	for _, p := range participants {
		if _, err := exec.Exec(ctx,
			`INSERT INTO game_participants (game_id, player_id, is_playing, tricks_won, amount_paid)
			 VALUES ($1, $2, $3, $4, $5)`,
			p.GameID, p.PlayerID, p.IsPlaying, p.TricksWon, p.AmountPaid,
		); err != nil {
			return repository.MapPgError(err)
		}
	}
	return nil
}

const gameWithParticipantsQuery = `
	SELECT g.id, g.session_id, g.caller_id, g.trump_suit, g.heart_blind, g.created_at,
	       p.id, p.name,
	       gp.is_playing, gp.tricks_won, gp.amount_paid
	FROM games g
	LEFT JOIN game_participants gp ON gp.game_id = g.id
	LEFT JOIN players p ON p.id = gp.player_id`

func (r *gameRepository) ListBySession(ctx context.Context, sessionID int64) ([]model.GameWithParticipants, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		gameWithParticipantsQuery+`
		 WHERE g.session_id = $1
		 ORDER BY g.created_at DESC, g.id DESC, p.id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	return scanGamesWithParticipants(rows)
}

func (r *gameRepository) ListAll(ctx context.Context) ([]model.GameWithParticipants, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		gameWithParticipantsQuery+` ORDER BY g.created_at DESC, g.id DESC, p.id ASC`,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	return scanGamesWithParticipants(rows)
}

// scanGamesWithParticipants folds the joined result set into one entry per
// game, preserving query order.
func scanGamesWithParticipants(rows pgx.Rows) ([]model.GameWithParticipants, error) {
	var (
		res     []model.GameWithParticipants
		current *model.GameWithParticipants
	)
	for rows.Next() {
		var (
			g          model.Game
			playerID   *int64
			name       *string
			isPlaying  *bool
			tricksWon  *int
			amountPaid *int
		)
		if err := rows.Scan(
			&g.ID, &g.SessionID, &g.CallerID, &g.TrumpSuit, &g.HeartBlind, &g.CreatedAt,
			&playerID, &name, &isPlaying, &tricksWon, &amountPaid,
		); err != nil {
			return nil, repository.MapPgError(err)
		}
		if current == nil || current.Game.ID != g.ID {
			res = append(res, model.GameWithParticipants{Game: g})
			current = &res[len(res)-1]
		}
		if playerID != nil && name != nil && isPlaying != nil && amountPaid != nil {
			current.Participants = append(current.Participants, model.ParticipantWithPlayer{
				Player: model.Player{ID: *playerID, Name: *name},
				Participant: model.GameParticipant{
					GameID:     g.ID,
					PlayerID:   *playerID,
					IsPlaying:  *isPlaying,
					TricksWon:  tricksWon,
					AmountPaid: *amountPaid,
				},
			})
		}
	}
	return res, rows.Err()
}

var _ repository.GameRepository = (*gameRepository)(nil)
