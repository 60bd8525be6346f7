package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
)

type sessionRepository struct{ pool *pgxpool.Pool }

func NewSessionRepository(pool *pgxpool.Pool) repository.SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, s model.Session) (model.Session, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Session{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO sessions (date, notes) VALUES ($1, $2)
		 RETURNING id, date, created_at, notes`,
		repository.DateOnly(s.Date), s.Notes,
	)
	var out model.Session
	if err := row.Scan(&out.ID, &out.Date, &out.CreatedAt, &out.Notes); err != nil {
		return model.Session{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *sessionRepository) InsertSeats(ctx context.Context, seats []model.SessionSeat) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	for _, seat := range seats {
		if _, err := exec.Exec(ctx,
			`INSERT INTO session_players (session_id, player_id, seat_index)
			 VALUES ($1, $2, $3)`,
			seat.SessionID, seat.PlayerID, seat.SeatIndex,
		); err != nil {
			return repository.MapPgError(err)
		}
	}
	return nil
}

const sessionWithPlayersQuery = `
	SELECT s.id, s.date, s.created_at, s.notes,
	       p.id, p.name, sp.seat_index
	FROM sessions s
	LEFT JOIN session_players sp ON sp.session_id = s.id
	LEFT JOIN players p ON p.id = sp.player_id`

func (r *sessionRepository) ListWithPlayers(ctx context.Context) ([]model.SessionWithPlayers, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		sessionWithPlayersQuery+` ORDER BY s.date DESC, s.id DESC, sp.seat_index ASC`,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	return scanSessionsWithPlayers(rows)
}

func (r *sessionRepository) GetWithPlayers(ctx context.Context, id int64) (model.SessionWithPlayers, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.SessionWithPlayers{}, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		sessionWithPlayersQuery+` WHERE s.id = $1 ORDER BY sp.seat_index ASC`, id,
	)
	if err != nil {
		return model.SessionWithPlayers{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res, err := scanSessionsWithPlayers(rows)
	if err != nil {
		return model.SessionWithPlayers{}, err
	}
	if len(res) == 0 {
		return model.SessionWithPlayers{}, repository.ErrNotFound
	}
	return res[0], nil
}

// scanSessionsWithPlayers folds the joined result set into one entry per
// session, preserving the row order produced by the query. The LEFT JOIN
// yields NULL player columns for a session with no seats yet.
func scanSessionsWithPlayers(rows pgx.Rows) ([]model.SessionWithPlayers, error) {
	var (
		res     []model.SessionWithPlayers
		current *model.SessionWithPlayers
	)
	for rows.Next() {
		var (
			s         model.Session
			playerID  *int64
			name      *string
			seatIndex *int
		)
		if err := rows.Scan(&s.ID, &s.Date, &s.CreatedAt, &s.Notes, &playerID, &name, &seatIndex); err != nil {
			return nil, repository.MapPgError(err)
		}
		if current == nil || current.Session.ID != s.ID {
			res = append(res, model.SessionWithPlayers{Session: s})
			current = &res[len(res)-1]
		}
		if playerID != nil && name != nil && seatIndex != nil {
			current.Players = append(current.Players, model.SeatedPlayer{
				Player:    model.Player{ID: *playerID, Name: *name},
				SeatIndex: *seatIndex,
			})
		}
	}
	return res, rows.Err()
}

var _ repository.SessionRepository = (*sessionRepository)(nil)
