package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
)

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

// Insert adds a player with ignore-on-duplicate semantics. ON CONFLICT DO
// NOTHING yields no row on a name collision, which surfaces here as
// ErrAlreadyExists so the service can fall back to a re-read by name.
func (r *playerRepository) Insert(ctx context.Context, name string) (int64, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO players (name) VALUES ($1)
		 ON CONFLICT (name) DO NOTHING
		 RETURNING id`,
		name,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrAlreadyExists
		}
		return 0, repository.MapPgError(err)
	}
	return id, nil
}

func (r *playerRepository) GetByName(ctx context.Context, name string) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, name FROM players WHERE name = $1`, name,
	)
	var out model.Player
	if err := row.Scan(&out.ID, &out.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) List(ctx context.Context) ([]model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT id, name FROM players ORDER BY name ASC`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.Player, 0, 8)
	for rows.Next() {
		var it model.Player
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, it)
	}
	return res, rows.Err()
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
