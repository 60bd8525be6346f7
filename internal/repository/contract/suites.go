// Package contract defines reusable behavior suites for repository
// implementations. Each Run* function takes a factory so the same
// expectations can be wired to any backend; the postgres package binds
// them to a real database when one is available.
package contract

import (
	"context"
	"testing"
	"time"

	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
)

type PlayerFactory func(t *testing.T) (repository.PlayerRepository, func())

type SessionFactory func(t *testing.T) (repo repository.SessionRepository, mkPlayer func(ctx context.Context, name string) (int64, error), cleanup func())

// GameFactory seeds a session with the given roster and hands back its id
// plus the player ids in roster order.
type GameFactory func(t *testing.T) (repo repository.GameRepository, mkSession func(ctx context.Context, date time.Time, names ...string) (int64, []int64, error), cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, players repository.PlayerRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func RunPlayerRepositoryContract(t *testing.T, makeRepo PlayerFactory) {
	t.Helper()

	t.Run("insert_and_get_by_name", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := repo.Insert(ctx, "Anna")
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		got, err := repo.GetByName(ctx, "Anna")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != id || got.Name != "Anna" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_by_name_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByName(context.Background(), "Nobody")
		if err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("insert_duplicate_reports_already_exists", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		first, err := repo.Insert(ctx, "Dup")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err = repo.Insert(ctx, "Dup")
		if err == nil || err != repository.ErrAlreadyExists {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		// The conflicting insert must not have written a second row.
		got, err := repo.GetByName(ctx, "Dup")
		if err != nil {
			t.Fatalf("re-read: %v", err)
		}
		if got.ID != first {
			t.Fatalf("duplicate insert changed the row: got id %d, want %d", got.ID, first)
		}
	})

	t.Run("names_are_case_sensitive", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		upper, err := repo.Insert(ctx, "Anna")
		if err != nil {
			t.Fatalf("insert upper: %v", err)
		}
		lower, err := repo.Insert(ctx, "anna")
		if err != nil {
			t.Fatalf("insert lower must not conflict: %v", err)
		}
		if upper == lower {
			t.Fatalf("distinct casings must be distinct players")
		}
	})

	t.Run("list_ordered_by_name", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for _, name := range []string{"Zenzi", "Anna", "Moritz"} {
			if _, err := repo.Insert(ctx, name); err != nil {
				t.Fatalf("seed %s: %v", name, err)
			}
		}
		players, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(players) != 3 {
			t.Fatalf("expected 3 players, got %d", len(players))
		}
		want := []string{"Anna", "Moritz", "Zenzi"}
		for i, p := range players {
			if p.Name != want[i] {
				t.Fatalf("list not ordered by name: %+v", players)
			}
		}
	})
}

func RunSessionRepositoryContract(t *testing.T, makeRepo SessionFactory) {
	t.Helper()

	t.Run("create_and_get_with_seats", func(t *testing.T) {
		repo, mkPlayer, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		anna, err := mkPlayer(ctx, "Anna")
		if err != nil {
			t.Fatalf("seed player: %v", err)
		}
		bert, err := mkPlayer(ctx, "Bert")
		if err != nil {
			t.Fatalf("seed player: %v", err)
		}
		created, err := repo.Create(ctx, model.Session{Date: day(14)})
		if err != nil {
			t.Fatalf("create session: %v", err)
		}
		// Seats written out of seat order on purpose.
		err = repo.InsertSeats(ctx, []model.SessionSeat{
			{SessionID: created.ID, PlayerID: bert, SeatIndex: 1},
			{SessionID: created.ID, PlayerID: anna, SeatIndex: 0},
		})
		if err != nil {
			t.Fatalf("insert seats: %v", err)
		}
		got, err := repo.GetWithPlayers(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		y, m, d := got.Session.Date.Date()
		if y != 2026 || m != time.March || d != 14 {
			t.Fatalf("date must round-trip as a calendar day: %v", got.Session.Date)
		}
		if len(got.Players) != 2 {
			t.Fatalf("expected 2 seats, got %d", len(got.Players))
		}
		if got.Players[0].SeatIndex != 0 || got.Players[0].Player.Name != "Anna" {
			t.Fatalf("seats must come back ordered by seat index: %+v", got.Players)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetWithPlayers(context.Background(), 999999)
		if err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_newest_date_first_newest_id_breaks_ties", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		older, err := repo.Create(ctx, model.Session{Date: day(7)})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		tieFirst, err := repo.Create(ctx, model.Session{Date: day(21)})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		tieSecond, err := repo.Create(ctx, model.Session{Date: day(21)})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		list, err := repo.ListWithPlayers(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 sessions, got %d", len(list))
		}
		wantIDs := []int64{tieSecond.ID, tieFirst.ID, older.ID}
		for i, swp := range list {
			if swp.Session.ID != wantIDs[i] {
				t.Fatalf("order must be date DESC with id DESC tie-break: got %d at %d, want %d", swp.Session.ID, i, wantIDs[i])
			}
		}
	})

	t.Run("duplicate_seat_index_rejected", func(t *testing.T) {
		repo, mkPlayer, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		anna, _ := mkPlayer(ctx, "Anna")
		bert, _ := mkPlayer(ctx, "Bert")
		created, err := repo.Create(ctx, model.Session{Date: day(1)})
		if err != nil {
			t.Fatalf("seed session: %v", err)
		}
		err = repo.InsertSeats(ctx, []model.SessionSeat{
			{SessionID: created.ID, PlayerID: anna, SeatIndex: 0},
			{SessionID: created.ID, PlayerID: bert, SeatIndex: 0},
		})
		if err == nil || err != repository.ErrAlreadyExists {
			t.Fatalf("expected ErrAlreadyExists for a reused seat index, got %v", err)
		}
	})

	t.Run("seat_requires_known_player", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Session{Date: day(1)})
		if err != nil {
			t.Fatalf("seed session: %v", err)
		}
		err = repo.InsertSeats(ctx, []model.SessionSeat{
			{SessionID: created.ID, PlayerID: 9999999, SeatIndex: 0},
		})
		if err == nil || err != repository.ErrConflict {
			t.Fatalf("expected ErrConflict on FK violation, got %v", err)
		}
	})
}

func RunGameRepositoryContract(t *testing.T, makeRepo GameFactory) {
	t.Helper()

	t.Run("create_and_list_by_session", func(t *testing.T) {
		repo, mkSession, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		sessionID, playerIDs, err := mkSession(ctx, day(14), "Anna", "Bert")
		if err != nil {
			t.Fatalf("seed session: %v", err)
		}
		g, err := repo.Create(ctx, model.Game{
			SessionID:  sessionID,
			CallerID:   playerIDs[0],
			TrumpSuit:  model.TrumpHerz,
			HeartBlind: true,
		})
		if err != nil {
			t.Fatalf("create game: %v", err)
		}
		tricks := 12
		err = repo.InsertParticipants(ctx, []model.GameParticipant{
			{GameID: g.ID, PlayerID: playerIDs[0], IsPlaying: true, TricksWon: &tricks, AmountPaid: 5},
			// Sat out: tricks stay nil at the storage boundary.
			{GameID: g.ID, PlayerID: playerIDs[1], IsPlaying: false, TricksWon: nil, AmountPaid: 3},
		})
		if err != nil {
			t.Fatalf("insert participants: %v", err)
		}
		list, err := repo.ListBySession(ctx, sessionID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 || len(list[0].Participants) != 2 {
			t.Fatalf("unexpected shape: %+v", list)
		}
		got := list[0]
		if got.Game.TrumpSuit != model.TrumpHerz || !got.Game.HeartBlind {
			t.Fatalf("game fields lost: %+v", got.Game)
		}
		var playing, sitting *model.ParticipantWithPlayer
		for i := range got.Participants {
			p := &got.Participants[i]
			if p.Participant.IsPlaying {
				playing = p
			} else {
				sitting = p
			}
		}
		if playing == nil || playing.Participant.TricksWon == nil || *playing.Participant.TricksWon != 12 {
			t.Fatalf("tricks did not round-trip: %+v", got.Participants)
		}
		if sitting == nil || sitting.Participant.TricksWon != nil {
			t.Fatalf("nil tricks must come back nil, not zero: %+v", got.Participants)
		}
		if sitting.Participant.AmountPaid != 3 {
			t.Fatalf("sitting-out payment lost: %+v", sitting.Participant)
		}
	})

	t.Run("list_newest_first", func(t *testing.T) {
		repo, mkSession, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		sessionID, playerIDs, err := mkSession(ctx, day(14), "Anna")
		if err != nil {
			t.Fatalf("seed session: %v", err)
		}
		var ids []int64
		for _, suit := range []model.TrumpSuit{model.TrumpEichel, model.TrumpSchell, model.TrumpBlatt} {
			g, err := repo.Create(ctx, model.Game{SessionID: sessionID, CallerID: playerIDs[0], TrumpSuit: suit})
			if err != nil {
				t.Fatalf("seed game: %v", err)
			}
			ids = append(ids, g.ID)
		}
		list, err := repo.ListBySession(ctx, sessionID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 games, got %d", len(list))
		}
		for i := range list {
			if list[i].Game.ID != ids[len(ids)-1-i] {
				t.Fatalf("games must list newest first: %+v", list)
			}
		}
	})

	t.Run("list_all_spans_sessions", func(t *testing.T) {
		repo, mkSession, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s1, p1, err := mkSession(ctx, day(1), "Anna")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		s2, p2, err := mkSession(ctx, day(2), "Bert")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := repo.Create(ctx, model.Game{SessionID: s1, CallerID: p1[0], TrumpSuit: model.TrumpBlatt}); err != nil {
			t.Fatalf("seed game: %v", err)
		}
		if _, err := repo.Create(ctx, model.Game{SessionID: s2, CallerID: p2[0], TrumpSuit: model.TrumpHerz}); err != nil {
			t.Fatalf("seed game: %v", err)
		}
		all, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected games from both sessions, got %d", len(all))
		}
	})

	t.Run("create_requires_known_session", func(t *testing.T) {
		repo, mkSession, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		_, playerIDs, err := mkSession(ctx, day(1), "Anna")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err = repo.Create(ctx, model.Game{SessionID: 9999999, CallerID: playerIDs[0], TrumpSuit: model.TrumpHerz})
		if err == nil || err != repository.ErrConflict {
			t.Fatalf("expected ErrConflict on FK violation, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, players, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := players.Insert(ctx, "Committed")
			return err
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := players.GetByName(ctx, "Committed"); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, players, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		errMarker := assertErr("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := players.Insert(ctx, "RolledBack"); err != nil {
				return err
			}
			return errMarker
		})
		if err == nil || err.Error() != errMarker.Error() {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := players.GetByName(ctx, "RolledBack"); err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}

// assertErr builds a sentinel error without importing errors to keep helpers local.
func assertErr(msg string) error { return &sentinel{msg} }

type sentinel struct{ s string }

func (e *sentinel) Error() string { return e.s }
