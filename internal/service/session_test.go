package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
	"github.com/twentyab/stammtisch-tracker/internal/service"
)

func newSessionService(sessions *fakeSessionRepo, games *fakeGameRepo, players *fakePlayerRepo) service.SessionService {
	return service.NewSessionService(sessions, games, players, &fakeTxManager{}, zerolog.New(io.Discard))
}

func testDate(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestSessionService_CreateSession_Validation(t *testing.T) {
	cases := []struct {
		name    string
		date    time.Time
		players []string
		field   string
	}{
		{"blank name", testDate(1), []string{"Anna", "   "}, "players[1].name"},
		{"empty name", testDate(1), []string{"", "Bert"}, "players[0].name"},
		{"zero date", time.Time{}, []string{"Anna"}, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sessions := newFakeSessionRepo()
			games := newFakeGameRepo()
			players := newFakePlayerRepo()
			svc := newSessionService(sessions, games, players)

			roster := make([]model.NewSessionPlayer, len(tc.players))
			for i, name := range tc.players {
				roster[i] = model.NewSessionPlayer{Name: name, SeatIndex: i}
			}
			_, err := svc.CreateSession(context.Background(), tc.date, roster)
			if !errors.Is(err, service.ErrInvalidInput) {
				t.Fatalf("want invalid input, got %v", err)
			}
			found := false
			for _, fe := range service.FieldErrors(err) {
				if fe.Field == tc.field {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("field %s not reported in %v", tc.field, service.FieldErrors(err))
			}
			// Validation happens before any write: zero rows of any kind.
			if len(sessions.created) != 0 || len(sessions.seats) != 0 || len(players.players) != 0 {
				t.Fatalf("validation failure must not write rows")
			}
		})
	}
}

func TestSessionService_CreateSession_WritesSessionAndSeats(t *testing.T) {
	sessions := newFakeSessionRepo()
	games := newFakeGameRepo()
	players := newFakePlayerRepo()
	svc := newSessionService(sessions, games, players)

	id, err := svc.CreateSession(context.Background(), testDate(14), []model.NewSessionPlayer{
		{Name: "  Anna ", SeatIndex: 0},
		{Name: "Bert", SeatIndex: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Fatalf("session id = %d, want 1", id)
	}
	if len(sessions.seats) != 2 {
		t.Fatalf("seat rows = %d, want 2", len(sessions.seats))
	}
	// Names are trimmed before persistence.
	if _, ok := players.players["Anna"]; !ok {
		t.Fatalf("trimmed name not persisted: %v", players.players)
	}
	for i, seat := range sessions.seats {
		if seat.SessionID != id || seat.SeatIndex != i {
			t.Fatalf("seat %d = %+v", i, seat)
		}
	}
}

func TestSessionService_CreateSession_ReusesExistingPlayers(t *testing.T) {
	sessions := newFakeSessionRepo()
	games := newFakeGameRepo()
	players := newFakePlayerRepo()
	svc := newSessionService(sessions, games, players)

	if _, err := svc.CreateSession(context.Background(), testDate(1), []model.NewSessionPlayer{{Name: "Anna", SeatIndex: 0}}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateSession(context.Background(), testDate(2), []model.NewSessionPlayer{{Name: "Anna", SeatIndex: 0}}); err != nil {
		t.Fatalf("second create: %v", err)
	}
	if len(players.players) != 1 {
		t.Fatalf("player rows = %d, want 1", len(players.players))
	}
	if sessions.seats[0].PlayerID != sessions.seats[1].PlayerID {
		t.Fatalf("same name must resolve to same id: %+v", sessions.seats)
	}

	// Names are case-sensitive: "anna" is a different player.
	if _, err := svc.CreateSession(context.Background(), testDate(3), []model.NewSessionPlayer{{Name: "anna", SeatIndex: 0}}); err != nil {
		t.Fatalf("third create: %v", err)
	}
	if len(players.players) != 2 {
		t.Fatalf("case-sensitive names must create distinct players, got %d", len(players.players))
	}
}

func TestSessionService_CreateSession_DuplicateRaceFallsBackToReread(t *testing.T) {
	sessions := newFakeSessionRepo()
	games := newFakeGameRepo()
	players := newFakePlayerRepo()
	// Losing the insert race: a concurrent writer lands the row between our
	// read and our insert.
	players.insertErr = repository.ErrAlreadyExists
	players.onInsert = func(name string) { players.add(name) }
	svc := newSessionService(sessions, games, players)

	id, err := svc.CreateSession(context.Background(), testDate(5), []model.NewSessionPlayer{{Name: "Anna", SeatIndex: 0}})
	if err != nil {
		t.Fatalf("race fallback must succeed, got %v", err)
	}
	if id == 0 || len(sessions.seats) != 1 {
		t.Fatalf("session not written after fallback")
	}
}

func TestSessionService_CreateSession_RereadMissIsFatal(t *testing.T) {
	sessions := newFakeSessionRepo()
	games := newFakeGameRepo()
	players := newFakePlayerRepo()
	// Conflict reported but no row ever appears: persistence contract broken.
	players.insertErr = repository.ErrAlreadyExists
	svc := newSessionService(sessions, games, players)

	_, err := svc.CreateSession(context.Background(), testDate(5), []model.NewSessionPlayer{{Name: "Anna", SeatIndex: 0}})
	if !errors.Is(err, service.ErrPlayerPersistence) {
		t.Fatalf("want ErrPlayerPersistence, got %v", err)
	}
	if len(sessions.created) != 0 {
		t.Fatalf("no session row may be written on fatal player resolution")
	}
}

func TestSessionService_SessionSummaries(t *testing.T) {
	sessions := newFakeSessionRepo()
	games := newFakeGameRepo()
	players := newFakePlayerRepo()

	anna := model.Player{ID: 1, Name: "Anna"}
	bert := model.Player{ID: 2, Name: "Bert"}
	// Repo contract returns newest first; seats arrive unsorted on purpose.
	sessions.list = []model.SessionWithPlayers{
		{
			Session: model.Session{ID: 2, Date: testDate(21)},
			Players: []model.SeatedPlayer{
				{Player: bert, SeatIndex: 1},
				{Player: anna, SeatIndex: 0},
			},
		},
		{
			Session: model.Session{ID: 1, Date: testDate(7)},
			Players: []model.SeatedPlayer{{Player: anna, SeatIndex: 0}},
		},
	}
	games.list = []model.GameWithParticipants{
		{Game: model.Game{ID: 11, SessionID: 2, CallerID: 1, TrumpSuit: model.TrumpHerz}},
		{Game: model.Game{ID: 10, SessionID: 2, CallerID: 2, TrumpSuit: model.TrumpBlatt}},
	}

	svc := newSessionService(sessions, games, players)
	summaries, err := svc.SessionSummaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	if summaries[0].ID != 2 || summaries[1].ID != 1 {
		t.Fatalf("order must follow the repository's newest-first contract: %+v", summaries)
	}
	if summaries[0].GameCount != 2 || summaries[1].GameCount != 0 {
		t.Fatalf("game counts wrong: %+v", summaries)
	}
	if summaries[0].SeatOrder[0].Name != "Anna" || summaries[0].SeatOrder[1].Name != "Bert" {
		t.Fatalf("seats must be ordered by seat index: %+v", summaries[0].SeatOrder)
	}
}

func TestSessionService_SessionDetail(t *testing.T) {
	sessions := newFakeSessionRepo()
	games := newFakeGameRepo()
	players := newFakePlayerRepo()

	anna := model.Player{ID: 1, Name: "Anna"}
	bert := model.Player{ID: 2, Name: "Bert"}
	sessions.list = []model.SessionWithPlayers{{
		Session: model.Session{ID: 1, Date: testDate(14)},
		Players: []model.SeatedPlayer{
			{Player: anna, SeatIndex: 0},
			{Player: bert, SeatIndex: 1},
		},
	}}
	games.list = []model.GameWithParticipants{{
		Game: model.Game{ID: 1, SessionID: 1, CallerID: 1, TrumpSuit: model.TrumpHerz, HeartBlind: true},
		Participants: []model.ParticipantWithPlayer{
			{Player: anna, Participant: model.GameParticipant{GameID: 1, PlayerID: 1, IsPlaying: true, TricksWon: intPtr(12), AmountPaid: 5}},
			{Player: bert, Participant: model.GameParticipant{GameID: 1, PlayerID: 2, IsPlaying: true, TricksWon: intPtr(8), AmountPaid: 5}},
		},
	}}

	svc := newSessionService(sessions, games, players)
	detail, err := svc.SessionDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := detail.Players[0]
	if a.TricksWon != 12 || a.RemainingPoints != 8 || a.GamesPlayed != 1 || a.GamesSkipped != 0 || a.AmountPaid != 5 {
		t.Fatalf("stats for Anna wrong: %+v", a)
	}
	b := detail.Players[1]
	if b.TricksWon != 8 || b.RemainingPoints != 12 {
		t.Fatalf("stats for Bert wrong: %+v", b)
	}
	if len(detail.Games) != 1 {
		t.Fatalf("games = %d, want 1", len(detail.Games))
	}
	g := detail.Games[0]
	if g.Multiplier != 4 {
		t.Fatalf("blind HERZ multiplier = %d, want 4", g.Multiplier)
	}
	if g.Caller.ID != 1 || g.Caller.Name != "Anna" {
		t.Fatalf("caller not resolved among participants: %+v", g.Caller)
	}
}

func TestSessionService_SessionDetail_SittingOutAndNilTricks(t *testing.T) {
	sessions := newFakeSessionRepo()
	games := newFakeGameRepo()
	players := newFakePlayerRepo()

	anna := model.Player{ID: 1, Name: "Anna"}
	bert := model.Player{ID: 2, Name: "Bert"}
	sessions.list = []model.SessionWithPlayers{{
		Session: model.Session{ID: 1, Date: testDate(14)},
		Players: []model.SeatedPlayer{
			{Player: anna, SeatIndex: 0},
			{Player: bert, SeatIndex: 1},
		},
	}}
	games.list = []model.GameWithParticipants{{
		Game: model.Game{ID: 1, SessionID: 1, CallerID: 1, TrumpSuit: model.TrumpSchell},
		Participants: []model.ParticipantWithPlayer{
			{Player: anna, Participant: model.GameParticipant{GameID: 1, PlayerID: 1, IsPlaying: true, TricksWon: nil, AmountPaid: 2}},
			// Sat out but still paid.
			{Player: bert, Participant: model.GameParticipant{GameID: 1, PlayerID: 2, IsPlaying: false, TricksWon: nil, AmountPaid: 3}},
		},
	}}

	svc := newSessionService(sessions, games, players)
	detail, err := svc.SessionDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, b := detail.Players[0], detail.Players[1]
	if a.TricksWon != 0 || a.GamesPlayed != 1 || a.RemainingPoints != 20 {
		t.Fatalf("nil tricks must sum as zero: %+v", a)
	}
	if b.GamesPlayed != 0 || b.GamesSkipped != 1 || b.AmountPaid != 3 {
		t.Fatalf("sitting out must count as skipped but keep the payment: %+v", b)
	}
}

func TestSessionService_SessionDetail_CallerNotParticipant(t *testing.T) {
	sessions := newFakeSessionRepo()
	games := newFakeGameRepo()
	players := newFakePlayerRepo()

	anna := model.Player{ID: 1, Name: "Anna"}
	sessions.list = []model.SessionWithPlayers{{
		Session: model.Session{ID: 1, Date: testDate(14)},
		Players: []model.SeatedPlayer{{Player: anna, SeatIndex: 0}},
	}}
	games.list = []model.GameWithParticipants{{
		Game: model.Game{ID: 1, SessionID: 1, CallerID: 99, TrumpSuit: model.TrumpHerz},
		Participants: []model.ParticipantWithPlayer{
			{Player: anna, Participant: model.GameParticipant{GameID: 1, PlayerID: 1, IsPlaying: true, TricksWon: intPtr(3)}},
		},
	}}

	svc := newSessionService(sessions, games, players)
	_, err := svc.SessionDetail(context.Background(), 1)
	if !errors.Is(err, service.ErrCallerNotParticipant) {
		t.Fatalf("want ErrCallerNotParticipant, got %v", err)
	}
}

func TestSessionService_SessionDetail_NotFound(t *testing.T) {
	svc := newSessionService(newFakeSessionRepo(), newFakeGameRepo(), newFakePlayerRepo())
	_, err := svc.SessionDetail(context.Background(), 42)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
