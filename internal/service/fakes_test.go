package service_test

import (
	"context"
	"sort"

	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
)

// fakePlayerRepo is an in-memory PlayerRepository keyed by exact name.
// insertErr simulates losing the duplicate-name race; onInsert lets a test
// act as the concurrent writer that won it.
type fakePlayerRepo struct {
	nextID    int64
	players   map[string]model.Player
	insertErr error
	onInsert  func(name string)
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{nextID: 1, players: map[string]model.Player{}}
}

func (f *fakePlayerRepo) add(name string) model.Player {
	p := model.Player{ID: f.nextID, Name: name}
	f.nextID++
	f.players[name] = p
	return p
}

func (f *fakePlayerRepo) Insert(_ context.Context, name string) (int64, error) {
	if f.onInsert != nil {
		f.onInsert(name)
	}
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	if _, ok := f.players[name]; ok {
		return 0, repository.ErrAlreadyExists
	}
	return f.add(name).ID, nil
}

func (f *fakePlayerRepo) GetByName(_ context.Context, name string) (model.Player, error) {
	p, ok := f.players[name]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePlayerRepo) List(_ context.Context) ([]model.Player, error) {
	res := make([]model.Player, 0, len(f.players))
	for _, p := range f.players {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

var _ repository.PlayerRepository = (*fakePlayerRepo)(nil)

// fakeSessionRepo records writes and serves canned reads.
type fakeSessionRepo struct {
	nextID  int64
	created []model.Session
	seats   []model.SessionSeat
	list    []model.SessionWithPlayers
}

func newFakeSessionRepo() *fakeSessionRepo { return &fakeSessionRepo{nextID: 1} }

func (f *fakeSessionRepo) Create(_ context.Context, s model.Session) (model.Session, error) {
	s.ID = f.nextID
	f.nextID++
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeSessionRepo) InsertSeats(_ context.Context, seats []model.SessionSeat) error {
	f.seats = append(f.seats, seats...)
	return nil
}

func (f *fakeSessionRepo) ListWithPlayers(_ context.Context) ([]model.SessionWithPlayers, error) {
	return f.list, nil
}

func (f *fakeSessionRepo) GetWithPlayers(_ context.Context, id int64) (model.SessionWithPlayers, error) {
	for _, swp := range f.list {
		if swp.Session.ID == id {
			return swp, nil
		}
	}
	return model.SessionWithPlayers{}, repository.ErrNotFound
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)

// fakeGameRepo records writes and serves canned reads in insertion order,
// which stands in for the repository's created_at DESC, id DESC contract.
type fakeGameRepo struct {
	nextID       int64
	created      []model.Game
	participants []model.GameParticipant
	list         []model.GameWithParticipants
}

func newFakeGameRepo() *fakeGameRepo { return &fakeGameRepo{nextID: 1} }

func (f *fakeGameRepo) Create(_ context.Context, g model.Game) (model.Game, error) {
	g.ID = f.nextID
	f.nextID++
	f.created = append(f.created, g)
	return g, nil
}

func (f *fakeGameRepo) InsertParticipants(_ context.Context, participants []model.GameParticipant) error {
	f.participants = append(f.participants, participants...)
	return nil
}

func (f *fakeGameRepo) ListBySession(_ context.Context, sessionID int64) ([]model.GameWithParticipants, error) {
	var res []model.GameWithParticipants
	for _, g := range f.list {
		if g.Game.SessionID == sessionID {
			res = append(res, g)
		}
	}
	return res, nil
}

func (f *fakeGameRepo) ListAll(_ context.Context) ([]model.GameWithParticipants, error) {
	return f.list, nil
}

var _ repository.GameRepository = (*fakeGameRepo)(nil)

// fakeTxManager runs the unit of work directly; atomicity is the real
// implementation's concern.
type fakeTxManager struct{ calls int }

func (f *fakeTxManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	f.calls++
	return fn(ctx)
}

var _ repository.TxManager = (*fakeTxManager)(nil)

func intPtr(v int) *int { return &v }
