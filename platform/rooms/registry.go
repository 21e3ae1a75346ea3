package rooms

import (
	"sync"

	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"
	"github.com/playhall/marble-backend/app/engine"
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/platform/audit"
	"github.com/playhall/marble-backend/platform/queries"
	"github.com/sirupsen/logrus"
)

// Registry owns every live session in this process. Rooms are fully
// independent; only the map access itself is shared state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	eng   *engine.Engine
	bc    Broadcaster
	pool  *redis.Pool
	db    *pg.DB
	audit *audit.Service
}

func NewRegistry(eng *engine.Engine, bc Broadcaster, pool *redis.Pool, db *pg.DB, aud *audit.Service) *Registry {
	if eng == nil {
		eng = engine.New(nil)
	}
	return &Registry{
		sessions: map[string]*Session{},
		eng:      eng,
		bc:       bc,
		pool:     pool,
		db:       db,
		audit:    aud,
	}
}

// Start promotes a lobby into a live session and deals the opening state.
func (r *Registry) Start(game models.Game, players []models.Player, settings models.Settings) (*Session, error) {
	if len(players) < 2 {
		return nil, engine.ErrRoomNotPlaying
	}
	room := &models.Room{
		ID:       game.Id,
		Code:     game.Code,
		Status:   models.RoomLobby,
		Settings: settings,
	}
	seats := map[string]int{}
	for _, pl := range players {
		room.Players = append(room.Players, &models.SeatPlayer{
			Slot:     pl.Slot,
			UserID:   pl.UserID,
			Username: pl.Username,
		})
		seats[pl.UserID] = pl.Slot
	}
	r.eng.Setup(room)

	s := &Session{room: room, eng: r.eng, seats: seats, reg: r}
	r.mu.Lock()
	if _, exists := r.sessions[game.Id]; exists {
		r.mu.Unlock()
		return nil, engine.ErrRoomNotPlaying
	}
	r.sessions[game.Id] = s
	r.mu.Unlock()

	s.mu.Lock()
	s.afterApply(nil)
	s.mu.Unlock()
	return s, nil
}

func (r *Registry) Get(gameID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[gameID]
	return s, ok
}

// Dispatch routes one inbound action to its room's session.
func (r *Registry) Dispatch(gameID, userID string, act models.Action) error {
	s, ok := r.Get(gameID)
	if !ok {
		return engine.ErrRoomNotPlaying
	}
	return s.Dispatch(userID, act)
}

func (r *Registry) broadcast(gameID, event, payload string) {
	if r.bc != nil {
		r.bc.Broadcast(gameID, event, payload)
	}
}

func (r *Registry) mirror(gameID string, snap models.RoomSnapshot) {
	if r.pool == nil {
		return
	}
	conn := r.pool.Get()
	defer conn.Close()
	if err := queries.MirrorSnapshot(gameID, snap, &conn); err != nil {
		logrus.WithField("game", gameID).WithError(err).Warn("snapshot mirror failed")
	}
}

// finalize runs once per finished game, with the session lock held: the
// pure final result passes through the audit collaborator and, if it
// holds up, is persisted. The engine's outcome stands either way.
func (r *Registry) finalize(s *Session) {
	room := s.room
	res := engine.FinalResult(room)

	log := logrus.WithFields(logrus.Fields{"game": room.ID, "winner": res.WinnerSlot})
	if r.audit != nil {
		// One result per game: the nonce window catches a second submit
		// racing in before the row's own conflict guard.
		if err := r.audit.CheckNonce(res.GameID); err != nil {
			log.WithError(err).Error("result submission rejected; not persisted")
			r.teardown(room.ID)
			return
		}
		if err := r.audit.ValidateResult(res); err != nil {
			log.WithError(err).Error("final result failed audit; not persisted")
			if r.db != nil {
				queries.CleanUpGame(room.ID, r.db)
			}
			r.teardown(room.ID)
			return
		}
	}
	if r.db != nil {
		row := models.GameResult{
			GameID:     res.GameID,
			WinnerSlot: res.WinnerSlot,
			Mode:       string(res.Mode),
			Rounds:     res.Rounds,
			Scores:     res.Scores,
		}
		if err := queries.SaveResult(row, r.db); err != nil {
			log.WithError(err).Error("failed persisting game result")
		}
		_ = queries.SetGameStatus(room.ID, string(models.RoomOver), r.db)
	}
	log.Info("game finished")
	r.teardown(room.ID)
}

func (r *Registry) teardown(gameID string) {
	if r.pool != nil {
		conn := r.pool.Get()
		queries.DropSnapshot(gameID, &conn)
		conn.Close()
	}
	r.mu.Lock()
	delete(r.sessions, gameID)
	r.mu.Unlock()
}
