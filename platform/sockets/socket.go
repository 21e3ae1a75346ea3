package socket

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	socketio "github.com/googollee/go-socket.io"
	"github.com/playhall/marble-backend/app/engine"
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/platform/audit"
	"github.com/playhall/marble-backend/platform/cache"
	"github.com/playhall/marble-backend/platform/database"
	"github.com/playhall/marble-backend/platform/queries"
	"github.com/playhall/marble-backend/platform/rooms"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// roomBroadcaster adapts the socket.io server to the orchestrator's
// broadcast interface.
type roomBroadcaster struct {
	server *socketio.Server
}

func (b *roomBroadcaster) Broadcast(gameID, event, payload string) {
	b.server.BroadcastToRoom("/", gameID, event, payload)
}

// actionPayload is the JSON envelope every in-game event carries. The
// acting seat is resolved server-side from user_id; any slot a client
// claims is ignored.
type actionPayload struct {
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
	Cell   int    `json:"cell"`
	Target int    `json:"target"`
	Accept bool   `json:"accept"`
	Method string `json:"method"`
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func CreateSocketIOServer() {
	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}
	db := database.PostgreSQLConnection()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()

	aud := audit.New(pool)
	// Gameplay burns through prompts quickly; the default window is sized
	// for result submissions.
	aud.RateLimit = getenvInt("ACTION_RATE_LIMIT", 120)
	registry := rooms.NewRegistry(engine.New(nil), &roomBroadcaster{server}, pool, db, aud)

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "see", func(s socketio.Conn) {
		s.Emit("pong")
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		id, ok := result["game_id"]
		if !ok || !queries.VerifyGame(id, db) {
			s.Emit("error-message", "Invalid game")
			s.Emit("failed")
			return
		}
		userID, ok := result["user_id"]
		if !ok {
			s.Emit("error-message", "User not authenticated")
			s.Emit("failed")
			return
		}
		user, err := queries.GetUserData(userID, db)
		if err != nil {
			s.Emit("error-message", "User retrieval failed")
			s.Emit("failed")
			return
		}

		if session, live := registry.Get(id); live {
			// Reconnect path: the seat already exists, just resume
			// snapshots.
			if _, seated := session.SlotOf(userID); seated {
				session.SetConnected(userID, true)
				s.Join(id)
				conn := pool.Get()
				if snap := queries.LatestSnapshot(id, &conn); snap != "" {
					s.Emit("room-snapshot", snap)
				}
				conn.Close()
				s.Emit("joined-game")
				return
			}
			s.Emit("error-message", "Game already running")
			s.Emit("failed")
			return
		}

		player, err := queries.CreatePlayer(models.Player{
			GameID:   id,
			UserID:   userID,
			Username: user.Email,
		}, db)
		if err != nil {
			logrus.WithError(err).Error("failed creating player")
			s.Emit("error-message", "Failed creating player")
			s.Emit("failed")
			return
		}
		s.Join(id)
		server.BroadcastToRoom("/", id, "player-join", user.Email)
		s.Emit("joined-game", strconv.Itoa(player.Slot))
	})

	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)
		gameID, userID := result["game_id"], result["user_id"]

		s.Leave(gameID)
		if session, live := registry.Get(gameID); live {
			// Mid-game leaving is a surrender; the seat stays in history.
			session.SetConnected(userID, false)
			if err := session.Dispatch(userID, models.Action{Type: models.ActionSurrender}); err != nil {
				logrus.WithError(err).Warn("surrender on leave rejected")
			}
			return
		}
		if err := queries.DeletePlayer(userID, gameID, db); err != nil {
			logrus.WithError(err).Error("failed deleting player")
		}
		server.BroadcastToRoom("/", gameID, "player-left", userID)
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)
		gameID := result["game_id"]

		game := &models.Game{Id: gameID}
		if err := db.Model(game).WherePK().Select(); err != nil {
			s.Emit("error-message", "Unable to start game")
			return
		}
		players, err := queries.PlayersForGame(gameID, db)
		if err != nil || len(players) < 2 {
			s.Emit("error-message", "Unable to start game")
			return
		}
		settings := models.Settings{
			MaxPlayers:          len(players),
			StartingCash:        getenvInt("STARTING_CASH", 20000),
			TurnDurationSeconds: getenvInt("TURN_SECONDS", 30),
			GameMode:            models.GameMode(game.Mode),
			MaxRounds:           game.MaxRounds,
			AbilitiesEnabled:    getenvInt("ABILITIES_ENABLED", 1) == 1,
			ExtraTurnOnDouble:   true,
		}
		if _, err := registry.Start(*game, players, settings); err != nil {
			s.Emit("error-message", "Unable to start game")
			return
		}
		if err := queries.SetGameStatus(gameID, string(models.RoomPlaying), db); err != nil {
			logrus.WithError(err).Error("failed marking game playing")
		}
		server.BroadcastToRoom("/", gameID, "game-start")
	})

	server.OnEvent("/", "chat", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)
		if result["game_id"] == "" || result["message"] == "" {
			return
		}
		raw, _ := json.Marshal(map[string]string{
			"user_id": result["user_id"],
			"message": result["message"],
		})
		server.BroadcastToRoom("/", result["game_id"], "chat", string(raw))
	})

	// Every in-game action shares one shape: parse, build the typed
	// action, dispatch, report the rejection to the sender only.
	action := func(event string, build func(actionPayload) models.Action) {
		server.OnEvent("/", event, func(s socketio.Conn, jsonStr string) {
			var p actionPayload
			if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
				s.Emit("error-message", "Malformed action")
				return
			}
			if err := aud.Allow(p.UserID); err != nil {
				s.Emit("error-message", "Too many requests")
				return
			}
			if err := registry.Dispatch(p.GameID, p.UserID, build(p)); err != nil {
				s.Emit("error-message", err.Error())
			}
		})
	}

	action("roll-dice", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionRollDice}
	})
	action("buy-property", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionBuyProperty}
	})
	action("skip-buy", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionSkipBuy}
	})
	action("respond-buyback", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionRespondBuyback, Accept: p.Accept}
	})
	action("travel", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionTravel, Cell: p.Cell}
	})
	action("apply-festival", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionApplyFestival, Cell: p.Cell}
	})
	action("choose-destination", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionChooseCardDest, Cell: p.Cell}
	})
	action("choose-attack-target", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionChooseAttack, Target: p.Target}
	})
	action("build", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionBuild, Cell: p.Cell}
	})
	action("escape-island", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionEscapeIsland, Method: models.EscapeMethod(p.Method)}
	})
	action("activate-ability", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionActivateAbility, Target: p.Target}
	})
	action("surrender", func(p actionPayload) models.Action {
		return models.Action{Type: models.ActionSurrender}
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logrus.WithError(e).Warn("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		for _, room := range s.Rooms() {
			server.BroadcastToRoom("/", room, "player-left")
		}
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{getenvStr("CORS_ORIGIN", "http://localhost:3000")},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	addr := getenvStr("SOCKET_ADDR", ":8000")
	logrus.WithField("addr", addr).Info("socket.io server listening")
	if err := http.ListenAndServe(addr, c.Handler(mux)); err != nil {
		logrus.WithError(err).Fatal("socket server stopped")
	}
}

func getenvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
