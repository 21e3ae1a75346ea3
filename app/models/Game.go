package models

// Game is the persisted room row. Code doubles as the socket.io room name.
type Game struct {
	Id        string `pg:",pk" json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Mode      string `json:"mode"`
	MaxRounds int    `json:"max_rounds"`
}

type GameCreateDto struct {
	Name      string `json:"name"`
	Mode      string `json:"mode"`
	MaxRounds int    `json:"max_rounds"`
}

type VerifyGameDto struct {
	Code   string `query:"code"`
	UserId string `query:"user_id"`
}

// GameResult is the persisted outcome row written once per finished game,
// after the submission-audit service has accepted the final result.
type GameResult struct {
	GameID     string      `pg:",pk" json:"game_id"`
	WinnerSlot int         `json:"winner_slot"`
	Mode       string      `json:"mode"`
	Rounds     int         `json:"rounds"`
	Scores     []SeatScore `pg:"scores,type:jsonb" json:"scores"`
}
