package queries

import (
	"github.com/go-pg/pg/v10"
	"github.com/playhall/marble-backend/app/models"
)

func VerifyGame(id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	return db.Model(game).WherePK().Select() == nil
}

// GameByCode resolves a join code to its room row.
func GameByCode(code string, db *pg.DB) (*models.Game, error) {
	game := new(models.Game)
	if err := db.Model(game).Where("code = ?", code).Select(); err != nil {
		return nil, err
	}
	return game, nil
}

// CodeExists is the existence predicate the room-code allocator retries
// against.
func CodeExists(db *pg.DB) func(string) bool {
	return func(code string) bool {
		n, err := db.Model((*models.Game)(nil)).Where("code = ?", code).Count()
		return err != nil || n > 0
	}
}

func GetUserData(userID string, db *pg.DB) (*models.User, error) {
	user := &models.User{Id: userID}
	if err := db.Model(user).WherePK().Select(); err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePlayer seats a user in a lobby, assigning the next free slot.
func CreatePlayer(player models.Player, db *pg.DB) (models.Player, error) {
	n, err := db.Model((*models.Player)(nil)).Where("game_id = ?", player.GameID).Count()
	if err != nil {
		return player, err
	}
	player.Slot = n + 1
	_, err = db.Model(&player).Insert()
	return player, err
}

func DeletePlayer(userID, gameID string, db *pg.DB) error {
	_, err := db.Model((*models.Player)(nil)).
		Where("user_id = ? and game_id = ?", userID, gameID).Delete()
	if err != nil {
		return err
	}
	// A room with no seats left has no reason to exist.
	n, _ := db.Model((*models.Player)(nil)).Where("game_id = ?", gameID).Count()
	if n == 0 {
		_, _ = db.Model(&models.Game{Id: gameID}).WherePK().Delete()
	}
	return nil
}

func PlayersForGame(gameID string, db *pg.DB) ([]models.Player, error) {
	var players []models.Player
	err := db.Model(&players).Where("game_id = ?", gameID).Order("slot ASC").Select()
	return players, err
}

func SetGameStatus(gameID, status string, db *pg.DB) error {
	_, err := db.Model(&models.Game{Id: gameID}).WherePK().Set("status = ?", status).Update()
	return err
}

// SaveResult persists the audited outcome of a finished game.
func SaveResult(result models.GameResult, db *pg.DB) error {
	_, err := db.Model(&result).OnConflict("(game_id) DO NOTHING").Insert()
	return err
}

// CleanUpGame removes the room and its seats after teardown. The result
// row, if any, survives.
func CleanUpGame(gameID string, db *pg.DB) {
	_, _ = db.Model((*models.Player)(nil)).Where("game_id = ?", gameID).Delete()
	_, _ = db.Model(&models.Game{Id: gameID}).WherePK().Delete()
}
