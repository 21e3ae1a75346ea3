package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/pkg"
	"github.com/playhall/marble-backend/platform/board"
	"github.com/playhall/marble-backend/platform/database"
	"github.com/playhall/marble-backend/platform/queries"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

func CreateGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	mode := gameCreateDto.Mode
	if mode != string(models.ModeRounds) {
		mode = string(models.ModeClassic)
	}

	game := &models.Game{
		Id:        uuid.NewV4().String(),
		Code:      pkg.NewRoomCode(queries.CodeExists(db)),
		Name:      gameCreateDto.Name,
		Status:    string(models.RoomLobby),
		Mode:      mode,
		MaxRounds: gameCreateDto.MaxRounds,
	}
	if _, err := db.Model(game).Insert(); err != nil {
		logrus.WithError(err).Error("failed creating game")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"id": game.Id, "code": game.Code})
}

func GetAllAvailGames(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	var games []models.Game
	err := db.Model(&games).Where("status = ?", string(models.RoomLobby)).Select()
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(games)
}

func VerifyGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	game, err := queries.GameByCode(verifyGameDto.Code, db)
	if err != nil || game.Status != string(models.RoomLobby) {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true, "id": game.Id})
}

// GetCatalog serves the static board and card catalogs so clients render
// from the same data the rules run on. Deck order stays server-side; the
// card list only tells players what exists.
func GetCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"cells": board.Cells(),
		"cards": board.AllCards(),
	})
}

// FindAvailGame returns the first joinable lobby, for a quick-play button.
func FindAvailGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	game := new(models.Game)
	err := db.Model(game).Where("status = ?", string(models.RoomLobby)).Limit(1).Select()
	if err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true, "id": game.Id, "code": game.Code})
}
