package controllers

import (
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/pkg"
	"github.com/playhall/marble-backend/platform/database"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"
)

func CreateUser(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	userDto := new(models.UserDto)
	if err := c.BodyParser(userDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(userDto.Pass), bcrypt.DefaultCost)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	_, err = db.Model(&models.User{
		Id:       uuid.NewV4().String(),
		Email:    userDto.Email,
		Password: string(hash),
	}).Insert()
	if err != nil {
		return c.SendStatus(fiber.StatusConflict)
	}
	return c.SendStatus(fiber.StatusCreated)
}

func Login(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	userDto := new(models.UserDto)
	if err := c.BodyParser(userDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	user := new(models.User)
	if err := db.Model(user).Where("email = ?", userDto.Email).Select(); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(userDto.Pass)); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.Id
	t, err := token.SignedString(pkg.JWTSecret())
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"access_token": t})
}

func Cur(c *fiber.Ctx) error {
	user := c.Locals("user").(*jwt.Token)
	claims := user.Claims.(jwt.MapClaims)
	return c.SendString(claims["user_id"].(string))
}
