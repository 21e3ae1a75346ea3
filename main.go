package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/playhall/marble-backend/app/controllers"
	"github.com/playhall/marble-backend/pkg"
	"github.com/playhall/marble-backend/pkg/routes"
	"github.com/playhall/marble-backend/platform/logging"
	socket "github.com/playhall/marble-backend/platform/sockets"
)

func main() {
	logging.Init()

	app := fiber.New()

	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(pkg.JWTSecret()),
	}))

	app.Get("/user/cur", controllers.Cur)
	go socket.CreateSocketIOServer()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":4101"
	}
	app.Listen(addr)
}
