package database

import (
	"os"

	"github.com/go-pg/pg/v10"
	_ "github.com/go-pg/pg/v10/orm"
	_ "github.com/joho/godotenv/autoload"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func PostgreSQLConnection() *pg.DB {
	return pg.Connect(&pg.Options{
		User:     getenv("DB_USER", "postgres"),
		Addr:     getenv("DB_ADDR", "localhost:5432"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: getenv("DB_NAME", "marble"),
	})
}
