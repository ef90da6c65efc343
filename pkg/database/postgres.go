package database

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresConnection opens a gorm connection from DATABASE_URL, or falls
// back to the individual DB_* environment variables.
func NewPostgresConnection() (*gorm.DB, error) {
	var dsn string

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		host := getEnvOr("DB_HOST", "localhost")
		port := getEnvOr("DB_PORT", "5432")
		user := getEnvOr("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		dbname := getEnvOr("DB_NAME", "lifehub")

		sslmode := "disable"
		if os.Getenv("GIN_MODE") == "release" {
			sslmode = "require"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
