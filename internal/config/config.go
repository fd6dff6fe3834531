// Package config reads the process environment for the server and the
// migration runner so the two binaries agree on every key.
package config

import (
	"fmt"
	"os"
)

// DatabaseURL assembles the Postgres connection string from the
// POSTGRES_* variables.
func DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}

// Port returns the HTTP listen port, defaulting to 8080.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

func JWTSecret() string {
	return os.Getenv("JWT_SECRET")
}
