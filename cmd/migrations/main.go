package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/orgvote/orgvote/internal/config"
)

const migrationsDir = "internal/adapters/repository/postgres/migrations"

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run applies the migration files matching the given name fragment, or
// every up migration in order when called with "all".
func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: migrations <name|all>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	files, err := matchMigrations(migrationsDir, args[0])
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", config.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(migrationsDir, file))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", file, err)
		}
		log.Printf("applied %s", file)
	}

	return nil
}

// matchMigrations returns the .sql files under dir whose names contain
// the fragment, sorted so numbered migrations run in order. The special
// fragment "all" selects every up migration.
func matchMigrations(dir, fragment string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		if fragment == "all" {
			if strings.HasSuffix(entry.Name(), "up.sql") {
				files = append(files, entry.Name())
			}
			continue
		}
		if strings.Contains(entry.Name(), fragment) {
			files = append(files, entry.Name())
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no migration matches %q", fragment)
	}

	sort.Strings(files)
	return files, nil
}
