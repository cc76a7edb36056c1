// Package main applies goose migrations to a caterbase database.
// Usage: migrate [-dir db/migrations] <up|down|status>
//
// DATABASE_URL selects the target database: a tenant database for the
// default directory, or the meta database with -dir db/meta_migrations.
package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	dir := flag.String("dir", "db/migrations", "directory with migration files")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: migrate [-dir db/migrations] <up|down|status>")
		os.Exit(1)
	}
	command := flag.Arg(0)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Println("Error: DATABASE_URL environment variable is required")
		os.Exit(1)
	}

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	switch command {
	case "up":
		err = goose.Up(db, *dir)
	case "down":
		err = goose.Down(db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Migration %s failed: %v\n", command, err)
		os.Exit(1)
	}
}
