// Command migrate applies the document store schema to one environment's
// database. Run it once per configured DSN.
package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	dir := flag.String("dir", "migrations", "migrations directory")
	dsn := flag.String("dsn", os.Getenv("STORE_DSN"), "postgres connection string")
	command := flag.String("command", "up", "goose command (up, down, status)")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("no DSN given: set STORE_DSN or pass -dsn")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set dialect: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, *dir)
	case "down":
		err = goose.Down(db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	default:
		log.Fatalf("unknown command %q", *command)
	}
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
