package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"yadisk/internal/config"
)

// Drops the PostgreSQL registry tables for the configured environment.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StoreDriver != config.StorePostgres {
		log.Fatalf("STORE_DRIVER is %q, this script only drops PostgreSQL tables", cfg.StoreDriver)
	}
	if cfg.Environment == "prod" && os.Getenv("CONFIRM_DROP") != "yes" {
		log.Fatal("Refusing to drop production tables without CONFIRM_DROP=yes")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	prefix := cfg.TablePrefix
	dropSQL := fmt.Sprintf(`
		DROP TABLE IF EXISTS %shistory CASCADE;
		DROP TABLE IF EXISTS %sitems CASCADE;
	`, prefix, prefix)

	if _, err := db.Exec(dropSQL); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	fmt.Printf("All tables dropped successfully (prefix: %s)\n", prefix)
}
