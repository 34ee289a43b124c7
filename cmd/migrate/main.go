// Command migrate applies pending SQL migrations to the configured
// database and exits. It embeds its migration files so the binary is
// self-contained and does not need the source tree at deploy time.
package main

import (
	"database/sql"
	"embed"
	"log"

	_ "github.com/lib/pq"

	"github.com/akgroup/erp-core/internal/config"
	"github.com/akgroup/erp-core/internal/dbmigrate"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := dbmigrate.Run(db, migrations, "migrations"); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Println("migrations applied")
}
