package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/aryawidjaya/user-accounts/config"
	"github.com/aryawidjaya/user-accounts/internal/domain/entity"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	user, err := entity.NewUser("demouser", "demo@example.com", "Password123")
	if err != nil {
		log.Fatalf("failed to build demo user: %v", err)
	}
	user.IsActive = true

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, username, email, credential, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, user.ID, user.Username, user.Email.String(), user.Credential.Digest(), user.IsActive).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s email=%s password=Password123\n", id, user.Username, user.Email.String())
}
