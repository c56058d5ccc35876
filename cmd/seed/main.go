package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"social/internal/adapters/postgres"
	"social/internal/config"
	"social/internal/core/auth"
	"social/internal/logger"
)

func main() {
	cfg := config.Load()

	dsn := flag.String("dsn", cfg.DatabaseURL, "database url")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DSN required via flag -dsn or DATABASE_URL env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.InitDB(ctx, *dsn, logger.Discard())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	seedUser(ctx, postgres.NewUserRepository(db), auth.NewBcryptHasher(cfg.BcryptCost, 1))
}

func seedUser(ctx context.Context, users *postgres.UserRepository, hasher auth.PasswordHasher) {
	email := "admin@social.local"
	password := "password"

	if envEmail := os.Getenv("DB_ADMIN_EMAIL"); envEmail != "" {
		email = envEmail
	}

	if envPass := os.Getenv("DB_ADMIN_PASSWORD"); envPass != "" {
		password = envPass
	}

	hashed, err := hasher.Hash(ctx, password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if _, err := users.Upsert(ctx, email, hashed); err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	fmt.Printf("✅ User Seeded!\n   User: %s\n   Pass: %s\n", email, password)
}
