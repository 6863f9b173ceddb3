// Command seeduser creates an API user directly in the database. Run once
// after migrations to bootstrap the first admin login.
// Usage: go run ./cmd/seeduser <email> <password> <full name> [role]
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"reqlens/internal/config"
	"reqlens/internal/domain"
	"reqlens/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 4 {
		fmt.Println("Usage: seeduser <email> <password> <full name> [role]")
		os.Exit(1)
	}
	email, password, fullName := os.Args[1], os.Args[2], os.Args[3]
	role := domain.RoleAdmin
	if len(os.Args) > 4 {
		role = domain.UserRole(os.Args[4])
	}
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return fmt.Errorf("unknown role: %s", role)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}
	if err := postgres.NewUserRepo(db).Create(context.Background(), user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	log.Printf("created %s user %s (%s)", user.Role, user.Email, user.ID)
	return nil
}
