package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/config"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
)

// EnsureSeedAdmin bootstraps an admin account from config. Registration
// always creates plain users, so this is the only way an admin appears
// in a fresh database.
func EnsureSeedAdmin(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	exists, err := adminExists(ctx, pool, cfg.RequestTimeout, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()

	ctxInsert, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()
	_, err = pool.Exec(ctxInsert, `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.NewString(), cfg.AdminName, cfg.AdminEmail, string(hash), models.RoleAdmin, now, now)
	if err != nil {
		return fmt.Errorf("insert seed admin: %w", err)
	}

	return nil
}

func adminExists(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration, email string) (bool, error) {
	ctxCheck, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	row := pool.QueryRow(ctxCheck, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check admin exists: %w", err)
	}
	return exists, nil
}
