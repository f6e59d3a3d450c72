package db

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"gatelog/internal/domain/auth"
	"gatelog/internal/platform/config"
)

// Seed ensures a bootstrap admin member exists so the member registry can be
// managed before any other member is enrolled.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if strings.TrimSpace(cfg.SeedAdminName) == "" {
		return nil
	}
	return ensureAdminMember(ctx, pool, cfg)
}

func ensureAdminMember(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM members WHERE registration = $1", cfg.SeedAdminReg).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.SeedAdminPassword
	if password == "" {
		password = cfg.SeedAdminReg
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO members (id, name, role, level, registration, badge_id, password_hash)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, uuid.NewString(), cfg.SeedAdminName, "president", auth.LevelAdmin, cfg.SeedAdminReg, cfg.SeedAdminBadge, hash)
	return err
}
