package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/pkg/config"
	"github.com/dfmartinez/bodega-api/pkg/logger"
)

// Esquema de la base de datos. Idempotente: se ejecuta en cada arranque.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS batches (
		id             UUID PRIMARY KEY,
		product_name   TEXT NOT NULL,
		batch_code     TEXT NOT NULL,
		location       TEXT NOT NULL,
		comment        TEXT NOT NULL DEFAULT '',
		quantity_units BIGINT,
		quantity_kg    NUMERIC(14,3),
		removed_units  BIGINT NOT NULL DEFAULT 0,
		removed_kg     NUMERIC(14,3) NOT NULL DEFAULT 0,
		status         TEXT NOT NULL DEFAULT 'ACTIVE',
		is_archived    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		removed_at     TIMESTAMPTZ,
		removed_by     UUID REFERENCES users(id),
		CONSTRAINT batches_units_nonneg CHECK (quantity_units IS NULL OR quantity_units >= 0),
		CONSTRAINT batches_kg_nonneg CHECK (quantity_kg IS NULL OR quantity_kg >= 0),
		CONSTRAINT batches_status_valid CHECK (status IN ('ACTIVE', 'REMOVED'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_batches_batch_code ON batches (batch_code)`,
	`CREATE INDEX IF NOT EXISTS idx_batches_status ON batches (status)`,
	`CREATE INDEX IF NOT EXISTS idx_batches_created_at ON batches (created_at)`,
	`CREATE TABLE IF NOT EXISTS batch_movements (
		id             UUID PRIMARY KEY,
		batch_id       UUID NOT NULL,
		movement_type  TEXT NOT NULL,
		quantity_units BIGINT NOT NULL DEFAULT 0,
		quantity_kg    NUMERIC(14,3) NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT movements_type_valid CHECK (movement_type IN ('IN', 'OUT'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_batch_id ON batch_movements (batch_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_type_created ON batch_movements (movement_type, created_at)`,
	`CREATE TABLE IF NOT EXISTS stock_requests (
		id             UUID PRIMARY KEY,
		product_name   TEXT NOT NULL,
		batch_code     TEXT NOT NULL DEFAULT '',
		quantity_units BIGINT NOT NULL DEFAULT 0,
		quantity_kg    NUMERIC(14,3) NOT NULL DEFAULT 0,
		comment        TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'NEW',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		seen_at        TIMESTAMPTZ,
		created_by     UUID REFERENCES users(id),
		CONSTRAINT requests_status_valid CHECK (status IN ('NEW', 'SEEN', 'DONE', 'FAILED'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_status ON stock_requests (status)`,
}

// Migrate crea el esquema si no existe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración fallida: %w", err)
		}
	}
	return nil
}

// SeedUsers crea el usuario inicial si la tabla está vacía y hay contraseña
// configurada (SEED_ADMIN_PASSWORD). No hace nada si ya existen usuarios.
func SeedUsers(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig, log *logger.Logger) error {
	if cfg.Password == "" {
		return nil
	}
	users := NewUserRepository(pool)
	n, err := users.Count()
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     cfg.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := users.Create(user); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.Info().Str("username", cfg.Username).Msg("Usuario inicial creado")
	return nil
}
