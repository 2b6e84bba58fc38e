package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL mirrors the entity mapping: a blueprint owns its points
// (ON DELETE CASCADE) and point order is kept in an explicit position column.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS blueprints (
    id     BIGSERIAL PRIMARY KEY,
    author TEXT NOT NULL,
    name   TEXT NOT NULL,
    CONSTRAINT blueprints_author_name_key UNIQUE (author, name)
);

CREATE TABLE IF NOT EXISTS points (
    id           BIGSERIAL PRIMARY KEY,
    blueprint_id BIGINT  NOT NULL REFERENCES blueprints (id) ON DELETE CASCADE,
    position     INTEGER NOT NULL,
    x            INTEGER NOT NULL,
    y            INTEGER NOT NULL,
    CONSTRAINT points_blueprint_position_key UNIQUE (blueprint_id, position)
);

CREATE INDEX IF NOT EXISTS idx_blueprints_author ON blueprints (author);
`

// EnsureSchema creates the tables if they are missing
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure blueprint schema: %w", err)
	}
	return nil
}
