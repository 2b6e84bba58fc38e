package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"blueprints-backend/internal/domains/blueprint/model"
	"blueprints-backend/pkg/cache"
	"blueprints-backend/pkg/database"
)

const (
	blueprintCacheKeyPrefix = "blueprint:"
	defaultCacheTTL         = 15 * time.Minute

	pgUniqueViolation = "23505"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// postgresRepository stores blueprints in PostgreSQL with an optional Redis
// read-through cache for single-blueprint lookups.
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache // may be nil
	cacheTTL time.Duration
}

// NewPostgresRepository wires the pool and cache. A nil cache disables caching,
// a non-positive ttl falls back to 15 minutes.
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) RepositoryInterface {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &postgresRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

const selectBlueprintsSQL = `
    SELECT b.id, b.author, b.name, p.x, p.y
    FROM blueprints b
    LEFT JOIN points p ON p.blueprint_id = b.id
`

// Save inserts the blueprint row and its points in one transaction.
// The unique constraint on (author, name) decides duplicates.
func (r *postgresRepository) Save(ctx context.Context, bp model.Blueprint) error {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO blueprints (author, name) VALUES ($1, $2) RETURNING id`,
			bp.Author(), bp.Name(),
		).Scan(&id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return 0, model.NewBlueprintAlreadyExistsError(bp.Author(), bp.Name())
			}
			return 0, fmt.Errorf("failed to insert blueprint: %w", err)
		}

		points := bp.Points()
		if len(points) == 0 {
			return id, nil
		}

		rows := make([][]interface{}, len(points))
		for i, p := range points {
			rows[i] = []interface{}{id, i, p.X, p.Y}
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"points"},
			[]string{"blueprint_id", "position", "x", "y"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return 0, fmt.Errorf("failed to insert points: %w", err)
		}
		return id, nil
	})
	if err != nil {
		return err
	}

	log.Debug().Str("component", "repository").Int64("id", id).Stringer("key", bp.Key()).Msg("Blueprint stored")

	// drop any stale entry left behind by an earlier blueprint with this key
	r.invalidate(ctx, bp.Author(), bp.Name())
	return nil
}

func (r *postgresRepository) GetByAuthorAndName(ctx context.Context, author, name string) (model.Blueprint, error) {
	if r.cache == nil {
		return r.load(ctx, r.pool, author, name)
	}

	cacheKey := blueprintCacheKey(author, name)

	var cached model.Blueprint
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Blueprint cache read failed")
	}
	// the key is a hash; make sure the hit is really ours
	if found && cached.Author() == author && cached.Name() == name {
		return cached, nil
	}

	// The row stays share-locked until the cache entry is written, so an
	// AddPoint (FOR UPDATE) commits and invalidates only after this Set.
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (model.Blueprint, error) {
		var id int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM blueprints WHERE author = $1 AND name = $2 FOR SHARE`,
			author, name,
		).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.Blueprint{}, model.NewBlueprintNotFoundError(author, name)
			}
			return model.Blueprint{}, fmt.Errorf("failed to lock blueprint: %w", err)
		}

		// separate statement: its snapshot is taken after the lock is granted
		bp, err := r.load(ctx, tx, author, name)
		if err != nil {
			return model.Blueprint{}, err
		}

		if err := r.cache.Set(ctx, cacheKey, bp, r.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Blueprint cache write failed")
		}
		return bp, nil
	})
}

func (r *postgresRepository) load(ctx context.Context, q querier, author, name string) (model.Blueprint, error) {
	bps, err := r.query(ctx, q,
		selectBlueprintsSQL+` WHERE b.author = $1 AND b.name = $2 ORDER BY p.position`,
		author, name,
	)
	if err != nil {
		return model.Blueprint{}, err
	}
	if len(bps) == 0 {
		return model.Blueprint{}, model.NewBlueprintNotFoundError(author, name)
	}
	return bps[0], nil
}

func (r *postgresRepository) GetByAuthor(ctx context.Context, author string) ([]model.Blueprint, error) {
	bps, err := r.query(ctx, r.pool,
		selectBlueprintsSQL+` WHERE b.author = $1 ORDER BY b.name, p.position`,
		author,
	)
	if err != nil {
		return nil, err
	}
	if len(bps) == 0 {
		return nil, model.NewAuthorNotFoundError(author)
	}
	return bps, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Blueprint, error) {
	return r.query(ctx, r.pool, selectBlueprintsSQL+` ORDER BY b.author, b.name, p.position`)
}

// AddPoint locks the blueprint row so concurrent appends get distinct positions
func (r *postgresRepository) AddPoint(ctx context.Context, author, name string, x, y int) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM blueprints WHERE author = $1 AND name = $2 FOR UPDATE`,
			author, name,
		).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.NewBlueprintNotFoundError(author, name)
			}
			return fmt.Errorf("failed to lock blueprint: %w", err)
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO points (blueprint_id, position, x, y)
            SELECT $1, COALESCE(MAX(position) + 1, 0), $2, $3
            FROM points
            WHERE blueprint_id = $1
        `, id, x, y)
		if err != nil {
			return fmt.Errorf("failed to append point: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, author, name)
	return nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// query runs a blueprint/point join and folds the rows back into blueprints,
// keeping the row order of the statement
func (r *postgresRepository) query(ctx context.Context, q querier, sql string, args ...interface{}) ([]model.Blueprint, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blueprints: %w", err)
	}
	defer rows.Close()

	out := []model.Blueprint{}
	index := make(map[int64]int)

	for rows.Next() {
		var (
			id           int64
			author, name string
			x, y         *int
		)
		if err := rows.Scan(&id, &author, &name, &x, &y); err != nil {
			return nil, fmt.Errorf("failed to scan blueprint: %w", err)
		}

		pos, seen := index[id]
		if !seen {
			out = append(out, model.New(author, name, nil))
			pos = len(out) - 1
			index[id] = pos
		}

		// LEFT JOIN yields NULL coordinates for a blueprint without points
		if x != nil && y != nil {
			out[pos].AddPoint(model.NewPoint(*x, *y))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blueprints: %w", err)
	}

	return out, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, author, name string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, blueprintCacheKey(author, name)); err != nil {
		log.Warn().Err(err).Str("author", author).Str("name", name).Msg("Blueprint cache invalidation failed")
	}
}

// PurgeCache drops every cached blueprint entry
func PurgeCache(ctx context.Context, c cache.Cache) error {
	if c == nil {
		return nil
	}
	return c.DeletePattern(ctx, blueprintCacheKeyPrefix+"*")
}

func blueprintCacheKey(author, name string) string {
	return fmt.Sprintf("%s%016x", blueprintCacheKeyPrefix, model.HashKey(model.Key{Author: author, Name: name}))
}
