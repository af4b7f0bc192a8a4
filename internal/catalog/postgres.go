package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terra-clan/catalogue-browser/internal/models"
)

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxLifetime  time.Duration
}

// PostgresSource reads the catalogue from the courses table.
// The module tree of each course is stored as a JSONB document.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource connects to PostgreSQL
func NewPostgresSource(ctx context.Context, cfg PostgresConfig) (*PostgresSource, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 4
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresSource{pool: pool}, nil
}

// Pool exposes the underlying pool for migrations
func (p *PostgresSource) Pool() *pgxpool.Pool {
	return p.pool
}

// LoadCourses reads every course ordered by catalogue position
func (p *PostgresSource) LoadCourses(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT id, title, description, modules
		FROM courses
		ORDER BY position, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		var description sql.NullString
		var modulesJSON []byte

		if err := rows.Scan(&c.ID, &c.Title, &description, &modulesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		c.Description = description.String

		if len(modulesJSON) > 0 {
			if err := json.Unmarshal(modulesJSON, &c.Modules); err != nil {
				return nil, fmt.Errorf("failed to unmarshal modules of course %d: %w", c.ID, err)
			}
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read courses: %w", err)
	}

	if err := Validate(courses); err != nil {
		return nil, err
	}

	slog.Info("catalogue loaded from postgres", "courses", len(courses))
	return courses, nil
}

// Close closes the connection pool
func (p *PostgresSource) Close() error {
	p.pool.Close()
	return nil
}
