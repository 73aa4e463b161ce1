package offline

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Region is a persisted offline region: a Definition plus the catalog
// metadata (ID, name, creation time) the store adds around it.
type Region struct {
	ID         int64
	Name       string
	Definition Definition
	CreatedAt  time.Time
}

// Store is a DuckDB-backed catalog of offline regions. Geometry is kept as
// GeoJSON text rather than the spatial extension's native GEOMETRY column
// so Definition's JSON codec stays the single source of truth for the wire
// format; the spatial extension is still loaded for ST_Area/ST_AsText
// ad-hoc inspection queries against that text from the DuckDB CLI.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store against db, creating its table if absent.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE SEQUENCE IF NOT EXISTS offline_region_id_seq;
		CREATE TABLE IF NOT EXISTS offline_regions (
			id          BIGINT PRIMARY KEY DEFAULT nextval('offline_region_id_seq'),
			name        VARCHAR NOT NULL,
			definition  VARCHAR NOT NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT current_timestamp
		)
	`)
	if err != nil {
		return fmt.Errorf("offline: migrate: %w", err)
	}
	return nil
}

// Create inserts a new region and returns it with its assigned ID.
func (s *Store) Create(ctx context.Context, name string, def Definition) (Region, error) {
	encoded, err := EncodeDefinition(def)
	if err != nil {
		return Region{}, fmt.Errorf("offline: encode definition: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO offline_regions (name, definition) VALUES (?, ?)
		RETURNING id, created_at
	`, name, string(encoded))

	var r Region
	if err := row.Scan(&r.ID, &r.CreatedAt); err != nil {
		return Region{}, fmt.Errorf("offline: insert region: %w", err)
	}
	r.Name = name
	r.Definition = def
	return r, nil
}

// Get fetches a single region by ID.
func (s *Store) Get(ctx context.Context, id int64) (Region, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, definition, created_at FROM offline_regions WHERE id = ?
	`, id)
	return scanRegion(row)
}

// List returns every persisted region, oldest first.
func (s *Store) List(ctx context.Context) ([]Region, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, definition, created_at FROM offline_regions ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("offline: list regions: %w", err)
	}
	defer rows.Close()

	var out []Region
	for rows.Next() {
		r, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes a region by ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM offline_regions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("offline: delete region: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("offline: delete region: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRegion(row rowScanner) (Region, error) {
	var r Region
	var encoded string
	if err := row.Scan(&r.ID, &r.Name, &encoded, &r.CreatedAt); err != nil {
		return Region{}, err
	}
	def, err := DecodeDefinition([]byte(encoded))
	if err != nil {
		return Region{}, fmt.Errorf("offline: decode stored definition %d: %w", r.ID, err)
	}
	r.Definition = def
	return r, nil
}
