package trips

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Schema creates the trip_seeds table used by PostgresStore.
const Schema = `CREATE TABLE IF NOT EXISTS trip_seeds (
	id                 UUID PRIMARY KEY,
	url                TEXT NOT NULL,
	summary            TEXT,
	location           VARCHAR(255) NOT NULL,
	check_in           DATE NOT NULL,
	check_out          DATE NOT NULL,
	accommodation_name VARCHAR(255),
	accommodation_type VARCHAR(50),
	metadata           JSONB,
	status             VARCHAR(50) NOT NULL DEFAULT 'seed_created',
	created_at         TIMESTAMPTZ NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL
)`

const seedColumns = `id, url, summary, location, check_in, check_out, accommodation_name, accommodation_type, metadata, status, created_at, updated_at`

// PostgresStore keeps seeds in the trip_seeds table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a pooled connection using the lib/pq driver.
func OpenPostgres(dsn string, maxConns, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// Migrate creates the table if needed.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("creating trip_seeds: %w", err)
	}
	return nil
}

func (p *PostgresStore) Create(ctx context.Context, seed *Seed) error {
	meta, err := encodeMetadata(seed.Metadata)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx,
		`INSERT INTO trip_seeds (`+seedColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		seed.ID, seed.URL, nullString(seed.Summary), seed.Location, seed.CheckIn, seed.CheckOut,
		nullString(seed.AccommodationName), nullString(seed.AccommodationType), meta,
		string(seed.Status), seed.CreatedAt, seed.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting seed %s: %w", seed.ID, err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Seed, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+seedColumns+` FROM trip_seeds WHERE id = $1`, id)
	seed, err := scanSeed(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading seed %s: %w", id, err)
	}
	return seed, nil
}

func (p *PostgresStore) List(ctx context.Context) ([]*Seed, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+seedColumns+` FROM trip_seeds ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing seeds: %w", err)
	}
	defer rows.Close()

	out := []*Seed{}
	for rows.Next() {
		seed, err := scanSeed(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning seed: %w", err)
		}
		out = append(out, seed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing seeds: %w", err)
	}
	return out, nil
}

func (p *PostgresStore) Update(ctx context.Context, seed *Seed) error {
	meta, err := encodeMetadata(seed.Metadata)
	if err != nil {
		return err
	}

	res, err := p.db.ExecContext(ctx,
		`UPDATE trip_seeds SET summary = $2, location = $3, accommodation_name = $4, accommodation_type = $5, metadata = $6, status = $7, updated_at = $8 WHERE id = $1`,
		seed.ID, nullString(seed.Summary), seed.Location, nullString(seed.AccommodationName),
		nullString(seed.AccommodationType), meta, string(seed.Status), seed.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating seed %s: %w", seed.ID, err)
	}
	return expectOneRow(res)
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM trip_seeds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting seed %s: %w", id, err)
	}
	return expectOneRow(res)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSeed(row scanner) (*Seed, error) {
	var (
		seed              Seed
		summary           sql.NullString
		accommodationName sql.NullString
		accommodationType sql.NullString
		metadata          []byte
		status            string
		checkIn, checkOut time.Time
	)
	err := row.Scan(&seed.ID, &seed.URL, &summary, &seed.Location, &checkIn, &checkOut,
		&accommodationName, &accommodationType, &metadata, &status, &seed.CreatedAt, &seed.UpdatedAt)
	if err != nil {
		return nil, err
	}

	seed.Summary = summary.String
	seed.AccommodationName = accommodationName.String
	seed.AccommodationType = accommodationType.String
	seed.CheckIn = checkIn.Format(DateLayout)
	seed.CheckOut = checkOut.Format(DateLayout)
	seed.Status = Status(status)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &seed.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata: %w", err)
		}
	}
	return &seed, nil
}

func encodeMetadata(m map[string]interface{}) (interface{}, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return data, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
