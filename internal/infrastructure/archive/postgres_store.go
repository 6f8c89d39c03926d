package archive

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore пишет журнал забегов в PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore открывает соединение и готовит схему.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	store := &PostgresStore{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id SERIAL PRIMARY KEY,
		callsign TEXT NOT NULL,
		outcome TEXT NOT NULL,
		site TEXT NOT NULL,
		depth INTEGER NOT NULL,
		turns INTEGER NOT NULL,
		kills INTEGER NOT NULL,
		credits INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		run_index INTEGER NOT NULL,
		finished_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveRun дописывает итог забега. Журнал только растет.
func (ps *PostgresStore) SaveRun(rec RunRecord) error {
	query := `
	INSERT INTO runs (callsign, outcome, site, depth, turns, kills, credits, seed, run_index, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := ps.db.Exec(query,
		rec.Callsign, rec.Outcome, rec.Site, rec.Depth,
		rec.Turns, rec.Kills, rec.Credits,
		rec.Seed, rec.RunIndex, rec.FinishedAt)

	if err != nil {
		return fmt.Errorf("failed to save run: %v", err)
	}

	return nil
}

// RecentRuns возвращает последние забеги, новейшие первыми.
func (ps *PostgresStore) RecentRuns(limit int) ([]RunRecord, error) {
	query := `
	SELECT callsign, outcome, site, depth, turns, kills, credits, seed, run_index, finished_at
	FROM runs
	ORDER BY finished_at DESC, id DESC
	LIMIT $1
	`

	rows, err := ps.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %v", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		err := rows.Scan(
			&rec.Callsign, &rec.Outcome, &rec.Site, &rec.Depth,
			&rec.Turns, &rec.Kills, &rec.Credits,
			&rec.Seed, &rec.RunIndex, &rec.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %v", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Close закрывает соединение с базой.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
