// Package store persists players, ranking observations, and picks in
// SQLite. The core treats it as a plain create/read collaborator; all
// derived views (consensus, needs) are recomputed, never stored.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"nfl-draft-mcp/internal/consensus"
	"nfl-draft-mcp/internal/model"
)

type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the database and applies migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure db dir: %w", err)
		}
	}

	// Pragmas go in the DSN so every pooled connection gets them; a plain
	// db.Exec would configure only whichever connection served that call.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applyMigrations(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			position TEXT NOT NULL,
			team TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS ranking_observations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL,
			source TEXT NOT NULL,
			rank INTEGER NOT NULL,
			observed_at TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_obs_source_player
			ON ranking_observations (source, player_id)`,
		`CREATE TABLE IF NOT EXISTS picks (
			session_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			pick_no INTEGER NOT NULL,
			slot_in_round INTEGER NOT NULL,
			team_id INTEGER NOT NULL,
			player_id INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (session_id, round, pick_no)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// UpsertPlayers loads or refreshes the canonical player registry.
func (s *Store) UpsertPlayers(ctx context.Context, players []model.Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players (id, name, position, team) VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET name=excluded.name,
			   position=excluded.position, team=excluded.team`,
			p.ID, p.Name, string(p.Position), p.Team,
		); err != nil {
			return fmt.Errorf("upsert player %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Players reads the full registry, ordered by id.
func (s *Store) Players(ctx context.Context) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, position, team FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		var pos string
		if err := rows.Scan(&p.ID, &p.Name, &pos, &p.Team); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.Position = model.Position(pos)
		out = append(out, p)
	}
	return out, rows.Err()
}

// InsertObservation records one source's rank for a player. Re-ingesting the
// same source replaces its previous opinion rather than double-counting it.
func (s *Store) InsertObservation(ctx context.Context, o consensus.Observation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ranking_observations (player_id, source, rank, observed_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(source, player_id) DO UPDATE SET
		   rank=excluded.rank, observed_at=excluded.observed_at`,
		o.PlayerID, o.Source, o.Rank, o.ObservedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// Observations reads every ranking observation in insertion order.
func (s *Store) Observations(ctx context.Context) ([]consensus.Observation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, source, rank, observed_at FROM ranking_observations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var out []consensus.Observation
	for rows.Next() {
		var o consensus.Observation
		var observed string
		if err := rows.Scan(&o.PlayerID, &o.Source, &o.Rank, &observed); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, observed); perr == nil {
			o.ObservedAt = t
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// AppendPick persists one pick. Re-appending the same (session, round,
// pick_no) is a no-op, matching the in-memory dedupe key.
func (s *Store) AppendPick(ctx context.Context, sessionID string, p model.Pick) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO picks
		   (session_id, round, pick_no, slot_in_round, team_id, player_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, p.Round, p.PickNumber, p.SlotInRound, p.TeamID, p.PlayerID,
	)
	if err != nil {
		return fmt.Errorf("append pick %d: %w", p.PickNumber, err)
	}
	return nil
}

// SessionPicks reads a session's pick log in pick order.
func (s *Store) SessionPicks(ctx context.Context, sessionID string) ([]model.Pick, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pick_no, round, slot_in_round, team_id, player_id
		 FROM picks WHERE session_id = ? ORDER BY pick_no`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()

	var out []model.Pick
	for rows.Next() {
		var p model.Pick
		if err := rows.Scan(&p.PickNumber, &p.Round, &p.SlotInRound, &p.TeamID, &p.PlayerID); err != nil {
			return nil, fmt.Errorf("scan pick: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
