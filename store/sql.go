package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"monaco/game"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFS embed.FS

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Options selects the database behind a SQLStore.
type Options struct {
	Dialect     Dialect `yaml:"dialect"`
	SQLitePath  string  `yaml:"sqlite_path"`
	PostgresDSN string  `yaml:"postgres_dsn"`
}

const defaultSQLitePath = "tmp/monaco.sqlite"

// OptionsFromEnv reads DB_DIALECT, DB_SQLITE_PATH, DB_POSTGRES_DSN and DATABASE_URL.
func OptionsFromEnv() Options {
	return Options{
		Dialect:     Dialect(strings.TrimSpace(strings.ToLower(os.Getenv("DB_DIALECT")))),
		SQLitePath:  strings.TrimSpace(os.Getenv("DB_SQLITE_PATH")),
		PostgresDSN: firstNonEmpty(os.Getenv("DB_POSTGRES_DSN"), os.Getenv("DATABASE_URL")),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// SQLStore keeps one row per race with the state encoded as JSON.
type SQLStore struct {
	dialect Dialect
	db      *sql.DB
}

func Open(ctx context.Context, opts Options) (*SQLStore, error) {
	dialect := opts.Dialect
	if dialect == "" {
		dialect = DialectSQLite
	}

	var driverName, dsn string
	switch dialect {
	case DialectSQLite:
		driverName = "sqlite"
		dsn = opts.SQLitePath
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	case DialectPostgres:
		driverName = "pgx"
		dsn = opts.PostgresDSN
		if dsn == "" {
			return nil, errors.New("postgres dialect requires DB_POSTGRES_DSN or DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DIALECT %q", dialect)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}

	s := &SQLStore{dialect: dialect, db: db}
	if err := s.applyMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("dialect", string(dialect)).Msg("database ready")
	return s, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) bind(pos int) string {
	if s.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", pos)
	}
	return "?"
}

func (s *SQLStore) placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = s.bind(i + 1)
	}
	return strings.Join(ph, ", ")
}

func (s *SQLStore) applyMigrations(ctx context.Context) error {
	create := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := map[string]bool{}
	rows, err := s.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return fmt.Errorf("scan schema migration: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate schema migrations: %w", err)
	}
	rows.Close()

	files, err := fs.Glob(migrationFS, fmt.Sprintf("migrations/%s/*.sql", s.dialect))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		base := filepath.Base(file)
		if applied[base] {
			continue
		}
		sqlBytes, err := migrationFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration tx %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		q := fmt.Sprintf("INSERT INTO schema_migrations (version, applied_at) VALUES (%s)", s.placeholders(2))
		if _, err := tx.ExecContext(ctx, q, base, time.Now().UTC()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context, id string) (*game.State, error) {
	var payload string
	q := "SELECT payload FROM races WHERE id = " + s.bind(1)
	err := s.db.QueryRowContext(ctx, q, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load race %s: %w", ErrIO, id, err)
	}

	var state game.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("%w: decode race %s: %w", ErrIO, id, err)
	}
	return state.Copy(), nil
}

// Save upserts the race row in a single statement.
func (s *SQLStore) Save(ctx context.Context, state *game.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encode race %s: %w", ErrIO, state.ID, err)
	}

	now := time.Now().UTC()
	q := fmt.Sprintf(`
		INSERT INTO races (id, owner, status, turns, winner, state_hash, payload, created_at, updated_at)
		VALUES (%s)
		ON CONFLICT (id) DO UPDATE SET
			owner = excluded.owner,
			status = excluded.status,
			turns = excluded.turns,
			winner = excluded.winner,
			state_hash = excluded.state_hash,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, s.placeholders(9))
	_, err = s.db.ExecContext(ctx, q,
		state.ID,
		state.Owner,
		state.Status.String(),
		int64(state.Turns),
		string(state.Winner),
		strconv.FormatUint(uint64(state.Hash()), 16),
		string(payload),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("%w: save race %s: %w", ErrIO, state.ID, err)
	}
	return nil
}
