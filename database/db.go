package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"goginie/config"
)

// DB wraps the connection with the placeholder dialect of its driver.
type DB struct {
	*sql.DB
	driver string
}

// ─── Init ─────────────────────────────────────────────────────────────────────

// Open connects the configured store driver and runs migrations.
func Open(cfg *config.Config) (*DB, error) {
	switch cfg.StoreDriver {
	case "postgres":
		return OpenPostgres(cfg.PostgresDSN())
	default:
		return OpenSQLite(cfg.SQLitePath)
	}
}

// OpenSQLite opens (or creates) a local SQLite file. This is the default
// store for local and CLI use.
func OpenSQLite(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// single writer per process; IMMEDIATE transactions serialize writers
	// across processes sharing the file
	conn.SetMaxOpenConns(1)

	db := &DB{DB: conn, driver: "sqlite"}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	log.Printf("✅ Booking store ready (sqlite: %s)", path)
	return db, nil
}

// OpenPostgres connects to PostgreSQL, retrying while the server comes up.
func OpenPostgres(dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	for i := 0; i < 10; i++ {
		if err = conn.Ping(); err == nil {
			break
		}
		log.Printf("⏳ Waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database after retries: %w", err)
	}

	db := &DB{DB: conn, driver: "postgres"}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	log.Println("✅ Booking store ready (postgres)")
	return db, nil
}

func (db *DB) Driver() string {
	return db.driver
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Key-value access ─────────────────────────────────────────────────────────

// ph returns the n-th (1-based) bind placeholder for the driver.
func (db *DB) ph(n int) string {
	if db.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (db *DB) getValue(q querier, key string) (string, bool, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM kv_store WHERE key = `+db.ph(1), key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// lockValue reads key for update, creating an empty row first so there is
// always a row to lock. Postgres holds the row lock until the transaction
// ends; SQLite already holds the write lock from BEGIN IMMEDIATE.
func (db *DB) lockValue(q querier, key string) (string, error) {
	if _, err := q.Exec(`INSERT INTO kv_store (key, value) VALUES (`+db.ph(1)+`, '') ON CONFLICT (key) DO NOTHING`, key); err != nil {
		return "", err
	}
	query := `SELECT value FROM kv_store WHERE key = ` + db.ph(1)
	if db.driver == "postgres" {
		query += ` FOR UPDATE`
	}
	var value string
	if err := q.QueryRow(query, key).Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}

func (db *DB) putValue(q querier, key, value string) error {
	_, err := q.Exec(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (`+db.ph(1)+`, `+db.ph(2)+`, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}
