// Package persistence provides SQLite-based game state storage.
package persistence

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/engine"
	"github.com/talgya/apparat/internal/journal"
	"github.com/talgya/apparat/internal/policy"
	"github.com/talgya/apparat/internal/stats"
)

// ErrNoGame is returned by LoadGame when nothing has been saved yet.
var ErrNoGame = errors.New("persistence: no saved game")

// Metadata keys.
const (
	metaTurn           = "turn"
	metaPlayer         = "player"
	metaBudget         = "budget"
	metaDecreesEnabled = "decrees_enabled"
	metaEntropy        = "entropy"
	MetaSeed           = "seed"
)

// DB wraps a SQLite connection for game state persistence.
type DB struct {
	conn *sqlx.DB
	log  *slog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(db *DB) { db.log = l }
}

// Open opens or creates a SQLite database at the given path.
func Open(path string, opts ...Option) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, log: slog.Default()}
	for _, o := range opts {
		o(db)
	}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		position_index INTEGER NOT NULL,
		body TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS policy_slots (
		id TEXT PRIMARY KEY,
		current_option_id TEXT NOT NULL,
		body TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS stats (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		turn INTEGER NOT NULL,
		category TEXT NOT NULL,
		actor TEXT NOT NULL,
		target TEXT NOT NULL,
		outcome TEXT NOT NULL,
		summary TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_journal_turn ON journal(turn);
	CREATE INDEX IF NOT EXISTS idx_characters_status ON characters(status);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// saveCharacters writes all characters (full replace).
func saveCharacters(tx *sqlx.Tx, list []*characters.Character) error {
	if _, err := tx.Exec("DELETE FROM characters"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO characters
		(id, name, status, position_index, body) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range list {
		body, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode character %s: %w", c.ID, err)
		}
		if _, err := stmt.Exec(c.ID, c.Name, string(c.Status), c.PositionIndex, string(body)); err != nil {
			return fmt.Errorf("insert character %s: %w", c.ID, err)
		}
	}
	return nil
}

// saveSlots writes all policy slots (full replace).
func saveSlots(tx *sqlx.Tx, slots []*policy.Slot) error {
	if _, err := tx.Exec("DELETE FROM policy_slots"); err != nil {
		return err
	}
	for _, s := range slots {
		body, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode slot %s: %w", s.ID, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO policy_slots (id, current_option_id, body) VALUES (?, ?, ?)",
			s.ID, s.CurrentOptionID, string(body),
		); err != nil {
			return fmt.Errorf("insert slot %s: %w", s.ID, err)
		}
	}
	return nil
}

func saveStats(tx *sqlx.Tx, values map[stats.Stat]int) error {
	if _, err := tx.Exec("DELETE FROM stats"); err != nil {
		return err
	}
	for k, v := range values {
		if _, err := tx.Exec("INSERT INTO stats (name, value) VALUES (?, ?)", string(k), v); err != nil {
			return fmt.Errorf("insert stat %s: %w", k, err)
		}
	}
	return nil
}

// saveJournal replaces the stored journal with the retained entries. The
// in-memory log already bounds its length.
func saveJournal(tx *sqlx.Tx, entries []journal.Entry) error {
	if _, err := tx.Exec("DELETE FROM journal"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.NamedExec(`INSERT INTO journal
			(turn, category, actor, target, outcome, summary)
			VALUES (:turn, :category, :actor, :target, :outcome, :summary)`, e); err != nil {
			return err
		}
	}
	return nil
}

func putMeta(tx *sqlx.Tx, key, value string) error {
	_, err := tx.Exec("INSERT OR REPLACE INTO game_meta (key, value) VALUES (?, ?)", key, value)
	return err
}

func putMetaJSON(tx *sqlx.Tx, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return putMeta(tx, key, string(b))
}

// SaveMeta stores a key-value pair in game metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO game_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. A missing key yields sql.ErrNoRows.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM game_meta WHERE key = ?", key)
	return value, err
}

// SaveGame performs a full save of the game state in one transaction.
func (db *DB) SaveGame(st engine.State) error {
	db.log.Info("saving game", "turn", st.Turn, "characters", len(st.Characters), "slots", len(st.Slots))

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveCharacters(tx, st.Characters); err != nil {
		return fmt.Errorf("save characters: %w", err)
	}
	if err := saveSlots(tx, st.Slots); err != nil {
		return fmt.Errorf("save slots: %w", err)
	}
	if err := saveStats(tx, st.Stats); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	if err := saveJournal(tx, st.Journal); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	if err := putMeta(tx, metaTurn, strconv.Itoa(st.Turn)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := putMetaJSON(tx, metaPlayer, st.Player); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := putMetaJSON(tx, metaBudget, st.Budget); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := putMeta(tx, metaDecreesEnabled, strconv.FormatBool(st.DecreesEnabled)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := putMeta(tx, metaEntropy, base64.StdEncoding.EncodeToString(st.Entropy)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	db.log.Info("game saved", "turn", st.Turn)
	return nil
}

// HasGame reports whether a game has been saved.
func (db *DB) HasGame() (bool, error) {
	_, err := db.GetMeta(metaTurn)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

type bodyRow struct {
	Body string `db:"body"`
}

type statRow struct {
	Name  string `db:"name"`
	Value int    `db:"value"`
}

// LoadGame reads back the state written by SaveGame. It returns ErrNoGame
// if nothing has been saved.
func (db *DB) LoadGame() (engine.State, error) {
	var st engine.State

	turn, err := db.GetMeta(metaTurn)
	if errors.Is(err, sql.ErrNoRows) {
		return st, ErrNoGame
	}
	if err != nil {
		return st, fmt.Errorf("load meta: %w", err)
	}
	if st.Turn, err = strconv.Atoi(turn); err != nil {
		return st, fmt.Errorf("load meta: turn %q: %w", turn, err)
	}
	if err := db.metaJSON(metaPlayer, &st.Player); err != nil {
		return st, err
	}
	if err := db.metaJSON(metaBudget, &st.Budget); err != nil {
		return st, err
	}
	if v, err := db.GetMeta(metaDecreesEnabled); err == nil {
		st.DecreesEnabled, _ = strconv.ParseBool(v)
	}
	if v, err := db.GetMeta(metaEntropy); err == nil && v != "" {
		if st.Entropy, err = base64.StdEncoding.DecodeString(v); err != nil {
			return st, fmt.Errorf("load meta: entropy: %w", err)
		}
	}

	var chars []bodyRow
	if err := db.conn.Select(&chars, "SELECT body FROM characters ORDER BY rowid"); err != nil {
		return st, fmt.Errorf("load characters: %w", err)
	}
	for _, row := range chars {
		c := new(characters.Character)
		if err := json.Unmarshal([]byte(row.Body), c); err != nil {
			return st, fmt.Errorf("decode character: %w", err)
		}
		st.Characters = append(st.Characters, c)
	}

	var slots []bodyRow
	if err := db.conn.Select(&slots, "SELECT body FROM policy_slots ORDER BY rowid"); err != nil {
		return st, fmt.Errorf("load slots: %w", err)
	}
	for _, row := range slots {
		s := new(policy.Slot)
		if err := json.Unmarshal([]byte(row.Body), s); err != nil {
			return st, fmt.Errorf("decode slot: %w", err)
		}
		st.Slots = append(st.Slots, s)
	}

	var rows []statRow
	if err := db.conn.Select(&rows, "SELECT name, value FROM stats"); err != nil {
		return st, fmt.Errorf("load stats: %w", err)
	}
	st.Stats = make(map[stats.Stat]int, len(rows))
	for _, r := range rows {
		st.Stats[stats.Stat(r.Name)] = r.Value
	}

	if err := db.conn.Select(&st.Journal,
		"SELECT turn, category, actor, target, outcome, summary FROM journal ORDER BY id",
	); err != nil {
		return st, fmt.Errorf("load journal: %w", err)
	}

	db.log.Info("game loaded", "turn", st.Turn, "characters", len(st.Characters))
	return st, nil
}

func (db *DB) metaJSON(key string, v any) error {
	raw, err := db.GetMeta(key)
	if err != nil {
		return fmt.Errorf("load meta %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode meta %s: %w", key, err)
	}
	return nil
}

// RecentJournal returns the most recent n journal entries, newest first.
func (db *DB) RecentJournal(limit int) ([]journal.Entry, error) {
	var entries []journal.Entry
	err := db.conn.Select(&entries,
		"SELECT turn, category, actor, target, outcome, summary FROM journal ORDER BY id DESC LIMIT ?",
		limit,
	)
	return entries, err
}
