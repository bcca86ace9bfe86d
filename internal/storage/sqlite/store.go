package sqlite

import (
	"database/sql"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"lootlogger/internal/domain"
)

// Store is a sqlite-backed record service. Records are keyed by player,
// record type and lower-cased source name, and kept in append order.
type Store struct {
	db *sql.DB

	mu     sync.Mutex
	player string
}

// Open opens (and if needed creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS loot_records (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		player       TEXT NOT NULL,
		record_type  TEXT NOT NULL,
		source_key   TEXT NOT NULL,
		source_name  TEXT NOT NULL,
		combat_level INTEGER NOT NULL DEFAULT -1,
		kill_count   INTEGER NOT NULL DEFAULT -1,
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_loot_records_key ON loot_records(player, record_type, source_key);

	CREATE TABLE IF NOT EXISTS loot_items (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		record_id INTEGER NOT NULL,
		position  INTEGER NOT NULL,
		item_id   INTEGER NOT NULL,
		name      TEXT NOT NULL,
		quantity  INTEGER NOT NULL,
		price     INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_loot_items_record ON loot_items(record_id);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetPlayer binds all subsequent operations to the named player.
func (s *Store) SetPlayer(name string) {
	s.mu.Lock()
	s.player = name
	s.mu.Unlock()
}

func (s *Store) currentPlayer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

func sourceKey(name string) string {
	return strings.ToLower(name)
}

// Add appends one record to the collection for (rt, name).
func (s *Store) Add(rt domain.RecordType, name string, rec domain.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRecord(tx, s.currentPlayer(), rt, name, rec); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRecord(tx *sql.Tx, player string, rt domain.RecordType, name string, rec domain.Record) error {
	res, err := tx.Exec(
		`INSERT INTO loot_records (player, record_type, source_key, source_name, combat_level, kill_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		player, string(rt), sourceKey(name), rec.Name, rec.CombatLevel, rec.KillCount,
	)
	if err != nil {
		return err
	}
	recordID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO loot_items (record_id, position, item_id, name, quantity, price)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, item := range rec.Items {
		if _, err := stmt.Exec(recordID, i, item.ID, item.Name, item.Quantity, item.Price); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the records for (rt, name) in append order. A source with no
// history yields an empty slice.
func (s *Store) Load(rt domain.RecordType, name string) ([]domain.Record, error) {
	rows, err := s.db.Query(
		`SELECT id, source_name, combat_level, kill_count
		 FROM loot_records
		 WHERE player = ? AND record_type = ? AND source_key = ?
		 ORDER BY id`,
		s.currentPlayer(), string(rt), sourceKey(name),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Record
	var ids []int64
	for rows.Next() {
		var id int64
		var rec domain.Record
		if err := rows.Scan(&id, &rec.Name, &rec.CombatLevel, &rec.KillCount); err != nil {
			return nil, err
		}
		rec.Type = rt
		records = append(records, rec)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		items, err := s.loadItems(id)
		if err != nil {
			return nil, err
		}
		records[i].Items = items
	}
	return records, nil
}

func (s *Store) loadItems(recordID int64) ([]domain.ItemEntry, error) {
	rows, err := s.db.Query(
		`SELECT item_id, name, quantity, price
		 FROM loot_items WHERE record_id = ? ORDER BY position`,
		recordID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ItemEntry
	for rows.Next() {
		var item domain.ItemEntry
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Replace overwrites the whole collection for (rt, name) with recs.
func (s *Store) Replace(rt domain.RecordType, name string, recs []domain.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	player := s.currentPlayer()
	if err := deleteRecords(tx, player, rt, name); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := insertRecord(tx, player, rt, name, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes all records for (rt, name) and reports whether any existed.
func (s *Store) Delete(rt domain.RecordType, name string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM loot_records WHERE player = ? AND record_type = ? AND source_key = ?`,
		s.currentPlayer(), string(rt), sourceKey(name),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if err := deleteRecords(tx, s.currentPlayer(), rt, name); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func deleteRecords(tx *sql.Tx, player string, rt domain.RecordType, name string) error {
	_, err := tx.Exec(
		`DELETE FROM loot_items WHERE record_id IN (
			SELECT id FROM loot_records WHERE player = ? AND record_type = ? AND source_key = ?
		 )`,
		player, string(rt), sourceKey(name),
	)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		`DELETE FROM loot_records WHERE player = ? AND record_type = ? AND source_key = ?`,
		player, string(rt), sourceKey(name),
	)
	return err
}

// KnownNames returns the lower-cased source names the bound player has
// records for, per record type.
func (s *Store) KnownNames() (map[domain.RecordType]map[string]struct{}, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT record_type, source_key FROM loot_records WHERE player = ?`,
		s.currentPlayer(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[domain.RecordType]map[string]struct{})
	for rows.Next() {
		var rt, key string
		if err := rows.Scan(&rt, &key); err != nil {
			return nil, err
		}
		set, ok := names[domain.RecordType(rt)]
		if !ok {
			set = make(map[string]struct{})
			names[domain.RecordType(rt)] = set
		}
		set[key] = struct{}{}
	}
	return names, rows.Err()
}
