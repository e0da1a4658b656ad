package store

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrBadName  = fmt.Errorf("bad name for store")
	ErrNotFound = fmt.Errorf("value not found")
)

const recordsKey = "best_times"

// Store keeps gob-encoded values in a single sqlite key/value table
// and backs [BestTimes] with the whole record set under one key.
type Store struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isLetters(s string) bool {
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return true
}

// NewStore creates a [Store] over db. name becomes the table name and
// may only contain upper- or lowercase Latin letters.
func NewStore(db *sql.DB, name string) (*Store, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}

	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + name + ` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, err
	}
	s := &Store{name: name, db: db}
	return s, nil
}

func OpenSqlite(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return NewStore(db, "besttimes")
}

// get decodes the value stored under key into value, which must be a
// pointer. Missing keys yield [ErrNotFound].
func (s *Store) get(key string, value any) error {
	var v []uint8
	if err := s.db.QueryRow(
		`SELECT value FROM `+s.name+` where key = ?;`,
		key).Scan(&v); err == sql.ErrNoRows {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	dec := gob.NewDecoder(bytes.NewReader(v))
	return dec.Decode(value)
}

// set inserts a new key-value pair or updates an existing one.
func (s *Store) set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	err := enc.Encode(value)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO `+s.name+` (key, value)
VALUES(?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		key, buf.Bytes())
	return err
}

// Load implements [BestTimes].
func (s *Store) Load() Records {
	var r Records
	if err := s.get(recordsKey, &r); err != nil {
		if err != ErrNotFound {
			Log.WithError(err).Warn("could not read best times, starting fresh")
		}
		return Records{}
	}
	if r == nil {
		r = Records{}
	}
	return r
}

// Save implements [BestTimes].
func (s *Store) Save(r Records) error {
	return s.set(recordsKey, r)
}

func (s *Store) Close() error {
	return s.db.Close()
}
