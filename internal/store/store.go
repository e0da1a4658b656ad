// Package store persists best completion times per difficulty.
// Persistence is best-effort: a session must be playable with no save
// file at all, so loading never fails and callers are free to drop
// save errors after logging them.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// LegacyDifficulty is the slot a pre-profile save file's single best
// time is attributed to.
const LegacyDifficulty = "custom"

// Records maps a difficulty id to the best completion time in seconds.
type Records map[string]float64

// BestTimes is the persistence provider the session reads and writes
// records through. Load never fails: unreadable or absent data yields
// an empty record set.
type BestTimes interface {
	Load() Records
	Save(Records) error
}

// Open picks a backend for path by extension: .db, .sqlite and
// .sqlite3 get the sqlite store, anything else the JSON file store.
func Open(path string) (BestTimes, error) {
	switch filepath.Ext(path) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSqlite(path)
	default:
		return FileStore{Path: path}, nil
	}
}

// Discard is a [BestTimes] that remembers nothing, for when no
// backing store could be opened.
type Discard struct{}

func (Discard) Load() Records { return Records{} }

func (Discard) Save(Records) error { return nil }

// FileStore keeps records in a single JSON file under a "best_times"
// field. The older save format, one bare "best_time_s" value with no
// difficulty key, is still accepted and mapped to [LegacyDifficulty].
type FileStore struct {
	Path string
}

type fileRecords struct {
	BestTimes  Records  `json:"best_times,omitempty"`
	LegacyBest *float64 `json:"best_time_s,omitempty"`
}

func (f FileStore) Load() Records {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		Log.WithError(err).Debug("no readable save file, starting fresh")
		return Records{}
	}
	var data fileRecords
	if err := json.Unmarshal(b, &data); err != nil {
		Log.WithError(err).Warn("malformed save file, starting fresh")
		return Records{}
	}
	if data.BestTimes != nil {
		return data.BestTimes
	}
	if data.LegacyBest != nil {
		return Records{LegacyDifficulty: *data.LegacyBest}
	}
	return Records{}
}

func (f FileStore) Save(r Records) error {
	b, err := json.Marshal(fileRecords{BestTimes: r})
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0644)
}
