package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/bref-rosters/internal/table"
)

// Entry is the on-disk form of a cached report.
type Entry struct {
	Report  string     `json:"report"`
	Args    []string   `json:"args"`
	SavedAt time.Time  `json:"saved_at"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Dropped int        `json:"dropped,omitempty"`
}

// RecordSet rebuilds the cached report.
func (e *Entry) RecordSet() table.RecordSet {
	rs := table.FromRows(e.Columns, e.Rows)
	rs.Dropped = e.Dropped
	return rs
}

// Store keeps entries in a directory.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// New creates a Store rooted at dir, creating it if needed. A leading ~/ is
// expanded to the home directory.
func New(dir string, ttl time.Duration) (*Store, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("cache dir not configured")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Store{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Dir returns the directory entries are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Key fingerprints a report call.
func Key(report string, args ...string) string {
	h := sha256.New()
	h.Write([]byte(report))
	for _, a := range args {
		h.Write([]byte{0})
		h.Write([]byte(a))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load returns the entry stored under key. Missing and expired entries
// return nil without error.
func (s *Store) Load(key string) (*Entry, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parsing cache entry: %w", err)
	}
	if s.expired(e.SavedAt) {
		_ = os.Remove(s.path(key))
		return nil, nil
	}
	return &e, nil
}

// Save writes rs under key.
func (s *Store) Save(key, report string, args []string, rs table.RecordSet) error {
	e := Entry{
		Report:  report,
		Args:    args,
		SavedAt: s.now().UTC(),
		Columns: rs.Columns,
		Rows:    rs.Rows(),
		Dropped: rs.Dropped,
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return os.Rename(tmp, s.path(key))
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear() (int, error) {
	return s.remove(func(*Entry) bool { return true })
}

// Purge removes expired entries and returns how many were removed.
// Unreadable entries are removed as well.
func (s *Store) Purge() (int, error) {
	return s.remove(func(e *Entry) bool {
		return e == nil || s.expired(e.SavedAt)
	})
}

func (s *Store) remove(match func(*Entry) bool) (int, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range files {
		var e *Entry
		if data, err := os.ReadFile(f); err == nil {
			var decoded Entry
			if json.Unmarshal(data, &decoded) == nil {
				e = &decoded
			}
		}
		if !match(e) {
			continue
		}
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("removing %s: %w", f, err)
		}
		removed++
	}
	return removed, nil
}

func (s *Store) expired(savedAt time.Time) bool {
	return s.ttl > 0 && s.now().Sub(savedAt) > s.ttl
}
