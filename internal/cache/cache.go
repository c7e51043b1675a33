// Package cache stores per-file reports on disk, keyed by a hash of the
// analysed document and the options that shaped the analysis.
package cache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"

	"github.com/foundry-zero/dccheck/internal/report"
)

// schemaVersion is bumped whenever the payload layout changes.
const schemaVersion uint16 = 1

// ErrMiss is returned by Load when no usable entry exists for a key.
var ErrMiss = errors.New("cache miss")

// Key identifies one cache entry.
type Key [16]byte

// String returns the hex form used as the entry's file name.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// NewKey hashes a document together with a salt describing the analysis
// options, so a change to either invalidates the entry.
func NewKey(data []byte, salt string) Key {
	h := xxh3.New()
	_, _ = h.Write(data)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(salt)
	return Key(h.Sum128().Bytes())
}

type payload struct {
	Schema uint16
	Report *report.Report
}

// Store is an on-disk report cache rooted at a directory. It is safe for
// concurrent use; a nil *Store is a valid, always-missing cache.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

func (s *Store) pathFor(key Key) string {
	k := key.String()
	return filepath.Join(s.dir, k[:2], k+".mp")
}

// Load returns the report stored under key. Missing, stale and corrupt
// entries all yield ErrMiss.
func (s *Store) Load(key Key) (*report.Report, error) {
	if s == nil {
		return nil, ErrMiss
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("open cache entry: %w", err)
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	dec.SetCustomStructTag("json")
	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode entry %s: %v", ErrMiss, key, err)
	}
	if p.Schema != schemaVersion || p.Report == nil {
		return nil, ErrMiss
	}
	if p.Report.Findings == nil {
		p.Report.Findings = []report.Finding{}
	}
	return p.Report, nil
}

// Save writes r under key, replacing any existing entry atomically.
func (s *Store) Save(key Key, r *report.Report) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create cache shard: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(&payload{Schema: schemaVersion, Report: r}); err != nil {
		f.Close()
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close cache entry: %w", err)
	}
	return os.Rename(f.Name(), p)
}

// Clear removes every entry of the store.
func (s *Store) Clear() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read cache directory: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("remove cache entry: %w", err)
		}
	}
	return nil
}
