// Package history keeps the persistent, navigable list of submitted queries.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// MaxEntries is the number of queries kept on disk and in memory.
const MaxEntries = 1000

// Entry is one submitted query and the time it was last submitted.
type Entry struct {
	Query     string  `json:"query"`
	Timestamp float64 `json:"timestamp"` // seconds since the Unix epoch
}

// Time returns the entry timestamp as a time.Time.
func (e Entry) Time() time.Time {
	sec := int64(e.Timestamp)
	nsec := int64((e.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// Logger receives warnings about persistence failures.
type Logger interface {
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...interface{}) {}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the sink for load and save warnings.
func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the clock used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store is the query history backed by a JSON file.
//
// The cursor ranges over [0, Len()]; Len() is the present, where the live
// input is authoritative. A Store is not safe for concurrent use.
type Store struct {
	path string
	log  Logger
	now  func() time.Time

	items []Entry
	index int

	// stash holds the live input captured when Prev leaves the present.
	stash *string
}

// New creates a Store for the file at path and loads it.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		log:  nopLogger{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory history with the contents of the backing file.
// A missing, blank, unreadable or malformed file yields an empty history.
func (s *Store) Load() {
	defer s.ResetIndex()
	s.items = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warnf("Failed to load history: %v", err)
		}
		return
	}
	if strings.TrimSpace(string(data)) == "" {
		return
	}

	if !gjson.ValidBytes(data) {
		s.log.Warnf("Failed to load history: %s is not valid JSON", s.path)
		return
	}
	// Anything other than an array is left over from an older format.
	if !gjson.ParseBytes(data).IsArray() {
		return
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warnf("Failed to load history: %v", err)
		return
	}
	s.items = entries
}

// Save writes the history to the backing file, creating its directory if
// needed. Failures are logged and otherwise ignored.
func (s *Store) Save() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		s.log.Warnf("Failed to save history: %v", err)
		return
	}

	items := s.items
	if items == nil {
		items = []Entry{}
	}
	data, err := json.MarshalIndent(items, "", "")
	if err != nil {
		s.log.Warnf("Failed to save history: %v", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		s.log.Warnf("Failed to save history: %v", err)
	}
}

// Add records query as the newest entry. Blank queries are ignored.
// An existing entry with the same query is moved to the end with a fresh
// timestamp, and the oldest entries are dropped past MaxEntries.
func (s *Store) Add(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	kept := s.items[:0]
	for _, item := range s.items {
		if item.Query != query {
			kept = append(kept, item)
		}
	}
	s.items = append(kept, Entry{Query: query, Timestamp: unixSeconds(s.now())})

	if excess := len(s.items) - MaxEntries; excess > 0 {
		s.items = append([]Entry(nil), s.items[excess:]...)
	}

	s.Save()
	s.ResetIndex()
}

// Prev moves the cursor one entry back in time and returns its query.
// Leaving the present stashes current so Next can restore it.
// The bool is false when the cursor was already at the oldest entry.
func (s *Store) Prev(current string) (string, bool) {
	if s.index == len(s.items) {
		s.stash = &current
	}

	if s.index > 0 {
		s.index--
		return s.items[s.index].Query, true
	}
	return "", false
}

// Next moves the cursor one entry forward in time. Arriving back at the
// present returns the stashed input, or "" if nothing was stashed.
// The bool is false when the cursor was already at the present.
func (s *Store) Next() (string, bool) {
	if s.index >= len(s.items) {
		return "", false
	}

	s.index++
	if s.index == len(s.items) {
		if s.stash != nil {
			return *s.stash, true
		}
		return "", true
	}
	return s.items[s.index].Query, true
}

// ResetIndex moves the cursor to the present and drops the stash.
func (s *Store) ResetIndex() {
	s.index = len(s.items)
	s.stash = nil
}

// CurrentMatches reports whether the entry under the cursor equals e.
func (s *Store) CurrentMatches(e Entry) bool {
	if s.index < 0 || s.index >= len(s.items) {
		return false
	}
	return s.items[s.index] == e
}

// Entries returns a copy of the history, oldest first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.items)
}

// Index returns the cursor position. Index() == Len() at the present.
func (s *Store) Index() int {
	return s.index
}

// IsBrowsing reports whether the cursor is away from the present.
func (s *Store) IsBrowsing() bool {
	return s.index < len(s.items)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
