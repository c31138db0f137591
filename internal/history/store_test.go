package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// tickingClock returns a clock that advances one second per call.
func tickingClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	opts = append([]Option{WithClock(tickingClock(time.Unix(1000, 0)))}, opts...)
	return New(path, opts...), path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func queries(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Query
	}
	return out
}

func TestNew_MissingFile(t *testing.T) {
	log := &recordingLogger{}
	s, path := newTestStore(t, WithLogger(log))

	require.Equal(t, 0, s.Len())
	require.Equal(t, 0, s.Index())
	require.False(t, s.IsBrowsing())
	require.Equal(t, path, s.Path())
	require.Empty(t, log.warnings, "a missing file is not a failure")
}

func TestLoad_BlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	writeFile(t, path, "  \n\t ")

	log := &recordingLogger{}
	s := New(path, WithLogger(log))
	require.Equal(t, 0, s.Len())
	require.Empty(t, log.warnings)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	writeFile(t, path, "not json")

	log := &recordingLogger{}
	s := New(path, WithLogger(log))
	require.Equal(t, 0, s.Len())
	require.Len(t, log.warnings, 1)
	require.Contains(t, log.warnings[0], "Failed to load history")
}

func TestLoad_NonArrayIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	writeFile(t, path, `{"query": "a", "timestamp": 1}`)

	log := &recordingLogger{}
	s := New(path, WithLogger(log))
	require.Equal(t, 0, s.Len())
	require.Empty(t, log.warnings)
}

func TestLoad_WrongElementShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	writeFile(t, path, `["a", "b"]`)

	log := &recordingLogger{}
	s := New(path, WithLogger(log))
	require.Equal(t, 0, s.Len())
	require.Len(t, log.warnings, 1)
}

func TestLoad_UnreadablePath(t *testing.T) {
	// A directory where the file should be.
	path := t.TempDir()

	log := &recordingLogger{}
	s := New(path, WithLogger(log))
	require.Equal(t, 0, s.Len())
	require.Len(t, log.warnings, 1)
}

func TestLoad_ResetsCursor(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")
	s.Add("b")
	s.Prev("draft")
	require.True(t, s.IsBrowsing())

	s.Load()
	require.Equal(t, 2, s.Index())
	require.False(t, s.IsBrowsing())
	got, ok := s.Next()
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	for _, q := range []string{"firefox", "calc 2+2", "term", "~/Documents"} {
		s.Add(q)
	}

	fresh := New(path)
	require.Equal(t, s.Entries(), fresh.Entries())
	require.Equal(t, []string{"firefox", "calc 2+2", "term", "~/Documents"}, queries(fresh.Entries()))
}

func TestSave_FileFormat(t *testing.T) {
	s, path := newTestStore(t)
	s.Add("a")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	require.Equal(t, "a", raw[0]["query"])
	require.Equal(t, float64(1001), raw[0]["timestamp"])
}

func TestSave_EmptyWritesArray(t *testing.T) {
	s, path := newTestStore(t)
	s.Save()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(data))
}

func TestSave_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "history.json")
	s := New(path)
	s.Add("a")

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestSave_FailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	writeFile(t, blocker, "file, not a directory")

	log := &recordingLogger{}
	s := New(filepath.Join(blocker, "history.json"), WithLogger(log))
	s.Add("a")

	require.Equal(t, []string{"a"}, queries(s.Entries()), "memory stays authoritative")
	require.NotEmpty(t, log.warnings)
	require.Contains(t, log.warnings[len(log.warnings)-1], "Failed to save history")
}

func TestAdd_TrimsWhitespace(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("  firefox \n")
	require.Equal(t, []string{"firefox"}, queries(s.Entries()))
}

func TestAdd_BlankIsNoop(t *testing.T) {
	s, path := newTestStore(t)
	s.Add("a")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	s.Prev("draft")
	s.Add("   ")

	require.Equal(t, []string{"a"}, queries(s.Entries()))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.True(t, s.IsBrowsing(), "a blank add leaves navigation alone")
}

func TestAdd_BlankDoesNotCreateFile(t *testing.T) {
	s, path := newTestStore(t)
	s.Add("")
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestAdd_DuplicatePromotedToNewest(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("foo")
	s.Add("bar")
	s.Add("foo")

	entries := s.Entries()
	require.Equal(t, []string{"bar", "foo"}, queries(entries))
	require.Equal(t, float64(1003), entries[1].Timestamp, "timestamp comes from the second add")
}

func TestAdd_DuplicateIsCaseSensitive(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("Foo")
	s.Add("foo")
	require.Equal(t, []string{"Foo", "foo"}, queries(s.Entries()))
}

func TestAdd_Capacity(t *testing.T) {
	s, path := newTestStore(t)
	for i := 0; i <= MaxEntries; i++ {
		s.Add(fmt.Sprintf("query-%d", i))
	}

	entries := s.Entries()
	require.Len(t, entries, MaxEntries)
	require.Equal(t, "query-1", entries[0].Query)
	require.Equal(t, fmt.Sprintf("query-%d", MaxEntries), entries[len(entries)-1].Query)

	reloaded := New(path)
	require.Equal(t, MaxEntries, reloaded.Len())
}

func TestAdd_ResetsNavigation(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")
	s.Add("b")
	s.Prev("draft")
	s.Prev("")

	s.Add("c")
	require.False(t, s.IsBrowsing())
	require.Equal(t, 3, s.Index())

	// The old stash must not come back.
	got, ok := s.Prev("new draft")
	require.True(t, ok)
	require.Equal(t, "c", got)
	got, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, "new draft", got)
}

func TestPrevNext_Example(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	writeFile(t, path, `[{"query": "a", "timestamp": 1}]`)

	s := New(path, WithClock(tickingClock(time.Unix(1000, 0))))
	s.Add("b")
	require.Equal(t, []Entry{{Query: "a", Timestamp: 1}, {Query: "b", Timestamp: 1001}}, s.Entries())

	got, ok := s.Prev("")
	require.True(t, ok)
	require.Equal(t, "b", got)
	require.Equal(t, 1, s.Index())

	got, ok = s.Prev("")
	require.True(t, ok)
	require.Equal(t, "a", got)
	require.Equal(t, 0, s.Index())

	got, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, "b", got)
	require.Equal(t, 1, s.Index())

	got, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, "", got)
	require.Equal(t, 2, s.Index())
}

func TestPrevNext_Symmetry(t *testing.T) {
	s, _ := newTestStore(t)
	for _, q := range []string{"one", "two", "three", "four"} {
		s.Add(q)
	}

	for n := 1; n <= s.Len(); n++ {
		t.Run(fmt.Sprintf("depth %d", n), func(t *testing.T) {
			s.ResetIndex()
			_, ok := s.Prev("typed so far")
			require.True(t, ok)
			for i := 1; i < n; i++ {
				_, ok := s.Prev("ignored")
				require.True(t, ok)
			}

			var got string
			for i := 0; i < n; i++ {
				got, ok = s.Next()
				require.True(t, ok)
			}
			require.Equal(t, "typed so far", got)
			require.Equal(t, s.Len(), s.Index())
		})
	}
}

func TestPrev_OnlyStashesAtPresent(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")
	s.Add("b")

	s.Prev("first draft")
	s.Prev("second draft")
	s.Next()

	got, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, "first draft", got)
}

func TestPrev_StopsAtOldest(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")

	got, ok := s.Prev("")
	require.True(t, ok)
	require.Equal(t, "a", got)

	got, ok = s.Prev("")
	require.False(t, ok)
	require.Equal(t, "", got)
	require.Equal(t, 0, s.Index())
}

func TestPrev_EmptyHistory(t *testing.T) {
	s, _ := newTestStore(t)
	got, ok := s.Prev("draft")
	require.False(t, ok)
	require.Equal(t, "", got)
	require.Equal(t, 0, s.Index())
}

func TestNext_AtPresent(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")

	got, ok := s.Next()
	require.False(t, ok)
	require.Equal(t, "", got)
	require.Equal(t, 1, s.Index())
}

func TestResetIndex(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")
	s.Add("b")
	s.Prev("draft")

	s.ResetIndex()
	require.Equal(t, 2, s.Index())

	s.Prev("")
	got, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, "", got, "stash from before the reset is gone")
}

func TestCurrentMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	writeFile(t, path, `[{"query": "a", "timestamp": 1}, {"query": "b", "timestamp": 2}]`)
	s := New(path)

	require.False(t, s.CurrentMatches(Entry{Query: "b", Timestamp: 2}), "present never matches")

	s.Prev("")
	require.True(t, s.CurrentMatches(Entry{Query: "b", Timestamp: 2}))
	require.False(t, s.CurrentMatches(Entry{Query: "b", Timestamp: 3}))
	require.False(t, s.CurrentMatches(Entry{Query: "a", Timestamp: 1}))
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")

	entries := s.Entries()
	entries[0].Query = "mutated"
	require.Equal(t, "a", s.Entries()[0].Query)
}

func TestEntry_Time(t *testing.T) {
	e := Entry{Query: "a", Timestamp: 1700000000.5}
	got := e.Time()
	require.Equal(t, int64(1700000000), got.Unix())
	require.Equal(t, 500000000, got.Nanosecond())
}
