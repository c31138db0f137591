package history

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// newestFirst adapts entries to fuzzy.Source in reverse order so that
// equally scored matches come out newest first.
type newestFirst []Entry

func (n newestFirst) String(i int) string { return n[len(n)-1-i].Query }
func (n newestFirst) Len() int            { return len(n) }

// Search returns the entries whose query fuzzy-matches pattern, best match
// first. An empty pattern returns every entry, newest first.
func Search(entries []Entry, pattern string) []Entry {
	src := newestFirst(entries)
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		out := make([]Entry, 0, len(entries))
		for i := 0; i < src.Len(); i++ {
			out = append(out, entries[len(entries)-1-i])
		}
		return out
	}

	matches := fuzzy.FindFrom(pattern, src)
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[len(entries)-1-m.Index])
	}
	return out
}

// Suggest returns up to limit queries starting with prefix, newest first.
// A query equal to prefix is not suggested. limit <= 0 means no limit.
func Suggest(entries []Entry, prefix string, limit int) []string {
	if strings.TrimSpace(prefix) == "" {
		return nil
	}

	var out []string
	for i := len(entries) - 1; i >= 0; i-- {
		q := entries[i].Query
		if q == prefix || !strings.HasPrefix(q, prefix) {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
