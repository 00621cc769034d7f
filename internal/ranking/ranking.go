package ranking

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dfsorter/internal/discover"
)

// SecondaryWeight scales the primary rank so it dominates the secondary one.
const SecondaryWeight = 100

// SortOrder holds the uppercase tag lists that define rank precedence.
type SortOrder struct {
	Primary   []string
	Secondary []string
}

// NewSortOrder uppercases both tag lists.
func NewSortOrder(primary, secondary []string) SortOrder {
	upper := cases.Upper(language.Und)
	conv := func(tags []string) []string {
		out := make([]string, len(tags))
		for i, tag := range tags {
			out[i] = upper.String(tag)
		}
		return out
	}
	return SortOrder{Primary: conv(primary), Secondary: conv(secondary)}
}

// Priority is a sort key. Infinite priorities order after every finite one
// and compare equal to each other.
type Priority struct {
	Key      int
	Infinite bool
}

// Infinity is the priority of files with fewer than two tokens.
var Infinity = Priority{Infinite: true}

// Less reports whether p sorts strictly before o.
func (p Priority) Less(o Priority) bool {
	switch {
	case p.Infinite:
		return false
	case o.Infinite:
		return true
	default:
		return p.Key < o.Key
	}
}

func (p Priority) String() string {
	if p.Infinite {
		return "inf"
	}
	return strconv.Itoa(p.Key)
}

// Entry pairs a file with its priority.
type Entry struct {
	Priority Priority
	File     discover.AudioFile
}

// Identity keeps enumeration order: each file's priority is its index.
func Identity(files []discover.AudioFile) []Entry {
	entries := make([]Entry, len(files))
	for i, f := range files {
		entries[i] = Entry{Priority: Priority{Key: i}, File: f}
	}
	return entries
}

// Rank computes tag priorities. tokens[i] must hold the uppercase tokens of
// files[i]. The result is in input order; call Sort to order it.
func Rank(files []discover.AudioFile, tokens [][]string, order SortOrder) ([]Entry, error) {
	if len(files) != len(tokens) {
		return nil, fmt.Errorf("rank: %d files but %d token lists", len(files), len(tokens))
	}
	entries := make([]Entry, len(files))
	for i, f := range files {
		entries[i] = Entry{Priority: order.Priority(tokens[i]), File: f}
	}
	return entries, nil
}

// Priority computes the key for one token list.
func (o SortOrder) Priority(tokens []string) Priority {
	if len(tokens) < 2 {
		return Infinity
	}
	return Priority{Key: indexOr(o.Primary, tokens[0])*SecondaryWeight + indexOr(o.Secondary, tokens[1])}
}

// Sort orders entries ascending by priority, keeping input order on ties.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority.Less(entries[j].Priority)
	})
}

// indexOr returns the position of tag in list, or len(list) when absent.
func indexOr(list []string, tag string) int {
	for i, v := range list {
		if v == tag {
			return i
		}
	}
	return len(list)
}
