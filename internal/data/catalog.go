package data

import (
	"regexp"
	"sort"
	"strings"

	"github.com/autopick/internal/services/ddragon"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Normalize strips separators and lowercases a name for fuzzy matching.
func Normalize(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}

// RuneMatch is a resolved rune. TreeID is zero for stat shards, which do not
// belong to a tree.
type RuneMatch struct {
	ID     int
	TreeID int
	Name   string
}

// Catalog holds the reference maps loaded once per client connection. It is
// populated during bootstrap and then only read from the event dispatch
// goroutine, so it carries no locking.
type Catalog struct {
	champions map[string]int
	trees     []ddragon.RuneTree

	stats     []statRune
	statIndex map[string]int // name -> position in stats
}

// NewCatalog creates a catalog seeded with the built-in stat shard table.
func NewCatalog() *Catalog {
	c := &Catalog{
		champions: make(map[string]int),
		statIndex: make(map[string]int),
	}
	for _, sr := range defaultStatRunes {
		c.statIndex[sr.name] = len(c.stats)
		c.stats = append(c.stats, sr)
	}
	return c
}

// SetChampions replaces the champion name-to-id map.
func (c *Catalog) SetChampions(ids map[string]int) {
	if ids != nil {
		c.champions = ids
	}
}

// SetRuneTrees replaces the rune tree catalog.
func (c *Catalog) SetRuneTrees(trees []ddragon.RuneTree) {
	c.trees = trees
}

// MergeStatRunes applies runtime stat shard assignments on top of the
// defaults. Known names keep their position with an updated id; new names are
// appended in sorted order so match precedence stays deterministic.
func (c *Catalog) MergeStatRunes(updates map[string]int) {
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if idx, ok := c.statIndex[name]; ok {
			c.stats[idx].id = updates[name]
			continue
		}
		c.statIndex[name] = len(c.stats)
		c.stats = append(c.stats, statRune{name: name, id: updates[name]})
	}
}

// StatRuneCount returns how many stat shard names are known.
func (c *Catalog) StatRuneCount() int {
	return len(c.stats)
}

// ChampionID resolves an exact champion name to its numeric id.
func (c *Catalog) ChampionID(name string) (int, bool) {
	id, ok := c.champions[name]
	return id, ok
}

// FindRune fuzzy-resolves a rune name. The normalized query must be a
// substring of a candidate's normalized name. Tree runes are searched first
// in catalog order, then stat shards; the first match wins.
func (c *Catalog) FindRune(query string) (RuneMatch, bool) {
	normalized := Normalize(query)
	if normalized == "" {
		return RuneMatch{}, false
	}

	for _, tree := range c.trees {
		for _, slot := range tree.Slots {
			for _, r := range slot.Runes {
				if strings.Contains(Normalize(r.Name), normalized) {
					return RuneMatch{ID: r.ID, TreeID: tree.ID, Name: r.Name}, true
				}
			}
		}
	}

	for _, sr := range c.stats {
		if strings.Contains(Normalize(sr.name), normalized) {
			return RuneMatch{ID: sr.id, Name: sr.name}, true
		}
	}

	return RuneMatch{}, false
}
