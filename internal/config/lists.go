package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

// PickEntry is a single configured pick. In config.json an entry is either a
// bare champion name or an object carrying summoner spells and rune names;
// both decode into this one shape.
type PickEntry struct {
	Champion string
	Spells   []string
	Runes    []string
}

// UnmarshalJSON accepts either "Ahri" or
// {"champion": "Ahri", "spells": [...], "runes": [...]}.
func (e *PickEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		e.Champion = name
		return nil
	}

	var full struct {
		Champion string   `json:"champion"`
		Spells   []string `json:"spells"`
		Runes    []string `json:"runes"`
	}
	if err := json.Unmarshal(data, &full); err != nil {
		return fmt.Errorf("pick entry must be a string or an object: %w", err)
	}

	// Spell names are matched case-insensitively everywhere downstream.
	for i, s := range full.Spells {
		full.Spells[i] = strings.ToLower(s)
	}

	e.Champion = full.Champion
	e.Spells = full.Spells
	e.Runes = full.Runes
	return nil
}

// RoleConfig holds the ordered pick list for one role.
type RoleConfig struct {
	Order []PickEntry `json:"order"`
}

// Lists is the static pick/ban configuration loaded from config.json.
type Lists struct {
	Bans      []string              `json:"bans"`
	Champions map[string]RoleConfig `json:"champions"`
}

// LoadLists reads and decodes the pick/ban configuration file.
func LoadLists(path string) (*Lists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var lists Lists
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for role, rc := range lists.Champions {
		log.Printf("%s: %d picks", role, len(rc.Order))
	}
	log.Printf("Bans: %d", len(lists.Bans))

	return &lists, nil
}

// Validate checks that the configuration can drive a champion select.
// Both the ban list and at least one role's pick list must be non-empty.
func (l *Lists) Validate() error {
	var errs []string

	if len(l.Bans) == 0 {
		errs = append(errs, "bans list is missing or empty")
	}

	hasPicks := false
	for _, rc := range l.Champions {
		if len(rc.Order) > 0 {
			hasPicks = true
			break
		}
	}
	if !hasPicks {
		errs = append(errs, "no role has a non-empty pick order")
	}

	for role, rc := range l.Champions {
		for i, entry := range rc.Order {
			if entry.Champion == "" {
				errs = append(errs, fmt.Sprintf("%s pick %d has no champion name", role, i))
			}
			if len(entry.Spells) > 2 {
				errs = append(errs, fmt.Sprintf("%s pick %q lists more than two spells", role, entry.Champion))
			}
		}
	}

	if len(errs) > 0 {
		log.Println("Config errors:")
		for _, e := range errs {
			log.Printf("  - %s", e)
		}
		return errors.New("configuration validation failed")
	}

	return nil
}

// RolePicks returns the configured pick order for a raw assigned position,
// falling back across roles until a non-empty list is found. An empty result
// means there is nothing to pick.
func (l *Lists) RolePicks(position string) []PickEntry {
	key := RoleKey(position)

	tried := []string{key}
	for _, r := range rolePriority {
		if r != key {
			tried = append(tried, r)
		}
	}

	for _, r := range tried {
		if rc, ok := l.Champions[r]; ok && len(rc.Order) > 0 {
			return rc.Order
		}
	}
	return nil
}

var roleKeys = map[string]string{
	"TOP":     "top",
	"JUNGLE":  "jungle",
	"MIDDLE":  "mid",
	"BOTTOM":  "bot",
	"UTILITY": "utility",
}

var rolePriority = []string{"top", "jungle", "mid", "bot", "utility"}

// RoleKey maps a raw assigned position to a config role key. Unrecognized or
// empty positions fall back to mid.
func RoleKey(position string) string {
	if key, ok := roleKeys[position]; ok {
		return key
	}
	return "mid"
}
