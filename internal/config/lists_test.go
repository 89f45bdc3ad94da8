package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickEntryDecodeBareString(t *testing.T) {
	var e PickEntry
	require.NoError(t, json.Unmarshal([]byte(`"Ahri"`), &e))

	assert.Equal(t, "Ahri", e.Champion)
	assert.Empty(t, e.Spells)
	assert.Empty(t, e.Runes)
}

func TestPickEntryDecodeObject(t *testing.T) {
	raw := `{"champion": "Ahri", "spells": ["Flash", "IGNITE"], "runes": ["Electrocute"]}`

	var e PickEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, "Ahri", e.Champion)
	assert.Equal(t, []string{"flash", "ignite"}, e.Spells, "spell names are lowercased at decode time")
	assert.Equal(t, []string{"Electrocute"}, e.Runes)
}

func TestPickEntryDecodeRejectsOtherShapes(t *testing.T) {
	var e PickEntry
	assert.Error(t, json.Unmarshal([]byte(`42`), &e))
	assert.Error(t, json.Unmarshal([]byte(`["Ahri"]`), &e))
}

func TestValidate(t *testing.T) {
	valid := &Lists{
		Bans: []string{"Yuumi"},
		Champions: map[string]RoleConfig{
			"mid": {Order: []PickEntry{{Champion: "Ahri"}}},
		},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		lists *Lists
	}{
		{
			name: "empty bans",
			lists: &Lists{
				Champions: map[string]RoleConfig{
					"mid": {Order: []PickEntry{{Champion: "Ahri"}}},
				},
			},
		},
		{
			name:  "no picks anywhere",
			lists: &Lists{Bans: []string{"Yuumi"}},
		},
		{
			name: "entry without champion name",
			lists: &Lists{
				Bans: []string{"Yuumi"},
				Champions: map[string]RoleConfig{
					"mid": {Order: []PickEntry{{Champion: ""}}},
				},
			},
		},
		{
			name: "too many spells",
			lists: &Lists{
				Bans: []string{"Yuumi"},
				Champions: map[string]RoleConfig{
					"mid": {Order: []PickEntry{{
						Champion: "Ahri",
						Spells:   []string{"flash", "ignite", "barrier"},
					}}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.lists.Validate())
		})
	}
}

func TestRoleKey(t *testing.T) {
	assert.Equal(t, "top", RoleKey("TOP"))
	assert.Equal(t, "jungle", RoleKey("JUNGLE"))
	assert.Equal(t, "mid", RoleKey("MIDDLE"))
	assert.Equal(t, "bot", RoleKey("BOTTOM"))
	assert.Equal(t, "utility", RoleKey("UTILITY"))
	assert.Equal(t, "mid", RoleKey(""), "unknown positions default to mid")
	assert.Equal(t, "mid", RoleKey("FILL"))
}

func TestRolePicksFallsBackAcrossRoles(t *testing.T) {
	jungleOnly := &Lists{
		Champions: map[string]RoleConfig{
			"jungle": {Order: []PickEntry{{Champion: "Lee Sin"}}},
			"bot":    {Order: nil}, // configured but empty, must be skipped
		},
	}

	picks := jungleOnly.RolePicks("UTILITY")
	require.Len(t, picks, 1)
	assert.Equal(t, "Lee Sin", picks[0].Champion)

	// Direct hit takes precedence over any fallback.
	both := &Lists{
		Champions: map[string]RoleConfig{
			"mid": {Order: []PickEntry{{Champion: "Ahri"}}},
			"top": {Order: []PickEntry{{Champion: "Darius"}}},
		},
	}
	picks = both.RolePicks("MIDDLE")
	require.Len(t, picks, 1)
	assert.Equal(t, "Ahri", picks[0].Champion)

	assert.Empty(t, (&Lists{}).RolePicks("TOP"))
}

func TestLoadLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"bans": ["Yuumi", "Teemo"],
		"champions": {
			"mid": {"order": ["Ahri", {"champion": "Zed", "spells": ["Flash", "Ignite"]}]}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	lists, err := LoadLists(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Yuumi", "Teemo"}, lists.Bans)
	require.Len(t, lists.Champions["mid"].Order, 2)
	assert.Equal(t, "Ahri", lists.Champions["mid"].Order[0].Champion)
	assert.Equal(t, []string{"flash", "ignite"}, lists.Champions["mid"].Order[1].Spells)
	assert.NoError(t, lists.Validate())
}

func TestLoadListsErrors(t *testing.T) {
	_, err := LoadLists(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadLists(path)
	assert.Error(t, err)
}
