package ddragon

// championFile is the shape of Data Dragon's champion.json. The data map is
// keyed by the champion's internal name ("MissFortune", "MonkeyKing"), which
// is also the name pick/ban lists must use.
type championFile struct {
	Data map[string]championEntry `json:"data"`
}

type championEntry struct {
	Key  string `json:"key"` // numeric id as a string
	Name string `json:"name"`
}

// RuneTree is one tree from runesReforged.json (Precision, Domination, ...).
type RuneTree struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Slots []RuneSlot `json:"slots"`
}

// RuneSlot is one row of runes within a tree.
type RuneSlot struct {
	Runes []Rune `json:"runes"`
}

// Rune is a single selectable rune.
type Rune struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// cdragonPerk is one entry of Community Dragon's perks.json. Only the stat
// shard id range (5001-5013) is consumed.
type cdragonPerk struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
