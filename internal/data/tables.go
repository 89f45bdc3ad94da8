// Package data holds the reference maps and static game tables AutoPick
// resolves names against.
package data

// SummonerSpellIDs maps lowercase summoner spell names to their client ids.
var SummonerSpellIDs = map[string]int{
	"barrier":  21,
	"cleanse":  1,
	"exhaust":  3,
	"flash":    4,
	"ghost":    6,
	"heal":     7,
	"ignite":   14,
	"smite":    11,
	"teleport": 12,
	"clarity":  13,
	"mark":     32,
}

// statRune is a stat shard lookup entry. Order matters: fuzzy matching walks
// these in sequence and the first hit wins.
type statRune struct {
	name string
	id   int
}

// defaultStatRunes seed the catalog so rune pages still resolve when the
// Community Dragon fetch fails. Runtime updates override ids in place and
// append unknown names; nothing is ever removed.
var defaultStatRunes = []statRune{
	// Offense slot
	{"adaptive force", 5008},
	{"attack speed", 5005},
	{"ability haste", 5007},

	// Flex slot
	{"adaptive force flex", 5008},
	{"movement speed", 5010},
	{"health scaling", 5001},

	// Defense slot
	{"health", 5011},
	{"tenacity", 5013},
	{"health scaling def", 5001},

	// Legacy shards kept for old configs
	{"armor", 5002},
	{"magic resist", 5003},
	{"armor mr", 5012},
}
