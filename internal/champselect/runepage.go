package champselect

import (
	"log"

	"github.com/autopick/internal/data"
	"github.com/autopick/internal/lcu"
)

// RunePageName is the reserved name for the page this tool owns. An existing
// page with this name is always the one replaced.
const RunePageName = "AutoPick Runes"

// fallbackSubStyle is the Precision tree, used when no secondary tree can be
// derived from the configured runes.
const fallbackSubStyle = 8000

// BuildRunePage resolves an ordered list of rune names into a rune page.
// Conventionally the list is 4 primary runes followed by 2 secondary or stat
// runes, but any length is tolerated. Unresolvable names are logged and
// skipped. Returns nil when no primary tree can be derived; a page cannot
// exist without one.
func BuildRunePage(catalog *data.Catalog, names []string) *lcu.PerkPage {
	if len(names) == 0 {
		return nil
	}

	var selected []int
	var primary, secondary int

	for i, name := range names {
		match, ok := catalog.FindRune(name)
		if !ok {
			log.Printf("Could not find rune: %s", name)
			continue
		}

		selected = append(selected, match.ID)

		// The first tree-carrying rune in each half fixes that half's tree.
		if i < 4 && match.TreeID != 0 && primary == 0 {
			primary = match.TreeID
		}
		if i >= 4 && i < 6 && match.TreeID != 0 && match.TreeID != primary && secondary == 0 {
			secondary = match.TreeID
		}
	}

	if primary == 0 {
		log.Println("Could not determine primary rune tree")
		return nil
	}
	if secondary == 0 {
		secondary = fallbackSubStyle
	}

	return &lcu.PerkPage{
		Name:            RunePageName,
		PrimaryStyleID:  primary,
		SubStyleID:      secondary,
		SelectedPerkIDs: selected,
		Current:         true,
	}
}

// pickReplaceablePage chooses which existing page to overwrite: the tool's
// own page when present, otherwise the first deletable page in listing
// order. Nil means every page is protected and no page can be written.
func pickReplaceablePage(pages []lcu.PerkPage) *lcu.PerkPage {
	for i := range pages {
		if pages[i].IsDeletable && pages[i].Name == RunePageName {
			return &pages[i]
		}
	}
	for i := range pages {
		if pages[i].IsDeletable {
			return &pages[i]
		}
	}
	return nil
}
