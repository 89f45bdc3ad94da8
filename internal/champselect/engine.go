// Package champselect implements the champion select reaction engine. It
// consumes session snapshots pushed by the client and drives the ban, pick,
// prepick and loadout actions to completion with retry-on-failure semantics.
package champselect

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/autopick/internal/config"
	"github.com/autopick/internal/data"
)

// gameflow phase reported by the client once a game is live.
const phaseInGame = "InGame"

// Engine holds all mutable champion select state. Every event handler runs
// sequentially on the transport's dispatch goroutine, so fields other than
// the status snapshot need no locking.
type Engine struct {
	client     GameClient
	catalog    *data.Catalog
	lists      *config.Lists
	runeSource RuneSource

	obligation       string // "", "ban" or "pick"
	actionID         int
	assignedPosition string
	banCursor        int
	pickCursor       int
	hasPrepicked     bool
	inGame           bool

	// pause rate-limits finalization polling; replaced in tests.
	pause func(time.Duration)

	statusMu sync.RWMutex
	status   Status
}

// Status is a read-only view of the engine for the health endpoint.
type Status struct {
	LobbyPhase       string `json:"lobbyPhase"`
	Obligation       string `json:"obligation,omitempty"`
	AssignedPosition string `json:"assignedPosition,omitempty"`
	HasPrepicked     bool   `json:"hasPrepicked"`
	InGame           bool   `json:"inGame"`
}

// New creates an engine driving the given client with the configured lists.
func New(client GameClient, catalog *data.Catalog, lists *config.Lists) *Engine {
	return &Engine{
		client:  client,
		catalog: catalog,
		lists:   lists,
		pause:   time.Sleep,
	}
}

// SetRuneSource enables recommended-rune lookup for entries configured with
// "auto" runes.
func (e *Engine) SetRuneSource(source RuneSource) {
	e.runeSource = source
}

// ResetCycle clears per-queue state. Called when a new ready check is
// accepted so the next champion select starts fresh.
func (e *Engine) ResetCycle() {
	e.obligation = ""
	e.banCursor = 0
	e.pickCursor = 0
	e.hasPrepicked = false
	e.inGame = false
}

// HandleSession processes one session snapshot: derive the local player's
// assignment and obligation, then run whichever branch the lobby phase calls
// for. A failed attempt advances a cursor and is retried within the same
// event; exhausting a list gives up until the next snapshot.
func (e *Engine) HandleSession(ctx context.Context, sess *Session) {
	lobbyPhase := sess.Timer.Phase

	for _, member := range sess.MyTeam {
		if member.CellID == sess.LocalPlayerCellID {
			e.assignedPosition = member.AssignedPosition
		}
	}
	log.Printf("Assigned position: %s", e.assignedPosition)

	banned := completedBans(sess)

	// The local in-progress action fixes the current obligation. More than
	// one should never happen; when it does the last found wins.
	inProgress := 0
	for _, group := range sess.Actions {
		for _, action := range group {
			if action.ActorCellID == sess.LocalPlayerCellID && action.IsInProgress {
				inProgress++
				e.obligation = action.Type
				e.actionID = action.ID
			}
		}
	}
	if inProgress > 1 {
		log.Printf("Found %d in-progress actions for cell %d, using the last", inProgress, sess.LocalPlayerCellID)
	}

	if lobbyPhase == PhaseBanPick && e.obligation == ActionBan {
		e.runBan(ctx)
	}
	if lobbyPhase == PhaseBanPick && e.obligation == ActionPick {
		e.runPick(ctx, banned)
	}
	if lobbyPhase == PhasePlanning && !e.hasPrepicked {
		e.runPrepick(ctx, sess)
	}
	if lobbyPhase == PhaseFinalization {
		e.runFinalization(ctx)
	}

	e.updateStatus(lobbyPhase)
}

// completedBans collects the champion ids of every completed ban action.
func completedBans(sess *Session) map[int]bool {
	banned := make(map[int]bool)
	for _, group := range sess.Actions {
		for _, action := range group {
			if action.Type == ActionBan && action.Completed {
				banned[action.ChampionID] = true
			}
		}
	}
	return banned
}

// runBan walks the configured ban order from the cursor until the client
// accepts one. No ban is forced through when every candidate is rejected.
func (e *Engine) runBan(ctx context.Context) {
	for e.banCursor < len(e.lists.Bans) {
		name := e.lists.Bans[e.banCursor]

		id, ok := e.catalog.ChampionID(name)
		if !ok {
			log.Printf("Ban %s not found in champion data, trying next", name)
			e.banCursor++
			continue
		}

		if err := e.client.PatchAction(ctx, e.actionID, id, true); err != nil {
			log.Printf("Failed to ban %s: %v", name, err)
			e.banCursor++
			continue
		}

		log.Printf("Banned %s", name)
		break
	}

	e.banCursor = 0
	e.obligation = ""
}

// runPick walks the role's pick candidates from the cursor, skipping
// unresolvable and already-banned champions, until the client accepts one.
// Loadout side effects run best-effort after a successful pick.
func (e *Engine) runPick(ctx context.Context, banned map[int]bool) {
	candidates := e.lists.RolePicks(e.assignedPosition)

	for e.pickCursor < len(candidates) {
		entry := candidates[e.pickCursor]

		id, ok := e.catalog.ChampionID(entry.Champion)
		if !ok {
			log.Printf("Champion %s not found, trying next pick", entry.Champion)
			e.pickCursor++
			continue
		}
		if banned[id] {
			log.Printf("%s is banned, trying next pick", entry.Champion)
			e.pickCursor++
			continue
		}

		if err := e.client.PatchAction(ctx, e.actionID, id, true); err != nil {
			log.Printf("Failed to pick %s: %v", entry.Champion, err)
			e.pickCursor++
			continue
		}

		log.Printf("Picked %s for %s", entry.Champion, e.assignedPosition)
		e.applyLoadout(ctx, entry)
		break
	}

	e.pickCursor = 0
	e.obligation = ""
}

// runPrepick submits a provisional, uncommitted selection for the first pick
// candidate during planning. On failure the prepick latch stays clear so the
// next snapshot retries.
func (e *Engine) runPrepick(ctx context.Context, sess *Session) {
	actionID, found := localPickAction(sess)
	if !found {
		return
	}

	candidates := e.lists.RolePicks(e.assignedPosition)
	if len(candidates) == 0 {
		return
	}
	entry := candidates[0]

	id, ok := e.catalog.ChampionID(entry.Champion)
	if !ok {
		log.Printf("Champion %s not found, skipping pre-pick", entry.Champion)
		return
	}

	if err := e.client.PatchAction(ctx, actionID, id, false); err != nil {
		log.Printf("Failed to pre-pick %s: %v", entry.Champion, err)
		return
	}

	log.Printf("Pre-picked %s for %s", entry.Champion, e.assignedPosition)
	e.hasPrepicked = true
	e.applyLoadout(ctx, entry)
}

// localPickAction finds the local player's pick action in any progress state.
func localPickAction(sess *Session) (int, bool) {
	for _, group := range sess.Actions {
		for _, action := range group {
			if action.ActorCellID == sess.LocalPlayerCellID && action.Type == ActionPick {
				return action.ID, true
			}
		}
	}
	return 0, false
}

// runFinalization polls for the game going live. Monitoring continues across
// games so the engine is ready for the next champion select; the inGame
// latch only suppresses duplicate transitions. Always pauses briefly to
// rate-limit polling.
func (e *Engine) runFinalization(ctx context.Context) {
	phase, err := e.client.GetGameflowPhase(ctx)
	switch {
	case err != nil:
		log.Printf("Waiting for game to start: %v", err)
	case phase == phaseInGame && !e.inGame:
		log.Println("Game started! Continuing to monitor for next champion select...")
		e.inGame = true
	}

	e.pause(2 * time.Second)
}

// applyLoadout runs the post-pick side effects. Each hook is independently
// fallible: a failure is logged and never blocks the other hooks or the
// completed pick.
func (e *Engine) applyLoadout(ctx context.Context, entry config.PickEntry) {
	if len(entry.Spells) > 0 {
		if err := e.setSummonerSpells(ctx, entry.Spells); err != nil {
			log.Printf("Failed to set summoner spells %v: %v", entry.Spells, err)
		}
	}

	if runes := e.runeNames(entry); len(runes) > 0 {
		if err := e.applyRunePage(ctx, runes); err != nil {
			log.Printf("Failed to set runes: %v", err)
		}
	}
}

// runeNames returns the rune list for an entry, resolving "auto" through the
// recommended-rune source when one is configured.
func (e *Engine) runeNames(entry config.PickEntry) []string {
	if len(entry.Runes) != 1 || !strings.EqualFold(entry.Runes[0], "auto") {
		return entry.Runes
	}
	if e.runeSource == nil {
		log.Printf("Runes set to auto for %s but no rune source is configured", entry.Champion)
		return nil
	}

	names, err := e.runeSource.RecommendedRunes(entry.Champion, config.RoleKey(e.assignedPosition))
	if err != nil {
		log.Printf("Failed to fetch recommended runes for %s: %v", entry.Champion, err)
		return nil
	}
	return names
}

// setSummonerSpells resolves spell names against the static table and
// submits them. A single resolved spell only touches slot 1; extras beyond
// two are ignored.
func (e *Engine) setSummonerSpells(ctx context.Context, spells []string) error {
	var ids []int
	for _, name := range spells {
		id, ok := data.SummonerSpellIDs[strings.ToLower(name)]
		if !ok {
			log.Printf("Unknown summoner spell: %s", name)
			continue
		}
		ids = append(ids, id)
	}

	switch {
	case len(ids) == 0:
		return nil
	case len(ids) == 1:
		return e.client.PatchMySelection(ctx, &ids[0], nil)
	default:
		return e.client.PatchMySelection(ctx, &ids[0], &ids[1])
	}
}

// applyRunePage builds a page and installs it, replacing the tool's own page
// or the first deletable one. Delete-then-create is not transactional: a
// create failure after the delete costs the player a page, which is logged
// loudly but recoverable.
func (e *Engine) applyRunePage(ctx context.Context, names []string) error {
	page := BuildRunePage(e.catalog, names)
	if page == nil {
		return errors.New("could not build rune page")
	}

	pages, err := e.client.GetPerkPages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rune pages: %w", err)
	}

	target := pickReplaceablePage(pages)
	if target == nil {
		log.Println("No replaceable rune page, skipping rune setup")
		return nil
	}

	if err := e.client.DeletePerkPage(ctx, target.ID); err != nil {
		return fmt.Errorf("failed to delete page %q: %w", target.Name, err)
	}

	if err := e.client.PostPerkPage(ctx, *page); err != nil {
		return fmt.Errorf("page %q was deleted but creating %q failed: %w", target.Name, page.Name, err)
	}

	log.Printf("Set runes: %s", page.Name)
	return nil
}

// updateStatus publishes a snapshot for the health endpoint.
func (e *Engine) updateStatus(lobbyPhase string) {
	e.statusMu.Lock()
	e.status = Status{
		LobbyPhase:       lobbyPhase,
		Obligation:       e.obligation,
		AssignedPosition: e.assignedPosition,
		HasPrepicked:     e.hasPrepicked,
		InGame:           e.inGame,
	}
	e.statusMu.Unlock()
}

// Status returns the latest published engine snapshot. Safe to call from
// other goroutines.
func (e *Engine) Status() Status {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}
