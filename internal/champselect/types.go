package champselect

import (
	"context"

	"github.com/autopick/internal/lcu"
)

// Lobby phases from the session timer.
const (
	PhasePlanning     = "PLANNING"
	PhaseBanPick      = "BAN_PICK"
	PhaseFinalization = "FINALIZATION"
)

// Action types.
const (
	ActionBan  = "ban"
	ActionPick = "pick"
)

// Session is a point-in-time snapshot of the champion select session as
// pushed by the client.
type Session struct {
	Timer             Timer        `json:"timer"`
	LocalPlayerCellID int          `json:"localPlayerCellId"`
	MyTeam            []TeamMember `json:"myTeam"`
	Actions           [][]Action   `json:"actions"`
}

// Timer carries the lobby phase.
type Timer struct {
	Phase string `json:"phase"`
}

// TeamMember is one ally seat.
type TeamMember struct {
	CellID           int    `json:"cellId"`
	AssignedPosition string `json:"assignedPosition"`
}

// Action is one ban or pick obligation in the session's action groups.
type Action struct {
	ID           int    `json:"id"`
	Type         string `json:"type"`
	ActorCellID  int    `json:"actorCellId"`
	ChampionID   int    `json:"championId"`
	IsInProgress bool   `json:"isInProgress"`
	Completed    bool   `json:"completed"`
}

// ReadyCheck is the matchmaking ready-check state pushed by the client.
type ReadyCheck struct {
	State          string `json:"state"`
	PlayerResponse string `json:"playerResponse"`
}

// GameClient is the slice of the local client API the engine drives. Calls
// return an error when the client rejects the request; the engine treats
// that as a cue to try the next candidate, never as fatal.
type GameClient interface {
	PatchAction(ctx context.Context, actionID, championID int, completed bool) error
	PatchMySelection(ctx context.Context, spell1, spell2 *int) error
	GetPerkPages(ctx context.Context) ([]lcu.PerkPage, error)
	PostPerkPage(ctx context.Context, page lcu.PerkPage) error
	DeletePerkPage(ctx context.Context, id int64) error
	GetGameflowPhase(ctx context.Context) (string, error)
}

// RuneSource provides recommended rune names for entries configured with
// "auto" runes.
type RuneSource interface {
	RecommendedRunes(champion, role string) ([]string, error)
}
