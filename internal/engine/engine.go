package engine

import (
	"errors"
	"slices"

	"github.com/DoyleJ11/hoops-draft-backend/internal/random"
	"github.com/DoyleJ11/hoops-draft-backend/internal/roster"
	"github.com/google/uuid"
)

var ErrUnknownTeam = errors.New("unknown team")
var ErrPositionFilled = errors.New("position already filled")
var ErrNotInPool = errors.New("player not in pool")
var ErrDraftComplete = errors.New("draft already completed")

type Team string

const (
	TeamOne Team = "team1"
	TeamTwo Team = "team2"
)

func (t Team) Valid() bool {
	return t == TeamOne || t == TeamTwo
}

func (t Team) Opponent() Team {
	if t == TeamOne {
		return TeamTwo
	}
	return TeamOne
}

type Phase string

const (
	PhaseDrafting Phase = "drafting"
	PhaseDone     Phase = "done"
)

type State struct {
	Phase   Phase                    `json:"phase"`
	Current Team                     `json:"current"`
	Pool    []roster.Player          `json:"pool"`
	Picks   map[Team][]roster.Player `json:"picks"`
}

type NotificationKind string

const (
	NoteNone          NotificationKind = ""
	NoteAutoPaired    NotificationKind = "auto_paired"
	NoteDraftComplete NotificationKind = "draft_complete"
)

// Notification is the single outcome worth surfacing after a pick.
// Player and Position are only set for NoteAutoPaired.
type Notification struct {
	Kind     NotificationKind `json:"kind,omitempty"`
	Player   *roster.Player   `json:"player,omitempty"`
	Position roster.Position  `json:"position,omitempty"`
}

/*
	Start -> Pool = named players minus captains, permuted; captains seed Picks
	DraftPlayer -> pick (+ optional auto-pair to the opponent) -> turn flips
	Pool empty -> PhaseDone, no further picks
*/

// Start builds a draft from two rosters. A captain that is unset, or whose
// name no longer matches a named slot, is skipped and that team starts empty.
func Start(src random.Source, one, two roster.Roster, winner Team) (State, error) {
	if !winner.Valid() {
		return State{}, ErrUnknownTeam
	}

	s := NewEmptyState()
	s.Current = winner

	var pool []roster.Player
	sides := []struct {
		team Team
		r    roster.Roster
	}{{TeamOne, one}, {TeamTwo, two}}
	for _, side := range sides {
		captain, hasCaptain := side.r.CaptainPlayer()
		for _, p := range side.r.Named() {
			p.ID = uuid.NewString()
			if hasCaptain && p.Name == captain.Name && p.Position == captain.Position {
				s.Picks[side.team] = append(s.Picks[side.team], p)
				hasCaptain = false
				continue
			}
			pool = append(pool, p)
		}
	}

	s.Pool = random.Permute(src, pool)
	s.Phase = DerivePhase(s)
	return s, nil
}

// DraftPlayer moves playerID from the pool to the current drafter. If another
// player at the same position is still in the pool and the opponent lacks that
// position, it goes to the opponent in the same move. The turn always flips.
func DraftPlayer(s State, playerID string) (State, Notification, error) {
	if s.Phase == PhaseDone || len(s.Pool) == 0 {
		return s, Notification{}, ErrDraftComplete
	}

	idx := slices.IndexFunc(s.Pool, func(p roster.Player) bool { return p.ID == playerID })
	if idx < 0 {
		return s, Notification{}, ErrNotInPool
	}
	player := s.Pool[idx]

	drafter := s.Current
	opponent := drafter.Opponent()
	if hasPosition(s.Picks[drafter], player.Position) {
		return s, Notification{}, ErrPositionFilled
	}

	newState := s.Clone()
	newState.Pool = slices.Delete(newState.Pool, idx, idx+1)

	var paired *roster.Player
	pairIdx := slices.IndexFunc(newState.Pool, func(p roster.Player) bool { return p.Position == player.Position })
	if pairIdx >= 0 && !hasPosition(newState.Picks[opponent], player.Position) {
		p := newState.Pool[pairIdx]
		paired = &p
		newState.Pool = slices.Delete(newState.Pool, pairIdx, pairIdx+1)
	}

	newState.Picks[drafter] = append(newState.Picks[drafter], player)
	if paired != nil {
		newState.Picks[opponent] = append(newState.Picks[opponent], *paired)
	}

	newState.Current = opponent
	newState.Phase = DerivePhase(newState)

	switch {
	case newState.Phase == PhaseDone:
		return newState, Notification{Kind: NoteDraftComplete}, nil
	case paired != nil:
		return newState, Notification{Kind: NoteAutoPaired, Player: paired, Position: paired.Position}, nil
	default:
		return newState, Notification{}, nil
	}
}

// LegalPicks lists the pool players the current drafter may take. An empty
// result on a non-empty pool means the draft cannot progress.
func LegalPicks(s State) []roster.Player {
	var out []roster.Player
	for _, p := range s.Pool {
		if !hasPosition(s.Picks[s.Current], p.Position) {
			out = append(out, p)
		}
	}
	return out
}

func hasPosition(picks []roster.Player, pos roster.Position) bool {
	return slices.ContainsFunc(picks, func(p roster.Player) bool { return p.Position == pos })
}
