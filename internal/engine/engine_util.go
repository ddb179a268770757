package engine

import (
	"slices"

	"github.com/DoyleJ11/hoops-draft-backend/internal/random"
	"github.com/DoyleJ11/hoops-draft-backend/internal/roster"
)

func NewEmptyState() State {
	return State{
		Phase: PhaseDrafting,
		Pool:  []roster.Player{},
		Picks: map[Team][]roster.Player{TeamOne: {}, TeamTwo: {}},
	}
}

// Clone copies the pool and pick lists so the result can be changed freely.
func (s State) Clone() State {
	out := s
	out.Pool = slices.Clone(s.Pool)
	out.Picks = make(map[Team][]roster.Player, len(s.Picks))
	for team, picks := range s.Picks {
		out.Picks[team] = slices.Clone(picks)
	}
	return out
}

func (s State) Complete() bool {
	return s.Phase == PhaseDone
}

func DerivePhase(s State) Phase {
	if len(s.Pool) == 0 {
		return PhaseDone
	}
	return PhaseDrafting
}

type Side string

const (
	Heads Side = "HEADS"
	Tails Side = "TAILS"
)

// TossCoin flips a fair coin. Heads goes to TeamOne.
func TossCoin(src random.Source) (Side, Team) {
	if src.Intn(2) == 0 {
		return Heads, TeamOne
	}
	return Tails, TeamTwo
}

func ContainsPlayer(picks []roster.Player, id string) bool {
	return slices.ContainsFunc(picks, func(p roster.Player) bool { return p.ID == id })
}
