package roster

import (
	"errors"
	"slices"
	"strings"
)

var ErrUnknownPosition = errors.New("unknown position")
var ErrEmptySlot = errors.New("slot has no player")

type Position string

const (
	PG     Position = "PG"
	SG     Position = "SG"
	SF     Position = "SF"
	PF     Position = "PF"
	Center Position = "CENTER"
)

// Positions is the fixed slot order of every roster.
var Positions = []Position{PG, SG, SF, PF, Center}

func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(s)))
	if p == "C" {
		p = Center
	}
	if !slices.Contains(Positions, p) {
		return "", ErrUnknownPosition
	}
	return p, nil
}

// Player is a roster slot or a drafted player. ID is only set once the
// player has entered a draft pool.
type Player struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
}

func (p Player) Filled() bool {
	return strings.TrimSpace(p.Name) != ""
}

type Roster struct {
	Name    string   `json:"name"`
	Players []Player `json:"players"`
	Captain string   `json:"captain,omitempty"`
}

func NewRoster(name string) Roster {
	r := Roster{Name: name, Players: make([]Player, len(Positions))}
	for i, pos := range Positions {
		r.Players[i] = Player{Position: pos}
	}
	return r
}

func (r Roster) Clone() Roster {
	r.Players = slices.Clone(r.Players)
	return r
}

// Named returns the filled slots in slot order.
func (r Roster) Named() []Player {
	var out []Player
	for _, p := range r.Players {
		if p.Filled() {
			out = append(out, p)
		}
	}
	return out
}

func (r Roster) Slot(pos Position) (Player, bool) {
	i := r.slotIndex(pos)
	if i < 0 {
		return Player{}, false
	}
	return r.Players[i], true
}

func (r Roster) SetPlayer(pos Position, name string) (Roster, error) {
	i := r.slotIndex(pos)
	if i < 0 {
		return r, ErrUnknownPosition
	}
	out := r.Clone()
	out.Players[i].Name = strings.TrimSpace(name)
	return out, nil
}

func (r Roster) SetCaptain(pos Position) (Roster, error) {
	p, ok := r.Slot(pos)
	if !ok {
		return r, ErrUnknownPosition
	}
	if !p.Filled() {
		return r, ErrEmptySlot
	}
	out := r.Clone()
	out.Captain = p.Name
	return out, nil
}

// CaptainPlayer finds the captain among the named slots. A stale or unset
// captain simply reports false.
func (r Roster) CaptainPlayer() (Player, bool) {
	if r.Captain == "" {
		return Player{}, false
	}
	for _, p := range r.Players {
		if p.Filled() && p.Name == r.Captain {
			return p, true
		}
	}
	return Player{}, false
}

func (r Roster) slotIndex(pos Position) int {
	for i, p := range r.Players {
		if p.Position == pos {
			return i
		}
	}
	return -1
}
