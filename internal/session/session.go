package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DoyleJ11/hoops-draft-backend/internal/engine"
	"github.com/DoyleJ11/hoops-draft-backend/internal/random"
	"github.com/DoyleJ11/hoops-draft-backend/internal/roster"
)

var ErrInvalidTeamName = errors.New("invalid team name")
var ErrDraftInProgress = errors.New("draft in progress")
var ErrMissingCaptains = errors.New("both teams need a captain")
var ErrNoCoinToss = errors.New("coin toss required")
var ErrNoDraft = errors.New("no draft running")
var ErrWrongTurn = errors.New("invalid turn")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Toss struct {
	Side   engine.Side `json:"side"`
	Winner engine.Team `json:"winner"`
}

// State is everything one table of players needs: the two pre-draft
// rosters, the last coin toss, and the running draft if any.
type State struct {
	Rosters map[engine.Team]roster.Roster `json:"rosters"`
	Toss    *Toss                         `json:"toss,omitempty"`
	Draft   *engine.State                 `json:"draft,omitempty"`
}

type CommandType string

const (
	CmdSetPlayer   CommandType = "SetPlayer"
	CmdSetCaptain  CommandType = "SetCaptain"
	CmdRenameTeam  CommandType = "RenameTeam"
	CmdShuffle     CommandType = "Shuffle"
	CmdCoinToss    CommandType = "CoinToss"
	CmdStartDraft  CommandType = "StartDraft"
	CmdDraftPlayer CommandType = "DraftPlayer"
	CmdResetDraft  CommandType = "ResetDraft"
)

/*
	CmdSetPlayer   -> EvtPlayerSet
	CmdSetCaptain  -> EvtCaptainSet
	CmdRenameTeam  -> EvtTeamRenamed
	CmdShuffle     -> EvtRostersShuffled
	CmdCoinToss    -> EvtCoinTossed
	CmdStartDraft  -> EvtDraftStarted (-> EvtDraftCompleted when only captains were named)
	CmdDraftPlayer -> EvtPlayerDrafted -> EvtAutoPaired or EvtDraftCompleted
	CmdResetDraft  -> EvtDraftReset
*/

type Command struct {
	Type     CommandType
	Team     engine.Team
	Position roster.Position
	Name     string
	PlayerID string
}

type EventType string

const (
	EvtPlayerSet       EventType = "PlayerSet"
	EvtCaptainSet      EventType = "CaptainSet"
	EvtTeamRenamed     EventType = "TeamRenamed"
	EvtRostersShuffled EventType = "RostersShuffled"
	EvtCoinTossed      EventType = "CoinTossed"
	EvtDraftStarted    EventType = "DraftStarted"
	EvtPlayerDrafted   EventType = "PlayerDrafted"
	EvtAutoPaired      EventType = "AutoPaired"
	EvtDraftCompleted  EventType = "DraftCompleted"
	EvtDraftReset      EventType = "DraftReset"
)

type Event struct {
	Type     EventType       `json:"type"`
	Team     engine.Team     `json:"team,omitempty"`
	Player   *roster.Player  `json:"player,omitempty"`
	Position roster.Position `json:"position,omitempty"`
	Message  string          `json:"message,omitempty"`
}

func NewState(team1Name, team2Name string) State {
	return State{
		Rosters: map[engine.Team]roster.Roster{
			engine.TeamOne: roster.NewRoster(team1Name),
			engine.TeamTwo: roster.NewRoster(team2Name),
		},
	}
}

// Apply runs one command against s. On error s is returned untouched.
func Apply(s State, src random.Source, cmd Command) ([]Event, State, error) {
	switch cmd.Type {
	case CmdSetPlayer, CmdSetCaptain, CmdRenameTeam:
		return editRoster(s, cmd)

	case CmdShuffle:
		if s.drafting() {
			return nil, s, ErrDraftInProgress
		}
		newState := s.clone()
		one, two := roster.Shuffle(src, s.Rosters[engine.TeamOne], s.Rosters[engine.TeamTwo])
		newState.Rosters[engine.TeamOne] = one
		newState.Rosters[engine.TeamTwo] = two
		newState.Toss = nil
		return []Event{{Type: EvtRostersShuffled}}, newState, nil

	case CmdCoinToss:
		if s.drafting() {
			return nil, s, ErrDraftInProgress
		}
		if s.Rosters[engine.TeamOne].Captain == "" || s.Rosters[engine.TeamTwo].Captain == "" {
			return nil, s, ErrMissingCaptains
		}
		side, winner := engine.TossCoin(src)
		newState := s.clone()
		newState.Toss = &Toss{Side: side, Winner: winner}
		return []Event{{
			Type:    EvtCoinTossed,
			Team:    winner,
			Message: fmt.Sprintf("%s wins the toss!", s.Rosters[winner].Name),
		}}, newState, nil

	case CmdStartDraft:
		if s.drafting() {
			return nil, s, ErrDraftInProgress
		}
		if s.Toss == nil {
			return nil, s, ErrNoCoinToss
		}
		draft, err := engine.Start(src, s.Rosters[engine.TeamOne], s.Rosters[engine.TeamTwo], s.Toss.Winner)
		if err != nil {
			return nil, s, err
		}
		newState := s.clone()
		newState.Draft = &draft
		events := []Event{{Type: EvtDraftStarted, Team: draft.Current}}
		if draft.Complete() {
			events = append(events, Event{Type: EvtDraftCompleted, Message: "All players have been drafted!"})
		}
		return events, newState, nil

	case CmdDraftPlayer:
		if s.Draft == nil {
			return nil, s, ErrNoDraft
		}
		if cmd.Team != "" && cmd.Team != s.Draft.Current {
			return nil, s, ErrWrongTurn
		}
		drafter := s.Draft.Current
		draft, note, err := engine.DraftPlayer(*s.Draft, cmd.PlayerID)
		if errors.Is(err, engine.ErrPositionFilled) {
			pl, _ := s.poolPlayer(cmd.PlayerID)
			return nil, s, &PickError{Position: pl.Position, Err: err}
		}
		if err != nil {
			return nil, s, err
		}
		picks := draft.Picks[drafter]
		picked := picks[len(picks)-1]
		events := []Event{{Type: EvtPlayerDrafted, Team: drafter, Player: &picked, Position: picked.Position}}
		switch note.Kind {
		case engine.NoteDraftComplete:
			events = append(events, Event{Type: EvtDraftCompleted, Message: "All players have been drafted!"})
		case engine.NoteAutoPaired:
			paired := note.Player
			events = append(events, Event{
				Type:     EvtAutoPaired,
				Team:     drafter.Opponent(),
				Player:   paired,
				Position: note.Position,
				Message:  fmt.Sprintf("%s was automatically drafted to %s as %s.", paired.Name, s.Rosters[drafter.Opponent()].Name, note.Position),
			})
		}
		newState := s.clone()
		newState.Draft = &draft
		return events, newState, nil

	case CmdResetDraft:
		newState := s.clone()
		newState.Draft = nil
		newState.Toss = nil
		return []Event{{Type: EvtDraftReset}}, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func editRoster(s State, cmd Command) ([]Event, State, error) {
	if s.drafting() {
		return nil, s, ErrDraftInProgress
	}
	r, ok := s.Rosters[cmd.Team]
	if !ok {
		return nil, s, engine.ErrUnknownTeam
	}

	var (
		updated roster.Roster
		err     error
		evt     = Event{Team: cmd.Team, Position: cmd.Position}
	)
	switch cmd.Type {
	case CmdSetPlayer:
		updated, err = r.SetPlayer(cmd.Position, cmd.Name)
		evt.Type = EvtPlayerSet
	case CmdSetCaptain:
		updated, err = r.SetCaptain(cmd.Position)
		evt.Type = EvtCaptainSet
	case CmdRenameTeam:
		name := strings.TrimSpace(cmd.Name)
		if name == "" {
			return nil, s, ErrInvalidTeamName
		}
		updated = r.Clone()
		updated.Name = name
		evt = Event{Type: EvtTeamRenamed, Team: cmd.Team}
	}
	if err != nil {
		return nil, s, err
	}

	newState := s.clone()
	newState.Rosters[cmd.Team] = updated
	return []Event{evt}, newState, nil
}

// drafting reports whether a draft is underway. A finished draft stays
// visible but no longer locks the rosters.
func (s State) drafting() bool {
	return s.Draft != nil && !s.Draft.Complete()
}

func (s State) clone() State {
	out := State{Rosters: make(map[engine.Team]roster.Roster, len(s.Rosters))}
	for team, r := range s.Rosters {
		out.Rosters[team] = r.Clone()
	}
	if s.Toss != nil {
		toss := *s.Toss
		out.Toss = &toss
	}
	if s.Draft != nil {
		draft := s.Draft.Clone()
		out.Draft = &draft
	}
	return out
}

func (s State) poolPlayer(id string) (roster.Player, bool) {
	if s.Draft == nil {
		return roster.Player{}, false
	}
	for _, p := range s.Draft.Pool {
		if p.ID == id {
			return p, true
		}
	}
	return roster.Player{}, false
}
