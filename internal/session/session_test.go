package session

import (
	"testing"

	"github.com/DoyleJ11/hoops-draft-backend/internal/engine"
	"github.com/DoyleJ11/hoops-draft-backend/internal/random"
	"github.com/DoyleJ11/hoops-draft-backend/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heads always wins the toss for team1 and never reorders a pool.
type heads struct{}

func (heads) Intn(n int) int { return 0 }

func apply(t *testing.T, s State, cmd Command) ([]Event, State) {
	t.Helper()
	events, next, err := Apply(s, heads{}, cmd)
	require.NoError(t, err, "command %s", cmd.Type)
	return events, next
}

// readyTable fills team1 with PG/SG and team2 with PG/SF and names captains.
func readyTable(t *testing.T) State {
	t.Helper()
	s := NewState("BANANA TREE HOLE", "PAGPAG EATER")
	for _, cmd := range []Command{
		{Type: CmdSetPlayer, Team: engine.TeamOne, Position: roster.PG, Name: "Steph"},
		{Type: CmdSetPlayer, Team: engine.TeamOne, Position: roster.SG, Name: "Klay"},
		{Type: CmdSetPlayer, Team: engine.TeamOne, Position: roster.SF, Name: "Kawhi"},
		{Type: CmdSetPlayer, Team: engine.TeamTwo, Position: roster.PG, Name: "Dame"},
		{Type: CmdSetPlayer, Team: engine.TeamTwo, Position: roster.SF, Name: "Lebron"},
		{Type: CmdSetCaptain, Team: engine.TeamOne, Position: roster.SG},
		{Type: CmdSetCaptain, Team: engine.TeamTwo, Position: roster.SF},
	} {
		_, s = apply(t, s, cmd)
	}
	return s
}

func poolID(t *testing.T, s State, name string) string {
	t.Helper()
	require.NotNil(t, s.Draft)
	for _, p := range s.Draft.Pool {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("%s not in pool", name)
	return ""
}

func TestApply_SetPlayerAndCaptain(t *testing.T) {
	s := readyTable(t)

	assert.Equal(t, "Klay", s.Rosters[engine.TeamOne].Captain)
	assert.Equal(t, "Lebron", s.Rosters[engine.TeamTwo].Captain)

	_, _, err := Apply(s, heads{}, Command{Type: CmdSetCaptain, Team: engine.TeamTwo, Position: roster.Center})
	assert.ErrorIs(t, err, roster.ErrEmptySlot)

	_, _, err = Apply(s, heads{}, Command{Type: CmdSetPlayer, Team: "team3", Position: roster.PG, Name: "x"})
	assert.ErrorIs(t, err, engine.ErrUnknownTeam)
}

func TestApply_RenameTeam(t *testing.T) {
	s := NewState("a", "b")

	_, next := apply(t, s, Command{Type: CmdRenameTeam, Team: engine.TeamTwo, Name: "  Splash Bros "})
	assert.Equal(t, "Splash Bros", next.Rosters[engine.TeamTwo].Name)
	assert.Equal(t, "b", s.Rosters[engine.TeamTwo].Name)

	_, _, err := Apply(s, heads{}, Command{Type: CmdRenameTeam, Team: engine.TeamTwo, Name: " "})
	assert.ErrorIs(t, err, ErrInvalidTeamName)
}

func TestApply_ShuffleClearsCaptainsAndToss(t *testing.T) {
	s := readyTable(t)
	_, s = apply(t, s, Command{Type: CmdCoinToss})
	require.NotNil(t, s.Toss)

	events, next := apply(t, s, Command{Type: CmdShuffle})

	require.Len(t, events, 1)
	assert.Equal(t, EvtRostersShuffled, events[0].Type)
	assert.Empty(t, next.Rosters[engine.TeamOne].Captain)
	assert.Empty(t, next.Rosters[engine.TeamTwo].Captain)
	assert.Nil(t, next.Toss)
}

func TestApply_CoinTossNeedsCaptains(t *testing.T) {
	s := NewState("a", "b")
	_, _, err := Apply(s, heads{}, Command{Type: CmdCoinToss})
	assert.ErrorIs(t, err, ErrMissingCaptains)

	s = readyTable(t)
	events, next := apply(t, s, Command{Type: CmdCoinToss})
	require.NotNil(t, next.Toss)
	assert.Equal(t, engine.Heads, next.Toss.Side)
	assert.Equal(t, engine.TeamOne, next.Toss.Winner)
	assert.Equal(t, "BANANA TREE HOLE wins the toss!", events[0].Message)
}

func TestApply_StartDraftNeedsToss(t *testing.T) {
	s := readyTable(t)
	_, _, err := Apply(s, heads{}, Command{Type: CmdStartDraft})
	assert.ErrorIs(t, err, ErrNoCoinToss)
}

func TestApply_FullDraft(t *testing.T) {
	s := readyTable(t)
	_, s = apply(t, s, Command{Type: CmdCoinToss})
	events, s := apply(t, s, Command{Type: CmdStartDraft})

	require.Equal(t, EvtDraftStarted, events[0].Type)
	require.NotNil(t, s.Draft)
	assert.Equal(t, engine.TeamOne, s.Draft.Current)
	assert.Len(t, s.Draft.Pool, 3)

	// Rosters are locked while drafting.
	_, _, err := Apply(s, heads{}, Command{Type: CmdShuffle})
	assert.ErrorIs(t, err, ErrDraftInProgress)

	// team1 takes Steph; Dame is auto-paired to team2.
	events, s = apply(t, s, Command{Type: CmdDraftPlayer, Team: engine.TeamOne, PlayerID: poolID(t, s, "Steph")})
	require.Len(t, events, 2)
	assert.Equal(t, EvtPlayerDrafted, events[0].Type)
	assert.Equal(t, "Steph", events[0].Player.Name)
	assert.Equal(t, EvtAutoPaired, events[1].Type)
	assert.Equal(t, "Dame", events[1].Player.Name)
	assert.Equal(t, engine.TeamTwo, events[1].Team)
	assert.Equal(t, engine.TeamTwo, s.Draft.Current)

	// Kawhi is a SF and team2's captain is a SF.
	kawhi := poolID(t, s, "Kawhi")
	_, _, err = Apply(s, heads{}, Command{Type: CmdDraftPlayer, Team: engine.TeamOne, PlayerID: kawhi})
	assert.ErrorIs(t, err, ErrWrongTurn)

	_, _, err = Apply(s, heads{}, Command{Type: CmdDraftPlayer, PlayerID: kawhi})
	require.ErrorIs(t, err, engine.ErrPositionFilled)
	rej := Reject(err)
	assert.Equal(t, "Position Filled", rej.Title)
	assert.Equal(t, "You already have a SF player!", rej.Message)
}

func TestApply_DraftCompletes(t *testing.T) {
	s := NewState("a", "b")
	for _, cmd := range []Command{
		{Type: CmdSetPlayer, Team: engine.TeamOne, Position: roster.PG, Name: "cap1"},
		{Type: CmdSetPlayer, Team: engine.TeamOne, Position: roster.SG, Name: "x"},
		{Type: CmdSetPlayer, Team: engine.TeamTwo, Position: roster.PG, Name: "cap2"},
		{Type: CmdSetCaptain, Team: engine.TeamOne, Position: roster.PG},
		{Type: CmdSetCaptain, Team: engine.TeamTwo, Position: roster.PG},
		{Type: CmdCoinToss},
		{Type: CmdStartDraft},
	} {
		_, s = apply(t, s, cmd)
	}

	events, s := apply(t, s, Command{Type: CmdDraftPlayer, PlayerID: poolID(t, s, "x")})
	require.Len(t, events, 2)
	assert.Equal(t, EvtDraftCompleted, events[1].Type)
	assert.True(t, s.Draft.Complete())

	_, _, err := Apply(s, heads{}, Command{Type: CmdDraftPlayer, PlayerID: "anything"})
	assert.ErrorIs(t, err, engine.ErrDraftComplete)

	// A finished draft no longer locks the rosters.
	_, _, err = Apply(s, heads{}, Command{Type: CmdShuffle})
	assert.NoError(t, err)
}

func TestApply_ResetDraftKeepsRosters(t *testing.T) {
	s := readyTable(t)
	_, s = apply(t, s, Command{Type: CmdCoinToss})
	_, s = apply(t, s, Command{Type: CmdStartDraft})

	_, next := apply(t, s, Command{Type: CmdResetDraft})

	assert.Nil(t, next.Draft)
	assert.Nil(t, next.Toss)
	assert.Equal(t, s.Rosters, next.Rosters)
}

func TestApply_ErrorsLeaveStateAlone(t *testing.T) {
	s := readyTable(t)

	_, got, err := Apply(s, random.New(1), Command{Type: CmdDraftPlayer, PlayerID: "x"})
	assert.ErrorIs(t, err, ErrNoDraft)
	assert.Equal(t, s, got)

	_, _, err = Apply(s, random.New(1), Command{Type: "Dunk"})
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
}

func TestReject(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{name: "missing captains", err: ErrMissingCaptains, code: "MISSING_CAPTAINS"},
		{name: "empty slot", err: roster.ErrEmptySlot, code: "INVALID_SELECTION"},
		{name: "wrapped", err: &PickError{Position: roster.PG, Err: engine.ErrNotInPool}, code: "NOT_IN_POOL"},
		{name: "unknown", err: assert.AnError, code: "ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, Reject(tc.err).Code)
		})
	}
}
