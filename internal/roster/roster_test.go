package roster

import (
	"sort"
	"testing"

	"github.com/DoyleJ11/hoops-draft-backend/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, name string, names map[Position]string) Roster {
	t.Helper()
	r := NewRoster(name)
	for pos, n := range names {
		var err error
		r, err = r.SetPlayer(pos, n)
		require.NoError(t, err)
	}
	return r
}

func allNames(rs ...Roster) []string {
	var out []string
	for _, r := range rs {
		for _, p := range r.Named() {
			out = append(out, p.Name)
		}
	}
	sort.Strings(out)
	return out
}

func TestNewRoster_FiveSlotsInOrder(t *testing.T) {
	r := NewRoster("Banana Tree Hole")
	require.Len(t, r.Players, 5)
	for i, pos := range Positions {
		assert.Equal(t, pos, r.Players[i].Position)
		assert.False(t, r.Players[i].Filled())
	}
	assert.Empty(t, r.Captain)
}

func TestParsePosition(t *testing.T) {
	cases := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{in: "pg", want: PG},
		{in: " SF ", want: SF},
		{in: "c", want: Center},
		{in: "CENTER", want: Center},
		{in: "QB", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePosition(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSetPlayer_ReturnsCopy(t *testing.T) {
	r := NewRoster("one")
	r2, err := r.SetPlayer(SG, "  Kobe ")
	require.NoError(t, err)

	assert.False(t, r.Players[1].Filled(), "input roster must not change")
	assert.Equal(t, "Kobe", r2.Players[1].Name)

	_, err = r.SetPlayer(Position("QB"), "Tom")
	assert.ErrorIs(t, err, ErrUnknownPosition)
}

func TestSetCaptain(t *testing.T) {
	r := build(t, "one", map[Position]string{PG: "Steph"})

	_, err := r.SetCaptain(SG)
	assert.ErrorIs(t, err, ErrEmptySlot)

	r, err = r.SetCaptain(PG)
	require.NoError(t, err)
	assert.Equal(t, "Steph", r.Captain)

	c, ok := r.CaptainPlayer()
	require.True(t, ok)
	assert.Equal(t, Player{Name: "Steph", Position: PG}, c)
}

func TestCaptainPlayer_StaleName(t *testing.T) {
	r := build(t, "one", map[Position]string{PG: "Steph"})
	r.Captain = "Klay"

	_, ok := r.CaptainPlayer()
	assert.False(t, ok)
}

func TestShuffle_ConservesNamesAndPositions(t *testing.T) {
	a := build(t, "one", map[Position]string{PG: "a1", SG: "a2", SF: "a3", PF: "a4", Center: "a5"})
	b := build(t, "two", map[Position]string{PG: "b1", SF: "b3", Center: "b5"})
	a.Captain, b.Captain = "a1", "b5"

	want := allNames(a, b)
	src := random.New(3)
	for i := 0; i < 50; i++ {
		a2, b2 := Shuffle(src, a, b)

		assert.Equal(t, want, allNames(a2, b2))
		for j, pos := range Positions {
			assert.Equal(t, pos, a2.Players[j].Position)
			assert.Equal(t, pos, b2.Players[j].Position)
		}
		assert.Empty(t, a2.Captain)
		assert.Empty(t, b2.Captain)
		assert.Equal(t, "one", a2.Name)
		assert.Equal(t, "two", b2.Name)
	}
}

func TestShuffle_NamesStayWithinPosition(t *testing.T) {
	a := build(t, "one", map[Position]string{PG: "pg-a", Center: "c-a"})
	b := build(t, "two", map[Position]string{PG: "pg-b", Center: "c-b"})

	a2, b2 := Shuffle(random.New(11), a, b)

	pgs := []string{a2.Players[0].Name, b2.Players[0].Name}
	centers := []string{a2.Players[4].Name, b2.Players[4].Name}
	assert.ElementsMatch(t, []string{"pg-a", "pg-b"}, pgs)
	assert.ElementsMatch(t, []string{"c-a", "c-b"}, centers)
}

func TestShuffle_OddCountFavorsFirstRoster(t *testing.T) {
	a := NewRoster("one")
	b := build(t, "two", map[Position]string{PG: "lonely"})

	a2, b2 := Shuffle(random.New(5), a, b)

	assert.Equal(t, "lonely", a2.Players[0].Name)
	assert.False(t, b2.Players[0].Filled())
}

func TestShuffle_EmptyRostersAreNoop(t *testing.T) {
	a, b := NewRoster("one"), NewRoster("two")

	a2, b2 := Shuffle(random.New(1), a, b)

	assert.Equal(t, a, a2)
	assert.Equal(t, b, b2)
}

func TestShuffle_DoesNotMutateInputs(t *testing.T) {
	a := build(t, "one", map[Position]string{PG: "a1", SG: "a2"})
	b := build(t, "two", map[Position]string{PG: "b1", SG: "b2"})
	a.Captain = "a1"
	before := []Roster{a.Clone(), b.Clone()}

	for i := 0; i < 20; i++ {
		Shuffle(random.New(int64(i+1)), a, b)
	}

	assert.Equal(t, before[0], a)
	assert.Equal(t, before[1], b)
}

func TestShuffle_BlankNamesIgnored(t *testing.T) {
	a := NewRoster("one")
	a.Players[2].Name = "   "
	b := build(t, "two", map[Position]string{SF: "Lebron"})

	a2, b2 := Shuffle(random.New(9), a, b)

	assert.Equal(t, "Lebron", a2.Players[2].Name)
	assert.Equal(t, "", b2.Players[2].Name)
}
