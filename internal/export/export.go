package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/DoyleJ11/hoops-draft-backend/internal/discord"
	"github.com/DoyleJ11/hoops-draft-backend/internal/engine"
	"github.com/DoyleJ11/hoops-draft-backend/internal/roster"
	"github.com/DoyleJ11/hoops-draft-backend/internal/session"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const embedColor = 0xF58426

// A Caser is stateful, so each call gets its own.
func upper(s string) string {
	return cases.Upper(language.English).String(s)
}

// Line is one rendered slot of a team.
type Line struct {
	Position roster.Position
	Name     string
	Captain  bool
}

type Team struct {
	Name  string
	Lines []Line
}

// Teams lays out both teams in slot order. Drafted picks win over the
// pre-draft rosters whenever a draft exists.
func Teams(s session.State) []Team {
	var out []Team
	for _, id := range []engine.Team{engine.TeamOne, engine.TeamTwo} {
		r := s.Rosters[id]
		players := r.Players
		if s.Draft != nil {
			players = s.Draft.Picks[id]
		}
		byPos := make(map[roster.Position]string, len(players))
		for _, p := range players {
			if p.Filled() {
				byPos[p.Position] = p.Name
			}
		}

		team := Team{Name: upper(r.Name)}
		for _, pos := range roster.Positions {
			name := byPos[pos]
			team.Lines = append(team.Lines, Line{
				Position: pos,
				Name:     name,
				Captain:  name != "" && name == r.Captain,
			})
		}
		out = append(out, team)
	}
	return out
}

func (l Line) String() string {
	name := l.Name
	if name == "" {
		name = "-"
	}
	if l.Captain {
		name += " (C)"
	}
	return fmt.Sprintf("%s: %s", l.Position, name)
}

// Text renders the clipboard copy of both teams.
func Text(s session.State) string {
	var b strings.Builder
	for i, team := range Teams(s) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(team.Name)
		b.WriteString("\n")
		for _, l := range team.Lines {
			b.WriteString(l.String())
			b.WriteString("\n")
		}
	}
	return b.String()
}

func Embed(s session.State, now time.Time) discord.Embed {
	title := "Team Rosters"
	if s.Draft != nil && s.Draft.Complete() {
		title = "Draft Results"
	} else if s.Draft != nil {
		title = "Draft In Progress"
	}

	embed := discord.Embed{
		Title:     title,
		Color:     embedColor,
		Timestamp: now.UTC().Format(time.RFC3339),
		Footer:    &discord.Footer{Text: "NBA 2K Queueing System"},
	}
	if s.Toss != nil {
		embed.Description = fmt.Sprintf("%s won the coin toss (%s).", upper(s.Rosters[s.Toss.Winner].Name), s.Toss.Side)
	}
	for _, team := range Teams(s) {
		lines := make([]string, 0, len(team.Lines))
		for _, l := range team.Lines {
			lines = append(lines, l.String())
		}
		embed.Fields = append(embed.Fields, discord.Field{
			Name:   team.Name,
			Value:  strings.Join(lines, "\n"),
			Inline: true,
		})
	}
	return embed
}
