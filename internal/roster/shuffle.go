package roster

import "github.com/DoyleJ11/hoops-draft-backend/internal/random"

// Shuffle pools the named players of both rosters, randomizes them within
// each position, and deals them back out: every slot of a first, then every
// slot of b, drawing from the same per-position queues. With an odd count at
// a position, a always ends up with the extra player.
//
// Slot positions never move. Captains are cleared since the old names may
// have changed teams.
func Shuffle(src random.Source, a, b Roster) (Roster, Roster) {
	queues := make(map[Position][]string, len(Positions))
	total := 0
	for _, r := range []Roster{a, b} {
		for _, p := range r.Players {
			if !p.Filled() {
				continue
			}
			queues[p.Position] = append(queues[p.Position], p.Name)
			total++
		}
	}

	if total == 0 {
		return a.Clone(), b.Clone()
	}

	// Fixed order so a seeded source always gives the same result.
	for _, pos := range Positions {
		if len(queues[pos]) > 1 {
			queues[pos] = random.Permute(src, queues[pos])
		}
	}

	return deal(a, queues), deal(b, queues)
}

func deal(r Roster, queues map[Position][]string) Roster {
	out := r.Clone()
	out.Captain = ""
	for i, p := range out.Players {
		q := queues[p.Position]
		if len(q) == 0 {
			out.Players[i].Name = ""
			continue
		}
		out.Players[i].Name = q[0]
		queues[p.Position] = q[1:]
	}
	return out
}
