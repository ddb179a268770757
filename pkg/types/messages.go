package types

// Client -> Server (websocket, JSON text frames)
// SetPlayer:
//   team: "team1" | "team2"
//   position: "PG" | "SG" | "SF" | "PF" | "CENTER"
//   name: string // "" clears the slot
//
// SetCaptain:
//   team: "team1" | "team2"
//   position: string // slot must hold a name
//
// RenameTeam:
//   team: "team1" | "team2"
//   name: string
//
// Shuffle: {}    // mixes both rosters by position, clears captains and the toss
// CoinToss: {}   // needs both captains; HEADS -> team1
// StartDraft: {} // needs a toss
//
// DraftPlayer:
//   player_id: string
//   team: "team1" | "team2" // optional, rejected if it is not that team's turn
//
// ResetDraft: {}

// Server -> Client
// StateSnapshot:
//   version: number
//   state:
//     rosters: { team1: Roster, team2: Roster } // Roster = name, players[5] {name, position}, captain
//     toss: { side: "HEADS" | "TAILS", winner: team } // optional
//     draft: { phase: "drafting" | "done", current: team, pool: Player[], picks: { team1: Player[], team2: Player[] } }
//   events: [{ type, team, player, position, message }] // what the last command did
//   legal_picks: string[] // pool ids the current drafter may take
//
// Error:
//   error: { code: string, title: string, message: string }

// HTTP
// POST   /lobbies               -> 201 { code }
// GET    /lobbies/{code}        -> StateSnapshot
// DELETE /lobbies/{code}        -> 204
// GET    /lobbies/{code}/export -> text/plain rosters for the clipboard
// POST   /lobbies/{code}/discord -> 204, 503 without a webhook, 502 if Discord refuses
// GET    /healthz
// GET    /ws?code={code}
