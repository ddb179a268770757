package session

import (
	"errors"
	"fmt"

	"github.com/DoyleJ11/hoops-draft-backend/internal/engine"
	"github.com/DoyleJ11/hoops-draft-backend/internal/roster"
)

// PickError carries the position of a rejected pick so the message can name it.
type PickError struct {
	Position roster.Position
	Err      error
}

func (e *PickError) Error() string {
	return fmt.Sprintf("%s: %v", e.Position, e.Err)
}

func (e *PickError) Unwrap() error { return e.Err }

// Rejection is what a client is shown when a command fails.
type Rejection struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

var rejections = []struct {
	err error
	rej Rejection
}{
	{engine.ErrPositionFilled, Rejection{Code: "POSITION_FILLED", Title: "Position Filled", Message: "You already have a player at that position!"}},
	{roster.ErrEmptySlot, Rejection{Code: "INVALID_SELECTION", Title: "Invalid Selection", Message: "Please enter a player name first!"}},
	{ErrMissingCaptains, Rejection{Code: "MISSING_CAPTAINS", Title: "Missing Captains", Message: "Please select captains for both teams first!"}},
	{ErrNoCoinToss, Rejection{Code: "NO_COIN_TOSS", Title: "Coin Toss", Message: "Toss the coin before starting the draft."}},
	{ErrDraftInProgress, Rejection{Code: "DRAFT_IN_PROGRESS", Title: "Draft In Progress", Message: "Finish or reset the draft first."}},
	{ErrNoDraft, Rejection{Code: "NO_DRAFT", Title: "No Draft", Message: "Start the draft first."}},
	{ErrWrongTurn, Rejection{Code: "WRONG_TURN", Title: "Not Your Turn", Message: "Wait for the other team to pick."}},
	{engine.ErrDraftComplete, Rejection{Code: "DRAFT_COMPLETE", Title: "Draft Complete", Message: "All players have been drafted!"}},
	{engine.ErrNotInPool, Rejection{Code: "NOT_IN_POOL", Title: "Invalid Selection", Message: "That player is no longer available."}},
	{engine.ErrUnknownTeam, Rejection{Code: "UNKNOWN_TEAM", Title: "Invalid Selection", Message: "Unknown team."}},
	{roster.ErrUnknownPosition, Rejection{Code: "UNKNOWN_POSITION", Title: "Invalid Selection", Message: "Unknown position."}},
	{ErrInvalidTeamName, Rejection{Code: "INVALID_TEAM_NAME", Title: "Invalid Name", Message: "Team name cannot be empty."}},
}

// Reject maps a command error to the dialog a client should show.
func Reject(err error) Rejection {
	var pe *PickError
	if errors.As(err, &pe) && errors.Is(pe.Err, engine.ErrPositionFilled) {
		return Rejection{
			Code:    "POSITION_FILLED",
			Title:   "Position Filled",
			Message: fmt.Sprintf("You already have a %s player!", pe.Position),
		}
	}
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.rej
		}
	}
	return Rejection{Code: "ERROR", Title: "Error", Message: err.Error()}
}
