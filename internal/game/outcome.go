// internal/game/outcome.go
package game

// GAME_STATUS payloads that are not a winner name.
const (
	StatusDraw          = "DRAW"
	StatusOpponentEnded = "OPP_DISCONNECTED"
)

// OutcomeKind classifies how a game ended from the local player's view.
type OutcomeKind int

const (
	OutcomeDraw OutcomeKind = iota
	OutcomeOpponentLeft
	OutcomeWin
	OutcomeLoss
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDraw:
		return "draw"
	case OutcomeOpponentLeft:
		return "opponent_left"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Outcome is the result surfaced to the shell when a game ends.
type Outcome struct {
	Kind   OutcomeKind
	Winner string // empty unless Kind is OutcomeWin or OutcomeLoss
}

// Message is the text shown to the player for each result.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeDraw:
		return "DRAW"
	case OutcomeOpponentLeft:
		return "OPPONENT DID NOT WANT TO WAIT FOR YOU"
	case OutcomeWin:
		return "Winner winner chicken dinner!"
	default:
		return "Better luck next time..."
	}
}

// ClassifyStatus maps a GAME_STATUS payload to an outcome for localName.
func ClassifyStatus(status, localName string) Outcome {
	switch status {
	case StatusDraw:
		return Outcome{Kind: OutcomeDraw}
	case StatusOpponentEnded:
		return Outcome{Kind: OutcomeOpponentLeft}
	}
	if status == localName {
		return Outcome{Kind: OutcomeWin, Winner: status}
	}
	return Outcome{Kind: OutcomeLoss, Winner: status}
}
