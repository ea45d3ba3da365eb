package game

import "github.com/rs/zerolog"

type Outcome string

const (
	OutcomeRegistered      Outcome = "registered"
	OutcomeReset           Outcome = "reset"
	OutcomeBought          Outcome = "bought"
	OutcomeShelled         Outcome = "shelled"
	OutcomeBlocked         Outcome = "blocked" // a banana stopped the shell
	OutcomeShielded        Outcome = "shielded"
	OutcomeMissed          Outcome = "missed"
	OutcomePlaced          Outcome = "placed"
	OutcomeDuplicateHazard Outcome = "duplicate_hazard"
	OutcomePlayed          Outcome = "played"
	OutcomeFinished        Outcome = "finished"
)

// Event reports what an operation did. It is observability data, not state.
type Event struct {
	Op          string       `json:"op"`
	Outcome     Outcome      `json:"outcome"`
	Car         CarID        `json:"car,omitempty"`
	Target      CarID        `json:"target,omitempty"`
	Amount      uint64       `json:"amount,omitempty"`
	Cost        uint64       `json:"cost,omitempty"`
	Position    uint64       `json:"position"`
	Turns       uint64       `json:"turns"`
	TurnsPlayed uint64       `json:"turns_played,omitempty"`
	Records     []TurnRecord `json:"records,omitempty"`
}

// TurnRecord is one delegated turn inside a play operation.
type TurnRecord struct {
	Turn     uint64 `json:"turn"`
	Car      CarID  `json:"car"`
	Action   Action `json:"action"`
	Purchase *Event `json:"purchase,omitempty"`
	Skipped  string `json:"skipped,omitempty"` // why the action was not applied
}

func (e Event) MarshalZerologObject(z *zerolog.Event) {
	z.Str("op", e.Op).
		Str("outcome", string(e.Outcome)).
		Uint64("turns", e.Turns)
	if e.Car != "" {
		z.Str("car", string(e.Car))
	}
	if e.Target != "" {
		z.Str("target", string(e.Target))
	}
	if e.Amount > 0 {
		z.Uint64("amount", e.Amount)
	}
	if e.Cost > 0 {
		z.Uint64("cost", e.Cost)
	}
	if e.Op == OpBuyBanana || e.Outcome == OutcomeBlocked {
		z.Uint64("position", e.Position)
	}
	if e.Op == OpPlay {
		z.Uint64("turns_played", e.TurnsPlayed)
	}
}

const (
	OpRegister = "register"
	OpReset    = "reset"
	OpPlay     = "play"

	OpBuyAccelerate = "buy_accelerate"
	OpBuyShell      = "buy_shell"
	OpBuySuperShell = "buy_super_shell"
	OpBuyBanana     = "buy_banana"
	OpBuyShield     = "buy_shield"
)
