package llm

import (
	"context"

	"github.com/greygale/moonvale/internal/dice"
)

// Random is a Decider that picks uniformly among the options. It exists for
// offline runs and deterministic seeded games; with a seeded roller the
// whole game replays identically.
type Random struct {
	roller dice.Roller
}

// NewRandom creates a dice-driven decider.
func NewRandom(roller dice.Roller) *Random {
	return &Random{roller: roller}
}

// Choose implements Decider.
func (r *Random) Choose(_ context.Context, input *ChooseInput) (*ChooseOutput, error) {
	return &ChooseOutput{
		Choice:    dice.Pick(r.roller, input.Options),
		Reasoning: "Going with a gut feeling.",
	}, nil
}

// Speak implements Decider.
func (r *Random) Speak(_ context.Context, input *SpeakInput) (*SpeakOutput, error) {
	statements := []string{
		"I'm not sure who to trust yet.",
		"Something about last night doesn't add up.",
		"I'll be watching how everyone votes.",
		"We should think carefully before accusing anyone.",
		"Someone here is not who they claim to be.",
	}
	return &SpeakOutput{
		Thinking:  "Keeping my options open.",
		Statement: dice.Pick(r.roller, statements),
	}, nil
}
