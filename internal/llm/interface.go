package llm

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_decider.go github.com/greygale/moonvale/internal/llm Decider

// Decider produces a player's decisions. The orchestrator treats every call
// as a blocking request/response boundary; a failed call surfaces as
// ErrDecisionUnavailable and the orchestrator substitutes a safe default
// rather than crashing the game.
type Decider interface {
	// Choose picks exactly one of the given options
	Choose(ctx context.Context, input *ChooseInput) (*ChooseOutput, error)

	// Speak produces a free-form public statement with private thinking
	Speak(ctx context.Context, input *SpeakInput) (*SpeakOutput, error)
}
