package llm

// ChooseInput contains parameters for a constrained choice
type ChooseInput struct {
	// PlayerName is the deciding player, for logging
	PlayerName string

	// SystemContext is the role/personality/status framing for the player
	SystemContext string

	// Prompt is the specific question being asked
	Prompt string

	// Options are the valid choices; the output choice is always one of
	// these
	Options []string
}

// ChooseOutput contains the result of a constrained choice
type ChooseOutput struct {
	// Choice is one of the input options
	Choice string

	// Reasoning is the player's private explanation
	Reasoning string
}

// SpeakInput contains parameters for a free-form statement
type SpeakInput struct {
	// PlayerName is the speaking player, for logging
	PlayerName string

	// SystemContext is the role/personality/status framing for the player
	SystemContext string

	// Prompt is the situation the player is responding to
	Prompt string
}

// SpeakOutput contains the result of a free-form statement
type SpeakOutput struct {
	// Thinking is the player's private deliberation, shown only in the
	// transcript
	Thinking string

	// Statement is the public message other players see
	Statement string
}
