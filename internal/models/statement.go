package models

import "time"

// Statement is one utterance in the append-only conversation log.
type Statement struct {
	// ID is the unique identifier for the statement
	ID string

	// Speaker is the name of the player who spoke
	Speaker string

	// Content is the public statement text
	Content string

	// Thinking is the speaker's private reasoning; it is recorded for the
	// transcript but never shown to other players
	Thinking string

	// Round is the discussion round number within the phase
	Round int

	// Day is the day number the statement was made on
	Day int

	// Phase is the phase tag (e.g. "day_discussion", "assassin_discussion")
	Phase string

	// Visibility is the rule determining who may see the statement
	Visibility Visibility

	// Timestamp is when the statement was recorded
	Timestamp time.Time
}
