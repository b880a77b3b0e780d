package models

// Abstain is the candidate name recorded when a voter declines to vote.
const Abstain = "ABSTAIN"

// Vote is a single (voter, candidate) pair in one voting event.
type Vote struct {
	// Voter is the name of the player casting the vote
	Voter string

	// Candidate is the name of the player voted for, or Abstain
	Candidate string

	// OriginalCandidate is set when a modifier redirected the vote (e.g.
	// drunk); empty when the vote landed where it was aimed
	OriginalCandidate string

	// Thinking is the voter's private reasoning
	Thinking string
}

// IsAbstain reports whether the vote is an abstention.
func (v Vote) IsAbstain() bool {
	return v.Candidate == Abstain
}

// WasRedirected reports whether a modifier moved the vote off its intended
// candidate.
func (v Vote) WasRedirected() bool {
	return v.OriginalCandidate != "" && v.OriginalCandidate != v.Candidate
}

// VoteResult is the computed outcome of one voting event. Ties are a
// first-class result: when two or more candidates share the maximum count,
// IsTie is true and Winner is empty, and the orchestrator decides policy.
type VoteResult struct {
	// Day is the day number of the voting event
	Day int

	// Round is the vote round number within the day
	Round int

	// Votes is the full vote set for the event
	Votes []Vote

	// Counts maps candidate name to vote count, abstentions excluded
	Counts map[string]int

	// Winner is the candidate with strictly the most votes, or empty on a
	// tie or when everyone abstained
	Winner string

	// IsTie is true when two or more candidates share the maximum count
	IsTie bool

	// TiedCandidates lists the candidates sharing the maximum count when
	// IsTie is true
	TiedCandidates []string
}

// VotesFor returns the votes cast for the given candidate.
func (r *VoteResult) VotesFor(candidate string) []Vote {
	var votes []Vote
	for _, v := range r.Votes {
		if v.Candidate == candidate {
			votes = append(votes, v)
		}
	}
	return votes
}

// VotersFor returns the names of players who voted for the given candidate.
func (r *VoteResult) VotersFor(candidate string) []string {
	var voters []string
	for _, v := range r.Votes {
		if v.Candidate == candidate {
			voters = append(voters, v.Voter)
		}
	}
	return voters
}

// Abstainers returns the names of players who abstained.
func (r *VoteResult) Abstainers() []string {
	var names []string
	for _, v := range r.Votes {
		if v.IsAbstain() {
			names = append(names, v.Voter)
		}
	}
	return names
}
