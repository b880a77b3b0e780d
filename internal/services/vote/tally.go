// Package vote records voting events and computes their outcomes. Events
// are retained for the whole game so voting patterns can be analyzed.
package vote

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/greygale/moonvale/internal/models"
)

// ErrInvalidCandidate is returned when a vote names someone outside the
// candidate set, such as a dead player. It indicates a logic defect in the
// caller and is never silently ignored.
var ErrInvalidCandidate = errors.New("vote cast for invalid candidate")

// Tally records voting events and computes winners.
type Tally struct {
	results []*models.VoteResult
}

// NewTally creates an empty vote tally.
func NewTally() *Tally {
	return &Tally{}
}

// RecordEvent stores one voting event and computes its result. The winner
// is the candidate with strictly the most votes; when two or more candidates
// share the maximum, the result is a tie with no winner. Ties are a
// first-class outcome - the orchestrator decides what a tie means, the tally
// never breaks one randomly. Votes for names outside candidates fail with
// ErrInvalidCandidate and nothing is recorded.
func (t *Tally) RecordEvent(day, round int, votes []models.Vote, candidates []string) (*models.VoteResult, error) {
	valid := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		valid[c] = true
	}
	for _, v := range votes {
		if v.IsAbstain() {
			continue
		}
		if !valid[v.Candidate] {
			return nil, fmt.Errorf("%w: %s voted for %s", ErrInvalidCandidate, v.Voter, v.Candidate)
		}
	}

	result := &models.VoteResult{
		Day:    day,
		Round:  round,
		Votes:  votes,
		Counts: make(map[string]int),
	}

	for _, v := range votes {
		if !v.IsAbstain() {
			result.Counts[v.Candidate]++
		}
	}

	max := 0
	for _, count := range result.Counts {
		if count > max {
			max = count
		}
	}

	if max > 0 {
		var leaders []string
		for candidate, count := range result.Counts {
			if count == max {
				leaders = append(leaders, candidate)
			}
		}
		sort.Strings(leaders)

		if len(leaders) > 1 {
			result.IsTie = true
			result.TiedCandidates = leaders
		} else {
			result.Winner = leaders[0]
		}
	}

	t.results = append(t.results, result)
	return result, nil
}

// Results returns every recorded voting event in order.
func (t *Tally) Results() []*models.VoteResult {
	return t.results
}

// ByDay returns the voting events recorded on a day.
func (t *Tally) ByDay(day int) []*models.VoteResult {
	var out []*models.VoteResult
	for _, r := range t.results {
		if r.Day == day {
			out = append(out, r)
		}
	}
	return out
}

// VotingPattern returns who the voter has voted for across all events,
// abstentions excluded.
func (t *Tally) VotingPattern(voter string) []string {
	var pattern []string
	for _, r := range t.results {
		for _, v := range r.Votes {
			if v.Voter == voter && !v.IsAbstain() {
				pattern = append(pattern, v.Candidate)
			}
		}
	}
	return pattern
}

// TargetingPattern returns who has voted for the target across all events.
func (t *Tally) TargetingPattern(target string) []string {
	var pattern []string
	for _, r := range t.results {
		pattern = append(pattern, r.VotersFor(target)...)
	}
	return pattern
}

// FormatBreakdown renders a human-readable tally of one voting event.
func FormatBreakdown(result *models.VoteResult) string {
	var b strings.Builder
	b.WriteString("Vote breakdown:\n")

	type entry struct {
		candidate string
		count     int
	}
	entries := make([]entry, 0, len(result.Counts))
	for candidate, count := range result.Counts {
		entries = append(entries, entry{candidate, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].candidate < entries[j].candidate
	})

	for _, e := range entries {
		voters := result.VotersFor(e.candidate)
		fmt.Fprintf(&b, "  %s: %d vote(s) (%s)\n", e.candidate, e.count, strings.Join(voters, ", "))
	}

	if abstainers := result.Abstainers(); len(abstainers) > 0 {
		fmt.Fprintf(&b, "  Abstained: %s\n", strings.Join(abstainers, ", "))
	}

	switch {
	case result.IsTie:
		fmt.Fprintf(&b, "Result: TIE between %s - no one is eliminated\n", strings.Join(result.TiedCandidates, ", "))
	case result.Winner != "":
		fmt.Fprintf(&b, "Result: %s is eliminated with %d vote(s)\n", result.Winner, result.Counts[result.Winner])
	default:
		b.WriteString("Result: no one is eliminated (no votes cast)\n")
	}

	return b.String()
}
