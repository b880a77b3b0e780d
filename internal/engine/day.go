package engine

import (
	"context"
	"fmt"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/llm"
	"github.com/greygale/moonvale/internal/models"
	"github.com/greygale/moonvale/internal/services/conversation"
	"github.com/greygale/moonvale/internal/services/prompt"
	"github.com/greygale/moonvale/internal/services/vote"
)

const abstainOption = "ABSTAIN (don't vote for anyone)"

func (o *Orchestrator) runDay(ctx context.Context) error {
	o.state.DayNumber++
	o.setPhase(game.PhaseDayStart)
	o.notify(&Notification{Kind: KindNarration, Content: fmt.Sprintf("The sun rises on day %d.", o.state.DayNumber)})

	for _, expired := range o.state.Ledger.SweepExpired(o.state.DayNumber) {
		o.logger.Debug("modifier expired", "player", expired.Player, "modifier", expired.Type)
	}

	if err := o.revealBlackboard(ctx); err != nil {
		return err
	}

	if err := o.applyAndResolve(ctx, o.events.OnDayStart(ctx, o.state)); err != nil {
		return err
	}
	if o.state.Over {
		return nil
	}

	o.setPhase(game.PhaseDiscussion)
	o.runDiscussion(ctx)

	o.setPhase(game.PhaseVoting)
	result := o.runVoting(ctx)

	o.setPhase(game.PhaseLynchResolution)
	if err := o.resolveLynch(ctx, result); err != nil {
		return err
	}
	if o.state.Over {
		return nil
	}

	o.setPhase(game.PhaseDayEnd)
	o.state.CheckTeamWin()
	return nil
}

// revealBlackboard publishes last night's anonymous postings to the whole
// village and clears the board. Authorship is never recorded.
func (o *Orchestrator) revealBlackboard(ctx context.Context) error {
	if len(o.blackboard) == 0 {
		return nil
	}

	batch := make([]*models.Effect, 0, len(o.blackboard))
	for _, message := range o.blackboard {
		batch = append(batch, models.RevealInfoEffect(&models.Information{
			Category:   models.InfoGeneral,
			Content:    fmt.Sprintf("The town blackboard reads: %q", message),
			Source:     "blackboard",
			Visibility: models.VisibleToAll(),
		}))
	}
	o.blackboard = nil
	return o.applyAndResolve(ctx, batch)
}

// runDiscussion runs the day's discussion rounds. Speaking order is
// personality-weighted and reshuffled every round. After a haunted player
// speaks, their ghost whispers to them.
func (o *Orchestrator) runDiscussion(ctx context.Context) {
	day := o.state.DayNumber

	for round := 1; round <= o.discussionRounds; round++ {
		for _, speaker := range o.state.Conversation.SpeakingOrder(o.state.AlivePlayers()) {
			heard := o.state.Conversation.VisibleTo(speaker.Name, speaker.Team(), string(game.PhaseDiscussion), &day)

			out, err := o.decider.Speak(ctx, &llm.SpeakInput{
				PlayerName:    speaker.Name,
				SystemContext: o.systemContext(speaker),
				Prompt: prompt.Discussion(round, conversation.FormatContext(heard),
					o.state.Info.BuildContext(speaker.Name, speaker.Team())),
			})
			if err != nil {
				o.logDecisionFailure(speaker.Name, "discussion", err)
				continue
			}

			o.state.Conversation.Record(&models.Statement{
				Speaker:    speaker.Name,
				Content:    out.Statement,
				Thinking:   out.Thinking,
				Round:      round,
				Day:        day,
				Phase:      string(game.PhaseDiscussion),
				Visibility: models.VisibleToAll(),
			})
			o.notify(&Notification{
				Kind:     KindStatement,
				Player:   speaker.Name,
				Content:  out.Statement,
				Thinking: out.Thinking,
			})

			o.ghostWhispers(ctx, speaker, round)
		}
	}
}

// ghostWhispers lets every ghost haunting the speaker whisper to them. Only
// the haunted player hears it.
func (o *Orchestrator) ghostWhispers(ctx context.Context, haunted *models.Player, round int) {
	for _, ghost := range o.state.DeadWithModifier(models.ModifierGhost) {
		mod := o.state.Ledger.Get(ghost.Name, models.ModifierGhost)
		data, ok := mod.Data.(models.HauntData)
		if !ok || data.Target != haunted.Name {
			continue
		}

		out, err := o.decider.Speak(ctx, &llm.SpeakInput{
			PlayerName:    ghost.Name,
			SystemContext: o.systemContext(ghost),
			Prompt: fmt.Sprintf("You are a ghost haunting %s. Only they can hear you. "+
				"What do you whisper? (1 sentence, be eerie and cryptic)", haunted.Name),
		})
		if err != nil {
			o.logDecisionFailure(ghost.Name, "ghost whisper", err)
			continue
		}

		o.state.Conversation.Record(&models.Statement{
			Speaker:    ghost.Name,
			Content:    out.Statement,
			Thinking:   out.Thinking,
			Round:      round,
			Day:        o.state.DayNumber,
			Phase:      string(game.PhaseDiscussion),
			Visibility: models.VisibleToPlayer(haunted.Name),
		})
		o.notify(&Notification{
			Kind:     KindStatement,
			Player:   ghost.Name,
			Content:  fmt.Sprintf("(whispering to %s) %s", haunted.Name, out.Statement),
			Thinking: out.Thinking,
		})
	}
}

// runVoting collects one lynch vote from every living player. Voting for
// yourself is not offered; abstaining always is. A drunk voter's ballot
// goes to a random living player instead of their pick. A failed decision
// becomes an abstention, never a stalled game.
func (o *Orchestrator) runVoting(ctx context.Context) *models.VoteResult {
	day := o.state.DayNumber
	alive := o.state.AlivePlayers()
	candidates := make([]string, len(alive))
	for i, p := range alive {
		candidates[i] = p.Name
	}

	discussion := o.state.Conversation.ByPhase(string(game.PhaseDiscussion), &day)

	var votes []models.Vote
	for _, voter := range alive {
		options := []string{}
		for _, c := range candidates {
			if c != voter.Name {
				options = append(options, c)
			}
		}
		options = append(options, abstainOption)

		ballot := models.Vote{Voter: voter.Name, Candidate: models.Abstain}
		out, err := o.decider.Choose(ctx, &llm.ChooseInput{
			PlayerName:    voter.Name,
			SystemContext: o.systemContext(voter),
			Prompt: prompt.Vote(conversation.FormatContext(discussion),
				o.state.Info.BuildContext(voter.Name, voter.Team())),
			Options: options,
		})
		switch {
		case err != nil:
			o.logDecisionFailure(voter.Name, "lynch vote", err)
		case out.Choice == abstainOption:
			ballot.Thinking = out.Reasoning
		default:
			ballot.Candidate = out.Choice
			ballot.Thinking = out.Reasoning
		}

		if !ballot.IsAbstain() && o.state.Ledger.Has(voter.Name, models.ModifierDrunk) {
			ballot.OriginalCandidate = ballot.Candidate
			ballot.Candidate = dice.Pick(o.state.Roller, candidates)
			o.logger.Info("drunk vote redirected", "voter", voter.Name,
				"intended", ballot.OriginalCandidate, "actual", ballot.Candidate)
		}

		votes = append(votes, ballot)
		o.notify(&Notification{
			Kind:     KindVote,
			Player:   voter.Name,
			Content:  fmt.Sprintf("%s votes for %s", voter.Name, ballot.Candidate),
			Thinking: ballot.Thinking,
		})
	}

	result, err := o.state.Votes.RecordEvent(day, 1, votes, candidates)
	if err != nil {
		// Candidates are the living roster and every ballot was validated
		// against it, so this is a defect worth surfacing loudly.
		o.logger.Error("recording vote", "error", err)
		return nil
	}

	o.notify(&Notification{Kind: KindNarration, Content: vote.FormatBreakdown(result)})
	return result
}

// resolveLynch eliminates the vote's winner, if there is one. The lynched
// player's role is revealed to everyone. Ties and all-abstain votes
// eliminate no one.
func (o *Orchestrator) resolveLynch(ctx context.Context, result *models.VoteResult) error {
	if result == nil {
		return nil
	}

	switch {
	case result.IsTie:
		return o.applyAndResolve(ctx, []*models.Effect{
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoGeneral,
				Content:    "The vote ended in a tie! No one was lynched.",
				Source:     "game",
				Visibility: models.VisibleToAll(),
			}),
		})

	case result.Winner == "":
		return o.applyAndResolve(ctx, []*models.Effect{
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoGeneral,
				Content:    "No votes were cast. No one was lynched.",
				Source:     "game",
				Visibility: models.VisibleToAll(),
			}),
		})

	default:
		lynched := o.state.PlayerByName(result.Winner)
		return o.applyAndResolve(ctx, []*models.Effect{
			models.KillEffect(result.Winner, "town", "", models.CauseLynch),
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoDeath,
				Content:    fmt.Sprintf("%s was lynched by the town and revealed to be %s.", result.Winner, lynched.Role.DisplayName()),
				Source:     "game",
				Visibility: models.VisibleToAll(),
			}),
		})
	}
}
