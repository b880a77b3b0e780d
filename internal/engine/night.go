package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/llm"
	"github.com/greygale/moonvale/internal/models"
	"github.com/greygale/moonvale/internal/services/conversation"
	"github.com/greygale/moonvale/internal/services/prompt"
)

const skipOption = "Skip (don't kill anyone tonight)"

// nightActions collects what each night role decided before resolution.
type nightActions struct {
	assassinTarget   string
	assassinAttacker string
	doctorWard       string
	investigation    *models.Effect
	vigilanteTarget  string
	vigilanteName    string
}

func (o *Orchestrator) runNight(ctx context.Context) error {
	o.setPhase(game.PhaseNightStart)
	o.notify(&Notification{Kind: KindNarration, Content: fmt.Sprintf("Night falls over the village (night %d).", o.state.DayNumber+1)})

	if err := o.applyAndResolve(ctx, o.events.OnNightStart(ctx, o.state)); err != nil {
		return err
	}
	if o.state.Over {
		return nil
	}

	o.setPhase(game.PhaseNightActions)
	o.blackboardPosting(ctx)

	actions := &nightActions{}
	o.assassinAction(ctx, actions)
	o.doctorAction(ctx, actions)
	o.detectiveAction(ctx, actions)
	o.vigilanteAction(ctx, actions)

	o.setPhase(game.PhaseNightResolution)
	if err := o.applyAndResolve(ctx, o.resolveNight(actions)); err != nil {
		return err
	}
	if o.state.Over {
		return nil
	}

	o.setPhase(game.PhaseNightEnd)
	return o.applyAndResolve(ctx, o.events.OnNightEnd(ctx, o.state))
}

// resolveNight turns the collected actions into one effect batch. The
// investigation lands first so the detective learns about a player as they
// were before tonight's deaths.
func (o *Orchestrator) resolveNight(actions *nightActions) []*models.Effect {
	var batch []*models.Effect

	if actions.investigation != nil {
		batch = append(batch, actions.investigation)
	}

	doctorBlocked := false
	if actions.assassinTarget != "" {
		effects, blocked := o.resolveAttack(actions.assassinTarget, actions.assassinAttacker, models.CauseAssassination)
		batch = append(batch, effects...)
		doctorBlocked = doctorBlocked || blocked

		if blocked {
			batch = append(batch, models.RevealInfoEffect(&models.Information{
				Category:   models.InfoAction,
				Content:    fmt.Sprintf("Your assassination attempt on %s was blocked by the Doctor!", actions.assassinTarget),
				Source:     "game",
				Visibility: models.VisibleToTeam(models.TeamAssassins),
			}))
		}
	}

	if actions.vigilanteTarget != "" {
		effects, blocked := o.resolveAttack(actions.vigilanteTarget, actions.vigilanteName, models.CauseVigilante)
		batch = append(batch, effects...)
		doctorBlocked = doctorBlocked || blocked

		if blocked {
			batch = append(batch, models.RevealInfoEffect(&models.Information{
				Category:   models.InfoAction,
				Content:    fmt.Sprintf("Your attack on %s was blocked by the Doctor!", actions.vigilanteTarget),
				Source:     "game",
				Visibility: models.VisibleToPlayer(actions.vigilanteName),
			}))
		}
	}

	if actions.doctorWard != "" {
		if doctor := o.firstAlive(models.RoleDoctor); doctor != nil {
			feedback := fmt.Sprintf("You protected %s, but they were not attacked tonight.", actions.doctorWard)
			if doctorBlocked {
				feedback = fmt.Sprintf("Your protection of %s blocked an attack! You saved their life.", actions.doctorWard)
			}
			batch = append(batch, models.RevealInfoEffect(&models.Information{
				Category:   models.InfoAction,
				Content:    feedback,
				Source:     "game",
				Visibility: models.VisibleToPlayer(doctor.Name),
			}))
		}
	}

	return batch
}

// resolveAttack runs one kill attempt through the defensive layers, in
// precedence order: protection cancels the attack, an armed target turns it
// back on the attacker, a guard takes it for their ward. Returns the
// resulting effects and whether the doctor blocked the attack.
func (o *Orchestrator) resolveAttack(target, attacker, cause string) ([]*models.Effect, bool) {
	victim := o.state.PlayerByName(target)
	if victim == nil || !victim.Alive {
		return nil, false
	}

	if o.state.Ledger.Has(target, models.ModifierProtected) {
		return []*models.Effect{
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoGeneral,
				Content:    "Someone was attacked last night but saved by the Doctor.",
				Source:     "game",
				Visibility: models.VisibleToAll(),
			}),
		}, true
	}

	if o.state.Ledger.Has(target, models.ModifierArmed) {
		striker := o.state.PlayerByName(attacker)
		if striker == nil || !striker.Alive {
			return nil, false
		}
		return []*models.Effect{
			models.KillEffect(striker.Name, "counter_attack", target, models.CauseCounterAttack),
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoDeath,
				Content:    fmt.Sprintf("%s was found dead. They were %s.", striker.Name, striker.Role.DisplayName()),
				Source:     "game",
				Visibility: models.VisibleToAll(),
			}),
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoAction,
				Content:    fmt.Sprintf("You fought off an attacker in the night. %s is dead by your hand.", striker.Name),
				Source:     "game",
				Visibility: models.VisibleToPlayer(target),
			}),
		}, false
	}

	if guard := o.state.Ledger.Get(target, models.ModifierGuarded); guard != nil {
		if data, ok := guard.Data.(models.GuardData); ok {
			guardian := o.state.PlayerByName(data.Guardian)
			if guardian != nil && guardian.Alive {
				return []*models.Effect{
					models.KillEffect(guardian.Name, "event:bodyguard", attacker, models.CauseSacrifice),
					models.RemoveModifierEffect(guardian.Name, models.ModifierBodyguard, "event:bodyguard"),
					models.RemoveModifierEffect(target, models.ModifierGuarded, "event:bodyguard"),
					models.RevealInfoEffect(&models.Information{
						Category:   models.InfoDeath,
						Content:    fmt.Sprintf("%s was found dead. They died protecting %s.", guardian.Name, target),
						Source:     "game",
						Visibility: models.VisibleToAll(),
					}),
				}, false
			}
		}
	}

	return []*models.Effect{
		models.KillEffect(target, cause, attacker, cause),
		models.RevealInfoEffect(&models.Information{
			Category:   models.InfoDeath,
			Content:    fmt.Sprintf("%s was found dead. They were %s.", target, victim.Role.DisplayName()),
			Source:     "game",
			Visibility: models.VisibleToAll(),
		}),
	}, false
}

// blackboardPosting offers every living player, in random order, an
// anonymous message on the town blackboard. Posts are held back until the
// next day starts; insomniacs see who was up posting.
func (o *Orchestrator) blackboardPosting(ctx context.Context) {
	var posters []string
	for _, player := range dice.Shuffle(o.state.Roller, o.state.AlivePlayers()) {
		out, err := o.decider.Speak(ctx, &llm.SpeakInput{
			PlayerName:    player.Name,
			SystemContext: o.systemContext(player),
			Prompt:        prompt.BlackboardPost(o.state.Info.BuildContext(player.Name, player.Team())),
		})
		if err != nil {
			o.logDecisionFailure(player.Name, "blackboard post", err)
			continue
		}

		message := strings.TrimSpace(out.Statement)
		if message == "" || strings.HasPrefix(strings.ToUpper(message), "SKIP") {
			continue
		}
		posters = append(posters, player.Name)
		o.blackboard = append(o.blackboard, message)
	}
	if len(posters) == 0 {
		return
	}
	o.logger.Info("blackboard postings", "count", len(posters))

	var batch []*models.Effect
	for _, insomniac := range o.state.AliveWithModifier(models.ModifierInsomniac) {
		batch = append(batch, models.RevealInfoEffect(&models.Information{
			Category:   models.InfoObservation,
			Content:    fmt.Sprintf("You were up all night and saw %s posting to the blackboard.", strings.Join(posters, ", ")),
			Source:     "blackboard",
			Visibility: models.VisibleToPlayer(insomniac.Name),
		}))
	}
	if len(batch) == 0 {
		return
	}
	if err := o.effects.ApplyBatch(o.state, batch); err != nil {
		o.logger.Error("recording blackboard sightings", "error", err)
	}
}

// assassinAction runs the assassins' private discussion and majority vote.
// Each assassin votes; a plurality picks the target, earliest-voted winning
// a tie.
func (o *Orchestrator) assassinAction(ctx context.Context, actions *nightActions) {
	assassins := o.state.AliveByRole(models.RoleAssassin)
	if len(assassins) == 0 {
		return
	}

	var targets []string
	for _, p := range o.state.AlivePlayers() {
		if p.Role != models.RoleAssassin {
			targets = append(targets, p.Name)
		}
	}
	if len(targets) == 0 {
		return
	}

	if len(assassins) > 1 {
		o.assassinDiscussion(ctx, assassins)
	}

	counts := make(map[string]int)
	var order []string
	for _, assassin := range assassins {
		teammates := teammateNames(assassins, assassin.Name)
		out, err := o.decider.Choose(ctx, &llm.ChooseInput{
			PlayerName:    assassin.Name,
			SystemContext: o.systemContext(assassin),
			Prompt: prompt.NightKill(assassin.Name, prompt.TeamInfo(teammates),
				o.state.Info.BuildContext(assassin.Name, models.TeamAssassins), targets),
			Options: targets,
		})
		if err != nil {
			o.logDecisionFailure(assassin.Name, "assassin vote", err)
			continue
		}
		if counts[out.Choice] == 0 {
			order = append(order, out.Choice)
		}
		counts[out.Choice]++
	}

	best := ""
	for _, candidate := range order {
		if best == "" || counts[candidate] > counts[best] {
			best = candidate
		}
	}
	if best == "" {
		return
	}

	actions.assassinTarget = best
	actions.assassinAttacker = assassins[0].Name
	o.logger.Info("night action", "role", "assassin", "target", best)
}

// assassinDiscussion lets the assassins coordinate privately before voting.
func (o *Orchestrator) assassinDiscussion(ctx context.Context, assassins []*models.Player) {
	const phase = "assassin_discussion"
	day := o.state.DayNumber

	for _, assassin := range assassins {
		heard := o.state.Conversation.VisibleTo(assassin.Name, models.TeamAssassins, phase, &day)
		teamPrompt := fmt.Sprintf(
			"%s\n\nIt's nighttime - coordinate with your team. Who is the biggest threat? Share your thoughts (1-2 sentences).",
			prompt.TeamInfo(teammateNames(assassins, assassin.Name)))
		if len(heard) > 0 {
			teamPrompt += "\n\nWhat your teammates have said:\n" + conversation.FormatContext(heard)
		}

		out, err := o.decider.Speak(ctx, &llm.SpeakInput{
			PlayerName:    assassin.Name,
			SystemContext: o.systemContext(assassin),
			Prompt:        teamPrompt,
		})
		if err != nil {
			o.logDecisionFailure(assassin.Name, "assassin discussion", err)
			continue
		}

		o.state.Conversation.Record(&models.Statement{
			Speaker:    assassin.Name,
			Content:    out.Statement,
			Thinking:   out.Thinking,
			Round:      1,
			Day:        day,
			Phase:      phase,
			Visibility: models.VisibleToTeam(models.TeamAssassins),
		})
		o.notify(&Notification{
			Kind:     KindStatement,
			Player:   assassin.Name,
			Content:  "(to the Assassins) " + out.Statement,
			Thinking: out.Thinking,
		})
	}
}

// doctorAction asks the doctor for tonight's ward and applies the
// protection immediately, expiring after the coming day.
func (o *Orchestrator) doctorAction(ctx context.Context, actions *nightActions) {
	doctor := o.firstAlive(models.RoleDoctor)
	if doctor == nil {
		return
	}

	var targets []string
	for _, p := range o.state.AlivePlayers() {
		if p.Name != o.lastWard[doctor.Name] {
			targets = append(targets, p.Name)
		}
	}
	if len(targets) == 0 {
		return
	}

	out, err := o.decider.Choose(ctx, &llm.ChooseInput{
		PlayerName:    doctor.Name,
		SystemContext: o.systemContext(doctor),
		Prompt:        prompt.Protection(doctor.Name, o.state.Info.BuildContext(doctor.Name, doctor.Team()), targets),
		Options:       targets,
	})
	if err != nil {
		o.logDecisionFailure(doctor.Name, "protection", err)
		return
	}

	// Protection must be on the ledger before attacks resolve against it,
	// so it is applied now rather than queued for the resolution batch.
	expires := o.state.DayNumber + 1
	if err := o.effects.ApplyBatch(o.state, []*models.Effect{
		models.AddModifierEffect(out.Choice, &models.Modifier{
			Type:      models.ModifierProtected,
			Source:    "doctor",
			ExpiresOn: &expires,
		}),
	}); err != nil {
		o.logger.Error("applying protection", "error", err)
		return
	}
	o.lastWard[doctor.Name] = out.Choice
	actions.doctorWard = out.Choice
	o.logger.Info("night action", "role", "doctor", "ward", out.Choice)
}

// detectiveAction asks the detective for a subject and queues the private
// investigation result.
func (o *Orchestrator) detectiveAction(ctx context.Context, actions *nightActions) {
	detective := o.firstAlive(models.RoleDetective)
	if detective == nil {
		return
	}

	var targets []string
	for _, p := range o.state.AlivePlayers() {
		if p.Name != detective.Name {
			targets = append(targets, p.Name)
		}
	}
	if len(targets) == 0 {
		return
	}

	out, err := o.decider.Choose(ctx, &llm.ChooseInput{
		PlayerName:    detective.Name,
		SystemContext: o.systemContext(detective),
		Prompt:        prompt.Investigation(detective.Name, o.state.Info.BuildContext(detective.Name, detective.Team()), targets),
		Options:       targets,
	})
	if err != nil {
		o.logDecisionFailure(detective.Name, "investigation", err)
		return
	}

	subject := o.state.PlayerByName(out.Choice)
	verdict := "are NOT an Assassin"
	if subject != nil && subject.Role == models.RoleAssassin {
		verdict = "ARE an Assassin"
	}
	actions.investigation = models.RevealInfoEffect(&models.Information{
		Category:   models.InfoInvestigation,
		Content:    fmt.Sprintf("You investigated %s. They %s.", out.Choice, verdict),
		Source:     "game",
		Visibility: models.VisibleToPlayer(detective.Name),
	})
	o.logger.Info("night action", "role", "detective", "subject", out.Choice)
}

// vigilanteAction offers the vigilante their one shot, if still unspent.
func (o *Orchestrator) vigilanteAction(ctx context.Context, actions *nightActions) {
	vigilante := o.firstAlive(models.RoleVigilante)
	if vigilante == nil || o.state.Ledger.Has(vigilante.Name, models.ModifierVigilanteUsed) {
		return
	}

	choices := []string{skipOption}
	for _, p := range o.state.AlivePlayers() {
		if p.Name != vigilante.Name {
			choices = append(choices, p.Name)
		}
	}
	if len(choices) == 1 {
		return
	}

	out, err := o.decider.Choose(ctx, &llm.ChooseInput{
		PlayerName:    vigilante.Name,
		SystemContext: o.systemContext(vigilante),
		Prompt:        prompt.VigilanteAction(vigilante.Name, o.state.Info.BuildContext(vigilante.Name, vigilante.Team()), choices),
		Options:       choices,
	})
	if err != nil {
		o.logDecisionFailure(vigilante.Name, "vigilante", err)
		return
	}
	if out.Choice == skipOption {
		o.logger.Info("night action", "role", "vigilante", "target", "none")
		return
	}

	if err := o.effects.ApplyBatch(o.state, []*models.Effect{
		models.AddModifierEffect(vigilante.Name, &models.Modifier{
			Type:   models.ModifierVigilanteUsed,
			Source: "vigilante",
		}),
	}); err != nil {
		o.logger.Error("marking vigilante shot spent", "error", err)
		return
	}
	actions.vigilanteTarget = out.Choice
	actions.vigilanteName = vigilante.Name
	o.logger.Info("night action", "role", "vigilante", "target", out.Choice)
}

func (o *Orchestrator) firstAlive(role models.Role) *models.Player {
	players := o.state.AliveByRole(role)
	if len(players) == 0 {
		return nil
	}
	return players[0]
}

func (o *Orchestrator) logDecisionFailure(player, decision string, err error) {
	if errors.Is(err, llm.ErrDecisionUnavailable) {
		o.logger.Warn("decision unavailable, skipping", "player", player, "decision", decision)
		return
	}
	o.logger.Error("decision failed", "player", player, "decision", decision, "error", err)
}

func teammateNames(team []*models.Player, exclude string) []string {
	var out []string
	for _, p := range team {
		if p.Name != exclude {
			out = append(out, p.Name)
		}
	}
	return out
}

