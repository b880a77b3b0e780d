package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/greygale/moonvale/internal/common/clock/mocks"
	uuidMocks "github.com/greygale/moonvale/internal/common/uuid/mocks"
	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/events"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/llm"
	llmMocks "github.com/greygale/moonvale/internal/llm/mocks"
	"github.com/greygale/moonvale/internal/models"
	"github.com/greygale/moonvale/internal/services/conversation"
	"github.com/greygale/moonvale/internal/services/effect"
	"github.com/greygale/moonvale/internal/services/information"
	"github.com/greygale/moonvale/internal/services/status"
	"github.com/greygale/moonvale/internal/services/vote"
)

type OrchestratorTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockDecider *llmMocks.MockDecider
	ctx         context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDecider = llmMocks.NewMockDecider(s.mockCtrl)
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// buildGame assembles a state and orchestrator over the given roster with
// no active events and a seeded roller.
func (s *OrchestratorTestSuite) buildGame(players []*models.Player) (*game.State, *Orchestrator) {
	mockClock := clockMocks.NewMockClock(s.mockCtrl)
	mockClock.EXPECT().Now().Return(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()
	mockUUID := uuidMocks.NewMockUUID(s.mockCtrl)
	mockUUID.EXPECT().NewUUID().Return("test-id").AnyTimes()

	roller := dice.New(&dice.Config{Seed: 42})
	state := game.New(&game.Config{
		Players: players,
		Ledger:  status.NewLedger(),
		Info: information.NewStore(&information.Config{
			Clock:         mockClock,
			UUIDGenerator: mockUUID,
		}),
		Conversation: conversation.NewLog(&conversation.Config{
			Clock:         mockClock,
			UUIDGenerator: mockUUID,
			Roller:        roller,
		}),
		Votes:  vote.NewTally(),
		Roller: roller,
	})

	orchestrator := New(&Config{
		State:   state,
		Effects: effect.NewEngine(),
		Events:  events.NewRegistry(&events.RegistryConfig{Roller: roller}),
		Decider: s.mockDecider,
		MaxDays: 1,
	})
	return state, orchestrator
}

// scriptChoices dispatches Choose calls: night actions answer from the
// byPlayer map, lynch votes answer from the votes map (falling back to
// abstention).
func (s *OrchestratorTestSuite) scriptChoices(byPlayer, votes map[string]string) {
	s.mockDecider.EXPECT().Choose(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *llm.ChooseInput) (*llm.ChooseOutput, error) {
			isVote := false
			for _, opt := range input.Options {
				if strings.HasPrefix(opt, "ABSTAIN") {
					isVote = true
					break
				}
			}
			table := byPlayer
			if isVote {
				table = votes
			}
			if choice, ok := table[input.PlayerName]; ok {
				return &llm.ChooseOutput{Choice: choice, Reasoning: "scripted"}, nil
			}
			return &llm.ChooseOutput{Choice: abstainOption, Reasoning: "scripted"}, nil
		}).AnyTimes()
}

func (s *OrchestratorTestSuite) scriptStatements() {
	s.mockDecider.EXPECT().Speak(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *llm.SpeakInput) (*llm.SpeakOutput, error) {
			return &llm.SpeakOutput{Thinking: "hmm", Statement: "I have my suspicions."}, nil
		}).AnyTimes()
}

func (s *OrchestratorTestSuite) TestProtectionCancelsElimination() {
	state, orchestrator := s.buildGame([]*models.Player{
		{Name: "alice", Role: models.RoleAssassin, Alive: true},
		{Name: "bob", Role: models.RoleDoctor, Alive: true},
		{Name: "carol", Role: models.RoleVillager, Alive: true},
		{Name: "dave", Role: models.RoleVillager, Alive: true},
	})
	s.scriptChoices(map[string]string{
		"alice": "carol", // assassin targets carol
		"bob":   "carol", // doctor protects carol
	}, nil)
	s.scriptStatements()

	s.Require().NoError(orchestrator.runNight(s.ctx))

	s.True(state.PlayerByName("carol").Alive)
	s.False(state.Over)

	saved := state.Info.BuildContext("dave", models.TeamVillage)
	s.Contains(saved, "saved by the Doctor")

	feedback := state.Info.BuildContext("alice", models.TeamAssassins)
	s.Contains(feedback, "blocked by the Doctor")
}

func (s *OrchestratorTestSuite) TestArmedTargetKillsAttacker() {
	state, orchestrator := s.buildGame([]*models.Player{
		{Name: "alice", Role: models.RoleAssassin, Alive: true},
		{Name: "carol", Role: models.RoleVillager, Alive: true},
		{Name: "dave", Role: models.RoleVillager, Alive: true},
		{Name: "erin", Role: models.RoleVillager, Alive: true},
	})
	state.Ledger.Add("carol", &models.Modifier{Type: models.ModifierArmed, Source: "event:counter_attack"})

	s.scriptChoices(map[string]string{"alice": "carol"}, nil)
	s.scriptStatements()

	s.Require().NoError(orchestrator.runNight(s.ctx))

	s.True(state.PlayerByName("carol").Alive)
	s.False(state.PlayerByName("alice").Alive)

	// The lone assassin died, so the village wins on the spot.
	s.True(state.Over)
	s.Equal(string(models.TeamVillage), state.Winner)
}

func (s *OrchestratorTestSuite) TestGuardianDiesInWardsPlace() {
	state, orchestrator := s.buildGame([]*models.Player{
		{Name: "alice", Role: models.RoleAssassin, Alive: true},
		{Name: "carol", Role: models.RoleVillager, Alive: true},
		{Name: "dave", Role: models.RoleVillager, Alive: true},
		{Name: "erin", Role: models.RoleVillager, Alive: true},
	})
	expires := 1
	state.Ledger.Add("dave", &models.Modifier{Type: models.ModifierBodyguard, Source: "event:bodyguard"})
	state.Ledger.Add("carol", &models.Modifier{
		Type: models.ModifierGuarded, Source: "event:bodyguard",
		Data: models.GuardData{Guardian: "dave"}, ExpiresOn: &expires,
	})

	s.scriptChoices(map[string]string{"alice": "carol"}, nil)
	s.scriptStatements()

	s.Require().NoError(orchestrator.runNight(s.ctx))

	s.True(state.PlayerByName("carol").Alive)
	s.False(state.PlayerByName("dave").Alive)
	s.False(state.Ledger.Has("dave", models.ModifierBodyguard))
}

func (s *OrchestratorTestSuite) TestDecisionFailuresDegradeToAbstention() {
	state, orchestrator := s.buildGame([]*models.Player{
		{Name: "alice", Role: models.RoleAssassin, Alive: true},
		{Name: "carol", Role: models.RoleVillager, Alive: true},
		{Name: "dave", Role: models.RoleVillager, Alive: true},
		{Name: "erin", Role: models.RoleVillager, Alive: true},
	})

	s.mockDecider.EXPECT().Choose(gomock.Any(), gomock.Any()).
		Return(nil, llm.ErrDecisionUnavailable).AnyTimes()
	s.mockDecider.EXPECT().Speak(gomock.Any(), gomock.Any()).
		Return(nil, llm.ErrDecisionUnavailable).AnyTimes()

	s.Require().NoError(orchestrator.runDay(s.ctx))

	// No decisions landed: everyone abstained, no one was lynched, and the
	// game carried on.
	for _, p := range state.Players {
		s.True(p.Alive)
	}
	s.False(state.Over)
	s.Equal(1, state.DayNumber)

	results := state.Votes.Results()
	s.Require().Len(results, 1)
	s.Len(results[0].Abstainers(), 4)
}

func (s *OrchestratorTestSuite) TestBlackboardPostsAreAnonymousNextDay() {
	state, orchestrator := s.buildGame([]*models.Player{
		{Name: "alice", Role: models.RoleAssassin, Alive: true},
		{Name: "carol", Role: models.RoleVillager, Alive: true},
		{Name: "dave", Role: models.RoleVillager, Alive: true},
		{Name: "erin", Role: models.RoleVillager, Alive: true},
	})
	state.Ledger.Add("erin", &models.Modifier{Type: models.ModifierInsomniac, Source: "event:insomniac"})

	posts := map[string]string{
		"alice": "SKIP",
		"carol": "The quiet ones are never as innocent as they look.",
		"dave":  "skip",
		"erin":  "I heard scratching at my door last night.",
	}
	s.mockDecider.EXPECT().Speak(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *llm.SpeakInput) (*llm.SpeakOutput, error) {
			return &llm.SpeakOutput{Statement: posts[input.PlayerName]}, nil
		}).AnyTimes()
	s.scriptChoices(map[string]string{"alice": "dave"}, nil)

	s.Require().NoError(orchestrator.runNight(s.ctx))

	// Nothing reaches the public record until the next day...
	s.NotContains(state.Info.BuildContext("alice", models.TeamAssassins), "blackboard reads")

	// ...but the insomniac saw who was up, including themselves.
	sighting := state.Info.BuildContext("erin", models.TeamVillage, models.InfoObservation)
	s.Contains(sighting, "posting to the blackboard")
	s.Contains(sighting, "carol")
	s.Contains(sighting, "erin")
	s.NotContains(sighting, "alice")

	s.Require().NoError(orchestrator.runDay(s.ctx))

	// Both skip variants stayed off the board; the rest is public and
	// carries no author.
	public := state.Info.BuildContext("alice", models.TeamAssassins)
	s.Contains(public, `The town blackboard reads: "The quiet ones are never as innocent as they look."`)
	s.Contains(public, `The town blackboard reads: "I heard scratching at my door last night."`)
	s.NotContains(public, `carol:`)
	s.NotContains(public, "SKIP")
}

func (s *OrchestratorTestSuite) TestVigilanteGetsOneShot() {
	state, orchestrator := s.buildGame([]*models.Player{
		{Name: "alice", Role: models.RoleAssassin, Alive: true},
		{Name: "bob", Role: models.RoleVigilante, Alive: true},
		{Name: "carol", Role: models.RoleVillager, Alive: true},
		{Name: "dave", Role: models.RoleVillager, Alive: true},
		{Name: "erin", Role: models.RoleVillager, Alive: true},
		{Name: "frank", Role: models.RoleVillager, Alive: true},
	})

	s.scriptChoices(map[string]string{
		"alice": "carol", // assassin kill
		"bob":   "dave",  // vigilante spends the shot
	}, nil)
	s.scriptStatements()

	s.Require().NoError(orchestrator.runNight(s.ctx))

	s.False(state.PlayerByName("carol").Alive)
	s.False(state.PlayerByName("dave").Alive)
	s.True(state.Ledger.Has("bob", models.ModifierVigilanteUsed))

	// The next night the vigilante is never asked; only the assassin is.
	s.Require().NoError(orchestrator.runNight(s.ctx))
	s.True(state.Ledger.Has("bob", models.ModifierVigilanteUsed))
}

func (s *OrchestratorTestSuite) TestFullGameCycle() {
	state, orchestrator := s.buildGame([]*models.Player{
		{Name: "alice", Role: models.RoleAssassin, Alive: true},
		{Name: "bob", Role: models.RoleAssassin, Alive: true},
		{Name: "carol", Role: models.RoleVillager, Alive: true},
		{Name: "dave", Role: models.RoleVillager, Alive: true},
		{Name: "erin", Role: models.RoleVillager, Alive: true},
		{Name: "frank", Role: models.RoleVillager, Alive: true},
		{Name: "grace", Role: models.RoleVillager, Alive: true},
	})

	s.scriptChoices(
		map[string]string{
			"alice": "carol", // both assassins agree on carol
			"bob":   "carol",
		},
		map[string]string{
			"alice": "frank",
			"bob":   "frank",
			"dave":  "frank",
			"erin":  "dave",
			"frank": "dave",
			// grace abstains via the fallback
		},
	)
	s.scriptStatements()

	s.Require().NoError(orchestrator.Setup(s.ctx))

	outcome, err := orchestrator.Run(s.ctx)
	s.Require().NoError(err)

	// Night 1: carol assassinated. Day 1: frank lynched 3-2.
	s.False(state.PlayerByName("carol").Alive)
	s.False(state.PlayerByName("frank").Alive)
	s.Len(state.AlivePlayers(), 5)

	// 2 assassins vs 3 villagers: no win condition met, and the one-day
	// cap ended the game unresolved.
	s.False(state.Over)
	s.Empty(outcome.Winner)
	s.Equal(1, outcome.Days)

	// The assassins know each other from setup.
	roster := state.Info.BuildContext("bob", models.TeamAssassins)
	s.Contains(roster, "The Assassins are: alice, bob")

	// The lynch revealed frank's role to everyone.
	public := state.Info.BuildContext("grace", models.TeamVillage)
	s.Contains(public, "frank was lynched by the town and revealed to be a Villager.")

	// Votes were recorded with the tally.
	results := state.Votes.Results()
	s.Require().Len(results, 1)
	s.Equal("frank", results[0].Winner)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
