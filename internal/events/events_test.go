package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/greygale/moonvale/internal/common/clock/mocks"
	uuidMocks "github.com/greygale/moonvale/internal/common/uuid/mocks"
	diceMocks "github.com/greygale/moonvale/internal/dice/mocks"
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

type EventsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockRoller  *diceMocks.MockRoller
	mockDecider *llmMocks.MockDecider
	state       *game.State
	effects     *effect.Engine
	ctx         context.Context
}

func (s *EventsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockDecider = llmMocks.NewMockDecider(s.mockCtrl)
	s.effects = effect.NewEngine()
	s.ctx = context.Background()

	mockClock := clockMocks.NewMockClock(s.mockCtrl)
	mockClock.EXPECT().Now().Return(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()
	mockUUID := uuidMocks.NewMockUUID(s.mockCtrl)
	mockUUID.EXPECT().NewUUID().Return("test-id").AnyTimes()

	s.state = game.New(&game.Config{
		Players: []*models.Player{
			{Name: "alice", Role: models.RoleAssassin, Alive: true},
			{Name: "bob", Role: models.RoleDoctor, Alive: true},
			{Name: "carol", Role: models.RoleVillager, Alive: true},
			{Name: "dave", Role: models.RoleVillager, Alive: true},
			{Name: "erin", Role: models.RoleVillager, Alive: true},
		},
		Ledger: status.NewLedger(),
		Info: information.NewStore(&information.Config{
			Clock:         mockClock,
			UUIDGenerator: mockUUID,
		}),
		Conversation: conversation.NewLog(&conversation.Config{
			Clock:         mockClock,
			UUIDGenerator: mockUUID,
			Roller:        s.mockRoller,
		}),
		Votes:  vote.NewTally(),
		Roller: s.mockRoller,
	})
}

func (s *EventsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *EventsTestSuite) apply(effects []*models.Effect) {
	s.Require().NoError(s.effects.ApplyBatch(s.state, effects))
}

func (s *EventsTestSuite) kill(name string) {
	s.apply([]*models.Effect{models.KillEffect(name, "test", "", models.CauseAssassination)})
}

func (s *EventsTestSuite) TestSetupSkipsAssassinsAndClaimedVillagers() {
	s.state.Ledger.Add("bob", &models.Modifier{Type: models.ModifierJester, Source: "event:jester"})

	// Eligible villagers are carol, dave, erin; index 1 picks dave.
	s.mockRoller.EXPECT().Intn(3).Return(1)

	effects := NewDrunk().Setup(s.state)
	s.Require().Len(effects, 1)
	s.Equal("dave", effects[0].Target)
	s.Equal(models.ModifierDrunk, effects[0].Modifier.Type)
}

func (s *EventsTestSuite) TestJesterWinsWhenLynched() {
	s.state.Ledger.Add("carol", &models.Modifier{Type: models.ModifierJester, Source: "event:jester"})
	carol := s.state.PlayerByName("carol")

	jester := NewJester()
	effects := jester.OnPlayerEliminated(s.ctx, s.state, carol, models.CauseLynch)
	s.Require().Len(effects, 2)

	s.apply(effects)
	s.True(s.state.Over)
	s.Equal("carol", s.state.Winner)
}

func (s *EventsTestSuite) TestJesterKilledAtNightDoesNotWin() {
	s.state.Ledger.Add("carol", &models.Modifier{Type: models.ModifierJester, Source: "event:jester"})
	carol := s.state.PlayerByName("carol")

	s.Empty(NewJester().OnPlayerEliminated(s.ctx, s.state, carol, models.CauseAssassination))
}

func (s *EventsTestSuite) TestLoversHeartbreakIsDelayedOneNight() {
	lovers := NewLovers()
	s.state.Ledger.Add("carol", &models.Modifier{
		Type: models.ModifierLover, Source: "event:lovers", Data: models.LoverData{Partner: "dave"},
	})
	s.state.Ledger.Add("dave", &models.Modifier{
		Type: models.ModifierLover, Source: "event:lovers", Data: models.LoverData{Partner: "carol"},
	})

	s.kill("carol")
	s.apply(lovers.OnPlayerEliminated(s.ctx, s.state, s.state.PlayerByName("carol"), models.CauseAssassination))

	// Heartbreak pending but not yet armed: the same night's end does nothing.
	s.Empty(lovers.OnNightEnd(s.ctx, s.state))
	s.True(s.state.PlayerByName("dave").Alive)

	// The next night arms it; its end executes it.
	lovers.OnNightStart(s.ctx, s.state)
	effects := lovers.OnNightEnd(s.ctx, s.state)
	s.Require().NotEmpty(effects)
	s.apply(effects)
	s.False(s.state.PlayerByName("dave").Alive)
}

func (s *EventsTestSuite) TestZombieRisesAndAttacks() {
	zombie := NewZombie()
	s.state.Ledger.Add("carol", &models.Modifier{Type: models.ModifierInfected, Source: "event:zombie"})

	s.kill("carol")
	s.apply(zombie.OnPlayerEliminated(s.ctx, s.state, s.state.PlayerByName("carol"), models.CauseLynch))
	s.True(s.state.Ledger.Has("carol", models.ModifierPendingRise))

	s.apply(zombie.OnNightStart(s.ctx, s.state))
	s.False(s.state.Ledger.Has("carol", models.ModifierPendingRise))
	s.True(s.state.Ledger.Has("carol", models.ModifierZombie))

	// Victims are the four living non-infected players; index 0 is alice.
	s.mockRoller.EXPECT().Intn(4).Return(0)
	effects := zombie.OnNightEnd(s.ctx, s.state)
	s.Require().NotEmpty(effects)
	s.apply(effects)

	alice := s.state.PlayerByName("alice")
	s.False(alice.Alive)
	s.True(s.state.Ledger.Has("alice", models.ModifierInfected))
}

func (s *EventsTestSuite) TestGhostHauntsChosenPlayer() {
	ghost := NewGhost(&GhostConfig{Decider: s.mockDecider})
	s.kill("carol")
	carol := s.state.PlayerByName("carol")

	s.mockRoller.EXPECT().Chance(ghostChance).Return(true)
	s.mockDecider.EXPECT().Choose(gomock.Any(), gomock.Any()).Return(&llm.ChooseOutput{Choice: "dave"}, nil)

	effects := ghost.OnPlayerEliminated(s.ctx, s.state, carol, models.CauseAssassination)
	s.Require().NotEmpty(effects)
	s.apply(effects)

	mod := s.state.Ledger.Get("carol", models.ModifierGhost)
	s.Require().NotNil(mod)
	s.Equal(models.HauntData{Target: "dave"}, mod.Data)
}

func (s *EventsTestSuite) TestGhostChanceCanMiss() {
	ghost := NewGhost(&GhostConfig{Decider: s.mockDecider})
	s.kill("carol")

	s.mockRoller.EXPECT().Chance(ghostChance).Return(false)
	s.Empty(ghost.OnPlayerEliminated(s.ctx, s.state, s.state.PlayerByName("carol"), models.CauseAssassination))
}

func (s *EventsTestSuite) TestPriestResurrectsOnce() {
	priest := NewPriest(&PriestConfig{Decider: s.mockDecider})
	s.state.Ledger.Add("bob", &models.Modifier{
		Type: models.ModifierPriest, Source: "event:priest",
		Data: models.PriestData{ResurrectionsAvailable: 1},
	})
	s.kill("carol")

	s.mockDecider.EXPECT().Choose(gomock.Any(), gomock.Any()).Return(&llm.ChooseOutput{Choice: "carol"}, nil)

	effects := priest.OnDayStart(s.ctx, s.state)
	s.Require().NotEmpty(effects)
	s.apply(effects)

	s.True(s.state.PlayerByName("carol").Alive)

	// The power is spent; another death offers nothing.
	s.kill("dave")
	s.Empty(priest.OnDayStart(s.ctx, s.state))
}

func (s *EventsTestSuite) TestPriestCanSaveThePower() {
	priest := NewPriest(&PriestConfig{Decider: s.mockDecider})
	s.state.Ledger.Add("bob", &models.Modifier{
		Type: models.ModifierPriest, Source: "event:priest",
		Data: models.PriestData{ResurrectionsAvailable: 1},
	})
	s.kill("carol")

	s.mockDecider.EXPECT().Choose(gomock.Any(), gomock.Any()).Return(&llm.ChooseOutput{Choice: saveThePower}, nil)

	s.Empty(priest.OnDayStart(s.ctx, s.state))
	s.False(s.state.PlayerByName("carol").Alive)

	// Still available next day.
	data := s.state.Ledger.Get("bob", models.ModifierPriest).Data.(models.PriestData)
	s.Equal(1, data.ResurrectionsAvailable)
}

func (s *EventsTestSuite) TestSuicidalRollsEachNight() {
	suicidal := NewSuicidal()
	s.state.Ledger.Add("carol", &models.Modifier{Type: models.ModifierSuicidal, Source: "event:suicidal"})

	s.mockRoller.EXPECT().Chance(suicideChance).Return(false)
	s.Empty(suicidal.OnNightEnd(s.ctx, s.state))

	s.mockRoller.EXPECT().Chance(suicideChance).Return(true)
	effects := suicidal.OnNightEnd(s.ctx, s.state)
	s.Require().NotEmpty(effects)
	s.apply(effects)
	s.False(s.state.PlayerByName("carol").Alive)
}

func (s *EventsTestSuite) TestBodyguardGuardsChosenWard() {
	bodyguard := NewBodyguard(&BodyguardConfig{Decider: s.mockDecider})
	s.state.Ledger.Add("dave", &models.Modifier{Type: models.ModifierBodyguard, Source: "event:bodyguard"})

	s.mockDecider.EXPECT().Choose(gomock.Any(), gomock.Any()).Return(&llm.ChooseOutput{Choice: "carol"}, nil)

	effects := bodyguard.OnNightStart(s.ctx, s.state)
	s.Require().Len(effects, 1)
	s.apply(effects)

	guard := s.state.Ledger.Get("carol", models.ModifierGuarded)
	s.Require().NotNil(guard)
	s.Equal(models.GuardData{Guardian: "dave"}, guard.Data)
	s.Require().NotNil(guard.ExpiresOn)
	s.Equal(1, *guard.ExpiresOn)
}

func (s *EventsTestSuite) TestRegistryFansOutInOrder() {
	registry := NewRegistry(&RegistryConfig{Roller: s.mockRoller})
	registry.Register(NewJester())
	registry.Register(NewDrunk())

	s.Empty(registry.Active())
	s.True(registry.Activate("Jester Mode"))
	s.False(registry.Activate("Nonsense Mode"))
	s.Require().Len(registry.Active(), 1)
	s.Equal("Jester Mode", registry.Active()[0].Name())
}

func (s *EventsTestSuite) TestRegistryChaosActivation() {
	registry := NewRegistry(&RegistryConfig{Roller: s.mockRoller})
	registry.Register(NewJester())
	registry.Register(NewDrunk())
	registry.Activate("Jester Mode")

	// Only the inactive event is rolled.
	s.mockRoller.EXPECT().Chance(activationChance).Return(true)

	activated := registry.ActivateChaos()
	s.Require().Len(activated, 1)
	s.Equal("Drunk Mode", activated[0].Name())
	s.Len(registry.Active(), 2)
}

func TestEventsTestSuite(t *testing.T) {
	suite.Run(t, new(EventsTestSuite))
}
