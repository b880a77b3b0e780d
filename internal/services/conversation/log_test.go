package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/greygale/moonvale/internal/common/clock/mocks"
	uuidMocks "github.com/greygale/moonvale/internal/common/uuid/mocks"
	diceMocks "github.com/greygale/moonvale/internal/dice/mocks"
	"github.com/greygale/moonvale/internal/models"
)

type LogTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *diceMocks.MockRoller
	log        *Log
}

func (s *LogTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())

	mockClock := clockMocks.NewMockClock(s.mockCtrl)
	mockClock.EXPECT().Now().Return(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()
	mockUUID := uuidMocks.NewMockUUID(s.mockCtrl)
	mockUUID.EXPECT().NewUUID().Return("test-id").AnyTimes()
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)

	s.log = NewLog(&Config{
		Clock:         mockClock,
		UUIDGenerator: mockUUID,
		Roller:        s.mockRoller,
	})
}

func (s *LogTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *LogTestSuite) record(speaker, content, phase string, day int, visibility models.Visibility) {
	s.log.Record(&models.Statement{
		Speaker:    speaker,
		Content:    content,
		Round:      1,
		Day:        day,
		Phase:      phase,
		Visibility: visibility,
	})
}

func (s *LogTestSuite) TestRecentReturnsLastNOldestFirst() {
	for _, content := range []string{"one", "two", "three"} {
		s.record("alice", content, "discussion", 1, models.VisibleToAll())
	}
	s.record("bob", "noise", "discussion", 1, models.VisibleToAll())

	recent := s.log.Recent("alice", 2)
	s.Require().Len(recent, 2)
	s.Equal("two", recent[0].Content)
	s.Equal("three", recent[1].Content)
}

func (s *LogTestSuite) TestVisibleToExcludesOwnStatements() {
	day := 1
	s.record("alice", "mine", "discussion", day, models.VisibleToAll())
	s.record("bob", "theirs", "discussion", day, models.VisibleToAll())

	visible := s.log.VisibleTo("alice", models.TeamVillage, "discussion", &day)
	s.Require().Len(visible, 1)
	s.Equal("bob", visible[0].Speaker)
}

func (s *LogTestSuite) TestTeamVisibilityRestrictsStatements() {
	day := 0
	s.record("alice", "kill the detective", "assassin_discussion", day, models.VisibleToTeam(models.TeamAssassins))

	s.Len(s.log.VisibleTo("bob", models.TeamAssassins, "assassin_discussion", &day), 1)
	s.Empty(s.log.VisibleTo("carol", models.TeamVillage, "assassin_discussion", &day))
}

func (s *LogTestSuite) TestByPhaseFiltersDay() {
	dayOne, dayTwo := 1, 2
	s.record("alice", "day one talk", "discussion", dayOne, models.VisibleToAll())
	s.record("alice", "day two talk", "discussion", dayTwo, models.VisibleToAll())

	s.Len(s.log.ByPhase("discussion", &dayOne), 1)
	s.Len(s.log.ByPhase("discussion", nil), 2)
}

func (s *LogTestSuite) TestSpeakingOrderWeightsPersonality() {
	players := []*models.Player{
		{Name: "quiet", Personality: "A timid and reserved farmer", Alive: true},
		{Name: "loud", Personality: "A bold, aggressive blacksmith", Alive: true},
	}

	// Identical base rolls: the assertive +0.3 and reserved -0.3 decide.
	s.mockRoller.EXPECT().Float64().Return(0.5).Times(2)

	order := s.log.SpeakingOrder(players)
	s.Require().Len(order, 2)
	s.Equal("loud", order[0].Name)
	s.Equal("quiet", order[1].Name)
}

func (s *LogTestSuite) TestFormatContext() {
	statements := []*models.Statement{
		{Speaker: "alice", Content: "I suspect bob."},
		{Speaker: "bob", Content: "That's absurd."},
	}
	s.Equal("alice: I suspect bob.\nbob: That's absurd.", FormatContext(statements))
}

func TestLogTestSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}
