package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/greygale/moonvale/internal/dice"
)

type ClientTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
}

// newServer returns a chat-completions stub that replies with the given
// content and captures the last request body.
func (s *ClientTestSuite) newServer(reply string, lastRequest *chatRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/chat/completions", r.URL.Path)
		s.Equal("Bearer test-key", r.Header.Get("Authorization"))

		if lastRequest != nil {
			s.Require().NoError(json.NewDecoder(r.Body).Decode(lastRequest))
		}

		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: reply}})
		s.Require().NoError(json.NewEncoder(w).Encode(resp))
	}))
}

func (s *ClientTestSuite) newClient(serverURL string) *Client {
	client, err := NewClient(&ClientConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
	s.Require().NoError(err)
	return client
}

func (s *ClientTestSuite) TestNewClientRequiresAPIKey() {
	_, err := NewClient(&ClientConfig{Model: "test-model"})
	s.Error(err)
}

func (s *ClientTestSuite) TestChooseParsesFormattedReply() {
	var captured chatRequest
	server := s.newServer("REASONING: bob has been quiet all game.\nCHOICE: bob", &captured)
	defer server.Close()

	out, err := s.newClient(server.URL).Choose(s.ctx, &ChooseInput{
		PlayerName:    "alice",
		SystemContext: "You are alice.",
		Prompt:        "Who do you vote for?",
		Options:       []string{"bob", "carol"},
	})
	s.Require().NoError(err)

	s.Equal("bob", out.Choice)
	s.Equal("bob has been quiet all game.", out.Reasoning)

	s.Equal("test-model", captured.Model)
	s.Require().Len(captured.Messages, 2)
	s.Equal("You are alice.", captured.Messages[0].Content)
	s.Contains(captured.Messages[1].Content, "- bob")
	s.Contains(captured.Messages[1].Content, "- carol")
}

func (s *ClientTestSuite) TestChooseMatchesCaseInsensitively() {
	server := s.newServer("REASONING: sure.\nCHOICE: BOB", nil)
	defer server.Close()

	out, err := s.newClient(server.URL).Choose(s.ctx, &ChooseInput{
		Options: []string{"bob", "carol"},
	})
	s.Require().NoError(err)
	s.Equal("bob", out.Choice)
}

func (s *ClientTestSuite) TestChooseFallsBackToFirstOption() {
	// The model ignored the format entirely.
	server := s.newServer("I think we should all calm down.", nil)
	defer server.Close()

	out, err := s.newClient(server.URL).Choose(s.ctx, &ChooseInput{
		Options: []string{"bob", "carol"},
	})
	s.Require().NoError(err)
	s.Equal("bob", out.Choice)
}

func (s *ClientTestSuite) TestSpeakParsesFormattedReply() {
	server := s.newServer("THINKING: carol is lying.\nSTATEMENT: I don't believe carol's story.", nil)
	defer server.Close()

	out, err := s.newClient(server.URL).Speak(s.ctx, &SpeakInput{
		PlayerName: "alice",
		Prompt:     "Say something.",
	})
	s.Require().NoError(err)
	s.Equal("carol is lying.", out.Thinking)
	s.Equal("I don't believe carol's story.", out.Statement)
}

func (s *ClientTestSuite) TestSpeakFallsBackToWholeReply() {
	server := s.newServer("I have nothing to hide.", nil)
	defer server.Close()

	out, err := s.newClient(server.URL).Speak(s.ctx, &SpeakInput{Prompt: "Say something."})
	s.Require().NoError(err)
	s.Empty(out.Thinking)
	s.Equal("I have nothing to hide.", out.Statement)
}

func (s *ClientTestSuite) TestServerErrorBecomesDecisionUnavailable() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).Choose(s.ctx, &ChooseInput{Options: []string{"bob"}})
	s.ErrorIs(err, ErrDecisionUnavailable)

	_, err = s.newClient(server.URL).Speak(s.ctx, &SpeakInput{})
	s.ErrorIs(err, ErrDecisionUnavailable)
}

func (s *ClientTestSuite) TestEmptyChoicesBecomesDecisionUnavailable() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.Require().NoError(json.NewEncoder(w).Encode(chatResponse{}))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).Choose(s.ctx, &ChooseInput{Options: []string{"bob"}})
	s.ErrorIs(err, ErrDecisionUnavailable)
}

func (s *ClientTestSuite) TestParseField() {
	text := "noise\nREASONING: because.\nchoice: bob"
	s.Equal("because.", parseField(text, "REASONING"))
	s.Equal("bob", parseField(text, "CHOICE"))
	s.Empty(parseField(text, "STATEMENT"))
}

func (s *ClientTestSuite) TestRandomDeciderIsDeterministic() {
	input := &ChooseInput{Options: []string{"bob", "carol", "dave"}}

	first := NewRandom(dice.New(&dice.Config{Seed: 7}))
	second := NewRandom(dice.New(&dice.Config{Seed: 7}))

	for i := 0; i < 5; i++ {
		a, err := first.Choose(s.ctx, input)
		s.Require().NoError(err)
		b, err := second.Choose(s.ctx, input)
		s.Require().NoError(err)
		s.Equal(a.Choice, b.Choice)
	}
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
