package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ClientConfig holds configuration for the HTTP decider
type ClientConfig struct {
	// BaseURL is the chat-completions endpoint root, e.g.
	// "https://api.openai.com/v1"
	BaseURL string

	// APIKey authenticates requests
	APIKey string

	// Model is the model identifier to request
	Model string

	// Temperature controls sampling; zero means the provider default
	Temperature float64

	// Timeout bounds each call; a stalled call becomes
	// ErrDecisionUnavailable instead of blocking the orchestrator
	Timeout time.Duration

	// HTTPClient overrides the transport, for tests
	HTTPClient *http.Client
}

// Client is a Decider backed by an OpenAI-compatible chat-completions API.
// Replies are requested in a REASONING/CHOICE (or THINKING/STATEMENT) line
// format and parsed leniently; an unparseable choice falls back to the
// first option so a confused model never stalls the game.
type Client struct {
	cfg  *ClientConfig
	http *http.Client
}

// NewClient creates an HTTP decider.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrDecisionUnavailable)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm client: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{cfg: cfg, http: httpClient}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Choose implements Decider.
func (c *Client) Choose(ctx context.Context, input *ChooseInput) (*ChooseOutput, error) {
	var options strings.Builder
	for _, opt := range input.Options {
		options.WriteString("- " + opt + "\n")
	}

	user := fmt.Sprintf(`%s

Available choices:
%s
Reply in exactly this format:
REASONING: <1-2 sentence explanation>
CHOICE: <one option copied exactly from the list>`, input.Prompt, options.String())

	text, err := c.complete(ctx, input.SystemContext, user, 200)
	if err != nil {
		return nil, err
	}

	reasoning := parseField(text, "REASONING")
	choice := matchOption(parseField(text, "CHOICE"), input.Options)
	if choice == "" {
		// Model ignored the format; take the first option rather than
		// stalling the game.
		choice = input.Options[0]
	}

	return &ChooseOutput{Choice: choice, Reasoning: reasoning}, nil
}

// Speak implements Decider.
func (c *Client) Speak(ctx context.Context, input *SpeakInput) (*SpeakOutput, error) {
	user := fmt.Sprintf(`%s

Reply in exactly this format:
THINKING: <1-2 sentences of private deliberation>
STATEMENT: <what you say out loud>`, input.Prompt)

	text, err := c.complete(ctx, input.SystemContext, user, 250)
	if err != nil {
		return nil, err
	}

	statement := parseField(text, "STATEMENT")
	if statement == "" {
		statement = strings.TrimSpace(text)
	}

	return &SpeakOutput{
		Thinking:  parseField(text, "THINKING"),
		Statement: statement,
	}, nil
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecisionUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecisionUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecisionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrDecisionUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecisionUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrDecisionUnavailable)
	}

	return parsed.Choices[0].Message.Content, nil
}

// parseField pulls the value of a "FIELD:" line out of a model reply.
func parseField(text, field string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		prefix := field + ":"
		if strings.HasPrefix(strings.ToUpper(trimmed), prefix) {
			return strings.TrimSpace(trimmed[len(prefix):])
		}
	}
	return ""
}

// matchOption maps a model reply onto one of the valid options, falling
// back to a case-insensitive match. Returns empty when nothing matches.
func matchOption(reply string, options []string) string {
	for _, opt := range options {
		if reply == opt {
			return opt
		}
	}
	for _, opt := range options {
		if strings.EqualFold(reply, opt) {
			return opt
		}
	}
	return ""
}
