// Package config loads and validates the YAML game configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/greygale/moonvale/internal/models"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid game config")

// PlayerConfig describes one player in the roster
type PlayerConfig struct {
	// Name uniquely identifies the player
	Name string `yaml:"name"`

	// Role is the player's role; must be one of the known roles
	Role string `yaml:"role"`

	// Personality is the free-form character sketch fed to the decider
	Personality string `yaml:"personality"`
}

// EventsConfig selects which optional events are in play
type EventsConfig struct {
	// Enabled lists event keys to force on (e.g. "zombie", "jester")
	Enabled []string `yaml:"enabled"`

	// Chaos additionally rolls every remaining event for random activation
	Chaos bool `yaml:"chaos"`
}

// LLMConfig configures the decision backend
type LLMConfig struct {
	// BaseURL is the chat-completions endpoint root; empty means the
	// OpenAI default
	BaseURL string `yaml:"base_url"`

	// Model is the model identifier to request
	Model string `yaml:"model"`

	// Temperature controls sampling
	Temperature float64 `yaml:"temperature"`
}

// GameConfig is the full game configuration
type GameConfig struct {
	// Players is the roster
	Players []PlayerConfig `yaml:"players"`

	// DiscussionRounds is how many discussion rounds each day has; zero
	// means the engine default
	DiscussionRounds int `yaml:"discussion_rounds"`

	// MaxDays caps the game length; zero means the engine default
	MaxDays int `yaml:"max_days"`

	// Seed fixes the randomness source; zero means time-seeded
	Seed int64 `yaml:"seed"`

	// Events selects the optional twists
	Events EventsConfig `yaml:"events"`

	// LLM configures the decision backend
	LLM LLMConfig `yaml:"llm"`
}

// Load reads and validates a game configuration file.
func Load(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the roster can produce a playable game.
func (c *GameConfig) Validate() error {
	if len(c.Players) < 3 {
		return fmt.Errorf("%w: need at least 3 players, have %d", ErrInvalidConfig, len(c.Players))
	}

	seen := make(map[string]bool, len(c.Players))
	assassins := 0
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("%w: player with empty name", ErrInvalidConfig)
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfig, p.Name)
		}
		seen[key] = true

		role, ok := c.parseRole(p.Role)
		if !ok {
			return fmt.Errorf("%w: player %q has unknown role %q", ErrInvalidConfig, p.Name, p.Role)
		}
		if role == models.RoleAssassin {
			assassins++
		}
	}

	if assassins == 0 {
		return fmt.Errorf("%w: need at least one assassin", ErrInvalidConfig)
	}
	if village := len(c.Players) - assassins; assassins >= village {
		return fmt.Errorf("%w: assassins (%d) must be outnumbered by the village (%d)", ErrInvalidConfig, assassins, village)
	}

	return nil
}

// Roster builds the player models from the validated config.
func (c *GameConfig) Roster() []*models.Player {
	players := make([]*models.Player, len(c.Players))
	for i, p := range c.Players {
		role, _ := c.parseRole(p.Role)
		players[i] = &models.Player{
			Name:        p.Name,
			Role:        role,
			Personality: p.Personality,
			Alive:       true,
		}
	}
	return players
}

func (c *GameConfig) parseRole(name string) (models.Role, bool) {
	for _, r := range models.ValidRoles() {
		if strings.EqualFold(string(r), name) {
			return r, true
		}
	}
	return "", false
}
