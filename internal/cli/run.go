package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/greygale/moonvale/internal/common/clock"
	"github.com/greygale/moonvale/internal/common/uuid"
	"github.com/greygale/moonvale/internal/config"
	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/engine"
	"github.com/greygale/moonvale/internal/events"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/handlers/console"
	"github.com/greygale/moonvale/internal/llm"
	"github.com/greygale/moonvale/internal/services/conversation"
	"github.com/greygale/moonvale/internal/services/effect"
	"github.com/greygale/moonvale/internal/services/information"
	"github.com/greygale/moonvale/internal/services/status"
	"github.com/greygale/moonvale/internal/services/vote"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Seed    int64
	Offline bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "Run one full game from a configuration file",
		Long: `Run one full game from a YAML configuration file.

The config describes the roster (names, roles, personalities), the enabled
events, and the LLM backend. The OPENAI_API_KEY environment variable (or a
.env file) provides the API key; --offline plays without a model.

Example:
  moonvale run game.yaml
  moonvale run game.yaml --seed 42 --offline`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGame(opts, args[0])
		},
	}

	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "randomness seed (overrides config; 0 means time-seeded)")
	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "play without an LLM backend")

	return cmd
}

func runGame(opts *RunOptions, configPath string) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// A missing .env is fine; the environment may carry the key directly.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	roller := dice.New(&dice.Config{Seed: seed})

	decider, err := buildDecider(opts, cfg, roller)
	if err != nil {
		return err
	}

	clk := &clock.DefaultClock{}
	uuider := uuid.New()

	state := game.New(&game.Config{
		Players: cfg.Roster(),
		Ledger:  status.NewLedger(),
		Info: information.NewStore(&information.Config{
			Clock:         clk,
			UUIDGenerator: uuider,
		}),
		Conversation: conversation.NewLog(&conversation.Config{
			Clock:         clk,
			UUIDGenerator: uuider,
			Roller:        roller,
		}),
		Votes:  vote.NewTally(),
		Roller: roller,
	})

	registry, err := buildRegistry(cfg, roller, decider)
	if err != nil {
		return err
	}

	orchestrator := engine.New(&engine.Config{
		State:   state,
		Effects: effect.NewEngine(),
		Events:  registry,
		Decider: decider,
		Logger:  logger,
		Notifier: console.New(&console.Config{
			Writer:       os.Stdout,
			ShowThinking: opts.Verbose,
		}),
		MaxDays:          cfg.MaxDays,
		DiscussionRounds: cfg.DiscussionRounds,
	})

	ctx := cmdContext()
	if err := orchestrator.Setup(ctx); err != nil {
		return fmt.Errorf("setting up game: %w", err)
	}

	outcome, err := orchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	logger.Info("outcome", "winner", outcome.Winner, "days", outcome.Days)
	return nil
}

func buildDecider(opts *RunOptions, cfg *config.GameConfig, roller dice.Roller) (llm.Decider, error) {
	if opts.Offline {
		return llm.NewRandom(roller), nil
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set (use --offline to play without a model)")
	}

	return llm.NewClient(&llm.ClientConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      apiKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	})
}

// buildRegistry registers every event and activates the configured ones.
func buildRegistry(cfg *config.GameConfig, roller dice.Roller, decider llm.Decider) (*events.Registry, error) {
	registry := events.NewRegistry(&events.RegistryConfig{Roller: roller})

	byKey := map[string]events.Event{
		"drunk":       events.NewDrunk(),
		"zombie":      events.NewZombie(),
		"ghost":       events.NewGhost(&events.GhostConfig{Decider: decider}),
		"jester":      events.NewJester(),
		"priest":      events.NewPriest(&events.PriestConfig{Decider: decider}),
		"lovers":      events.NewLovers(),
		"bodyguard":   events.NewBodyguard(&events.BodyguardConfig{Decider: decider}),
		"sleepwalker": events.NewSleepwalker(),
		"insomniac":   events.NewInsomniac(),
		"gun_nut":     events.NewCounterAttack(),
		"suicidal":    events.NewSuicidal(),
	}

	// Deterministic registration order keeps seeded games replayable.
	order := []string{
		"drunk", "zombie", "ghost", "jester", "priest", "lovers",
		"bodyguard", "sleepwalker", "insomniac", "gun_nut", "suicidal",
	}
	for _, key := range order {
		registry.Register(byKey[key])
	}

	for _, key := range cfg.Events.Enabled {
		ev, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown event %q", config.ErrInvalidConfig, key)
		}
		registry.Activate(ev.Name())
	}

	if cfg.Events.Chaos {
		for _, ev := range registry.ActivateChaos() {
			slog.Info("chaos activated event", "event", ev.Name())
		}
	}

	return registry, nil
}

// cmdContext returns a context cancelled by SIGINT or SIGTERM, so an
// interrupted game exits between decisions instead of mid-write.
func cmdContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()
	return ctx
}
