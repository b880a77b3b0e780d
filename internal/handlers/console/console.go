// Package console renders the spectator stream to a terminal. It is the
// game-master view: private thinking and whispers are shown, since the
// reader is watching the game rather than playing in it.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/greygale/moonvale/internal/engine"
)

// Config holds dependencies for the console handler
type Config struct {
	// Writer receives the rendered stream
	Writer io.Writer

	// ShowThinking includes players' private reasoning in the output
	ShowThinking bool
}

// Handler renders notifications as indented terminal text.
type Handler struct {
	w            io.Writer
	showThinking bool
}

// New creates a console handler.
func New(cfg *Config) *Handler {
	return &Handler{
		w:            cfg.Writer,
		showThinking: cfg.ShowThinking,
	}
}

// Notify implements engine.Notifier.
func (h *Handler) Notify(n *engine.Notification) {
	switch n.Kind {
	case engine.KindPhase:
		fmt.Fprintf(h.w, "\n--- %s (day %d) ---\n", strings.ReplaceAll(n.Content, "_", " "), n.Day)

	case engine.KindNarration:
		fmt.Fprintf(h.w, "%s\n", n.Content)

	case engine.KindStatement:
		if h.showThinking && n.Thinking != "" {
			fmt.Fprintf(h.w, "  [%s thinks: %s]\n", n.Player, n.Thinking)
		}
		fmt.Fprintf(h.w, "  %s: %s\n", n.Player, n.Content)

	case engine.KindVote:
		if h.showThinking && n.Thinking != "" {
			fmt.Fprintf(h.w, "  [%s thinks: %s]\n", n.Player, n.Thinking)
		}
		fmt.Fprintf(h.w, "  %s\n", n.Content)

	case engine.KindDeath:
		fmt.Fprintf(h.w, "* %s\n", n.Content)

	case engine.KindGameOver:
		fmt.Fprintf(h.w, "\n=== %s ===\n", n.Content)
	}
}
