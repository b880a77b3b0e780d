// Package information is the append-only log of game facts, each carrying a
// visibility rule. It answers what a given player can currently see.
package information

import (
	"strings"

	"github.com/greygale/moonvale/internal/common/clock"
	"github.com/greygale/moonvale/internal/common/uuid"
	"github.com/greygale/moonvale/internal/models"
)

// Config holds dependencies for the information store
type Config struct {
	// Clock stamps items as they are appended
	Clock clock.Clock

	// UUIDGenerator assigns item IDs
	UUIDGenerator uuid.UUID
}

// Store is the append-only information log. Items are never mutated or
// deleted after creation.
type Store struct {
	clock clock.Clock
	uuid  uuid.UUID
	items []*models.Information
}

// NewStore creates an empty information store.
func NewStore(cfg *Config) *Store {
	return &Store{
		clock: cfg.Clock,
		uuid:  cfg.UUIDGenerator,
	}
}

// Reveal appends a fully-built item and returns its assigned ID.
func (s *Store) Reveal(info *models.Information) string {
	if info.ID == "" {
		info.ID = s.uuid.NewUUID()
	}
	if info.Timestamp.IsZero() {
		info.Timestamp = s.clock.Now()
	}
	s.items = append(s.items, info)
	return info.ID
}

// RevealToAll appends a fact every player can see.
func (s *Store) RevealToAll(content, source string, category models.InfoCategory, day int, phase string) string {
	return s.Reveal(&models.Information{
		Category:   category,
		Content:    content,
		Source:     source,
		Visibility: models.VisibleToAll(),
		Day:        day,
		Phase:      phase,
	})
}

// RevealToPlayer appends a fact only the named player can see.
func (s *Store) RevealToPlayer(player, content, source string, category models.InfoCategory, day int, phase string) string {
	return s.Reveal(&models.Information{
		Category:   category,
		Content:    content,
		Source:     source,
		Visibility: models.VisibleToPlayer(player),
		Day:        day,
		Phase:      phase,
	})
}

// RevealToTeam appends a fact every member of the team can see, living or
// dead.
func (s *Store) RevealToTeam(team models.Team, content, source string, category models.InfoCategory, day int, phase string) string {
	return s.Reveal(&models.Information{
		Category:   category,
		Content:    content,
		Source:     source,
		Visibility: models.VisibleToTeam(team),
		Day:        day,
		Phase:      phase,
	})
}

// VisibleTo returns every item the player may observe, in insertion
// (chronological) order. An empty result is an empty slice, never an error.
func (s *Store) VisibleTo(player string, team models.Team) []*models.Information {
	var visible []*models.Information
	for _, info := range s.items {
		if info.Visibility.IsVisibleTo(player, team) {
			visible = append(visible, info)
		}
	}
	return visible
}

// BuildContext renders the items visible to the player as prompt text,
// restricted to the given categories. No categories means no filtering.
func (s *Store) BuildContext(player string, team models.Team, categories ...models.InfoCategory) string {
	var lines []string
	for _, info := range s.VisibleTo(player, team) {
		if len(categories) > 0 && !containsCategory(categories, info.Category) {
			continue
		}
		lines = append(lines, info.Content)
	}
	return strings.Join(lines, "\n")
}

// ByCategory returns every item of the category, regardless of visibility.
// Intended for the transcript, not for player context.
func (s *Store) ByCategory(category models.InfoCategory) []*models.Information {
	var out []*models.Information
	for _, info := range s.items {
		if info.Category == category {
			out = append(out, info)
		}
	}
	return out
}

// ByDay returns every item stamped with the day, regardless of visibility.
func (s *Store) ByDay(day int) []*models.Information {
	var out []*models.Information
	for _, info := range s.items {
		if info.Day == day {
			out = append(out, info)
		}
	}
	return out
}

// Count returns the number of stored items.
func (s *Store) Count() int {
	return len(s.items)
}

func containsCategory(categories []models.InfoCategory, c models.InfoCategory) bool {
	for _, cat := range categories {
		if cat == c {
			return true
		}
	}
	return false
}
