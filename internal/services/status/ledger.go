// Package status tracks the modifiers attached to each player. The ledger
// is the single representation of player conditions; anything that looks
// like a boolean flag is a derived Has query, never a stored field.
package status

import (
	"github.com/greygale/moonvale/internal/models"
)

// Ledger holds every modifier ever applied to any player. Expired and
// removed modifiers are deactivated, not deleted, so the audit trail
// survives the whole game.
type Ledger struct {
	modifiers map[string][]*models.Modifier
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		modifiers: make(map[string][]*models.Modifier),
	}
}

// Has reports whether the player has an active modifier of the given type.
func (l *Ledger) Has(player string, modifierType models.ModifierType) bool {
	return l.Get(player, modifierType) != nil
}

// Get returns the player's active modifier of the given type, or nil.
func (l *Ledger) Get(player string, modifierType models.ModifierType) *models.Modifier {
	for _, m := range l.modifiers[player] {
		if m.Type == modifierType && m.Active {
			return m
		}
	}
	return nil
}

// Add attaches a modifier to the player. If an active modifier of the same
// type already exists it is replaced: the old entry is deactivated and the
// new one appended. Replace-on-duplicate is the documented policy; callers
// that want stacking semantics do not exist in this game.
func (l *Ledger) Add(player string, modifier *models.Modifier) {
	if existing := l.Get(player, modifier.Type); existing != nil {
		existing.Active = false
	}
	modifier.Active = true
	l.modifiers[player] = append(l.modifiers[player], modifier)
}

// Remove deactivates the player's active modifier of the given type.
// It returns true when a modifier was actually deactivated.
func (l *Ledger) Remove(player string, modifierType models.ModifierType) bool {
	removed := false
	for _, m := range l.modifiers[player] {
		if m.Type == modifierType && m.Active {
			m.Active = false
			removed = true
		}
	}
	return removed
}

// ActiveFor returns the player's active modifiers in application order.
func (l *Ledger) ActiveFor(player string) []*models.Modifier {
	var active []*models.Modifier
	for _, m := range l.modifiers[player] {
		if m.Active {
			active = append(active, m)
		}
	}
	return active
}

// AllFor returns every modifier ever applied to the player, active or not.
func (l *Ledger) AllFor(player string) []*models.Modifier {
	return l.modifiers[player]
}

// PlayersWith returns the names of players holding an active modifier of
// the given type, in no particular order guarantee beyond map insertion of
// first application; callers needing a stable order sort on their side.
func (l *Ledger) PlayersWith(modifierType models.ModifierType) []string {
	var names []string
	for player := range l.modifiers {
		if l.Has(player, modifierType) {
			names = append(names, player)
		}
	}
	return names
}

// SweepExpired deactivates every modifier whose expiry day has arrived.
// Invoked exactly once per night-to-day transition, after night resolution
// and before day statements begin, so a modifier applied on day N with
// ExpiresOn = N+1 is still active during day N's discussion and inactive by
// day N+1's. It returns the (player, type) pairs that were deactivated.
func (l *Ledger) SweepExpired(currentDay int) []Expiry {
	var swept []Expiry
	for player, mods := range l.modifiers {
		for _, m := range mods {
			if m.Active && m.Expired(currentDay) {
				m.Active = false
				swept = append(swept, Expiry{Player: player, Type: m.Type})
			}
		}
	}
	return swept
}

// Expiry identifies one modifier deactivated by a sweep
type Expiry struct {
	// Player is the holder of the expired modifier
	Player string

	// Type is the expired modifier's type
	Type models.ModifierType
}
