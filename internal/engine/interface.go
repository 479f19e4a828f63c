// Package engine expands characters and equipment into the cards they grant
// and answers which cards a slot layout can legally produce.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/deck-api/internal/engine SkillResolver,AvailabilityIndex

import (
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
)

// SkillResolver walks the skill graph of a character or equipment item
type SkillResolver interface {
	// ResolveCharacter returns the grants of a character's skill and passive
	// skill lists. Returns errors.NotFound for unknown characters.
	ResolveCharacter(characterID string) ([]deck.Grant, error)

	// ResolveEquipment returns the grants of an item equipped in a slot.
	// Returns errors.NotFound for unknown items.
	ResolveEquipment(equipID string, slotIndex int, equipType deck.EquipType) ([]deck.Grant, error)
}

// AvailabilityIndex answers which card ids a layout can produce
type AvailabilityIndex interface {
	AvailableCardIDs(characters [deck.SlotCount]string, equipment [deck.SlotCount]deck.Loadout) map[string]struct{}

	// OrderedCardIDs returns the available cards in slot order
	OrderedCardIDs(characters [deck.SlotCount]string, equipment [deck.SlotCount]deck.Loadout) []string

	// CardSkills returns the ids of the skills granting a card
	CardSkills(cardID string) []string
}
