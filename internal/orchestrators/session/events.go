package session

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published by a session
const (
	EventCharacterAdded      = "deck.character.added"
	EventCharacterRemoved    = "deck.character.removed"
	EventCardAdded           = "deck.card.added"
	EventCardRemoved         = "deck.card.removed"
	EventEquipmentEquipped   = "deck.equipment.equipped"
	EventEquipmentUnequipped = "deck.equipment.unequipped"
	EventLeaderChanged       = "deck.leader.changed"
	EventPresetImported      = "deck.preset.imported"
)

// Entity types carried by session events
const (
	EntityTypeDeck      = "deck"
	EntityTypeCharacter = "character"
	EntityTypeCard      = "card"
	EntityTypeEquipment = "equipment"
)

// entity is the core.Entity used as event source and target
type entity struct {
	id   string
	kind string
}

// GetID returns the entity id
func (e entity) GetID() string { return e.id }

// GetType returns the entity type
func (e entity) GetType() string { return e.kind }

var _ core.Entity = entity{}

func (s *Session) publish(ctx context.Context, eventType string, target entity) {
	if s.bus == nil {
		return
	}
	event := events.NewGameEvent(eventType, entity{id: s.id, kind: EntityTypeDeck}, target)
	if err := s.bus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish deck event",
			"deck_id", s.id,
			"event", eventType,
			"target", target.id,
			"error", err)
	}
}

func (s *Session) publishCards(ctx context.Context, eventType string, cardIDs []string) {
	for _, id := range cardIDs {
		s.publish(ctx, eventType, entity{id: id, kind: EntityTypeCard})
	}
}

func (s *Session) publishLeader(ctx context.Context, before string) {
	if after := s.slots.Leader(); after != before {
		s.publish(ctx, EventLeaderChanged, entity{id: after, kind: EntityTypeCharacter})
	}
}
