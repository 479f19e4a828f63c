// Package session implements the deck session: the single owner of a deck's
// slots, selected cards, battle settings and awakening stages. Every mutation
// goes through a Session, which keeps card provenance in step with the slots.
//
// A Session is not safe for concurrent use. Callers that share one must
// serialize access, including imports.
package session

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/deck-api/internal/deckstate"
	"github.com/KirkDiggler/deck-api/internal/engine"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/refdata"
)

// DefaultReferenceLanguage is the language used to match drifted card names
const DefaultReferenceLanguage = "en"

// DefaultID identifies a session in events and logs when none is configured
const DefaultID = "deck"

// Config holds the dependencies of a Session
type Config struct {
	Database *refdata.Database
	Resolver engine.SkillResolver
	Index    engine.AvailabilityIndex

	// EventBus is optional; when set, deck changes are published to it
	EventBus events.EventBus

	// ID names the session in events and logs
	ID string

	// ReferenceLanguage selects the localized skill names compared during
	// import drift substitution
	ReferenceLanguage string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Database == nil {
		vb.RequiredField("Database")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Index == nil {
		vb.RequiredField("Index")
	}
	return vb.Build()
}

// Session owns one deck
type Session struct {
	id       string
	refLang  string
	db       *refdata.Database
	resolver engine.SkillResolver
	index    engine.AvailabilityIndex
	bus      events.EventBus

	cards     *deckstate.CardStore
	slots     *deckstate.SlotStore
	battle    deck.BattleSettings
	awakening map[string]int
}

// New creates an empty session
func New(cfg *Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Session{
		id:        cfg.ID,
		refLang:   cfg.ReferenceLanguage,
		db:        cfg.Database,
		resolver:  cfg.Resolver,
		index:     cfg.Index,
		bus:       cfg.EventBus,
		cards:     deckstate.NewCardStore(cfg.Database),
		slots:     deckstate.NewSlotStore(),
		battle:    deck.DefaultBattleSettings(),
		awakening: make(map[string]int),
	}
	if s.id == "" {
		s.id = DefaultID
	}
	if s.refLang == "" {
		s.refLang = DefaultReferenceLanguage
	}
	return s, nil
}

// AddCharacter places a character into a slot and adds the cards its skills
// grant. A previous occupant is removed first, together with its equipment.
func (s *Session) AddCharacter(ctx context.Context, slot int, characterID string) error {
	if characterID == deck.EmptySlot {
		return errors.InvalidArgument("character id is required")
	}
	current, err := s.slots.Character(slot)
	if err != nil {
		return err
	}
	if current == characterID {
		return nil
	}
	if other := s.slots.SlotOf(characterID); other >= 0 {
		return errors.AlreadyExistsf("character %s already in slot %d", characterID, other)
	}

	grants, err := s.resolver.ResolveCharacter(characterID)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve character %s", characterID)
	}

	if current != deck.EmptySlot {
		if err := s.RemoveCharacter(ctx, slot); err != nil {
			return err
		}
	}

	leader := s.slots.Leader()
	if err := s.slots.Place(slot, characterID); err != nil {
		return err
	}
	added := s.addGrants(grants)

	slog.DebugContext(ctx, "character added",
		"deck_id", s.id,
		"slot", slot,
		"character_id", characterID,
		"cards_added", len(added))

	s.publish(ctx, EventCharacterAdded, entity{id: characterID, kind: EntityTypeCharacter})
	s.publishCards(ctx, EventCardAdded, added)
	s.publishLeader(ctx, leader)
	return nil
}

// RemoveCharacter empties a slot. Cards granted only by the character or its
// equipment are removed; the leader passes to the first remaining character.
func (s *Session) RemoveCharacter(ctx context.Context, slot int) error {
	characterID, err := s.slots.Character(slot)
	if err != nil {
		return err
	}
	if characterID == deck.EmptySlot {
		return nil
	}

	loadout, err := s.slots.Loadout(slot)
	if err != nil {
		return err
	}
	for _, t := range deck.AllEquipTypes() {
		if id := loadout.Get(t); id != "" {
			if err := s.Unequip(ctx, slot, t); err != nil {
				return err
			}
		}
	}

	leader := s.slots.Leader()
	removed := s.cards.RemoveSourcesMatching(func(src deck.CardSource) bool {
		return src.IsFromCharacter(characterID)
	})
	if _, _, err := s.slots.Clear(slot); err != nil {
		return err
	}
	delete(s.awakening, characterID)

	slog.DebugContext(ctx, "character removed",
		"deck_id", s.id,
		"slot", slot,
		"character_id", characterID,
		"cards_removed", len(removed))

	s.publish(ctx, EventCharacterRemoved, entity{id: characterID, kind: EntityTypeCharacter})
	s.publishCards(ctx, EventCardRemoved, removed)
	s.publishLeader(ctx, leader)
	return nil
}

// SetLeader makes a character in the deck the leader
func (s *Session) SetLeader(ctx context.Context, characterID string) error {
	leader := s.slots.Leader()
	if err := s.slots.SetLeader(characterID); err != nil {
		return err
	}
	s.publishLeader(ctx, leader)
	return nil
}

// Equip equips an item on the character in slot, replacing the item of the
// same type.
func (s *Session) Equip(ctx context.Context, slot int, equipID string) error {
	item, ok := s.db.Equipment(equipID)
	if !ok {
		return errors.NotFoundf("equipment %s not found", equipID)
	}

	loadout, err := s.slots.Loadout(slot)
	if err != nil {
		return err
	}
	if loadout.Get(item.Type) == equipID {
		return nil
	}

	grants, err := s.resolver.ResolveEquipment(equipID, slot, item.Type)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve equipment %s", equipID)
	}

	previous, err := s.slots.Equip(slot, equipID, item.Type)
	if err != nil {
		return err
	}

	var removed []string
	if previous != "" {
		removed = s.cards.RemoveSourcesMatching(func(src deck.CardSource) bool {
			return src.IsFromEquipment(previous, slot, item.Type)
		})
	}
	added := s.addGrants(grants)

	slog.DebugContext(ctx, "equipment equipped",
		"deck_id", s.id,
		"slot", slot,
		"equip_id", equipID,
		"replaced", previous,
		"cards_added", len(added),
		"cards_removed", len(removed))

	if previous != "" {
		s.publish(ctx, EventEquipmentUnequipped, entity{id: previous, kind: EntityTypeEquipment})
	}
	s.publish(ctx, EventEquipmentEquipped, entity{id: equipID, kind: EntityTypeEquipment})
	s.publishCards(ctx, EventCardRemoved, removed)
	s.publishCards(ctx, EventCardAdded, added)
	return nil
}

// Unequip removes the item of the given type from a slot, together with the
// cards only that item justified.
func (s *Session) Unequip(ctx context.Context, slot int, equipType deck.EquipType) error {
	equipID, err := s.slots.Unequip(slot, equipType)
	if err != nil {
		return err
	}
	if equipID == "" {
		return nil
	}

	removed := s.cards.RemoveSourcesMatching(func(src deck.CardSource) bool {
		return src.IsFromEquipment(equipID, slot, equipType)
	})

	slog.DebugContext(ctx, "equipment unequipped",
		"deck_id", s.id,
		"slot", slot,
		"equip_id", equipID,
		"cards_removed", len(removed))

	s.publish(ctx, EventEquipmentUnequipped, entity{id: equipID, kind: EntityTypeEquipment})
	s.publishCards(ctx, EventCardRemoved, removed)
	return nil
}

// UpdateUsage changes a selected card's usage mode and threshold
func (s *Session) UpdateUsage(_ context.Context, cardID string, useType deck.UseType, useParam int, paramMap map[string]int) error {
	return s.cards.UpdateUsage(cardID, useType, useParam, paramMap)
}

// ReorderCards moves a card in the display order
func (s *Session) ReorderCards(_ context.Context, from, to int) error {
	return s.cards.Reorder(from, to)
}

// SetBattleSettings replaces the battle settings
func (s *Session) SetBattleSettings(_ context.Context, settings deck.BattleSettings) error {
	vb := errors.NewValidationBuilder()
	if settings.KeepCardNum < 0 {
		vb.Field("keep_card_num", "must not be negative")
	}
	if settings.Discard < 0 {
		vb.Field("discard", "must not be negative")
	}
	if settings.EnemyPriority < 0 {
		vb.Field("enemy_priority", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}
	s.battle = settings
	return nil
}

// SetAwakening records the awakening stage of a character in the deck.
// Stage 0 clears it.
func (s *Session) SetAwakening(_ context.Context, characterID string, stage int) error {
	if stage < 0 {
		return errors.InvalidArgumentf("awakening stage %d must not be negative", stage)
	}
	if s.slots.SlotOf(characterID) < 0 {
		return errors.FailedPreconditionf("character %s is not in the deck", characterID)
	}
	if stage == 0 {
		delete(s.awakening, characterID)
		return nil
	}
	s.awakening[characterID] = stage
	return nil
}

// PruneUnavailable removes cards the current slots and equipment no longer
// justify, and returns their ids.
func (s *Session) PruneUnavailable(ctx context.Context) []string {
	available := s.index.AvailableCardIDs(s.slots.Characters(), s.slots.Equipment())
	stale := s.cards.Prune(available)
	if len(stale) > 0 {
		slog.InfoContext(ctx, "pruned unavailable cards",
			"deck_id", s.id,
			"card_ids", stale)
		s.publishCards(ctx, EventCardRemoved, stale)
	}
	return stale
}

// PlayableCards returns the cards the deck would play for the observed battle
// values, keyed by special control key, in display order.
func (s *Session) PlayableCards(observed map[string]int) []string {
	return s.cards.Playable(observed)
}

// Clear resets the session to an empty deck
func (s *Session) Clear(ctx context.Context) {
	leader := s.slots.Leader()
	s.cards.Reset()
	s.slots.Reset()
	s.battle = deck.DefaultBattleSettings()
	s.awakening = make(map[string]int)
	s.publishLeader(ctx, leader)
}

// Snapshot returns an immutable copy of the deck
func (s *Session) Snapshot() deck.State {
	state := deck.State{
		Characters: s.slots.Characters(),
		Leader:     s.slots.Leader(),
		Equipment:  s.slots.Equipment(),
		Cards:      s.cards.Snapshot(),
		Battle:     s.battle,
		Awakening:  make(map[string]int, len(s.awakening)),
	}
	for k, v := range s.awakening {
		state.Awakening[k] = v
	}
	return state
}

func (s *Session) addGrants(grants []deck.Grant) []string {
	var added []string
	for _, g := range grants {
		if s.cards.Add(g) {
			added = append(added, g.CardID)
		}
	}
	return added
}
