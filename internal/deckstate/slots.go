package deckstate

import (
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
)

// SlotStore holds the five character slots, the leader and the equipment
// bound to each slot index.
// The leader is always empty or one of the occupied slots.
type SlotStore struct {
	characters [deck.SlotCount]string
	leader     string
	equipment  [deck.SlotCount]deck.Loadout
}

// NewSlotStore creates a store with every slot empty
func NewSlotStore() *SlotStore {
	return &SlotStore{}
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= deck.SlotCount {
		return errors.OutOfRangef("slot %d out of range [0, %d)", slot, deck.SlotCount)
	}
	return nil
}

// Place puts a character into an empty slot. The first character placed
// into a deck without a leader becomes the leader.
func (s *SlotStore) Place(slot int, characterID string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if characterID == deck.EmptySlot {
		return errors.InvalidArgument("character id is required")
	}
	if existing := s.SlotOf(characterID); existing >= 0 {
		return errors.AlreadyExistsf("character %s already in slot %d", characterID, existing).
			WithMeta("slot", existing)
	}
	if s.characters[slot] != deck.EmptySlot {
		return errors.FailedPreconditionf("slot %d is occupied by %s", slot, s.characters[slot])
	}

	s.characters[slot] = characterID
	if s.leader == deck.EmptySlot {
		s.leader = characterID
	}
	return nil
}

// Clear empties a slot and its equipment. It returns the removed character
// and loadout. A removed leader passes to the first remaining character.
func (s *SlotStore) Clear(slot int) (string, deck.Loadout, error) {
	if err := checkSlot(slot); err != nil {
		return "", deck.Loadout{}, err
	}

	removed := s.characters[slot]
	loadout := s.equipment[slot]
	s.characters[slot] = deck.EmptySlot
	s.equipment[slot] = deck.Loadout{}

	if removed != deck.EmptySlot && s.leader == removed {
		s.leader = s.firstOccupied()
	}
	return removed, loadout, nil
}

func (s *SlotStore) firstOccupied() string {
	for _, id := range s.characters {
		if id != deck.EmptySlot {
			return id
		}
	}
	return deck.EmptySlot
}

// SlotOf returns the slot holding the character, or -1
func (s *SlotStore) SlotOf(characterID string) int {
	if characterID == deck.EmptySlot {
		return -1
	}
	for i, id := range s.characters {
		if id == characterID {
			return i
		}
	}
	return -1
}

// Character returns the occupant of a slot
func (s *SlotStore) Character(slot int) (string, error) {
	if err := checkSlot(slot); err != nil {
		return "", err
	}
	return s.characters[slot], nil
}

// Characters returns the slot array
func (s *SlotStore) Characters() [deck.SlotCount]string {
	return s.characters
}

// Leader returns the leader id or the empty sentinel
func (s *SlotStore) Leader() string {
	return s.leader
}

// SetLeader makes a placed character the leader
func (s *SlotStore) SetLeader(characterID string) error {
	if s.SlotOf(characterID) < 0 {
		return errors.FailedPreconditionf("leader %q is not in the deck", characterID)
	}
	s.leader = characterID
	return nil
}

// Equip binds an item to an occupied slot and returns the item it replaced
func (s *SlotStore) Equip(slot int, equipID string, equipType deck.EquipType) (string, error) {
	if err := checkSlot(slot); err != nil {
		return "", err
	}
	if !equipType.IsValid() {
		return "", errors.InvalidArgumentf("invalid equipment type %q", equipType)
	}
	if equipID == "" {
		return "", errors.InvalidArgument("equipment id is required")
	}
	if s.characters[slot] == deck.EmptySlot {
		return "", errors.FailedPreconditionf("slot %d has no character to equip", slot)
	}

	i := equipType.Index()
	previous := s.equipment[slot][i]
	s.equipment[slot][i] = equipID
	return previous, nil
}

// Unequip clears one equipment type of a slot and returns the removed item
func (s *SlotStore) Unequip(slot int, equipType deck.EquipType) (string, error) {
	if err := checkSlot(slot); err != nil {
		return "", err
	}
	if !equipType.IsValid() {
		return "", errors.InvalidArgumentf("invalid equipment type %q", equipType)
	}

	i := equipType.Index()
	removed := s.equipment[slot][i]
	s.equipment[slot][i] = ""
	return removed, nil
}

// Loadout returns the equipment of a slot
func (s *SlotStore) Loadout(slot int) (deck.Loadout, error) {
	if err := checkSlot(slot); err != nil {
		return deck.Loadout{}, err
	}
	return s.equipment[slot], nil
}

// Equipment returns every slot's loadout
func (s *SlotStore) Equipment() [deck.SlotCount]deck.Loadout {
	return s.equipment
}

// Reset empties every slot and the leader
func (s *SlotStore) Reset() {
	*s = SlotStore{}
}
