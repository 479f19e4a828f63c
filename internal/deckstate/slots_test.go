package deckstate_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/deck-api/internal/deckstate"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
)

type SlotStoreTestSuite struct {
	suite.Suite
	store *deckstate.SlotStore
}

func TestSlotStoreSuite(t *testing.T) {
	suite.Run(t, new(SlotStoreTestSuite))
}

func (s *SlotStoreTestSuite) SetupTest() {
	s.store = deckstate.NewSlotStore()
}

func (s *SlotStoreTestSuite) TestLeaderFollowsAddAndRemove() {
	s.Require().NoError(s.store.Place(0, "10000031"))
	s.Equal("10000031", s.store.Leader())

	removed, _, err := s.store.Clear(0)
	s.Require().NoError(err)
	s.Equal("10000031", removed)
	s.Equal(deck.EmptySlot, s.store.Leader())
}

func (s *SlotStoreTestSuite) TestLeaderFallsBackToFirstOccupied() {
	s.Require().NoError(s.store.Place(2, "b"))
	s.Require().NoError(s.store.Place(4, "c"))
	s.Require().NoError(s.store.Place(0, "a"))
	s.Equal("b", s.store.Leader())

	_, _, err := s.store.Clear(2)
	s.Require().NoError(err)
	s.Equal("a", s.store.Leader())

	_, _, err = s.store.Clear(4)
	s.Require().NoError(err)
	s.Equal("a", s.store.Leader(), "removing a non-leader keeps the leader")
}

func (s *SlotStoreTestSuite) TestPlaceErrors() {
	s.Require().NoError(s.store.Place(0, "a"))

	testCases := []struct {
		name  string
		slot  int
		id    string
		check func(error) bool
	}{
		{name: "duplicate character", slot: 1, id: "a", check: errors.IsAlreadyExists},
		{name: "occupied slot", slot: 0, id: "b", check: errors.IsFailedPrecondition},
		{name: "slot too high", slot: deck.SlotCount, id: "b", check: errors.IsOutOfRange},
		{name: "negative slot", slot: -1, id: "b", check: errors.IsOutOfRange},
		{name: "empty id", slot: 1, id: deck.EmptySlot, check: errors.IsInvalidArgument},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.store.Place(tc.slot, tc.id)
			s.Require().Error(err)
			s.True(tc.check(err), err.Error())
		})
	}
}

func (s *SlotStoreTestSuite) TestSetLeader() {
	s.Require().NoError(s.store.Place(0, "a"))
	s.Require().NoError(s.store.Place(1, "b"))

	s.Require().NoError(s.store.SetLeader("b"))
	s.Equal("b", s.store.Leader())

	err := s.store.SetLeader("z")
	s.True(errors.IsFailedPrecondition(err))
	s.Equal("b", s.store.Leader())

	err = s.store.SetLeader(deck.EmptySlot)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *SlotStoreTestSuite) TestEquipmentBoundToSlot() {
	_, err := s.store.Equip(0, "eq1", deck.EquipWeapon)
	s.True(errors.IsFailedPrecondition(err), "empty slot cannot be equipped")

	s.Require().NoError(s.store.Place(0, "a"))
	previous, err := s.store.Equip(0, "eq1", deck.EquipWeapon)
	s.Require().NoError(err)
	s.Empty(previous)

	previous, err = s.store.Equip(0, "eq2", deck.EquipWeapon)
	s.Require().NoError(err)
	s.Equal("eq1", previous)

	_, err = s.store.Equip(0, "eq3", deck.EquipAccessory)
	s.Require().NoError(err)

	loadout, err := s.store.Loadout(0)
	s.Require().NoError(err)
	s.Equal(deck.Loadout{"eq2", "", "eq3"}, loadout)

	removed, err := s.store.Unequip(0, deck.EquipAccessory)
	s.Require().NoError(err)
	s.Equal("eq3", removed)

	_, cleared, err := s.store.Clear(0)
	s.Require().NoError(err)
	s.Equal(deck.Loadout{"eq2", "", ""}, cleared)

	s.Require().NoError(s.store.Place(0, "b"))
	loadout, _ = s.store.Loadout(0)
	s.True(loadout.IsEmpty(), "equipment does not follow the character or stay with the slot")

	_, err = s.store.Equip(0, "eq1", "helmet")
	s.True(errors.IsInvalidArgument(err))
}

func (s *SlotStoreTestSuite) TestLeaderInvariantUnderRandomOperations() {
	rng := rand.New(rand.NewSource(7))
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}

	for i := 0; i < 500; i++ {
		slot := rng.Intn(deck.SlotCount)
		if rng.Intn(2) == 0 {
			_ = s.store.Place(slot, ids[rng.Intn(len(ids))])
		} else {
			_, _, _ = s.store.Clear(slot)
		}

		leader := s.store.Leader()
		if leader == deck.EmptySlot {
			for _, id := range s.store.Characters() {
				s.Require().Equal(deck.EmptySlot, id, "leader empty while slots are occupied")
			}
			continue
		}
		s.Require().GreaterOrEqual(s.store.SlotOf(leader), 0, "leader %s not in slots", leader)
	}
}

func (s *SlotStoreTestSuite) TestReset() {
	s.Require().NoError(s.store.Place(3, "a"))
	_, err := s.store.Equip(3, "eq", deck.EquipArmor)
	s.Require().NoError(err)

	s.store.Reset()
	s.Equal([deck.SlotCount]string{}, s.store.Characters())
	s.Equal([deck.SlotCount]deck.Loadout{}, s.store.Equipment())
	s.Equal(deck.EmptySlot, s.store.Leader())
}
