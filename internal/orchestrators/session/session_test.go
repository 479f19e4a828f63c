package session_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/deck-api/internal/engine"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/orchestrators/session"
	"github.com/KirkDiggler/deck-api/internal/refdata"
	"github.com/KirkDiggler/deck-api/internal/testutils"
)

// recordingBus captures published event types
type recordingBus struct {
	published []string
	targets   []string
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) error {
	b.published = append(b.published, e.Type())
	if e.Target() != nil {
		b.targets = append(b.targets, e.Target().GetID())
	}
	return nil
}
func (b *recordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *recordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *recordingBus) Unsubscribe(_ string) error { return nil }
func (b *recordingBus) Clear(_ string)             {}
func (b *recordingBus) ClearAll()                  {}

type SessionTestSuite struct {
	suite.Suite
	ctx      context.Context
	db       *refdata.Database
	resolver *engine.Resolver
	index    *engine.Index
	bus      *recordingBus
	session  *session.Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db, s.resolver, s.index = testutils.CreateTestEngine(s.T())
	s.bus = &recordingBus{}
	s.session = s.newSession(s.bus)
}

func (s *SessionTestSuite) newSession(bus events.EventBus) *session.Session {
	sess, err := session.New(&session.Config{
		Database:          s.db,
		Resolver:          s.resolver,
		Index:             s.index,
		EventBus:          bus,
		ReferenceLanguage: testutils.ReferenceLanguage,
	})
	s.Require().NoError(err)
	return sess
}

func (s *SessionTestSuite) cardSet() map[string]struct{} {
	out := make(map[string]struct{})
	for _, id := range s.session.Snapshot().CardIDs() {
		out[id] = struct{}{}
	}
	return out
}

func (s *SessionTestSuite) TestNewValidatesConfig() {
	_, err := session.New(&session.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Database")
	s.Contains(err.Error(), "Index")

	_, err = session.New(nil)
	s.Require().Error(err)
}

func (s *SessionTestSuite) TestLeaderFollowsFirstCharacter() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterCyclic))
	s.Equal(testutils.CharacterCyclic, s.session.Snapshot().Leader)

	s.Require().NoError(s.session.RemoveCharacter(s.ctx, 0))
	state := s.session.Snapshot()
	s.Equal(deck.EmptySlot, state.Leader)
	s.Empty(state.Cards)
}

func (s *SessionTestSuite) TestUnequipKeepsCardGrantedByCharacter() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterStriker))
	s.Require().NoError(s.session.Equip(s.ctx, 0, testutils.EquipStrikeBlade))

	strike, ok := findCard(s.session.Snapshot(), testutils.CardStrike)
	s.Require().True(ok)
	s.Len(strike.Sources, 2)

	s.Require().NoError(s.session.Unequip(s.ctx, 0, deck.EquipWeapon))
	strike, ok = findCard(s.session.Snapshot(), testutils.CardStrike)
	s.Require().True(ok, "character skill still grants the card")
	s.Len(strike.Sources, 1)
	s.Equal(deck.SourceCharacter, strike.Sources[0].Kind)
}

func (s *SessionTestSuite) TestUnequipRemovesEquipmentOnlyCard() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterPlain))
	s.Require().NoError(s.session.Equip(s.ctx, 0, testutils.EquipStrikeBlade))
	s.Contains(s.cardSet(), testutils.CardStrike)

	s.Require().NoError(s.session.Unequip(s.ctx, 0, deck.EquipWeapon))
	s.NotContains(s.cardSet(), testutils.CardStrike)
	s.Contains(s.cardSet(), testutils.CardPlain)
}

func (s *SessionTestSuite) TestRemoveCharacterCascadesOnlyItsCards() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterStriker))
	s.Require().NoError(s.session.AddCharacter(s.ctx, 1, testutils.CharacterPlain))
	s.Require().NoError(s.session.Equip(s.ctx, 1, testutils.EquipStrikeBlade))

	s.Require().NoError(s.session.RemoveCharacter(s.ctx, 0))

	s.Equal(map[string]struct{}{
		testutils.CardPlain:  {},
		testutils.CardStrike: {},
	}, s.cardSet(), "the blade on slot 1 still justifies the shared card")
	s.Equal(testutils.CharacterPlain, s.session.Snapshot().Leader)
}

func (s *SessionTestSuite) TestAddCharacterReplacesOccupant() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 2, testutils.CharacterPlain))
	s.Require().NoError(s.session.Equip(s.ctx, 2, testutils.EquipPlate))
	s.Require().NoError(s.session.SetAwakening(s.ctx, testutils.CharacterPlain, 2))

	s.Require().NoError(s.session.AddCharacter(s.ctx, 2, testutils.CharacterFlame))

	state := s.session.Snapshot()
	s.Equal(testutils.CharacterFlame, state.Characters[2])
	s.Equal(testutils.CharacterFlame, state.Leader)
	s.True(state.Equipment[2].IsEmpty())
	s.Empty(state.Awakening)
	s.Equal([]string{testutils.CardFlame, testutils.CardFlameNested}, state.CardIDs())

	s.Require().NoError(s.session.AddCharacter(s.ctx, 2, testutils.CharacterFlame), "re-adding the occupant is a no-op")
}

func (s *SessionTestSuite) TestEquipReplacesSameType() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterPlain))
	s.Require().NoError(s.session.Equip(s.ctx, 0, testutils.EquipStrikeBlade))
	s.Require().NoError(s.session.Equip(s.ctx, 0, testutils.EquipEdge))

	state := s.session.Snapshot()
	s.Equal(deck.Loadout{testutils.EquipEdge, "", ""}, state.Equipment[0])
	s.NotContains(s.cardSet(), testutils.CardStrike)
	s.Contains(s.cardSet(), testutils.CardEdge)
}

func (s *SessionTestSuite) TestOperationErrors() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterPlain))

	testCases := []struct {
		name  string
		run   func() error
		check func(error) bool
	}{
		{
			name:  "unknown character",
			run:   func() error { return s.session.AddCharacter(s.ctx, 1, "nobody") },
			check: errors.IsNotFound,
		},
		{
			name:  "duplicate character",
			run:   func() error { return s.session.AddCharacter(s.ctx, 1, testutils.CharacterPlain) },
			check: errors.IsAlreadyExists,
		},
		{
			name:  "slot out of range",
			run:   func() error { return s.session.AddCharacter(s.ctx, 5, testutils.CharacterFlame) },
			check: errors.IsOutOfRange,
		},
		{
			name:  "empty character id",
			run:   func() error { return s.session.AddCharacter(s.ctx, 1, "") },
			check: errors.IsInvalidArgument,
		},
		{
			name:  "unknown equipment",
			run:   func() error { return s.session.Equip(s.ctx, 0, "eq99999") },
			check: errors.IsNotFound,
		},
		{
			name:  "equip empty slot",
			run:   func() error { return s.session.Equip(s.ctx, 3, testutils.EquipPlate) },
			check: errors.IsFailedPrecondition,
		},
		{
			name:  "leader not in deck",
			run:   func() error { return s.session.SetLeader(s.ctx, testutils.CharacterFlame) },
			check: errors.IsFailedPrecondition,
		},
		{
			name:  "usage of unknown card",
			run:   func() error { return s.session.UpdateUsage(s.ctx, "missing", deck.UseDisabled, deck.NoParam, nil) },
			check: errors.IsNotFound,
		},
		{
			name:  "reorder out of range",
			run:   func() error { return s.session.ReorderCards(s.ctx, 0, 3) },
			check: errors.IsOutOfRange,
		},
		{
			name:  "negative keep count",
			run:   func() error { return s.session.SetBattleSettings(s.ctx, deck.BattleSettings{KeepCardNum: -1}) },
			check: errors.IsInvalidArgument,
		},
		{
			name:  "awakening for absent character",
			run:   func() error { return s.session.SetAwakening(s.ctx, testutils.CharacterFlame, 1) },
			check: errors.IsFailedPrecondition,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.run()
			s.Require().Error(err)
			s.True(tc.check(err), err.Error())
		})
	}

	state := s.session.Snapshot()
	s.Equal([deck.SlotCount]string{testutils.CharacterPlain}, state.Characters)
	s.Equal([]string{testutils.CardPlain}, state.CardIDs())
}

func (s *SessionTestSuite) TestIndexAgreesWithLiveStore() {
	rng := rand.New(rand.NewSource(11))
	characters := s.db.CharacterIDs()
	equipment := s.db.EquipmentIDs()

	for i := 0; i < 300; i++ {
		slot := rng.Intn(deck.SlotCount)
		switch rng.Intn(4) {
		case 0:
			_ = s.session.AddCharacter(s.ctx, slot, characters[rng.Intn(len(characters))])
		case 1:
			_ = s.session.RemoveCharacter(s.ctx, slot)
		case 2:
			_ = s.session.Equip(s.ctx, slot, equipment[rng.Intn(len(equipment))])
		case 3:
			_ = s.session.Unequip(s.ctx, slot, deck.AllEquipTypes()[rng.Intn(3)])
		}

		state := s.session.Snapshot()
		s.Require().Equal(s.index.AvailableCardIDs(state.Characters, state.Equipment), s.cardSet(), "step %d", i)
		for _, card := range state.Cards {
			s.Require().NotEmpty(card.Sources, "card %s has no sources", card.ID)
		}
	}

	s.Empty(s.session.PruneUnavailable(s.ctx))
}

func (s *SessionTestSuite) TestUsageAndReorder() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterCyclic))
	s.Require().NoError(s.session.UpdateUsage(s.ctx, testutils.CardCyclicB, deck.Conditional(testutils.ControlHandCount), 99, nil))
	s.Require().NoError(s.session.ReorderCards(s.ctx, 1, 0))

	state := s.session.Snapshot()
	s.Equal(testutils.CardCyclicB, state.Cards[0].ID)
	s.Equal(10, state.Cards[0].UseParam)
}

func (s *SessionTestSuite) TestPlayableCards() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterCyclic))
	s.Require().NoError(s.session.UpdateUsage(s.ctx, testutils.CardCyclicA, deck.UseDisabled, deck.NoParam, nil))
	s.Require().NoError(s.session.UpdateUsage(s.ctx, testutils.CardCyclicB, deck.Conditional(testutils.ControlHandCount), 2, nil))

	playable := s.session.PlayableCards(map[string]int{"hand_card_count": 2})
	s.Contains(playable, testutils.CardCyclicB)
	s.NotContains(playable, testutils.CardCyclicA)

	playable = s.session.PlayableCards(map[string]int{"hand_card_count": 3})
	s.NotContains(playable, testutils.CardCyclicB)
	s.Contains(playable, testutils.CardCyclicPass)
}

func (s *SessionTestSuite) TestEventsPublished() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterPlain))
	s.Require().NoError(s.session.Equip(s.ctx, 0, testutils.EquipCharm))
	s.Require().NoError(s.session.RemoveCharacter(s.ctx, 0))

	s.Equal([]string{
		session.EventCharacterAdded,
		session.EventCardAdded,
		session.EventLeaderChanged,
		session.EventEquipmentEquipped,
		session.EventCardAdded,
		session.EventEquipmentUnequipped,
		session.EventCardRemoved,
		session.EventCharacterRemoved,
		session.EventCardRemoved,
		session.EventLeaderChanged,
	}, s.bus.published)
	s.Equal(testutils.CharacterPlain, s.bus.targets[0])

	quiet := s.newSession(nil)
	s.Require().NoError(quiet.AddCharacter(s.ctx, 0, testutils.CharacterPlain))
}

func (s *SessionTestSuite) TestClear() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterPlain))
	s.Require().NoError(s.session.SetBattleSettings(s.ctx, deck.BattleSettings{KeepCardNum: 3}))

	s.session.Clear(s.ctx)

	state := s.session.Snapshot()
	s.Equal([deck.SlotCount]string{}, state.Characters)
	s.Empty(state.Cards)
	s.Equal(deck.DefaultBattleSettings(), state.Battle)
}

func findCard(state deck.State, id string) (deck.SelectedCard, bool) {
	for _, c := range state.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return deck.SelectedCard{}, false
}
