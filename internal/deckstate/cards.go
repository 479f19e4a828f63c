package deckstate

import (
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/refdata"
)

// ControlLookup resolves the special control bound to a conditional usage mode
type ControlLookup interface {
	SpecialControl(k int) (refdata.SpecialControl, bool)
}

// CardStore is the provenance store: selected cards in display order, each
// with its usage settings and the sources that justify it.
type CardStore struct {
	controls ControlLookup
	order    []string
	cards    map[string]*deck.SelectedCard
}

// NewCardStore creates an empty store
func NewCardStore(controls ControlLookup) *CardStore {
	return &CardStore{
		controls: controls,
		cards:    make(map[string]*deck.SelectedCard),
	}
}

// Add records a grant. A new card is created with immediate usage; an
// existing card gains the source unless an equal one is present.
// It reports whether a new card was created.
func (s *CardStore) Add(g deck.Grant) bool {
	if card, ok := s.cards[g.CardID]; ok {
		if !card.HasSource(g.Source) {
			card.Sources = append(card.Sources, g.Source)
		}
		return false
	}

	card := &deck.SelectedCard{
		ID:          g.CardID,
		OwnerID:     g.OwnerID,
		SkillID:     g.Source.SkillID,
		UseType:     deck.UseImmediate,
		UseParam:    deck.NoParam,
		UseParamMap: map[string]int{},
		Sources:     []deck.CardSource{g.Source},
	}
	if g.SkillIndex >= 0 {
		idx := g.SkillIndex
		card.SkillIndex = &idx
	}
	s.cards[g.CardID] = card
	s.order = append(s.order, g.CardID)
	return true
}

// RemoveSourcesMatching filters every card's sources and deletes the cards
// left without any. It returns the deleted ids in display order.
func (s *CardStore) RemoveSourcesMatching(match func(deck.CardSource) bool) []string {
	var removed []string
	for _, id := range s.order {
		card := s.cards[id]
		kept := card.Sources[:0]
		for _, src := range card.Sources {
			if !match(src) {
				kept = append(kept, src)
			}
		}
		card.Sources = kept
		if len(kept) == 0 {
			removed = append(removed, id)
		}
	}
	s.delete(removed)
	return removed
}

// UpdateUsage changes a card's usage settings. Conditional modes clamp the
// parameter to the control's range; a parameter of NoParam recalls the last
// value used for the mode, or the control default. Other modes force
// NoParam. A non-nil paramMap replaces the remembered parameters.
func (s *CardStore) UpdateUsage(cardID string, useType deck.UseType, useParam int, paramMap map[string]int) error {
	card, ok := s.cards[cardID]
	if !ok {
		return errors.NotFoundf("card %s not selected", cardID)
	}
	if !useType.IsValid() {
		return errors.InvalidArgumentf("invalid use type %d", useType)
	}

	param := deck.NoParam
	var control refdata.SpecialControl
	if useType.IsConditional() {
		control, ok = s.controls.SpecialControl(useType.ControlIndex())
		if !ok {
			return errors.InvalidArgumentf("use type %d references unknown special control %d", useType, useType.ControlIndex())
		}
	}

	remembered := card.UseParamMap
	if paramMap != nil {
		remembered = make(map[string]int, len(paramMap))
		for k, v := range paramMap {
			remembered[k] = v
		}
	}
	if remembered == nil {
		remembered = map[string]int{}
	}

	if useType.IsConditional() {
		param = useParam
		if param == deck.NoParam {
			param = control.Default
			if last, ok := remembered[useType.Key()]; ok {
				param = last
			}
		}
		param = control.Clamp(param)
		remembered[useType.Key()] = param
	}

	card.UseType = useType
	card.UseParam = param
	card.UseParamMap = remembered
	return nil
}

// Reorder moves the card at index from to index to
func (s *CardStore) Reorder(from, to int) error {
	n := len(s.order)
	if from < 0 || from >= n || to < 0 || to >= n {
		return errors.OutOfRangef("cannot move card from %d to %d in a list of %d", from, to, n)
	}
	if from == to {
		return nil
	}
	id := s.order[from]
	s.order = append(s.order[:from], s.order[from+1:]...)
	s.order = append(s.order[:to], append([]string{id}, s.order[to:]...)...)
	return nil
}

// ApplyOrder moves the listed ids to the front in the given order. Ids not
// in the store are ignored; the remaining cards keep their relative order.
func (s *CardStore) ApplyOrder(ids []string) {
	placed := make(map[string]struct{}, len(ids))
	order := make([]string, 0, len(s.order))
	for _, id := range ids {
		if _, ok := s.cards[id]; !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		order = append(order, id)
	}
	for _, id := range s.order {
		if _, ok := placed[id]; !ok {
			order = append(order, id)
		}
	}
	s.order = order
}

// InsertPlaceholder adds an imported card that no source justifies yet.
// Placeholders must be rebound or dropped before the import completes.
func (s *CardStore) InsertPlaceholder(card deck.SelectedCard) error {
	if _, ok := s.cards[card.ID]; ok {
		return errors.AlreadyExistsf("card %s already selected", card.ID)
	}
	c := card.Clone()
	c.Sources = nil
	if c.UseParamMap == nil {
		c.UseParamMap = map[string]int{}
	}
	s.cards[c.ID] = &c
	s.order = append(s.order, c.ID)
	return nil
}

// Rebind moves a placeholder onto an existing card: the target takes the
// placeholder's usage settings and display position, and the placeholder is
// removed.
func (s *CardStore) Rebind(placeholderID, targetID string) error {
	placeholder, ok := s.cards[placeholderID]
	if !ok {
		return errors.NotFoundf("card %s not selected", placeholderID)
	}
	target, ok := s.cards[targetID]
	if !ok {
		return errors.NotFoundf("card %s not selected", targetID)
	}
	if placeholderID == targetID {
		return nil
	}

	target.UseType = placeholder.UseType
	target.UseParam = placeholder.UseParam
	target.UseParamMap = placeholder.Clone().UseParamMap

	order := make([]string, 0, len(s.order)-1)
	for _, id := range s.order {
		switch id {
		case targetID:
			continue
		case placeholderID:
			order = append(order, targetID)
		default:
			order = append(order, id)
		}
	}
	s.order = order
	delete(s.cards, placeholderID)
	return nil
}

// DropOrphans deletes every card without sources and returns their ids
func (s *CardStore) DropOrphans() []string {
	var orphans []string
	for _, id := range s.order {
		if len(s.cards[id].Sources) == 0 {
			orphans = append(orphans, id)
		}
	}
	s.delete(orphans)
	return orphans
}

// Prune deletes every card whose id is not in available
func (s *CardStore) Prune(available map[string]struct{}) []string {
	var stale []string
	for _, id := range s.order {
		if _, ok := available[id]; !ok {
			stale = append(stale, id)
		}
	}
	s.delete(stale)
	return stale
}

// Playable returns, in display order, the cards whose usage allows them to be
// played given the observed battle values, keyed by special control key.
// Immediate cards always qualify and disabled cards never do. A conditional
// card qualifies when its control holds for the observed value against the
// card's parameter; a control with no observation does not hold.
func (s *CardStore) Playable(observed map[string]int) []string {
	var out []string
	for _, id := range s.order {
		card := s.cards[id]
		switch {
		case card.UseType == deck.UseImmediate:
			out = append(out, id)
		case card.UseType.IsConditional():
			control, ok := s.controls.SpecialControl(card.UseType.ControlIndex())
			if !ok {
				continue
			}
			value, ok := observed[control.Key]
			if ok && control.Holds(value, card.UseParam) {
				out = append(out, id)
			}
		}
	}
	return out
}

// Get returns a copy of the card
func (s *CardStore) Get(cardID string) (deck.SelectedCard, bool) {
	card, ok := s.cards[cardID]
	if !ok {
		return deck.SelectedCard{}, false
	}
	return card.Clone(), true
}

// Has reports whether the card is selected
func (s *CardStore) Has(cardID string) bool {
	_, ok := s.cards[cardID]
	return ok
}

// IDs returns the selected card ids in display order
func (s *CardStore) IDs() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of selected cards
func (s *CardStore) Len() int {
	return len(s.order)
}

// Snapshot returns deep copies of the cards in display order
func (s *CardStore) Snapshot() []deck.SelectedCard {
	out := make([]deck.SelectedCard, len(s.order))
	for i, id := range s.order {
		out[i] = s.cards[id].Clone()
	}
	return out
}

// Reset removes every card
func (s *CardStore) Reset() {
	s.order = nil
	s.cards = make(map[string]*deck.SelectedCard)
}

func (s *CardStore) delete(ids []string) {
	if len(ids) == 0 {
		return
	}
	gone := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
		delete(s.cards, id)
	}
	order := s.order[:0]
	for _, id := range s.order {
		if _, ok := gone[id]; !ok {
			order = append(order, id)
		}
	}
	s.order = order
}
