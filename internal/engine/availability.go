package engine

import (
	"sort"

	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/refdata"
)

// Index is the precomputed availability index. Card sets are built with the
// same Resolver used for live expansion, so the index and a deck session
// always agree on what a layout produces.
type Index struct {
	byCharacter map[string][]string
	byEquipment map[string][]string
	cardSkills  map[string][]string
}

// IndexConfig holds the dependencies of an Index
type IndexConfig struct {
	Database *refdata.Database
	Resolver *Resolver
}

// Validate ensures all required dependencies are provided
func (c *IndexConfig) Validate() error {
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
	return vb.Build()
}

// NewIndex resolves every character and equipment item once
func NewIndex(cfg *IndexConfig) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	idx := &Index{
		byCharacter: make(map[string][]string),
		byEquipment: make(map[string][]string),
		cardSkills:  make(map[string][]string),
	}

	for _, id := range cfg.Database.CharacterIDs() {
		grants, err := cfg.Resolver.ResolveCharacter(id)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to index character %s", id)
		}
		idx.byCharacter[id] = idx.collect(grants)
	}

	for _, id := range cfg.Database.EquipmentIDs() {
		item, _ := cfg.Database.Equipment(id)
		grants, err := cfg.Resolver.ResolveEquipment(id, deck.NoSlot, item.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to index equipment %s", id)
		}
		idx.byEquipment[id] = idx.collect(grants)
	}

	for cardID, skills := range idx.cardSkills {
		sort.Strings(skills)
		idx.cardSkills[cardID] = skills
	}

	return idx, nil
}

var _ AvailabilityIndex = (*Index)(nil)

func (idx *Index) collect(grants []deck.Grant) []string {
	seen := make(map[string]struct{}, len(grants))
	cards := make([]string, 0, len(grants))
	for _, g := range grants {
		idx.addCardSkill(g.CardID, g.Source.SkillID)
		if _, ok := seen[g.CardID]; ok {
			continue
		}
		seen[g.CardID] = struct{}{}
		cards = append(cards, g.CardID)
	}
	return cards
}

func (idx *Index) addCardSkill(cardID, skillID string) {
	for _, existing := range idx.cardSkills[cardID] {
		if existing == skillID {
			return
		}
	}
	idx.cardSkills[cardID] = append(idx.cardSkills[cardID], skillID)
}

// AvailableCardIDs returns the union of the cards granted by the given
// characters and equipment. Unknown ids contribute nothing.
func (idx *Index) AvailableCardIDs(
	characters [deck.SlotCount]string,
	equipment [deck.SlotCount]deck.Loadout,
) map[string]struct{} {
	ordered := idx.OrderedCardIDs(characters, equipment)
	available := make(map[string]struct{}, len(ordered))
	for _, cardID := range ordered {
		available[cardID] = struct{}{}
	}
	return available
}

// OrderedCardIDs returns the same cards as AvailableCardIDs, each once, in
// layout order: slot by slot, a character's cards in expansion order and
// then the cards of that slot's weapon, armor and accessory.
func (idx *Index) OrderedCardIDs(
	characters [deck.SlotCount]string,
	equipment [deck.SlotCount]deck.Loadout,
) []string {
	seen := make(map[string]struct{})
	var ordered []string
	add := func(cardIDs []string) {
		for _, cardID := range cardIDs {
			if _, ok := seen[cardID]; ok {
				continue
			}
			seen[cardID] = struct{}{}
			ordered = append(ordered, cardID)
		}
	}

	for slot, characterID := range characters {
		if characterID == deck.EmptySlot {
			continue
		}
		add(idx.byCharacter[characterID])
		for _, equipID := range equipment[slot] {
			if equipID != "" {
				add(idx.byEquipment[equipID])
			}
		}
	}
	return ordered
}

// CardSkills returns the sorted ids of the skills that grant the card
func (idx *Index) CardSkills(cardID string) []string {
	return append([]string(nil), idx.cardSkills[cardID]...)
}
