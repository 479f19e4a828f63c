package engine

import (
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/refdata"
)

// Resolver implements SkillResolver over a reference database.
// Each call keeps its own visited set, so cyclic extra-skill links terminate.
type Resolver struct {
	db *refdata.Database
}

// ResolverConfig holds the dependencies of a Resolver
type ResolverConfig struct {
	Database *refdata.Database
}

// Validate ensures all required dependencies are provided
func (c *ResolverConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.Database == nil {
		vb.RequiredField("Database")
	}
	return vb.Build()
}

// NewResolver creates a resolver
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Resolver{db: cfg.Database}, nil
}

var _ SkillResolver = (*Resolver)(nil)

// frame is one pending skill of the traversal stack
type frame struct {
	skillID   string
	passive   bool
	rootIndex int
}

// ResolveCharacter expands the character's skill list, then its passive
// skill list, into card grants.
func (r *Resolver) ResolveCharacter(characterID string) ([]deck.Grant, error) {
	character, ok := r.db.Character(characterID)
	if !ok {
		return nil, errors.NotFoundf("character %s not found", characterID)
	}

	seeds := make([]frame, 0, len(character.SkillList)+len(character.PassiveSkillList))
	for i, id := range character.SkillList {
		seeds = append(seeds, frame{skillID: id, rootIndex: i})
	}
	for _, id := range character.PassiveSkillList {
		seeds = append(seeds, frame{skillID: id, passive: true, rootIndex: -1})
	}

	var grants []deck.Grant
	r.walk(seeds, func(f frame, skill refdata.Skill) {
		kind := deck.SourceCharacter
		if f.passive {
			kind = deck.SourcePassive
		}
		grants = append(grants, deck.Grant{
			CardID: skill.CardID,
			Source: deck.CardSource{
				Kind:        kind,
				CharacterID: characterID,
				SkillID:     skill.ID,
				SlotIndex:   deck.NoSlot,
			},
			OwnerID:    characterID,
			SkillIndex: f.rootIndex,
		})
	})
	return grants, nil
}

// ResolveEquipment expands an item's skill list into card grants tagged with
// the slot and type it is equipped in.
func (r *Resolver) ResolveEquipment(equipID string, slotIndex int, equipType deck.EquipType) ([]deck.Grant, error) {
	item, ok := r.db.Equipment(equipID)
	if !ok {
		return nil, errors.NotFoundf("equipment %s not found", equipID)
	}

	seeds := make([]frame, len(item.SkillList))
	for i, id := range item.SkillList {
		seeds[i] = frame{skillID: id, rootIndex: -1}
	}

	var grants []deck.Grant
	r.walk(seeds, func(_ frame, skill refdata.Skill) {
		grants = append(grants, deck.Grant{
			CardID: skill.CardID,
			Source: deck.CardSource{
				Kind:      deck.SourceEquipment,
				EquipID:   equipID,
				EquipType: equipType,
				SkillID:   skill.ID,
				SlotIndex: slotIndex,
			},
			OwnerID:    r.staticOwner(skill),
			SkillIndex: -1,
		})
	})
	return grants, nil
}

// walk runs a depth-first pre-order traversal over an explicit stack and
// calls emit for every reachable, non-excluded skill carrying a card id.
func (r *Resolver) walk(seeds []frame, emit func(frame, refdata.Skill)) {
	visited := make(map[string]struct{})

	stack := make([]frame, 0, len(seeds))
	for i := len(seeds) - 1; i >= 0; i-- {
		stack = append(stack, seeds[i])
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[f.skillID]; seen {
			continue
		}
		visited[f.skillID] = struct{}{}

		if r.db.IsExcluded(f.skillID) {
			continue
		}
		skill, ok := r.db.Skill(f.skillID)
		if !ok {
			continue
		}

		if skill.CardID != "" {
			emit(f, skill)
		}

		for i := len(skill.ExtraSkillList) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				skillID:   skill.ExtraSkillList[i],
				passive:   f.passive,
				rootIndex: f.rootIndex,
			})
		}
	}
}

// staticOwner resolves the owner of a card not granted by a character
func (r *Resolver) staticOwner(skill refdata.Skill) string {
	if card, ok := r.db.Card(skill.CardID); ok && card.OwnerID != "" {
		return card.OwnerID
	}
	if skill.IsSpecial {
		return refdata.SpecialOwnerID
	}
	return ""
}
