package deck

// SourceKind tags the variant of a CardSource
type SourceKind string

// Source kinds
const (
	SourceCharacter SourceKind = "character"
	SourcePassive   SourceKind = "passive"
	SourceEquipment SourceKind = "equipment"
)

// NoSlot marks a source that is not bound to a slot index
const NoSlot = -1

// CardSource records why a card is present in the deck.
// Character and passive sources fill CharacterID; equipment sources fill
// EquipID and EquipType. Two sources are equal when every field matches.
type CardSource struct {
	Kind        SourceKind
	CharacterID string
	EquipID     string
	EquipType   EquipType
	SkillID     string
	SlotIndex   int
}

// Equal reports whether both sources describe the same origin
func (s CardSource) Equal(other CardSource) bool {
	return s == other
}

// IsFromCharacter reports whether the source is a character or passive
// source of the given character
func (s CardSource) IsFromCharacter(characterID string) bool {
	return (s.Kind == SourceCharacter || s.Kind == SourcePassive) && s.CharacterID == characterID
}

// IsFromEquipment reports whether the source is the given item in the given slot
func (s CardSource) IsFromEquipment(equipID string, slot int, equipType EquipType) bool {
	return s.Kind == SourceEquipment &&
		s.EquipID == equipID &&
		s.SlotIndex == slot &&
		s.EquipType == equipType
}

// Grant is one (card, source) pair produced by skill expansion
type Grant struct {
	CardID string
	Source CardSource
	// OwnerID is resolved once from the source, the card's static owner,
	// or the special owner sentinel.
	OwnerID string
	// SkillIndex is the position of the root skill in the character's skill
	// list, or -1.
	SkillIndex int
}
