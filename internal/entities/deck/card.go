package deck

import "strconv"

// UseType is the usage mode of a selected card.
// Values from 3 upward select an entry in the special control list.
type UseType int

// Usage modes
const (
	UseImmediate UseType = 1
	UseDisabled  UseType = 2

	conditionalBase = 3
)

// NoParam is the UseParam of cards without a conditional usage mode
const NoParam = -1

// Conditional returns the usage mode bound to special control k
func Conditional(k int) UseType {
	return UseType(conditionalBase + k)
}

// IsConditional reports whether the mode is bound to a special control
func (u UseType) IsConditional() bool {
	return u >= conditionalBase
}

// ControlIndex returns the special control index of a conditional mode, or -1
func (u UseType) ControlIndex() int {
	if !u.IsConditional() {
		return -1
	}
	return int(u) - conditionalBase
}

// IsValid reports whether the mode is one of the known shapes
func (u UseType) IsValid() bool {
	return u >= UseImmediate
}

// Key is the useParamMap key of the mode
func (u UseType) Key() string {
	return strconv.Itoa(int(u))
}

// SelectedCard is a card in the deck together with its usage settings and
// the sources justifying its presence.
type SelectedCard struct {
	ID          string
	OwnerID     string
	SkillID     string
	SkillIndex  *int
	UseType     UseType
	UseParam    int
	UseParamMap map[string]int
	Sources     []CardSource
}

// Clone returns a deep copy
func (c SelectedCard) Clone() SelectedCard {
	out := c
	if c.SkillIndex != nil {
		idx := *c.SkillIndex
		out.SkillIndex = &idx
	}
	if c.UseParamMap != nil {
		out.UseParamMap = make(map[string]int, len(c.UseParamMap))
		for k, v := range c.UseParamMap {
			out.UseParamMap[k] = v
		}
	}
	out.Sources = append([]CardSource(nil), c.Sources...)
	return out
}

// HasSource reports whether an equal source is already recorded
func (c SelectedCard) HasSource(src CardSource) bool {
	for _, existing := range c.Sources {
		if existing.Equal(src) {
			return true
		}
	}
	return false
}

// EquipIDs returns the distinct equipment ids among the sources, in source order
func (c SelectedCard) EquipIDs() []string {
	ids := []string{}
	seen := make(map[string]struct{})
	for _, src := range c.Sources {
		if src.Kind != SourceEquipment {
			continue
		}
		if _, ok := seen[src.EquipID]; ok {
			continue
		}
		seen[src.EquipID] = struct{}{}
		ids = append(ids, src.EquipID)
	}
	return ids
}
