// Package refdata holds the game's static reference tables: characters,
// skills, cards, equipment, the exclusion list, special controls and
// localized strings. A Database is built once and never mutated.
package refdata

import "github.com/KirkDiggler/deck-api/internal/entities/deck"

// SpecialOwnerID is the owner assigned to cards granted by special skills
// that have no character or static owner.
const SpecialOwnerID = "special"

// Character is a selectable character
type Character struct {
	ID               string   `yaml:"id"`
	NameKey          string   `yaml:"nameKey"`
	SkillList        []string `yaml:"skillList"`
	PassiveSkillList []string `yaml:"passiveSkillList"`
}

// Skill is a node of the skill graph. ExtraSkillList links are not
// guaranteed to be acyclic.
type Skill struct {
	ID             string   `yaml:"id"`
	CardID         string   `yaml:"cardId"`
	ExtraSkillList []string `yaml:"extraSkillList"`
	NameKey        string   `yaml:"nameKey"`
	IsSpecial      bool     `yaml:"isSpecial"`
}

// Card carries the static owner of a card id
type Card struct {
	ID      string `yaml:"id"`
	OwnerID string `yaml:"ownerId"`
}

// Equipment is an item that can be equipped in a character slot
type Equipment struct {
	ID        string         `yaml:"id"`
	NameKey   string         `yaml:"nameKey"`
	Type      deck.EquipType `yaml:"type"`
	SkillList []string       `yaml:"skillList"`
}

// Comparison operators of special controls
const (
	OperatorLessEqual    = "<="
	OperatorGreaterEqual = ">="
	OperatorLess         = "<"
	OperatorGreater      = ">"
	OperatorEqual        = "=="
)

// SpecialControl is a conditional usage predicate, e.g. "hand cards <= N"
type SpecialControl struct {
	Key      string `yaml:"key"`
	Operator string `yaml:"operator"`
	Minimum  int    `yaml:"minimum"`
	Maximum  int    `yaml:"maximum"`
	Default  int    `yaml:"default"`
}

// Clamp bounds v to the control's declared range
func (c SpecialControl) Clamp(v int) int {
	if v < c.Minimum {
		return c.Minimum
	}
	if v > c.Maximum {
		return c.Maximum
	}
	return v
}

// Holds reports whether the predicate is satisfied for the observed value
func (c SpecialControl) Holds(observed, threshold int) bool {
	switch c.Operator {
	case OperatorLessEqual:
		return observed <= threshold
	case OperatorGreaterEqual:
		return observed >= threshold
	case OperatorLess:
		return observed < threshold
	case OperatorGreater:
		return observed > threshold
	case OperatorEqual:
		return observed == threshold
	default:
		return false
	}
}

// Document is the on-disk layout of the reference tables
type Document struct {
	Characters      []Character                  `yaml:"characters"`
	Skills          []Skill                      `yaml:"skills"`
	Cards           []Card                       `yaml:"cards"`
	Equipment       []Equipment                  `yaml:"equipment"`
	Exclusions      []string                     `yaml:"exclusions"`
	SpecialControls []SpecialControl             `yaml:"specialControls"`
	Strings         map[string]map[string]string `yaml:"strings"`
}
