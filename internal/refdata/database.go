package refdata

import (
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/deck-api/internal/errors"
)

// Database is the read-only lookup layer over a Document.
// Returned values share slices with the database and must not be modified.
type Database struct {
	characters map[string]Character
	skills     map[string]Skill
	cards      map[string]Card
	equipment  map[string]Equipment
	excluded   map[string]struct{}
	controls   []SpecialControl
	strings    map[string]map[string]string

	characterIDs []string
	equipmentIDs []string
}

// LoadFile reads a YAML reference document from disk
func LoadFile(path string) (*Database, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open reference data %s", path)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Load decodes a YAML reference document
func Load(r io.Reader) (*Database, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode reference data")
	}
	return New(&doc)
}

// New validates a document and builds the lookup tables
func New(doc *Document) (*Database, error) {
	if doc == nil {
		return nil, errors.InvalidArgument("reference document is required")
	}

	db := &Database{
		characters: make(map[string]Character, len(doc.Characters)),
		skills:     make(map[string]Skill, len(doc.Skills)),
		cards:      make(map[string]Card, len(doc.Cards)),
		equipment:  make(map[string]Equipment, len(doc.Equipment)),
		excluded:   make(map[string]struct{}, len(doc.Exclusions)),
		controls:   append([]SpecialControl(nil), doc.SpecialControls...),
		strings:    make(map[string]map[string]string, len(doc.Strings)),
	}

	vb := errors.NewValidationBuilder()

	for i, s := range doc.Skills {
		if s.ID == "" {
			vb.RequiredField(fmt.Sprintf("skills[%d].id", i))
			continue
		}
		if _, dup := db.skills[s.ID]; dup {
			vb.Duplicate("skills", s.ID)
			continue
		}
		db.skills[s.ID] = s
	}
	for _, s := range db.skills {
		for _, extra := range s.ExtraSkillList {
			if _, ok := db.skills[extra]; !ok {
				vb.UnknownReference(fmt.Sprintf("skills[%s].extraSkillList", s.ID), extra)
			}
		}
	}

	for i, c := range doc.Characters {
		if c.ID == "" {
			vb.RequiredField(fmt.Sprintf("characters[%d].id", i))
			continue
		}
		if _, dup := db.characters[c.ID]; dup {
			vb.Duplicate("characters", c.ID)
			continue
		}
		db.validateSkillRefs(vb, fmt.Sprintf("characters[%s].skillList", c.ID), c.SkillList)
		db.validateSkillRefs(vb, fmt.Sprintf("characters[%s].passiveSkillList", c.ID), c.PassiveSkillList)
		db.characters[c.ID] = c
		db.characterIDs = append(db.characterIDs, c.ID)
	}

	for i, c := range doc.Cards {
		if c.ID == "" {
			vb.RequiredField(fmt.Sprintf("cards[%d].id", i))
			continue
		}
		db.cards[c.ID] = c
	}

	for i, e := range doc.Equipment {
		if e.ID == "" {
			vb.RequiredField(fmt.Sprintf("equipment[%d].id", i))
			continue
		}
		if _, dup := db.equipment[e.ID]; dup {
			vb.Duplicate("equipment", e.ID)
			continue
		}
		if !e.Type.IsValid() {
			vb.Field(fmt.Sprintf("equipment[%s].type", e.ID), "must be one of: weapon, armor, accessory")
		}
		db.validateSkillRefs(vb, fmt.Sprintf("equipment[%s].skillList", e.ID), e.SkillList)
		db.equipment[e.ID] = e
		db.equipmentIDs = append(db.equipmentIDs, e.ID)
	}

	for _, id := range doc.Exclusions {
		db.excluded[id] = struct{}{}
	}

	for i, c := range doc.SpecialControls {
		field := fmt.Sprintf("specialControls[%d]", i)
		vb.OneOf(field+".operator", c.Operator,
			OperatorLessEqual, OperatorGreaterEqual, OperatorLess, OperatorGreater, OperatorEqual)
		if c.Minimum > c.Maximum {
			vb.Fieldf(field, "minimum %d exceeds maximum %d", c.Minimum, c.Maximum)
			continue
		}
		vb.InRange(field+".default", c.Default, c.Minimum, c.Maximum)
	}

	for code, table := range doc.Strings {
		tag, err := language.Parse(code)
		if err != nil {
			vb.Fieldf("strings", "invalid language code %q", code)
			continue
		}
		db.strings[tag.String()] = table
	}

	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid reference data")
	}

	sort.Strings(db.characterIDs)
	sort.Strings(db.equipmentIDs)
	return db, nil
}

func (db *Database) validateSkillRefs(vb *errors.ValidationBuilder, field string, ids []string) {
	for _, id := range ids {
		if _, ok := db.skills[id]; !ok {
			vb.UnknownReference(field, id)
		}
	}
}

// Character looks up a character by id
func (db *Database) Character(id string) (Character, bool) {
	c, ok := db.characters[id]
	return c, ok
}

// Skill looks up a skill by id
func (db *Database) Skill(id string) (Skill, bool) {
	s, ok := db.skills[id]
	return s, ok
}

// Card looks up a card's static data by id
func (db *Database) Card(id string) (Card, bool) {
	c, ok := db.cards[id]
	return c, ok
}

// Equipment looks up an equipment item by id
func (db *Database) Equipment(id string) (Equipment, bool) {
	e, ok := db.equipment[id]
	return e, ok
}

// IsExcluded reports whether the resolver must skip the skill entirely
func (db *Database) IsExcluded(skillID string) bool {
	_, ok := db.excluded[skillID]
	return ok
}

// SpecialControl returns the k-th special control
func (db *Database) SpecialControl(k int) (SpecialControl, bool) {
	if k < 0 || k >= len(db.controls) {
		return SpecialControl{}, false
	}
	return db.controls[k], true
}

// CharacterIDs returns every character id in sorted order
func (db *Database) CharacterIDs() []string {
	return append([]string(nil), db.characterIDs...)
}

// EquipmentIDs returns every equipment id in sorted order
func (db *Database) EquipmentIDs() []string {
	return append([]string(nil), db.equipmentIDs...)
}

// Localize returns the string for key in the given language
func (db *Database) Localize(lang, key string) (string, bool) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", false
	}
	value, ok := db.strings[tag.String()][key]
	return value, ok
}

// SkillName returns the localized display name of a skill
func (db *Database) SkillName(lang, skillID string) (string, bool) {
	skill, ok := db.skills[skillID]
	if !ok || skill.NameKey == "" {
		return "", false
	}
	return db.Localize(lang, skill.NameKey)
}
