package refdata_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/refdata"
)

type DatabaseTestSuite struct {
	suite.Suite
}

func TestDatabaseSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func (s *DatabaseTestSuite) TestLoadFile() {
	db, err := refdata.LoadFile("testdata/reference.yaml")
	s.Require().NoError(err)

	character, ok := db.Character("10000031")
	s.Require().True(ok)
	s.Equal([]string{"s31a"}, character.SkillList)
	s.Equal([]string{"s31p"}, character.PassiveSkillList)

	item, ok := db.Equipment("eq00003")
	s.Require().True(ok)
	s.Equal(deck.EquipWeapon, item.Type)

	card, ok := db.Card("10600075")
	s.Require().True(ok)
	s.Equal("10000047", card.OwnerID)

	s.Equal([]string{"10000031", "10000047"}, db.CharacterIDs())
	s.Equal([]string{"eq00003"}, db.EquipmentIDs())

	control, ok := db.SpecialControl(0)
	s.Require().True(ok)
	s.Equal("hand_card_count", control.Key)
	_, ok = db.SpecialControl(1)
	s.False(ok)
	_, ok = db.SpecialControl(-1)
	s.False(ok)
}

func (s *DatabaseTestSuite) TestLoadMissingFile() {
	_, err := refdata.LoadFile("testdata/missing.yaml")
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to open reference data")
}

func (s *DatabaseTestSuite) TestLoadRejectsUnknownFields() {
	_, err := refdata.Load(strings.NewReader("characters: []\nbogus: 1\n"))
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *DatabaseTestSuite) TestLocalizeCanonicalizesLanguage() {
	db, err := refdata.LoadFile("testdata/reference.yaml")
	s.Require().NoError(err)

	testCases := []struct {
		name     string
		lang     string
		key      string
		expected string
		found    bool
	}{
		{name: "exact tag", lang: "en", key: "skill_strike", expected: "Strike", found: true},
		{name: "canonical script casing", lang: "zh-Hans", key: "skill_strike", expected: "打击", found: true},
		{name: "lower case tag", lang: "zh-hans", key: "skill_strike", expected: "打击", found: true},
		{name: "missing key", lang: "en", key: "skill_unknown"},
		{name: "missing language", lang: "ja", key: "skill_strike"},
		{name: "malformed tag", lang: "not a tag!", key: "skill_strike"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			value, ok := db.Localize(tc.lang, tc.key)
			s.Equal(tc.found, ok)
			s.Equal(tc.expected, value)
		})
	}
}

func (s *DatabaseTestSuite) TestSkillName() {
	db, err := refdata.LoadFile("testdata/reference.yaml")
	s.Require().NoError(err)

	name, ok := db.SkillName("en", "seq3")
	s.True(ok)
	s.Equal("Strike", name)

	_, ok = db.SkillName("en", "s31a_x")
	s.False(ok, "skill without a name key")

	_, ok = db.SkillName("en", "nope")
	s.False(ok)
}

func (s *DatabaseTestSuite) TestNewValidation() {
	testCases := []struct {
		name   string
		doc    *refdata.Document
		errMsg string
	}{
		{
			name:   "nil document",
			doc:    nil,
			errMsg: "reference document is required",
		},
		{
			name: "missing skill id",
			doc: &refdata.Document{
				Skills: []refdata.Skill{{CardID: "1"}},
			},
			errMsg: "skills[0].id: is required",
		},
		{
			name: "duplicate skill",
			doc: &refdata.Document{
				Skills: []refdata.Skill{{ID: "a"}, {ID: "a"}},
			},
			errMsg: `duplicate id "a"`,
		},
		{
			name: "dangling extra skill",
			doc: &refdata.Document{
				Skills: []refdata.Skill{{ID: "a", ExtraSkillList: []string{"b"}}},
			},
			errMsg: `skills[a].extraSkillList: references unknown id "b"`,
		},
		{
			name: "character references unknown skill",
			doc: &refdata.Document{
				Characters: []refdata.Character{{ID: "c1", PassiveSkillList: []string{"p"}}},
			},
			errMsg: `characters[c1].passiveSkillList: references unknown id "p"`,
		},
		{
			name: "invalid equipment type",
			doc: &refdata.Document{
				Equipment: []refdata.Equipment{{ID: "e1", Type: "helmet"}},
			},
			errMsg: "equipment[e1].type: must be one of: weapon, armor, accessory",
		},
		{
			name: "control bounds inverted",
			doc: &refdata.Document{
				SpecialControls: []refdata.SpecialControl{
					{Key: "k", Operator: refdata.OperatorLess, Minimum: 5, Maximum: 1},
				},
			},
			errMsg: "minimum 5 exceeds maximum 1",
		},
		{
			name: "control default out of range",
			doc: &refdata.Document{
				SpecialControls: []refdata.SpecialControl{
					{Key: "k", Operator: refdata.OperatorEqual, Minimum: 0, Maximum: 3, Default: 9},
				},
			},
			errMsg: "specialControls[0].default: must be between 0 and 3",
		},
		{
			name: "unknown operator",
			doc: &refdata.Document{
				SpecialControls: []refdata.SpecialControl{
					{Key: "k", Operator: "!="},
				},
			},
			errMsg: "specialControls[0].operator: must be one of",
		},
		{
			name: "invalid language",
			doc: &refdata.Document{
				Strings: map[string]map[string]string{"??": {"k": "v"}},
			},
			errMsg: `invalid language code "??"`,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			db, err := refdata.New(tc.doc)
			s.Require().Error(err)
			s.Nil(db)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *DatabaseTestSuite) TestExclusions() {
	db, err := refdata.New(&refdata.Document{
		Skills:     []refdata.Skill{{ID: "a"}, {ID: "b"}},
		Exclusions: []string{"b"},
	})
	s.Require().NoError(err)
	s.False(db.IsExcluded("a"))
	s.True(db.IsExcluded("b"))
}

func (s *DatabaseTestSuite) TestSpecialControl() {
	control := refdata.SpecialControl{Operator: refdata.OperatorLessEqual, Minimum: 1, Maximum: 8}

	s.Equal(1, control.Clamp(-4))
	s.Equal(8, control.Clamp(99))
	s.Equal(5, control.Clamp(5))

	s.True(control.Holds(3, 3))
	s.False(control.Holds(4, 3))

	control.Operator = refdata.OperatorGreater
	s.True(control.Holds(4, 3))
	s.False(control.Holds(3, 3))

	control.Operator = "bogus"
	s.False(control.Holds(1, 1))
}

func (s *DatabaseTestSuite) TestSampleDataLoads() {
	db, err := refdata.LoadFile("../../data/reference.yaml")
	s.Require().NoError(err)
	s.Len(db.CharacterIDs(), 4)
	s.True(db.IsExcluded("s47ex"))
}
