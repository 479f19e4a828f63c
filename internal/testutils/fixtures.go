package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/deck-api/internal/engine"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/refdata"
)

// Character ids of the reference fixture
const (
	// CharacterCyclic has a cycle in its extra skills and a passive card
	CharacterCyclic = "10000031"
	// CharacterStriker shares card CardStrike with EquipStrikeBlade and owns an excluded skill
	CharacterStriker = "10000047"
	// CharacterFlame grants a card only reachable through nested extras
	CharacterFlame = "10000052"
	// CharacterPlain has a single card
	CharacterPlain = "10000060"
)

// Card ids of the reference fixture
const (
	CardCyclicA      = "10300031"
	CardCyclicB      = "10300032"
	CardCyclicNoRoot = "10300033"
	CardCyclicPass   = "10300034"
	CardStrike       = "10600075"
	CardStrikerPass  = "10300047"
	CardExcluded     = "10300099"
	CardBehindExcl   = "10300098"
	CardFlame        = "10400052"
	CardFlameNested  = "10400053"
	CardPlain        = "10500060"
	CardArmorNested  = "10600100"
	CardCharm        = "10600200"
	CardEdge         = "10600210"
)

// Equipment ids of the reference fixture
const (
	EquipStrikeBlade = "eq00003"
	EquipPlate       = "eq00010"
	EquipCharm       = "eq00020"
	EquipEdge        = "eq00021"
)

// Skill ids used by drift scenarios. Neither is reachable from any character.
const (
	SkillOldFlame = "s_old_flame"
	SkillVanished = "s_vanished"
)

// Special control indexes of the reference fixture
const (
	ControlHandCount = 0
	ControlEnemyHP   = 1
)

// ReferenceLanguage is the language used for name-based drift matching in tests
const ReferenceLanguage = "en"

// ReferenceDocument returns the reference tables shared by engine, session
// and codec tests.
func ReferenceDocument() *refdata.Document {
	return &refdata.Document{
		Characters: []refdata.Character{
			{ID: CharacterCyclic, NameKey: "char_31", SkillList: []string{"s31a", "s31b"}, PassiveSkillList: []string{"s31p"}},
			{ID: CharacterStriker, NameKey: "char_47", SkillList: []string{"s47a", "s47ex"}, PassiveSkillList: []string{"s47p"}},
			{ID: CharacterFlame, NameKey: "char_52", SkillList: []string{"s52a"}},
			{ID: CharacterPlain, NameKey: "char_60", SkillList: []string{"s60a"}},
		},
		Skills: []refdata.Skill{
			{ID: "s31a", CardID: CardCyclicA, ExtraSkillList: []string{"s31a_x"}, NameKey: "skill_cyclic_a"},
			{ID: "s31a_x", CardID: CardCyclicB, ExtraSkillList: []string{"s31a"}, NameKey: "skill_cyclic_b"},
			{ID: "s31b", ExtraSkillList: []string{"s31b_x"}},
			{ID: "s31b_x", CardID: CardCyclicNoRoot, NameKey: "skill_cyclic_c"},
			{ID: "s31p", CardID: CardCyclicPass, NameKey: "skill_cyclic_p"},
			{ID: "s47a", CardID: CardStrike, NameKey: "skill_strike"},
			{ID: "s47ex", CardID: CardExcluded, ExtraSkillList: []string{"s47deep"}},
			{ID: "s47deep", CardID: CardBehindExcl},
			{ID: "s47p", ExtraSkillList: []string{"s47p_x"}},
			{ID: "s47p_x", CardID: CardStrikerPass, NameKey: "skill_guard"},
			{ID: "s52a", CardID: CardFlame, ExtraSkillList: []string{"s52n1"}, NameKey: "skill_flame"},
			{ID: "s52n1", ExtraSkillList: []string{"s52n2"}},
			{ID: "s52n2", CardID: CardFlameNested, NameKey: "skill_ember"},
			{ID: "s60a", CardID: CardPlain, NameKey: "skill_plain"},
			{ID: "seq3", CardID: CardStrike, NameKey: "skill_strike"},
			{ID: "seq10", ExtraSkillList: []string{"seq10x"}},
			{ID: "seq10x", CardID: CardArmorNested, NameKey: "skill_bulwark"},
			{ID: "seq20", CardID: CardCharm, NameKey: "skill_charm", IsSpecial: true},
			{ID: "seq21", CardID: CardEdge, NameKey: "skill_edge"},
			{ID: SkillOldFlame, CardID: "999999", NameKey: "skill_flame"},
			{ID: SkillVanished, CardID: "888888", NameKey: "skill_vanished"},
		},
		Cards: []refdata.Card{
			{ID: CardStrike, OwnerID: CharacterStriker},
			{ID: CardCharm},
		},
		Equipment: []refdata.Equipment{
			{ID: EquipStrikeBlade, NameKey: "eq_blade", Type: deck.EquipWeapon, SkillList: []string{"seq3"}},
			{ID: EquipPlate, NameKey: "eq_plate", Type: deck.EquipArmor, SkillList: []string{"seq10"}},
			{ID: EquipCharm, NameKey: "eq_charm", Type: deck.EquipAccessory, SkillList: []string{"seq20"}},
			{ID: EquipEdge, NameKey: "eq_edge", Type: deck.EquipWeapon, SkillList: []string{"seq21"}},
		},
		Exclusions: []string{"s47ex"},
		SpecialControls: []refdata.SpecialControl{
			{Key: "hand_card_count", Operator: refdata.OperatorLessEqual, Minimum: 0, Maximum: 10, Default: 3},
			{Key: "enemy_hp_percent", Operator: refdata.OperatorGreaterEqual, Minimum: 1, Maximum: 100, Default: 50},
		},
		Strings: map[string]map[string]string{
			"en": {
				"skill_strike":   "Strike",
				"skill_flame":    "Flame Burst",
				"skill_ember":    "Ember",
				"skill_charm":    "Charm",
				"skill_vanished": "Vanished Art",
				"skill_plain":    "Plain Shot",
			},
			"zh-Hans": {
				"skill_strike": "打击",
				"skill_flame":  "烈焰爆发",
			},
		},
	}
}

// CreateTestDatabase builds the fixture database
func CreateTestDatabase(t *testing.T) *refdata.Database {
	t.Helper()
	db, err := refdata.New(ReferenceDocument())
	require.NoError(t, err, "failed to build reference fixture")
	return db
}

// CreateTestEngine builds the fixture database with its resolver and index
func CreateTestEngine(t *testing.T) (*refdata.Database, *engine.Resolver, *engine.Index) {
	t.Helper()
	return CreateTestEngineFrom(t, ReferenceDocument())
}

// CreateTestEngineFrom builds a database, resolver and index from doc
func CreateTestEngineFrom(t *testing.T, doc *refdata.Document) (*refdata.Database, *engine.Resolver, *engine.Index) {
	t.Helper()
	db, err := refdata.New(doc)
	require.NoError(t, err, "failed to build reference data")

	resolver, err := engine.NewResolver(&engine.ResolverConfig{Database: db})
	require.NoError(t, err, "failed to create resolver")

	index, err := engine.NewIndex(&engine.IndexConfig{Database: db, Resolver: resolver})
	require.NoError(t, err, "failed to create index")

	return db, resolver, index
}
