package session_test

import (
	"github.com/google/go-cmp/cmp"

	"github.com/KirkDiggler/deck-api/internal/codec"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/orchestrators/session"
	"github.com/KirkDiggler/deck-api/internal/refdata"
	"github.com/KirkDiggler/deck-api/internal/testutils"
)

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func (s *SessionTestSuite) buildDeck() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterCyclic))
	s.Require().NoError(s.session.AddCharacter(s.ctx, 2, testutils.CharacterStriker))
	s.Require().NoError(s.session.AddCharacter(s.ctx, 4, testutils.CharacterFlame))
	s.Require().NoError(s.session.SetLeader(s.ctx, testutils.CharacterStriker))
	s.Require().NoError(s.session.Equip(s.ctx, 2, testutils.EquipStrikeBlade))
	s.Require().NoError(s.session.Equip(s.ctx, 4, testutils.EquipPlate))
	s.Require().NoError(s.session.UpdateUsage(s.ctx, testutils.CardStrike, deck.Conditional(testutils.ControlEnemyHP), 75, nil))
	s.Require().NoError(s.session.UpdateUsage(s.ctx, testutils.CardCyclicPass, deck.UseDisabled, deck.NoParam, nil))
	s.Require().NoError(s.session.ReorderCards(s.ctx, 4, 0))
	s.Require().NoError(s.session.SetBattleSettings(s.ctx, deck.BattleSettings{
		LeaderCardOn:  false,
		SpCardOn:      true,
		KeepCardNum:   2,
		Discard:       1,
		EnemyPriority: 2,
	}))
	s.Require().NoError(s.session.SetAwakening(s.ctx, testutils.CharacterFlame, 3))
}

func (s *SessionTestSuite) TestPresetShape() {
	s.buildDeck()
	p := s.session.Preset()

	s.Equal([]string{testutils.CharacterCyclic, "", testutils.CharacterStriker, "", testutils.CharacterFlame}, p.RoleList)
	s.Equal(testutils.CharacterStriker, p.Header)
	s.Equal(2, *p.DiscardType, "discard type is exported with a +1 offset")
	s.Equal(2, *p.OtherCard)
	s.False(*p.IsLeaderCardOn)
	s.Equal(map[string]deck.Loadout{
		"2": {testutils.EquipStrikeBlade, "", ""},
		"4": {"", testutils.EquipPlate, ""},
	}, p.Equipment)
	s.Equal(map[string]int{testutils.CharacterFlame: 3}, p.Awakening)
	s.Equal(testutils.CharacterStriker, p.CardIDMap[testutils.CardStrike])

	for _, c := range p.CardList {
		s.NotNil(c.EquipIDList)
		s.NotNil(c.UseParamMap)
		if c.ID == testutils.CardStrike {
			s.Equal([]string{testutils.EquipStrikeBlade}, c.EquipIDList)
			s.Equal(75, c.UseParam)
		}
	}
}

func (s *SessionTestSuite) TestURLExportImportRoundTrip() {
	s.buildDeck()
	want := s.session.Snapshot()

	text, err := s.session.ExportText(s.ctx, codec.FormatURL)
	s.Require().NoError(err)

	other := s.newSession(nil)
	s.Require().NoError(other.AddCharacter(s.ctx, 1, testutils.CharacterPlain))

	result := other.ImportText(s.ctx, text, codec.FormatURL)
	s.Require().True(result.Success, result.Message)
	s.Equal(deck.MessageImportSuccess, result.Message)
	s.Empty(result.Substitutions)
	s.Empty(result.Dropped)

	if diff := cmp.Diff(want, other.Snapshot()); diff != "" {
		s.Failf("import mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *SessionTestSuite) TestClipboardImportDropsEquipmentCards() {
	s.buildDeck()
	text, err := s.session.ExportText(s.ctx, codec.FormatClipboard)
	s.Require().NoError(err)

	other := s.newSession(nil)
	result := other.ImportText(s.ctx, text, codec.FormatClipboard)
	s.Require().True(result.Success)
	s.Equal([]string{testutils.CardArmorNested}, result.Dropped)

	state := other.Snapshot()
	s.Equal(testutils.CharacterStriker, state.Leader)
	s.Equal([deck.SlotCount]deck.Loadout{}, state.Equipment)
	s.Empty(state.Awakening)

	strike, ok := findCard(state, testutils.CardStrike)
	s.Require().True(ok, "the character still grants the card")
	s.Equal(75, strike.UseParam)
	s.Len(strike.Sources, 1)
}

func (s *SessionTestSuite) TestImportRebindsDriftedCardByName() {
	p := &deck.Preset{
		RoleList: []string{testutils.CharacterFlame, "", "", "", ""},
		CardList: []deck.PresetCard{
			{
				ID:          "999999",
				OwnerID:     testutils.CharacterFlame,
				SkillID:     testutils.SkillOldFlame,
				UseType:     deck.Conditional(testutils.ControlHandCount),
				UseParam:    4,
				UseParamMap: map[string]int{"3": 4},
			},
		},
	}

	result := s.session.ImportPreset(s.ctx, p)
	s.Require().True(result.Success)
	s.Equal(map[string]string{"999999": testutils.CardFlame}, result.Substitutions)
	s.Empty(result.Dropped)

	state := s.session.Snapshot()
	s.Equal([]string{testutils.CardFlame, testutils.CardFlameNested}, state.CardIDs())
	flame := state.Cards[0]
	s.Equal(deck.Conditional(testutils.ControlHandCount), flame.UseType)
	s.Equal(4, flame.UseParam)
	s.NotEmpty(flame.Sources)
}

func (s *SessionTestSuite) TestImportRebindsToEarliestSlotOnNameTie() {
	const (
		fireLow  = "20000001"
		fireHigh = "20000002"
		oldFire  = "555555"
	)
	doc := testutils.ReferenceDocument()
	doc.Characters = append(doc.Characters,
		refdata.Character{ID: fireLow, SkillList: []string{"s_fire_low"}},
		refdata.Character{ID: fireHigh, SkillList: []string{"s_fire_high"}},
	)
	doc.Skills = append(doc.Skills,
		refdata.Skill{ID: "s_fire_low", CardID: "900", NameKey: "skill_fire"},
		refdata.Skill{ID: "s_fire_high", CardID: "100", NameKey: "skill_fire"},
		refdata.Skill{ID: "s_fire_old", CardID: oldFire, NameKey: "skill_fire"},
	)
	doc.Strings["en"]["skill_fire"] = "Fire"
	db, resolver, index := testutils.CreateTestEngineFrom(s.T(), doc)

	testCases := []struct {
		name     string
		roles    []string
		expected string
	}{
		{name: "first slot holds the higher id", roles: []string{fireLow, fireHigh, "", "", ""}, expected: "900"},
		{name: "first slot holds the lower id", roles: []string{fireHigh, fireLow, "", "", ""}, expected: "100"},
		{name: "empty leading slots are skipped", roles: []string{"", "", fireHigh, fireLow, ""}, expected: "100"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			sess, err := session.New(&session.Config{
				Database:          db,
				Resolver:          resolver,
				Index:             index,
				ReferenceLanguage: testutils.ReferenceLanguage,
			})
			s.Require().NoError(err)

			result := sess.ImportPreset(s.ctx, &deck.Preset{
				RoleList: tc.roles,
				CardList: []deck.PresetCard{
					{ID: oldFire, SkillID: "s_fire_old", UseType: deck.UseDisabled, UseParam: deck.NoParam},
				},
			})
			s.Require().True(result.Success)
			s.Equal(map[string]string{oldFire: tc.expected}, result.Substitutions)

			card, ok := findCard(sess.Snapshot(), tc.expected)
			s.Require().True(ok)
			s.Equal(deck.UseDisabled, card.UseType)
		})
	}
}

func (s *SessionTestSuite) TestImportDropsDriftedCardWithoutMatch() {
	p := &deck.Preset{
		RoleList: []string{testutils.CharacterPlain, "", "", "", ""},
		CardList: []deck.PresetCard{
			{ID: "999999", SkillID: testutils.SkillOldFlame, UseType: deck.UseDisabled, UseParam: deck.NoParam},
			{ID: "888888", SkillID: testutils.SkillVanished, UseType: deck.UseImmediate, UseParam: deck.NoParam},
			{ID: "777777", SkillID: "never_existed", UseType: deck.UseImmediate, UseParam: deck.NoParam},
		},
	}

	result := s.session.ImportPreset(s.ctx, p)
	s.Require().True(result.Success)
	s.Empty(result.Substitutions)
	s.Equal([]string{"999999", "888888", "777777"}, result.Dropped)
	s.Equal([]string{testutils.CardPlain}, s.session.Snapshot().CardIDs())
}

func (s *SessionTestSuite) TestImportOrderAndDefaults() {
	p := &deck.Preset{
		RoleList: []string{"", testutils.CharacterCyclic, "", "", ""},
		Header:   testutils.CharacterFlame,
		CardList: []deck.PresetCard{
			{ID: testutils.CardCyclicPass, UseType: deck.UseDisabled, UseParam: deck.NoParam},
			{ID: testutils.CardCyclicB, UseType: deck.Conditional(7), UseParam: 3},
		},
	}

	result := s.session.ImportPreset(s.ctx, p)
	s.Require().True(result.Success)

	state := s.session.Snapshot()
	s.Equal([]string{
		testutils.CardCyclicPass,
		testutils.CardCyclicB,
		testutils.CardCyclicA,
		testutils.CardCyclicNoRoot,
	}, state.CardIDs(), "imported order first, then derived cards")

	s.Equal(deck.UseDisabled, state.Cards[0].UseType)
	s.Equal(deck.UseImmediate, state.Cards[1].UseType, "unknown control falls back to immediate")
	s.Equal(deck.NoParam, state.Cards[1].UseParam)

	s.Equal(testutils.CharacterCyclic, state.Leader, "leader not in the deck is ignored")
	s.Equal(deck.DefaultBattleSettings(), state.Battle)
}

func (s *SessionTestSuite) TestImportBattleSettings() {
	p := &deck.Preset{
		RoleList:       []string{"", "", "", "", ""},
		CardList:       []deck.PresetCard{},
		IsLeaderCardOn: boolPtr(false),
		KeepCardNum:    intPtr(4),
		DiscardType:    intPtr(3),
		OtherCard:      intPtr(1),
	}

	result := s.session.ImportPreset(s.ctx, p)
	s.Require().True(result.Success)
	s.Equal(deck.BattleSettings{
		LeaderCardOn:  false,
		SpCardOn:      true,
		KeepCardNum:   4,
		Discard:       2,
		EnemyPriority: 1,
	}, s.session.Snapshot().Battle)
}

func (s *SessionTestSuite) TestImportRejectsMalformedPresetBeforeMutation() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterPlain))

	testCases := []struct {
		name   string
		preset *deck.Preset
	}{
		{name: "nil preset", preset: nil},
		{name: "short role list", preset: &deck.Preset{RoleList: []string{"a"}, CardList: []deck.PresetCard{}}},
		{name: "missing card list", preset: &deck.Preset{RoleList: make([]string, deck.SlotCount)}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result := s.session.ImportPreset(s.ctx, tc.preset)
			s.False(result.Success)
			s.Equal(deck.MessageInvalidPresetFormat, result.Message)
			s.Equal([]string{testutils.CardPlain}, s.session.Snapshot().CardIDs())
		})
	}
}

func (s *SessionTestSuite) TestImportFailureIsNotRolledBack() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 3, testutils.CharacterFlame))

	result := s.session.ImportPreset(s.ctx, &deck.Preset{
		RoleList:  []string{testutils.CharacterPlain, "", "", "", ""},
		CardList:  []deck.PresetCard{},
		Equipment: map[string]deck.Loadout{"2": {testutils.EquipStrikeBlade}},
	})
	s.False(result.Success)
	s.Equal(deck.MessageImportFailed, result.Message)

	state := s.session.Snapshot()
	s.Equal([deck.SlotCount]string{testutils.CharacterPlain}, state.Characters, "state up to the failure is kept")
}

func (s *SessionTestSuite) TestImportSkipsUnknownCharacters() {
	result := s.session.ImportPreset(s.ctx, &deck.Preset{
		Header:   "ghost",
		RoleList: []string{"ghost", testutils.CharacterPlain, "", "wraith", testutils.CharacterFlame},
		CardList: []deck.PresetCard{
			{ID: testutils.CardPlain, UseType: deck.UseImmediate, UseParam: deck.NoParam},
			{ID: testutils.CardFlame, UseType: deck.UseImmediate, UseParam: deck.NoParam},
		},
		Equipment: map[string]deck.Loadout{"0": {testutils.EquipStrikeBlade}},
		Awakening: map[string]int{"ghost": 2},
	})
	s.Require().True(result.Success, result.Message)
	s.Equal([]string{"ghost", "wraith"}, result.Skipped)

	state := s.session.Snapshot()
	s.Equal([deck.SlotCount]string{"", testutils.CharacterPlain, "", "", testutils.CharacterFlame}, state.Characters)
	s.Equal(testutils.CharacterPlain, state.Leader, "unknown leader falls back to the first placed character")
	s.Equal(deck.Loadout{}, state.Equipment[0], "equipment of a skipped slot is ignored")
	s.NotContains(s.cardSet(), testutils.CardStrike)
	s.Contains(s.cardSet(), testutils.CardPlain)
}

func (s *SessionTestSuite) TestImportFailsOnBadEquipmentLayout() {
	result := s.session.ImportPreset(s.ctx, &deck.Preset{
		RoleList:  []string{testutils.CharacterPlain, "", "", "", ""},
		CardList:  []deck.PresetCard{},
		Equipment: map[string]deck.Loadout{"1": {testutils.EquipStrikeBlade}},
	})
	s.False(result.Success)
	s.Equal(deck.MessageImportFailed, result.Message)
}

func (s *SessionTestSuite) TestImportTextErrorsLeaveDeckUntouched() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterPlain))

	result := s.session.ImportText(s.ctx, "%%% not a preset %%%", codec.FormatClipboard)
	s.False(result.Success)
	s.Equal(deck.MessageImportFailed, result.Message)

	short := &deck.Preset{RoleList: []string{"a"}, CardList: []deck.PresetCard{}}
	text, err := codec.Encode(short, codec.FormatClipboard)
	s.Require().NoError(err)

	result = s.session.ImportText(s.ctx, text, codec.FormatClipboard)
	s.False(result.Success)
	s.Equal(deck.MessageInvalidPresetFormat, result.Message)

	s.Equal([]string{testutils.CardPlain}, s.session.Snapshot().CardIDs())
}

func (s *SessionTestSuite) TestImportPublishesEvent() {
	result := s.session.ImportPreset(s.ctx, &deck.Preset{
		RoleList: []string{testutils.CharacterPlain, "", "", "", ""},
		CardList: []deck.PresetCard{},
	})
	s.Require().True(result.Success)
	s.Equal(session.EventPresetImported, s.bus.published[len(s.bus.published)-1])
}
