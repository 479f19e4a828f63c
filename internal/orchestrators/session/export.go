package session

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/KirkDiggler/deck-api/internal/codec"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
)

// Preset builds the serializable form of the deck. The header carries the
// leader id. Equipment and awakening are always filled here; the clipboard
// codec drops them.
func (s *Session) Preset() *deck.Preset {
	state := s.Snapshot()

	p := &deck.Preset{
		RoleList:  make([]string, deck.SlotCount),
		Header:    state.Leader,
		CardList:  make([]deck.PresetCard, 0, len(state.Cards)),
		CardIDMap: make(map[string]string, len(state.Cards)),
	}
	copy(p.RoleList, state.Characters[:])

	for _, c := range state.Cards {
		paramMap := c.UseParamMap
		if paramMap == nil {
			paramMap = map[string]int{}
		}
		p.CardList = append(p.CardList, deck.PresetCard{
			ID:          c.ID,
			OwnerID:     c.OwnerID,
			SkillID:     c.SkillID,
			SkillIndex:  c.SkillIndex,
			UseType:     c.UseType,
			UseParam:    c.UseParam,
			UseParamMap: paramMap,
			EquipIDList: c.EquipIDs(),
		})
		p.CardIDMap[c.ID] = c.OwnerID
	}

	leaderOn := state.Battle.LeaderCardOn
	spOn := state.Battle.SpCardOn
	keep := state.Battle.KeepCardNum
	discard := int(state.Battle.Discard) + 1
	other := int(state.Battle.EnemyPriority)
	p.IsLeaderCardOn = &leaderOn
	p.IsSpCardOn = &spOn
	p.KeepCardNum = &keep
	p.DiscardType = &discard
	p.OtherCard = &other

	for slot, loadout := range state.Equipment {
		if loadout.IsEmpty() {
			continue
		}
		if p.Equipment == nil {
			p.Equipment = make(map[string]deck.Loadout)
		}
		p.Equipment[strconv.Itoa(slot)] = loadout
	}
	if len(state.Awakening) > 0 {
		p.Awakening = state.Awakening
	}

	return p
}

// ExportText encodes the deck in the given format
func (s *Session) ExportText(ctx context.Context, format codec.Format) (string, error) {
	text, err := codec.Encode(s.Preset(), format)
	if err != nil {
		return "", err
	}
	slog.DebugContext(ctx, "deck exported",
		"deck_id", s.id,
		"format", format.String(),
		"cards", s.cards.Len(),
		"length", len(text))
	return text, nil
}
