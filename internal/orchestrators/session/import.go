package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/KirkDiggler/deck-api/internal/codec"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
)

// ImportText decodes preset text and applies it. Decoding happens before any
// state is touched, so a bad paste leaves the deck unchanged.
func (s *Session) ImportText(ctx context.Context, text string, format codec.Format) deck.ImportResult {
	p, err := codec.Decode(text, format)
	if err != nil {
		message := errors.Reason(err, deck.MessageImportFailed)
		slog.WarnContext(ctx, "preset text rejected",
			"deck_id", s.id,
			"format", format.String(),
			"message", message,
			"error", err)
		return deck.ImportResult{Message: message}
	}
	return s.ImportPreset(ctx, p)
}

// ImportPreset replaces the deck with the preset. Cards whose ids no longer
// resolve are rebound to an available card whose skill has the same name in
// the reference language, or dropped.
//
// A failure after the reset leaves the deck partially populated.
func (s *Session) ImportPreset(ctx context.Context, p *deck.Preset) (result deck.ImportResult) {
	if err := validatePreset(p); err != nil {
		slog.WarnContext(ctx, "preset rejected",
			"deck_id", s.id,
			"error", err)
		return deck.ImportResult{Message: errors.Reason(err, deck.MessageInvalidPresetFormat)}
	}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "preset import panicked",
				"deck_id", s.id,
				"panic", fmt.Sprint(r))
			result = deck.ImportResult{Message: deck.MessageImportFailed}
		}
	}()

	result, err := s.apply(ctx, p)
	if err != nil {
		slog.ErrorContext(ctx, "preset import failed",
			"deck_id", s.id,
			"error", err)
		return deck.ImportResult{Message: deck.MessageImportFailed}
	}

	slog.InfoContext(ctx, "preset imported",
		"deck_id", s.id,
		"characters", countOccupied(s.slots.Characters()),
		"cards", s.cards.Len(),
		"substitutions", len(result.Substitutions),
		"dropped", len(result.Dropped),
		"skipped", len(result.Skipped))
	s.publish(ctx, EventPresetImported, entity{id: s.id, kind: EntityTypeDeck})
	return result
}

func validatePreset(p *deck.Preset) error {
	if p == nil {
		return errors.InvalidArgument("preset is required")
	}
	if len(p.RoleList) != deck.SlotCount {
		return errors.InvalidArgumentf("role list has %d entries, want %d", len(p.RoleList), deck.SlotCount)
	}
	if p.CardList == nil {
		return errors.InvalidArgument("card list is required")
	}
	return nil
}

func (s *Session) apply(ctx context.Context, p *deck.Preset) (deck.ImportResult, error) {
	s.Clear(ctx)

	skipped, err := s.stageCharacters(ctx, p.RoleList)
	if err != nil {
		return deck.ImportResult{}, err
	}
	s.commitLeader(ctx, p.Header)

	if err := s.applyEquipment(ctx, p.Equipment, skipped); err != nil {
		return deck.ImportResult{}, err
	}

	order, err := s.mergeCards(ctx, p.CardList)
	if err != nil {
		return deck.ImportResult{}, err
	}

	substitutions, dropped := s.reconcileDrift(ctx, order)
	for i, id := range order {
		if target, ok := substitutions[id]; ok {
			order[i] = target
		}
	}
	s.cards.ApplyOrder(order)

	s.battle = battleFromPreset(p)
	s.applyAwakening(ctx, p.Awakening)

	return deck.ImportResult{
		Success:       true,
		Message:       deck.MessageImportSuccess,
		Substitutions: substitutions,
		Dropped:       dropped,
		Skipped:       skippedIDs(p.RoleList, skipped),
	}, nil
}

// stageCharacters places every role list entry and returns the slots whose
// character is unknown to the database. Those slots stay empty. Leader
// assignment waits for commitLeader so it sees the complete slot array.
func (s *Session) stageCharacters(ctx context.Context, roles []string) (map[int]struct{}, error) {
	skipped := make(map[int]struct{})
	for slot, characterID := range roles {
		if characterID == deck.EmptySlot {
			continue
		}
		err := s.AddCharacter(ctx, slot, characterID)
		if errors.IsNotFound(err) {
			slog.WarnContext(ctx, "unknown character skipped",
				"deck_id", s.id,
				"slot", slot,
				"character_id", characterID)
			skipped[slot] = struct{}{}
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stage slot %d", slot)
		}
	}
	return skipped, nil
}

func skippedIDs(roles []string, skipped map[int]struct{}) []string {
	var out []string
	for slot, characterID := range roles {
		if _, ok := skipped[slot]; ok {
			out = append(out, characterID)
		}
	}
	return out
}

// commitLeader applies the imported leader when it is in the deck.
// Otherwise the leader chosen while staging stays.
func (s *Session) commitLeader(ctx context.Context, leader string) {
	if leader == deck.EmptySlot {
		return
	}
	if err := s.SetLeader(ctx, leader); err != nil {
		slog.WarnContext(ctx, "imported leader ignored",
			"deck_id", s.id,
			"leader", leader,
			"kept", s.slots.Leader(),
			"error", err)
	}
}

// applyEquipment equips the layout slot by slot. Items for skipped slots are
// ignored; items for any other empty slot fail the import.
func (s *Session) applyEquipment(ctx context.Context, layout map[string]deck.Loadout, skipped map[int]struct{}) error {
	keys := make([]string, 0, len(layout))
	for k := range layout {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		slot, err := strconv.Atoi(key)
		if err != nil {
			return errors.InvalidArgumentf("equipment slot %q is not a number", key)
		}
		if _, ok := skipped[slot]; ok {
			slog.DebugContext(ctx, "equipment of skipped character ignored",
				"deck_id", s.id,
				"slot", slot)
			continue
		}
		for _, equipID := range layout[key] {
			if equipID == "" {
				continue
			}
			if err := s.Equip(ctx, slot, equipID); err != nil {
				return errors.Wrapf(err, "failed to equip %s in slot %d", equipID, slot)
			}
		}
	}
	return nil
}

// mergeCards overwrites the usage of derived cards and inserts placeholders
// for imported cards nothing derived. It returns the imported ids in order,
// without duplicates.
func (s *Session) mergeCards(ctx context.Context, list []deck.PresetCard) ([]string, error) {
	order := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))

	for _, pc := range list {
		if pc.ID == "" {
			continue
		}
		if _, dup := seen[pc.ID]; !dup {
			seen[pc.ID] = struct{}{}
			order = append(order, pc.ID)
		}

		if !s.cards.Has(pc.ID) {
			err := s.cards.InsertPlaceholder(deck.SelectedCard{
				ID:         pc.ID,
				OwnerID:    pc.OwnerID,
				SkillID:    pc.SkillID,
				SkillIndex: pc.SkillIndex,
				UseType:    deck.UseImmediate,
				UseParam:   deck.NoParam,
			})
			if err != nil {
				return nil, err
			}
		}

		if err := s.cards.UpdateUsage(pc.ID, pc.UseType, pc.UseParam, pc.UseParamMap); err != nil {
			slog.WarnContext(ctx, "imported card usage reset to default",
				"deck_id", s.id,
				"card_id", pc.ID,
				"use_type", int(pc.UseType),
				"error", err)
			if err := s.cards.UpdateUsage(pc.ID, deck.UseImmediate, deck.NoParam, nil); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

// reconcileDrift rebinds imported cards that the rebuilt deck cannot produce
// and drops those without a name match.
func (s *Session) reconcileDrift(ctx context.Context, imported []string) (map[string]string, []string) {
	candidates := s.index.OrderedCardIDs(s.slots.Characters(), s.slots.Equipment())
	available := make(map[string]struct{}, len(candidates))
	for _, id := range candidates {
		available[id] = struct{}{}
	}

	substitutions := make(map[string]string)
	for _, id := range imported {
		if _, ok := available[id]; ok {
			continue
		}
		card, ok := s.cards.Get(id)
		if !ok {
			continue
		}
		target, ok := s.matchByName(card.SkillID, candidates)
		if !ok {
			continue
		}
		if err := s.cards.Rebind(id, target); err != nil {
			slog.WarnContext(ctx, "failed to rebind drifted card",
				"deck_id", s.id,
				"card_id", id,
				"target", target,
				"error", err)
			continue
		}
		substitutions[id] = target
		slog.InfoContext(ctx, "drifted card rebound",
			"deck_id", s.id,
			"card_id", id,
			"target", target)
	}

	dropped := s.cards.DropOrphans()
	if len(dropped) > 0 {
		slog.WarnContext(ctx, "dropped cards with no match",
			"deck_id", s.id,
			"card_ids", dropped)
	}
	return substitutions, dropped
}

// matchByName returns the first candidate, in slot order, granted by a skill
// whose name in the reference language equals the name of skillID.
func (s *Session) matchByName(skillID string, candidates []string) (string, bool) {
	name, ok := s.db.SkillName(s.refLang, skillID)
	if !ok {
		return "", false
	}
	for _, cardID := range candidates {
		for _, candidateSkill := range s.index.CardSkills(cardID) {
			if candidateName, ok := s.db.SkillName(s.refLang, candidateSkill); ok && candidateName == name {
				return cardID, true
			}
		}
	}
	return "", false
}

// battleFromPreset copies battle settings, defaulting missing fields
func battleFromPreset(p *deck.Preset) deck.BattleSettings {
	settings := deck.DefaultBattleSettings()
	if p.IsLeaderCardOn != nil {
		settings.LeaderCardOn = *p.IsLeaderCardOn
	}
	if p.IsSpCardOn != nil {
		settings.SpCardOn = *p.IsSpCardOn
	}
	if p.KeepCardNum != nil && *p.KeepCardNum >= 0 {
		settings.KeepCardNum = *p.KeepCardNum
	}
	if p.DiscardType != nil && *p.DiscardType > 0 {
		settings.Discard = deck.DiscardPolicy(*p.DiscardType - 1)
	}
	if p.OtherCard != nil && *p.OtherCard >= 0 {
		settings.EnemyPriority = deck.EnemyPriority(*p.OtherCard)
	}
	return settings
}

func (s *Session) applyAwakening(ctx context.Context, stages map[string]int) {
	for characterID, stage := range stages {
		if err := s.SetAwakening(ctx, characterID, stage); err != nil {
			slog.DebugContext(ctx, "imported awakening ignored",
				"deck_id", s.id,
				"character_id", characterID,
				"error", err)
		}
	}
}

func countOccupied(characters [deck.SlotCount]string) int {
	n := 0
	for _, id := range characters {
		if id != deck.EmptySlot {
			n++
		}
	}
	return n
}
