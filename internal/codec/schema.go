package codec

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/KirkDiggler/deck-api/internal/entities/deck"
)

// parse checks the shape of the preset JSON before trusting any field.
// roleList must be an array of exactly five string-or-null entries and
// cardList must be an array.
func parse(raw []byte) (*deck.Preset, error) {
	if !json.Valid(raw) {
		return nil, invalidInput(stderrors.New("malformed JSON"), "preset data is not valid JSON")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, invalidFormat(err)
	}
	if fields == nil {
		return nil, invalidFormat(stderrors.New("preset is null"))
	}

	roles, ok := fields["roleList"]
	if !ok {
		return nil, invalidFormat(stderrors.New("roleList is missing"))
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(roles, &entries); err != nil || entries == nil {
		return nil, invalidFormat(stderrors.New("roleList is not an array"))
	}
	if len(entries) != deck.SlotCount {
		return nil, invalidFormat(fmt.Errorf("roleList has %d entries, want %d", len(entries), deck.SlotCount))
	}
	for i, entry := range entries {
		if !isStringOrNull(entry) {
			return nil, invalidFormat(fmt.Errorf("roleList[%d] is not a string or null", i))
		}
	}

	cards, ok := fields["cardList"]
	if !ok {
		return nil, invalidFormat(stderrors.New("cardList is missing"))
	}
	var list []json.RawMessage
	if err := json.Unmarshal(cards, &list); err != nil || list == nil {
		return nil, invalidFormat(stderrors.New("cardList is not an array"))
	}

	var p deck.Preset
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, invalidFormat(err)
	}
	return &p, nil
}

func isStringOrNull(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if bytes.Equal(v, []byte("null")) {
		return true
	}
	var s string
	return json.Unmarshal(v, &s) == nil
}
