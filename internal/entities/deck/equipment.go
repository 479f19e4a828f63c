package deck

import (
	"bytes"
	"encoding/json"
)

// EquipType is the gear slot an equipment item occupies
type EquipType string

// Equipment types, in the order used by the preset equipment layout
const (
	EquipWeapon    EquipType = "weapon"
	EquipArmor     EquipType = "armor"
	EquipAccessory EquipType = "accessory"
)

// String returns the string representation of the equipment type
func (t EquipType) String() string {
	return string(t)
}

// IsValid checks if the equipment type is valid
func (t EquipType) IsValid() bool {
	return t.Index() >= 0
}

// Index returns the position of the type inside a Loadout, or -1
func (t EquipType) Index() int {
	switch t {
	case EquipWeapon:
		return 0
	case EquipArmor:
		return 1
	case EquipAccessory:
		return 2
	default:
		return -1
	}
}

// AllEquipTypes returns every equipment type in layout order
func AllEquipTypes() []EquipType {
	return []EquipType{EquipWeapon, EquipArmor, EquipAccessory}
}

// Loadout holds the equipment ids of one character slot, indexed by EquipType.Index.
// Empty strings mean nothing is equipped. On the wire it is
// [weaponId|null, armorId|null, accessoryId|null].
type Loadout [3]string

// Get returns the equipment id for the given type
func (l Loadout) Get(t EquipType) string {
	if i := t.Index(); i >= 0 {
		return l[i]
	}
	return ""
}

// IsEmpty reports whether nothing is equipped
func (l Loadout) IsEmpty() bool {
	return l == Loadout{}
}

// MarshalJSON encodes empty entries as null
func (l Loadout) MarshalJSON() ([]byte, error) {
	out := make([]*string, len(l))
	for i := range l {
		if l[i] != "" {
			id := l[i]
			out[i] = &id
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts up to three string-or-null entries
func (l *Loadout) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = Loadout{}
		return nil
	}
	var in []*string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var out Loadout
	for i := 0; i < len(in) && i < len(out); i++ {
		if in[i] != nil {
			out[i] = *in[i]
		}
	}
	*l = out
	return nil
}
