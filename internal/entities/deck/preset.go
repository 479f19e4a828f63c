package deck

// Import result messages
const (
	MessageImportSuccess       = "import_success"
	MessageInvalidPresetFormat = "invalid_preset_format"
	MessageImportFailed        = "import_failed"
)

// PresetCard is one card of the preset card list
type PresetCard struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"ownerId"`
	SkillID     string         `json:"skillId"`
	SkillIndex  *int           `json:"skillIndex,omitempty"`
	TargetType  int            `json:"targetType"`
	UseType     UseType        `json:"useType"`
	UseParam    int            `json:"useParam"`
	UseParamMap map[string]int `json:"useParamMap"`
	EquipIDList []string       `json:"equipIdList"`
}

// Preset is the serializable snapshot of a deck.
// Battle fields are pointers so a missing field can fall back to its
// default instead of the zero value. DiscardType is stored with a +1 offset.
// Equipment and Awakening are only present in shareable URL presets.
type Preset struct {
	RoleList       []string           `json:"roleList"`
	Header         string             `json:"header"`
	CardList       []PresetCard       `json:"cardList"`
	CardIDMap      map[string]string  `json:"cardIdMap"`
	IsLeaderCardOn *bool              `json:"isLeaderCardOn"`
	IsSpCardOn     *bool              `json:"isSpCardOn"`
	KeepCardNum    *int               `json:"keepCardNum"`
	DiscardType    *int               `json:"discardType"`
	OtherCard      *int               `json:"otherCard"`
	Equipment      map[string]Loadout `json:"equipment,omitempty"`
	Awakening      map[string]int     `json:"awakening,omitempty"`
}

// WithoutLayout returns a shallow copy with equipment and awakening removed
func (p Preset) WithoutLayout() Preset {
	p.Equipment = nil
	p.Awakening = nil
	return p
}

// WithCompactLayout returns a shallow copy in which an empty equipment or
// awakening map is nil. Encoded text omits both, so nil is the only form
// that survives a round trip.
func (p Preset) WithCompactLayout() Preset {
	if len(p.Equipment) == 0 {
		p.Equipment = nil
	}
	if len(p.Awakening) == 0 {
		p.Awakening = nil
	}
	return p
}

// ImportResult reports the outcome of applying a preset
type ImportResult struct {
	Success bool
	Message string
	// Substitutions maps imported card ids to the ids they were rebound to
	Substitutions map[string]string
	// Dropped lists imported card ids that no longer resolve
	Dropped []string
	// Skipped lists role list characters the database does not know, in
	// slot order. Their slots are left empty.
	Skipped []string
}
