package deck

// SlotCount is the number of character slots in a deck
const SlotCount = 5

// EmptySlot is the sentinel for an empty character slot or an unset leader
const EmptySlot = ""

// DiscardPolicy selects which cards are discarded first during battle
type DiscardPolicy int

// EnemyPriority selects which enemy cards are targeted first
type EnemyPriority int

// BattleSettings is carried through export and import verbatim
type BattleSettings struct {
	LeaderCardOn  bool
	SpCardOn      bool
	KeepCardNum   int
	Discard       DiscardPolicy
	EnemyPriority EnemyPriority
}

// DefaultBattleSettings returns the settings of a fresh deck
func DefaultBattleSettings() BattleSettings {
	return BattleSettings{
		LeaderCardOn: true,
		SpCardOn:     true,
	}
}

// State is an immutable snapshot of a deck session
type State struct {
	Characters [SlotCount]string
	Leader     string
	Equipment  [SlotCount]Loadout
	Cards      []SelectedCard
	Battle     BattleSettings
	Awakening  map[string]int
}

// CardIDs returns the ids of the snapshot's cards in display order
func (s State) CardIDs() []string {
	ids := make([]string, len(s.Cards))
	for i, c := range s.Cards {
		ids[i] = c.ID
	}
	return ids
}
