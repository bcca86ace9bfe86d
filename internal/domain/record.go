package domain

// RecordType is the broad category a loot source belongs to.
type RecordType string

const (
	TypeNPC        RecordType = "NPC"
	TypePlayer     RecordType = "PLAYER"
	TypeEvent      RecordType = "EVENT"
	TypePickpocket RecordType = "PICKPOCKET"
	TypeUnknown    RecordType = "UNKNOWN"
)

// ParseRecordType maps the type label used on the wire to a RecordType.
func ParseRecordType(s string) RecordType {
	switch RecordType(s) {
	case TypeNPC, TypePlayer, TypeEvent, TypePickpocket:
		return RecordType(s)
	}
	return TypeUnknown
}

// ItemEntry is one dropped item stack. Immutable once created.
type ItemEntry struct {
	Name     string
	ID       int
	Quantity int
	Price    int
}

// Record is the durable unit of loot history for one source. Items keep
// arrival order; the only permitted mutation is appending a drop.
type Record struct {
	Name        string
	CombatLevel int
	KillCount   int
	Type        RecordType
	Items       []ItemEntry
}

// AddItem appends a drop to the record without reordering existing entries.
func (r *Record) AddItem(e ItemEntry) {
	r.Items = append(r.Items, e)
}
