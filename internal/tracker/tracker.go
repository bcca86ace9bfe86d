package tracker

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"lootlogger/internal/chat"
	"lootlogger/internal/correlate"
	"lootlogger/internal/domain"
)

// abyssalSireCombatLevel is used when a reclaim creates a record from
// scratch and no loot event supplied the level.
const abyssalSireCombatLevel = 350

// nmzMapRegion is shared with the King Black Dragon lair, but KBD is always
// on plane 0.
const nmzMapRegion = 9033

// Store is the keyed record service loot history is persisted to. Records
// for one (type, name) key are kept in append order.
type Store interface {
	SetPlayer(name string)
	Add(rt domain.RecordType, name string, rec domain.Record) error
	Load(rt domain.RecordType, name string) ([]domain.Record, error)
	Replace(rt domain.RecordType, name string, recs []domain.Record) error
	Delete(rt domain.RecordType, name string) (bool, error)
	KnownNames() (map[domain.RecordType]map[string]struct{}, error)
}

// Catalog resolves item ids to display metadata.
type Catalog interface {
	Name(id int) (string, error)
	Entry(id, quantity int) (domain.ItemEntry, error)
}

// Notifier receives finished records for display. Calls may be dispatched
// asynchronously by the implementation; the tracker does not wait on them.
type Notifier interface {
	RecordAdded(rec domain.Record)
	Refresh()
	Reset()
}

// Drop is one item stack in an incoming loot event.
type Drop struct {
	ItemID   int
	Quantity int
}

// LootEvent is a structured notification that a named source dropped items.
// Regions and Plane describe where the player stood when it fired.
type LootEvent struct {
	Source      string
	CombatLevel int
	Type        domain.RecordType
	Drops       []Drop
	Regions     []int
	Plane       int
}

// Options control event handling without affecting correlation logic.
type Options struct {
	// IgnoreNmz drops loot events fired inside the Nightmare Zone arena.
	IgnoreNmz bool
}

// Tracker is the merge point of the correlation engine. Host events arrive
// one at a time; the mutex exists because queries and deletes can come from
// outside the event goroutine.
type Tracker struct {
	store   Store
	catalog Catalog
	widgets correlate.WidgetReader
	notify  Notifier
	opts    Options

	mu         sync.Mutex
	killCounts killCountTable
	pets       *correlate.PetCorrelator
	reclaim    *correlate.ReclaimFlow
	knownNames map[domain.RecordType]map[string]struct{}
}

// New builds a tracker around its collaborators.
func New(store Store, catalog Catalog, widgets correlate.WidgetReader, notify Notifier, opts Options) *Tracker {
	return &Tracker{
		store:      store,
		catalog:    catalog,
		widgets:    widgets,
		notify:     notify,
		opts:       opts,
		killCounts: make(killCountTable),
		pets:       correlate.NewPetCorrelator(),
		reclaim:    &correlate.ReclaimFlow{},
		knownNames: make(map[domain.RecordType]map[string]struct{}),
	}
}

// HandleChatLine classifies one tag-stripped chat line and applies the
// resulting signal. Lines that match nothing are dropped without touching
// any state.
func (t *Tracker) HandleChatLine(ch chat.Channel, text string) {
	sig := chat.Classify(ch, text)
	if sig == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	switch s := sig.(type) {
	case chat.PetSignal:
		t.pets.OnPetSignal()
	case chat.ClueSignal:
		t.killCounts.set(s.Tier, s.Count)
	case chat.NamedKillCountSignal:
		t.killCounts.set(s.Key, s.Count)
	case chat.BossKillCountSignal:
		t.killCounts.set(s.Name, s.Count)
	}
}

// HandleWidgetLoaded inspects the sprite dialog when it loads. Other widget
// groups are ignored.
func (t *Tracker) HandleWidgetLoaded(group int) {
	if group != correlate.DialogGroup {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reclaim.OnDialogLoaded(t.widgets.DialogText())
}

// HandleTick advances both time-bounded correlators. A resolved reclaim
// produces its record on the same tick.
func (t *Tracker) HandleTick() error {
	t.mu.Lock()
	t.pets.OnTick()
	itemID, done := t.reclaim.OnTick(t.widgets)
	t.mu.Unlock()

	if !done {
		return nil
	}
	log.Printf("unsired exchanged for item id %d", itemID)
	return t.handleReclaimCompleted(itemID)
}

// HandleLootEvent turns one loot event into a new stored record: the
// pending pet (if any) is folded into the drops, the kill count is looked
// up, and the record is appended and announced.
func (t *Tracker) HandleLootEvent(ev LootEvent) error {
	if t.opts.IgnoreNmz && inNightmareZone(ev.Regions, ev.Plane) {
		return nil
	}

	drops := make([]domain.ItemEntry, 0, len(ev.Drops)+1)
	for _, d := range ev.Drops {
		entry, err := t.catalog.Entry(d.ItemID, d.Quantity)
		if err != nil {
			return fmt.Errorf("resolve drop %d: %w", d.ItemID, err)
		}
		drops = append(drops, entry)
	}

	t.mu.Lock()
	if pet, ok := t.pets.TryConsume(ev.Source); ok {
		entry, err := t.catalog.Entry(pet.ItemID, 1)
		if err != nil {
			t.mu.Unlock()
			return fmt.Errorf("resolve pet %d: %w", pet.ItemID, err)
		}
		drops = append(drops, entry)
	}
	kc := t.killCounts.get(ev.Source)
	t.mu.Unlock()

	return t.addRecord(domain.Record{
		Name:        ev.Source,
		CombatLevel: ev.CombatLevel,
		KillCount:   kc,
		Type:        ev.Type,
		Items:       drops,
	})
}

// HandleIdentityChanged rebinds the store to a new player and rebuilds the
// known-names index from what that player already has on disk.
func (t *Tracker) HandleIdentityChanged(username string) error {
	t.store.SetPlayer(username)
	names, err := t.store.KnownNames()
	if err != nil {
		return fmt.Errorf("load known names: %w", err)
	}

	t.mu.Lock()
	t.knownNames = names
	t.mu.Unlock()
	t.notify.Reset()
	return nil
}

// Query returns the stored records for the named source, resolving common
// shorthand to the canonical boss name first.
func (t *Tracker) Query(rt domain.RecordType, name string) ([]domain.Record, error) {
	return t.store.Load(rt, domain.CanonicalSource(name))
}

// Clear forgets the named source and deletes its persisted records. It
// reports whether anything was deleted.
func (t *Tracker) Clear(rt domain.RecordType, name string) (bool, error) {
	t.mu.Lock()
	if set, ok := t.knownNames[rt]; ok {
		delete(set, strings.ToLower(name))
	}
	t.mu.Unlock()
	return t.store.Delete(rt, name)
}

// KnownSourceNames returns the lower-cased source names seen per record
// type, sorted for stable output.
func (t *Tracker) KnownSourceNames() map[domain.RecordType][]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[domain.RecordType][]string, len(t.knownNames))
	for rt, set := range t.knownNames {
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		out[rt] = names
	}
	return out
}

// Shutdown drops transient correlation state.
func (t *Tracker) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pets.Reset()
}

// handleReclaimCompleted files an exchanged unsired reward. With no prior
// Abyssal Sire history it creates a fresh record; otherwise the item is
// appended to the most recent record and the stored set is rewritten.
func (t *Tracker) handleReclaimCompleted(itemID int) error {
	name, err := t.catalog.Name(itemID)
	if err != nil {
		return fmt.Errorf("resolve reclaimed item %d: %w", itemID, err)
	}
	// Reclaimed items are intentionally not valued.
	entry := domain.ItemEntry{Name: name, ID: itemID, Quantity: 1, Price: 0}

	records, err := t.store.Load(domain.TypeNPC, domain.AbyssalSire)
	if err != nil {
		return fmt.Errorf("load %s records: %w", domain.AbyssalSire, err)
	}

	if len(records) == 0 {
		log.Printf("no previous %s loot, creating new record for %s", domain.AbyssalSire, name)
		return t.addRecord(domain.Record{
			Name:        domain.AbyssalSire,
			CombatLevel: abyssalSireCombatLevel,
			KillCount:   -1,
			Type:        domain.TypeNPC,
			Items:       []domain.ItemEntry{entry},
		})
	}

	log.Printf("adding %s to the last %s record", name, domain.AbyssalSire)
	records[len(records)-1].AddItem(entry)
	if err := t.store.Replace(domain.TypeNPC, domain.AbyssalSire, records); err != nil {
		return fmt.Errorf("rewrite %s records: %w", domain.AbyssalSire, err)
	}
	t.notify.Refresh()
	return nil
}

// addRecord persists a new record, indexes its name and announces it.
func (t *Tracker) addRecord(rec domain.Record) error {
	if err := t.store.Add(rec.Type, rec.Name, rec); err != nil {
		return fmt.Errorf("store %s record: %w", rec.Name, err)
	}

	t.mu.Lock()
	set, ok := t.knownNames[rec.Type]
	if !ok {
		set = make(map[string]struct{})
		t.knownNames[rec.Type] = set
	}
	set[strings.ToLower(rec.Name)] = struct{}{}
	t.mu.Unlock()

	t.notify.RecordAdded(rec)
	return nil
}

func inNightmareZone(regions []int, plane int) bool {
	if plane <= 0 {
		return false
	}
	for _, r := range regions {
		if r == nmzMapRegion {
			return true
		}
	}
	return false
}
