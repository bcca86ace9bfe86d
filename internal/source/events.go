package source

import (
	"sync"

	"lootlogger/internal/chat"
	"lootlogger/internal/correlate"
	"lootlogger/internal/tracker"
)

// Handler consumes decoded journal events. The tailer delivers them one at
// a time from a single goroutine, in journal order.
type Handler interface {
	HandleChatLine(ch chat.Channel, text string)
	HandleWidgetLoaded(group int)
	HandleTick() error
	HandleLootEvent(ev tracker.LootEvent) error
	HandleIdentityChanged(username string) error
}

// envelope is the wire shape of one journal line. The type field selects
// which of the remaining fields are meaningful.
type envelope struct {
	Type string `json:"type"`

	// chat
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text,omitempty"`

	// widget
	Group  int  `json:"group,omitempty"`
	ItemID *int `json:"item_id,omitempty"`

	// loot
	Source      string         `json:"source,omitempty"`
	CombatLevel *int           `json:"combat_level,omitempty"`
	RecordType  string         `json:"record_type,omitempty"`
	Drops       []envelopeDrop `json:"drops,omitempty"`
	Regions     []int          `json:"regions,omitempty"`
	Plane       int            `json:"plane,omitempty"`

	// identity
	Username string `json:"username,omitempty"`
}

type envelopeDrop struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

// Widgets tracks the last reported contents of client widgets so the
// reclaim flow can poll the sprite dialog between journal events.
type Widgets struct {
	mu      sync.Mutex
	byGroup map[int]widgetSnapshot
}

type widgetSnapshot struct {
	text   string
	itemID int
}

// NewWidgets returns an empty widget state.
func NewWidgets() *Widgets {
	return &Widgets{byGroup: make(map[int]widgetSnapshot)}
}

func (w *Widgets) update(group int, text string, itemID int) {
	w.mu.Lock()
	w.byGroup[group] = widgetSnapshot{text: text, itemID: itemID}
	w.mu.Unlock()
}

// DialogText returns the sprite dialog's current text, empty when the
// dialog has not been reported yet.
func (w *Widgets) DialogText() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.byGroup[correlate.DialogGroup].text
}

// DialogItemID returns the sprite dialog's attached item id, or NoItem when
// the dialog has no item sprite.
func (w *Widgets) DialogItemID() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap, ok := w.byGroup[correlate.DialogGroup]
	if !ok {
		return correlate.NoItem
	}
	return snap.itemID
}
