package correlate

import "strings"

const (
	depositText = "you place the unsired into the font of consumption..."
	rewardText  = "the font consumes the unsired"

	// maxRewardPolls bounds how many ticks the flow keeps polling for the
	// reward text before giving up.
	maxRewardPolls = 25
)

// DialogGroup is the widget group id of the sprite dialog the Font of
// Consumption exchange uses.
const DialogGroup = 193

// NoItem is the dialog widget's item id while no item sprite is attached.
const NoItem = -1

// WidgetReader exposes the sprite dialog's current contents on demand.
type WidgetReader interface {
	DialogText() string
	DialogItemID() int
}

// ReclaimFlow watches the Font of Consumption dialog for an unsired
// exchange and reports the reward item once the dialog shows it. The flow
// is strictly linear: idle, then polling, then idle again via success or
// poll-budget expiry.
type ReclaimFlow struct {
	awaiting bool
	polls    int
}

// OnDialogLoaded checks freshly loaded dialog text for the deposit phrase
// and starts polling for the reward when it matches.
func (f *ReclaimFlow) OnDialogLoaded(text string) {
	if strings.ToLower(text) == depositText {
		f.awaiting = true
		f.polls = 0
	}
}

// OnTick polls the dialog once. It returns the reward item id and true on
// the tick the exchange resolves. Expiry is silent.
func (f *ReclaimFlow) OnTick(w WidgetReader) (int, bool) {
	if !f.awaiting {
		return 0, false
	}

	if id, ok := rewardItem(w); ok {
		f.awaiting = false
		f.polls = 0
		return id, true
	}

	f.polls++
	if f.polls >= maxRewardPolls {
		f.awaiting = false
		f.polls = 0
	}
	return 0, false
}

// Awaiting reports whether the flow is polling for a reward.
func (f *ReclaimFlow) Awaiting() bool {
	return f.awaiting
}

// rewardItem reads the dialog and extracts the exchanged item id. An
// unpopulated item sprite means the reward has not resolved yet.
func rewardItem(w WidgetReader) (int, bool) {
	if !strings.Contains(strings.ToLower(w.DialogText()), rewardText) {
		return 0, false
	}
	id := w.DialogItemID()
	if id == NoItem {
		return 0, false
	}
	return id, true
}
