package correlate

import "lootlogger/internal/domain"

// maxPetTicks bounds how long a pet announcement stays attributable. Some
// pets (skilling pets) never produce a loot event, so the window has to
// lapse on its own.
const maxPetTicks = 5

// PetCorrelator links a pet announcement chat line to a loot event arriving
// within a few ticks of it. At most one announcement is pending at a time; a
// second one replaces the first.
type PetCorrelator struct {
	window Countdown
}

// NewPetCorrelator returns a correlator with a closed window.
func NewPetCorrelator() *PetCorrelator {
	return &PetCorrelator{window: Countdown{limit: maxPetTicks}}
}

// OnPetSignal opens the attribution window.
func (p *PetCorrelator) OnPetSignal() {
	p.window.Arm()
}

// OnTick advances the window.
func (p *PetCorrelator) OnTick() {
	p.window.Tick()
}

// Pending reports whether an unconsumed announcement is in the window.
func (p *PetCorrelator) Pending() bool {
	return p.window.Armed()
}

// Reset drops any pending announcement.
func (p *PetCorrelator) Reset() {
	p.window.Reset()
}

// TryConsume attributes the pending pet to the named source. A source with
// no pet mapping leaves the window open, so the announcement can still
// attach to a later loot event inside the window.
func (p *PetCorrelator) TryConsume(sourceName string) (domain.Pet, bool) {
	if !p.window.Armed() {
		return domain.Pet{}, false
	}
	pet, ok := domain.PetByBoss(sourceName)
	if !ok {
		return domain.Pet{}, false
	}
	p.window.Reset()
	return pet, true
}
