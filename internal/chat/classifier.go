package chat

import (
	"regexp"
	"strconv"
	"strings"
)

// Channel identifies the chat channel a line arrived on. Only game and spam
// channels carry loot-relevant messages.
type Channel int

const (
	ChannelGame Channel = iota
	ChannelSpam
	ChannelOther
)

// ParseChannel maps the channel label used on the wire to a Channel.
func ParseChannel(s string) Channel {
	switch strings.ToLower(s) {
	case "game":
		return ChannelGame
	case "spam":
		return ChannelSpam
	}
	return ChannelOther
}

// Signal is a typed fact extracted from one chat line.
type Signal interface {
	signal()
}

// PetSignal means a follower pet announcement was seen.
type PetSignal struct{}

// ClueSignal is a completed Treasure Trails total for one tier.
type ClueSignal struct {
	Tier  string // canonical label, e.g. "Clue Scroll (Beginner)"
	Count int
}

// NamedKillCountSignal is an activity total announced with its own phrasing
// rather than the generic boss message.
type NamedKillCountSignal struct {
	Key   string
	Count int
}

// BossKillCountSignal is the generic boss kill count message.
type BossKillCountSignal struct {
	Name  string
	Count int
}

func (PetSignal) signal()            {}
func (ClueSignal) signal()           {}
func (NamedKillCountSignal) signal() {}
func (BossKillCountSignal) signal()  {}

var (
	cluePattern   = regexp.MustCompile(`You have completed ([0-9]+) ([a-z]+) Treasure Trails.`)
	bossPattern   = regexp.MustCompile(`Your (.*) kill count is:? ([0-9]*).`)
	digitsPattern = regexp.MustCompile(`([0-9]+)`)
)

var petMessages = map[string]struct{}{
	"You have a funny feeling like you're being followed.":          {},
	"You feel something weird sneaking into your backpack.":         {},
	"You have a funny feeling like you would have been followed...": {},
}

var clueTiers = map[string]string{
	"beginner": "Clue Scroll (Beginner)",
	"easy":     "Clue Scroll (Easy)",
	"medium":   "Clue Scroll (Medium)",
	"hard":     "Clue Scroll (Hard)",
	"elite":    "Clue Scroll (Elite)",
	"master":   "Clue Scroll (Master)",
}

// namedCounts are activities whose totals need their own prefix match. The
// count is re-scanned with the digits pattern because the phrasing varies.
var namedCounts = []struct {
	prefix string
	key    string
}{
	{"Your Barrows chest count is", "BARROWS"},
	{"Your completed Chambers of Xeric count is", "CHAMBERS OF XERIC"},
	{"Your completed Theatre of Blood count is", "THEATRE OF BLOOD"},
}

// Classify turns one tag-stripped chat line into at most one signal.
// Matchers run in priority order and the first match wins; a line that
// matches nothing returns nil.
func Classify(ch Channel, text string) Signal {
	if ch != ChannelGame && ch != ChannelSpam {
		return nil
	}

	if _, ok := petMessages[text]; ok {
		return PetSignal{}
	}

	if m := cluePattern.FindStringSubmatch(text); m != nil {
		tier, ok := clueTiers[strings.ToLower(m[2])]
		if !ok {
			return nil
		}
		count, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		return ClueSignal{Tier: tier, Count: count}
	}

	for _, nc := range namedCounts {
		if !strings.HasPrefix(text, nc.prefix) {
			continue
		}
		if digits := digitsPattern.FindString(text); digits != "" {
			count, err := strconv.Atoi(digits)
			if err != nil {
				return nil
			}
			return NamedKillCountSignal{Key: nc.key, Count: count}
		}
	}

	if m := bossPattern.FindStringSubmatch(text); m != nil {
		count, err := strconv.Atoi(m[2])
		if err != nil {
			return nil
		}
		return BossKillCountSignal{Name: m[1], Count: count}
	}

	return nil
}
