package tracker

import "strings"

// killCountTable holds the latest authoritative totals announced in chat,
// keyed by upper-cased source name. Chat always reports the running total,
// so last write wins.
type killCountTable map[string]int

func (t killCountTable) set(key string, count int) {
	t[strings.ToUpper(key)] = count
}

// get returns the last known count for the source, or -1 when none was
// seen this session.
func (t killCountTable) get(name string) int {
	if kc, ok := t[strings.ToUpper(name)]; ok {
		return kc
	}
	return -1
}
