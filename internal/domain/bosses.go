package domain

import "strings"

// AbyssalSire is the canonical source name reclaimed unsired loot is filed
// under.
const AbyssalSire = "Abyssal Sire"

// bossAliases maps common shorthand to the canonical stored source name.
var bossAliases = map[string]string{
	"sire":     AbyssalSire,
	"hydra":    "Alchemical Hydra",
	"cox":      "Chambers of Xeric",
	"raids":    "Chambers of Xeric",
	"olm":      "Chambers of Xeric",
	"tob":      "Theatre of Blood",
	"kbd":      "King Black Dragon",
	"kq":       "Kalphite Queen",
	"thermy":   "Thermonuclear Smoke Devil",
	"zily":     "Commander Zilyana",
	"sara":     "Commander Zilyana",
	"corp":     "Corporeal Beast",
	"bandos":   "General Graardor",
	"arma":     "Kree'arra",
	"zammy":    "K'ril Tsutsaroth",
	"mole":     "Giant Mole",
	"dks":      "Dagannoth Kings",
	"gargs":    "Grotesque Guardians",
	"vork":     "Vorkath",
	"snek":     "Zulrah",
	"gauntlet": "The Gauntlet",
}

// CanonicalSource resolves a shorthand alias to the canonical source name.
// Unknown names pass through unchanged.
func CanonicalSource(name string) string {
	if canon, ok := bossAliases[strings.ToLower(name)]; ok {
		return canon
	}
	return name
}
