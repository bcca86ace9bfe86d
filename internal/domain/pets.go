package domain

import "strings"

// Pet is a follower item awarded by a specific loot source.
type Pet struct {
	Boss   string
	ItemID int
}

var pets = []Pet{
	{"Abyssal Sire", 13262},
	{"Alchemical Hydra", 22746},
	{"Callisto", 13178},
	{"Cerberus", 13247},
	{"Chaos Elemental", 11995},
	{"Commander Zilyana", 12651},
	{"Corporeal Beast", 12816},
	{"Dagannoth Prime", 12644},
	{"Dagannoth Rex", 12645},
	{"Dagannoth Supreme", 12643},
	{"General Graardor", 12650},
	{"Giant Mole", 12646},
	{"Grotesque Guardians", 21748},
	{"Kalphite Queen", 12647},
	{"King Black Dragon", 12653},
	{"Kraken", 12655},
	{"Kree'arra", 12649},
	{"K'ril Tsutsaroth", 12652},
	{"Sarachnis", 23495},
	{"Scorpia", 13181},
	{"Skotizo", 21273},
	{"The Nightmare", 24491},
	{"Thermonuclear Smoke Devil", 12648},
	{"Venenatis", 13177},
	{"Vet'ion", 13179},
	{"Vorkath", 21992},
	{"Zalcano", 23760},
	{"Zulrah", 12921},
}

// PetByBoss returns the pet awarded by the named source, if it has one.
// Lookup is case-insensitive.
func PetByBoss(name string) (Pet, bool) {
	for _, p := range pets {
		if strings.EqualFold(p.Boss, name) {
			return p, true
		}
	}
	return Pet{}, false
}
