package extract

import (
	"regexp"
	"strings"

	"github.com/gmodtools/swepscan/pkg/models"
)

// Per-gamemode signature patterns, checked in declaration order. The first
// gamemode with a matching pattern wins.
var gamemodeSignatures = []struct {
	gamemode models.Gamemode
	patterns []*regexp.Regexp
}{
	{models.GamemodeTTT, []*regexp.Regexp{
		regexp.MustCompile(`(?i)SWEP\.Kind\s*=\s*WEAPON_`),
		regexp.MustCompile(`(?i)SWEP\.CanBuy\s*=`),
		regexp.MustCompile(`(?i)ROLE_TRAITOR`),
		regexp.MustCompile(`(?i)ROLE_DETECTIVE`),
		regexp.MustCompile(`(?i)TTT\.`),
		regexp.MustCompile(`(?i)EquipMenuData`),
	}},
	{models.GamemodeDarkRP, []*regexp.Regexp{
		regexp.MustCompile(`(?i)SWEP\.jobName\s*=`),
		regexp.MustCompile(`(?i)DarkRP\.`),
		regexp.MustCompile(`(?i)AddCustomShipment`),
	}},
	{models.GamemodeMurder, []*regexp.Regexp{
		regexp.MustCompile(`(?i)SWEP\.IsMurdererWeapon\s*=`),
		regexp.MustCompile(`(?i)SWEP\.IsKnife\s*=`),
	}},
	{models.GamemodePropHunt, []*regexp.Regexp{
		regexp.MustCompile(`(?i)SWEP\.IsPropHuntWeapon\s*=`),
		regexp.MustCompile(`(?i)TEAM_PROPS`),
		regexp.MustCompile(`(?i)TEAM_HUNTERS`),
	}},
}

// Substring hints checked against Base and Category when no signature
// pattern fires.
var gamemodeHints = []struct {
	gamemode models.Gamemode
	needles  []string
}{
	{models.GamemodeTTT, []string{"ttt", "terror"}},
	{models.GamemodeDarkRP, []string{"darkrp"}},
	{models.GamemodeMurder, []string{"murder"}},
	{models.GamemodePropHunt, []string{"prophunt"}},
}

// InferGamemode decides which gamemode a weapon belongs to. Signature
// patterns over the full text are checked first, then Base and Category
// substrings; sandbox is the fallback.
func InferGamemode(base, category, text string) models.Gamemode {
	for _, sig := range gamemodeSignatures {
		for _, pattern := range sig.patterns {
			if pattern.MatchString(text) {
				return sig.gamemode
			}
		}
	}

	for _, field := range []string{base, category} {
		if field == "" {
			continue
		}
		lower := strings.ToLower(field)
		for _, hint := range gamemodeHints {
			for _, needle := range hint.needles {
				if strings.Contains(lower, needle) {
					return hint.gamemode
				}
			}
		}
	}

	return models.GamemodeSandbox
}
