// Package classifier gates the expensive metadata extraction: decoded text
// is only parsed when it matches one of a short fixed list of
// weapon-definition signatures.
package classifier

import "regexp"

// weaponSignatures are the patterns that mark text as weapon-related.
// Matching is case-insensitive; most decoded cache content is unrelated
// script or garbage and must fail these cheaply.
var weaponSignatures = []*regexp.Regexp{
	regexp.MustCompile(`(?i)SWEP\.Base\s*=`),
	regexp.MustCompile(`(?i)SWEP\.PrintName\s*=`),
	regexp.MustCompile(`(?i)SWEP\.ViewModel\s*=`),
	regexp.MustCompile(`(?i)SWEP\.WorldModel\s*=`),
	regexp.MustCompile(`(?i)SWEP\.Primary\s*=`),
	regexp.MustCompile(`(?i)SWEP\.Secondary\s*=`),
	regexp.MustCompile(`(?i)weapons\.Register\(`),
	regexp.MustCompile(`(?i)scripted_weapon\s*=`),
	regexp.MustCompile(`(?i)WEAPON\.`),
}

// IsWeaponScript reports whether the text looks like a weapon definition.
func IsWeaponScript(text string) bool {
	if text == "" {
		return false
	}
	for _, sig := range weaponSignatures {
		if sig.MatchString(text) {
			return true
		}
	}
	return false
}
