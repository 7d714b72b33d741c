// Package keywords holds the vocabulary driving the eligibility filter:
// filename denylist, weapon allowlist, content-root directories, and the
// text/binary needles used for content sniffing.
package keywords

// Set is one complete keyword vocabulary. All entries are matched
// case-insensitively against lowercased names and paths.
type Set struct {
	// Deny rejects a file outright when its name contains an entry.
	// Takes precedence over every other check, including content.
	Deny []string `yaml:"deny"`

	// Allow accepts a file when its name contains an entry.
	Allow []string `yaml:"allow"`

	// ContentRoots accepts a file when a containing directory matches an entry.
	ContentRoots []string `yaml:"content_roots"`

	// TextNeedles are substrings sniffed from a file's text prefix.
	TextNeedles []string `yaml:"text_needles"`

	// BinaryNeedles are byte strings sniffed from a file's raw prefix.
	BinaryNeedles []string `yaml:"binary_needles"`
}

// DefaultSet returns the built-in vocabulary.
func DefaultSet() *Set {
	return &Set{
		Deny: []string{
			"init.lua",
			"cl_init.lua",
			"shared.lua",
			"autorun",
			"menu",
			"derma",
			"vgui",
			"gamemode",
			"language",
			"translations",
			"config",
			"settings",
			"util",
			"helper",
			"framework",
			"library",
			"includes",
			"thirdparty",
			"third-party",
			"vendor",
			"external",
		},
		Allow: []string{
			"weapon",
			"swep",
			"gun",
			"pistol",
			"rifle",
			"shotgun",
			"sniper",
			"knife",
			"melee",
			"sword",
			"nade",
			"grenade",
			"explosive",
			"bomb",
			"projectile",
			"launcher",
			"ammo",
			"bullet",
		},
		ContentRoots: []string{
			"lua/weapons",
			"lua/entities",
			"materials/models/weapons",
			"materials/weapons",
			"models/weapons",
		},
		TextNeedles: []string{
			"SWEP.",
			"ViewModel",
			"WorldModel",
			"weapons.Register",
			"scripted_weapon",
		},
		BinaryNeedles: []string{
			"models/weapons",
			"materials/models/weapons",
			"SWEP.",
			"ViewModel",
			"WorldModel",
		},
	}
}
