package models

// Gamemode is a best-effort label for the gamemode a weapon belongs to,
// inferred from keyword voting. It is not authoritative.
type Gamemode string

const (
	GamemodeSandbox  Gamemode = "sandbox"
	GamemodeTTT      Gamemode = "ttt"
	GamemodeDarkRP   Gamemode = "darkrp"
	GamemodeMurder   Gamemode = "murder"
	GamemodePropHunt Gamemode = "prophunt"
)

// RegistrationStyle records how a weapon definition was declared.
type RegistrationStyle string

const (
	RegistrationTable RegistrationStyle = "table_assignment" // SWEP.Key = value
	RegistrationCall  RegistrationStyle = "register_call"    // weapons.Register(tbl, "name")
)

// WeaponRecord holds the metadata recovered for one scripted weapon.
type WeaponRecord struct {
	Class        string            `json:"class"`
	PrintName    string            `json:"print_name,omitempty"`
	Author       string            `json:"author,omitempty"`
	Base         string            `json:"base,omitempty"`
	Category     string            `json:"category,omitempty"`
	Slot         string            `json:"slot,omitempty"`
	SlotPos      string            `json:"slot_pos,omitempty"`
	Gamemode     Gamemode          `json:"gamemode"`
	ViewModel    string            `json:"view_model,omitempty"`
	WorldModel   string            `json:"world_model,omitempty"`
	Source       string            `json:"source"`
	Registration RegistrationStyle `json:"registration"`
}

// Merge copies non-empty fields from other into r, leaving existing values
// in place. Used when a registered table's definition is found separately.
func (r *WeaponRecord) Merge(other *WeaponRecord) {
	if r.PrintName == "" {
		r.PrintName = other.PrintName
	}
	if r.Author == "" {
		r.Author = other.Author
	}
	if r.Base == "" {
		r.Base = other.Base
	}
	if r.Category == "" {
		r.Category = other.Category
	}
	if r.Slot == "" {
		r.Slot = other.Slot
	}
	if r.SlotPos == "" {
		r.SlotPos = other.SlotPos
	}
	if r.ViewModel == "" {
		r.ViewModel = other.ViewModel
	}
	if r.WorldModel == "" {
		r.WorldModel = other.WorldModel
	}
}
