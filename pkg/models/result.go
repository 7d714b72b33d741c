package models

import (
	"sort"
	"time"
)

// ScanPhase is one stage of a full scan, executed in declaration order.
type ScanPhase int

const (
	PhaseScriptDirectories ScanPhase = iota
	PhaseAddons
	PhaseWorkshop
	PhaseCacheDirectories
	PhaseComplete
)

// String returns the phase name used in progress callbacks and logs.
func (p ScanPhase) String() string {
	switch p {
	case PhaseScriptDirectories:
		return "scripts"
	case PhaseAddons:
		return "addons"
	case PhaseWorkshop:
		return "workshop"
	case PhaseCacheDirectories:
		return "cache"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Weight returns the share of overall progress attributed to the phase.
// The cache phase dominates because it covers the bulk of the corpus.
func (p ScanPhase) Weight() float64 {
	switch p {
	case PhaseScriptDirectories:
		return 0.15
	case PhaseAddons:
		return 0.20
	case PhaseWorkshop:
		return 0.20
	case PhaseCacheDirectories:
		return 0.45
	default:
		return 0
	}
}

// ScanStatistics holds monotonically increasing counters, mutated only by
// the orchestrator as completed work is drained.
type ScanStatistics struct {
	FilesProcessed       int `json:"files_processed"`
	ScriptFilesProcessed int `json:"script_files_processed"`
	CacheFilesProcessed  int `json:"cache_files_processed"`
	WeaponsDetected      int `json:"weapons_detected"`
	TexturesFound        int `json:"textures_found"`
	ModelsFound          int `json:"models_found"`
	AddonsScanned        int `json:"addons_scanned"`
	WorkshopItemsScanned int `json:"workshop_items_scanned"`
	FilesRejected        int `json:"files_rejected"`
	ReadErrors           int `json:"read_errors"`
	DecodeTimeouts       int `json:"decode_timeouts"`
	IncompleteTasks      int `json:"incomplete_tasks"`
	WorkersUsed          int `json:"workers_used"`
}

// ScanResults is the aggregate produced by one scan. Collections are
// replaced wholesale at the start of the next scan, never merged across scans.
type ScanResults struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	GamePath  string        `json:"game_path"`
	Cancelled bool          `json:"cancelled,omitempty"`

	Weapons  map[string]*WeaponRecord `json:"weapons"`
	textures map[string]struct{}
	models   map[string]struct{}

	Stats *ScanStatistics `json:"statistics"`
}

// NewScanResults returns an empty aggregate.
func NewScanResults() *ScanResults {
	return &ScanResults{
		Weapons:  make(map[string]*WeaponRecord),
		textures: make(map[string]struct{}),
		models:   make(map[string]struct{}),
		Stats:    &ScanStatistics{},
	}
}

// AddWeapon records a weapon, last writer wins for duplicate class IDs.
func (r *ScanResults) AddWeapon(w *WeaponRecord) {
	r.Weapons[w.Class] = w
}

// AddTexture adds a texture path to the deduplicated set.
func (r *ScanResults) AddTexture(path string) {
	if path != "" {
		r.textures[path] = struct{}{}
	}
}

// AddModel adds a model path to the deduplicated set.
func (r *ScanResults) AddModel(path string) {
	if path != "" {
		r.models[path] = struct{}{}
	}
}

// Textures returns the sorted texture path list.
func (r *ScanResults) Textures() []string {
	return sortedKeys(r.textures)
}

// Models returns the sorted model path list.
func (r *ScanResults) Models() []string {
	return sortedKeys(r.models)
}

// Finalize fixes the detection counters from the aggregate collection sizes
// and stamps the end time.
func (r *ScanResults) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Stats.WeaponsDetected = len(r.Weapons)
	r.Stats.TexturesFound = len(r.textures)
	r.Stats.ModelsFound = len(r.models)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
