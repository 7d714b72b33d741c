package models

// ExportPayload is the JSON document written when a scan is exported,
// consumed by the material-generation step and external tooling.
type ExportPayload struct {
	GamePath          string                   `json:"game_path"`
	Weapons           map[string]*WeaponRecord `json:"sweps"`
	TextureReferences []string                 `json:"texture_references"`
	ModelReferences   []string                 `json:"model_references"`
	Stats             *ScanStatistics          `json:"statistics"`
}

// Export snapshots the aggregate into a marshalable payload.
func (r *ScanResults) Export() *ExportPayload {
	return &ExportPayload{
		GamePath:          r.GamePath,
		Weapons:           r.Weapons,
		TextureReferences: r.Textures(),
		ModelReferences:   r.Models(),
		Stats:             r.Stats,
	}
}
