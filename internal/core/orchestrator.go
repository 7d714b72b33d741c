// Package core drives a full scan: phase sequencing, the cache-phase worker
// pool, progress reporting, and aggregation. All mutation of the shared
// aggregate happens on the orchestrator goroutine; workers only send
// per-file outcomes over a channel.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gmodtools/swepscan/internal/classifier"
	"github.com/gmodtools/swepscan/internal/config"
	"github.com/gmodtools/swepscan/internal/decoder"
	"github.com/gmodtools/swepscan/internal/extract"
	"github.com/gmodtools/swepscan/internal/filesystem"
	"github.com/gmodtools/swepscan/internal/filter"
	"github.com/gmodtools/swepscan/internal/gma"
	"github.com/gmodtools/swepscan/internal/keywords"
	"github.com/gmodtools/swepscan/pkg/models"
)

// ProgressCallback is called to report scan progress. overall and phase are
// fractions in [0,1]; overall weighs the phases by their share of the work.
type ProgressCallback func(phase string, overall, phaseProgress float64, message string)

// CancelCheck is polled between files; returning true stops the scan at the
// next boundary. Partial results are still returned.
type CancelCheck func() bool

// Orchestrator is the main scan engine.
type Orchestrator struct {
	config           *config.Config
	logger           *zap.Logger
	filter           *filter.Filter
	cascade          *decoder.Cascade
	walker           *filesystem.Walker
	results          *models.ScanResults
	progressCallback ProgressCallback
	cancelCheck      CancelCheck

	// completedWeight accumulates the Weight of finished phases so the
	// overall fraction keeps moving monotonically.
	completedWeight float64
}

// NewOrchestrator creates a scan engine from configuration. Keyword
// overrides are loaded here so a bad patterns file fails fast.
func NewOrchestrator(cfg *config.Config, logger *zap.Logger) (*Orchestrator, error) {
	set, err := keywords.NewLoader(cfg.PatternsPath).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword patterns: %w", err)
	}

	return &Orchestrator{
		config:  cfg,
		logger:  logger,
		filter:  filter.New(set, cfg.MaxSizeBytes(), cfg.SniffThresholdBytes()),
		cascade: decoder.Build(cfg, logger),
		walker:  filesystem.NewWalker(logger, nil),
	}, nil
}

// SetProgressCallback sets the progress callback function
func (o *Orchestrator) SetProgressCallback(cb ProgressCallback) {
	o.progressCallback = cb
}

// SetCancelCheck sets the cancellation predicate
func (o *Orchestrator) SetCancelCheck(cb CancelCheck) {
	o.cancelCheck = cb
}

func (o *Orchestrator) cancelled() bool {
	return o.cancelCheck != nil && o.cancelCheck()
}

func (o *Orchestrator) reportProgress(phase models.ScanPhase, done, total int, message string) {
	if o.progressCallback == nil {
		return
	}
	frac := 0.0
	if total > 0 {
		frac = float64(done) / float64(total)
	} else if done > 0 {
		frac = 1.0
	}
	overall := o.completedWeight + phase.Weight()*frac
	if phase == models.PhaseComplete {
		overall = 1.0
	}
	o.progressCallback(phase.String(), overall, frac, message)
}

// Scan runs every enabled phase against the configured game path and
// returns the aggregate. The aggregate is always returned, even after
// cancellation or a timed-out batch; err is reserved for setup failures.
func (o *Orchestrator) Scan(ctx context.Context) (*models.ScanResults, error) {
	gamePath := o.config.GamePath
	if gamePath == "" {
		return nil, fmt.Errorf("game path not set")
	}
	if _, err := os.Stat(gamePath); err != nil {
		return nil, fmt.Errorf("game path not accessible: %w", err)
	}

	o.logger.Info("Starting scan",
		zap.String("path", gamePath),
		zap.Int("workers", o.config.WorkerCount()),
		zap.Strings("strategies", strategyNames(o.cascade)))

	o.results = models.NewScanResults()
	o.results.StartTime = time.Now()
	o.results.GamePath = gamePath
	o.results.Stats.WorkersUsed = o.config.WorkerCount()
	o.completedWeight = 0

	phases := []struct {
		phase   models.ScanPhase
		enabled bool
		run     func(context.Context, string) error
	}{
		{models.PhaseScriptDirectories, o.config.ScanScripts, o.scanScriptDirectories},
		{models.PhaseAddons, o.config.ScanAddons, o.scanAddons},
		{models.PhaseWorkshop, o.config.ScanWorkshop, o.scanWorkshop},
		{models.PhaseCacheDirectories, o.config.ScanCache, o.scanCacheDirectories},
	}

	for _, p := range phases {
		if o.cancelled() {
			o.results.Cancelled = true
			break
		}
		if !p.enabled {
			o.logger.Debug("Phase disabled", zap.Stringer("phase", p.phase))
			o.completedWeight += p.phase.Weight()
			continue
		}

		o.reportProgress(p.phase, 0, 0, fmt.Sprintf("Scanning %s...", p.phase))
		if err := p.run(ctx, gamePath); err != nil {
			o.logger.Warn("Phase failed",
				zap.Stringer("phase", p.phase),
				zap.Error(err))
		}
		o.completedWeight += p.phase.Weight()
	}

	o.results.Finalize()
	o.reportProgress(models.PhaseComplete, 1, 1, "Scan complete")

	o.logger.Info("Scan completed",
		zap.Duration("duration", o.results.Duration),
		zap.Int("weapons", o.results.Stats.WeaponsDetected),
		zap.Int("textures", o.results.Stats.TexturesFound),
		zap.Int("models", o.results.Stats.ModelsFound),
		zap.Int("files_processed", o.results.Stats.FilesProcessed),
		zap.Bool("cancelled", o.results.Cancelled))

	return o.results, nil
}

// scanScriptDirectories covers garrysmod/lua/weapons, plain-text weapon
// scripts shipped with the game or installed by hand.
func (o *Orchestrator) scanScriptDirectories(ctx context.Context, gamePath string) error {
	root := filepath.Join(gamePath, "garrysmod", "lua", "weapons")
	files := o.collectCandidates(root)

	for i, cf := range files {
		if o.cancelled() {
			o.results.Cancelled = true
			return nil
		}
		o.processScriptFile(cf)
		o.reportProgress(models.PhaseScriptDirectories, i+1, len(files), cf.Path)
	}
	return nil
}

// scanAddons covers garrysmod/addons/<name>/lua/weapons for every
// installed addon directory.
func (o *Orchestrator) scanAddons(ctx context.Context, gamePath string) error {
	addonsRoot := filepath.Join(gamePath, "garrysmod", "addons")
	addonDirs := filesystem.ListDirs(addonsRoot)

	for i, dir := range addonDirs {
		if o.cancelled() {
			o.results.Cancelled = true
			return nil
		}

		weaponsRoot := filepath.Join(dir, "lua", "weapons")
		files := o.collectCandidates(weaponsRoot)
		for _, cf := range files {
			if o.cancelled() {
				o.results.Cancelled = true
				return nil
			}
			o.processScriptFile(cf)
		}
		o.results.Stats.AddonsScanned++
		o.reportProgress(models.PhaseAddons, i+1, len(addonDirs), dir)
	}
	return nil
}

// scanWorkshop covers extracted workshop content and .gma archives under
// workshop/content/4000 (the Garry's Mod app ID).
func (o *Orchestrator) scanWorkshop(ctx context.Context, gamePath string) error {
	workshopRoot := filepath.Join(gamePath, "workshop", "content", "4000")
	itemDirs := filesystem.ListDirs(workshopRoot)

	for i, dir := range itemDirs {
		if o.cancelled() {
			o.results.Cancelled = true
			return nil
		}

		// Extracted items carry a lua/weapons tree like an addon.
		files := o.collectCandidates(filepath.Join(dir, "lua", "weapons"))
		for _, cf := range files {
			o.processScriptFile(cf)
		}

		// Packed items are .gma archives; the index alone names the
		// materials and models they ship.
		o.harvestArchives(dir)

		o.results.Stats.WorkshopItemsScanned++
		o.reportProgress(models.PhaseWorkshop, i+1, len(itemDirs), dir)
	}

	// Legacy workshop downloads live under garrysmod/workshop.
	legacy := filepath.Join(gamePath, "garrysmod", "workshop")
	if _, err := os.Stat(legacy); err == nil {
		for _, cf := range o.collectCandidates(legacy) {
			if o.cancelled() {
				o.results.Cancelled = true
				return nil
			}
			o.processScriptFile(cf)
		}
		o.harvestArchives(legacy)
	}
	return nil
}

// harvestArchives lists asset paths out of every .gma under dir.
func (o *Orchestrator) harvestArchives(dir string) {
	o.walker.Walk(dir, func(cf models.CandidateFile) error {
		if !strings.EqualFold(filepath.Ext(cf.Path), ".gma") {
			return nil
		}

		arc, err := gma.ListFiles(cf.Path)
		if err != nil {
			o.logger.Debug("Unreadable addon archive",
				zap.String("path", cf.Path), zap.Error(err))
			o.results.Stats.ReadErrors++
			return nil
		}

		textures, modelRefs := arc.AssetPaths()
		for _, t := range textures {
			o.results.AddTexture(t)
		}
		for _, m := range modelRefs {
			o.results.AddModel(m)
		}
		o.logger.Debug("Harvested addon archive",
			zap.String("path", cf.Path),
			zap.String("addon", arc.Name),
			zap.Int("textures", len(textures)),
			zap.Int("models", len(modelRefs)))
		return nil
	})
}

// scanCacheDirectories covers compiled Lua caches and downloads; the bulk
// of the corpus, processed on the worker pool.
func (o *Orchestrator) scanCacheDirectories(ctx context.Context, gamePath string) error {
	roots := []string{
		filepath.Join(gamePath, "garrysmod", "cache", "lua"),
		filepath.Join(gamePath, "garrysmod", "cache", "workshop"),
		filepath.Join(gamePath, "garrysmod", "downloads"),
	}
	for _, extra := range o.config.CacheRoots {
		roots = append(roots, filepath.Join(gamePath, extra))
	}

	var files []models.CandidateFile
	for _, root := range roots {
		files = append(files, o.collectCandidates(root)...)
	}

	if len(files) == 0 {
		return nil
	}
	return o.processCacheBatch(ctx, files)
}

// collectCandidates walks root and keeps the files the eligibility filter
// accepts. Rejections are counted, not returned.
func (o *Orchestrator) collectCandidates(root string) []models.CandidateFile {
	var out []models.CandidateFile
	o.walker.Walk(root, func(cf models.CandidateFile) error {
		verdict := o.filter.Classify(cf.Path, cf.Size)
		if !verdict.Eligible {
			o.results.Stats.FilesRejected++
			return nil
		}
		o.logger.Debug("Candidate accepted",
			zap.String("path", cf.Path),
			zap.String("reason", verdict.Reason))
		out = append(out, cf)
		return nil
	})
	return out
}

// processScriptFile handles one plain-text candidate synchronously.
func (o *Orchestrator) processScriptFile(cf models.CandidateFile) {
	text, err := filesystem.ReadText(cf.Path)
	if err != nil {
		o.logger.Debug("Read failed", zap.String("path", cf.Path), zap.Error(err))
		o.results.Stats.ReadErrors++
		return
	}

	o.results.Stats.FilesProcessed++
	o.results.Stats.ScriptFilesProcessed++
	o.ingest(text, cf.Path)
}

// ingest classifies decoded or plain text and merges extraction output
// into the aggregate. Runs only on the orchestrator goroutine.
func (o *Orchestrator) ingest(text, source string) {
	if !classifier.IsWeaponScript(text) {
		return
	}
	o.merge(extract.Extract(text, source))
}

func (o *Orchestrator) merge(res *extract.Result) {
	if res == nil {
		return
	}
	for _, rec := range res.Weapons {
		o.results.AddWeapon(rec)
	}
	for _, t := range res.Textures {
		o.results.AddTexture(t)
	}
	for _, m := range res.Models {
		o.results.AddModel(m)
	}
}

func strategyNames(c *decoder.Cascade) []string {
	var out []string
	for _, s := range c.Strategies() {
		out = append(out, string(s))
	}
	return out
}
