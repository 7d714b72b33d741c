package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gmodtools/swepscan/internal/ai"
	"github.com/gmodtools/swepscan/internal/config"
	"github.com/gmodtools/swepscan/internal/core"
	"github.com/gmodtools/swepscan/internal/decoder"
	"github.com/gmodtools/swepscan/internal/vmt"
	"github.com/gmodtools/swepscan/pkg/models"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorOrange = "\033[38;5;208m"
	colorYellow = "\033[38;5;220m"
	colorGray   = "\033[38;5;245m"
	colorCyan   = "\033[36m"
)

var (
	version = "0.0.1"
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "swepscan",
		Short: "swepscan - SWEP asset discovery for Garry's Mod installations",
		Long: `Heuristic scanner that discovers scripted weapons and their texture and
model references across plain Lua sources, compiled cache containers, and
workshop archives.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(vmtCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printBanner prints the startup banner
func printBanner() {
	fmt.Println()
	fmt.Printf("%s", colorOrange)
	fmt.Println("▄████▄ ██   ██ ▄████▄ ████▄  ▄████▄ ▄████▄ ▄████▄ ███  ██")
	fmt.Println("▀████▄ ██ █ ██ ██▄▄▄  ██  ██ ▀████▄ ██     ██▄▄██ ██ ▀▄██")
	fmt.Println("▄▄▄▄██ ███▀███ ██▀▀▀  ████▀  ▄▄▄▄██ ▀████▀ ██  ██ ██   ██")
	fmt.Printf("%s", colorReset)
	fmt.Println()
	fmt.Printf("%sSWEP Asset Scanner v%s%s\n", colorGray, version, colorReset)
	fmt.Println()
}

// initLogger builds the process logger from the verbose flag.
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		// Silent logger - only errors
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
	}
	return err
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		workers    int
		maxSize    string
		noScripts  bool
		noAddons   bool
		noWorkshop bool
		noCache    bool
		cacheRoots []string
		patterns   string
		noLuadec   bool
		luadecPath string
		exportFile string
		vmtOut     string
		vmtForce   bool
		// AI flags
		aiEnabled bool
		aiModel   string
		aiToken   string
	)

	cmd := &cobra.Command{
		Use:   "scan [game-path]",
		Short: "Scan a Garry's Mod installation for scripted weapons",
		Long: `Walk an installation's script, addon, workshop, and cache trees, decode
what must be decoded, and report every scripted weapon found along with the
textures and models it references.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(aiModel); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			printBanner()

			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			cfg.GamePath = args[0]
			if workers > 0 {
				cfg.Workers = workers
			}
			if maxSize != "" {
				cfg.MaxSize = maxSize
			}
			if noScripts {
				cfg.ScanScripts = false
			}
			if noAddons {
				cfg.ScanAddons = false
			}
			if noWorkshop {
				cfg.ScanWorkshop = false
			}
			if noCache {
				cfg.ScanCache = false
			}
			if len(cacheRoots) > 0 {
				cfg.CacheRoots = cacheRoots
			}
			if patterns != "" {
				cfg.PatternsPath = patterns
			}
			if noLuadec {
				cfg.EnableExternalTool = false
			}
			if luadecPath != "" {
				cfg.LuadecPath = luadecPath
			}
			if exportFile != "" {
				cfg.ExportFile = exportFile
			}
			if vmtOut != "" {
				cfg.VMTOutput = vmtOut
			}
			if vmtForce {
				cfg.VMTForce = true
			}

			// AI configuration overrides
			if aiEnabled {
				cfg.AI.Enabled = true
			}
			if aiModel != "" {
				cfg.AI.Model = aiModel
			}
			if aiToken != "" {
				cfg.AI.APIToken = aiToken
			}

			fmt.Printf("  %sScanning:%s  %s\n", colorGray, colorReset, cfg.GamePath)
			fmt.Printf("  %sWorkers:%s   %d\n", colorGray, colorReset, cfg.WorkerCount())
			fmt.Println()

			orchestrator, err := core.NewOrchestrator(cfg, logger)
			if err != nil {
				logger.Error("Failed to initialize scanner", zap.Error(err))
				return err
			}

			// Ctrl-C requests a graceful stop; partial results still print.
			var interrupted atomic.Bool
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				interrupted.Store(true)
				fmt.Printf("\n  %s⚠ Interrupt received, finishing current files...%s\n", colorYellow, colorReset)
			}()
			orchestrator.SetCancelCheck(interrupted.Load)

			lastPhase := ""
			orchestrator.SetProgressCallback(func(phase string, overall, phaseProgress float64, message string) {
				if lastPhase == phase {
					fmt.Print("\033[1A\033[K")
				}
				lastPhase = phase

				barWidth := 30
				filled := int(float64(barWidth) * overall)
				bar := fmt.Sprintf("%s%s", repeat("█", filled), repeat("░", barWidth-filled))
				msg := message
				if len(msg) > 48 {
					msg = "..." + msg[len(msg)-45:]
				}
				fmt.Printf("  %s%-9s%s [%s%s%s] %s%.1f%%%s %s%s%s\n",
					colorGray, phase, colorReset,
					colorOrange, bar, colorReset,
					colorOrange, overall*100, colorReset,
					colorGray, msg, colorReset)
			})

			results, err := orchestrator.Scan(cmd.Context())
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			printSummary(results)

			if cfg.ExportFile != "" {
				if err := writeExport(cfg.ExportFile, results.Export()); err != nil {
					logger.Error("Export failed", zap.Error(err))
					return err
				}
				fmt.Printf("  %sExport:%s    %s%s%s\n", colorGray, colorReset, colorOrange, cfg.ExportFile, colorReset)
			}

			if cfg.VMTOutput != "" {
				gen := vmt.NewGenerator(vmt.Options{ForceRegenerate: cfg.VMTForce}, logger)
				written, err := gen.WriteFiles(cfg.VMTOutput, results.Textures())
				if err != nil {
					logger.Error("Material generation failed", zap.Error(err))
					return err
				}
				fmt.Printf("  %sMaterials:%s %d written to %s\n", colorGray, colorReset, written, cfg.VMTOutput)
			}

			if cfg.AI.Enabled {
				runAISummary(cmd.Context(), cfg, results)
			}

			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Worker goroutines for the cache phase (default: CPU cores, max 16)")
	cmd.Flags().StringVar(&maxSize, "max-size", "", "Maximum file size to consider (default: 10M)")
	cmd.Flags().BoolVar(&noScripts, "no-scripts", false, "Skip the lua/weapons script phase")
	cmd.Flags().BoolVar(&noAddons, "no-addons", false, "Skip the addons phase")
	cmd.Flags().BoolVar(&noWorkshop, "no-workshop", false, "Skip the workshop phase")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the compiled cache phase")
	cmd.Flags().StringSliceVar(&cacheRoots, "cache-roots", nil, "Extra cache directories relative to the game path (comma-separated)")
	cmd.Flags().StringVar(&patterns, "patterns", "", "Directory of YAML keyword override files")
	cmd.Flags().BoolVar(&noLuadec, "no-luadec", false, "Never invoke the external luadec decompiler")
	cmd.Flags().StringVar(&luadecPath, "luadec", "", "Path to the luadec binary (default: tools/luadec/luadec)")
	cmd.Flags().StringVarP(&exportFile, "export", "o", "", "Write scan results to a JSON file")
	cmd.Flags().StringVar(&vmtOut, "vmt-out", "", "Generate VMT materials for found textures into this directory")
	cmd.Flags().BoolVar(&vmtForce, "vmt-force", false, "Regenerate VMT materials that already exist")

	// AI flags
	cmd.Flags().BoolVar(&aiEnabled, "ai", false, "Summarize the scan with AI after completion")
	cmd.Flags().StringVar(&aiModel, "ai-model", "", "AI model: haiku, sonnet, opus (default: sonnet)")
	cmd.Flags().StringVar(&aiToken, "ai-token", "", "Anthropic API token (or set ANTHROPIC_API_KEY)")

	return cmd
}

// decodeCmd creates the decode command
func decodeCmd() *cobra.Command {
	var (
		noLuadec   bool
		luadecPath string
	)

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a compiled cache file and print the result to stdout",
		Long:  `Run the decode cascade against a single file and print whatever the first successful strategy recovered.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]

			if _, err := os.Stat(filePath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", filePath)
			}

			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if noLuadec {
				cfg.EnableExternalTool = false
			}
			if luadecPath != "" {
				cfg.LuadecPath = luadecPath
			}

			cascade := decoder.Build(cfg, logger)
			outcome := cascade.Decode(context.Background(), filePath)

			if outcome.Empty() {
				fmt.Fprintf(os.Stderr, "%s⚠ Nothing recoverable from %s%s\n", colorYellow, filePath, colorReset)
				return nil
			}

			fmt.Fprintf(os.Stderr, "%s✓ Decoded via %s%s (%s)\n\n", colorOrange, outcome.Strategy, colorReset, outcome.Elapsed)
			fmt.Print(outcome.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noLuadec, "no-luadec", false, "Never invoke the external luadec decompiler")
	cmd.Flags().StringVar(&luadecPath, "luadec", "", "Path to the luadec binary")

	return cmd
}

// vmtCmd creates the vmt command
func vmtCmd() *cobra.Command {
	var (
		outDir string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "vmt <texture-path>...",
		Short: "Generate VMT material files for texture paths",
		Long:  `Build Source engine material definitions for the given texture paths and either print them or write a materials tree.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			gen := vmt.NewGenerator(vmt.Options{ForceRegenerate: force}, logger)

			if outDir != "" {
				written, err := gen.WriteFiles(outDir, args)
				if err != nil {
					return err
				}
				fmt.Printf("%s✓ %d materials written to %s%s\n", colorOrange, written, outDir, colorReset)
				return nil
			}

			for _, tex := range args {
				content, kind := gen.Content(tex)
				fmt.Fprintf(os.Stderr, "%s// %s (%s)%s\n", colorGray, tex, kind, colorReset)
				fmt.Println(content)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write materials under this directory instead of stdout")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Regenerate materials that already exist")

	return cmd
}

// printSummary prints the scan result table
func printSummary(results *models.ScanResults) {
	stats := results.Stats

	fmt.Println()
	fmt.Printf("  %s%sScan Results%s\n", colorBold, colorOrange, colorReset)
	fmt.Printf("  %sWeapons:%s        %s%d%s\n", colorGray, colorReset, colorBold, stats.WeaponsDetected, colorReset)
	fmt.Printf("  %sTextures:%s       %d\n", colorGray, colorReset, stats.TexturesFound)
	fmt.Printf("  %sModels:%s         %d\n", colorGray, colorReset, stats.ModelsFound)
	fmt.Printf("  %sFiles:%s          %d processed, %d rejected, %d read errors\n",
		colorGray, colorReset, stats.FilesProcessed, stats.FilesRejected, stats.ReadErrors)
	fmt.Printf("  %sCache:%s          %d decoded, %d timeouts, %d incomplete\n",
		colorGray, colorReset, stats.CacheFilesProcessed, stats.DecodeTimeouts, stats.IncompleteTasks)
	fmt.Printf("  %sDuration:%s       %s\n", colorGray, colorReset, results.Duration.Round(time.Millisecond))
	if results.Cancelled {
		fmt.Printf("  %s⚠ Scan was cancelled; results are partial%s\n", colorYellow, colorReset)
	}
	fmt.Println()

	// Top weapons by class, capped to keep the console readable.
	if len(results.Weapons) > 0 {
		classes := make([]string, 0, len(results.Weapons))
		for class := range results.Weapons {
			classes = append(classes, class)
		}
		sort.Strings(classes)

		shown := classes
		if len(shown) > 15 {
			shown = shown[:15]
		}
		for _, class := range shown {
			rec := results.Weapons[class]
			name := rec.PrintName
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("  %s%-28s%s %s %s[%s]%s\n",
				colorBold, class, colorReset, name, colorGray, rec.Gamemode, colorReset)
		}
		if len(classes) > len(shown) {
			fmt.Printf("  %s... and %d more%s\n", colorGray, len(classes)-len(shown), colorReset)
		}
		fmt.Println()
	}
}

// writeExport writes the JSON export file.
func writeExport(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// runAISummary asks for a post-scan summary; failures degrade gracefully.
func runAISummary(ctx context.Context, cfg *config.Config, results *models.ScanResults) {
	fmt.Printf("\n  %s%sAI Summary%s\n", colorBold, colorRed, colorReset)

	analyzer, err := ai.NewAnalyzer(&cfg.AI, logger)
	if err != nil {
		fmt.Printf("  %s⚠ AI skipped: %s%s\n", colorYellow, err.Error(), colorReset)
		return
	}

	summary, err := analyzer.Summarize(ctx, results)
	if err != nil {
		fmt.Printf("  %s⚠ AI failed: %s%s\n", colorYellow, err.Error(), colorReset)
		return
	}

	fmt.Printf("  %s\n", summary.Text)
	if len(summary.NotableWeapons) > 0 {
		fmt.Printf("\n  %sWorth a closer look:%s %s\n",
			colorGray, colorReset, strings.Join(summary.NotableWeapons, ", "))
	}
	fmt.Printf("  %s(%s, %s)%s\n", colorGray, summary.Model, summary.Duration.Round(time.Millisecond), colorReset)
}

// validateFlags validates CLI flag values
func validateFlags(aiModel string) error {
	if aiModel != "" {
		validModels := []string{"haiku", "sonnet", "opus"}
		if !contains(validModels, aiModel) {
			return fmt.Errorf("--ai-model must be one of: %s (got: %s)", strings.Join(validModels, ", "), aiModel)
		}
	}
	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// repeat returns a string with character c repeated n times
func repeat(c string, n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += c
	}
	return result
}
