package decoder

import (
	"github.com/gmodtools/swepscan/internal/config"
	"go.uber.org/zap"
)

// Build assembles the standard cascade from configuration. The external
// decompiler is only registered when enabled and actually present, so a
// missing tool costs nothing per file.
func Build(cfg *config.Config, logger *zap.Logger) *Cascade {
	floor := cfg.PlausibilityFloor()
	c := NewCascade(logger, floor, cfg.DecodeBudget())

	if cfg.EnableExternalTool {
		luadec := NewLuadecStrategy(cfg.LuadecPath)
		if luadec.Available() {
			c.Register(luadec)
			logger.Info("External decompiler enabled", zap.String("binary", cfg.LuadecPath))
		} else {
			logger.Debug("External decompiler not available", zap.String("binary", cfg.LuadecPath))
		}
	}

	c.Register(NewLZMAStrategy())
	c.Register(NewZlibScanStrategy())
	c.Register(NewBase64ScanStrategy(floor))
	c.Register(NewSalvageStrategy())

	return c
}
