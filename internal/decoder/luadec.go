package decoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/gmodtools/swepscan/pkg/models"
)

// LuadecStrategy shells out to an external Lua decompiler when one is
// installed. Timeouts, non-zero exits and empty output all fall through to
// the next strategy.
type LuadecStrategy struct {
	binary string
}

// NewLuadecStrategy creates the external-tool strategy for the given binary.
func NewLuadecStrategy(binary string) *LuadecStrategy {
	return &LuadecStrategy{binary: binary}
}

// Name returns the strategy tag.
func (s *LuadecStrategy) Name() models.DecodeStrategy {
	return models.StrategyExternalTool
}

// Available checks whether the decompiler binary exists and answers a
// version probe within a second.
func (s *LuadecStrategy) Available() bool {
	if s.binary == "" {
		return false
	}
	if _, err := os.Stat(s.binary); err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	// Exit status does not matter, only that the binary runs at all.
	_ = exec.CommandContext(ctx, s.binary, "-v").Run()
	return ctx.Err() != context.DeadlineExceeded
}

// Decode invokes the decompiler against the file and captures its stdout.
func (s *LuadecStrategy) Decode(ctx context.Context, path string, _ []byte) (string, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, s.binary, path)
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("luadec failed: %w", err)
	}
	if stdout.Len() == 0 {
		return "", fmt.Errorf("luadec produced no output")
	}
	return stdout.String(), nil
}
