// Package ai summarizes scan results through the Anthropic API. The whole
// package is optional; the scan never depends on it.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gmodtools/swepscan/internal/config"
	"github.com/gmodtools/swepscan/pkg/models"
)

const summarySystemPrompt = `You are an assistant reviewing the results of a
Garry's Mod weapon-asset scan. Given a list of detected scripted weapons and
their metadata, produce a JSON object with fields:
  "summary": one-paragraph overview of the collection,
  "notable_weapons": array of up to 10 weapon class names worth a closer look,
  "gamemode_breakdown": object mapping gamemode name to weapon count.
Respond with JSON only.`

// maxWeaponsInPrompt caps how many records are serialized into the prompt.
const maxWeaponsInPrompt = 200

// Summary is the parsed model output.
type Summary struct {
	Model             string         `json:"model"`
	Text              string         `json:"summary"`
	NotableWeapons    []string       `json:"notable_weapons"`
	GamemodeBreakdown map[string]int `json:"gamemode_breakdown"`
	Duration          time.Duration  `json:"duration"`
}

// Analyzer asks the model to summarize a completed scan.
type Analyzer struct {
	client *Client
	logger *zap.Logger
}

// NewAnalyzer creates an Analyzer from the AI config section.
func NewAnalyzer(cfg *config.AIConfig, logger *zap.Logger) (*Analyzer, error) {
	client, err := NewClient(cfg.Model, cfg.APIToken, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Analyzer{client: client, logger: logger}, nil
}

// Summarize sends the weapon list for review and parses the response.
func (a *Analyzer) Summarize(ctx context.Context, results *models.ScanResults) (*Summary, error) {
	start := time.Now()

	prompt, count := buildSummaryPrompt(results)
	a.logger.Info("Requesting scan summary",
		zap.Int("weapons", count),
		zap.String("model", a.client.GetModel()))

	text, err := a.client.Complete(ctx, summarySystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Model: a.client.GetModel()}
	if err := json.Unmarshal([]byte(extractJSON(text)), summary); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	summary.Duration = time.Since(start)

	a.logger.Info("Scan summary complete",
		zap.Int("notable", len(summary.NotableWeapons)),
		zap.Duration("duration", summary.Duration))
	return summary, nil
}

// buildSummaryPrompt serializes weapon records into the user prompt.
func buildSummaryPrompt(results *models.ScanResults) (string, int) {
	var sb strings.Builder
	sb.WriteString("Detected weapons:\n")

	count := 0
	for class, rec := range results.Weapons {
		if count >= maxWeaponsInPrompt {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(results.Weapons)-count))
			break
		}
		sb.WriteString(fmt.Sprintf("- %s (name=%q base=%q category=%q gamemode=%s)\n",
			class, rec.PrintName, rec.Base, rec.Category, rec.Gamemode))
		count++
	}

	sb.WriteString(fmt.Sprintf("\nTexture references: %d\nModel references: %d\n",
		len(results.Textures()), len(results.Models())))
	return sb.String(), count
}
