package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"footbuddy/internal/config"
	"footbuddy/internal/llm"
	"footbuddy/internal/models"
	"footbuddy/pkg/logger"

	"go.uber.org/zap"
)

// NarrativeGenerator produces the free-text match report attached to a
// fixture before it is persisted.
type NarrativeGenerator struct {
	llm     llm.Invoker
	prompts *llm.Prompts
	model   config.ModelConfig
}

func NewNarrativeGenerator(invoker llm.Invoker, prompts *llm.Prompts, model config.ModelConfig) *NarrativeGenerator {
	return &NarrativeGenerator{
		llm:     invoker,
		prompts: prompts,
		model:   model,
	}
}

// Describe generates the narrative for one fixture record. A failed or
// empty model response is an error; the record must not be persisted
// without a narrative.
func (g *NarrativeGenerator) Describe(ctx context.Context, rec models.FixtureRecord) (models.Commentary, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return models.Commentary{}, fmt.Errorf("failed to serialize fixture %d: %w", rec.FixtureID, err)
	}

	prompt, err := g.prompts.RenderDescription(string(data))
	if err != nil {
		return models.Commentary{}, err
	}

	logger.Debug("Generating match narrative", zap.Int("fixture_id", rec.FixtureID))

	text, err := g.llm.Invoke(ctx, g.model, prompt)
	if err != nil {
		return models.Commentary{}, fmt.Errorf("narrative generation for fixture %d failed: %w", rec.FixtureID, err)
	}

	return models.Commentary{Text: text, Model: g.model.Name}, nil
}
