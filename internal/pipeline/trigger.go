package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"footbuddy/internal/config"
	"footbuddy/internal/llm"
	"footbuddy/internal/store"
	"footbuddy/pkg/logger"

	"go.uber.org/zap"
)

// TriggerClassifier asks the model whether a stored match contains an
// event worth notifying about. It returns the model's raw text and does
// not parse or validate it; trusting the answer is the repair loop's job.
type TriggerClassifier struct {
	llm     llm.Invoker
	prompts *llm.Prompts
	model   config.ModelConfig
}

func NewTriggerClassifier(invoker llm.Invoker, prompts *llm.Prompts, model config.ModelConfig) *TriggerClassifier {
	return &TriggerClassifier{
		llm:     invoker,
		prompts: prompts,
		model:   model,
	}
}

// Classify invokes the trigger prompt for one match and the followed team.
func (c *TriggerClassifier) Classify(ctx context.Context, match store.MatchProjection, team string) (string, error) {
	data, err := json.Marshal(match)
	if err != nil {
		return "", fmt.Errorf("failed to serialize match %d: %w", match.FixtureID, err)
	}

	prompt, err := c.prompts.RenderTrigger(string(data), team)
	if err != nil {
		return "", err
	}

	logger.Debug("Classifying match for triggers",
		zap.Int("fixture_id", match.FixtureID),
		zap.String("team", team))

	raw, err := c.llm.Invoke(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("trigger classification for fixture %d failed: %w", match.FixtureID, err)
	}

	return raw, nil
}
