package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"footbuddy/internal/config"
	"footbuddy/internal/llm"
	"footbuddy/internal/models"
	"footbuddy/internal/schema"
	"footbuddy/pkg/logger"

	"go.uber.org/zap"
)

// RepairLoop turns the classifier's raw text into a validated judgment.
// Parse -> validate -> on failure one repair invoke with the few-shot fix
// prompt -> re-validate. At most one repair call per classification; a
// judgment that is still invalid afterwards is rejected and dropped.
type RepairLoop struct {
	llm     llm.Invoker
	prompts *llm.Prompts
	model   config.ModelConfig
}

func NewRepairLoop(invoker llm.Invoker, prompts *llm.Prompts, model config.ModelConfig) *RepairLoop {
	return &RepairLoop{
		llm:     invoker,
		prompts: prompts,
		model:   model,
	}
}

// Resolve validates raw classifier output, repairing it once if needed.
// The second return value reports whether the judgment was accepted;
// rejection is a normal outcome, never an error.
func (r *RepairLoop) Resolve(ctx context.Context, raw string) (models.TriggerJudgment, bool) {
	if judgment, ok := parseJudgment(raw); ok {
		return judgment, true
	}

	logger.Warn("Trigger response failed validation, attempting repair",
		zap.String("response", raw))

	prompt, err := r.prompts.RenderRepair(raw)
	if err != nil {
		logger.Error("Failed to render repair prompt", zap.Error(err))
		return models.TriggerJudgment{}, false
	}

	repaired, err := r.llm.Invoke(ctx, r.model, prompt)
	if err != nil {
		logger.Error("Repair call failed", zap.Error(err), zap.String("original", raw))
		return models.TriggerJudgment{}, false
	}

	if judgment, ok := parseJudgment(repaired); ok {
		logger.Info("Trigger response repaired successfully")
		return judgment, true
	}

	logger.Error("Trigger response still invalid after repair, dropping",
		zap.String("original", raw),
		zap.String("repaired", repaired))
	return models.TriggerJudgment{}, false
}

// parseJudgment interprets raw model text as a judgment and checks it
// against the judgment schema.
func parseJudgment(raw string) (models.TriggerJudgment, bool) {
	cleaned := stripCodeFences(raw)

	var generic map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &generic); err != nil {
		return models.TriggerJudgment{}, false
	}

	if outcome := schema.Validate(generic, schema.JudgmentSchema); !outcome.Valid {
		logger.Debug("Judgment failed schema validation", zap.String("detail", outcome.Detail))
		return models.TriggerJudgment{}, false
	}

	var judgment models.TriggerJudgment
	if err := json.Unmarshal([]byte(cleaned), &judgment); err != nil {
		return models.TriggerJudgment{}, false
	}
	return judgment, true
}

// stripCodeFences removes a surrounding markdown code block, which models
// add even when told not to.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
