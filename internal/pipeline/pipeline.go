package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"footbuddy/internal/config"
	"footbuddy/internal/llm"
	"footbuddy/internal/models"
	"footbuddy/internal/schema"
	"footbuddy/internal/store"
	"footbuddy/pkg/logger"

	"go.uber.org/zap"
)

// Fetcher produces the day's raw fixture records, events and statistics
// already joined in per fixture.
type Fetcher interface {
	FetchDay(ctx context.Context, date string) ([]models.FixtureRecord, error)
}

// Storage is the persistence surface the pipeline writes to and reads
// back from between its two passes.
type Storage interface {
	InsertFixture(rec *models.FixtureRecord) error
	FixtureIDsForDate(date string) ([]int, error)
	MatchProjection(fixtureID int) (store.MatchProjection, error)
	EmailProjection(fixtureID int) (store.EmailProjection, error)
}

// Result summarizes one digest run. An empty EmailBody means the run was
// a clean no-op: either no fixtures or no triggers.
type Result struct {
	EmailBody     string
	FixturesSeen  int
	TriggersFound int
}

// Pipeline sequences the daily batch: fetch, validate, narrate, persist,
// re-fetch, classify, repair, collect triggers, format the email body.
// Single-threaded; fixtures are processed in source order.
type Pipeline struct {
	fetcher    Fetcher
	storage    Storage
	llm        llm.Invoker
	prompts    *llm.Prompts
	narrator   *NarrativeGenerator
	classifier *TriggerClassifier
	repair     *RepairLoop
	team       string
	emailModel config.ModelConfig
}

func NewPipeline(cfg *config.Config, fetcher Fetcher, storage Storage, invoker llm.Invoker, prompts *llm.Prompts) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		storage:    storage,
		llm:        invoker,
		prompts:    prompts,
		narrator:   NewNarrativeGenerator(invoker, prompts, cfg.LLM.Description),
		classifier: NewTriggerClassifier(invoker, prompts, cfg.LLM.Trigger),
		repair:     NewRepairLoop(invoker, prompts, cfg.LLM.Repair),
		team:       cfg.Pipeline.Team,
		emailModel: cfg.LLM.Email,
	}
}

// Run processes all fixtures for one date. It fails fast on source schema
// breaches, narrative failures and storage faults; malformed trigger
// judgments only drop the affected fixture.
func (p *Pipeline) Run(ctx context.Context, date string) (Result, error) {
	result := Result{}

	fixtures, err := p.fetcher.FetchDay(ctx, date)
	if err != nil {
		return result, fmt.Errorf("failed to fetch fixtures for %s: %w", date, err)
	}
	result.FixturesSeen = len(fixtures)

	if len(fixtures) == 0 {
		logger.Info("No matches found for date, nothing to do", zap.String("date", date))
		return result, nil
	}

	// All fixtures must validate before anything is enriched or persisted.
	// A single invalid fixture means the source contract is broken.
	for i := range fixtures {
		if outcome := schema.Validate(fixtures[i].RawJSON, schema.FixtureSchema); !outcome.Valid {
			return result, fmt.Errorf("invalid data for fixture %d from source: %s",
				fixtures[i].FixtureID, outcome.Detail)
		}
	}

	for i := range fixtures {
		commentary, err := p.narrator.Describe(ctx, fixtures[i])
		if err != nil {
			// One model serves every fixture, so a failure here predicts
			// the rest of the batch: abort instead of shrinking the digest.
			return result, err
		}
		fixtures[i].LLM = &commentary

		if err := p.storage.InsertFixture(&fixtures[i]); err != nil {
			return result, fmt.Errorf("failed to persist fixture %d: %w", fixtures[i].FixtureID, err)
		}
	}

	ids, err := p.storage.FixtureIDsForDate(date)
	if err != nil {
		return result, err
	}
	logger.Info("Classifying stored matches", zap.String("date", date), zap.Int("count", len(ids)))

	var triggers []models.TriggerJudgment
	for _, id := range ids {
		match, err := p.storage.MatchProjection(id)
		if err != nil {
			return result, err
		}

		raw, err := p.classifier.Classify(ctx, match, p.team)
		if err != nil {
			return result, err
		}

		judgment, accepted := p.repair.Resolve(ctx, raw)
		if !accepted {
			continue // already logged, never fatal to the batch
		}
		if judgment.Answer != "yes" {
			logger.Debug("No trigger for match", zap.Int("fixture_id", id))
			continue
		}

		judgment.FixtureID = id
		triggers = append(triggers, judgment)
		logger.Info("Trigger identified",
			zap.Int("fixture_id", id),
			zap.Stringp("reason", judgment.Reason))
	}
	result.TriggersFound = len(triggers)

	if len(triggers) == 0 {
		logger.Info("No triggers identified, no email to send", zap.String("date", date))
		return result, nil
	}

	body, err := p.formatEmail(ctx, triggers)
	if err != nil {
		return result, err
	}
	result.EmailBody = body
	return result, nil
}

// formatEmail collects the email projections of the triggered fixtures
// and asks the model for the final digest body.
func (p *Pipeline) formatEmail(ctx context.Context, triggers []models.TriggerJudgment) (string, error) {
	projections := make([]store.EmailProjection, 0, len(triggers))
	for _, trigger := range triggers {
		projection, err := p.storage.EmailProjection(trigger.FixtureID)
		if err != nil {
			return "", err
		}
		projections = append(projections, projection)
	}

	data, err := json.Marshal(projections)
	if err != nil {
		return "", fmt.Errorf("failed to serialize email data: %w", err)
	}

	prompt, err := p.prompts.RenderEmail(string(data))
	if err != nil {
		return "", err
	}

	body, err := p.llm.Invoke(ctx, p.emailModel, prompt)
	if err != nil {
		return "", fmt.Errorf("email formatting failed: %w", err)
	}
	return body, nil
}
