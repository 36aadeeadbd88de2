package llm

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Shot is one worked input/output example seeded into the repair prompt.
type Shot struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type promptSection struct {
	System string `yaml:"system"`
	Shots  []Shot `yaml:"shots"`
}

// Prompts holds the templates for every LLM stage of the pipeline.
type Prompts struct {
	Description promptSection `yaml:"description"`
	Trigger     promptSection `yaml:"trigger"`
	Repair      promptSection `yaml:"repair"`
	Email       promptSection `yaml:"email"`
}

// LoadPrompts parses the embedded prompt file.
func LoadPrompts() (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(promptsYAML, &p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts: %w", err)
	}
	for name, section := range map[string]promptSection{
		"description": p.Description,
		"trigger":     p.Trigger,
		"repair":      p.Repair,
		"email":       p.Email,
	} {
		if strings.TrimSpace(section.System) == "" {
			return nil, fmt.Errorf("prompt section %q is empty", name)
		}
	}
	return &p, nil
}

type promptVars struct {
	Data     string
	Team     string
	Examples string
}

func render(name, tmpl string, vars promptVars) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s prompt: %w", name, err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", name, err)
	}
	return sb.String(), nil
}

// RenderDescription fills the narrative prompt with one match record.
func (p *Prompts) RenderDescription(data string) (string, error) {
	return render("description", p.Description.System, promptVars{Data: data})
}

// RenderTrigger fills the classification prompt with match data and the
// followed team.
func (p *Prompts) RenderTrigger(data, team string) (string, error) {
	return render("trigger", p.Trigger.System, promptVars{Data: data, Team: team})
}

// RenderRepair fills the fix prompt with the malformed payload, the
// few-shot examples already expanded.
func (p *Prompts) RenderRepair(malformed string) (string, error) {
	var examples strings.Builder
	for _, shot := range p.Repair.Shots {
		fmt.Fprintf(&examples, "Input: %s\nOutput: %s\n", shot.Input, shot.Output)
	}
	return render("repair", p.Repair.System, promptVars{
		Data:     malformed,
		Examples: examples.String(),
	})
}

// RenderEmail fills the digest formatting prompt with the triggered
// matches' projections.
func (p *Prompts) RenderEmail(data string) (string, error) {
	return render("email", p.Email.System, promptVars{Data: data})
}
