package schema

// JudgmentSchema is the structural contract for the trigger classifier's
// output: a yes/no answer plus an optional free-text reason. Model output
// failing this schema goes through the one-shot repair flow before it is
// given up on.
var JudgmentSchema = &Schema{
	Types:    []string{"object"},
	Required: []string{"answer", "reason"},
	Properties: map[string]*Schema{
		"answer": {Enum: []string{"yes", "no"}},
		"reason": {Types: []string{"string", "null"}},
	},
}
