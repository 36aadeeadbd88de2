package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestValidate_RequiredKeys(t *testing.T) {
	s := &Schema{
		Types:    []string{"object"},
		Required: []string{"answer", "reason"},
	}

	outcome := Validate(decode(t, `{"answer": "yes"}`), s)
	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Detail, `missing required key "reason"`)

	outcome = Validate(decode(t, `{"answer": "yes", "reason": null}`), s)
	assert.True(t, outcome.Valid)
}

func TestValidate_PrimitiveTypes(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		value interface{}
		valid bool
	}{
		{"string ok", []string{"string"}, "hello", true},
		{"string mismatch", []string{"string"}, 42.0, false},
		{"integer ok", []string{"integer"}, 42.0, true},
		{"integer rejects fraction", []string{"integer"}, 42.5, false},
		{"integer rejects string", []string{"integer"}, "42", false},
		{"boolean ok", []string{"boolean"}, true, true},
		{"boolean mismatch", []string{"boolean"}, "true", false},
		{"native int accepted", []string{"integer"}, 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Validate(tt.value, &Schema{Types: tt.types})
			assert.Equal(t, tt.valid, outcome.Valid, outcome.Detail)
		})
	}
}

func TestValidate_NullableUnion(t *testing.T) {
	s := &Schema{Types: []string{"string", "null"}}

	assert.True(t, Validate("text", s).Valid)
	assert.True(t, Validate(nil, s).Valid)
	assert.False(t, Validate(12.0, s).Valid)
}

func TestValidate_Enum(t *testing.T) {
	s := &Schema{Enum: []string{"yes", "no"}}

	assert.True(t, Validate("yes", s).Valid)
	assert.True(t, Validate("no", s).Valid)

	outcome := Validate("maybe", s)
	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Detail, "not in enum")

	// non-string values never satisfy a string enum
	assert.False(t, Validate(1.0, s).Valid)
}

func TestValidate_NestedObjects(t *testing.T) {
	s := &Schema{
		Types:    []string{"object"},
		Required: []string{"league"},
		Properties: map[string]*Schema{
			"league": {
				Types:    []string{"object"},
				Required: []string{"season"},
				Properties: map[string]*Schema{
					"season": {Types: []string{"integer"}},
				},
			},
		},
	}

	outcome := Validate(decode(t, `{"league": {"season": "2024"}}`), s)
	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Detail, "$.league.season")

	outcome = Validate(decode(t, `{"league": {}}`), s)
	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Detail, `missing required key "season"`)
}

func TestValidate_ArrayOfObjects(t *testing.T) {
	s := &Schema{
		Types: []string{"array"},
		Items: &Schema{
			Types:    []string{"object"},
			Required: []string{"type"},
		},
	}

	assert.True(t, Validate(decode(t, `[]`), s).Valid, "empty array satisfies an array schema")
	assert.True(t, Validate(decode(t, `[{"type": "Goal"}]`), s).Valid)

	outcome := Validate(decode(t, `[{"type": "Goal"}, {}]`), s)
	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Detail, "$[1]")
}

func TestValidate_MalformedInputIsOutcomeNotPanic(t *testing.T) {
	s := &Schema{Types: []string{"object"}}

	assert.False(t, Validate(nil, s).Valid)
	assert.False(t, Validate("not an object", s).Valid)
	assert.False(t, Validate(struct{ X int }{1}, s).Valid)
}

func TestValidate_Deterministic(t *testing.T) {
	value := decode(t, `{"b": 1, "a": "x", "c": true}`)
	s := &Schema{
		Types: []string{"object"},
		Properties: map[string]*Schema{
			"a": {Types: []string{"integer"}},
			"b": {Types: []string{"string"}},
			"c": {Types: []string{"string"}},
		},
	}

	first := Validate(value, s)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Validate(value, s))
	}
}

func TestJudgmentSchema(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"yes with reason", `{"answer": "yes", "reason": "red card in 88th minute"}`, true},
		{"no with null reason", `{"answer": "no", "reason": null}`, true},
		{"bad answer", `{"answer": "maybe", "reason": null}`, false},
		{"missing reason", `{"answer": "yes"}`, false},
		{"missing answer", `{"reason": "something"}`, false},
		{"numeric reason", `{"answer": "yes", "reason": 5}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Validate(decode(t, tt.raw), JudgmentSchema)
			assert.Equal(t, tt.valid, outcome.Valid, outcome.Detail)
		})
	}
}

func TestFixtureSchema_ValidRecord(t *testing.T) {
	// A fixture with empty event and stat lists and a complete about
	// block is valid: empty arrays satisfy an array schema.
	outcome := Validate(decode(t, validFixtureJSON), FixtureSchema)
	assert.True(t, outcome.Valid, outcome.Detail)
}

func TestFixtureSchema_MissingLeagueSeason(t *testing.T) {
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(validFixtureJSON), &record))

	about := record["about"].(map[string]interface{})
	league := about["league"].(map[string]interface{})
	delete(league, "season")

	outcome := Validate(record, FixtureSchema)
	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Detail, `missing required key "season"`)
}

func TestFixtureSchema_Events(t *testing.T) {
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(validFixtureJSON), &record))

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"assist": {"id": null, "name": null},
		"comments": null,
		"detail": "Normal Goal",
		"player": {"id": 10, "name": "J. Kuchta"},
		"team": {"id": 560, "name": "Slavia Praha", "logo": "https://example.com/560.png"},
		"time": {"elapsed": 88, "extra": null},
		"type": "Goal"
	}`), &event))

	record["events"] = []interface{}{event}
	assert.True(t, Validate(record, FixtureSchema).Valid)

	delete(event, "player")
	outcome := Validate(record, FixtureSchema)
	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Detail, `missing required key "player"`)
}

const validFixtureJSON = `{
	"fixture_id": 1035001,
	"about": {
		"fixture": {
			"date": "2025-03-16T15:00:00+00:00",
			"referee": "P. Kralovec",
			"timestamp": 1742137200,
			"timezone": "UTC",
			"periods": {"first": 1742137200, "second": 1742140800},
			"status": {"long": "Match Finished", "short": "FT", "elapsed": 90, "extra": 5},
			"venue": {"id": 660, "name": "Eden Arena", "city": "Praha"}
		},
		"league": {
			"id": 345,
			"name": "Czech Liga",
			"country": "Czech-Republic",
			"flag": "https://example.com/cz.svg",
			"logo": "https://example.com/345.png",
			"round": "Regular Season - 25",
			"season": 2024,
			"standings": true
		},
		"teams": {
			"home": {"id": 560, "name": "Slavia Praha", "logo": "https://example.com/560.png", "winner": true},
			"away": {"id": 569, "name": "Viktoria Plzen", "logo": "https://example.com/569.png", "winner": false}
		},
		"goals": {"home": 2, "away": 1},
		"score": {
			"halftime": {"home": 1, "away": 0},
			"fulltime": {"home": 2, "away": 1},
			"extratime": {"home": null, "away": null},
			"penalty": {"home": null, "away": null}
		}
	},
	"events": [],
	"stats": []
}`
