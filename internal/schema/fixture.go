package schema

// FixtureSchema is the structural contract for one raw fixture record as
// assembled from the API-Football fixtures, events and statistics
// endpoints. A fixture failing this schema means the source contract
// itself is broken.
var FixtureSchema = &Schema{
	Types:    []string{"object"},
	Required: []string{"about", "events", "fixture_id", "stats"},
	Properties: map[string]*Schema{
		"fixture_id": {Types: []string{"integer"}},
		"about": {
			Types:    []string{"object"},
			Required: []string{"fixture", "goals", "league", "score", "teams"},
			Properties: map[string]*Schema{
				"fixture": {
					Types:    []string{"object"},
					Required: []string{"date", "periods", "referee", "status", "timestamp", "timezone", "venue"},
					Properties: map[string]*Schema{
						"date":    {Types: []string{"string"}},
						"referee": {Types: []string{"string"}},
						"periods": {
							Types:    []string{"object"},
							Required: []string{"first", "second"},
							Properties: map[string]*Schema{
								"first":  {Types: []string{"integer"}},
								"second": {Types: []string{"integer"}},
							},
						},
						"status": {
							Types:    []string{"object"},
							Required: []string{"elapsed", "extra", "long", "short"},
							Properties: map[string]*Schema{
								"elapsed": {Types: []string{"integer"}},
								"extra":   {Types: []string{"integer"}},
								"long":    {Types: []string{"string"}},
								"short":   {Types: []string{"string"}},
							},
						},
						"timestamp": {Types: []string{"integer"}},
						"timezone":  {Types: []string{"string"}},
						"venue": {
							Types:    []string{"object"},
							Required: []string{"city", "id", "name"},
							Properties: map[string]*Schema{
								"city": {Types: []string{"string"}},
								"id":   {Types: []string{"integer"}},
								"name": {Types: []string{"string"}},
							},
						},
					},
				},
				"goals": {
					Types:    []string{"object"},
					Required: []string{"away", "home"},
					Properties: map[string]*Schema{
						"away": {Types: []string{"integer"}},
						"home": {Types: []string{"integer"}},
					},
				},
				"league": {
					Types:    []string{"object"},
					Required: []string{"country", "flag", "id", "logo", "name", "round", "season", "standings"},
					Properties: map[string]*Schema{
						"country":   {Types: []string{"string"}},
						"flag":      {Types: []string{"string"}},
						"id":        {Types: []string{"integer"}},
						"logo":      {Types: []string{"string"}},
						"name":      {Types: []string{"string"}},
						"round":     {Types: []string{"string"}},
						"season":    {Types: []string{"integer"}},
						"standings": {Types: []string{"boolean"}},
					},
				},
				"score": {
					Types:    []string{"object"},
					Required: []string{"extratime", "fulltime", "halftime", "penalty"},
					Properties: map[string]*Schema{
						"halftime":  scoreLeg(false),
						"fulltime":  scoreLeg(false),
						"extratime": scoreLeg(true),
						"penalty":   scoreLeg(true),
					},
				},
				"teams": {
					Types:    []string{"object"},
					Required: []string{"away", "home"},
					Properties: map[string]*Schema{
						"away": teamSide(),
						"home": teamSide(),
					},
				},
			},
		},
		"events": {
			Types: []string{"array"},
			Items: &Schema{
				Types:    []string{"object"},
				Required: []string{"assist", "comments", "detail", "player", "team", "time", "type"},
				Properties: map[string]*Schema{
					"assist": {
						Types: []string{"object"},
						Properties: map[string]*Schema{
							"id":   {Types: []string{"integer", "null"}},
							"name": {Types: []string{"string", "null"}},
						},
					},
					"comments": {Types: []string{"string", "null"}},
					"detail":   {Types: []string{"string"}},
					"player": {
						Types:    []string{"object"},
						Required: []string{"id", "name"},
						Properties: map[string]*Schema{
							"id":   {Types: []string{"integer"}},
							"name": {Types: []string{"string"}},
						},
					},
					"team": teamRef(),
					"time": {
						Types: []string{"object"},
						Properties: map[string]*Schema{
							"elapsed": {Types: []string{"integer"}},
							"extra":   {Types: []string{"integer", "null"}},
						},
					},
					"type": {Types: []string{"string"}},
				},
			},
		},
		"stats": {
			Types: []string{"array"},
			Items: &Schema{
				Types:    []string{"object"},
				Required: []string{"statistics", "team"},
				Properties: map[string]*Schema{
					"statistics": {
						Types: []string{"array"},
						Items: &Schema{
							Types:    []string{"object"},
							Required: []string{"type", "value"},
							Properties: map[string]*Schema{
								"type":  {Types: []string{"string"}},
								"value": {Types: []string{"integer", "string", "null"}},
							},
						},
					},
					"team": teamRef(),
				},
			},
		},
	},
}

func scoreLeg(nullable bool) *Schema {
	leg := &Schema{Types: []string{"integer"}}
	if nullable {
		leg = &Schema{Types: []string{"integer", "null"}}
	}
	s := &Schema{
		Types: []string{"object"},
		Properties: map[string]*Schema{
			"away": leg,
			"home": leg,
		},
	}
	if !nullable {
		s.Required = []string{"away", "home"}
	}
	return s
}

func teamSide() *Schema {
	return &Schema{
		Types:    []string{"object"},
		Required: []string{"id", "logo", "name", "winner"},
		Properties: map[string]*Schema{
			"id":     {Types: []string{"integer"}},
			"logo":   {Types: []string{"string"}},
			"name":   {Types: []string{"string"}},
			"winner": {Types: []string{"boolean"}},
		},
	}
}

func teamRef() *Schema {
	return &Schema{
		Types:    []string{"object"},
		Required: []string{"id", "logo", "name"},
		Properties: map[string]*Schema{
			"id":   {Types: []string{"integer"}},
			"logo": {Types: []string{"string"}},
			"name": {Types: []string{"string"}},
		},
	}
}
