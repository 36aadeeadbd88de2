package models

// Wire-format structures mirroring the API-Football v3 response shape.
// A FixtureRecord is assembled from three endpoint calls (fixtures,
// fixtures/events, fixtures/statistics) joined by fixture id.

type FixtureRecord struct {
	FixtureID int              `json:"fixture_id"`
	About     About            `json:"about"`
	Events    []MatchEvent     `json:"events"`
	Stats     []TeamStatistics `json:"stats"`
	LLM       *Commentary      `json:"llm,omitempty"`

	// RawJSON is the undecoded value the source returned, kept so schema
	// validation judges the source payload rather than the typed decode.
	RawJSON map[string]interface{} `json:"-"`
}

type About struct {
	Fixture FixtureMeta `json:"fixture"`
	League  League      `json:"league"`
	Teams   TeamPair    `json:"teams"`
	Goals   Goals       `json:"goals"`
	Score   Score       `json:"score"`
}

type FixtureMeta struct {
	Date      string        `json:"date"`
	Referee   string        `json:"referee"`
	Timestamp int64         `json:"timestamp"`
	Timezone  string        `json:"timezone"`
	Periods   Periods       `json:"periods"`
	Status    FixtureStatus `json:"status"`
	Venue     Venue         `json:"venue"`
}

type Periods struct {
	First  int64 `json:"first"`
	Second int64 `json:"second"`
}

type FixtureStatus struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed int    `json:"elapsed"`
	Extra   int    `json:"extra"`
}

type Venue struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type League struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	Flag      string `json:"flag"`
	Logo      string `json:"logo"`
	Round     string `json:"round"`
	Season    int    `json:"season"`
	Standings bool   `json:"standings"`
}

type TeamPair struct {
	Home TeamSide `json:"home"`
	Away TeamSide `json:"away"`
}

type TeamSide struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner bool   `json:"winner"`
}

type Goals struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Score breaks the result down by period. Extratime and penalty legs are
// null for matches decided in regular time.
type Score struct {
	Halftime  ScoreLeg `json:"halftime"`
	Fulltime  ScoreLeg `json:"fulltime"`
	Extratime ScoreLeg `json:"extratime"`
	Penalty   ScoreLeg `json:"penalty"`
}

type ScoreLeg struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type MatchEvent struct {
	Assist   Assist    `json:"assist"`
	Comments *string   `json:"comments"`
	Detail   string    `json:"detail"`
	Player   Player    `json:"player"`
	Team     EventTeam `json:"team"`
	Time     EventTime `json:"time"`
	Type     string    `json:"type"`
}

type Assist struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type EventTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type EventTime struct {
	Elapsed int  `json:"elapsed"`
	Extra   *int `json:"extra"`
}

// EffectiveMinute is the event's match minute including stoppage time.
func (t EventTime) EffectiveMinute() int {
	if t.Extra != nil {
		return t.Elapsed + *t.Extra
	}
	return t.Elapsed
}

type TeamStatistics struct {
	Team       EventTeam   `json:"team"`
	Statistics []StatValue `json:"statistics"`
}

// StatValue holds one (type, value) pair. The source sends values as
// integers, percentage strings, or null, so Value stays untyped.
type StatValue struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// Commentary is the LLM-generated match narrative attached during
// enrichment, together with the model that produced it.
type Commentary struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// TriggerJudgment is the structured verdict on whether a match contains
// an event worth notifying about.
type TriggerJudgment struct {
	Answer    string  `json:"answer"`
	Reason    *string `json:"reason"`
	FixtureID int     `json:"fixture_id,omitempty"`
}
