package rapidapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"footbuddy/internal/config"
	"footbuddy/internal/models"
	"footbuddy/pkg/logger"

	"go.uber.org/zap"
)

// Client retrieves fixture data from the API-Football service on
// RapidAPI. One GET per endpoint, no pagination, no retries.
type Client struct {
	baseURL    string
	apiKey     string
	host       string
	league     string
	season     int
	country    string
	httpClient *http.Client

	// leagueID is resolved once per process and cached.
	leagueID int
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.RapidAPI.BaseURL,
		apiKey:  cfg.RapidAPI.APIKey,
		host:    cfg.RapidAPI.Host,
		league:  cfg.Pipeline.League,
		season:  cfg.Pipeline.Season,
		country: cfg.Pipeline.CountryCode,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope is the wrapper every API-Football endpoint responds with.
type envelope struct {
	Results  int               `json:"results"`
	Response []json.RawMessage `json:"response"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("request to %s returned status %d: %s", path, res.StatusCode, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	return &env, nil
}

// LeagueID resolves the configured league name and country code to the
// API's numeric league id. The result is cached for the client's lifetime.
func (c *Client) LeagueID(ctx context.Context) (int, error) {
	if c.leagueID != 0 {
		return c.leagueID, nil
	}

	params := url.Values{}
	params.Set("code", c.country)
	params.Set("current", "true")

	env, err := c.get(ctx, "/leagues", params)
	if err != nil {
		return 0, err
	}

	for _, raw := range env.Response {
		var item struct {
			League struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"league"`
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if item.League.Name == c.league {
			c.leagueID = item.League.ID
			logger.Info("Resolved league ID",
				zap.String("league", c.league),
				zap.Int("league_id", c.leagueID))
			return c.leagueID, nil
		}
	}

	return 0, fmt.Errorf("league %q not found for country %q", c.league, c.country)
}

// FetchDay returns one assembled record per fixture played on the given
// date, events and statistics already joined in. A day without fixtures
// returns an empty slice, not an error.
func (c *Client) FetchDay(ctx context.Context, date string) ([]models.FixtureRecord, error) {
	leagueID, err := c.LeagueID(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("league", strconv.Itoa(leagueID))
	params.Set("season", strconv.Itoa(c.season))
	params.Set("date", date)

	env, err := c.get(ctx, "/fixtures", params)
	if err != nil {
		return nil, err
	}

	if len(env.Response) == 0 {
		logger.Info("No fixtures found", zap.String("date", date))
		return []models.FixtureRecord{}, nil
	}

	records := make([]models.FixtureRecord, 0, len(env.Response))
	for _, raw := range env.Response {
		record, err := c.assembleRecord(ctx, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	logger.Info("Fetched fixtures", zap.String("date", date), zap.Int("count", len(records)))
	return records, nil
}

// assembleRecord joins the fixture listing entry with its events and
// statistics into one record, keeping both the typed form and the raw
// JSON value the source returned.
func (c *Client) assembleRecord(ctx context.Context, rawFixture json.RawMessage) (models.FixtureRecord, error) {
	var record models.FixtureRecord

	var ids struct {
		Fixture struct {
			ID int `json:"id"`
		} `json:"fixture"`
	}
	if err := json.Unmarshal(rawFixture, &ids); err != nil {
		return record, fmt.Errorf("failed to decode fixture listing entry: %w", err)
	}
	fixtureID := ids.Fixture.ID

	var about models.About
	if err := json.Unmarshal(rawFixture, &about); err != nil {
		return record, fmt.Errorf("failed to decode fixture %d: %w", fixtureID, err)
	}

	var rawAbout map[string]interface{}
	if err := json.Unmarshal(rawFixture, &rawAbout); err != nil {
		return record, fmt.Errorf("failed to decode fixture %d: %w", fixtureID, err)
	}
	// The id moves to the record's top level; the listing entry minus the
	// id becomes the "about" block.
	if meta, ok := rawAbout["fixture"].(map[string]interface{}); ok {
		delete(meta, "id")
	}

	rawEvents, events, err := c.fixtureEvents(ctx, fixtureID)
	if err != nil {
		return record, err
	}

	rawStats, stats, err := c.fixtureStatistics(ctx, fixtureID)
	if err != nil {
		return record, err
	}

	record = models.FixtureRecord{
		FixtureID: fixtureID,
		About:     about,
		Events:    events,
		Stats:     stats,
		RawJSON: map[string]interface{}{
			"fixture_id": fixtureID,
			"about":      rawAbout,
			"events":     rawEvents,
			"stats":      rawStats,
		},
	}
	return record, nil
}

func (c *Client) fixtureEvents(ctx context.Context, fixtureID int) ([]interface{}, []models.MatchEvent, error) {
	params := url.Values{}
	params.Set("fixture", strconv.Itoa(fixtureID))

	env, err := c.get(ctx, "/fixtures/events", params)
	if err != nil {
		return nil, nil, err
	}

	raw := make([]interface{}, 0, len(env.Response))
	events := make([]models.MatchEvent, 0, len(env.Response))
	for _, item := range env.Response {
		var generic interface{}
		if err := json.Unmarshal(item, &generic); err != nil {
			return nil, nil, fmt.Errorf("failed to decode event for fixture %d: %w", fixtureID, err)
		}
		raw = append(raw, generic)

		var event models.MatchEvent
		if err := json.Unmarshal(item, &event); err != nil {
			return nil, nil, fmt.Errorf("failed to decode event for fixture %d: %w", fixtureID, err)
		}
		events = append(events, event)
	}

	logger.Debug("Retrieved events", zap.Int("fixture_id", fixtureID), zap.Int("count", len(events)))
	return raw, events, nil
}

func (c *Client) fixtureStatistics(ctx context.Context, fixtureID int) ([]interface{}, []models.TeamStatistics, error) {
	params := url.Values{}
	params.Set("fixture", strconv.Itoa(fixtureID))

	env, err := c.get(ctx, "/fixtures/statistics", params)
	if err != nil {
		return nil, nil, err
	}

	raw := make([]interface{}, 0, len(env.Response))
	stats := make([]models.TeamStatistics, 0, len(env.Response))
	for _, item := range env.Response {
		var generic interface{}
		if err := json.Unmarshal(item, &generic); err != nil {
			return nil, nil, fmt.Errorf("failed to decode statistics for fixture %d: %w", fixtureID, err)
		}
		raw = append(raw, generic)

		var teamStats models.TeamStatistics
		if err := json.Unmarshal(item, &teamStats); err != nil {
			return nil, nil, fmt.Errorf("failed to decode statistics for fixture %d: %w", fixtureID, err)
		}
		stats = append(stats, teamStats)
	}

	logger.Debug("Retrieved statistics", zap.Int("fixture_id", fixtureID), zap.Int("count", len(stats)))
	return raw, stats, nil
}
