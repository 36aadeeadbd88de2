package store

import (
	"errors"
	"fmt"
	"strconv"

	"footbuddy/internal/models"
	"footbuddy/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store persists enriched fixture records as flattened relational rows
// and serves the read-side projections the pipeline needs.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// MatchProjection is the read-side subset the trigger classifier judges:
// the event sequence and the team statistics.
type MatchProjection struct {
	FixtureID int               `json:"fixture"`
	Events    []models.EventRow `json:"events"`
	Stats     []models.StatRow  `json:"stats"`
}

// EmailProjection is the read-side subset the email formatter consumes.
type EmailProjection struct {
	FixtureID int    `json:"fixture_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeGoals *int   `json:"home_goals"`
	AwayGoals *int   `json:"away_goals"`
	Narrative string `json:"narrative"`
}

// InsertFixture flattens one enriched record into its per-table rows.
// Inserting a fixture id that is already stored is a no-op, not an error.
// A record without a narrative must never be persisted.
func (s *Store) InsertFixture(rec *models.FixtureRecord) error {
	if rec.LLM == nil {
		return fmt.Errorf("fixture %d has no narrative attached", rec.FixtureID)
	}

	var existing models.FixtureRow
	err := s.db.Where("fixture_id = ?", rec.FixtureID).First(&existing).Error
	if err == nil {
		logger.Debug("Fixture already stored, skipping", zap.Int("fixture_id", rec.FixtureID))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up fixture %d: %w", rec.FixtureID, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fixtureRow(rec)).Error; err != nil {
			return fmt.Errorf("failed to insert fixture %d: %w", rec.FixtureID, err)
		}
		if err := tx.Create(teamRows(rec)).Error; err != nil {
			return fmt.Errorf("failed to insert teams for fixture %d: %w", rec.FixtureID, err)
		}
		if err := tx.Create(scoreRows(rec)).Error; err != nil {
			return fmt.Errorf("failed to insert scores for fixture %d: %w", rec.FixtureID, err)
		}
		if rows := eventRows(rec); len(rows) > 0 {
			if err := tx.Create(rows).Error; err != nil {
				return fmt.Errorf("failed to insert events for fixture %d: %w", rec.FixtureID, err)
			}
		}
		if rows := statRows(rec); len(rows) > 0 {
			if err := tx.Create(rows).Error; err != nil {
				return fmt.Errorf("failed to insert stats for fixture %d: %w", rec.FixtureID, err)
			}
		}
		if err := tx.Create(commentaryRow(rec)).Error; err != nil {
			return fmt.Errorf("failed to insert commentary for fixture %d: %w", rec.FixtureID, err)
		}
		return nil
	})
}

// FixtureIDsForDate returns the stored fixture ids whose kickoff falls on
// the given date, in insertion order.
func (s *Store) FixtureIDsForDate(date string) ([]int, error) {
	var ids []int
	err := s.db.Model(&models.FixtureRow{}).
		Where("date LIKE ?", date+"%").
		Order("id").
		Pluck("fixture_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture ids for %s: %w", date, err)
	}
	return ids, nil
}

// MatchProjection loads the event and statistic rows for one fixture.
func (s *Store) MatchProjection(fixtureID int) (MatchProjection, error) {
	projection := MatchProjection{FixtureID: fixtureID}

	if err := s.db.Where("fixture_id = ?", fixtureID).Order("id").Find(&projection.Events).Error; err != nil {
		return projection, fmt.Errorf("failed to fetch events for fixture %d: %w", fixtureID, err)
	}
	if err := s.db.Where("fixture_id = ?", fixtureID).Order("id").Find(&projection.Stats).Error; err != nil {
		return projection, fmt.Errorf("failed to fetch stats for fixture %d: %w", fixtureID, err)
	}

	return projection, nil
}

// EmailProjection loads the team/score summary and the narrative for one
// fixture.
func (s *Store) EmailProjection(fixtureID int) (EmailProjection, error) {
	projection := EmailProjection{FixtureID: fixtureID}

	var teams []models.TeamRow
	if err := s.db.Where("fixture_id = ?", fixtureID).Find(&teams).Error; err != nil {
		return projection, fmt.Errorf("failed to fetch teams for fixture %d: %w", fixtureID, err)
	}
	for _, team := range teams {
		switch team.TeamType {
		case "home":
			projection.HomeTeam = team.Name
		case "away":
			projection.AwayTeam = team.Name
		}
	}

	var scores []models.ScoreRow
	if err := s.db.Where("fixture_id = ? AND score_type = ?", fixtureID, "fulltime").Find(&scores).Error; err != nil {
		return projection, fmt.Errorf("failed to fetch scores for fixture %d: %w", fixtureID, err)
	}
	for _, score := range scores {
		switch score.TeamType {
		case "home":
			projection.HomeGoals = score.Value
		case "away":
			projection.AwayGoals = score.Value
		}
	}

	var commentary models.CommentaryRow
	if err := s.db.Where("fixture_id = ?", fixtureID).First(&commentary).Error; err != nil {
		return projection, fmt.Errorf("failed to fetch commentary for fixture %d: %w", fixtureID, err)
	}
	projection.Narrative = commentary.Text

	return projection, nil
}

func fixtureRow(rec *models.FixtureRecord) *models.FixtureRow {
	meta := rec.About.Fixture
	return &models.FixtureRow{
		FixtureID:   rec.FixtureID,
		Date:        meta.Date,
		Referee:     meta.Referee,
		Timestamp:   meta.Timestamp,
		Timezone:    meta.Timezone,
		ElapsedMins: meta.Status.Elapsed,
		ExtraMins:   meta.Status.Extra,
		Status:      meta.Status.Long,
		League:      rec.About.League.Name,
		Season:      rec.About.League.Season,
	}
}

func teamRows(rec *models.FixtureRecord) []models.TeamRow {
	home := rec.About.Teams.Home
	away := rec.About.Teams.Away
	return []models.TeamRow{
		{FixtureID: rec.FixtureID, TeamType: "home", TeamID: home.ID, Name: home.Name, Logo: home.Logo, Winner: home.Winner},
		{FixtureID: rec.FixtureID, TeamType: "away", TeamID: away.ID, Name: away.Name, Logo: away.Logo, Winner: away.Winner},
	}
}

func scoreRows(rec *models.FixtureRecord) []models.ScoreRow {
	legs := []struct {
		name string
		leg  models.ScoreLeg
	}{
		{"halftime", rec.About.Score.Halftime},
		{"fulltime", rec.About.Score.Fulltime},
		{"extratime", rec.About.Score.Extratime},
		{"penalty", rec.About.Score.Penalty},
	}

	rows := make([]models.ScoreRow, 0, len(legs)*2)
	for _, entry := range legs {
		rows = append(rows,
			models.ScoreRow{FixtureID: rec.FixtureID, ScoreType: entry.name, TeamType: "home", Value: entry.leg.Home},
			models.ScoreRow{FixtureID: rec.FixtureID, ScoreType: entry.name, TeamType: "away", Value: entry.leg.Away},
		)
	}
	return rows
}

func eventRows(rec *models.FixtureRecord) []models.EventRow {
	rows := make([]models.EventRow, 0, len(rec.Events))
	for _, event := range rec.Events {
		rows = append(rows, models.EventRow{
			FixtureID: rec.FixtureID,
			Assist:    event.Assist.Name,
			Comments:  event.Comments,
			Detail:    event.Detail,
			Player:    event.Player.Name,
			TeamID:    event.Team.ID,
			Minute:    event.Time.EffectiveMinute(),
			Type:      event.Type,
		})
	}
	return rows
}

func statRows(rec *models.FixtureRecord) []models.StatRow {
	var rows []models.StatRow
	for _, teamStats := range rec.Stats {
		for _, stat := range teamStats.Statistics {
			rows = append(rows, models.StatRow{
				FixtureID: rec.FixtureID,
				TeamID:    teamStats.Team.ID,
				Type:      stat.Type,
				Value:     statText(stat.Value),
			})
		}
	}
	return rows
}

// statText normalizes the source's mixed value representation (integer,
// percentage string, or null) into nullable text.
func statText(value interface{}) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return &v
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(v)
		return &s
	default:
		s := fmt.Sprintf("%v", v)
		return &s
	}
}

func commentaryRow(rec *models.FixtureRecord) *models.CommentaryRow {
	return &models.CommentaryRow{
		FixtureID: rec.FixtureID,
		Text:      rec.LLM.Text,
		Model:     rec.LLM.Model,
	}
}
