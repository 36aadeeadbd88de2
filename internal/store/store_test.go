package store

import (
	"os"
	"path/filepath"
	"testing"

	"footbuddy/internal/models"
	"footbuddy/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger("error"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.FixtureRow{},
		&models.TeamRow{},
		&models.ScoreRow{},
		&models.EventRow{},
		&models.StatRow{},
		&models.CommentaryRow{},
		&models.DigestJob{},
	))

	return NewStore(db)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func testRecord(fixtureID int) *models.FixtureRecord {
	extra := 2
	return &models.FixtureRecord{
		FixtureID: fixtureID,
		About: models.About{
			Fixture: models.FixtureMeta{
				Date:      "2025-03-16T15:00:00+00:00",
				Referee:   "P. Kralovec",
				Timestamp: 1742137200,
				Timezone:  "UTC",
				Status:    models.FixtureStatus{Long: "Match Finished", Short: "FT", Elapsed: 90, Extra: 5},
				Venue:     models.Venue{ID: 660, Name: "Eden Arena", City: "Praha"},
			},
			League: models.League{ID: 345, Name: "Czech Liga", Season: 2024},
			Teams: models.TeamPair{
				Home: models.TeamSide{ID: 560, Name: "Slavia Praha", Winner: true},
				Away: models.TeamSide{ID: 569, Name: "Viktoria Plzen"},
			},
			Goals: models.Goals{Home: 2, Away: 1},
			Score: models.Score{
				Halftime: models.ScoreLeg{Home: intPtr(1), Away: intPtr(0)},
				Fulltime: models.ScoreLeg{Home: intPtr(2), Away: intPtr(1)},
			},
		},
		Events: []models.MatchEvent{
			{
				Detail: "Normal Goal",
				Player: models.Player{ID: 10, Name: "J. Kuchta"},
				Team:   models.EventTeam{ID: 560, Name: "Slavia Praha"},
				Time:   models.EventTime{Elapsed: 43},
				Type:   "Goal",
			},
			{
				Assist: models.Assist{ID: intPtr(11), Name: strPtr("L. Provod")},
				Detail: "Normal Goal",
				Player: models.Player{ID: 12, Name: "M. Chytil"},
				Team:   models.EventTeam{ID: 560, Name: "Slavia Praha"},
				Time:   models.EventTime{Elapsed: 88, Extra: &extra},
				Type:   "Goal",
			},
		},
		Stats: []models.TeamStatistics{
			{
				Team: models.EventTeam{ID: 560, Name: "Slavia Praha"},
				Statistics: []models.StatValue{
					{Type: "Shots on Goal", Value: float64(7)},
					{Type: "Ball Possession", Value: "61%"},
					{Type: "Offsides", Value: nil},
				},
			},
		},
		LLM: &models.Commentary{Text: "A hard-fought derby win.", Model: "gemini-2.0-flash"},
	}
}

func TestInsertFixture_FlattensAllTables(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.InsertFixture(testRecord(1035001)))

	var fixture models.FixtureRow
	require.NoError(t, st.db.Where("fixture_id = ?", 1035001).First(&fixture).Error)
	assert.Equal(t, "Czech Liga", fixture.League)
	assert.Equal(t, 2024, fixture.Season)

	var teams []models.TeamRow
	require.NoError(t, st.db.Where("fixture_id = ?", 1035001).Find(&teams).Error)
	assert.Len(t, teams, 2)

	var scores []models.ScoreRow
	require.NoError(t, st.db.Where("fixture_id = ?", 1035001).Find(&scores).Error)
	assert.Len(t, scores, 8, "four score legs times two sides")

	var events []models.EventRow
	require.NoError(t, st.db.Where("fixture_id = ?", 1035001).Order("id").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, 43, events[0].Minute)
	assert.Equal(t, 90, events[1].Minute, "effective minute folds stoppage time in")

	var stats []models.StatRow
	require.NoError(t, st.db.Where("fixture_id = ?", 1035001).Find(&stats).Error)
	require.Len(t, stats, 3)

	var commentary models.CommentaryRow
	require.NoError(t, st.db.Where("fixture_id = ?", 1035001).First(&commentary).Error)
	assert.Equal(t, "A hard-fought derby win.", commentary.Text)
}

func TestInsertFixture_Idempotent(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.InsertFixture(testRecord(42)))
	require.NoError(t, st.InsertFixture(testRecord(42)), "re-inserting the same fixture is a no-op")

	var count int64
	st.db.Model(&models.FixtureRow{}).Count(&count)
	assert.Equal(t, int64(1), count)

	st.db.Model(&models.EventRow{}).Count(&count)
	assert.Equal(t, int64(2), count, "child rows are not duplicated either")
}

func TestInsertFixture_RejectsMissingNarrative(t *testing.T) {
	st := newTestStore(t)

	rec := testRecord(7)
	rec.LLM = nil

	err := st.InsertFixture(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no narrative")

	var count int64
	st.db.Model(&models.FixtureRow{}).Count(&count)
	assert.Zero(t, count)
}

func TestFixtureIDsForDate(t *testing.T) {
	st := newTestStore(t)

	first := testRecord(100)
	second := testRecord(200)
	other := testRecord(300)
	other.About.Fixture.Date = "2025-03-17T12:00:00+00:00"

	require.NoError(t, st.InsertFixture(first))
	require.NoError(t, st.InsertFixture(second))
	require.NoError(t, st.InsertFixture(other))

	ids, err := st.FixtureIDsForDate("2025-03-16")
	require.NoError(t, err)
	assert.Equal(t, []int{100, 200}, ids, "ids come back in insertion order")
}

func TestMatchProjection(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.InsertFixture(testRecord(55)))

	projection, err := st.MatchProjection(55)
	require.NoError(t, err)

	assert.Equal(t, 55, projection.FixtureID)
	require.Len(t, projection.Events, 2)
	assert.Equal(t, "J. Kuchta", projection.Events[0].Player)
	require.Len(t, projection.Stats, 3)
	require.NotNil(t, projection.Stats[1].Value)
	assert.Equal(t, "61%", *projection.Stats[1].Value)
	assert.Nil(t, projection.Stats[2].Value, "null statistics stay null")
}

func TestEmailProjection(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.InsertFixture(testRecord(77)))

	projection, err := st.EmailProjection(77)
	require.NoError(t, err)

	assert.Equal(t, "Slavia Praha", projection.HomeTeam)
	assert.Equal(t, "Viktoria Plzen", projection.AwayTeam)
	require.NotNil(t, projection.HomeGoals)
	assert.Equal(t, 2, *projection.HomeGoals)
	require.NotNil(t, projection.AwayGoals)
	assert.Equal(t, 1, *projection.AwayGoals)
	assert.Equal(t, "A hard-fought derby win.", projection.Narrative)
}

func TestJobLifecycle(t *testing.T) {
	st := newTestStore(t)

	job := st.CreateJob("2025-03-16")
	require.NotZero(t, job.ID)
	assert.Equal(t, "running", job.Status)

	job.FixturesSeen = 3
	job.TriggersFound = 1
	st.CompleteJob(job)

	var stored models.DigestJob
	require.NoError(t, st.db.First(&stored, job.ID).Error)
	assert.Equal(t, "completed", stored.Status)
	assert.Equal(t, 3, stored.FixturesSeen)
	assert.NotNil(t, stored.CompletedAt)
}
