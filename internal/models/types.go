package models

import "time"

// Storage rows. Each wire-format fixture is flattened into one row per
// table by an explicit per-table writer in the store package.

// FixtureRow holds the per-fixture metadata columns
type FixtureRow struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	FixtureID   int       `json:"fixture_id" gorm:"uniqueIndex;not null"`
	Date        string    `json:"date" gorm:"index;not null"`
	Referee     string    `json:"referee"`
	Timestamp   int64     `json:"timestamp"`
	Timezone    string    `json:"timezone"`
	ElapsedMins int       `json:"elapsed_mins"`
	ExtraMins   int       `json:"extra_mins"`
	Status      string    `json:"status"`
	League      string    `json:"league"`
	Season      int       `json:"season"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TeamRow stores one side of a fixture ("home" or "away")
type TeamRow struct {
	ID        int    `json:"id" gorm:"primaryKey"`
	FixtureID int    `json:"fixture_id" gorm:"index;not null"`
	TeamType  string `json:"team_type" gorm:"not null"` // "home" or "away"
	TeamID    int    `json:"team_id"`
	Name      string `json:"name"`
	Logo      string `json:"logo"`
	Winner    bool   `json:"winner"`
}

// ScoreRow stores one score leg (halftime/fulltime/extratime/penalty × side).
// Value is nullable: extratime and penalty legs are absent for matches
// decided in regular time.
type ScoreRow struct {
	ID        int    `json:"id" gorm:"primaryKey"`
	FixtureID int    `json:"fixture_id" gorm:"index;not null"`
	ScoreType string `json:"score_type" gorm:"not null"`
	TeamType  string `json:"team_type" gorm:"not null"`
	Value     *int   `json:"value"`
}

// EventRow stores one match event. Rows are written in source order and
// read back ordered by primary key, which preserves the chronological
// order the source gave.
type EventRow struct {
	ID        int     `json:"id" gorm:"primaryKey"`
	FixtureID int     `json:"fixture_id" gorm:"index;not null"`
	Assist    *string `json:"assist"`
	Comments  *string `json:"comments"`
	Detail    string  `json:"detail"`
	Player    string  `json:"player"`
	TeamID    int     `json:"team_id"`
	Minute    int     `json:"minute"`
	Type      string  `json:"type"`
}

// StatRow stores one (type, value) statistic for one team. Value keeps the
// source's mixed representation (integer, percentage string, or null) as text.
type StatRow struct {
	ID        int     `json:"id" gorm:"primaryKey"`
	FixtureID int     `json:"fixture_id" gorm:"index;not null"`
	TeamID    int     `json:"team_id"`
	Type      string  `json:"type"`
	Value     *string `json:"value"`
}

// CommentaryRow stores the LLM narrative for a fixture
type CommentaryRow struct {
	ID        int    `json:"id" gorm:"primaryKey"`
	FixtureID int    `json:"fixture_id" gorm:"uniqueIndex;not null"`
	Text      string `json:"text" gorm:"type:text"`
	Model     string `json:"model"`
}

// DigestJob represents one digest pipeline execution
type DigestJob struct {
	ID            int        `json:"id" gorm:"primaryKey"`
	Date          string     `json:"date"`
	Status        string     `json:"status"` // "running", "completed", "failed"
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	FixturesSeen  int        `json:"fixtures_seen"`
	TriggersFound int        `json:"triggers_found"`
	EmailSent     bool       `json:"email_sent"`
	ErrorMessage  string     `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// API Response structures
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type StatusResponse struct {
	LastRun         *time.Time `json:"last_run,omitempty"`
	NextRun         *time.Time `json:"next_run,omitempty"`
	IsRunning       bool       `json:"is_running"`
	ScheduleEnabled bool       `json:"schedule_enabled"`
	CronExpression  string     `json:"cron_expression"`
	TotalFixtures   int64      `json:"total_fixtures"`
	TotalTriggers   int64      `json:"total_triggers"`
}
