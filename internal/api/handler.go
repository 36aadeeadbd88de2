package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"footbuddy/internal/config"
	"footbuddy/internal/models"
	"footbuddy/internal/scheduler"
	"footbuddy/pkg/logger"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const Version = "1.0.0"

type Handler struct {
	config    *config.Config
	scheduler *scheduler.Scheduler
}

func NewHandler(cfg *config.Config, sched *scheduler.Scheduler) *Handler {
	return &Handler{
		config:    cfg,
		scheduler: sched,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
	}

	respondJSON(w, http.StatusOK, response)
}

// GetStatus returns the current status of the digest service
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	db := config.GetDB()

	var totalFixtures int64
	db.Model(&models.FixtureRow{}).Count(&totalFixtures)

	var totalTriggers int64
	db.Model(&models.DigestJob{}).Select("COALESCE(SUM(triggers_found), 0)").Scan(&totalTriggers)

	var lastJob models.DigestJob
	db.Where("status = ?", "completed").Order("completed_at DESC").First(&lastJob)

	var lastRun *time.Time
	if lastJob.ID != 0 {
		lastRun = lastJob.CompletedAt
	}

	response := models.StatusResponse{
		LastRun:         lastRun,
		NextRun:         h.scheduler.GetNextRun(),
		IsRunning:       h.scheduler.IsRunning(),
		ScheduleEnabled: h.config.Scheduler.Enabled,
		CronExpression:  h.config.Scheduler.CronExpression,
		TotalFixtures:   totalFixtures,
		TotalTriggers:   totalTriggers,
	}

	respondJSON(w, http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Status retrieved successfully",
		Data:    response,
	})
}

// RunDigest triggers a manual digest run for the given date
// (defaults to yesterday)
func (h *Handler) RunDigest(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondJSON(w, http.StatusBadRequest, models.APIResponse{
			Success: false,
			Error:   "date must be in YYYY-MM-DD format",
		})
		return
	}

	if h.scheduler.IsRunning() {
		respondJSON(w, http.StatusConflict, models.APIResponse{
			Success: false,
			Error:   "A digest run is already in progress",
		})
		return
	}

	logger.Info("Manual digest run triggered", zap.String("date", date))

	go h.scheduler.RunDigest(date)

	respondJSON(w, http.StatusAccepted, models.APIResponse{
		Success: true,
		Message: "Digest run started",
		Data:    map[string]interface{}{"date": date},
	})
}

// GetFixtures returns stored fixtures, optionally filtered by date
func (h *Handler) GetFixtures(w http.ResponseWriter, r *http.Request) {
	db := config.GetDB()

	query := db.Model(&models.FixtureRow{}).Order("id")
	if date := r.URL.Query().Get("date"); date != "" {
		query = query.Where("date LIKE ?", date+"%")
	}

	var fixtures []models.FixtureRow
	if err := query.Find(&fixtures).Error; err != nil {
		respondJSON(w, http.StatusInternalServerError, models.APIResponse{
			Success: false,
			Error:   "Failed to fetch fixtures",
		})
		return
	}

	respondJSON(w, http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Fixtures retrieved successfully",
		Data:    fixtures,
	})
}

// GetFixtureByID returns one fixture with its events, stats and narrative
func (h *Handler) GetFixtureByID(w http.ResponseWriter, r *http.Request) {
	fixtureID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, models.APIResponse{
			Success: false,
			Error:   "Invalid fixture id",
		})
		return
	}

	db := config.GetDB()

	var fixture models.FixtureRow
	if err := db.Where("fixture_id = ?", fixtureID).First(&fixture).Error; err != nil {
		respondJSON(w, http.StatusNotFound, models.APIResponse{
			Success: false,
			Error:   "Fixture not found",
		})
		return
	}

	var teams []models.TeamRow
	db.Where("fixture_id = ?", fixtureID).Find(&teams)

	var scores []models.ScoreRow
	db.Where("fixture_id = ?", fixtureID).Find(&scores)

	var events []models.EventRow
	db.Where("fixture_id = ?", fixtureID).Order("id").Find(&events)

	var stats []models.StatRow
	db.Where("fixture_id = ?", fixtureID).Order("id").Find(&stats)

	var commentary models.CommentaryRow
	db.Where("fixture_id = ?", fixtureID).First(&commentary)

	respondJSON(w, http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Fixture retrieved successfully",
		Data: map[string]interface{}{
			"fixture":    fixture,
			"teams":      teams,
			"scores":     scores,
			"events":     events,
			"stats":      stats,
			"commentary": commentary,
		},
	})
}

// GetJobs returns the digest job history
func (h *Handler) GetJobs(w http.ResponseWriter, r *http.Request) {
	db := config.GetDB()

	var jobs []models.DigestJob
	if err := db.Order("started_at DESC").Limit(50).Find(&jobs).Error; err != nil {
		respondJSON(w, http.StatusInternalServerError, models.APIResponse{
			Success: false,
			Error:   "Failed to fetch jobs",
		})
		return
	}

	respondJSON(w, http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Jobs retrieved successfully",
		Data:    jobs,
	})
}

// GetJobByID returns one digest job
func (h *Handler) GetJobByID(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, models.APIResponse{
			Success: false,
			Error:   "Invalid job id",
		})
		return
	}

	db := config.GetDB()

	var job models.DigestJob
	if err := db.First(&job, jobID).Error; err != nil {
		respondJSON(w, http.StatusNotFound, models.APIResponse{
			Success: false,
			Error:   "Job not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Job retrieved successfully",
		Data:    job,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
