package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	RapidAPI  RapidAPIConfig
	LLM       LLMConfig
	Pipeline  PipelineConfig
	Scheduler SchedulerConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

// RapidAPIConfig holds credentials and endpoint for the API-Football service.
type RapidAPIConfig struct {
	BaseURL string
	APIKey  string
	Host    string
}

// ModelConfig selects a model and its sampling temperature for one
// pipeline stage.
type ModelConfig struct {
	Name        string
	Temperature float32
}

type LLMConfig struct {
	APIKey      string
	Description ModelConfig
	Trigger     ModelConfig
	Repair      ModelConfig
	Email       ModelConfig
}

// PipelineConfig selects which league and team the daily digest covers.
type PipelineConfig struct {
	Team        string
	League      string
	Season      int
	CountryCode string
}

type SchedulerConfig struct {
	CronExpression string
	Enabled        bool
}

type DatabaseConfig struct {
	Path string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
	Receiver string
	Subject  string
}

type LoggingConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Attempt to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("Warning: .env file not found, using environment variables: %v\n", err)
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("RAPIDAPI_BASE_URL", "https://api-football-v1.p.rapidapi.com/v3")
	viper.SetDefault("RAPIDAPI_HOST", "api-football-v1.p.rapidapi.com")
	viper.SetDefault("LLM_DESCRIPTION_MODEL", "gemini-2.0-flash")
	viper.SetDefault("LLM_DESCRIPTION_TEMPERATURE", 0.7)
	viper.SetDefault("LLM_TRIGGER_MODEL", "gemini-2.0-flash")
	viper.SetDefault("LLM_TRIGGER_TEMPERATURE", 0.0)
	viper.SetDefault("LLM_REPAIR_MODEL", "gemini-2.0-flash")
	viper.SetDefault("LLM_REPAIR_TEMPERATURE", 0.0)
	viper.SetDefault("LLM_EMAIL_MODEL", "gemini-2.0-flash")
	viper.SetDefault("LLM_EMAIL_TEMPERATURE", 0.4)
	viper.SetDefault("TEAM", "Slavia Praha")
	viper.SetDefault("LEAGUE", "Czech Liga")
	viper.SetDefault("SEASON", 2024)
	viper.SetDefault("COUNTRY_CODE", "CZ")
	viper.SetDefault("SCHEDULE_CRON", "0 7 * * *") // Every day at 7 AM
	viper.SetDefault("SCHEDULE_ENABLED", true)
	viper.SetDefault("DB_PATH", "./storage/matches.db")
	viper.SetDefault("SMTP_PORT", 465)
	viper.SetDefault("EMAIL_SUBJECT", "Your football match digest")
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("PORT"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		RapidAPI: RapidAPIConfig{
			BaseURL: viper.GetString("RAPIDAPI_BASE_URL"),
			APIKey:  viper.GetString("RAPIDAPI_KEY"),
			Host:    viper.GetString("RAPIDAPI_HOST"),
		},
		LLM: LLMConfig{
			APIKey: viper.GetString("GEMINI_API_KEY"),
			Description: ModelConfig{
				Name:        viper.GetString("LLM_DESCRIPTION_MODEL"),
				Temperature: float32(viper.GetFloat64("LLM_DESCRIPTION_TEMPERATURE")),
			},
			Trigger: ModelConfig{
				Name:        viper.GetString("LLM_TRIGGER_MODEL"),
				Temperature: float32(viper.GetFloat64("LLM_TRIGGER_TEMPERATURE")),
			},
			Repair: ModelConfig{
				Name:        viper.GetString("LLM_REPAIR_MODEL"),
				Temperature: float32(viper.GetFloat64("LLM_REPAIR_TEMPERATURE")),
			},
			Email: ModelConfig{
				Name:        viper.GetString("LLM_EMAIL_MODEL"),
				Temperature: float32(viper.GetFloat64("LLM_EMAIL_TEMPERATURE")),
			},
		},
		Pipeline: PipelineConfig{
			Team:        viper.GetString("TEAM"),
			League:      viper.GetString("LEAGUE"),
			Season:      viper.GetInt("SEASON"),
			CountryCode: viper.GetString("COUNTRY_CODE"),
		},
		Scheduler: SchedulerConfig{
			CronExpression: viper.GetString("SCHEDULE_CRON"),
			Enabled:        viper.GetBool("SCHEDULE_ENABLED"),
		},
		Database: DatabaseConfig{
			Path: viper.GetString("DB_PATH"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Sender:   viper.GetString("EMAIL_SENDER_ADDRESS"),
			Password: viper.GetString("EMAIL_SENDER_PASSWORD"),
			Receiver: viper.GetString("EMAIL_RECEIVER_ADDRESS"),
			Subject:  viper.GetString("EMAIL_SUBJECT"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return config, nil
}
