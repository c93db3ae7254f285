package config

import (
	"fmt"
	"os"
	"strconv"
)

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Config struct {
	Port         int
	Database     Database
	DataDir      string
	LoadSchedule string
}

const defaultLoadSchedule = "0 10 * * *"

// Load assembles configuration from the environment. Database settings are
// required; the loader schedule and data directory are optional.
func Load() (*Config, error) {
	db, err := loadDatabase()
	if err != nil {
		return nil, err
	}

	port := 8080
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value %q: %w", v, err)
		}
		port = p
	}

	schedule := os.Getenv("LOAD_SCHEDULE")
	if schedule == "" {
		schedule = defaultLoadSchedule
	}

	return &Config{
		Port:         port,
		Database:     db,
		DataDir:      os.Getenv("DATA_DIR"),
		LoadSchedule: schedule,
	}, nil
}

func loadDatabase() (Database, error) {
	db := Database{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_DATABASE"),
	}

	required := map[string]string{
		"DB_HOST":     db.Host,
		"DB_PORT":     db.Port,
		"DB_USERNAME": db.User,
		"DB_PASSWORD": db.Password,
		"DB_DATABASE": db.Name,
	}
	for name, value := range required {
		if value == "" {
			return Database{}, fmt.Errorf("%s environment variable is required", name)
		}
	}

	return db, nil
}

// ScheduleEnabled reports whether the cron refresh should run at all.
func (c *Config) ScheduleEnabled() bool {
	return c.LoadSchedule != "off" && c.DataDir != ""
}
