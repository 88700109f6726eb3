package config

import (
	"time"

	"main/utils"
)

type ServerConfig struct {
	Port              string
	DBPath            string
	NoteMaxLength     int
	MaxBodyBytes      int64
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:              utils.GetEnvAsString("PORT", "3000"),
		DBPath:            utils.GetEnvAsString("NOTES_DB_PATH", "database.db"),
		NoteMaxLength:     utils.GetEnvAsInt("NOTE_MAX_LENGTH", 2000),
		MaxBodyBytes:      utils.GetEnvAsInt64("MAX_BODY_BYTES", 16*1024),
		RateLimitRequests: utils.GetEnvAsInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   utils.GetEnvAsDuration("RATE_LIMIT_WINDOW", 60*time.Second),
	}
}
