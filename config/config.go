package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Configuration is read from the environment once at startup. A .env
// file in the working directory is honored when present.
type Configuration struct {
	DatabaseDSN string `envconfig:"EXPORTER_DATABASE_DSN"`
	LogLevel    string `envconfig:"EXPORTER_LOG_LEVEL" default:"info"`
	Migrate     bool   `envconfig:"EXPORTER_MIGRATE"`
}

var Config Configuration

func init() {
	_ = godotenv.Load()
	if err := envconfig.Process("", &Config); err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}
	if level, err := log.ParseLevel(Config.LogLevel); err == nil {
		log.SetLevel(level)
	}
}
