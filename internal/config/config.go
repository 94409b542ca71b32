package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"buildlog/pkg/schema"
)

type Config struct {
	App    AppConfig
	Limits LimitsConfig
	Store  StoreConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
}

// LimitsConfig holds the size-advisory thresholds in bytes, one per
// capture format.
type LimitsConfig struct {
	SlimWarnBytes int
	FullWarnBytes int
}

type StoreConfig struct {
	Root string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "buildlog.log"),
		},
		Limits: LimitsConfig{
			SlimWarnBytes: getEnvAsInt("BUILDLOG_SLIM_WARN_BYTES", schema.DefaultSlimWarnBytes),
			FullWarnBytes: getEnvAsInt("BUILDLOG_FULL_WARN_BYTES", schema.DefaultFullWarnBytes),
		},
		Store: StoreConfig{
			Root: getEnv("BUILDLOG_DIR", "."),
		},
	}
}

// SchemaLimits adapts the configured thresholds to the validator.
func (c *Config) SchemaLimits() schema.Limits {
	return schema.Limits{
		SlimWarnBytes: c.Limits.SlimWarnBytes,
		FullWarnBytes: c.Limits.FullWarnBytes,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
