package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Export
		ClippingsSync
	}

	HTTP struct {
		Port          int32
		Host          string
		MaxUploadSize int64 // bytes
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Export struct {
		Template  string
		Delimiter string
	}
	ClippingsSync struct {
		Enabled  bool
		Path     string // clippings file re-imported on every run
		Schedule string // Cron format: "0 * * * *" = hourly
	}
)

func (g Global) ShutdownTimeout() time.Duration {
	return time.Duration(g.ShutdownTimeoutInSeconds) * time.Second
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("max_upload_size_mb", 10)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("export_template", DefaultTemplate)
	v.SetDefault("export_delimiter", DefaultDelimiter)
	v.SetDefault("clippings_sync_enabled", false)
	v.SetDefault("clippings_sync_path", "")
	v.SetDefault("clippings_sync_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port:          v.GetInt32("PORT"),
			Host:          v.GetString("HOST"),
			MaxUploadSize: v.GetInt64("MAX_UPLOAD_SIZE_MB") * 1024 * 1024,
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Export: Export{
			Template:  v.GetString("EXPORT_TEMPLATE"),
			Delimiter: v.GetString("EXPORT_DELIMITER"),
		},
		ClippingsSync: ClippingsSync{
			Enabled:  v.GetBool("CLIPPINGS_SYNC_ENABLED"),
			Path:     v.GetString("CLIPPINGS_SYNC_PATH"),
			Schedule: v.GetString("CLIPPINGS_SYNC_SCHEDULE"),
		},
	}
}
