package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB       int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Mongo configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Store backends: "memory", "redis" (sessions) / "memory", "mongo" (ledger).
	SessionStore      string `mapstructure:"SESSION_STORE"`
	LedgerStore       string `mapstructure:"LEDGER_STORE"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Gemini / Google Cloud.
	GeminiAPIKey          string  `mapstructure:"GEMINI_API_KEY"`
	GoogleCredentialsFile string  `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	SpeechLanguageCode    string  `mapstructure:"SPEECH_LANGUAGE_CODE"`
	FCMCredentialsFile    string  `mapstructure:"FCM_CREDENTIALS_FILE"`
	FCMReminderTopic      string  `mapstructure:"FCM_REMINDER_TOPIC"`
	ConfidenceThreshold   float64 `mapstructure:"NL_CONFIDENCE_THRESHOLD"`

	// Calendar policy. Working days are weekday numbers (time.Weekday),
	// hours are minutes from midnight.
	WorkingDays          []int `mapstructure:"WORKING_DAYS"`
	WorkingHoursStart    int   `mapstructure:"WORKING_HOURS_START"`
	WorkingHoursEnd      int   `mapstructure:"WORKING_HOURS_END"`
	SlotDurationMinutes  int   `mapstructure:"SLOT_DURATION_MINUTES"`
	ToolCallTimeoutSecs  int   `mapstructure:"TOOL_CALL_TIMEOUT_SECS"`
	ReminderLeadMinutes  int   `mapstructure:"REMINDER_LEAD_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "advisorly")
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("LEDGER_STORE", "memory")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	viper.SetDefault("SPEECH_LANGUAGE_CODE", "en-IN")
	viper.SetDefault("FCM_CREDENTIALS_FILE", "")
	viper.SetDefault("FCM_REMINDER_TOPIC", "advisor-reminders")
	viper.SetDefault("NL_CONFIDENCE_THRESHOLD", 0.6)
	// Monday through Saturday; Sunday is the only non-working day.
	viper.SetDefault("WORKING_DAYS", []int{1, 2, 3, 4, 5, 6})
	viper.SetDefault("WORKING_HOURS_START", 600) // 10:00
	viper.SetDefault("WORKING_HOURS_END", 1080)  // 18:00
	viper.SetDefault("SLOT_DURATION_MINUTES", 30)
	viper.SetDefault("TOOL_CALL_TIMEOUT_SECS", 10)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
