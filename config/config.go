package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisAgendaCacheDB   int    `mapstructure:"REDIS_AGENDA_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Scheduling grid policy. The window and step define the slot labels;
	// the ceilings bound the duration resolver when it has no collision data
	// (cross-day candidate) or no later booking in the room (open end of day).
	SchedWindowStart        string `mapstructure:"SCHED_WINDOW_START"`
	SchedWindowEnd          string `mapstructure:"SCHED_WINDOW_END"`
	SchedStepMinutes        int    `mapstructure:"SCHED_STEP_MINUTES"`
	SchedRooms              []int  `mapstructure:"SCHED_ROOMS"`
	SchedCrossDayCeilingMin int    `mapstructure:"SCHED_CROSS_DAY_CEILING_MIN"`
	SchedOpenEndCeilingMin  int    `mapstructure:"SCHED_OPEN_END_CEILING_MIN"`

	// Reminder lead time before the appointment start, in minutes.
	ReminderLeadMinutes int `mapstructure:"REMINDER_LEAD_MINUTES"`

	// Path to the Firebase service account key for FCM pushes.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
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
	viper.SetDefault("REDIS_AGENDA_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "dentaldesk")
	viper.SetDefault("SCHED_WINDOW_START", "08:00")
	viper.SetDefault("SCHED_WINDOW_END", "20:30")
	viper.SetDefault("SCHED_STEP_MINUTES", 30)
	viper.SetDefault("SCHED_ROOMS", []int{1, 2, 3, 4, 5})
	viper.SetDefault("SCHED_CROSS_DAY_CEILING_MIN", 120)
	viper.SetDefault("SCHED_OPEN_END_CEILING_MIN", 240)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

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
