package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS" default:"15"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		APIKey   string `envconfig:"API_KEY"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	// Policy carries the escrow policy constants. The review window and the
	// release threshold are shared by the review API, the reconciliation
	// sweep, and the admin tooling; they must never diverge.
	Policy struct {
		ReviewWindowHours        int `envconfig:"REVIEW_WINDOW_HOURS" default:"24"`
		ReleaseThreshold         int `envconfig:"RELEASE_THRESHOLD" default:"3"`
		DefaultCommissionPercent int `envconfig:"DEFAULT_COMMISSION_PERCENT" default:"15"`
	} `envconfig:"POLICY"`

	Sweep struct {
		IntervalSeconds int  `envconfig:"INTERVAL_SECONDS" default:"3600"`
		RunOnStartup    bool `envconfig:"RUN_ON_STARTUP" default:"true"`
	} `envconfig:"SWEEP"`

	Payments struct {
		BaseURL        string `envconfig:"BASE_URL"`
		SecretKey      string `envconfig:"SECRET_KEY"`
		Currency       string `envconfig:"CURRENCY" default:"sar"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
	} `envconfig:"PAYMENTS"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		IntentTopic   string   `envconfig:"INTENT_TOPIC" default:"booking-intents"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Providers struct {
		NotificationURL string `envconfig:"NOTIFICATION_URL"`
		MeetingURL      string `envconfig:"MEETING_URL"`
		TimeoutSeconds  int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
	} `envconfig:"PROVIDERS"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
