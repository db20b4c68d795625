package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr    string        `mapstructure:"HTTP_ADDR"`
	APIBaseURL  string        `mapstructure:"API_BASE_URL"`
	APITimeout  time.Duration `mapstructure:"API_TIMEOUT"`
	ServiceName string        `mapstructure:"SERVICE_NAME"`

	// Images
	ImageHost           string `mapstructure:"IMAGE_HOST"`
	ImageBasePath       string `mapstructure:"IMAGE_BASE_PATH"`
	ImageStoragePrefix  string `mapstructure:"IMAGE_STORAGE_PREFIX"`
	ImagePlaceholderURL string `mapstructure:"IMAGE_PLACEHOLDER_URL"`

	// UI timings and paging
	ItemsPerPage    int           `mapstructure:"ITEMS_PER_PAGE"`
	NotificationTTL time.Duration `mapstructure:"NOTIFICATION_TTL"`
	SearchDebounce  time.Duration `mapstructure:"SEARCH_DEBOUNCE"`

	// Durable local state
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	NATSURL      string `mapstructure:"NATS_URL"`
	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func LoadConfig() (*Config, error) {
	// .env is optional, real environment variables win anyway
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.ItemsPerPage <= 0 {
		log.Printf("Warning: ITEMS_PER_PAGE=%d is not positive, using 9", cfg.ItemsPerPage)
		cfg.ItemsPerPage = 9
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", "127.0.0.1:8080")
	v.SetDefault("API_BASE_URL", "https://pets.sweb.ru/api")
	v.SetDefault("API_TIMEOUT", "0s")
	v.SetDefault("SERVICE_NAME", "lostpets")

	v.SetDefault("IMAGE_HOST", "https://pets.sweb.ru")
	v.SetDefault("IMAGE_BASE_PATH", "/images/")
	v.SetDefault("IMAGE_STORAGE_PREFIX", "/storage/")
	v.SetDefault("IMAGE_PLACEHOLDER_URL", "https://pets.sweb.ru/images/placeholder.png")

	v.SetDefault("ITEMS_PER_PAGE", 9)
	v.SetDefault("NOTIFICATION_TTL", "5s")
	v.SetDefault("SEARCH_DEBOUNCE", "200ms")

	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "lostpets.db")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("NATS_URL", "")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "lostpets.events")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
}
