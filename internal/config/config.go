package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port       string `mapstructure:"port"`
		Env        string `mapstructure:"env"`
		StartInCMS bool   `mapstructure:"start_in_cms"`
	} `mapstructure:"app"`
	Data struct {
		FixturePath string `mapstructure:"fixture_path"`
	} `mapstructure:"data"`
	Site struct {
		BaseURL    string `mapstructure:"base_url"`
		Tagline    string `mapstructure:"tagline"`
		FooterNote string `mapstructure:"footer_note"`
	} `mapstructure:"site"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

// LoadConfig reads .env, then config.yaml from the given paths (default "."),
// then the environment. Later sources win.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.start_in_cms", false)
	v.SetDefault("site.base_url", "http://localhost:8080")
	v.SetDefault("site.tagline", "Health Tech Innovator")
	v.SetDefault("kafka.topic", "portfolio.content.events")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.start_in_cms", "APP_START_IN_CMS")
	v.BindEnv("data.fixture_path", "DATA_FIXTURE_PATH")
	v.BindEnv("site.base_url", "SITE_BASE_URL")
	v.BindEnv("site.tagline", "SITE_TAGLINE")
	v.BindEnv("site.footer_note", "SITE_FOOTER_NOTE")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.topic", "KAFKA_TOPIC")
	v.BindEnv("jaeger.otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	err = v.Unmarshal(&cfg)
	return
}
