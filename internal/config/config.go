package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Backend selector values accepted in CRUD_IMPL.
const (
	ImplORM      = "orm"
	ImplTemplate = "template"
)

// Config holds the application settings, loaded once at startup.
type Config struct {
	ProjectName string
	AppPort     string
	DatabaseURL string
	CRUDImpl    string
	RabbitMQURL string
}

// Load reads the settings from environment variables with sensible
// defaults. CRUD_IMPL is case-insensitive; any unrecognized value falls
// back to the ORM backend. An empty RABBITMQ_URL disables event publishing.
func Load() *Config {
	viper.SetDefault("PROJECT_NAME", "Product API")
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "app.db")
	viper.SetDefault("CRUD_IMPL", ImplORM)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	impl := strings.ToLower(viper.GetString("CRUD_IMPL"))
	if impl != ImplTemplate {
		impl = ImplORM
	}

	return &Config{
		ProjectName: viper.GetString("PROJECT_NAME"),
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseURL: viper.GetString("DATABASE_URL"),
		CRUDImpl:    impl,
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
}
