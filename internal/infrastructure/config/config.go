package config

import (
	"github.com/caarlos0/env/v8"
)

// Config is read from the environment (and .env via godotenv/autoload).
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	DynamoDBEndpoint   string `env:"DYNAMODB_ENDPOINT"`

	QuotationsTable  string `env:"QUOTATIONS_TABLE" envDefault:"quotations"`
	SavingsTable     string `env:"SAVINGS_TABLE" envDefault:"savings"`
	SavingItemsTable string `env:"SAVING_ITEMS_TABLE" envDefault:"saving_items"`
}

func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
