package models

import (
	"fmt"
	"os"

	"github.com/caarlos0/env"
	"gopkg.in/yaml.v2"
)

type Config struct {
	ServerAddr  string `yaml:"server_addr" env:"SERVER_ADDR"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	KafkaBroker string `yaml:"kafka_broker" env:"KAFKA_BROKER"`
	KafkaTopic  string `yaml:"kafka_topic" env:"KAFKA_TOPIC"`
	UploadPath  string `yaml:"upload_path" env:"UPLOAD_PATH"`
	BaseURL     string `yaml:"base_url" env:"BASE_URL"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFilePath string `yaml:"log_file_path" env:"LOG_FILE_PATH"`
	Environment string `yaml:"environment" env:"APP_ENV"`
}

func defaultConfig() Config {
	return Config{
		ServerAddr:  ":5000",
		KafkaBroker: "localhost:9092",
		KafkaTopic:  "menu-images",
		UploadPath:  "./uploads",
		BaseURL:     "http://localhost:5000",
		LogLevel:    "info",
		LogFilePath: "./logs",
		Environment: "development",
	}
}

// LoadConfig reads the yaml config file and applies environment
// overrides on top. A missing file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	const op = "models.LoadConfig"

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return &cfg, nil
}

// Production reports whether file log sinks should be enabled.
func (c *Config) Production() bool {
	return c.Environment == "production"
}
