package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type GatewayConfig struct {
	Env          string `yaml:"env" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GatewayDB    `yaml:"gateway_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	Maintenance  `yaml:"maintenance"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type GatewayDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"text"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Enabled bool   `yaml:"enabled" env-default:"false"`
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Topic   string `yaml:"topic" env-default:"invoice-events"`
}

type Maintenance struct {
	// BaseURL is the address this service reaches itself on for the
	// opportunistic self-trigger.
	BaseURL      string        `yaml:"base_url" env-default:"http://127.0.0.1:8080"`
	KeyPath      string        `yaml:"key_path" env-default:".gateway_internal_key"`
	SyncInterval time.Duration `yaml:"sync_interval" env-default:"5m"`
}

func MustLoad() *GatewayConfig {

	// Processing env config variable and file
	configPath := os.Getenv("GATEWAY_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("GATEWAY_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg GatewayConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
