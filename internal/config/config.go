package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type StorageConfig struct {
	// Path — путь к sqlite-файлу key-value хранилища
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type SweepConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

// Default — рабочая конфигурация без config.yml, чтобы сервис запускался из коробки
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "0.0.0.0", Port: "8080"},
		Storage: StorageConfig{Path: "kanban.db"},
		Auth:    AuthConfig{JWTSecret: "kanban-demo-secret", TokenTTL: 7 * 24 * time.Hour},
		Sweep:   SweepConfig{Interval: 60 * time.Second},
		Logging: LoggingConfig{Development: true},
	}
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}

	if cfg.Sweep.Interval <= 0 {
		cfg.Sweep.Interval = 60 * time.Second
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 7 * 24 * time.Hour
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
