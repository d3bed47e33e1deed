package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Badges  BadgeConfig   `yaml:"badges"`
	Import  ImportConfig  `yaml:"import"`
}

type ScoringConfig struct {
	SimilarThreshold float64           `yaml:"similar_threshold"`
	Popularity       PopularityWeights `yaml:"popularity"`
	Recommend        RecommendWeights  `yaml:"recommend"`
	Search           SearchWeights     `yaml:"search"`
	TrendingSamples  int               `yaml:"trending_samples"`
}

// PopularityWeights turn answer and vote counts into a popularity score.
type PopularityWeights struct {
	Answer float64 `yaml:"answer"`
	Vote   float64 `yaml:"vote"`
}

type RecommendWeights struct {
	Threshold  float64 `yaml:"threshold"`
	Tags       float64 `yaml:"tags"`
	Popularity float64 `yaml:"popularity"`
}

type SearchWeights struct {
	Title        float64 `yaml:"title"`
	Content      float64 `yaml:"content"`
	Popularity   float64 `yaml:"popularity"`
	Recency      float64 `yaml:"recency"`
	TitleBoost   float64 `yaml:"title_boost"`
	ContentBoost float64 `yaml:"content_boost"`
	RecencyDays  int     `yaml:"recency_days"`
}

type ServerConfig struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type BadgeConfig struct {
	Schedule         string `yaml:"schedule"`
	EarlyAdopterDays int    `yaml:"early_adopter_days"`
}

type ImportConfig struct {
	Feeds          []string `yaml:"feeds"`
	Username       string   `yaml:"username"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	UserAgent      string   `yaml:"user_agent"`
}

func Default() *Config {
	return &Config{
		Scoring: ScoringConfig{
			SimilarThreshold: 0.1,
			Popularity: PopularityWeights{
				Answer: 0.1,
				Vote:   0.05,
			},
			Recommend: RecommendWeights{
				Threshold:  0.1,
				Tags:       0.7,
				Popularity: 0.3,
			},
			Search: SearchWeights{
				Title:        0.5,
				Content:      0.3,
				Popularity:   0.1,
				Recency:      0.1,
				TitleBoost:   2.0,
				ContentBoost: 1.5,
				RecencyDays:  365,
			},
			TrendingSamples: 3,
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Badges: BadgeConfig{
			Schedule:         "@every 1h",
			EarlyAdopterDays: 30,
		},
		Import: ImportConfig{
			Feeds:          []string{},
			Username:       "importer",
			TimeoutSeconds: 30,
			UserAgent:      "qaboard/1.0",
		},
	}
}

func Dir() string {
	if dir := os.Getenv("QABOARD_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".qaboard")
}

func DBPath() string {
	return filepath.Join(Dir(), "qaboard.db")
}

func configPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Load() (*Config, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0644)
}
