package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	LLM     LLMConfig
	Archive ArchiveConfig
	Session SessionConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// OpTimeout bounds each bank read/write so a slow cache falls back to
	// generation instead of stalling the request.
	OpTimeout time.Duration `yaml:"op_timeout"`
}

type LLMConfig struct {
	// Provider selects the generator backend: "googleai" or "ollama".
	Provider  string        `yaml:"provider"`
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"api_key"`
	ServerURL string        `yaml:"server_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

type ArchiveConfig struct {
	// Path to the sqlite file for finished assessments. Empty disables archiving.
	Path string `yaml:"path"`
}

type SessionConfig struct {
	MaxIdle       time.Duration `yaml:"max_idle"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type LoggerConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("redis.op_timeout", 2)
	viper.SetDefault("llm.provider", "googleai")
	viper.SetDefault("llm.model", "gemini-2.0-flash")
	viper.SetDefault("llm.timeout", 30)
	viper.SetDefault("session.max_idle", 3600)
	viper.SetDefault("session.sweep_interval", 300)
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults plus env vars carry the service.
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:   viper.GetString("redis.address"),
			Password:  viper.GetString("redis.password"),
			DB:        viper.GetInt("redis.db"),
			OpTimeout: viper.GetDuration("redis.op_timeout") * time.Second,
		},
		LLM: LLMConfig{
			Provider:  viper.GetString("llm.provider"),
			Model:     viper.GetString("llm.model"),
			APIKey:    viper.GetString("llm.api_key"),
			ServerURL: viper.GetString("llm.server_url"),
			Timeout:   viper.GetDuration("llm.timeout") * time.Second,
		},
		Archive: ArchiveConfig{
			Path: viper.GetString("archive.path"),
		},
		Session: SessionConfig{
			MaxIdle:       viper.GetDuration("session.max_idle") * time.Second,
			SweepInterval: viper.GetDuration("session.sweep_interval") * time.Second,
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
	}

	// Common env overrides for container deployments.
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" && config.LLM.APIKey == "" {
		config.LLM.APIKey = key
	}

	return config, nil
}
