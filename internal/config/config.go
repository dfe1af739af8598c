package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Model  ModelConfig
	AWS    AWSConfig
	Log    LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// ModelConfig says where the trained model artifact lives
type ModelConfig struct {
	Path  string
	S3Key string
}

// AWSConfig holds AWS/S3 configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// UseObjectStore reports whether the model is fetched from a bucket instead of disk
func (c *Config) UseObjectStore() bool {
	return c.Model.S3Key != ""
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:8080")
	v.SetDefault("MODEL_PATH", "saved_model")
	v.SetDefault("MODEL_S3_KEY", "")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("LOG_LEVEL", "info")

	// Environment variables override .env file values
	v.AutomaticEnv()

	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev" // Use "dev" to match .env.dev filename
	}

	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// Read .env file (ignore error if file doesn't exist)
	_ = v.ReadInConfig()

	for _, key := range []string{
		"PORT", "ENVIRONMENT", "ALLOWED_ORIGINS", "MODEL_PATH", "MODEL_S3_KEY",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "S3_BUCKET", "S3_ENDPOINT", "LOG_LEVEL",
	} {
		_ = v.BindEnv(key)
	}

	var config Config
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = v.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))
	config.Model.Path = v.GetString("MODEL_PATH")
	config.Model.S3Key = v.GetString("MODEL_S3_KEY")
	config.AWS.Region = v.GetString("AWS_REGION")
	config.AWS.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = v.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = v.GetString("S3_ENDPOINT")
	config.Log.Level = v.GetString("LOG_LEVEL")

	log.Debug().
		Str("env", config.Server.Env).
		Str("modelPath", config.Model.Path).
		Str("modelS3Key", config.Model.S3Key).
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Msg("Configuration loaded")

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
