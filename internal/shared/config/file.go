package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the optional TOML configuration file.
type fileConfig struct {
	Env              string   `toml:"env"`
	Port             string   `toml:"port"`
	CORSAllowOrigins []string `toml:"cors_allow_origins"`
	MaxUploadBytes   int64    `toml:"max_upload_bytes"`

	Upload struct {
		Store     string `toml:"store"`
		Dir       string `toml:"dir"`
		AWSRegion string `toml:"aws_region"`
		S3Bucket  string `toml:"s3_bucket"`
		S3Prefix  string `toml:"s3_prefix"`
	} `toml:"upload"`

	Model struct {
		BaseURL        string `toml:"base_url"`
		Name           string `toml:"name"`
		TimeoutSeconds int64  `toml:"timeout_seconds"`
	} `toml:"model"`

	Mail struct {
		Transport    string `toml:"transport"`
		From         string `toml:"from"`
		SMTPHost     string `toml:"smtp_host"`
		SMTPPort     int    `toml:"smtp_port"`
		SMTPUsername string `toml:"smtp_username"`
	} `toml:"mail"`
}

// loadFile parses the TOML file at path. An empty path yields a zero config.
// Secrets (SMTP password, API keys) are only read from the environment.
func loadFile(path string) (fileConfig, error) {
	var cfg fileConfig
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
