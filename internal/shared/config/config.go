package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	MaxUploadBytes  int64

	UploadStore string
	UploadDir   string
	AWSRegion   string
	S3Bucket    string
	S3Prefix    string

	ModelBaseURL string
	ModelName    string
	ModelTimeout time.Duration

	MailTransport string
	MailFrom      string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	ResendAPIKey  string
}

// Load reads configuration from environment variables with sensible defaults.
// Values from the optional TOML file named by SMART_MAIL_CONFIG sit beneath the environment.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	file, err := loadFile(os.Getenv("SMART_MAIL_CONFIG"))
	if err != nil {
		log.Printf("config: ignoring config file: %v", err)
	}

	env := normalizeEnv(getEnv("ENV", file.Env, "dev"))

	return Config{
		Port:            getEnv("PORT", file.Port, "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", strings.Join(file.CORSAllowOrigins, ","), "http://localhost:5173")),
		MaxUploadBytes:  getInt64("MAX_UPLOAD_BYTES", file.MaxUploadBytes, 10<<20),
		UploadStore:     normalizeStoreType(getEnv("UPLOAD_STORE", file.Upload.Store, "local")),
		UploadDir:       getEnv("UPLOAD_DIR", file.Upload.Dir, "uploads"),
		AWSRegion:       getEnv("AWS_REGION", file.Upload.AWSRegion, ""),
		S3Bucket:        getEnv("S3_BUCKET", file.Upload.S3Bucket, ""),
		S3Prefix:        getEnv("S3_PREFIX", file.Upload.S3Prefix, "uploads/"),
		ModelBaseURL:    strings.TrimRight(getEnv("MODEL_BASE_URL", file.Model.BaseURL, "http://localhost:11434"), "/"),
		ModelName:       getEnv("MODEL_NAME", file.Model.Name, "llama3"),
		ModelTimeout:    time.Duration(getInt64("MODEL_TIMEOUT_SECONDS", file.Model.TimeoutSeconds, 60)) * time.Second,
		MailTransport:   normalizeTransport(getEnv("MAIL_TRANSPORT", file.Mail.Transport, defaultTransport(env))),
		MailFrom:        getEnv("MAIL_FROM", file.Mail.From, ""),
		SMTPHost:        getEnv("SMTP_HOST", file.Mail.SMTPHost, ""),
		SMTPPort:        int(getInt64("SMTP_PORT", int64(file.Mail.SMTPPort), 587)),
		SMTPUsername:    getEnv("SMTP_USERNAME", file.Mail.SMTPUsername, ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", "", ""),
		ResendAPIKey:    getEnv("RESEND_API_KEY", "", ""),
	}
}

func getEnv(key, fileVal, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if fileVal != "" {
		return fileVal
	}
	return def
}

func getInt64(key string, fileVal, def int64) int64 {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
		log.Printf("config: invalid %s=%q, using default", key, raw)
	}
	if fileVal > 0 {
		return fileVal
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "none", "off", "disabled":
		return "none"
	default:
		return "local"
	}
}

func normalizeTransport(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "smtp":
		return "smtp"
	case "resend":
		return "resend"
	default:
		return "log"
	}
}

func defaultTransport(env string) string {
	if IsDevLike(env) {
		return "log"
	}
	return "smtp"
}

// IsDevLike reports whether env is a local development environment.
func IsDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
