package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	DispatchWorkers int

	Email      EmailConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Attachment AttachmentConfig
}

// EmailConfig holds SMTP credentials and the company identity used on outbound mail.
type EmailConfig struct {
	Host         string
	Port         int
	Secure       bool // implicit TLS (port 465); otherwise STARTTLS is required
	User         string
	Pass         string
	CompanyEmail string
	CompanyName  string
	SendTimeout  time.Duration

	// Shown in message bodies and the submitter-facing subjects.
	BrandName      string
	CompanyPhone   string
	CompanyWebsite string
}

// IsConfigured reports whether credentials are present.
func (c EmailConfig) IsConfigured() bool {
	return c.User != "" && c.Pass != ""
}

// NotificationAddress is where company notifications are delivered.
func (c EmailConfig) NotificationAddress() string {
	if c.CompanyEmail != "" {
		return c.CompanyEmail
	}
	return c.User
}

type DatabaseConfig struct {
	URL         string
	Host        string
	Port        string
	Name        string
	User        string
	Pass        string
	SSLMode     string
	AutoMigrate bool
}

// DSN returns DATABASE_URL, or a postgres URL composed from the discrete
// DB_* parts. Empty when neither is present.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Host == "" || c.Name == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.Name,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Pass)
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type RedisConfig struct {
	URL      string
	Password string
}

type RateLimitConfig struct {
	WindowSeconds   int
	SubmitThreshold int
}

type AttachmentConfig struct {
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	Bucket            string
	WasabiEndpoint    string
	ClamAVAddress     string
}

// ArchiveEnabled reports whether attachments should be copied to object storage.
func (c AttachmentConfig) ArchiveEnabled() bool {
	return c.Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine; production injects the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		Port:            v.GetString("PORT"),
		GinMode:         v.GetString("GIN_MODE"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		DispatchWorkers: v.GetInt("DISPATCH_WORKERS"),
		Email: EmailConfig{
			Host:         v.GetString("EMAIL_HOST"),
			Port:         v.GetInt("EMAIL_PORT"),
			Secure:       v.GetBool("EMAIL_SECURE"),
			User:         v.GetString("EMAIL_USER"),
			Pass:         v.GetString("EMAIL_PASS"),
			CompanyEmail: v.GetString("COMPANY_EMAIL"),
			CompanyName:  v.GetString("COMPANY_NAME"),
			SendTimeout:  v.GetDuration("EMAIL_SEND_TIMEOUT"),

			BrandName:      v.GetString("COMPANY_BRAND"),
			CompanyPhone:   v.GetString("COMPANY_PHONE"),
			CompanyWebsite: v.GetString("COMPANY_WEBSITE"),
		},
		Database: DatabaseConfig{
			URL:         v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Pass:        v.GetString("DB_PASS"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("UPSTASH_REDIS_URL"),
			Password: v.GetString("UPSTASH_REDIS_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			WindowSeconds:   v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
			SubmitThreshold: v.GetInt("RATE_LIMIT_SUBMIT_THRESHOLD"),
		},
		Attachment: AttachmentConfig{
			S3Provider:        v.GetString("S3_PROVIDER"),
			S3AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			S3SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			S3Region:          v.GetString("S3_REGION"),
			Bucket:            v.GetString("ATTACHMENT_BUCKET"),
			WasabiEndpoint:    v.GetString("WASABI_ENDPOINT"),
			ClamAVAddress:     v.GetString("CLAMAV_ADDRESS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DISPATCH_WORKERS", 16)

	v.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	v.SetDefault("EMAIL_PORT", 587)
	v.SetDefault("EMAIL_SECURE", false)
	v.SetDefault("COMPANY_NAME", "Gayatri Electricals")
	v.SetDefault("EMAIL_SEND_TIMEOUT", "15s")
	v.SetDefault("COMPANY_BRAND", "Gayatri Electricals & Electronics")
	v.SetDefault("COMPANY_WEBSITE", "www.gayatrielectricals.com")

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("RATE_LIMIT_SUBMIT_THRESHOLD", 10)

	v.SetDefault("S3_PROVIDER", "aws")
	v.SetDefault("S3_REGION", "ap-south-1")
}

func (c *Config) validate() error {
	if c.Email.Port <= 0 || c.Email.Port > 65535 {
		return fmt.Errorf("invalid EMAIL_PORT: %d", c.Email.Port)
	}
	if c.Email.SendTimeout <= 0 {
		return fmt.Errorf("invalid EMAIL_SEND_TIMEOUT: %s", c.Email.SendTimeout)
	}
	if c.DispatchWorkers <= 0 {
		c.DispatchWorkers = 1
	}
	return nil
}
