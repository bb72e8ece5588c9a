package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Relay provider names accepted in RELAY_PROVIDER
const (
	ProviderWeb3Forms = "web3forms"
	ProviderPostmark  = "postmark"
	ProviderSMTP      = "smtp"
	ProviderLog       = "log"
)

// ErrInvalidConfig wraps every configuration validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	GinMode        string   `env:"GIN_MODE" envDefault:"debug"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Site identity
	SiteName     string `env:"SITE_NAME" envDefault:"Beauty Solutions Website"`
	CompanyEmail string `env:"COMPANY_EMAIL" envDefault:"info@beautysolutions.com"`

	// Relay
	RelayProvider string        `env:"RELAY_PROVIDER" envDefault:"web3forms"`
	RelayTimeout  time.Duration `env:"RELAY_TIMEOUT" envDefault:"10s"`

	// Web3Forms. The access key has no default on purpose.
	Web3FormsAccessKey string `env:"WEB3FORMS_ACCESS_KEY"`
	Web3FormsEndpoint  string `env:"WEB3FORMS_ENDPOINT" envDefault:"https://api.web3forms.com/submit"`

	// Payload shape
	RelayFromName      bool   `env:"RELAY_FROM_NAME" envDefault:"true"`
	RelayReplyTo       bool   `env:"RELAY_REPLY_TO" envDefault:"true"`
	RelayTo            string `env:"RELAY_TO"`
	RelayInterestField string `env:"RELAY_INTEREST_FIELD" envDefault:"interest"`

	// Postmark
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	PostmarkFromEmail    string `env:"POSTMARK_FROM_EMAIL"`

	// SMTP
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	SMTPFromEmail  string `env:"SMTP_FROM_EMAIL"`
	ContactEmailTo string `env:"CONTACT_EMAIL_TO"`

	// Redis (optional, rate limiting falls back to memory)
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Rate limiting for the contact endpoint
	ContactRateLimit  int           `env:"CONTACT_RATE_LIMIT" envDefault:"5"`
	ContactRateWindow time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"1m"`
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return &cfg, nil
}

func (c *Config) normalize() {
	c.RelayProvider = strings.ToLower(strings.TrimSpace(c.RelayProvider))
	c.RelayInterestField = strings.ToLower(strings.TrimSpace(c.RelayInterestField))
	c.Web3FormsAccessKey = strings.TrimSpace(c.Web3FormsAccessKey)
	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
}

// Validate checks that the selected relay provider has what it needs
func (c *Config) Validate() error {
	if c.RelayTimeout <= 0 {
		return fmt.Errorf("%w: RELAY_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.RelayInterestField != "interest" && c.RelayInterestField != "services" {
		return fmt.Errorf("%w: RELAY_INTEREST_FIELD must be interest or services", ErrInvalidConfig)
	}

	switch c.RelayProvider {
	case ProviderWeb3Forms:
		if c.Web3FormsAccessKey == "" {
			return fmt.Errorf("%w: WEB3FORMS_ACCESS_KEY is required", ErrInvalidConfig)
		}
		if c.Web3FormsEndpoint == "" {
			return fmt.Errorf("%w: WEB3FORMS_ENDPOINT is required", ErrInvalidConfig)
		}
	case ProviderPostmark:
		if c.PostmarkServerToken == "" || c.PostmarkFromEmail == "" || c.ContactEmailTo == "" {
			return fmt.Errorf("%w: POSTMARK_SERVER_TOKEN, POSTMARK_FROM_EMAIL and CONTACT_EMAIL_TO are required", ErrInvalidConfig)
		}
	case ProviderSMTP:
		if c.SMTPHost == "" || c.SMTPFromEmail == "" || c.ContactEmailTo == "" {
			return fmt.Errorf("%w: SMTP_HOST, SMTP_FROM_EMAIL and CONTACT_EMAIL_TO are required", ErrInvalidConfig)
		}
	case ProviderLog:
	default:
		return fmt.Errorf("%w: unknown RELAY_PROVIDER %q", ErrInvalidConfig, c.RelayProvider)
	}
	return nil
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}
