package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"invite-auth/shared/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"8081"`

	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	RunMigrations bool          `envconfig:"RUN_MIGRATIONS" default:"true"`

	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	SecretsDir string `envconfig:"SECRETS_DIR" default:"/run/secrets"`

	BootstrapInviteCode    string `envconfig:"BOOTSTRAP_INVITE_CODE"`
	BootstrapInviteMaxUses int    `envconfig:"BOOTSTRAP_INVITE_MAX_USES" default:"-1"`
	BootstrapAdminUsername string `envconfig:"BOOTSTRAP_ADMIN_USERNAME"`

	// Secrets, read from files in SecretsDir.
	DBPassword             string `ignored:"true"`
	JWTSecret              string `ignored:"true"`
	PasswordPepper         string `ignored:"true"`
	BootstrapAdminPassword string `ignored:"true"`
}

// GetAllowedOrigins splits CORSAllowedOrigins on commas.
func (c *Config) GetAllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// AllowAllOrigins reports whether CORS is configured with the wildcard or left empty.
func (c *Config) AllowAllOrigins() bool {
	origins := c.GetAllowedOrigins()
	if len(origins) == 0 {
		return true
	}
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// DatabaseURL is the Postgres connection string used by the pool and by migrations.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// LoadConfig loads configuration from an optional .env file, the environment
// and secret files.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	var err error
	if cfg.DBPassword, err = utils.ReadSecret(cfg.SecretsDir, "db_password"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = utils.ReadSecret(cfg.SecretsDir, "jwt_secret"); err != nil {
		return nil, err
	}

	if cfg.PasswordPepper, err = readOptionalSecret(cfg.SecretsDir, "password_pepper"); err != nil {
		return nil, err
	}
	if cfg.BootstrapAdminPassword, err = readOptionalSecret(cfg.SecretsDir, "bootstrap_admin_password"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Println("Configuration loaded successfully (secrets read from files).")
	return &cfg, nil
}

// readOptionalSecret returns "" when the secret file is absent.
func readOptionalSecret(dir, name string) (string, error) {
	secret, err := utils.ReadSecret(dir, name)
	if errors.Is(err, utils.ErrSecretNotFound) {
		log.Printf("Optional secret '%s' not found, leaving it empty.", name)
		return "", nil
	}
	return secret, err
}

func (c *Config) validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	if c.BootstrapInviteMaxUses < -1 {
		return fmt.Errorf("BOOTSTRAP_INVITE_MAX_USES must be -1 or greater, got %d", c.BootstrapInviteMaxUses)
	}
	return nil
}
