package browser

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// defaultUserAgent is presented to the listing sites instead of the
// headless Chrome default.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config holds browser session settings.
type Config struct {
	// Headless runs Chrome without a visible window.
	Headless bool

	// UserAgent overrides the browser user agent string.
	UserAgent string

	// WaitTimeout bounds page-level element waits.
	WaitTimeout time.Duration

	// LookupTimeout bounds relative lookups inside a card or task element.
	LookupTimeout time.Duration

	// Stealth applies anti-detection patches to every page.
	Stealth bool

	Logger *logrus.Logger
}

// NewBrowserConfig builds a Config from environment variables.
func NewBrowserConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	waitSecs, _ := strconv.Atoi(getEnvOrDefault("BROWSER_TIMEOUT", "30"))
	lookupSecs, _ := strconv.Atoi(getEnvOrDefault("BROWSER_LOOKUP_TIMEOUT", "10"))

	config := &Config{
		UserAgent:     getEnvOrDefault("BROWSER_USER_AGENT", defaultUserAgent),
		WaitTimeout:   time.Duration(waitSecs) * time.Second,
		LookupTimeout: time.Duration(lookupSecs) * time.Second,
		Stealth:       getEnvOrDefault("BROWSER_STEALTH", "true") != "false",
		Logger: func() *logrus.Logger {
			log := logrus.New()
			if level := os.Getenv("LOG_LEVEL"); level != "" {
				if parsedLevel, err := logrus.ParseLevel(level); err == nil {
					log.SetLevel(parsedLevel)
				}
			}
			return log
		}(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate fills zero values with defaults.
func (c *Config) Validate() error {
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.WaitTimeout == 0 {
		c.WaitTimeout = 30 * time.Second
	}
	if c.LookupTimeout == 0 {
		c.LookupTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
