package agentconfig

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
)

// ErrMissingCredentials means the environment lacks the required API
// key. The CLI maps it to its own exit code.
var ErrMissingCredentials = errors.New("missing .env file or required credentials")

const envTemplate = `# OpenAI API Key (required for AI assistance)
OPENAI_API_KEY=your_openai_api_key_here

# Social Media Credentials
TELEGRAM_USERNAME=your_telegram_username
TWITTER_USERNAME=your_twitter_username
TWITTER_PASSWORD=your_twitter_password
DISCORD_USERNAME=your_discord_email
DISCORD_PASSWORD=your_discord_password
YOUTUBE_EMAIL=your_youtube_email
YOUTUBE_PASSWORD=your_youtube_password
`

// EnsureCredentials checks that the OpenAI API key is configured.
// When it is not, a .env template is written (if none exists) so the
// operator can fill it in, and ErrMissingCredentials is returned.
func EnsureCredentials(logger *logrus.Logger) error {
	if os.Getenv("OPENAI_API_KEY") != "" {
		return nil
	}

	logger.Error("Missing .env file or required credentials")

	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		if werr := os.WriteFile(".env", []byte(envTemplate), 0o600); werr != nil {
			logger.WithError(werr).Error("Error creating .env template")
		} else {
			logger.Info("Created .env template file")
		}
	} else {
		logger.Info(".env file already exists")
	}

	return ErrMissingCredentials
}
