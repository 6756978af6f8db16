package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lisanmuaddib/airdrop-go/internal/agentconfig"
	"github.com/lisanmuaddib/airdrop-go/pkg/agent"
	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/llm"
	"github.com/lisanmuaddib/airdrop-go/pkg/llm/openai"
	"github.com/lisanmuaddib/airdrop-go/pkg/logging"
	"github.com/lisanmuaddib/airdrop-go/pkg/selectors"
	"github.com/lisanmuaddib/airdrop-go/pkg/store"
)

// Process exit codes. Logged messages carry the detail; the codes let
// wrappers tell the failure modes apart.
const (
	exitFault        = 1
	exitConfig       = 2
	exitNoCampaign   = 3
	defaultStoreFile = "data/completed_airdrops.json"
	defaultLogFile   = "logs/airdrop.log"
)

var (
	headless    bool
	airdropName string
	listingURL  string
)

var rootCmd = &cobra.Command{
	Use:           "airdrop",
	Short:         "Automates mandatory-task completion for airdrop campaigns",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&headless, "headless", false, "Run browser in headless mode")
	rootCmd.Flags().StringVar(&airdropName, "airdrop", "", "Target a specific airdrop by name")
	rootCmd.Flags().StringVar(&listingURL, "url", "https://airdrop.io", "Airdrop listing URL")
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger()

	if err := agentconfig.EnsureCredentials(log); err != nil {
		fmt.Println("\nPlease fill in your credentials in the .env file before running again.")
		return err
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("Received shutdown signal")
		cancel()
	}()

	// Initialize OpenAI-backed advisor
	openaiConfig, err := openai.NewOpenAIConfig()
	if err != nil {
		return fmt.Errorf("%w: %v", agentconfig.ErrMissingCredentials, err)
	}
	openaiConfig.Logger = log

	llmClient, err := openai.NewClient(openaiConfig)
	if err != nil {
		return fmt.Errorf("%w: %v", agentconfig.ErrMissingCredentials, err)
	}
	advisor := llm.NewAdvisor(llmClient, log, llm.AdvisorOptions{
		MaxTokens: openaiConfig.MaxTokens,
	})

	// Initialize browser session
	browserConfig, err := browser.NewBrowserConfig()
	if err != nil {
		return fmt.Errorf("failed to create browser config: %w", err)
	}
	browserConfig.Headless = headless
	browserConfig.Logger = log

	session, err := browser.NewSession(browserConfig)
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	// Selector table: defaults, optionally overridden per site
	table := selectors.Default()
	if path := os.Getenv("SELECTORS_FILE"); path != "" {
		if loaded, err := selectors.Load(path); err != nil {
			log.WithError(err).Warn("Could not load selectors file, using defaults")
		} else {
			table = loaded
		}
	}

	storePath := os.Getenv("COMPLETED_AIRDROPS_FILE")
	if storePath == "" {
		storePath = filepath.FromSlash(defaultStoreFile)
	}
	completions := store.NewCompletionStore(storePath, log)

	strategies, err := agentconfig.ConfigureStrategies(agentconfig.StrategyConfig{
		Session:   session,
		Selectors: table,
		Advisor:   advisor,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("failed to configure strategies: %w", err)
	}

	airdropAgent, err := agent.New(agent.Config{
		Session:    session,
		Store:      completions,
		Selectors:  table,
		Strategies: strategies,
		Logger:     log,
		ListingURL: listingURL,
		Airdrop:    airdropName,
	})
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	return airdropAgent.Run(ctx)
}

func newLogger() *logrus.Logger {
	log := logrus.New()

	logLevel := os.Getenv("LOG_LEVEL")
	if level, err := logrus.ParseLevel(logLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		if logLevel != "" {
			log.WithFields(logrus.Fields{
				"attempted_level": logLevel,
				"default_level":   "INFO",
			}).Warn("Invalid log level specified, defaulting to INFO")
		}
	}

	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(logging.NewColoredJSONFormatter())
	}

	// Tee to a log file alongside stdout; console-only on failure.
	logPath := filepath.FromSlash(defaultLogFile)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
		if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			log.SetOutput(io.MultiWriter(os.Stdout, file))
		}
	}

	return log
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Only log warning since .env is optional
		logrus.WithError(err).Debug("No .env file loaded")
	}

	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, agentconfig.ErrMissingCredentials):
			os.Exit(exitConfig)
		case errors.Is(err, agent.ErrNoCampaignSelected):
			os.Exit(exitNoCampaign)
		default:
			logrus.WithError(err).Error("Run failed")
			os.Exit(exitFault)
		}
	}
}
