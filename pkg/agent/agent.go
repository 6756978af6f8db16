// Package agent orchestrates a single airdrop run. Control flow is
// strictly sequential; the only suspension points are human-pacing
// pauses and bounded element waits inside the browser session.
package agent

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/campaign"
	"github.com/lisanmuaddib/airdrop-go/pkg/store"
	"github.com/lisanmuaddib/airdrop-go/pkg/tasks"
)

// tabWait bounds the best-effort lookup of the "All airdrops" tab.
const tabWait = 10 * time.Second

// New creates a new Agent instance
func New(config Config) (*Agent, error) {
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &Agent{
		session:    config.Session,
		store:      config.Store,
		table:      config.Selectors,
		strategies: config.Strategies,
		selector:   campaign.NewSelector(config.Session, config.Store, config.Selectors, config.Logger),
		logger:     config.Logger,
		listingURL: config.ListingURL,
		airdrop:    config.Airdrop,
	}, nil
}

func validateConfig(config *Config) error {
	if config.Session == nil {
		return fmt.Errorf("browser session is required")
	}
	if config.Store == nil {
		return fmt.Errorf("completion store is required")
	}
	if config.Selectors == nil {
		return fmt.Errorf("selector table is required")
	}
	if len(config.Strategies) == 0 {
		return fmt.Errorf("at least one task strategy is required")
	}
	if config.ListingURL == "" {
		return fmt.Errorf("listing URL is required")
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return nil
}

// Run executes one full pass. It returns ErrNoCampaignSelected when no
// campaign was opened; any other fault is caught at this boundary,
// logged with a trace, and returned as an error rather than a panic.
func (a *Agent) Run(ctx context.Context) (err error) {
	log := a.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"url":    a.listingURL,
	})

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Unhandled fault during run")
			err = fmt.Errorf("unhandled fault: %v", r)
		}
	}()

	log.Info("Starting airdrop run")

	if err := a.session.Navigate(a.listingURL); err != nil {
		return fmt.Errorf("open listing page: %w", err)
	}

	// Some listing sites land on a featured tab. Absence is not an error.
	if tab, ok := a.session.ElementWithin(tabWait, a.table.AllAirdropsTab); ok {
		a.session.Click(tab)
	}

	name, ok := a.selector.Select(a.airdrop)
	if !ok {
		log.Error("No airdrop was selected or available")
		return ErrNoCampaignSelected
	}

	if a.completeAllTasks(ctx, log, name) {
		log.WithField("campaign", name).Info("Successfully completed all tasks")
	} else {
		log.WithField("campaign", name).Warn("Could not complete all tasks")
	}

	// Let the listing site register the final state before teardown.
	a.session.RandomWait(browser.WaitLong)
	return nil
}

// completeAllTasks classifies and runs every mandatory task on the
// open campaign page, then records the aggregate outcome. Task types
// without a strategy count as failures.
func (a *Agent) completeAllTasks(ctx context.Context, log *logrus.Entry, name string) bool {
	items := a.selector.MandatoryTasks()

	allOK := true
	for i, item := range items {
		taskType := tasks.Classify(item.Text)
		tlog := log.WithFields(logrus.Fields{
			"campaign":   name,
			"task_index": i,
			"task_type":  taskType,
		})

		strategy, ok := a.strategies[taskType]
		if !ok || strategy == nil {
			tlog.Warn("No strategy for task type, counting as failed")
			allOK = false
			continue
		}

		tlog.Info("Running task")
		if strategy.Complete(ctx, item.Element) {
			tlog.Info("Task completed")
		} else {
			tlog.Warn("Task failed")
			allOK = false
		}
	}

	status := store.StatusSuccess
	if !allOK {
		status = store.StatusPartial
	}
	if err := a.store.MarkCompleted(name, status); err != nil {
		log.WithError(err).Warn("Completion state may not be durable")
	}
	return allOK
}
