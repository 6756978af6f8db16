package agent

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/campaign"
	"github.com/lisanmuaddib/airdrop-go/pkg/selectors"
	"github.com/lisanmuaddib/airdrop-go/pkg/store"
	"github.com/lisanmuaddib/airdrop-go/pkg/tasks"
)

// ErrNoCampaignSelected means the run ended without opening a
// campaign: nothing was listed, or the resolved campaign was already
// completed, or its card could not be clicked.
var ErrNoCampaignSelected = errors.New("no airdrop was selected or available")

// Agent drives one sequential run: open the listing, pick a campaign,
// complete its mandatory tasks, record the outcome.
type Agent struct {
	session    *browser.Session
	store      *store.CompletionStore
	table      *selectors.Table
	strategies map[tasks.TaskType]tasks.Strategy
	selector   *campaign.Selector
	logger     *logrus.Logger
	listingURL string
	airdrop    string
}

// Config holds the configuration for the Agent
type Config struct {
	Session    *browser.Session
	Store      *store.CompletionStore
	Selectors  *selectors.Table
	Strategies map[tasks.TaskType]tasks.Strategy
	Logger     *logrus.Logger

	// ListingURL is the airdrop listing page to open.
	ListingURL string
	// Airdrop optionally targets a specific campaign by name.
	Airdrop string
}
