package integration_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/internal/agentconfig"
	"github.com/lisanmuaddib/airdrop-go/pkg/agent"
	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/llm"
	"github.com/lisanmuaddib/airdrop-go/pkg/selectors"
	"github.com/lisanmuaddib/airdrop-go/pkg/store"
)

const listingPage = `<!DOCTYPE html>
<html><body>
<div>All airdrops</div>
<div class="airdrop-card" onclick="window.location='/campaign'">
  <div class="airdrop-name">Test Protocol</div>
  <div class="time-left">3 days left</div>
  <div class="reward">500 TST</div>
</div>
</body></html>`

const campaignPageFmt = `<!DOCTYPE html>
<html><body>
<h1>Test Protocol</h1>
<div class="task-item">
  Visit the project's airdrop page (Mandatory)
  <a href="%s/project" target="_blank">Open airdrop page</a>
  <div class="completed">Done</div>
</div>
</body></html>`

const projectPage = `<!DOCTYPE html>
<html><body style="height:4000px">
<h1>Test Protocol airdrop</h1>
</body></html>`

var _ = Describe("Agent run", func() {
	var (
		log     *logrus.Logger
		server  *httptest.Server
		session *browser.Session
	)

	BeforeEach(func() {
		if os.Getenv("INTEGRATION_TESTS") != "true" {
			Skip("Skipping integration test - set INTEGRATION_TESTS=true to run")
		}

		log = logrus.New()
		log.SetOutput(GinkgoWriter)
		log.SetLevel(logrus.DebugLevel)

		mux := http.NewServeMux()
		server = httptest.NewServer(mux)
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, listingPage)
		})
		mux.HandleFunc("/campaign", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, campaignPageFmt, server.URL)
		})
		mux.HandleFunc("/project", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, projectPage)
		})

		config, err := browser.NewBrowserConfig()
		Expect(err).NotTo(HaveOccurred())
		config.Headless = true
		config.Logger = log

		session, err = browser.NewSession(config)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if session != nil {
			session.Close()
		}
		if server != nil {
			server.Close()
		}
	})

	It("completes a visit task end to end and records the campaign", func() {
		completions := store.NewCompletionStore(
			filepath.Join(GinkgoT().TempDir(), "completed_airdrops.json"), log)
		table := selectors.Default()

		strategies, err := agentconfig.ConfigureStrategies(agentconfig.StrategyConfig{
			Session:   session,
			Selectors: table,
			Advisor:   llm.NewAdvisor(nil, log, llm.AdvisorOptions{}),
			Logger:    log,
		})
		Expect(err).NotTo(HaveOccurred())

		a, err := agent.New(agent.Config{
			Session:    session,
			Store:      completions,
			Selectors:  table,
			Strategies: strategies,
			Logger:     log,
			ListingURL: server.URL,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Run(context.Background())).To(Succeed())

		rec, ok := completions.Get("Test Protocol")
		Expect(ok).To(BeTrue())
		Expect(rec.Status).To(Equal(store.StatusSuccess))
	})

	It("skips an already-completed campaign and reports no selection", func() {
		completions := store.NewCompletionStore(
			filepath.Join(GinkgoT().TempDir(), "completed_airdrops.json"), log)
		Expect(completions.MarkCompleted("Test Protocol", store.StatusSuccess)).To(Succeed())
		table := selectors.Default()

		strategies, err := agentconfig.ConfigureStrategies(agentconfig.StrategyConfig{
			Session:   session,
			Selectors: table,
			Advisor:   llm.NewAdvisor(nil, log, llm.AdvisorOptions{}),
			Logger:    log,
		})
		Expect(err).NotTo(HaveOccurred())

		a, err := agent.New(agent.Config{
			Session:    session,
			Store:      completions,
			Selectors:  table,
			Strategies: strategies,
			Logger:     log,
			ListingURL: server.URL,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Run(context.Background())).To(MatchError(agent.ErrNoCampaignSelected))
	})
})
