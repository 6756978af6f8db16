package campaign

import (
	"io"
	"path/filepath"

	"github.com/go-rod/rod"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/store"
)

// fakeDriver records clicks and waits so selection can be exercised
// without a live page.
type fakeDriver struct {
	clickOK bool
	clicks  int
	waits   []string
}

func (d *fakeDriver) Click(el *rod.Element) bool {
	d.clicks++
	return d.clickOK
}

func (d *fakeDriver) RandomWait(profile string) {
	d.waits = append(d.waits, profile)
}

var _ = Describe("Selector", func() {
	var (
		completions *store.CompletionStore
		driver      *fakeDriver
		sel         *Selector
	)

	newCandidates := func(names ...string) []Campaign {
		campaigns := make([]Campaign, 0, len(names))
		for _, name := range names {
			campaigns = append(campaigns, Campaign{Name: name})
		}
		return campaigns
	}

	BeforeEach(func() {
		logger := logrus.New()
		logger.SetOutput(io.Discard)

		completions = store.NewCompletionStore(
			filepath.Join(GinkgoT().TempDir(), "completed_airdrops.json"), logger)
		driver = &fakeDriver{clickOK: true}
		sel = &Selector{
			store:  completions,
			logger: logger,
			driver: driver,
		}
	})

	It("fails when no campaigns are listed", func() {
		name, ok := sel.selectFrom(nil, "")
		Expect(ok).To(BeFalse())
		Expect(name).To(BeEmpty())
		Expect(driver.clicks).To(BeZero())
	})

	It("matches the requested name by case-insensitive substring", func() {
		name, ok := sel.selectFrom(newCandidates("Beta Protocol", "Gamma Chain"), "gam")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("Gamma Chain"))
	})

	It("falls back to the first candidate when the request matches nothing", func() {
		name, ok := sel.selectFrom(newCandidates("Beta Protocol", "Gamma Chain"), "zeta")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("Beta Protocol"))
	})

	It("picks the first candidate when no name is requested", func() {
		name, ok := sel.selectFrom(newCandidates("Beta Protocol", "Gamma Chain"), "")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("Beta Protocol"))
	})

	It("skips a campaign already recorded as completed", func() {
		Expect(completions.MarkCompleted("Beta Protocol", store.StatusSuccess)).To(Succeed())

		name, ok := sel.selectFrom(newCandidates("Beta Protocol", "Gamma Chain"), "beta")
		Expect(ok).To(BeFalse())
		Expect(name).To(BeEmpty())
		Expect(driver.clicks).To(BeZero())
	})

	It("fails when the card click fails", func() {
		driver.clickOK = false

		_, ok := sel.selectFrom(newCandidates("Beta Protocol"), "")
		Expect(ok).To(BeFalse())
		Expect(driver.clicks).To(Equal(1))
	})

	It("pauses after a successful selection", func() {
		_, ok := sel.selectFrom(newCandidates("Beta Protocol"), "")
		Expect(ok).To(BeTrue())
		Expect(driver.waits).To(ConsistOf(browser.WaitMedium))
	})
})
