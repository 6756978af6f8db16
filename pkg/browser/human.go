package browser

import (
	"math/rand"
	"time"

	"github.com/go-rod/rod"
)

// Wait profile names. Each maps to a min/max pause range in seconds;
// the actual pause is drawn uniformly from the range to avoid a
// mechanical rhythm.
const (
	WaitShort     = "short"
	WaitMedium    = "medium"
	WaitLong      = "long"
	WaitPageLoad  = "page_load"
	WaitHumanLike = "human_like"
)

var waitProfiles = map[string][2]float64{
	WaitShort:     {1, 3},
	WaitMedium:    {2, 5},
	WaitLong:      {3, 7},
	WaitPageLoad:  {3, 6},
	WaitHumanLike: {0.5, 2},
}

// RandomWait sleeps for a random duration drawn from the named
// profile. Unknown profiles fall back to the short range.
func (s *Session) RandomWait(profile string) {
	bounds, ok := waitProfiles[profile]
	if !ok {
		bounds = waitProfiles[WaitShort]
	}
	seconds := bounds[0] + rand.Float64()*(bounds[1]-bounds[0])
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}

// Scroll scrolls a page vertically. amount is in pixels; zero picks a
// random amount between 300 and 700.
func (s *Session) Scroll(page *rod.Page, direction string, amount int) {
	if amount == 0 {
		amount = 300 + rand.Intn(401)
	}
	if direction == "up" {
		amount = -amount
	}

	if _, err := page.Eval(`(y) => window.scrollBy(0, y)`, amount); err != nil {
		s.logger.WithError(err).Debug("Scroll failed")
	}
	s.RandomWait(WaitHumanLike)
}

// IdleBrowse mimics a human skimming a page: a few downward scrolls,
// usually followed by scrolling part of the way back up.
func (s *Session) IdleBrowse(page *rod.Page) {
	downs := 2 + rand.Intn(4)
	for i := 0; i < downs; i++ {
		s.Scroll(page, "down", 0)
	}

	if rand.Float64() > 0.3 {
		ups := 1 + rand.Intn(3)
		for i := 0; i < ups; i++ {
			s.Scroll(page, "up", 0)
		}
	}
}
