// Package browser drives a single Chrome instance through Rod: one
// primary page for the airdrop listing, short-lived secondary tabs for
// external task actions, and bounded-timeout element lookups that
// degrade to a not-found result instead of failing the run.
package browser

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/sirupsen/logrus"
)

// Session owns the Chrome process and the primary page. All navigation
// and element lookups go through it.
type Session struct {
	cfg      *Config
	logger   *logrus.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// NewSession launches Chrome and opens the primary page. Callers must
// Close the session on every exit path.
func NewSession(cfg *Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	lnch := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-notifications").
		Set("start-maximized").
		Set("user-agent", cfg.UserAgent)

	controlURL, err := lnch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		lnch.Cleanup()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	var page *rod.Page
	if cfg.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		_ = b.Close()
		lnch.Cleanup()
		return nil, fmt.Errorf("open primary page: %w", err)
	}

	cfg.Logger.WithFields(logrus.Fields{
		"headless": cfg.Headless,
		"stealth":  cfg.Stealth,
	}).Info("Browser initialized")

	return &Session{
		cfg:      cfg,
		logger:   cfg.Logger,
		launcher: lnch,
		browser:  b,
		page:     page,
	}, nil
}

// Page returns the primary page.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Close shuts down the page, the browser, and the Chrome process.
func (s *Session) Close() {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.WithError(err).Warn("Error closing browser")
		}
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
	s.logger.Info("Browser closed")
}

// Navigate loads a URL on the primary page and waits for it to settle.
func (s *Session) Navigate(url string) error {
	s.logger.WithField("url", url).Info("Navigating")

	if err := s.page.Timeout(s.cfg.WaitTimeout).Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := s.page.Timeout(s.cfg.WaitTimeout).WaitLoad(); err != nil {
		s.logger.WithError(err).WithField("url", url).Warn("Page load wait timed out")
	}
	s.RandomWait(WaitPageLoad)
	return nil
}

// Element waits up to the configured timeout for an element on the
// primary page. Absence is reported as ok=false, never as a fault.
func (s *Session) Element(xpath string) (*rod.Element, bool) {
	return s.ElementWithin(s.cfg.WaitTimeout, xpath)
}

// ElementWithin is Element with an explicit timeout.
func (s *Session) ElementWithin(timeout time.Duration, xpath string) (*rod.Element, bool) {
	el, err := s.page.Timeout(timeout).ElementX(xpath)
	if err != nil {
		s.logger.WithError(err).WithField("xpath", xpath).Debug("Element not found")
		return nil, false
	}
	return el, true
}

// ElementOn waits for an element on an arbitrary page, typically a
// secondary tab.
func (s *Session) ElementOn(page *rod.Page, xpath string, timeout time.Duration) (*rod.Element, bool) {
	el, err := page.Timeout(timeout).ElementX(xpath)
	if err != nil {
		s.logger.WithError(err).WithField("xpath", xpath).Debug("Element not found on page")
		return nil, false
	}
	return el, true
}

// Elements waits for at least one match on the primary page and then
// returns the full set.
func (s *Session) Elements(xpath string) ([]*rod.Element, bool) {
	if _, ok := s.Element(xpath); !ok {
		return nil, false
	}
	els, err := s.page.ElementsX(xpath)
	if err != nil {
		s.logger.WithError(err).WithField("xpath", xpath).Warn("Element listing failed")
		return nil, false
	}
	return els, true
}

// Child resolves a relative XPath inside a scope element with the
// shorter lookup timeout.
func (s *Session) Child(scope *rod.Element, xpath string) (*rod.Element, bool) {
	el, err := scope.Timeout(s.cfg.LookupTimeout).ElementX(xpath)
	if err != nil {
		s.logger.WithError(err).WithField("xpath", xpath).Debug("Child element not found")
		return nil, false
	}
	return el, true
}

// Children resolves all matches of a relative XPath inside a scope
// element. An empty result is reported as ok=false.
func (s *Session) Children(scope *rod.Element, xpath string) ([]*rod.Element, bool) {
	els, err := scope.ElementsX(xpath)
	if err != nil {
		s.logger.WithError(err).WithField("xpath", xpath).Debug("Child listing failed")
		return nil, false
	}
	if len(els) == 0 {
		return nil, false
	}
	return els, true
}

// Click clicks an element and pauses briefly. Failures are absorbed
// into a false return.
func (s *Session) Click(el *rod.Element) bool {
	if el == nil {
		return false
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		s.logger.WithError(err).Error("Error clicking element")
		return false
	}
	s.RandomWait(WaitShort)
	return true
}

// Text extracts an element's text, degrading to the empty string.
func (s *Session) Text(el *rod.Element) string {
	if el == nil {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		s.logger.WithError(err).Debug("Could not read element text")
		return ""
	}
	return text
}

// Attribute extracts a named attribute, degrading to the empty string.
func (s *Session) Attribute(el *rod.Element, name string) string {
	if el == nil {
		return ""
	}
	value, err := el.Attribute(name)
	if err != nil || value == nil {
		return ""
	}
	return *value
}
