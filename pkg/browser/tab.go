package browser

import (
	"errors"
	"fmt"

	"github.com/go-rod/rod"
)

// ErrNoSecondaryTab is returned by NewTabAction when the preceding
// click did not open a new browsing context.
var ErrNoSecondaryTab = errors.New("no secondary tab was opened")

// NewTabAction runs fn against the tab that a just-clicked link opened
// and guarantees the tab is closed and focus returned to the primary
// page on every exit path, including a panic inside fn. A secondary
// context must never outlive the action.
func (s *Session) NewTabAction(fn func(tab *rod.Page) error) (err error) {
	pages, perr := s.browser.Pages()
	if perr != nil {
		return fmt.Errorf("list open tabs: %w", perr)
	}

	var tab *rod.Page
	for _, p := range pages {
		if p.TargetID != s.page.TargetID {
			tab = p
			break
		}
	}
	if tab == nil {
		s.logger.Warn("No new tab was opened")
		return ErrNoSecondaryTab
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("secondary tab action panicked: %v", r)
			s.logger.WithField("panic", r).Error("Fault inside secondary tab")
		}
		if cerr := tab.Close(); cerr != nil {
			s.logger.WithError(cerr).Warn("Failed to close secondary tab")
		}
		if _, aerr := s.page.Activate(); aerr != nil {
			s.logger.WithError(aerr).Warn("Failed to refocus primary tab")
		}
	}()

	if err := tab.Timeout(s.cfg.WaitTimeout).WaitLoad(); err != nil {
		s.logger.WithError(err).Debug("Secondary tab load wait timed out")
	}
	return fn(tab)
}
