// Package campaign scrapes the airdrop listing page and picks which
// campaign to work on, skipping ones already recorded as completed.
package campaign

import (
	"strings"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/selectors"
	"github.com/lisanmuaddib/airdrop-go/pkg/store"
)

// pageDriver is the slice of the browser session the selection step
// needs once candidates are scraped.
type pageDriver interface {
	Click(el *rod.Element) bool
	RandomWait(profile string)
}

// Selector lists campaigns and resolves which one to open.
type Selector struct {
	session *browser.Session
	store   *store.CompletionStore
	table   *selectors.Table
	logger  *logrus.Logger
	driver  pageDriver
}

// NewSelector creates a Selector bound to a browser session.
func NewSelector(session *browser.Session, completions *store.CompletionStore, table *selectors.Table, logger *logrus.Logger) *Selector {
	return &Selector{
		session: session,
		store:   completions,
		table:   table,
		logger:  logger,
		driver:  session,
	}
}

// List scrapes every campaign card on the current page. A card without
// a readable name is skipped with a warning; time-left and reward
// degrade to "Unknown".
func (s *Selector) List() []Campaign {
	cards, ok := s.session.Elements(s.table.AirdropCards)
	if !ok {
		s.logger.Warn("No airdrop cards found on page")
		return nil
	}

	campaigns := make([]Campaign, 0, len(cards))
	for _, card := range cards {
		nameEl, ok := s.session.Child(card, s.table.CardName)
		if !ok {
			s.logger.Warn("Skipping airdrop card without a name")
			continue
		}
		name := strings.TrimSpace(s.session.Text(nameEl))
		if name == "" {
			s.logger.Warn("Skipping airdrop card with an empty name")
			continue
		}

		campaigns = append(campaigns, Campaign{
			Name:     name,
			TimeLeft: s.childText(card, s.table.CardTimeLeft),
			Reward:   s.childText(card, s.table.CardReward),
			Element:  card,
		})
	}

	s.logger.WithField("count", len(campaigns)).Info("Found available airdrops")
	return campaigns
}

func (s *Selector) childText(card *rod.Element, xpath string) string {
	el, ok := s.session.Child(card, xpath)
	if !ok {
		return "Unknown"
	}
	if text := strings.TrimSpace(s.session.Text(el)); text != "" {
		return text
	}
	return "Unknown"
}

// Select scrapes the listing and opens the campaign matching the
// requested name, or the first listed one. It returns ok=false when
// nothing is available, the resolved campaign is already completed,
// or the card click fails.
func (s *Selector) Select(requested string) (string, bool) {
	return s.selectFrom(s.List(), requested)
}

func (s *Selector) selectFrom(candidates []Campaign, requested string) (string, bool) {
	if len(candidates) == 0 {
		s.logger.Error("No airdrops available")
		return "", false
	}

	selected := s.resolve(candidates, requested)

	if s.store.IsCompleted(selected.Name) {
		s.logger.WithField("campaign", selected.Name).Info("Airdrop already completed, skipping")
		return "", false
	}

	if !s.driver.Click(selected.Element) {
		s.logger.WithField("campaign", selected.Name).Error("Error clicking on airdrop")
		return "", false
	}

	s.logger.WithField("campaign", selected.Name).Info("Selected airdrop")
	s.driver.RandomWait(browser.WaitMedium)
	return selected.Name, true
}

// resolve picks the candidate matching the requested name by
// case-insensitive substring, first match wins. An unmatched request
// falls back to the first listed candidate; the fallback overrides the
// explicit request, so it is logged as a warning.
func (s *Selector) resolve(candidates []Campaign, requested string) *Campaign {
	if requested != "" {
		lowered := strings.ToLower(requested)
		for i := range candidates {
			if strings.Contains(strings.ToLower(candidates[i].Name), lowered) {
				return &candidates[i]
			}
		}
		s.logger.WithField("requested", requested).
			Warn("Airdrop not found, selecting first available")
	}
	return &candidates[0]
}

// MandatoryTasks returns the mandatory task items on the currently
// open campaign page.
func (s *Selector) MandatoryTasks() []Task {
	items, ok := s.session.Elements(s.table.TaskItems)
	if !ok {
		s.logger.Warn("No mandatory tasks found on campaign page")
		return nil
	}

	tasks := make([]Task, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, Task{
			Element: item,
			Text:    s.session.Text(item),
		})
	}
	return tasks
}
