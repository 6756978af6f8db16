package tasks

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/llm"
	"github.com/lisanmuaddib/airdrop-go/pkg/selectors"
)

// joinButtonWait bounds the informational join-button lookup on the
// Telegram page.
const joinButtonWait = 5 * time.Second

// TelegramTask handles join-a-Telegram-group tasks. Telegram's
// anti-automation measures make a scripted join unreliable, so the
// join itself is left to the operator: the strategy opens the group,
// logs what it sees (including advisory text about the group), and
// reports whether the listing site registered completion.
type TelegramTask struct {
	baseTask
	advisor  *llm.Advisor
	username string
}

// NewTelegramTask creates the Telegram strategy. The configured
// TELEGRAM_USERNAME is only ever logged, never typed into a page.
func NewTelegramTask(session *browser.Session, table *selectors.Table, logger *logrus.Logger, advisor *llm.Advisor) *TelegramTask {
	return &TelegramTask{
		baseTask: baseTask{
			session: session,
			table:   table,
			logger:  logger,
		},
		advisor:  advisor,
		username: os.Getenv("TELEGRAM_USERNAME"),
	}
}

// Name returns the unique identifier for this strategy
func (t *TelegramTask) Name() string {
	return "telegram"
}

// Complete implements the Strategy interface
func (t *TelegramTask) Complete(ctx context.Context, task *rod.Element) bool {
	return capture(t.logger, t.Name(), func() bool {
		return t.complete(ctx, task)
	})
}

func (t *TelegramTask) complete(ctx context.Context, task *rod.Element) bool {
	if !t.expand(task) {
		return false
	}

	link, ok := t.session.Child(task, t.table.TelegramLink)
	if !ok {
		t.logger.Warn("No Telegram link found in task")
		return false
	}

	groupURL := t.session.Attribute(link, "href")

	// Informational only; a failed advisory call must not stop the task.
	info := t.advisor.Describe(ctx, fmt.Sprintf(
		"Analyze this Telegram group link: %s. What is this group about? "+
			"Is it related to a cryptocurrency project? What should I expect when joining?",
		groupURL,
	))
	t.logger.WithFields(logrus.Fields{
		"telegram_url": groupURL,
		"advisory":     info,
	}).Info("Telegram group info")

	if !t.session.Click(link) {
		return false
	}

	if err := t.session.NewTabAction(func(tab *rod.Page) error {
		t.logger.WithField("telegram_url", groupURL).
			Info("Manual action required: join the Telegram group")

		t.checkLogin(tab)

		if _, ok := t.session.ElementOn(tab, t.table.JoinButton, joinButtonWait); ok {
			t.logger.Info("Join button found on Telegram page")
		} else {
			t.logger.Info("No join button found, login may be required first")
		}

		t.session.IdleBrowse(tab)
		return nil
	}); err != nil {
		t.logger.WithError(err).Warn("Secondary tab action failed")
	}

	return t.verify(task)
}

// checkLogin logs the configured account when the Telegram page asks
// for a login. Credentials are never entered automatically.
func (t *TelegramTask) checkLogin(tab *rod.Page) {
	pageURL := ""
	if info, err := tab.Info(); err == nil {
		pageURL = info.URL
	}

	html, err := tab.HTML()
	if err != nil {
		t.logger.WithError(err).Debug("Could not read Telegram page content")
	}

	if strings.Contains(strings.ToLower(pageURL), "login") || strings.Contains(html, "Login") {
		t.logger.WithField("telegram_username", t.username).
			Info("Login required, use the configured Telegram account")
	}
}
