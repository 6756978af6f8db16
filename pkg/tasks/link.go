package tasks

import (
	"context"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/selectors"
)

// LinkTask is the generic strategy: click the task's first outbound
// link, browse the opened page like a human would, come back, verify.
// It covers visit-the-airdrop-page tasks and any link task without a
// dedicated strategy.
type LinkTask struct {
	baseTask
}

// NewLinkTask creates the generic link-following strategy.
func NewLinkTask(session *browser.Session, table *selectors.Table, logger *logrus.Logger) *LinkTask {
	return &LinkTask{
		baseTask: baseTask{
			session: session,
			table:   table,
			logger:  logger,
		},
	}
}

// Name returns the unique identifier for this strategy
func (t *LinkTask) Name() string {
	return "generic_link"
}

// Complete implements the Strategy interface
func (t *LinkTask) Complete(ctx context.Context, task *rod.Element) bool {
	return capture(t.logger, t.Name(), func() bool {
		return t.complete(ctx, task)
	})
}

func (t *LinkTask) complete(ctx context.Context, task *rod.Element) bool {
	if ctx.Err() != nil {
		return false
	}

	if !t.expand(task) {
		return false
	}

	links, ok := t.session.Children(task, t.table.ActionLinks)
	if !ok {
		t.logger.Warn("No action links found for this task")
		return false
	}

	if !t.session.Click(links[0]) {
		return false
	}
	t.logger.Info("Clicked task action link")

	if err := t.session.NewTabAction(func(tab *rod.Page) error {
		t.session.IdleBrowse(tab)
		return nil
	}); err != nil {
		t.logger.WithError(err).Warn("Secondary tab action failed")
	}

	return t.verify(task)
}
