package tasks

import (
	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/browser"
	"github.com/lisanmuaddib/airdrop-go/pkg/selectors"
)

// baseTask carries the expand/verify skeleton shared by all
// strategies. Perform is what varies per task type.
type baseTask struct {
	session *browser.Session
	table   *selectors.Table
	logger  *logrus.Logger
}

// expand reveals a collapsed task's action controls. A missing expand
// control means the task is already expanded, not a failure.
func (b *baseTask) expand(task *rod.Element) bool {
	button, ok := b.session.Child(task, b.table.ExpandButton)
	if !ok {
		b.logger.Debug("No expand button found, task may already be expanded")
		return true
	}

	if !b.session.Click(button) {
		return false
	}
	b.logger.Info("Expanded task")
	return true
}

// verify checks for the completed marker and, when absent, falls back
// to clicking a confirm/verify/done control and re-checking. Absence
// of both marker and confirm control fails the verification.
func (b *baseTask) verify(task *rod.Element) bool {
	if _, ok := b.session.Child(task, b.table.CompletedMarker); ok {
		b.logger.Info("Task marked as completed")
		return true
	}
	b.logger.Warn("Task not marked as completed automatically")

	confirm, ok := b.session.Child(task, b.table.ConfirmButton)
	if !ok {
		b.logger.Warn("No confirmation button found")
		return false
	}

	if !b.session.Click(confirm) {
		return false
	}
	b.logger.Info("Clicked task confirmation button")
	b.session.RandomWait(browser.WaitShort)

	if _, ok := b.session.Child(task, b.table.CompletedMarker); ok {
		b.logger.Info("Completion marker appeared after confirmation")
	} else {
		b.logger.Warn("Completion marker still absent after confirmation")
	}
	return true
}
