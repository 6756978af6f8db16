package tasks

import (
	"context"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"
)

// Strategy completes one kind of mandatory task. Complete never
// returns an error: every fault inside a task is absorbed into a
// false result so a broken task cannot abort the run.
type Strategy interface {
	// Name returns the unique identifier for this strategy
	Name() string
	// Complete expands, performs, and verifies a single task element
	Complete(ctx context.Context, task *rod.Element) bool
}

// capture runs one task step and converts any panic into a logged
// failure. No fault crosses a task boundary.
func capture(logger *logrus.Logger, name string, fn func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"strategy": name,
				"panic":    r,
			}).Error("Unexpected fault while completing task")
			ok = false
		}
	}()
	return fn()
}
