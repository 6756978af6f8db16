package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// unavailablePrefix starts every placeholder returned when the
// advisory call fails.
const unavailablePrefix = "AI assistance unavailable"

// AdvisorOptions configures advisory text generation.
type AdvisorOptions struct {
	// MaxTokens caps the response length. Advisory blurbs are short.
	MaxTokens int
	// MinInterval is the minimum spacing between calls to the model.
	MinInterval time.Duration
}

// Advisor produces short informational blurbs about task targets. A
// failing model never fails the caller: every error degrades to a
// logged placeholder string.
type Advisor struct {
	model   LLM
	logger  *logrus.Logger
	limiter *rate.Limiter
	options AdvisorOptions
}

// NewAdvisor creates an Advisor over the given model.
func NewAdvisor(model LLM, logger *logrus.Logger, options AdvisorOptions) *Advisor {
	if options.MaxTokens == 0 {
		options.MaxTokens = 150
	}
	if options.MinInterval == 0 {
		options.MinInterval = 5 * time.Second
	}

	return &Advisor{
		model:   model,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(options.MinInterval), 1),
		options: options,
	}
}

// Describe asks the model about the prompt and returns its answer, or
// a placeholder when the call cannot be made or fails.
func (a *Advisor) Describe(ctx context.Context, prompt string) string {
	if a.model == nil {
		return unavailablePrefix + ": no model configured"
	}

	if err := a.limiter.Wait(ctx); err != nil {
		a.logger.WithError(err).Warn("Advisory call canceled while rate limited")
		return unavailablePrefix + ": " + err.Error()
	}

	text, err := a.model.Generate(ctx, prompt, WithMaxTokens(a.options.MaxTokens))
	if err != nil {
		a.logger.WithError(err).Error("Error getting advisory text")
		return unavailablePrefix + ": " + err.Error()
	}
	return text
}
