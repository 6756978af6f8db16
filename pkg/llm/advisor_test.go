package llm_test

import (
	"context"
	"errors"
	"io"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/llm"
)

// stubLLM answers every prompt with a fixed response or error.
type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

var _ = Describe("Advisor", func() {
	var logger *logrus.Logger

	BeforeEach(func() {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	})

	It("returns the model's text on success", func() {
		advisor := llm.NewAdvisor(&stubLLM{response: "A promising DeFi project."}, logger, llm.AdvisorOptions{})

		Expect(advisor.Describe(context.Background(), "Tell me about X")).
			To(Equal("A promising DeFi project."))
	})

	It("degrades to a placeholder when the model errors", func() {
		advisor := llm.NewAdvisor(&stubLLM{err: errors.New("rate limit exceeded")}, logger, llm.AdvisorOptions{})

		text := advisor.Describe(context.Background(), "Tell me about X")
		Expect(text).To(HavePrefix("AI assistance unavailable"))
		Expect(text).To(ContainSubstring("rate limit exceeded"))
	})

	It("degrades to a placeholder when no model is configured", func() {
		advisor := llm.NewAdvisor(nil, logger, llm.AdvisorOptions{})

		Expect(advisor.Describe(context.Background(), "Tell me about X")).
			To(HavePrefix("AI assistance unavailable"))
	})

	It("degrades to a placeholder when canceled while rate limited", func() {
		advisor := llm.NewAdvisor(&stubLLM{response: "ok"}, logger, llm.AdvisorOptions{
			MinInterval: time.Hour,
		})

		// First call consumes the only token.
		Expect(advisor.Describe(context.Background(), "first")).To(Equal("ok"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(advisor.Describe(ctx, "second")).To(HavePrefix("AI assistance unavailable"))
	})
})
