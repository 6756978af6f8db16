package store_test

import (
	"io"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/airdrop-go/pkg/store"
)

var _ = Describe("CompletionStore", func() {
	var (
		path   string
		logger *logrus.Logger
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "completed_airdrops.json")
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	})

	Describe("loading", func() {
		It("starts empty when the file is missing", func() {
			s := store.NewCompletionStore(path, logger)
			Expect(s.Len()).To(BeZero())
		})

		It("starts empty when the file is malformed", func() {
			Expect(os.WriteFile(path, []byte("{not json"), 0o644)).To(Succeed())

			s := store.NewCompletionStore(path, logger)
			Expect(s.Len()).To(BeZero())
		})
	})

	Describe("IsCompleted", func() {
		It("matches campaign names exactly and case-sensitively", func() {
			s := store.NewCompletionStore(path, logger)
			Expect(s.MarkCompleted("AlphaDrop", store.StatusSuccess)).To(Succeed())

			Expect(s.IsCompleted("AlphaDrop")).To(BeTrue())
			Expect(s.IsCompleted("alphadrop")).To(BeFalse())
			Expect(s.IsCompleted("AlphaDrop ")).To(BeFalse())
		})
	})

	Describe("MarkCompleted", func() {
		It("round-trips through a fresh load with a well-formed timestamp", func() {
			s := store.NewCompletionStore(path, logger)
			Expect(s.MarkCompleted("AlphaDrop", store.StatusSuccess)).To(Succeed())

			reloaded := store.NewCompletionStore(path, logger)
			rec, ok := reloaded.Get("AlphaDrop")
			Expect(ok).To(BeTrue())
			Expect(rec.Status).To(Equal(store.StatusSuccess))

			_, err := time.Parse("2006-01-02 15:04:05", rec.CompletedDate)
			Expect(err).NotTo(HaveOccurred())
		})

		It("overwrites rather than duplicates on repeat", func() {
			s := store.NewCompletionStore(path, logger)
			Expect(s.MarkCompleted("AlphaDrop", store.StatusSuccess)).To(Succeed())
			Expect(s.MarkCompleted("AlphaDrop", store.StatusPartial)).To(Succeed())

			reloaded := store.NewCompletionStore(path, logger)
			Expect(reloaded.Len()).To(Equal(1))

			rec, _ := reloaded.Get("AlphaDrop")
			Expect(rec.Status).To(Equal(store.StatusPartial))
		})

		It("creates the data directory when missing", func() {
			nested := filepath.Join(GinkgoT().TempDir(), "data", "completed_airdrops.json")
			s := store.NewCompletionStore(nested, logger)

			Expect(s.MarkCompleted("AlphaDrop", store.StatusSuccess)).To(Succeed())
			Expect(nested).To(BeAnExistingFile())
		})

		It("returns the persist error but keeps the in-memory record", func() {
			// A directory at the store path makes the rewrite fail.
			Expect(os.Mkdir(path, 0o755)).To(Succeed())

			s := store.NewCompletionStore(path, logger)
			Expect(s.MarkCompleted("AlphaDrop", store.StatusFailed)).NotTo(Succeed())
			Expect(s.IsCompleted("AlphaDrop")).To(BeTrue())
		})
	})
})
