package selectors_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lisanmuaddib/airdrop-go/pkg/selectors"
)

var _ = Describe("Table", func() {
	Describe("Default", func() {
		It("fills every lookup", func() {
			table := selectors.Default()

			Expect(table.AirdropCards).NotTo(BeEmpty())
			Expect(table.CardName).NotTo(BeEmpty())
			Expect(table.TaskItems).NotTo(BeEmpty())
			Expect(table.TelegramLink).NotTo(BeEmpty())
			Expect(table.ActionLinks).NotTo(BeEmpty())
			Expect(table.CompletedMarker).NotTo(BeEmpty())
			Expect(table.ConfirmButton).NotTo(BeEmpty())
		})
	})

	Describe("Load", func() {
		It("overrides only the fields present in the file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "selectors.yaml")
			override := "airdrop_cards: \"//li[@class='drop']\"\ncard_name: \".//h3\"\n"
			Expect(os.WriteFile(path, []byte(override), 0o644)).To(Succeed())

			table, err := selectors.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(table.AirdropCards).To(Equal("//li[@class='drop']"))
			Expect(table.CardName).To(Equal(".//h3"))
			Expect(table.TaskItems).To(Equal(selectors.Default().TaskItems))
			Expect(table.TelegramLink).To(Equal(selectors.Default().TelegramLink))
		})

		It("fails on a missing file", func() {
			_, err := selectors.Load(filepath.Join(GinkgoT().TempDir(), "absent.yaml"))
			Expect(err).To(HaveOccurred())
		})

		It("fails on malformed YAML", func() {
			path := filepath.Join(GinkgoT().TempDir(), "selectors.yaml")
			Expect(os.WriteFile(path, []byte("airdrop_cards: [unterminated"), 0o644)).To(Succeed())

			_, err := selectors.Load(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
