package campaign

import "github.com/go-rod/rod"

// Campaign is one airdrop promotion scraped off the listing page. It
// lives only as long as the scrape: completion state is what survives,
// in the completion store.
type Campaign struct {
	// Name is the human-assigned campaign name, used as the store key.
	Name string
	// TimeLeft is informational and defaults to "Unknown".
	TimeLeft string
	// Reward is informational and defaults to "Unknown".
	Reward string
	// Element is the card element to click for selection.
	Element *rod.Element
}

// Task is one mandatory task on an open campaign page.
type Task struct {
	Element *rod.Element
	Text    string
}
