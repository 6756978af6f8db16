// Package selectors holds the XPath lookup table for the airdrop
// listing sites. Selectors are configuration data, not logic: the
// compiled-in defaults target the common card/task markup, and a YAML
// file can override any of them per site without code changes.
package selectors

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table maps every named page lookup the automation performs to an
// XPath expression. Entries prefixed with ".//" are resolved relative
// to a card or task element, the rest against the whole document.
type Table struct {
	// Listing page
	AllAirdropsTab string `yaml:"all_airdrops_tab"`
	AirdropCards   string `yaml:"airdrop_cards"`
	CardName       string `yaml:"card_name"`
	CardTimeLeft   string `yaml:"card_time_left"`
	CardReward     string `yaml:"card_reward"`

	// Campaign page
	TaskItems    string `yaml:"task_items"`
	ExpandButton string `yaml:"expand_button"`

	// Task links, matched by href substring
	TelegramLink string `yaml:"telegram_link"`
	TwitterLink  string `yaml:"twitter_link"`
	DiscordLink  string `yaml:"discord_link"`
	YoutubeLink  string `yaml:"youtube_link"`
	ActionLinks  string `yaml:"action_links"`

	// External platform controls
	FollowButton    string `yaml:"follow_button"`
	SubscribeButton string `yaml:"subscribe_button"`
	JoinButton      string `yaml:"join_button"`

	// Verification
	CompletedMarker string `yaml:"completed_marker"`
	ConfirmButton   string `yaml:"confirm_button"`
}

// Default returns the built-in selector table.
func Default() *Table {
	return &Table{
		AllAirdropsTab: "//div[text()='All airdrops']",
		AirdropCards:   "//div[contains(@class, 'airdrop-card')]",
		CardName:       ".//div[contains(@class, 'airdrop-name')]",
		CardTimeLeft:   ".//div[contains(@class, 'time-left')]",
		CardReward:     ".//div[contains(@class, 'reward')]",

		TaskItems:    "//div[contains(@class, 'task-item') and contains(., '(Mandatory)')]",
		ExpandButton: ".//button[contains(@class, 'expand') or contains(@class, 'dropdown')]",

		TelegramLink: ".//a[contains(@href, 'telegram.org') or contains(@href, 't.me')]",
		TwitterLink:  ".//a[contains(@href, 'twitter.com') or contains(@href, 'x.com')]",
		DiscordLink:  ".//a[contains(@href, 'discord.com') or contains(@href, 'discord.gg')]",
		YoutubeLink:  ".//a[contains(@href, 'youtube.com')]",
		ActionLinks:  ".//a[starts-with(@href, 'http')]",

		FollowButton:    "//span[text()='Follow']",
		SubscribeButton: "//button[contains(@aria-label, 'Subscribe')]",
		JoinButton:      "//button[contains(., 'Join') or contains(., 'join')]",

		CompletedMarker: ".//div[contains(@class, 'completed') or contains(@class, 'check')]",
		ConfirmButton:   ".//button[contains(@class, 'confirm') or contains(., 'Verify') or contains(., 'Done')]",
	}
}

// Load reads a YAML override file on top of the defaults. Fields left
// empty in the file keep their default values.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selectors file: %w", err)
	}

	table := Default()
	if err := yaml.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("parse selectors file %s: %w", path, err)
	}
	return table, nil
}
