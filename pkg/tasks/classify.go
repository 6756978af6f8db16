// Package tasks classifies a campaign's mandatory tasks and completes
// them through per-type strategies. The strategy set is closed: new
// task types are added here, not registered at runtime.
package tasks

import "strings"

// TaskType tags a mandatory task by the action it requires.
type TaskType string

const (
	// TaskTelegram asks the user to join a Telegram group.
	TaskTelegram TaskType = "telegram"
	// TaskVisit asks the user to visit the project's airdrop page.
	TaskVisit TaskType = "visit"
	// TaskUnknown is anything the classifier cannot place.
	TaskUnknown TaskType = "unknown"
)

// Classify maps a task's displayed text to its type. The comparison is
// case-insensitive and purely substring based.
//
// The telegram check runs first, so a text mentioning both telegram
// and the airdrop page classifies as telegram. Listing sites have not
// produced such a text yet; the order is kept as documented rather
// than second-guessed.
func Classify(text string) TaskType {
	text = strings.ToLower(text)

	switch {
	case strings.Contains(text, "telegram"):
		return TaskTelegram
	case strings.Contains(text, "visit") && strings.Contains(text, "airdrop page"):
		return TaskVisit
	default:
		return TaskUnknown
	}
}
