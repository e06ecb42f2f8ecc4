package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Alert(message string) error {
	return beeep.Alert("Mindly", message, "")
}

func FormatDailyPrompt(streak int) (string, string) {
	title := "Journal reminder"
	if streak > 0 {
		return title, fmt.Sprintf("You're on a %d-day streak. Write today's entry to keep it going.", streak)
	}
	return title, "Take a minute to jot down how today went."
}
