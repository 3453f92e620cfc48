package hooks

import (
	"fmt"
	"math/rand"
)

// GenericWaitingMessage is the agent runtime's idle prompt. It arrives so
// often that announcing it would be noise, so the notification hook skips
// speech for it.
const GenericWaitingMessage = "Claude is waiting for your input"

const (
	// personalizedChance is the probability a notification includes the
	// engineer's name.
	personalizedChance = 0.3

	// llmMessageChance is the probability the stop hook asks an LLM for
	// an original completion message instead of a canned one.
	llmMessageChance = 0.05
)

// baseNotificationMessage is announced when the agent needs input.
const baseNotificationMessage = "Your agent needs your input"

// completionMessages are the canned stop announcements.
var completionMessages = []string{
	"Work complete!",
	"All done!",
	"Task finished!",
	"Job complete!",
	"Ready for next task!",
	"Mission accomplished!",
	"Task complete!",
	"Finished successfully!",
	"All set!",
	"Done and dusted!",
	"Wrapped up!",
	"Job well done!",
	"That's a wrap!",
	"Successfully completed!",
	"All finished!",
	"Task accomplished!",
	"Good to go!",
	"Completed successfully!",
	"Everything's done!",
	"Ready when you are!",
}

// CompletionMessages returns the canned completion announcements.
func CompletionMessages() []string {
	out := make([]string, len(completionMessages))
	copy(out, completionMessages)
	return out
}

// PickCompletion returns a random canned completion message.
func PickCompletion(rng *rand.Rand) string {
	return completionMessages[rng.Intn(len(completionMessages))]
}

// NotificationMessage returns the message announced when the agent needs
// input. When a display name is configured there is a 30% chance the
// message is personalized with it.
func NotificationMessage(rng *rand.Rand, name string) (msg string, personalized bool) {
	if name != "" && rng.Float64() < personalizedChance {
		return fmt.Sprintf("%s, your agent needs your input", name), true
	}
	return baseNotificationMessage, false
}

// AllMessages returns every message the hooks may announce, for cache
// warming. The personalized variant is included when a name is configured.
func AllMessages(name string) []string {
	msgs := []string{baseNotificationMessage}
	if name != "" {
		msgs = append(msgs, fmt.Sprintf("%s, your agent needs your input", name))
	}
	return append(msgs, CompletionMessages()...)
}
