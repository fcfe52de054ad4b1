package domain

// Intent is a coarse conversational category detected by keyword pattern.
type Intent string

// Available intents.
const (
	IntentGreeting       Intent = "greeting"
	IntentHelp           Intent = "help"
	IntentFarewell       Intent = "farewell"
	IntentGratitude      Intent = "gratitude"
	IntentAcknowledgment Intent = "acknowledgment"
	IntentConfusion      Intent = "confusion"

	// IntentUnknown labels input that matched no rule. Its pool backs the
	// generic fallback stage.
	IntentUnknown Intent = "unknown"
)

// IsValid returns true if the intent is recognised.
func (i Intent) IsValid() bool {
	switch i {
	case IntentGreeting, IntentHelp, IntentFarewell, IntentGratitude,
		IntentAcknowledgment, IntentConfusion, IntentUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i Intent) String() string {
	return string(i)
}

// Description returns a human-readable label for the intent.
func (i Intent) Description() string {
	switch i {
	case IntentGreeting:
		return "Greeting"
	case IntentHelp:
		return "Help"
	case IntentFarewell:
		return "Farewell"
	case IntentGratitude:
		return "Gratitude"
	case IntentAcknowledgment:
		return "Acknowledgment"
	case IntentConfusion:
		return "Confusion"
	case IntentUnknown:
		return "Unknown"
	default:
		return unknownDescription
	}
}

// AllIntents returns every intent, including unknown, in default priority order.
func AllIntents() []Intent {
	return []Intent{
		IntentHelp,
		IntentGreeting,
		IntentFarewell,
		IntentGratitude,
		IntentAcknowledgment,
		IntentConfusion,
		IntentUnknown,
	}
}

// IntentRule lists the triggers for one intent.
// Triggers are compared after Normalise, so they may be written naturally.
type IntentRule struct {
	// Intent is the label produced when a trigger matches.
	Intent Intent

	// Exact triggers must equal the whole normalised input.
	Exact []string

	// Words triggers match a single whole token anywhere in the input.
	Words []string

	// Phrases triggers match a whole-word token sequence anywhere in the input.
	Phrases []string
}

// TriggerCount returns the total number of triggers in the rule.
func (r IntentRule) TriggerCount() int {
	return len(r.Exact) + len(r.Words) + len(r.Phrases)
}
