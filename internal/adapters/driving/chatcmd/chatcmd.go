// Package chatcmd holds the session commands and fixed texts shared by the
// line REPL and the TUI. The core never sees these commands.
package chatcmd

import (
	"fmt"
	"strings"
)

// Command is a session command typed in place of a question.
type Command int

// Recognised commands.
const (
	// None means the line is a question for the agent.
	None Command = iota
	// Help shows the welcome text.
	Help
	// Examples lists example questions.
	Examples
	// Quit prints the conversation summary and ends the session.
	Quit
)

// SummaryLines is how many history lines the exit summary shows.
const SummaryLines = 5

var commandWords = map[string]Command{
	"/help":     Help,
	"help":      Help,
	"/examples": Examples,
	"/example":  Examples,
	"examples":  Examples,
	"/quit":     Quit,
	"/exit":     Quit,
	"quit":      Quit,
	"exit":      Quit,
}

// Parse returns the command a line names, or None.
// Matching ignores case and surrounding whitespace.
func Parse(line string) Command {
	return commandWords[strings.ToLower(strings.TrimSpace(line))]
}

// String returns the command's canonical spelling.
func (c Command) String() string {
	switch c {
	case Help:
		return "/help"
	case Examples:
		return "/examples"
	case Quit:
		return "/quit"
	default:
		return ""
	}
}

// Welcome is shown at startup and on /help.
const Welcome = `Welcome to Thoughtful AI Support!

I can help you with questions about:
  • EVA (Eligibility Verification Agent)
  • CAM (Claims Processing Agent)
  • PHIL (Payment Posting Agent)
  • General questions about Thoughtful AI

Commands:
  • Type your question and press Enter
  • Type /quit or /exit to exit
  • Type /help to see this message again
  • Type /examples to see example questions`

// Goodbye is printed after the exit summary.
const Goodbye = "Thank you for using Thoughtful AI Support. Goodbye!"

// FormatExamples renders example questions as a bulleted list.
func FormatExamples(examples []string) string {
	var b strings.Builder
	b.WriteString("Try asking me:\n")
	for _, ex := range examples {
		fmt.Fprintf(&b, "\n  • %s", ex)
	}
	return b.String()
}

// FormatSummary renders the exit summary. It is empty when nothing was asked.
func FormatSummary(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Conversation Summary")
	for _, line := range lines {
		fmt.Fprintf(&b, "\n  • %s", line)
	}
	return b.String()
}
