// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under ~/.supportbot.
//
// Adapters:
//   - ConfigStore: TOML-based settings storage
//   - PromptStore: user-editable fallback prompt templates
//   - PromptWatcher: reloads prompts when their files change
package file
