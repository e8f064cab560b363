// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.inkwell.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage (config.toml)
//   - PromptStore: user-editable prompt files (prompts/)
package file
