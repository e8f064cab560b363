// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - VocabularyStore: Term statistics and processed-entry persistence
//   - EntryStore: Entry persistence
//   - ChunkStore: Chunk persistence with full-scan capability
//   - Embedder: Corpus-statistics vector generation
//   - EntrySource: Supplies raw entries and change events
//   - NormaliserRegistry: Routes raw entries to format normalisers
//   - PostProcessorPipeline: Turns normalised entries into chunks
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Generator: Downstream text generation. Without it, ask falls back
//     to showing the composed context only.
//   - ConversationStore: Without it, the conversation tier is empty.
//   - PinStore / SelectionStore: Without them, those tiers are empty.
//   - PromptStore: Without it, embedded default prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
