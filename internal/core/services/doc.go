// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters): indexing, retrieval,
// context composition, question answering, pins and settings.
//
// Services are pure Go with no CGO or external dependencies.
package services
