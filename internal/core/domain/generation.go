package domain

import "fmt"

// GenerationRequest carries one call to the downstream generation
// endpoint. The endpoint is opaque to the core: it receives the
// assembled context and the raw query, nothing more.
type GenerationRequest struct {
	// System is the instruction preamble.
	System string

	// Context is the rendered, budget-bounded context string.
	Context string

	// Query is the raw user query.
	Query string
}

// AssistantReply is the strongly-typed result schema expected from the
// generation endpoint. The model is asked to answer as a JSON object;
// a single tolerant parser maps raw output onto this struct.
type AssistantReply struct {
	// Answer is the generated answer text.
	Answer string `json:"answer"`

	// Mood is an optional one-word tone read on the underlying entries.
	Mood string `json:"mood,omitempty"`

	// Tags are optional topic labels for the answer.
	Tags []string `json:"tags,omitempty"`
}

// ParseFailure reports that raw generation output matched none of the
// accepted result encodings. It is returned instead of silently
// substituting empty fields.
type ParseFailure struct {
	// Reason describes which decodings were attempted and failed.
	Reason string

	// Raw is a bounded prefix of the unparseable output.
	Raw string
}

// Error implements the error interface.
func (p *ParseFailure) Error() string {
	return fmt.Sprintf("unparseable generation result: %s", p.Reason)
}

// AskResult is the outcome of one end-to-end assistant request.
// Exactly one of the completion paths produced it.
type AskResult struct {
	// Reply is the parsed answer. When Fallback is set, Reply.Answer
	// carries the structured "no answer available" text.
	Reply AssistantReply

	// Context is the composed context the answer was grounded on.
	Context ComposedContext

	// Completion records which terminal state the request reached.
	Completion CompletionState

	// Fallback is set when generation failed or timed out and the
	// answer is the structured fallback rather than model output.
	Fallback bool

	// FallbackReason explains the fallback, empty otherwise.
	FallbackReason string
}

// NoAnswerFallback is the structured reply used when the generation
// endpoint fails or times out. The request still completes normally.
func NoAnswerFallback(reason string) AssistantReply {
	return AssistantReply{
		Answer: "No answer is available right now. The journal context was prepared, but the generation step did not complete (" + reason + ").",
	}
}
