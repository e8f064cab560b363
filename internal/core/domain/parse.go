package domain

import (
	"encoding/json"
	"regexp"
	"strings"
)

// maxRawPreview bounds how much unparseable output is carried in a
// ParseFailure for diagnostics.
const maxRawPreview = 200

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ParseAssistantReply maps raw generation output onto the assistant
// result schema. Accepted encodings, tried in order:
//
//  1. the whole output as a JSON object
//  2. a fenced ```json code block
//  3. the outermost {...} slice of the output
//
// A decode only counts when it yields a non-empty answer. Output that
// matches none of the encodings produces a *ParseFailure rather than
// an empty reply.
func ParseAssistantReply(raw string) (AssistantReply, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AssistantReply{}, &ParseFailure{Reason: "empty output"}
	}

	if reply, ok := tryDecodeReply(trimmed); ok {
		return reply, nil
	}

	if block := fencedBlock(trimmed); block != "" {
		if reply, ok := tryDecodeReply(block); ok {
			return reply, nil
		}
	}

	if slice := braceSlice(trimmed); slice != "" {
		if reply, ok := tryDecodeReply(slice); ok {
			return reply, nil
		}
	}

	return AssistantReply{}, &ParseFailure{
		Reason: "output is not a JSON object, a fenced JSON block, or an embedded object with an answer",
		Raw:    rawPreview(trimmed),
	}
}

// tryDecodeReply attempts one JSON decode and rejects replies without
// an answer.
func tryDecodeReply(s string) (AssistantReply, bool) {
	var reply AssistantReply
	if err := json.Unmarshal([]byte(s), &reply); err != nil {
		return AssistantReply{}, false
	}
	if strings.TrimSpace(reply.Answer) == "" {
		return AssistantReply{}, false
	}
	return reply, true
}

// fencedBlock extracts the first fenced JSON code block, if any.
func fencedBlock(s string) string {
	m := fencedBlockRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// braceSlice slices from the first opening brace to the last closing
// brace, catching objects wrapped in prose.
func braceSlice(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// rawPreview returns a rune-bounded prefix of s.
func rawPreview(s string) string {
	runes := []rune(s)
	if len(runes) <= maxRawPreview {
		return s
	}
	return string(runes[:maxRawPreview])
}
