package domain

import (
	"strings"
	"unicode"
)

// sentenceLookback is how far back from the cut point TruncateAtSentence
// searches for a sentence boundary before falling back to a word break.
const sentenceLookback = 200

// TruncateAtSentence shortens text to at most limit bytes, cutting only
// at a sentence boundary: the last terminal punctuation mark followed by
// whitespace (or end of the scanned region) within the lookback window.
// When no sentence boundary is found it falls back to the last word
// boundary and appends an ellipsis. Text already within the limit is
// returned unchanged.
func TruncateAtSentence(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(text) <= limit {
		return text
	}

	cut := limit
	// Never split a UTF-8 sequence.
	for cut > 0 && !utf8Start(text[cut]) {
		cut--
	}

	floor := cut - sentenceLookback
	if floor < 0 {
		floor = 0
	}
	for i := cut - 1; i > floor; i-- {
		if !isTerminal(rune(text[i])) {
			continue
		}
		if i+1 >= cut || unicode.IsSpace(rune(text[i+1])) {
			return strings.TrimRight(text[:i+1], " \t\n")
		}
	}

	// No sentence boundary in the window: cut at a word boundary and
	// mark the truncation.
	if idx := strings.LastIndexFunc(text[:cut], unicode.IsSpace); idx > 0 {
		return strings.TrimRight(text[:idx], " \t\n") + "…"
	}
	return text[:cut] + "…"
}

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?':
		return true
	default:
		return false
	}
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}
