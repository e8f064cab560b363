package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssistantReply_DirectJSON(t *testing.T) {
	raw := `{"answer":"You hiked the ridge trail.","mood":"calm","tags":["outdoors","hiking"]}`

	reply, err := ParseAssistantReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "You hiked the ridge trail.", reply.Answer)
	assert.Equal(t, "calm", reply.Mood)
	assert.Equal(t, []string{"outdoors", "hiking"}, reply.Tags)
}

func TestParseAssistantReply_PaddedJSON(t *testing.T) {
	raw := "\n\n  {\"answer\":\"Rest day.\"}  \n"

	reply, err := ParseAssistantReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "Rest day.", reply.Answer)
}

func TestParseAssistantReply_FencedBlock(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"answer\":\"Found it.\"}\n```\nLet me know if you need more."

	reply, err := ParseAssistantReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "Found it.", reply.Answer)
}

func TestParseAssistantReply_FencedBlockWithoutLanguage(t *testing.T) {
	raw := "```\n{\"answer\":\"ok\"}\n```"

	reply, err := ParseAssistantReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Answer)
}

func TestParseAssistantReply_ObjectWrappedInProse(t *testing.T) {
	raw := `Sure! The reply is {"answer": "You wrote about the garden."} as requested.`

	reply, err := ParseAssistantReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "You wrote about the garden.", reply.Answer)
}

func TestParseAssistantReply_EmptyOutput(t *testing.T) {
	_, err := ParseAssistantReply("   \n ")
	require.Error(t, err)

	var parseErr *ParseFailure
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "empty output", parseErr.Reason)
}

func TestParseAssistantReply_ProseOnly(t *testing.T) {
	_, err := ParseAssistantReply("I could not find anything relevant in the journal.")
	require.Error(t, err)

	var parseErr *ParseFailure
	require.ErrorAs(t, err, &parseErr)
	assert.NotEmpty(t, parseErr.Raw)
}

func TestParseAssistantReply_MissingAnswer(t *testing.T) {
	_, err := ParseAssistantReply(`{"mood":"calm","tags":["x"]}`)
	require.Error(t, err)

	var parseErr *ParseFailure
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseAssistantReply_BlankAnswer(t *testing.T) {
	_, err := ParseAssistantReply(`{"answer":"   "}`)
	require.Error(t, err)
}

func TestParseAssistantReply_RawPreviewBounded(t *testing.T) {
	_, err := ParseAssistantReply(strings.Repeat("x", 1000))
	require.Error(t, err)

	var parseErr *ParseFailure
	require.ErrorAs(t, err, &parseErr)
	assert.LessOrEqual(t, len([]rune(parseErr.Raw)), maxRawPreview)
}
