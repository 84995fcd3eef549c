package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallbackRoundTrip(t *testing.T) {
	data, err := ParseCallback(EncodeCallback(ActionAnswer, ValueYes))
	require.NoError(t, err)
	assert.Equal(t, ActionAnswer, data.Action)
	assert.Equal(t, ValueYes, data.Value)
}

func TestParseCallbackKeepsColonsInValue(t *testing.T) {
	data, err := ParseCallback("action:start_dialog:extra")
	require.NoError(t, err)
	assert.Equal(t, "action", data.Action)
	assert.Equal(t, "start_dialog:extra", data.Value)
}

func TestParseCallbackInvalid(t *testing.T) {
	_, err := ParseCallback("no-separator")
	assert.Error(t, err)
}

func TestAnswerKeyboardCallbacks(t *testing.T) {
	kb := NewBuilder().AnswerKeyboard()

	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "answer:yes", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "answer:no", *kb.InlineKeyboard[0][1].CallbackData)
}

func TestDownloadKeyboardCallbacks(t *testing.T) {
	kb := NewBuilder().DownloadKeyboard()

	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 3)
	assert.Equal(t, "dl:markdown", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "dl:pdf", *kb.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "dl:docx", *kb.InlineKeyboard[0][2].CallbackData)
}
