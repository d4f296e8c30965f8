package post

import (
	"testing"

	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDraftFreezesButtons(t *testing.T) {
	d := &draft.Draft{
		Content: draft.Content{Kind: draft.KindText, Text: "Hola"},
		Buttons: []draft.Button{{Label: "Canal", URL: "https://t.me/canal"}},
	}

	s := FromDraft(d, "@canal")

	// later edits must not reach the frozen copy
	d.Buttons[0].Label = "changed"
	d.Content.Text = "changed"

	assert.Equal(t, "Hola", s.Text)
	assert.Equal(t, "Canal", s.Buttons[0].Label)
	assert.Equal(t, "@canal", s.Destination)
	assert.False(t, s.Empty())
}

func TestFromDraftNil(t *testing.T) {
	s := FromDraft(nil, "@canal")
	assert.Equal(t, draft.KindNone, s.Kind)
	assert.True(t, s.Empty())
}

func TestSendableVariants(t *testing.T) {
	for _, kind := range []draft.ContentKind{
		draft.KindPhoto, draft.KindVideo, draft.KindAudio, draft.KindVoice,
	} {
		body, err := sendable(Snapshot{Kind: kind, FileID: "f1", Text: "cap"})
		require.NoError(t, err, string(kind))
		require.NotNil(t, body)
	}

	body, err := sendable(Snapshot{Kind: draft.KindText, Text: "Hola"})
	require.NoError(t, err)
	assert.Equal(t, "Hola", body)

	_, err = sendable(Snapshot{Kind: draft.KindNone})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestKeyboardOneButtonPerRow(t *testing.T) {
	markup := Keyboard([]draft.Button{
		{Label: "A", URL: "https://a"},
		{Label: "B", URL: "https://b"},
	})
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "A", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "https://b", markup.InlineKeyboard[1][0].URL)

	assert.Nil(t, Keyboard(nil))
}
