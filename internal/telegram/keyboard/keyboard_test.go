package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyButtons(t *testing.T) {
	markup := ReplyButtons(
		[]string{"📝 Crear publicación"},
		[]string{"🔗 Botones guardados", "⏰ Programar publicación"},
	)
	require.Len(t, markup.ReplyKeyboard, 2)
	assert.True(t, markup.ResizeKeyboard)
	assert.Equal(t, "📝 Crear publicación", markup.ReplyKeyboard[0][0].Text)
	require.Len(t, markup.ReplyKeyboard[1], 2)
}

func TestInlineButtonsOnePerRow(t *testing.T) {
	markup := InlineButtons([]InlineBtn{
		{Text: "Usar guardados", Unique: "src", Data: "defaults"},
		{Text: "Crear nuevos", Unique: "src", Data: "new"},
	})
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "Usar guardados", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "src", markup.InlineKeyboard[1][0].Unique)
}
