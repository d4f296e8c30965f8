package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JOHAALETRADER/Postbotjoha/internal/flow"
	"github.com/JOHAALETRADER/Postbotjoha/internal/locales"
)

func TestMenuLabelsResolveActions(t *testing.T) {
	require.NoError(t, locales.Init("es"))
	labels := menuLabels()

	assert.Equal(t, flow.ActionCreatePost, labels["📝 Crear publicación"])
	assert.Equal(t, flow.ActionPublishNow, labels["📤 Publicar ahora"])
	assert.Equal(t, flow.ActionCancel, labels["❌ Cancelar"])
	assert.Equal(t, flow.ActionBackToMenu, labels["⬅ Volver al menú"])
}

func TestMarkupForMenus(t *testing.T) {
	require.NoError(t, locales.Init("es"))

	main := markupFor(flow.MenuMain)
	require.NotNil(t, main)
	assert.Len(t, main.ReplyKeyboard, 4)
	assert.Equal(t, "📝 Crear publicación", main.ReplyKeyboard[0][0].Text)

	source := markupFor(flow.MenuButtonSource)
	require.NotNil(t, source)
	require.Len(t, source.InlineKeyboard, 3)
	assert.Equal(t, cbSource, source.InlineKeyboard[0][0].Unique)

	assert.Nil(t, markupFor(flow.MenuKeep))
}

func TestSourceActions(t *testing.T) {
	assert.Equal(t, flow.ActionUseDefaults, sourceActions[srcDefaults])
	assert.Equal(t, flow.ActionNewButtons, sourceActions[srcNew])
	assert.Equal(t, flow.ActionNoButtons, sourceActions[srcNone])
}
