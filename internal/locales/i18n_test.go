package locales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSpanishDefault(t *testing.T) {
	require.NoError(t, Init("es"))

	assert.Equal(t, "Publicación enviada al canal.", T("Published"))
	assert.Equal(t, "Acceso restringido.", T("AccessRestricted"))
}

func TestTemplateData(t *testing.T) {
	require.NoError(t, Init("es"))

	got := TD("InvalidButtonLine", map[string]interface{}{"Line": "malo"})
	assert.Contains(t, got, "malo")

	got = TD("Scheduled", map[string]interface{}{"Date": "03/12", "Time": "14:30"})
	assert.Equal(t, "Publicación programada para 03/12 a las 14:30.", got)
}

func TestEnglishSelection(t *testing.T) {
	require.NoError(t, Init("en"))
	assert.Equal(t, "Post sent to the channel.", T("Published"))
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	require.NoError(t, Init("zz-bogus"))
	assert.Equal(t, "Publicación enviada al canal.", T("Published"))
}

func TestMissingIDReturnsID(t *testing.T) {
	require.NoError(t, Init("es"))
	assert.Equal(t, "NoSuchMessage", T("NoSuchMessage"))
}
