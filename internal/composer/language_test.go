package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{
		"fr":    French,
		"fr-FR": French,
		" FR ":  French,
		"he":    Hebrew,
		"he-IL": Hebrew,
		"iw":    Hebrew,
	}
	for input, want := range cases {
		got, ok := ParseLanguage(input)
		require.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "en", "not a tag!"} {
		_, ok := ParseLanguage(input)
		assert.False(t, ok, input)
	}
}

func TestNegotiateLanguage(t *testing.T) {
	assert.Equal(t, Hebrew, NegotiateLanguage("he-IL,he;q=0.9,en;q=0.8"))
	assert.Equal(t, French, NegotiateLanguage("fr-CA,fr;q=0.9"))
	assert.Equal(t, French, NegotiateLanguage("de-DE"))
	assert.Equal(t, French, NegotiateLanguage(""))
}

func TestLanguageDirectionAndPlaceholder(t *testing.T) {
	assert.Equal(t, "ltr", French.Direction())
	assert.Equal(t, "rtl", Hebrew.Direction())
	assert.Equal(t, "Non renseigné", French.Placeholder())
	assert.Equal(t, "—", Hebrew.Placeholder())
	assert.Equal(t, "ltr", Language("xx").Direction(), "unknown languages fall back to the default")
}

func TestEmbeddedLabelsCoverEveryCatalogValue(t *testing.T) {
	for _, lang := range Languages {
		for _, c := range Categories {
			assert.NotEmpty(t, CategoryLabel(lang, c), "%s/%s", lang, c)
		}
		for _, w := range WritingTypes {
			assert.NotEmpty(t, WritingTypeLabel(lang, w), "%s/%s", lang, w)
		}
		for _, k := range PackageKinds {
			assert.NotEmpty(t, PackageLabel(lang, k), "%s/%s", lang, k)
		}
	}
}

func TestLoadLabelsRejectsIncompleteDictionary(t *testing.T) {
	_, err := loadLabels([]byte("fr:\n  direction: ltr\n"))
	assert.Error(t, err)

	_, err = loadLabels([]byte("::"))
	assert.Error(t, err)
}
