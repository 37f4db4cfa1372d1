package whatsapp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merkaz_backend/internal/composer"
	"merkaz_backend/platform/apperr"
)

func newTestLinker(t *testing.T) *Linker {
	t.Helper()
	l, err := NewLinkerForPhone("972585360510")
	require.NoError(t, err)
	return l
}

func TestBuildDeepLinkFormat(t *testing.T) {
	l := newTestLinker(t)
	assert.Equal(t, "972585360510", l.Destination())
	assert.Equal(t, "https://wa.me/972585360510?text=Bonjour%20(STaM)%20!", l.BuildDeepLink("Bonjour (STaM) !"))
}

func TestNewLinkerNormalizesLocalNumbers(t *testing.T) {
	l, err := NewLinkerForPhone("058-536-0510")
	require.NoError(t, err)
	assert.Equal(t, "972585360510", l.Destination())

	_, err = NewLinkerForPhone("office")
	assert.Error(t, err)
}

func TestEncodeComponentMatchesBrowserEncoding(t *testing.T) {
	cases := map[string]string{
		"a b":            "a%20b",
		"a+b":            "a%2Bb",
		"-_.!~*'()":      "-_.!~*'()",
		"• Quantité : 2": "%E2%80%A2%20Quantit%C3%A9%20%3A%202",
		"line\nbreak":    "line%0Abreak",
		"&text=x#frag":   "%26text%3Dx%23frag",
		"סת״ם":           "%D7%A1%D7%AA%D7%B4%D7%9D",
	}
	for in, want := range cases {
		assert.Equal(t, want, EncodeComponent(in), in)
	}
}

func TestDeepLinkRoundTripsComposedMessages(t *testing.T) {
	l := newTestLinker(t)
	line, err := composer.NewProductLine(composer.CategoryKlaf, "1", &composer.WritingChoice{
		Type:   composer.WritingOther,
		Custom: "שיר המעלות + ״ברכת הבית״ (גרש ׳)",
	})
	require.NoError(t, err)
	sel := composer.Selection{
		Mode:    composer.ModeMulti,
		Items:   []composer.Line{line, composer.PackageLine{Options: composer.WeddingPackage{MezuzahCount: 4}}},
		Contact: composer.Contact{Name: "יוסי", City: "נתניה", Phone: "+972 50-123-4567", Details: "100% כשר & מהודר?"},
	}

	for _, lang := range composer.Languages {
		msg := composer.Compose(sel, lang)
		link := l.BuildDeepLink(msg)
		assert.NotContains(t, link, " ")
		assert.NotContains(t, link, "+")

		decoded, err := DecodeText(link)
		require.NoError(t, err)
		assert.Equal(t, msg, decoded, lang.String())
	}
}

func TestDecodeTextRejectsOtherHosts(t *testing.T) {
	_, err := DecodeText("https://example.com/972585360510?text=hi")
	assert.ErrorIs(t, err, ErrNotDeepLink)
}

func TestQRCodeProducesPNG(t *testing.T) {
	link := newTestLinker(t).BuildDeepLink(strings.Repeat("שלום ", 20))

	png, err := QRCode(link, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))

	small, err := QRCode(link, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, small)
}

func TestQRCodeFallsBackToLowRecovery(t *testing.T) {
	link := newTestLinker(t).BuildDeepLink(strings.Repeat("a", 2500))

	png, err := QRCode(link, DefaultQRSize)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestQRCodeRejectsLinksBeyondCapacity(t *testing.T) {
	link := newTestLinker(t).BuildDeepLink(strings.Repeat("שלום ", 150))

	_, err := QRCode(link, DefaultQRSize)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, MsgLinkTooLongForQR, err.Error())
}
