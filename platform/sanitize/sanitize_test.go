package sanitize

import "testing"

func TestTextStripsTagsAndTrims(t *testing.T) {
	got := Text("  <b>Mézouzot</b> pour la maison <script>x</script> ")
	if got != "Mézouzot pour la maison x" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestTextNormalizesToNFC(t *testing.T) {
	decomposed := "Je\u0301rusalem"
	if got := Text(decomposed); got != "J\u00e9rusalem" {
		t.Fatalf("expected NFC form, got %q", got)
	}
}

func TestTextFoldsCRLF(t *testing.T) {
	if got := Text("ligne 1\r\nligne 2"); got != "ligne 1\nligne 2" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestTextPtr(t *testing.T) {
	if TextPtr(nil) != nil {
		t.Fatalf("expected nil for nil input")
	}
	in := "<i>יוסי</i>"
	if got := TextPtr(&in); got == nil || *got != "יוסי" {
		t.Fatalf("unexpected result %v", got)
	}
}
