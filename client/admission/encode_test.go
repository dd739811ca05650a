package admission

import "testing"

func TestEncodeParams_EmptyMapIsEmptyString(t *testing.T) {
	if got := EncodeParams(nil); got != "" {
		t.Fatalf("expected empty string for nil map, got %q", got)
	}
	if got := EncodeParams(map[string]string{}); got != "" {
		t.Fatalf("expected empty string for empty map, got %q", got)
	}
}

func TestEncodeParams_SinglePair(t *testing.T) {
	if got := EncodeParams(map[string]string{"q": "go"}); got != "?q=go" {
		t.Fatalf("expected ?q=go, got %q", got)
	}
}

func TestEncodeParams_SortsKeys(t *testing.T) {
	got := EncodeParams(map[string]string{"b": "2", "a": "1", "c": "3"})
	if got != "?a=1&b=2&c=3" {
		t.Fatalf("expected sorted keys, got %q", got)
	}
}

func TestEncodeParams_EscapesKeysAndValues(t *testing.T) {
	got := EncodeParams(map[string]string{"nome completo": "joão & maria"})
	if got != "?nome+completo=jo%C3%A3o+%26+maria" {
		t.Fatalf("unexpected escaping: %q", got)
	}
}
