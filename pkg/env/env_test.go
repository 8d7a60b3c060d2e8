package env

import "testing"

func TestGetFallsBackWhenUnset(t *testing.T) {
	if got := Get("STOCKDECK_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("STOCKDECK_TEST_UNSET", "set")
	if got := Get("STOCKDECK_TEST_UNSET", "fallback"); got != "set" {
		t.Fatalf("expected set value, got %q", got)
	}
}

func TestIsIgnoresCase(t *testing.T) {
	t.Setenv("LOG_FORMAT", "Console")
	if !Is("LOG_FORMAT", "console") {
		t.Fatal("expected case-insensitive match")
	}
	if Is("LOG_FORMAT", "json") {
		t.Fatal("expected mismatch for different value")
	}
}
