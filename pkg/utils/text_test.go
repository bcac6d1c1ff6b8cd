package utils

import "testing"

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("hello", 10); got != "hello" {
		t.Errorf("short string changed: %q", got)
	}
	if got := TruncateRunes("hello world", 5); got != "hello..." {
		t.Errorf("truncated = %q, want %q", got, "hello...")
	}
	if got := TruncateRunes("héllo wörld", 5); got != "héllo..." {
		t.Errorf("multibyte truncated = %q, want %q", got, "héllo...")
	}
	if got := TruncateRunes("abc", 0); got != "abc" {
		t.Errorf("max=0 should be a no-op, got %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{true, false} {
		logger, err := NewLogger(debug)
		if err != nil {
			t.Fatalf("NewLogger(%v) error: %v", debug, err)
		}
		if logger == nil {
			t.Fatalf("NewLogger(%v) returned nil logger", debug)
		}
		_ = logger.Sync()
	}
}
