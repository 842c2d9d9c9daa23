package service

import (
	"testing"
	"unicode/utf8"
)

func TestTruncateWithEllipsis(t *testing.T) {
	ts := NewTextService()

	short := "Samsung Galaxy A54"
	if got := ts.TruncateWithEllipsis(short, 44); got != short {
		t.Fatalf("short input changed: %q", got)
	}

	long := "Xiaomi Redmi Note 13 Pro Plus 5G 12GB 512GB Çift Hatlı Özel Sürüm"
	got := ts.TruncateWithEllipsis(long, 44)
	if n := utf8.RuneCountInString(got); n > 44 {
		t.Fatalf("expected at most 44 runes, got %d (%q)", n, got)
	}
	if r, _ := utf8.DecodeLastRuneInString(got); r != '…' {
		t.Fatalf("expected trailing ellipsis, got %q", got)
	}
}

func TestClearDescription(t *testing.T) {
	ts := NewTextService()
	in := "<p>6.1&quot; <b>OLED</b> ekran</p>\n see https://example.com/x  now"
	want := `6.1" OLED ekran see now`
	if got := ts.ClearDescription(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFirstWords(t *testing.T) {
	ts := NewTextService()
	if got := ts.FirstWords("  a b  c d e f g ", 5); got != "a b c d e" {
		t.Fatalf("got %q", got)
	}
	if got := ts.Truncate("çğüşöı", 3); got != "çğü" {
		t.Fatalf("got %q", got)
	}
}
