package utils

import (
	"reflect"
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}

func TestNormalizeText(t *testing.T) {
	if got := NormalizeText("  How do I   SECURE my UPI? "); got != "how do i secure my upi?" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeText(""); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("How can I make my UPI account more secure?")
	want := []string{"account", "make", "more", "secure", "upi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractKeywords_DropsShortAndStopwords(t *testing.T) {
	got := ExtractKeywords("is it to do or be")
	if len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
}
