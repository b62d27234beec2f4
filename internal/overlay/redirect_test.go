package overlay

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
)

func TestRedirectRoundTrip(t *testing.T) {
	targets := []string{
		"https://example.com",
		"https://news.example.org/2025/03/article?id=42&ref=meme",
		"https://example.com/~path/with?q=a+b&x=%2F",
		"http://xn--bcher-kva.example/über",
	}
	for _, target := range targets {
		link := EncodeRedirect("https://memezzz.com/", target)
		u, err := url.Parse(link)
		if err != nil {
			t.Fatalf("bad link %q: %v", link, err)
		}
		if u.Path != RedirectPath {
			t.Errorf("path = %q", u.Path)
		}
		got, err := DecodeRedirect(u.Query().Get("url"))
		if err != nil {
			t.Fatalf("DecodeRedirect(%q): %v", target, err)
		}
		if got != target {
			t.Errorf("round trip = %q, want %q", got, target)
		}
	}
}

func TestDecodeRedirectRepairsSpaces(t *testing.T) {
	target := "https://example.com/?q=>>>"
	enc := base64.StdEncoding.EncodeToString([]byte(target))
	if !strings.Contains(enc, "+") {
		t.Fatalf("fixture %q has no '+'", enc)
	}
	got, err := DecodeRedirect(strings.ReplaceAll(enc, "+", " "))
	if err != nil || got != target {
		t.Errorf("DecodeRedirect() = %q, %v", got, err)
	}
}

func TestDecodeRedirectErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrNoURL},
		{"   ", ErrNoURL},
		{"%%%not-base64%%%", ErrInvalidBase},
		{base64.StdEncoding.EncodeToString([]byte("just some words")), ErrInvalidAfter},
		{base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd}), ErrInvalidBase},
	}
	for _, tt := range tests {
		if _, err := DecodeRedirect(tt.in); err != tt.want {
			t.Errorf("DecodeRedirect(%q) = %v, want %v", tt.in, err, tt.want)
		}
	}
	if ErrNoURL.Message != "No URL parameter provided" ||
		ErrInvalidBase.Message != "Invalid Base64 encoded URL" ||
		ErrInvalidAfter.Message != "Invalid URL format after decoding" {
		t.Error("user-facing messages changed")
	}
}
