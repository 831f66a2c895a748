package config

import (
	"testing"
	"time"
)

func TestDeriveWSURL(t *testing.T) {
	cases := map[string]string{
		"https://api.example.test": "wss://api.example.test/ws",
		"http://localhost:5000":    "ws://localhost:5000/ws",
		"example.test":             "example.test/ws",
	}
	for base, want := range cases {
		if got := deriveWSURL(base); got != want {
			t.Fatalf("deriveWSURL(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestTimeoutFromEnv(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	if got := timeoutFromEnv("HTTP_TIMEOUT_SECONDS", 15*time.Second); got != 30*time.Second {
		t.Fatalf("got %v", got)
	}

	t.Setenv("HTTP_TIMEOUT_SECONDS", "not-a-number")
	if got := timeoutFromEnv("HTTP_TIMEOUT_SECONDS", 15*time.Second); got != 15*time.Second {
		t.Fatalf("invalid value should fall back, got %v", got)
	}

	if got := timeoutFromEnv("UNSET_KEY", 15*time.Second); got != 15*time.Second {
		t.Fatalf("unset key should fall back, got %v", got)
	}
}
