package remote

import (
	"net/http"
	"testing"
	"time"
)

func TestNormalizeBaseURLTrimsTrailingSlashAndDefaults(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", defaultBaseURL},
		{"  ", defaultBaseURL},
		{"https://api.example.com/teams/", "https://api.example.com/teams"},
		{"https://api.example.com/teams", "https://api.example.com/teams"},
	}

	for _, c := range cases {
		if got := normalizeBaseURL(c.input); got != c.expected {
			t.Fatalf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestResolveHTTPClientUsesTimeout(t *testing.T) {
	client := resolveHTTPClient(nil, 3*time.Second)
	httpClient, ok := client.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", client)
	}
	if httpClient.Timeout != 3*time.Second {
		t.Fatalf("expected timeout 3s, got %s", httpClient.Timeout)
	}
}

func TestResolveHTTPClientUsesProvidedClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	client := resolveHTTPClient(custom, time.Second)
	if client != custom {
		t.Fatalf("expected provided client to be used")
	}
}

func TestIsSuccess(t *testing.T) {
	for status, want := range map[int]bool{200: true, 201: true, 204: true, 199: false, 301: false, 401: false, 500: false} {
		if got := isSuccess(status); got != want {
			t.Fatalf("status %d: expected %v", status, want)
		}
	}
}
