package main

import (
	"os"
	"testing"

	"github.com/stormcast-dev/stormcast/internal/engine"
)

func TestOutcomeStatusClassifiesByError(t *testing.T) {
	cases := []struct {
		name string
		o    engine.SessionOutcome
		want string
	}{
		{"completed", engine.SessionOutcome{}, "completed"},
		{"timeout", engine.SessionOutcome{Err: "scenario exceeded its timeout"}, "timeout"},
		{"failed", engine.SessionOutcome{Err: "boom"}, "failed"},
	}
	for _, c := range cases {
		if got := outcomeStatus(c.o); got != c.want {
			t.Errorf("%s: outcomeStatus() = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestBearerFromConfigPrefersDescriptorToken(t *testing.T) {
	os.Setenv("STORMCAST_BEARER_TOKEN", "env-token")
	defer os.Unsetenv("STORMCAST_BEARER_TOKEN")

	got := bearerFromConfig(map[string]any{"bearer_token": "descriptor-token"})
	if got != "descriptor-token" {
		t.Errorf("bearerFromConfig() = %q, want %q", got, "descriptor-token")
	}
}

func TestBearerFromConfigFallsBackToEnv(t *testing.T) {
	os.Setenv("STORMCAST_BEARER_TOKEN", "env-token")
	defer os.Unsetenv("STORMCAST_BEARER_TOKEN")

	got := bearerFromConfig(map[string]any{})
	if got != "env-token" {
		t.Errorf("bearerFromConfig() = %q, want %q", got, "env-token")
	}
}
