package transport

import (
	"context"
	"testing"
)

type fakeWSClient struct {
	gotURL string
}

func (f *fakeWSClient) Connect(ctx context.Context, url string) (WSConn, error) {
	f.gotURL = url
	return nil, nil
}

func TestWithBaseURLResolvesRelativePath(t *testing.T) {
	fake := &fakeWSClient{}
	c := WithBaseURL(fake, "wss://example.com/v1/")

	_, _ = c.Connect(context.Background(), "/stream")

	if fake.gotURL != "wss://example.com/v1/stream" {
		t.Errorf("expected base URL joined with path, got %q", fake.gotURL)
	}
}

func TestWithBaseURLPassesThroughAbsoluteURL(t *testing.T) {
	fake := &fakeWSClient{}
	c := WithBaseURL(fake, "wss://example.com")

	_, _ = c.Connect(context.Background(), "wss://other.example.com/stream")

	if fake.gotURL != "wss://other.example.com/stream" {
		t.Errorf("expected the absolute URL to pass through unchanged, got %q", fake.gotURL)
	}
}
