package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientDoSetsBearerAndUserAgent(t *testing.T) {
	var gotAuth, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token")
	_, err := c.Do(context.Background(), HTTPRequest{Method: "GET", Path: "/ping"})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if gotUA != "stormcast-loadgen/1.0" {
		t.Errorf("expected the load generator's user agent, got %q", gotUA)
	}
}

func TestClientDoEncodesQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Do(context.Background(), HTTPRequest{
		Method: "GET",
		Path:   "/search",
		Query:  map[string]string{"q": "widgets"},
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if gotQuery != "q=widgets" {
		t.Errorf("expected encoded query string, got %q", gotQuery)
	}
}

func TestClientDoReturnsHTTPStatusErrorOn4xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Do(context.Background(), HTTPRequest{Method: "GET", Path: "/missing"})
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	statusErr, ok := err.(*HTTPStatusError)
	if !ok {
		t.Fatalf("expected *HTTPStatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", statusErr.StatusCode)
	}
}

func TestClientDoMarshalsJSONBody(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Do(context.Background(), HTTPRequest{
		Method: "POST",
		Path:   "/items",
		Body:   map[string]any{"name": "widget"},
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !strings.Contains(gotBody, `"name":"widget"`) {
		t.Errorf("expected JSON-encoded body, got %q", gotBody)
	}
}

func TestTruncateShortensLongBodies(t *testing.T) {
	long := strings.Repeat("x", 300)
	out := truncate([]byte(long), 10)
	if out != strings.Repeat("x", 10)+"..." {
		t.Errorf("expected truncated body with ellipsis, got %q", out)
	}
}

func TestTruncateLeavesShortBodiesUnchanged(t *testing.T) {
	out := truncate([]byte("short"), 10)
	if out != "short" {
		t.Errorf("expected unchanged short body, got %q", out)
	}
}
