package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckNewerVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name":"v1.2.0"}`))
	}))
	defer srv.Close()

	res := check(context.Background(), "1.0.0", srv.URL)
	if res == nil {
		t.Fatal("expected a result for a newer release")
	}
	if res.LatestVersion != "1.2.0" {
		t.Errorf("latest = %q, want 1.2.0", res.LatestVersion)
	}
}

func TestCheckSameVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name":"v1.0.0"}`))
	}))
	defer srv.Close()

	if res := check(context.Background(), "v1.0.0", srv.URL); res != nil {
		t.Errorf("expected nil for current version, got %+v", res)
	}
}

func TestCheckErrorsAreSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	if res := check(context.Background(), "1.0.0", srv.URL); res != nil {
		t.Errorf("expected nil on HTTP error, got %+v", res)
	}
}
