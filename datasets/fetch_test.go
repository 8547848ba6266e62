package datasets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(diabetesTab)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "nested", "diabetes.tab.txt")
	b, err := NewFetcher(srv.URL).Fetch(context.Background(), dest)
	if err != nil {
		t.Fatal(err)
	}
	if b.Source != dest {
		t.Errorf("Source = %q, want %q", b.Source, dest)
	}
	if b.Target.Len() != 442 {
		t.Errorf("rows = %d, want 442", b.Target.Len())
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(diabetesTab) {
		t.Error("written file differs from the served body")
	}

	d, err := LoadDiabetesFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Scaled {
		t.Error("LoadDiabetesFile should scale by default")
	}
}

func TestFetcher_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "not diabetes data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>moved</html>\n"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			dest := filepath.Join(t.TempDir(), "diabetes.tab.txt")
			if err := os.WriteFile(dest, []byte("keep"), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := NewFetcher(srv.URL).Fetch(context.Background(), dest); err == nil {
				t.Fatal("expected error")
			}
			got, _ := os.ReadFile(dest)
			if string(got) != "keep" {
				t.Errorf("dest was overwritten: %q", got)
			}
		})
	}
}

func TestFetcher_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(diabetesTab)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := NewFetcher(srv.URL).WithTimeout(time.Second)
	if _, err := f.Fetch(ctx, filepath.Join(t.TempDir(), "d.txt")); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNewFetcher_DefaultURL(t *testing.T) {
	if got := NewFetcher("").URL; got != DiabetesURL {
		t.Errorf("URL = %q, want %q", got, DiabetesURL)
	}
}
