package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testPage carries enough paragraph text for readability to treat the
// article element as the main content.
const testPage = `<!DOCTYPE html>
<html>
<head><title>Falcons of the City</title></head>
<body>
<nav>Home | Archive | About | Contact | Subscribe to our newsletter today</nav>
<article>
<p>Peregrine falcons have moved into cities all over the world, nesting on
tall buildings the way their ancestors nested on cliff faces. The urban
canyon suits them well, with steady updrafts along glass towers and an
endless supply of pigeons below.</p>
<p>Researchers tracking the birds report that city falcons fledge more
chicks per season than their rural cousins. Warm rooftops extend the
breeding window, and the absence of great horned owls removes their main
nocturnal predator from the equation entirely.</p>
<p>Not everyone welcomes the newcomers. Racing pigeon clubs file complaints
every spring, and window washers occasionally meet a defensive parent at
two hundred metres. Still, most cities now treat their falcons as resident
celebrities, complete with nest cameras and naming contests.</p>
<p>The comeback is remarkable for a species that pesticides nearly erased
from the continent within living memory. Banning DDT gave the falcons back
their eggshells, and the skyscraper gave them back their cliffs.</p>
</article>
<footer>Copyright notice and a long list of perfectly skippable links.</footer>
</body>
</html>`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morning_news.txt")
	content := "The quick brown fox jumps over the lazy dog."
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write article file: %v", err)
	}

	art, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if art.Title != "morning_news" {
		t.Errorf("Title = %q, want morning_news", art.Title)
	}
	if art.Text != content {
		t.Errorf("Text = %q, want %q", art.Text, content)
	}
	if art.Source != path {
		t.Errorf("Source = %q, want %q", art.Source, path)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("  \n\t\n"), 0644); err != nil {
		t.Fatalf("failed to write article file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for whitespace-only article file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing article file")
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(testPage))
	}))
	defer server.Close()

	art, err := Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if art.Title != "Falcons of the City" {
		t.Errorf("Title = %q, want Falcons of the City", art.Title)
	}
	if !strings.Contains(art.Text, "Peregrine falcons") {
		t.Errorf("Text missing article content: %q", art.Text)
	}
	if strings.Contains(art.Text, "Subscribe to our newsletter") {
		t.Error("Text still contains navigation chrome")
	}
	if art.Source != server.URL {
		t.Errorf("Source = %q, want %q", art.Source, server.URL)
	}
}

func TestFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestFetchNoReadableText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><head><title>x</title></head><body></body></html>"))
	}))
	defer server.Close()

	if _, err := Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected error for page without readable text")
	}
}
