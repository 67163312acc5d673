package groups

import (
	"bytes"
	"strings"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	store := newTestStore(t)

	group, _ := store.CreateGroup("Travel")
	for _, e := range []*Entry{
		{Term: "auto", Translation: "car", Phonetic: "/ˈɑʊto/", Note: "neuter"},
		{Term: "snelweg", Translation: "highway"},
		{Term: "op reis gaan", Translation: "to go traveling", IsPhrase: true},
	} {
		if err := store.AddEntry(group.ID, e); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := store.ExportGroup(&buf, group.ID); err != nil {
		t.Fatalf("ExportGroup failed: %v", err)
	}

	imported, err := store.ImportGroup(&buf)
	if err != nil {
		t.Fatalf("ImportGroup failed: %v", err)
	}
	if imported.ID == group.ID {
		t.Error("import must create a fresh group ID")
	}
	if imported.Name != "Travel" {
		t.Errorf("imported name = %q", imported.Name)
	}

	original, _ := store.Entries(group.ID)
	copied, _ := store.Entries(imported.ID)
	if len(copied) != len(original) {
		t.Fatalf("imported %d entries, want %d", len(copied), len(original))
	}
	for i := range original {
		if copied[i].ID == original[i].ID {
			t.Errorf("entry %d kept its old ID", i)
		}
		if copied[i].Term != original[i].Term ||
			copied[i].Translation != original[i].Translation ||
			copied[i].Phonetic != original[i].Phonetic ||
			copied[i].Note != original[i].Note ||
			copied[i].IsPhrase != original[i].IsPhrase {
			t.Errorf("entry %d = %+v, want %+v", i, copied[i], original[i])
		}
	}
}

func TestImportJSONValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "{nope"},
		{"wrong version", `{"version": 99, "name": "x", "entries": []}`},
		{"missing name", `{"version": 1, "entries": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ImportJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestImportJSONSkipsEmptyTerms(t *testing.T) {
	input := `{"version": 1, "name": "g", "entries": [{"term": ""}, {"term": "ok"}]}`

	name, entries, err := ImportJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if name != "g" {
		t.Errorf("name = %q", name)
	}
	if len(entries) != 1 || entries[0].Term != "ok" {
		t.Errorf("entries = %v", entries)
	}
}

func TestExportJSONOmitsIllustrations(t *testing.T) {
	store := newTestStore(t)

	group, _ := store.CreateGroup("g")
	entry := &Entry{Term: "word"}
	if err := store.AddEntry(group.ID, entry); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if err := store.AttachIllustration(entry.ID, "/local/path.jpg"); err != nil {
		t.Fatalf("AttachIllustration failed: %v", err)
	}

	var buf bytes.Buffer
	if err := store.ExportGroup(&buf, group.ID); err != nil {
		t.Fatalf("ExportGroup failed: %v", err)
	}
	if strings.Contains(buf.String(), "/local/path.jpg") {
		t.Error("export leaked a local illustration path")
	}
}
