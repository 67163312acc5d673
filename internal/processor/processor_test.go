package processor

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"codeberg.org/snonux/lexipick/internal/ai"
	"codeberg.org/snonux/lexipick/internal/batch"
	"codeberg.org/snonux/lexipick/internal/cli"
	"codeberg.org/snonux/lexipick/internal/groups"
	"codeberg.org/snonux/lexipick/internal/picker"
	"codeberg.org/snonux/lexipick/internal/review"
	"codeberg.org/snonux/lexipick/internal/testutil"
)

const testArticle = "The quick brown fox jumps over the lazy dog. The fox runs fast."

func freshViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func writeArticle(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "fox.txt")
	if err := os.WriteFile(path, []byte(testArticle), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewProcessor(t *testing.T) {
	freshViper(t)

	flags := cli.NewFlags()
	p := NewProcessor(flags)

	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
	if p.flags != flags {
		t.Error("Processor flags not set correctly")
	}
	if p.dict == nil {
		t.Error("Dictionary client not initialized")
	}
}

func TestRunPickSelectAndExport(t *testing.T) {
	freshViper(t)
	dir := t.TempDir()
	articlePath := writeArticle(t, dir)
	exportPath := filepath.Join(dir, "out", "picks.json")
	dbPath := filepath.Join(dir, "groups.db")

	flags := cli.NewFlags()
	flags.SelectWords = []string{"fox", "dog"}
	flags.Phrases = []string{"quick brown fox"}
	flags.ExportFile = exportPath
	flags.SaveGroup = "Fox words"
	flags.GroupDB = dbPath

	p := NewProcessor(flags)
	if err := p.RunPick(articlePath); err != nil {
		t.Fatalf("RunPick failed: %v", err)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	var doc struct {
		Words   []string `json:"words"`
		Phrases []string `json:"phrases"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	// The first fox is absorbed into the phrase; the second stays a word.
	wantWords := []string{"dog", "fox"}
	if !reflect.DeepEqual(doc.Words, wantWords) {
		t.Errorf("Words = %v, want %v", doc.Words, wantWords)
	}
	wantPhrases := []string{"quick brown fox"}
	if !reflect.DeepEqual(doc.Phrases, wantPhrases) {
		t.Errorf("Phrases = %v, want %v", doc.Phrases, wantPhrases)
	}

	store, err := groups.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open group database: %v", err)
	}
	defer store.Close()

	group, err := findGroup(store, "Fox words")
	if err != nil {
		t.Fatalf("saved group not found: %v", err)
	}
	entries, err := store.Entries(group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("saved group has %d entries, want 3", len(entries))
	}
}

func TestRunPickNothingSelected(t *testing.T) {
	freshViper(t)
	articlePath := writeArticle(t, t.TempDir())

	flags := cli.NewFlags()
	p := NewProcessor(flags)

	err := p.RunPick(articlePath)
	if err == nil || !strings.Contains(err.Error(), "nothing selected") {
		t.Errorf("expected nothing-selected error, got %v", err)
	}
}

func TestRunPickNoArticleSource(t *testing.T) {
	freshViper(t)

	flags := cli.NewFlags()
	flags.SelectWords = []string{"fox"}
	p := NewProcessor(flags)

	if err := p.RunPick(""); err == nil {
		t.Error("expected error when no article source is given")
	}
}

func TestRunPickMissingFile(t *testing.T) {
	freshViper(t)

	flags := cli.NewFlags()
	flags.SelectWords = []string{"fox"}
	p := NewProcessor(flags)

	err := p.RunPick(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("expected error for missing article file")
	}
}

func TestSelectWord(t *testing.T) {
	session, err := picker.NewSession("The Falcon flew. A falcon, again; FALCON!")
	if err != nil {
		t.Fatal(err)
	}

	if n := selectWord(session, "falcon"); n != 3 {
		t.Errorf("selectWord = %d, want 3", n)
	}
	// A second pass must not toggle the selection back off
	if n := selectWord(session, "falcon"); n != 0 {
		t.Errorf("repeated selectWord = %d, want 0", n)
	}
	if words := session.EffectiveWords(); len(words) != 3 {
		t.Errorf("EffectiveWords returned %d tokens, want 3", len(words))
	}

	if n := selectWord(session, "eagle"); n != 0 {
		t.Errorf("selectWord for absent word = %d, want 0", n)
	}
}

func TestBuildPhrase(t *testing.T) {
	session, err := picker.NewSession("the quick, brown fox runs far")
	if err != nil {
		t.Fatal(err)
	}

	// Punctuation between the words must not break the run
	if err := buildPhrase(session, "quick brown fox"); err != nil {
		t.Fatalf("buildPhrase failed: %v", err)
	}

	phrases := session.PhraseStrings()
	if len(phrases) != 1 || phrases[0] != "quick brown fox" {
		t.Errorf("PhraseStrings = %v, want [quick brown fox]", phrases)
	}
}

func TestBuildPhraseAcrossSentences(t *testing.T) {
	session, err := picker.NewSession("The fox. Runs fast.")
	if err != nil {
		t.Fatal(err)
	}

	if err := buildPhrase(session, "fox runs"); err != nil {
		t.Fatalf("buildPhrase failed: %v", err)
	}
	if phrases := session.PhraseStrings(); len(phrases) != 1 {
		t.Errorf("PhraseStrings = %v, want one phrase", phrases)
	}
}

func TestBuildPhraseErrors(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
	}{
		{"single word", "quick"},
		{"not in article", "lazy dog"},
		{"words out of order", "brown quick"},
		{"digits are not words", "quick 99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := picker.NewSession("the quick brown fox runs far")
			if err != nil {
				t.Fatal(err)
			}
			if err := buildPhrase(session, tt.phrase); err == nil {
				t.Errorf("buildPhrase(%q) succeeded, want error", tt.phrase)
			}
		})
	}
}

func TestWriteExportIntoDirectory(t *testing.T) {
	freshViper(t)
	dir := t.TempDir()

	flags := cli.NewFlags()
	flags.ExportFile = dir
	p := NewProcessor(flags)

	doc := picker.Document{Words: []string{"fox"}, Phrases: []string{}}
	path, err := p.writeExport(doc)
	if err != nil {
		t.Fatalf("writeExport failed: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("export path %s not inside %s", path, dir)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "picks_") || !strings.HasSuffix(base, ".json") {
		t.Errorf("unexpected export file name %s", base)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("export file not created: %v", err)
	}
}

func TestRunQuizLoopCorrect(t *testing.T) {
	quiz, err := review.NewQuiz([]review.Card{{Term: "ябълка", Translation: "apple"}})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runQuiz(quiz, strings.NewReader("apple\n"), &out); err != nil {
		t.Fatalf("runQuiz failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"ябълка = ", "  correct", "Score: 1/1 correct (100%)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Repeat") {
		t.Errorf("unexpected replay prompt:\n%s", got)
	}
}

func TestRunQuizLoopSkip(t *testing.T) {
	quiz, err := review.NewQuiz([]review.Card{{Term: "ябълка", Translation: "apple"}})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runQuiz(quiz, strings.NewReader("\n"), &out); err != nil {
		t.Fatalf("runQuiz failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"  skipped, answer: apple", "Score: 0/1 correct (0%)", "Skipped: 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Repeat") {
		t.Errorf("skipped card must not trigger replay:\n%s", got)
	}
}

func TestRunQuizLoopWrongAndReplay(t *testing.T) {
	quiz, err := review.NewQuiz([]review.Card{{Term: "ябълка", Translation: "apple"}})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	input := "banana\ny\napple\n"
	if err := runQuiz(quiz, strings.NewReader(input), &out); err != nil {
		t.Fatalf("runQuiz failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"wrong, expected: apple",
		"Repeat the 1 wrong card(s)? [y/N]",
		"Score: 0/1",
		"Score: 1/1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunQuizLoopDeclineReplay(t *testing.T) {
	quiz, err := review.NewQuiz([]review.Card{
		{Term: "ябълка", Translation: "apple"},
		{Term: "котка", Translation: "cat"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runQuiz(quiz, strings.NewReader("zzz\nzzz\nn\n"), &out); err != nil {
		t.Fatalf("runQuiz failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Repeat the 2 wrong card(s)?") {
		t.Errorf("output missing replay prompt:\n%s", got)
	}
	if n := strings.Count(got, "Score:"); n != 1 {
		t.Errorf("printed %d score lines, want 1:\n%s", n, got)
	}
}

func TestRunQuizLoopEOF(t *testing.T) {
	quiz, err := review.NewQuiz([]review.Card{{Term: "ябълка", Translation: "apple"}})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runQuiz(quiz, strings.NewReader(""), &out); err != nil {
		t.Fatalf("runQuiz failed: %v", err)
	}
	if !strings.Contains(out.String(), "Score: 0/1") {
		t.Errorf("output missing final score:\n%s", out.String())
	}
}

func TestRunImportWords(t *testing.T) {
	freshViper(t)
	dir := t.TempDir()

	wordFile := filepath.Join(dir, "words.txt")
	content := "ябълка = apple\nкотка = cat\n\nкуче\n"
	if err := os.WriteFile(wordFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	flags := cli.NewFlags()
	flags.ImportWords = wordFile
	flags.SaveGroup = "Imported"
	flags.GroupDB = filepath.Join(dir, "groups.db")

	if err := NewProcessor(flags).RunImportWords(); err != nil {
		t.Fatalf("RunImportWords failed: %v", err)
	}

	store, err := groups.Open(flags.GroupDB)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	group, err := findGroup(store, "Imported")
	if err != nil {
		t.Fatalf("imported group not found: %v", err)
	}
	entries, err := store.Entries(group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("imported %d entries, want 3", len(entries))
	}

	byTerm := make(map[string]string)
	for _, e := range entries {
		byTerm[e.Term] = e.Translation
	}
	if byTerm["ябълка"] != "apple" {
		t.Errorf("translation for ябълка = %q, want apple", byTerm["ябълка"])
	}
	if byTerm["котка"] != "cat" {
		t.Errorf("translation for котка = %q, want cat", byTerm["котка"])
	}
	if translation, ok := byTerm["куче"]; !ok || translation != "" {
		t.Errorf("куче should be imported without translation, got %q (found %v)", translation, ok)
	}
}

func TestRunImportWordsRequiresGroupName(t *testing.T) {
	freshViper(t)

	flags := cli.NewFlags()
	flags.ImportWords = "words.txt"
	p := NewProcessor(flags)

	if err := p.RunImportWords(); err == nil {
		t.Error("expected error without --save-group")
	}
}

func TestGroupExportImportRoundTrip(t *testing.T) {
	freshViper(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "groups.db")

	store, err := groups.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	group, err := store.CreateGroup("Travel")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []*groups.Entry{
		{Term: "летище", Translation: "airport"},
		{Term: "влак", Translation: "train"},
	} {
		if err := store.AddEntry(group.ID, e); err != nil {
			t.Fatal(err)
		}
	}
	store.Close()

	flags := cli.NewFlags()
	flags.GroupDB = dbPath
	flags.OutputDir = filepath.Join(dir, "exports")
	flags.ExportGroup = "Travel"
	if err := NewProcessor(flags).RunExportGroup(); err != nil {
		t.Fatalf("RunExportGroup failed: %v", err)
	}

	exported := filepath.Join(dir, "exports", "Travel.json")
	if _, err := os.Stat(exported); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}

	otherDB := filepath.Join(dir, "other.db")
	flags2 := cli.NewFlags()
	flags2.GroupDB = otherDB
	flags2.ImportGroup = exported
	if err := NewProcessor(flags2).RunImportGroup(); err != nil {
		t.Fatalf("RunImportGroup failed: %v", err)
	}

	store2, err := groups.Open(otherDB)
	if err != nil {
		t.Fatal(err)
	}
	defer store2.Close()

	imported, err := findGroup(store2, "Travel")
	if err != nil {
		t.Fatalf("imported group not found: %v", err)
	}
	entries, err := store2.Entries(imported.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("imported %d entries, want 2", len(entries))
	}
}

func TestRunListGroupsEmpty(t *testing.T) {
	freshViper(t)

	flags := cli.NewFlags()
	flags.GroupDB = filepath.Join(t.TempDir(), "groups.db")

	if err := NewProcessor(flags).RunListGroups(); err != nil {
		t.Fatalf("RunListGroups failed: %v", err)
	}
}

func TestFindGroup(t *testing.T) {
	freshViper(t)
	dbPath := filepath.Join(t.TempDir(), "groups.db")

	store, err := groups.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	created, err := store.CreateGroup("Alpha")
	if err != nil {
		t.Fatal(err)
	}

	byID, err := findGroup(store, created.ID)
	if err != nil || byID.ID != created.ID {
		t.Errorf("findGroup by ID = %v, %v", byID, err)
	}

	byName, err := findGroup(store, "Alpha")
	if err != nil || byName.ID != created.ID {
		t.Errorf("findGroup by name = %v, %v", byName, err)
	}

	if _, err := findGroup(store, "Missing"); err == nil {
		t.Error("expected error for unknown group")
	}
}

func TestGroupDBPathPrefersConfig(t *testing.T) {
	freshViper(t)

	flags := cli.NewFlags()
	flags.GroupDB = "/flag/path.db"
	p := NewProcessor(flags)

	if got := p.groupDBPath(); got != "/flag/path.db" {
		t.Errorf("groupDBPath = %s, want flag value", got)
	}

	viper.Set("groups.database", "/config/path.db")
	if got := p.groupDBPath(); got != "/config/path.db" {
		t.Errorf("groupDBPath = %s, want config value", got)
	}
}

func TestTranslationProviderWithoutKeys(t *testing.T) {
	freshViper(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	flags := cli.NewFlags()
	p := NewProcessor(flags)

	if _, err := p.translationProvider(); err == nil {
		t.Error("expected error without API keys")
	}
}

func TestTranslationProviderFallback(t *testing.T) {
	freshViper(t)
	t.Setenv("OPENAI_API_KEY", "test-openai-key")
	t.Setenv("GEMINI_API_KEY", "")

	flags := cli.NewFlags()
	p := NewProcessor(flags)

	provider, err := p.translationProvider()
	if err != nil {
		t.Fatalf("translationProvider failed: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("provider without second key = %s, want openai", provider.Name())
	}

	t.Setenv("GEMINI_API_KEY", "test-gemini-key")
	provider, err = p.translationProvider()
	if err != nil {
		t.Fatalf("translationProvider failed: %v", err)
	}
	if provider.Name() != "openai (fallback: gemini)" {
		t.Errorf("provider with both keys = %s, want fallback chain", provider.Name())
	}
}

func TestIllustrationGeneratorUnavailableWithoutKey(t *testing.T) {
	freshViper(t)
	t.Setenv("OPENAI_API_KEY", "")

	flags := cli.NewFlags()
	p := NewProcessor(flags)

	if gen := p.illustrationGenerator(); gen.IsAvailable() {
		t.Error("generator should not be available without an API key")
	}
}

func TestApplyTranslations(t *testing.T) {
	freshViper(t)
	dir := t.TempDir()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/apple") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"word":"apple","phonetic":"/ˈæp.əl/","meanings":[{"definitions":[{"definition":"A fruit."}]}]}]`))
	}))
	defer server.Close()

	flags := cli.NewFlags()
	flags.DictEndpoint = server.URL
	p := NewProcessor(flags)

	store, err := groups.Open(filepath.Join(dir, "groups.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	group, err := store.CreateGroup("Fruit")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AddEntry(group.ID, &groups.Entry{Term: "apple"}); err != nil {
		t.Fatal(err)
	}
	if err := store.AddEntry(group.ID, &groups.Entry{Term: "quick brown", IsPhrase: true}); err != nil {
		t.Fatal(err)
	}

	pending, err := store.Entries(group.ID)
	if err != nil {
		t.Fatal(err)
	}

	translations := []ai.Translation{
		{Term: "apple", Translation: "ябълка"},
		{Term: "quick brown", Translation: "бърз кафяв"},
	}
	updated, err := p.applyTranslations(store, pending, translations)
	if err != nil {
		t.Fatalf("applyTranslations failed: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}

	entries, err := store.Entries(group.ID)
	if err != nil {
		t.Fatal(err)
	}
	byTerm := make(map[string]*groups.Entry)
	for _, entry := range entries {
		byTerm[entry.Term] = entry
	}

	apple := byTerm["apple"]
	if apple.Translation != "ябълка" {
		t.Errorf("apple translation = %q, want %q", apple.Translation, "ябълка")
	}
	if apple.Phonetic != "/ˈæp.əl/" {
		t.Errorf("apple phonetic = %q, want %q", apple.Phonetic, "/ˈæp.əl/")
	}

	phrase := byTerm["quick brown"]
	if phrase.Translation != "бърз кафяв" {
		t.Errorf("phrase translation = %q, want %q", phrase.Translation, "бърз кафяв")
	}
	if phrase.Phonetic != "" {
		t.Errorf("phrase phonetic = %q, want empty (phrases are not looked up)", phrase.Phonetic)
	}
}

func TestFillMissingTerms(t *testing.T) {
	freshViper(t)

	entries := []batch.WordEntry{
		{Term: "ябълка", Translation: "apple"},
		{Translation: "cat", NeedsTranslation: true},
		{Translation: "unobtainium", NeedsTranslation: true},
	}
	provider := &testutil.MockProvider{Translations: map[string]string{
		"cat": "котка",
	}}

	p := NewProcessor(cli.NewFlags())
	if err := p.fillMissingTerms(provider, entries, []int{1, 2}); err != nil {
		t.Fatalf("fillMissingTerms failed: %v", err)
	}

	if entries[0].Term != "ябълка" {
		t.Errorf("entries[0].Term = %q, changed although not pending", entries[0].Term)
	}
	if entries[1].Term != "котка" {
		t.Errorf("entries[1].Term = %q, want %q", entries[1].Term, "котка")
	}
	if entries[2].Term != "" {
		t.Errorf("entries[2].Term = %q, want empty when no translation came back", entries[2].Term)
	}

	calls := provider.Calls()
	if len(calls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(calls))
	}
	if !reflect.DeepEqual(calls[0].Words, []string{"cat", "unobtainium"}) {
		t.Errorf("translated words = %v", calls[0].Words)
	}
	if calls[0].TargetLanguage != "Bulgarian" {
		t.Errorf("target language = %q, want default Bulgarian", calls[0].TargetLanguage)
	}
}
