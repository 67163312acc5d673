package processor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/lexipick/internal"
	"codeberg.org/snonux/lexipick/internal/ai"
	"codeberg.org/snonux/lexipick/internal/batch"
	"codeberg.org/snonux/lexipick/internal/groups"
	"codeberg.org/snonux/lexipick/internal/review"
)

// RunListGroups prints all saved groups with their entry counts
func (p *Processor) RunListGroups() error {
	store, err := p.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.Groups()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No groups saved yet")
		return nil
	}

	for _, group := range all {
		entries, err := store.Entries(group.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %-24s %3d entries  created %s\n",
			group.ID, group.Name, len(entries), group.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// RunImportGroup imports a group from a JSON file
func (p *Processor) RunImportGroup() error {
	file, err := os.Open(p.flags.ImportGroup)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	store, err := p.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	group, err := store.ImportGroup(file)
	if err != nil {
		return fmt.Errorf("failed to import group: %w", err)
	}

	fmt.Printf("Imported group %q (%s)\n", group.Name, group.ID)
	return nil
}

// RunExportGroup writes a group as JSON into the output directory
func (p *Processor) RunExportGroup() error {
	store, err := p.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	group, err := findGroup(store, p.flags.ExportGroup)
	if err != nil {
		return err
	}

	dir := p.outputDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, internal.SanitizeFilename(group.Name)+".json")

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := store.ExportGroup(file, group.ID); err != nil {
		return fmt.Errorf("failed to export group: %w", err)
	}

	fmt.Printf("Exported group %q to: %s\n", group.Name, path)
	return nil
}

// RunTranslateGroup fills in missing translations for a group
func (p *Processor) RunTranslateGroup() error {
	store, err := p.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	group, err := findGroup(store, p.flags.TranslateGroup)
	if err != nil {
		return err
	}

	entries, err := store.Entries(group.ID)
	if err != nil {
		return err
	}

	var pending []*groups.Entry
	for _, entry := range entries {
		if entry.Translation == "" {
			pending = append(pending, entry)
		}
	}
	if len(pending) == 0 {
		fmt.Printf("All %d entries in %q already translated\n", len(entries), group.Name)
		return nil
	}

	provider, err := p.translationProvider()
	if err != nil {
		return fmt.Errorf("failed to create translation provider: %w", err)
	}
	if err := provider.IsAvailable(); err != nil {
		return fmt.Errorf("translation provider not available: %w", err)
	}

	terms := make([]string, len(pending))
	for i, entry := range pending {
		terms[i] = entry.Term
	}

	fmt.Printf("Translating %d term(s) using %s...\n", len(terms), provider.Name())
	translations, err := provider.TranslateWords(context.Background(), terms, p.targetLanguage())
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	updated, err := p.applyTranslations(store, pending, translations)
	if err != nil {
		return err
	}

	fmt.Printf("Translated %d of %d entries\n", updated, len(pending))
	return nil
}

// applyTranslations stores the returned translations on their entries,
// enriching single words with dictionary phonetics on the way.
func (p *Processor) applyTranslations(store *groups.Store, pending []*groups.Entry, translations []ai.Translation) (int, error) {
	byTerm := make(map[string]string, len(translations))
	for _, tr := range translations {
		byTerm[tr.Term] = tr.Translation
	}

	updated := 0
	for _, entry := range pending {
		translation := byTerm[entry.Term]
		if translation == "" {
			fmt.Fprintf(os.Stderr, "  Warning: no translation returned for '%s'\n", entry.Term)
			continue
		}
		entry.Translation = translation
		if entry.Phonetic == "" && !entry.IsPhrase {
			entry.Phonetic = p.lookupPhonetic(entry.Term)
		}
		if err := store.UpdateEntry(entry); err != nil {
			return updated, fmt.Errorf("failed to update entry '%s': %w", entry.Term, err)
		}
		fmt.Printf("  %s = %s\n", entry.Term, translation)
		updated++
	}
	return updated, nil
}

// RunIllustrateGroup generates illustrations for entries that lack one
func (p *Processor) RunIllustrateGroup() error {
	store, err := p.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	group, err := findGroup(store, p.flags.IllustrateGroup)
	if err != nil {
		return err
	}

	entries, err := store.Entries(group.ID)
	if err != nil {
		return err
	}

	gen := p.illustrationGenerator()
	if !gen.IsAvailable() {
		return fmt.Errorf("illustration generation requires an OpenAI API key; set OPENAI_API_KEY environment variable or configure in .lexipick.yaml")
	}

	ctx := context.Background()
	generated := 0
	for _, entry := range entries {
		if entry.Illustration != "" {
			continue
		}

		fmt.Printf("  Generating illustration for '%s'...\n", entry.Term)
		path, err := gen.Generate(ctx, entry.Term, entry.Translation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: illustration for '%s' failed: %v\n", entry.Term, err)
			continue
		}
		if err := store.AttachIllustration(entry.ID, path); err != nil {
			return fmt.Errorf("failed to attach illustration: %w", err)
		}
		generated++
	}

	fmt.Printf("Generated %d illustration(s) for group %q\n", generated, group.Name)
	return nil
}

// RunImportWords reads a word list file and saves it as a new group.
// Translation-only lines are translated back into the study language first.
func (p *Processor) RunImportWords() error {
	if p.flags.SaveGroup == "" {
		return fmt.Errorf("--import-words requires --save-group NAME")
	}

	entries, err := batch.ReadBatchFile(p.flags.ImportWords)
	if err != nil {
		return fmt.Errorf("failed to read word file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no words found in %s", p.flags.ImportWords)
	}

	var pending []int
	for i, entry := range entries {
		if entry.NeedsTranslation {
			pending = append(pending, i)
		}
	}
	if len(pending) > 0 {
		provider, err := p.translationProvider()
		if err != nil {
			return fmt.Errorf("failed to create translation provider: %w", err)
		}
		if err := provider.IsAvailable(); err != nil {
			return fmt.Errorf("translation provider not available: %w", err)
		}
		if err := p.fillMissingTerms(provider, entries, pending); err != nil {
			return err
		}
	}

	store, err := p.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	group, err := store.CreateGroup(p.flags.SaveGroup)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	added := 0
	for _, entry := range entries {
		if entry.Term == "" {
			continue
		}
		ge := &groups.Entry{
			Term:        entry.Term,
			Translation: entry.Translation,
			IsPhrase:    strings.Contains(entry.Term, " "),
		}
		if err := store.AddEntry(group.ID, ge); err != nil {
			return fmt.Errorf("failed to add '%s': %w", entry.Term, err)
		}
		added++
	}

	fmt.Printf("Imported %d word(s) into group %q (%s)\n", added, group.Name, group.ID)
	return nil
}

// fillMissingTerms translates English-only lines into the study language
// and stores the result as each entry's term.
func (p *Processor) fillMissingTerms(provider ai.Provider, entries []batch.WordEntry, pending []int) error {
	words := make([]string, len(pending))
	for i, idx := range pending {
		words[i] = entries[idx].Translation
	}

	fmt.Printf("Translating %d term(s) to %s...\n", len(words), p.targetLanguage())
	translations, err := provider.TranslateWords(context.Background(), words, p.targetLanguage())
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	byWord := make(map[string]string, len(translations))
	for _, tr := range translations {
		byWord[tr.Term] = tr.Translation
	}
	for _, idx := range pending {
		term := byWord[entries[idx].Translation]
		if term == "" {
			fmt.Fprintf(os.Stderr, "  Warning: no translation for '%s', skipping\n", entries[idx].Translation)
			continue
		}
		entries[idx].Term = term
	}
	return nil
}

// RunQuiz starts an interactive review quiz over a group's entries
func (p *Processor) RunQuiz() error {
	store, err := p.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	group, err := findGroup(store, p.flags.QuizGroup)
	if err != nil {
		return err
	}

	entries, err := store.Entries(group.ID)
	if err != nil {
		return err
	}

	cards := review.FromEntries(entries)
	if len(cards) == 0 {
		return fmt.Errorf("group %q has no translated entries; run --translate-group first", group.Name)
	}

	quiz, err := review.NewQuiz(cards)
	if err != nil {
		return err
	}

	fmt.Printf("Quiz: %s (%d cards)\n\n", group.Name, len(cards))
	return runQuiz(quiz, os.Stdin, os.Stdout)
}

// runQuiz drives the prompt loop. An empty answer skips the card and
// reveals the translation. Wrong cards can be replayed in further
// rounds until the user declines or everything is correct.
func runQuiz(quiz *review.Quiz, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		for {
			card, ok := quiz.Card()
			if !ok {
				break
			}
			fmt.Fprintf(out, "%s = ", card.Term)
			if !scanner.Scan() {
				fmt.Fprintln(out)
				printStats(out, quiz)
				return scanner.Err()
			}
			answer := scanner.Text()
			if strings.TrimSpace(answer) == "" {
				quiz.Skip()
				fmt.Fprintf(out, "  skipped, answer: %s\n", card.Translation)
				continue
			}
			if quiz.Answer(answer) {
				fmt.Fprintln(out, "  correct")
			} else {
				fmt.Fprintf(out, "  wrong, expected: %s\n", card.Translation)
			}
		}

		printStats(out, quiz)

		wrong := quiz.WrongCards()
		if len(wrong) == 0 {
			return nil
		}

		fmt.Fprintf(out, "Repeat the %d wrong card(s)? [y/N] ", len(wrong))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" {
			return nil
		}

		next, err := quiz.Replay()
		if err != nil {
			return err
		}
		quiz = next
		fmt.Fprintln(out)
	}
}

func printStats(out io.Writer, quiz *review.Quiz) {
	stats := quiz.Stats()
	fmt.Fprintf(out, "\nScore: %d/%d correct (%.0f%%)\n", stats.Correct, stats.Total, stats.Accuracy()*100)
	if stats.Skipped > 0 {
		fmt.Fprintf(out, "Skipped: %d\n", stats.Skipped)
	}
}

// findGroup resolves a group reference by ID first, then by exact name
func findGroup(store *groups.Store, ref string) (*groups.Group, error) {
	if group, err := store.Group(ref); err == nil {
		return group, nil
	}

	all, err := store.Groups()
	if err != nil {
		return nil, err
	}
	for _, group := range all {
		if group.Name == ref {
			return group, nil
		}
	}
	return nil, fmt.Errorf("no group with ID or name %q", ref)
}
