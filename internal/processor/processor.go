package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/lexipick/internal"
	"codeberg.org/snonux/lexipick/internal/ai"
	"codeberg.org/snonux/lexipick/internal/article"
	"codeberg.org/snonux/lexipick/internal/cli"
	"codeberg.org/snonux/lexipick/internal/dictionary"
	"codeberg.org/snonux/lexipick/internal/groups"
	"codeberg.org/snonux/lexipick/internal/gui"
	"codeberg.org/snonux/lexipick/internal/illustration"
	"codeberg.org/snonux/lexipick/internal/picker"
)

// Processor drives the headless picking and group management flows
type Processor struct {
	flags *cli.Flags
	dict  *dictionary.Client
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags) *Processor {
	dictConfig := &dictionary.Config{
		Endpoint: flags.DictEndpoint,
		Language: flags.DictLanguage,
	}

	// Use config file values if not overridden by flags
	if dictConfig.Endpoint == "" {
		dictConfig.Endpoint = viper.GetString("dictionary.endpoint")
	}
	if dictConfig.Language == "en" && viper.IsSet("dictionary.language") {
		dictConfig.Language = viper.GetString("dictionary.language")
	}

	return &Processor{
		flags: flags,
		dict:  dictionary.NewClient(dictConfig),
	}
}

// RunPick executes the headless pick flow: load an article, apply the
// --select and --phrase flags, then define, export and save as requested.
func (p *Processor) RunPick(articlePath string) error {
	art, err := p.loadArticle(articlePath)
	if err != nil {
		return err
	}

	fmt.Printf("Article: %s (%d characters)\n", art.Title, len(art.Text))

	session, err := picker.NewSession(art.Text)
	if err != nil {
		return err
	}

	for _, word := range p.flags.SelectWords {
		n := selectWord(session, word)
		if n == 0 {
			fmt.Fprintf(os.Stderr, "Warning: word '%s' not found in article\n", word)
		} else {
			fmt.Printf("  Selected '%s' (%d occurrence(s))\n", word, n)
		}
	}

	for _, phrase := range p.flags.Phrases {
		if err := buildPhrase(session, phrase); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			fmt.Printf("  Built phrase '%s'\n", phrase)
		}
	}

	if !session.HasContent() {
		return fmt.Errorf("nothing selected; use --select WORD or --phrase \"w1 w2\"")
	}

	words := session.EffectiveWords()
	fmt.Printf("\nPicked %d word(s) and %d phrase(s)\n", len(words), len(session.Phrases()))

	if p.flags.Define {
		p.printDefinitions(words)
	}

	doc := session.Export(time.Now())

	if p.flags.ExportFile != "" {
		path, err := p.writeExport(doc)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to: %s\n", path)
	}

	if p.flags.SaveGroup != "" {
		store, err := p.openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		group, err := store.SaveExport(p.flags.SaveGroup, doc)
		if err != nil {
			return fmt.Errorf("failed to save group: %w", err)
		}
		fmt.Printf("Saved group %q (%s)\n", group.Name, group.ID)
	}

	return nil
}

// loadArticle resolves the article source: positional argument, --article
// file or --url.
func (p *Processor) loadArticle(path string) (*article.Article, error) {
	switch {
	case path != "":
		return article.Load(path)
	case p.flags.ArticleFile != "":
		return article.Load(p.flags.ArticleFile)
	case p.flags.ArticleURL != "":
		fmt.Printf("Fetching %s...\n", p.flags.ArticleURL)
		return article.Fetch(context.Background(), p.flags.ArticleURL)
	default:
		return nil, fmt.Errorf("no article given; use --article FILE or --url URL")
	}
}

// selectWord toggles on every word token matching the given text. The match
// is case-insensitive on the normalized form, so "Falcon" also selects
// "falcon," later in the text. Returns how many tokens were selected.
func selectWord(session *picker.Session, word string) int {
	want := picker.Normalize(word)
	if want == "" {
		return 0
	}

	count := 0
	for _, tok := range session.Tokens() {
		if tok.Kind != picker.KindWord || picker.Normalize(tok.Text) != want {
			continue
		}
		// Already selected or absorbed into a phrase; toggling again
		// would deselect or dissolve.
		if session.IsSelected(tok.Position) {
			continue
		}
		session.Toggle(tok.Position)
		count++
	}
	return count
}

// buildPhrase selects a consecutive run of words and merges it into a
// single phrase. Words count as consecutive when no other word sits between
// them; punctuation and whitespace are ignored.
func buildPhrase(session *picker.Session, text string) error {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return fmt.Errorf("phrase %q needs at least two words", text)
	}

	want := make([]string, len(fields))
	for i, f := range fields {
		want[i] = picker.Normalize(f)
		if want[i] == "" {
			return fmt.Errorf("phrase %q contains a non-word part", text)
		}
	}

	positions := findRun(session, want)
	if positions == nil {
		return fmt.Errorf("phrase %q not found in article", text)
	}

	for _, pos := range positions {
		if !session.IsSelected(pos) {
			session.Toggle(pos)
		}
	}
	for i := 1; i < len(positions); i++ {
		session.Merge(positions[i-1], positions[i])
	}
	return nil
}

// findRun locates the first run of word tokens whose normalized texts match
// want, with no other words in between.
func findRun(session *picker.Session, want []string) []int {
	var words []picker.Token
	for _, tok := range session.Tokens() {
		if tok.Kind == picker.KindWord {
			words = append(words, tok)
		}
	}

	for start := 0; start+len(want) <= len(words); start++ {
		match := true
		for i, w := range want {
			if picker.Normalize(words[start+i].Text) != w {
				match = false
				break
			}
		}
		if match {
			positions := make([]int, len(want))
			for i := range want {
				positions[i] = words[start+i].Position
			}
			return positions
		}
	}
	return nil
}

// printDefinitions looks up each picked word against the dictionary
// service and prints phonetic plus definitions.
func (p *Processor) printDefinitions(words []picker.Token) {
	fmt.Printf("\nLooking up definitions...\n")
	ctx := context.Background()

	for _, tok := range words {
		entry, err := p.dict.Lookup(ctx, tok.Text)
		if err != nil {
			var lookupErr *dictionary.LookupError
			if errors.As(err, &lookupErr) && lookupErr.NotFound {
				fmt.Printf("  %s: no dictionary entry\n", tok.Text)
			} else {
				fmt.Fprintf(os.Stderr, "  Warning: lookup for '%s' failed: %v\n", tok.Text, err)
			}
			continue
		}

		if entry.Phonetic != "" {
			fmt.Printf("  %s %s\n", entry.Word, entry.Phonetic)
		} else {
			fmt.Printf("  %s\n", entry.Word)
		}
		for _, def := range entry.Definitions {
			fmt.Printf("    - %s\n", def)
		}
	}
}

// lookupPhonetic enriches a stored term with its dictionary phonetic.
// A failed lookup is not worth failing a translation run over.
func (p *Processor) lookupPhonetic(term string) string {
	entry, err := p.dict.Lookup(context.Background(), term)
	if err != nil {
		return ""
	}
	return entry.Phonetic
}

// writeExport writes the document to the --export path. A directory target
// gets a generated file name so repeated exports never collide.
func (p *Processor) writeExport(doc picker.Document) (string, error) {
	path := p.flags.ExportFile

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		name := fmt.Sprintf("picks_%s.json", internal.GenerateFileID(strings.Join(doc.Words, " ")))
		path = filepath.Join(path, name)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := doc.WriteJSON(file); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// openStore opens the group database, creating its directory if needed
func (p *Processor) openStore() (*groups.Store, error) {
	path := p.groupDBPath()
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	return groups.Open(path)
}

func (p *Processor) groupDBPath() string {
	if path := viper.GetString("groups.database"); path != "" {
		return path
	}
	return p.flags.GroupDB
}

func (p *Processor) outputDir() string {
	if dir := viper.GetString("output.directory"); dir != "" {
		return dir
	}
	return p.flags.OutputDir
}

func (p *Processor) targetLanguage() string {
	if p.flags.TargetLanguage == "Bulgarian" && viper.IsSet("translation.target_language") {
		return viper.GetString("translation.target_language")
	}
	return p.flags.TargetLanguage
}

// translationProvider builds the provider from flags and config. When the
// other provider has a key configured too it is wired in as a fallback.
func (p *Processor) translationProvider() (ai.Provider, error) {
	config := &ai.Config{
		Provider:       p.flags.Translator,
		TargetLanguage: p.targetLanguage(),
		OpenAIKey:      cli.GetOpenAIKey(),
		OpenAIModel:    p.flags.OpenAIModel,
		GeminiKey:      cli.GetGeminiKey(),
		GeminiModel:    p.flags.GeminiModel,
	}

	// Use config file values if not overridden by flags
	if config.Provider == "openai" && viper.IsSet("translation.provider") {
		config.Provider = viper.GetString("translation.provider")
	}
	if config.OpenAIModel == "gpt-4o-mini" && viper.IsSet("translation.openai_model") {
		config.OpenAIModel = viper.GetString("translation.openai_model")
	}
	if config.GeminiModel == "gemini-2.0-flash" && viper.IsSet("translation.gemini_model") {
		config.GeminiModel = viper.GetString("translation.gemini_model")
	}

	primary, err := ai.NewProvider(config)
	if err != nil {
		return nil, err
	}

	fallbackConfig := *config
	switch config.Provider {
	case "openai":
		if config.GeminiKey == "" {
			return primary, nil
		}
		fallbackConfig.Provider = "gemini"
	case "gemini":
		if config.OpenAIKey == "" {
			return primary, nil
		}
		fallbackConfig.Provider = "openai"
	default:
		return primary, nil
	}

	fallback, err := ai.NewProvider(&fallbackConfig)
	if err != nil {
		return primary, nil
	}
	return ai.NewProviderWithFallback(primary, fallback), nil
}

// illustrationGenerator builds the generator from flags and config
func (p *Processor) illustrationGenerator() *illustration.Generator {
	config := &illustration.Config{
		APIKey:    cli.GetOpenAIKey(),
		Model:     p.flags.OpenAIImageModel,
		Size:      p.flags.OpenAIImageSize,
		Quality:   p.flags.OpenAIImageQuality,
		Style:     p.flags.OpenAIImageStyle,
		OutputDir: filepath.Join(p.outputDir(), "illustrations"),
	}

	// Use config file values if not overridden by flags
	if p.flags.OpenAIImageModel == "dall-e-2" && viper.IsSet("image.openai_model") {
		config.Model = viper.GetString("image.openai_model")
	}
	if p.flags.OpenAIImageSize == "512x512" && viper.IsSet("image.openai_size") {
		config.Size = viper.GetString("image.openai_size")
	}
	if p.flags.OpenAIImageQuality == "standard" && viper.IsSet("image.openai_quality") {
		config.Quality = viper.GetString("image.openai_quality")
	}
	if p.flags.OpenAIImageStyle == "natural" && viper.IsSet("image.openai_style") {
		config.Style = viper.GetString("image.openai_style")
	}

	return illustration.NewGenerator(config)
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	// Create GUI configuration from command line flags and viper config
	guiConfig := &gui.Config{
		OpenAIKey:      cli.GetOpenAIKey(),
		GeminiKey:      cli.GetGeminiKey(),
		Translator:     p.flags.Translator,
		TargetLanguage: p.targetLanguage(),
		DictEndpoint:   p.flags.DictEndpoint,
		DictLanguage:   p.flags.DictLanguage,
		GroupDB:        p.groupDBPath(),
	}

	// Only set OutputDir if it was explicitly provided via flag
	// Check if the outputDir is different from the default
	home, _ := os.UserHomeDir()
	defaultOutputDir := filepath.Join(home, ".local", "state", "lexipick", "exports")
	if p.flags.OutputDir != defaultOutputDir {
		// User explicitly set a different output directory
		guiConfig.OutputDir = p.flags.OutputDir
	}
	// Otherwise, gui.New will use its own default (XDG state directory)

	// Create and run GUI application
	app := gui.New(guiConfig)
	app.Run()

	return nil
}
