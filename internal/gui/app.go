package gui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/lexipick/internal"
	"codeberg.org/snonux/lexipick/internal/ai"
	"codeberg.org/snonux/lexipick/internal/article"
	"codeberg.org/snonux/lexipick/internal/dictionary"
	"codeberg.org/snonux/lexipick/internal/groups"
	"codeberg.org/snonux/lexipick/internal/picker"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	articleEntry     *CustomMultiLineEntry
	articleView      *ArticleView
	panel            *FloatingPanel
	activityLog      *ActivityLog
	entryPane        *fyne.Container
	tokenPane        *fyne.Container
	contentStack     *fyne.Container
	statusLabel      *widget.Label
	queueStatusLabel *widget.Label

	// Toolbar buttons
	openButton      *ttwidget.Button
	fetchButton     *ttwidget.Button
	tokenizeButton  *ttwidget.Button
	resetButton     *ttwidget.Button
	exportButton    *ttwidget.Button
	saveGroupButton *ttwidget.Button
	groupsButton    *ttwidget.Button
	helpButton      *ttwidget.Button

	// Picking state
	session *picker.Session
	dict    *dictionary.Client
	cache   *dictionary.Cache

	// Saved groups
	store      *groups.Store
	groupsView *GroupsView

	// Group translation queue
	queue        *TranslationQueue
	translator   ai.Provider
	currentJobID int

	logVisible bool
	dialogOpen bool // Track if a modal dialog is open so shortcuts stay quiet

	// Configuration
	config *Config

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// Config holds GUI application configuration
type Config struct {
	OutputDir      string
	GroupDB        string
	DictEndpoint   string
	DictLanguage   string
	TargetLanguage string
	Translator     string
	OpenAIKey      string
	GeminiKey      string
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	// Use XDG Base Directory specification for state data
	stateDir := filepath.Join(homeDir, ".local", "state", "lexipick")

	return &Config{
		OutputDir:      filepath.Join(stateDir, "exports"),
		GroupDB:        filepath.Join(stateDir, "groups.db"),
		DictEndpoint:   dictionary.DefaultEndpoint,
		DictLanguage:   "en",
		TargetLanguage: "Bulgarian",
		Translator:     "openai",
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		// Fill in missing fields with defaults
		defaults := DefaultConfig()
		if config.OutputDir == "" {
			config.OutputDir = defaults.OutputDir
		}
		if config.GroupDB == "" {
			config.GroupDB = defaults.GroupDB
		}
		if config.DictEndpoint == "" {
			config.DictEndpoint = defaults.DictEndpoint
		}
		if config.DictLanguage == "" {
			config.DictLanguage = defaults.DictLanguage
		}
		if config.TargetLanguage == "" {
			config.TargetLanguage = defaults.TargetLanguage
		}
		if config.Translator == "" {
			config.Translator = defaults.Translator
		}
	}

	// Ensure state directories exist
	os.MkdirAll(config.OutputDir, 0755)
	os.MkdirAll(filepath.Dir(config.GroupDB), 0755)

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.lexipick")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:    myApp,
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}

	// Initialize the group translation queue
	a.queue = NewTranslationQueue(ctx)
	a.queue.SetCallbacks(a.onQueueStatusUpdate, a.onJobComplete)

	// Dictionary lookups feed the floating panel and enrich stored
	// entries with phonetics during group translation
	a.dict = dictionary.NewClient(&dictionary.Config{
		Endpoint: config.DictEndpoint,
		Language: config.DictLanguage,
	})
	a.cache = dictionary.NewCache(a.dict)
	a.cache.SetOnUpdate(a.onDefinitionUpdate)

	a.translator = buildTranslator(config)

	store, err := groups.Open(config.GroupDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open group database: %v\n", err)
	} else {
		a.store = store
	}

	a.setupUI()

	// Update initial queue status
	a.updateQueueStatus()

	return a
}

// buildTranslator wires the configured provider, with the other one as
// fallback when both keys are present. Returns nil when no key is
// configured; the translate action stays disabled then.
func buildTranslator(config *Config) ai.Provider {
	if config.OpenAIKey == "" && config.GeminiKey == "" {
		return nil
	}

	aiConfig := &ai.Config{
		Provider:       config.Translator,
		TargetLanguage: config.TargetLanguage,
		OpenAIKey:      config.OpenAIKey,
		GeminiKey:      config.GeminiKey,
	}

	primary, err := ai.NewProvider(aiConfig)
	if err != nil {
		// The configured provider has no key; try the other one
		otherConfig := *aiConfig
		if aiConfig.Provider == "gemini" {
			otherConfig.Provider = "openai"
		} else {
			otherConfig.Provider = "gemini"
		}
		other, err := ai.NewProvider(&otherConfig)
		if err != nil {
			return nil
		}
		return other
	}

	fallbackConfig := *aiConfig
	switch aiConfig.Provider {
	case "openai":
		if config.GeminiKey == "" {
			return primary
		}
		fallbackConfig.Provider = "gemini"
	case "gemini":
		if config.OpenAIKey == "" {
			return primary
		}
		fallbackConfig.Provider = "openai"
	default:
		return primary
	}

	fallback, err := ai.NewProvider(&fallbackConfig)
	if err != nil {
		return primary
	}
	return ai.NewProviderWithFallback(primary, fallback)
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Lexipick v%s - Article Word Picker", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(1000, 720))

	// Article input pane
	a.articleEntry = NewCustomMultiLineEntry()
	a.articleEntry.SetPlaceHolder("Paste article text here, or open a file / fetch a URL from the toolbar... Press Escape to exit field")
	a.articleEntry.Wrapping = fyne.TextWrapWord
	a.articleEntry.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})
	a.entryPane = container.NewPadded(a.articleEntry)

	// Token pane: word chips with the floating panel stacked on top
	a.articleView = NewArticleView(a.onToggleToken, a.onMergeTokens)
	a.panel = NewFloatingPanel(24, 24)
	a.tokenPane = container.NewStack(a.articleView, container.NewWithoutLayout(a.panel))
	a.tokenPane.Hide()

	a.contentStack = container.NewStack(a.entryPane, a.tokenPane)

	// Toolbar buttons (tooltips are set after the tooltip layer exists)
	a.openButton = ttwidget.NewButtonWithIcon("", theme.FolderOpenIcon(), a.onOpenFile)
	a.fetchButton = ttwidget.NewButtonWithIcon("", theme.DownloadIcon(), a.onFetchURL)
	a.tokenizeButton = ttwidget.NewButtonWithIcon("", theme.ConfirmIcon(), a.onTokenize)
	a.resetButton = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.onReset)
	a.exportButton = ttwidget.NewButtonWithIcon("", theme.DocumentSaveIcon(), a.onExport)
	a.saveGroupButton = ttwidget.NewButtonWithIcon("", theme.FolderNewIcon(), a.onSaveGroup)
	a.groupsButton = ttwidget.NewButtonWithIcon("", theme.StorageIcon(), a.onShowGroups)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	a.refreshPickButtons()

	toolbar := container.NewHBox(
		a.openButton,
		a.fetchButton,
		widget.NewSeparator(),
		a.tokenizeButton,
		a.resetButton,
		widget.NewSeparator(),
		a.exportButton,
		a.saveGroupButton,
		a.groupsButton,
		widget.NewSeparator(),
		a.helpButton,
	)

	// Activity log sits above the status bar and is hidden until Ctrl+L
	a.activityLog = NewActivityLog()
	a.activityLog.Hide()

	// Status section
	a.statusLabel = widget.NewLabel("Ready")
	a.queueStatusLabel = widget.NewLabel("Queue: Empty")
	a.queueStatusLabel.TextStyle = fyne.TextStyle{Italic: true}

	statusSection := container.NewVBox(
		a.statusLabel,
		widget.NewSeparator(),
		a.queueStatusLabel,
	)

	content := container.NewBorder(
		container.NewVBox(
			toolbar,
			widget.NewSeparator(),
		),
		container.NewVBox(
			a.activityLog,
			statusSection,
		),
		nil, nil,
		a.contentStack,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	// Now that tooltip layer is created, set all tooltips
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.queue.Stop()
		a.wg.Wait()
		if a.store != nil {
			a.store.Close()
		}
	})

	// Set up keyboard shortcuts
	a.setupKeyboardShortcuts()
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// setupTooltips sets the toolbar tooltips with their hotkey hints
func (a *Application) setupTooltips() {
	a.openButton.SetToolTip("Open article file (o)")
	a.fetchButton.SetToolTip("Fetch article from URL (u)")
	a.tokenizeButton.SetToolTip("Tokenize article text (t)")
	a.resetButton.SetToolTip("Reset article (r)")
	a.exportButton.SetToolTip("Export picks to JSON (e)")
	a.saveGroupButton.SetToolTip("Save picks as word group (s)")
	a.groupsButton.SetToolTip("Browse word groups (g)")
	a.helpButton.SetToolTip("Show hotkeys (h)")
}

// onOpenFile loads an article from a plain text file
func (a *Application) onOpenFile() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			a.showError(fmt.Errorf("failed to read article: %w", err))
			return
		}

		a.resetSessionState()
		a.articleEntry.SetText(string(data))
		a.showEntryPane()
		a.updateStatus(fmt.Sprintf("Loaded %s", reader.URI().Name()))
		a.activityLog.Logf("Loaded article from %s", reader.URI().Path())
	}, a.window)

	d.SetFilter(storage.NewExtensionFileFilter([]string{".txt", ".text", ".md"}))
	d.Show()
}

// onFetchURL downloads a web page and extracts its readable text
func (a *Application) onFetchURL() {
	urlEntry := NewCustomEntry()
	urlEntry.SetPlaceHolder("https://example.com/article")

	items := []*widget.FormItem{widget.NewFormItem("URL", urlEntry)}
	d := dialog.NewForm("Fetch Article", "Fetch", "Cancel", items, func(confirm bool) {
		if !confirm || strings.TrimSpace(urlEntry.Text) == "" {
			return
		}
		a.fetchArticle(strings.TrimSpace(urlEntry.Text))
	}, a.window)

	urlEntry.SetOnEscape(d.Hide)
	d.Resize(fyne.NewSize(460, 0))
	d.Show()
	a.window.Canvas().Focus(urlEntry)
}

func (a *Application) fetchArticle(rawURL string) {
	a.updateStatus(fmt.Sprintf("Fetching %s...", rawURL))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		art, err := article.Fetch(a.ctx, rawURL)
		fyne.Do(func() {
			if err != nil {
				a.showError(err)
				return
			}
			a.resetSessionState()
			a.articleEntry.SetText(art.Text)
			a.showEntryPane()
			a.updateStatus(fmt.Sprintf("Fetched %q", art.Title))
			a.activityLog.Logf("Fetched article %q from %s", art.Title, rawURL)
		})
	}()
}

// onTokenize turns the article text into clickable word chips
func (a *Application) onTokenize() {
	if a.session != nil {
		a.updateStatus("Article already tokenized; reset first (r)")
		return
	}

	session, err := picker.NewSession(a.articleEntry.Text)
	if err != nil {
		a.showError(err)
		return
	}

	a.session = session
	a.cache.Reset()
	a.articleView.SetSession(session)
	a.panel.Update(session, a.cache)
	a.showTokenPane()
	a.refreshPickButtons()

	words := 0
	for _, tok := range session.Tokens() {
		if tok.Kind == picker.KindWord {
			words++
		}
	}
	a.updateStatus(fmt.Sprintf("Tokenized article: %d words. Click words to pick them.", words))
	a.activityLog.Logf("Tokenized article (%d words)", words)
}

// onReset discards the current session and returns to the text pane
func (a *Application) onReset() {
	if a.session == nil {
		a.articleEntry.SetText("")
		a.updateStatus("Ready")
		return
	}

	a.dialogOpen = true
	dialog.ShowConfirm("Reset Article",
		"Discard the tokens, picks and phrases for this article?",
		func(confirm bool) {
			a.dialogOpen = false
			if !confirm {
				return
			}
			a.resetSessionState()
			a.showEntryPane()
			a.updateStatus("Ready")
			a.activityLog.AddMessage("Reset article")
		}, a.window)
}

// resetSessionState drops the session and everything derived from it.
// In-flight lookups become no-ops via the cache generation counter.
func (a *Application) resetSessionState() {
	a.session = nil
	a.cache.Reset()
	a.articleView.Clear()
	a.panel.Update(nil, a.cache)
	a.refreshPickButtons()
}

func (a *Application) showEntryPane() {
	a.tokenPane.Hide()
	a.entryPane.Show()
}

func (a *Application) showTokenPane() {
	a.entryPane.Hide()
	a.tokenPane.Show()
}

// onToggleToken flips one word in or out of the selection. Toggling a
// phrase member dissolves its phrase.
func (a *Application) onToggleToken(pos int) {
	if a.session == nil {
		return
	}
	a.session.Toggle(pos)
	a.refreshPicks()
}

// onMergeTokens merges two adjacent picks into a phrase
func (a *Application) onMergeTokens(left, right int) {
	if a.session == nil {
		return
	}
	a.session.Merge(left, right)
	a.refreshPicks()
}

func (a *Application) refreshPicks() {
	a.articleView.Rebuild()
	a.panel.Update(a.session, a.cache)
	a.refreshPickButtons()
}

func (a *Application) refreshPickButtons() {
	if a.session != nil && a.session.HasContent() {
		a.exportButton.Enable()
		a.saveGroupButton.Enable()
	} else {
		a.exportButton.Disable()
		a.saveGroupButton.Disable()
	}
}

// onExport writes the current picks to a JSON file
func (a *Application) onExport() {
	if a.session == nil || !a.session.HasContent() {
		a.showError(fmt.Errorf("nothing picked yet"))
		return
	}

	doc := a.session.Export(time.Now())

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := doc.WriteJSON(writer); err != nil {
			a.showError(fmt.Errorf("failed to write export: %w", err))
			return
		}
		a.updateStatus(fmt.Sprintf("Exported %d words and %d phrases", len(doc.Words), len(doc.Phrases)))
		a.activityLog.Logf("Exported picks to %s", writer.URI().Path())
	}, a.window)

	d.SetFileName("picks_" + internal.GenerateFileID(strings.Join(doc.Words, "_")) + ".json")
	d.Show()
}

// onSaveGroup persists the current picks as a named word group
func (a *Application) onSaveGroup() {
	if a.session == nil || !a.session.HasContent() {
		a.showError(fmt.Errorf("nothing picked yet"))
		return
	}
	if a.store == nil {
		a.showError(fmt.Errorf("group database unavailable"))
		return
	}

	nameEntry := NewCustomEntry()
	nameEntry.SetPlaceHolder("Group name...")

	items := []*widget.FormItem{widget.NewFormItem("Name", nameEntry)}
	d := dialog.NewForm("Save Group", "Save", "Cancel", items, func(confirm bool) {
		if !confirm || nameEntry.Text == "" {
			return
		}

		doc := a.session.Export(time.Now())
		group, err := a.store.SaveExport(nameEntry.Text, doc)
		if err != nil {
			a.showError(fmt.Errorf("failed to save group: %w", err))
			return
		}

		a.updateStatus(fmt.Sprintf("Saved group %q", group.Name))
		a.activityLog.Logf("Saved group %q (%s) with %d entries", group.Name, group.ID, len(doc.Words)+len(doc.Phrases))
		if a.groupsView != nil {
			a.groupsView.reload()
		}
	}, a.window)

	nameEntry.SetOnEscape(d.Hide)
	d.Resize(fyne.NewSize(340, 0))
	d.Show()
	a.window.Canvas().Focus(nameEntry)
}

// onShowGroups opens the group browser window
func (a *Application) onShowGroups() {
	if a.store == nil {
		a.showError(fmt.Errorf("group database unavailable"))
		return
	}
	if a.groupsView == nil {
		a.groupsView = newGroupsView(a)
	}
	a.groupsView.Show()
}

// onDefinitionUpdate re-renders the panel when a lookup finishes
func (a *Application) onDefinitionUpdate(word string) {
	fyne.Do(func() {
		if a.session != nil {
			a.panel.Update(a.session, a.cache)
		}
	})
}

// onToggleActivityLog shows or hides the in-app activity log
func (a *Application) onToggleActivityLog() {
	if a.logVisible {
		a.activityLog.Hide()
	} else {
		a.activityLog.Show()
	}
	a.logVisible = !a.logVisible
}

// processNextInQueue pulls the next translation job when idle
func (a *Application) processNextInQueue() {
	a.mu.Lock()
	if a.currentJobID != 0 {
		a.mu.Unlock()
		return
	}

	job := a.queue.ProcessNextJob()
	if job == nil {
		a.mu.Unlock()
		return
	}
	a.currentJobID = job.ID
	a.mu.Unlock()

	fyne.Do(func() {
		a.updateStatus(fmt.Sprintf("Translating group %q...", job.GroupName))
		a.updateQueueStatus()
	})

	// Process in background
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.processTranslationJob(job)
	}()
}

// processTranslationJob translates one group's terms and stores them
func (a *Application) processTranslationJob(job *TranslationJob) {
	if a.translator == nil {
		a.queue.FailJob(job.ID, fmt.Errorf("no translation provider configured"))
		a.finishCurrentJob()
		return
	}

	translations, err := a.translator.TranslateWords(a.ctx, job.Terms, a.config.TargetLanguage)
	if err != nil {
		a.queue.FailJob(job.ID, fmt.Errorf("translation failed: %w", err))
		a.finishCurrentJob()
		return
	}

	byTerm := make(map[string]string, len(translations))
	for _, tr := range translations {
		if tr.Translation != "" {
			byTerm[tr.Term] = tr.Translation
		}
	}

	entries, err := a.store.Entries(job.GroupID)
	if err != nil {
		a.queue.FailJob(job.ID, fmt.Errorf("failed to load group entries: %w", err))
		a.finishCurrentJob()
		return
	}

	updated := 0
	for _, entry := range entries {
		if entry.Translation != "" {
			continue
		}
		translation, ok := byTerm[entry.Term]
		if !ok {
			continue
		}
		entry.Translation = translation
		if entry.Phonetic == "" && !entry.IsPhrase {
			if lookup, err := a.dict.Lookup(a.ctx, entry.Term); err == nil {
				entry.Phonetic = lookup.Phonetic
			}
		}
		if err := a.store.UpdateEntry(entry); err != nil {
			fyne.Do(func() {
				a.activityLog.Logf("Warning: failed to store translation for %q: %v", entry.Term, err)
			})
			continue
		}
		updated++
	}

	a.queue.CompleteJob(job.ID, updated)

	fyne.Do(func() {
		a.updateStatus(fmt.Sprintf("Translated group %q", job.GroupName))
		a.activityLog.Logf("Translated %d of %d terms in group %q", updated, len(job.Terms), job.GroupName)
		if a.groupsView != nil {
			a.groupsView.refreshGroup(job.GroupID)
		}
	})

	a.finishCurrentJob()
}

// finishCurrentJob clears the current job and processes next in queue
func (a *Application) finishCurrentJob() {
	a.mu.Lock()
	a.currentJobID = 0
	a.mu.Unlock()

	fyne.Do(func() {
		a.updateQueueStatus()
		a.processNextInQueue()
	})
}

// onQueueStatusUpdate handles queue status updates
func (a *Application) onQueueStatusUpdate(job *TranslationJob) {
	fyne.Do(func() {
		a.updateQueueStatus()
	})
}

// onJobComplete handles job completion
func (a *Application) onJobComplete(job *TranslationJob) {
	fyne.Do(func() {
		a.updateQueueStatus()
		if job.Status == StatusFailed {
			a.showError(fmt.Errorf("translation of group %q failed: %w", job.GroupName, job.Error))
		}
	})
}

// updateQueueStatus updates the queue status label
func (a *Application) updateQueueStatus() {
	queued, processing, completed, failed := a.queue.GetQueueStatus()
	if queued+processing+completed+failed == 0 {
		a.queueStatusLabel.SetText("Queue: Empty")
		return
	}

	status := fmt.Sprintf("Queue: %d queued | %d translating | %d done", queued, processing, completed)
	if failed > 0 {
		status += fmt.Sprintf(" | %d failed", failed)
	}
	a.queueStatusLabel.SetText(status)
}

// setupKeyboardShortcuts sets up keyboard shortcuts for the application
func (a *Application) setupKeyboardShortcuts() {
	// Handle character input (for focus shortcuts that shouldn't type the character)
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if a.isEntryFocused() || a.dialogOpen {
			return
		}

		switch r {
		case 'a', 'A':
			a.window.Canvas().Focus(a.articleEntry)
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		// Handle Escape key to unfocus any field
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
			a.dialogOpen = false
			return
		}

		// Tab focuses the article text when nothing else has focus
		if ev.Name == fyne.KeyTab {
			if !a.isEntryFocused() && !a.dialogOpen {
				a.window.Canvas().Focus(a.articleEntry)
			}
			return
		}

		if a.isEntryFocused() || a.dialogOpen {
			return
		}

		// Skip the focus key since it is handled in SetOnTypedRune
		if ev.Name == fyne.KeyA {
			return
		}

		a.handleShortcutKey(ev.Name)
	})

	// Ctrl+L toggles the activity log even while an entry has focus
	ctrlL := &desktop.CustomShortcut{KeyName: fyne.KeyL, Modifier: fyne.KeyModifierControl}
	a.window.Canvas().AddShortcut(ctrlL, func(fyne.Shortcut) {
		a.onToggleActivityLog()
	})
}

func (a *Application) isEntryFocused() bool {
	switch a.window.Canvas().Focused().(type) {
	case *widget.Entry, *CustomEntry, *CustomMultiLineEntry:
		return true
	}
	return false
}

// handleShortcutKey handles the actual shortcut action
func (a *Application) handleShortcutKey(key fyne.KeyName) {
	switch key {
	case fyne.KeyO: // Open article file
		a.onOpenFile()

	case fyne.KeyU: // Fetch article from URL
		a.onFetchURL()

	case fyne.KeyT: // Tokenize
		a.onTokenize()

	case fyne.KeyR: // Reset
		a.onReset()

	case fyne.KeyE: // Export picks
		if a.exportButton.Disabled() {
			return
		}
		a.onExport()

	case fyne.KeyS: // Save picks as group
		if a.saveGroupButton.Disabled() {
			return
		}
		a.onSaveGroup()

	case fyne.KeyG: // Group browser
		a.onShowGroups()

	case fyne.KeyH: // Show hotkeys
		a.onShowHotkeys()

	case fyne.KeyQ: // Quit application
		a.window.Close()
	}
}

func (a *Application) onShowHotkeys() {
	hotkeys := `[Project Page: https://codeberg.org/snonux/lexipick](https://codeberg.org/snonux/lexipick)

---

## Article
**o** Open article file
**u** Fetch article from URL
**t** Tokenize article text
**r** Reset article
**a** Focus article text
**Tab** Focus article text
**Esc** Unfocus field

## Picking
Click a word to pick it, click it again to unpick.
Click **+** between two picked neighbours to merge them into a phrase.
Click any phrase member to dissolve the phrase.
Drag the panel by its header; minimize it with the arrow button.

## Picks
**e** Export picks to JSON
**s** Save picks as word group
**g** Browse word groups

## View
**Ctrl+L** Toggle activity log

## Help
**h** Show hotkeys
**c** Close dialog
**q** Quit application

Press **c** to close this dialog`

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	paddedContent := container.NewPadded(content)

	scroll := container.NewScroll(paddedContent)
	scroll.SetMinSize(fyne.NewSize(620, 480))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)

	// Store dialog state
	dialogOpen := true

	// Store original rune handler
	originalRuneHandler := a.window.Canvas().OnTypedRune()

	// Add temporary handler for 'c' to close dialog
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if dialogOpen && (r == 'c' || r == 'C') {
			d.Hide()
			return
		}
		if originalRuneHandler != nil {
			originalRuneHandler(r)
		}
	})

	d.Show()

	// Restore original handlers when dialog closes
	d.SetOnClosed(func() {
		dialogOpen = false
		a.setupKeyboardShortcuts()
	})
}

// Helper methods
func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus("Error: " + err.Error())
	a.activityLog.Logf("Error: %v", err)
}
