package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/lexipick/internal/dictionary"
	"codeberg.org/snonux/lexipick/internal/picker"
)

const (
	panelWidth     = float32(330)
	panelMaxHeight = float32(380)
)

// FloatingPanel shows the current picks with live dictionary
// enrichment. It floats over the article view inside a layout-free
// container, is dragged by its header and minimizes to just the
// header. It is hidden while nothing is picked.
type FloatingPanel struct {
	widget.BaseWidget

	state *picker.PanelState

	background  *canvas.Rectangle
	header      *panelHeader
	titleLabel  *widget.Label
	minimizeBtn *widget.Button
	rows        *fyne.Container
	scroll      *container.Scroll
	root        *fyne.Container
}

// NewFloatingPanel creates a hidden panel at the given offset
func NewFloatingPanel(x, y int) *FloatingPanel {
	p := &FloatingPanel{
		state: picker.NewPanelState(x, y),
	}

	p.background = canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	p.background.StrokeColor = theme.Color(theme.ColorNameSeparator)
	p.background.StrokeWidth = 1
	p.background.CornerRadius = theme.InputRadiusSize()

	p.titleLabel = widget.NewLabel("Picked words")
	p.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	p.minimizeBtn = widget.NewButtonWithIcon("", theme.MenuDropUpIcon(), p.onToggleMinimize)
	p.minimizeBtn.Importance = widget.LowImportance

	p.header = newPanelHeader(p)

	p.rows = container.NewVBox()
	p.scroll = container.NewVScroll(p.rows)

	p.root = container.NewStack(
		p.background,
		container.NewBorder(p.header, nil, nil, nil, container.NewPadded(p.scroll)),
	)

	p.ExtendBaseWidget(p)
	p.Hide()
	p.applyPosition()
	return p
}

// CreateRenderer implements fyne.Widget
func (p *FloatingPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.root)
}

// Update rebuilds the panel rows from the session. Every effective
// word is pushed into the cache; the cache deduplicates lookups.
func (p *FloatingPanel) Update(session *picker.Session, cache *dictionary.Cache) {
	if session == nil || !session.HasContent() {
		p.Hide()
		return
	}

	words := session.EffectiveWords()
	phrases := session.PhraseStrings()
	p.titleLabel.SetText(fmt.Sprintf("Picked words (%d)", len(words)+len(phrases)))

	rows := make([]fyne.CanvasObject, 0, len(words)+len(phrases))
	for _, tok := range words {
		cache.EnsureFetched(tok.Text)
		record, ok := cache.Get(tok.Text)
		rows = append(rows, wordRow(picker.Normalize(tok.Text), record, ok))
	}
	for _, phrase := range phrases {
		rows = append(rows, phraseRow(phrase))
	}

	p.rows.Objects = rows
	p.rows.Refresh()

	p.Show()
	p.applySize()
	p.Refresh()
}

// onToggleMinimize collapses the panel to its header or restores it
func (p *FloatingPanel) onToggleMinimize() {
	p.state.ToggleMinimized()
	if p.state.Minimized {
		p.minimizeBtn.SetIcon(theme.MenuDropDownIcon())
		p.scroll.Hide()
	} else {
		p.minimizeBtn.SetIcon(theme.MenuDropUpIcon())
		p.scroll.Show()
	}
	p.applySize()
	p.Refresh()
}

func (p *FloatingPanel) applyPosition() {
	p.Move(fyne.NewPos(float32(p.state.X), float32(p.state.Y)))
}

func (p *FloatingPanel) applySize() {
	if p.state.Minimized {
		p.Resize(fyne.NewSize(panelWidth, p.header.MinSize().Height))
		return
	}

	height := p.header.MinSize().Height + p.rows.MinSize().Height + 3*theme.Padding()
	if height > panelMaxHeight {
		height = panelMaxHeight
	}
	p.Resize(fyne.NewSize(panelWidth, height))
}

// wordRow renders one picked word with its enrichment state
func wordRow(word string, record dictionary.Record, found bool) fyne.CanvasObject {
	title := word
	if found && record.Phonetic != "" {
		title = fmt.Sprintf("%s  %s", word, record.Phonetic)
	}
	titleLabel := widget.NewLabel(title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	box := container.NewVBox(titleLabel)
	switch {
	case !found || record.Loading:
		loading := widget.NewLabel("looking up...")
		loading.TextStyle = fyne.TextStyle{Italic: true}
		box.Add(loading)
	case record.Err != "":
		errLabel := widget.NewLabel(record.Err)
		errLabel.TextStyle = fyne.TextStyle{Italic: true}
		errLabel.Wrapping = fyne.TextWrapWord
		box.Add(errLabel)
	default:
		for _, def := range record.Definitions {
			defLabel := widget.NewLabel("- " + def)
			defLabel.Wrapping = fyne.TextWrapWord
			box.Add(defLabel)
		}
	}
	return box
}

// phraseRow renders one phrase; phrases get no dictionary enrichment
func phraseRow(phrase string) fyne.CanvasObject {
	label := widget.NewLabel(fmt.Sprintf("“%s”", phrase))
	label.TextStyle = fyne.TextStyle{Bold: true, Italic: true}
	label.Wrapping = fyne.TextWrapWord
	return label
}

// panelHeader is the drag handle of the panel. Drags never start from
// the content area below it.
type panelHeader struct {
	widget.BaseWidget

	panel *FloatingPanel
	bar   *fyne.Container
}

func newPanelHeader(p *FloatingPanel) *panelHeader {
	h := &panelHeader{panel: p}
	h.bar = container.NewBorder(nil, nil, widget.NewIcon(theme.MenuIcon()), p.minimizeBtn, p.titleLabel)
	h.ExtendBaseWidget(h)
	return h
}

// CreateRenderer implements fyne.Widget
func (h *panelHeader) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.bar)
}

// Dragged implements fyne.Draggable. The event position is relative
// to the header, so the absolute pointer sits at panel origin plus
// event position.
func (h *panelHeader) Dragged(e *fyne.DragEvent) {
	p := h.panel
	pointerX := p.state.X + int(e.Position.X)
	pointerY := p.state.Y + int(e.Position.Y)

	if !p.state.Dragging() {
		p.state.BeginDrag(pointerX, pointerY)
		return
	}
	p.state.DragTo(pointerX, pointerY)
	p.applyPosition()
}

// DragEnd implements fyne.Draggable
func (h *panelHeader) DragEnd() {
	h.panel.state.EndDrag()
}
