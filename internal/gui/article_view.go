package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/lexipick/internal/picker"
)

// ArticleView renders the tokenized article as a wrapping sequence of
// word chips. Words toggle on tap; a merge affordance appears between
// adjacent selected words.
type ArticleView struct {
	widget.BaseWidget

	flow   *fyne.Container
	scroll *container.Scroll

	session  *picker.Session
	onToggle func(pos int)
	onMerge  func(a, b int)
}

// NewArticleView creates an empty article view
func NewArticleView(onToggle func(pos int), onMerge func(a, b int)) *ArticleView {
	v := &ArticleView{
		onToggle: onToggle,
		onMerge:  onMerge,
	}
	v.flow = container.New(NewFlowLayout())
	v.scroll = container.NewVScroll(v.flow)
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *ArticleView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.scroll)
}

// SetSession replaces the displayed session
func (v *ArticleView) SetSession(session *picker.Session) {
	v.session = session
	v.Rebuild()
}

// Clear drops the session and empties the view
func (v *ArticleView) Clear() {
	v.session = nil
	v.flow.Objects = nil
	v.flow.Refresh()
}

// Rebuild regenerates all chips from the current session state. It is
// called after every toggle and merge.
func (v *ArticleView) Rebuild() {
	if v.session == nil {
		return
	}

	// Merge affordances keyed by their left member
	mergeAfter := make(map[int]picker.Pair)
	for _, pair := range v.session.MergeablePairs() {
		mergeAfter[pair.A] = pair
	}

	tokens := v.session.Tokens()
	objects := make([]fyne.CanvasObject, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case picker.KindWord:
			objects = append(objects, v.makeChip(tok))
			if pair, ok := mergeAfter[tok.Position]; ok {
				objects = append(objects, v.makeMergeButton(pair))
			}
		case picker.KindNewline:
			objects = append(objects, NewRowBreak())
		default:
			if text := strings.TrimSpace(tok.Text); text != "" {
				objects = append(objects, widget.NewLabel(text))
			}
		}
	}

	v.flow.Objects = objects
	v.flow.Refresh()
	v.scroll.Refresh()
}

func (v *ArticleView) makeChip(tok picker.Token) fyne.CanvasObject {
	pos := tok.Position
	chip := ttwidget.NewButton(tok.Text, func() {
		if v.onToggle != nil {
			v.onToggle(pos)
		}
	})

	switch {
	case v.session.InPhrase(pos):
		chip.Importance = widget.SuccessImportance
		chip.SetToolTip("In a phrase (click to dissolve it)")
	case v.session.IsSelected(pos):
		chip.Importance = widget.HighImportance
		chip.SetToolTip("Picked (click to unpick)")
	default:
		chip.Importance = widget.LowImportance
		chip.SetToolTip("Click to pick")
	}
	return chip
}

func (v *ArticleView) makeMergeButton(pair picker.Pair) fyne.CanvasObject {
	btn := ttwidget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		if v.onMerge != nil {
			v.onMerge(pair.A, pair.B)
		}
	})
	btn.Importance = widget.MediumImportance
	btn.SetToolTip("Merge into a phrase")
	return btn
}
