package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RowBreak forces the flow layout onto a new row. The article view
// emits one per newline token so paragraph structure survives.
type RowBreak struct {
	widget.BaseWidget
}

// NewRowBreak creates a row break marker
func NewRowBreak() *RowBreak {
	b := &RowBreak{}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *RowBreak) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewWithoutLayout())
}

// flowLayout arranges children left to right, wrapping to a new row
// when the available width runs out, like words in a paragraph. The
// token chips of the article view use it.
type flowLayout struct {
	hPad      float32
	vPad      float32
	lastWidth float32
}

// NewFlowLayout creates a wrapping row layout
func NewFlowLayout() fyne.Layout {
	return &flowLayout{hPad: 2, vPad: 4}
}

// Layout implements fyne.Layout
func (l *flowLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	l.lastWidth = size.Width

	x, y := float32(0), float32(0)
	rowHeight := float32(0)

	for _, obj := range objects {
		if !obj.Visible() {
			continue
		}
		if _, ok := obj.(*RowBreak); ok {
			obj.Resize(fyne.NewSize(0, 0))
			obj.Move(fyne.NewPos(x, y))
			x = 0
			y += rowHeight + l.vPad
			rowHeight = 0
			continue
		}

		min := obj.MinSize()

		// Wrap when the chip no longer fits on this row
		if x > 0 && x+min.Width > size.Width {
			x = 0
			y += rowHeight + l.vPad
			rowHeight = 0
		}

		obj.Resize(min)
		obj.Move(fyne.NewPos(x, y))

		x += min.Width + l.hPad
		if min.Height > rowHeight {
			rowHeight = min.Height
		}
	}
}

// MinSize implements fyne.Layout. The height depends on the width of
// the last layout pass; before any pass it reports the largest child
// so the container never collapses.
func (l *flowLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if l.lastWidth <= 0 {
		var w, h float32
		for _, obj := range objects {
			if !obj.Visible() {
				continue
			}
			min := obj.MinSize()
			if min.Width > w {
				w = min.Width
			}
			if min.Height > h {
				h = min.Height
			}
		}
		return fyne.NewSize(w, h)
	}

	x, y := float32(0), float32(0)
	rowHeight := float32(0)
	for _, obj := range objects {
		if !obj.Visible() {
			continue
		}
		if _, ok := obj.(*RowBreak); ok {
			x = 0
			y += rowHeight + l.vPad
			rowHeight = 0
			continue
		}

		min := obj.MinSize()
		if x > 0 && x+min.Width > l.lastWidth {
			x = 0
			y += rowHeight + l.vPad
			rowHeight = 0
		}
		x += min.Width + l.hPad
		if min.Height > rowHeight {
			rowHeight = min.Height
		}
	}
	return fyne.NewSize(l.lastWidth, y+rowHeight)
}
