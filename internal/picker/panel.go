package picker

// PanelState tracks the floating selection panel: its pixel offset,
// whether it is minimized to just the header, and an in-progress drag.
// One instance lives per session and is thrown away on reset; nothing
// is persisted.
type PanelState struct {
	X, Y      int
	Minimized bool

	dragging bool
	grabX    int
	grabY    int
}

// NewPanelState places the panel at the given offset.
func NewPanelState(x, y int) *PanelState {
	return &PanelState{X: x, Y: y}
}

// BeginDrag starts a drag from a press at the given pointer
// coordinates, capturing the pointer's offset from the panel origin.
// Presses inside the content area must not reach here; only the
// header initiates drags.
func (p *PanelState) BeginDrag(pointerX, pointerY int) {
	p.dragging = true
	p.grabX = pointerX - p.X
	p.grabY = pointerY - p.Y
}

// DragTo repositions the panel so the grabbed point stays under the
// pointer. Movement outside a drag is ignored.
func (p *PanelState) DragTo(pointerX, pointerY int) {
	if !p.dragging {
		return
	}
	p.X = pointerX - p.grabX
	p.Y = pointerY - p.grabY
}

// EndDrag finishes the drag, leaving the panel where it was released.
func (p *PanelState) EndDrag() {
	p.dragging = false
}

// Dragging reports whether a drag is in progress.
func (p *PanelState) Dragging() bool {
	return p.dragging
}

// ToggleMinimized collapses or expands the panel content. Independent
// of drag state.
func (p *PanelState) ToggleMinimized() {
	p.Minimized = !p.Minimized
}
