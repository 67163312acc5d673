package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/lexipick/internal"
	"codeberg.org/snonux/lexipick/internal/groups"
)

// GroupsView is the saved-group browser: a child window with all
// groups on the left, the selected group's entries on the right, and
// the selected entry's illustration below them. The window hides on
// close so it can be reopened with its state intact.
type GroupsView struct {
	parent *Application
	window fyne.Window

	groups  []*groups.Group
	entries []*groups.Entry

	selectedGroup int
	selectedEntry int

	groupList    *widget.List
	entryList    *widget.List
	entriesLabel *widget.Label
	illustration *IllustrationDisplay

	renameBtn    *ttwidget.Button
	deleteBtn    *ttwidget.Button
	translateBtn *ttwidget.Button
	exportBtn    *ttwidget.Button
	detachBtn    *ttwidget.Button
}

func newGroupsView(parent *Application) *GroupsView {
	v := &GroupsView{
		parent:        parent,
		selectedGroup: -1,
		selectedEntry: -1,
	}

	v.window = parent.app.NewWindow("Lexipick - Word Groups")
	v.window.SetCloseIntercept(v.window.Hide)

	v.groupList = widget.NewList(
		func() int { return len(v.groups) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("group")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(v.groups) {
				return
			}
			g := v.groups[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s (%s)", g.Name, g.CreatedAt.Format("2006-01-02")))
		},
	)
	v.groupList.OnSelected = v.onGroupSelected

	v.entryList = widget.NewList(
		func() int { return len(v.entries) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("entry")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(v.entries) {
				return
			}
			obj.(*widget.Label).SetText(entryListText(v.entries[id]))
		},
	)
	v.entryList.OnSelected = v.onEntrySelected

	v.entriesLabel = widget.NewLabel("Select a group")

	v.illustration = NewIllustrationDisplay()

	v.renameBtn = ttwidget.NewButtonWithIcon("Rename", theme.DocumentCreateIcon(), v.onRename)
	v.renameBtn.SetToolTip("Rename the selected group")

	v.deleteBtn = ttwidget.NewButtonWithIcon("Delete", theme.DeleteIcon(), v.onDelete)
	v.deleteBtn.SetToolTip("Delete the selected group and all its entries")

	v.translateBtn = ttwidget.NewButton("Translate", v.onTranslate)
	v.translateBtn.SetToolTip("Queue translation of the untranslated entries")

	v.exportBtn = ttwidget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), v.onExport)
	v.exportBtn.SetToolTip("Export the selected group to a JSON file")

	v.detachBtn = ttwidget.NewButton("Remove illustration", v.onDetachIllustration)
	v.detachBtn.SetToolTip("Detach the illustration from the selected entry")

	v.setActionsEnabled(false)
	v.detachBtn.Disable()

	actions := container.NewHBox(v.renameBtn, v.deleteBtn, v.translateBtn, v.exportBtn)

	left := container.NewBorder(widget.NewLabel("Groups:"), nil, nil, nil, v.groupList)
	right := container.NewBorder(
		v.entriesLabel,
		container.NewVBox(v.illustration, v.detachBtn),
		nil, nil,
		v.entryList,
	)

	split := container.NewHSplit(left, right)
	split.SetOffset(0.35)

	content := container.NewBorder(actions, nil, nil, nil, split)
	v.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, v.window.Canvas()))
	v.window.Resize(fyne.NewSize(780, 520))

	return v
}

// Show reloads the group list and brings the window up
func (v *GroupsView) Show() {
	v.reload()
	v.window.Show()
}

// reload refreshes the group list and clears the selection
func (v *GroupsView) reload() {
	gs, err := v.parent.store.Groups()
	if err != nil {
		dialog.ShowError(err, v.window)
		return
	}

	v.groups = gs
	v.entries = nil
	v.selectedGroup = -1
	v.selectedEntry = -1

	v.groupList.UnselectAll()
	v.groupList.Refresh()
	v.entryList.Refresh()
	v.entriesLabel.SetText("Select a group")
	v.illustration.Clear()
	v.setActionsEnabled(false)
	v.detachBtn.Disable()
}

// refreshGroup reloads the entry list when the given group is the one
// on display. Called after a background translation job finishes.
func (v *GroupsView) refreshGroup(groupID string) {
	group := v.currentGroup()
	if group == nil || group.ID != groupID {
		return
	}
	v.loadEntries(group)
}

func (v *GroupsView) onGroupSelected(id widget.ListItemID) {
	if id < 0 || id >= len(v.groups) {
		return
	}
	v.selectedGroup = id
	v.setActionsEnabled(true)
	v.loadEntries(v.groups[id])
}

func (v *GroupsView) loadEntries(group *groups.Group) {
	entries, err := v.parent.store.Entries(group.ID)
	if err != nil {
		dialog.ShowError(err, v.window)
		return
	}

	v.entries = entries
	v.selectedEntry = -1
	v.entryList.UnselectAll()
	v.entryList.Refresh()
	v.entriesLabel.SetText(fmt.Sprintf("%s - %d entries", group.Name, len(entries)))
	v.illustration.Clear()
	v.detachBtn.Disable()
}

func (v *GroupsView) onEntrySelected(id widget.ListItemID) {
	if id < 0 || id >= len(v.entries) {
		return
	}
	v.selectedEntry = id
	entry := v.entries[id]
	v.illustration.SetIllustration(entry.Illustration)
	if entry.Illustration != "" {
		v.detachBtn.Enable()
	} else {
		v.detachBtn.Disable()
	}
}

func (v *GroupsView) onRename() {
	group := v.currentGroup()
	if group == nil {
		return
	}

	nameEntry := NewCustomEntry()
	nameEntry.SetText(group.Name)

	items := []*widget.FormItem{widget.NewFormItem("Name", nameEntry)}
	d := dialog.NewForm("Rename Group", "Rename", "Cancel", items, func(confirm bool) {
		if !confirm || nameEntry.Text == "" || nameEntry.Text == group.Name {
			return
		}
		if err := v.parent.store.RenameGroup(group.ID, nameEntry.Text); err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		v.parent.activityLog.Logf("Renamed group %q to %q", group.Name, nameEntry.Text)
		v.reload()
	}, v.window)

	nameEntry.SetOnEscape(d.Hide)
	d.Resize(fyne.NewSize(340, 0))
	d.Show()
	v.window.Canvas().Focus(nameEntry)
}

func (v *GroupsView) onDelete() {
	group := v.currentGroup()
	if group == nil {
		return
	}

	dialog.ShowConfirm("Delete Group",
		fmt.Sprintf("Delete group %q and its %d entries?", group.Name, len(v.entries)),
		func(confirm bool) {
			if !confirm {
				return
			}
			if err := v.parent.store.DeleteGroup(group.ID); err != nil {
				dialog.ShowError(err, v.window)
				return
			}
			v.parent.activityLog.Logf("Deleted group %q", group.Name)
			v.reload()
		}, v.window)
}

func (v *GroupsView) onTranslate() {
	group := v.currentGroup()
	if group == nil {
		return
	}
	if v.parent.translator == nil {
		dialog.ShowError(fmt.Errorf("no translation provider configured; set OPENAI_API_KEY or GEMINI_API_KEY"), v.window)
		return
	}

	var terms []string
	for _, entry := range v.entries {
		if entry.Translation == "" {
			terms = append(terms, entry.Term)
		}
	}
	if len(terms) == 0 {
		dialog.ShowInformation("Translate Group", "All entries already have translations.", v.window)
		return
	}

	job := v.parent.queue.AddGroup(group.ID, group.Name, terms)
	if job.Status == StatusFailed {
		dialog.ShowError(job.Error, v.window)
		return
	}

	v.parent.activityLog.Logf("Queued translation of %d terms from group %q", len(terms), group.Name)
	v.parent.processNextInQueue()
}

func (v *GroupsView) onExport() {
	group := v.currentGroup()
	if group == nil {
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := v.parent.store.ExportGroup(writer, group.ID); err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		v.parent.activityLog.Logf("Exported group %q to %s", group.Name, writer.URI().Path())
	}, v.window)

	d.SetFileName(internal.SanitizeFilename(group.Name) + ".json")
	d.Show()
}

func (v *GroupsView) onDetachIllustration() {
	entry := v.currentEntry()
	if entry == nil || entry.Illustration == "" {
		return
	}

	if err := v.parent.store.DetachIllustration(entry.ID); err != nil {
		dialog.ShowError(err, v.window)
		return
	}
	v.parent.activityLog.Logf("Removed illustration from %q", entry.Term)

	if group := v.currentGroup(); group != nil {
		v.loadEntries(group)
	}
}

func (v *GroupsView) setActionsEnabled(enabled bool) {
	if enabled {
		v.renameBtn.Enable()
		v.deleteBtn.Enable()
		v.translateBtn.Enable()
		v.exportBtn.Enable()
	} else {
		v.renameBtn.Disable()
		v.deleteBtn.Disable()
		v.translateBtn.Disable()
		v.exportBtn.Disable()
	}
}

func (v *GroupsView) currentGroup() *groups.Group {
	if v.selectedGroup < 0 || v.selectedGroup >= len(v.groups) {
		return nil
	}
	return v.groups[v.selectedGroup]
}

func (v *GroupsView) currentEntry() *groups.Entry {
	if v.selectedEntry < 0 || v.selectedEntry >= len(v.entries) {
		return nil
	}
	return v.entries[v.selectedEntry]
}

// entryListText renders one entry for the list: the term, quoted for
// phrases, with its translation when present.
func entryListText(e *groups.Entry) string {
	text := e.Term
	if e.IsPhrase {
		text = fmt.Sprintf("\"%s\"", e.Term)
	}
	if e.Translation != "" {
		text = fmt.Sprintf("%s = %s", text, e.Translation)
	}
	return text
}
