package ui

import (
	"image"
	"strings"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/foldergrid/internal/grid"
)

// FolderPanel edits the aggregated folder list.
type FolderPanel struct {
	editor widget.Editor
	list   layout.List

	pickBtn, addBtn, removeBtn, saveBtn, loadBtn widget.Clickable
	rows                                         []widget.Clickable

	selection *grid.Selection
	folders   []string
}

func newFolderPanel() *FolderPanel {
	p := &FolderPanel{selection: grid.NewSelection()}
	p.editor.SingleLine = true
	p.editor.Submit = true
	p.list.Axis = layout.Vertical
	return p
}

// setFolders refreshes the rows; the selection is dropped when the list
// changed underneath it.
func (p *FolderPanel) setFolders(folders []string) {
	if equalStrings(p.folders, folders) {
		return
	}
	p.folders = append(p.folders[:0], folders...)
	p.selection.Clear()
	if len(p.rows) < len(folders) {
		p.rows = append(p.rows, make([]widget.Clickable, len(folders)-len(p.rows))...)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Text returns the editor contents, trimmed.
func (p *FolderPanel) Text() string {
	return strings.TrimSpace(p.editor.Text())
}

// ClearText empties the editor.
func (p *FolderPanel) ClearText() {
	p.editor.SetText("")
}

func (p *FolderPanel) update(gtx layout.Context, eventOut *UIEvent) {
	for {
		ev, ok := p.editor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			*eventOut = UIEvent{Action: ActionAddFolder, Path: p.Text()}
		}
	}
	if p.addBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionAddFolder, Path: p.Text()}
	}
	if p.pickBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionPickFolder}
	}
	if p.removeBtn.Clicked(gtx) && p.selection.Len() > 0 {
		*eventOut = UIEvent{Action: ActionRemoveFolders, Rows: p.selection.Rows()}
	}
	if p.saveBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionSaveFolders, Path: p.Text()}
	}
	if p.loadBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionLoadFolders, Path: p.Text()}
	}

	for i := range p.folders {
		for {
			click, ok := p.rows[i].Update(gtx)
			if !ok {
				break
			}
			switch {
			case click.Modifiers.Contain(key.ModShortcut):
				p.selection.Toggle(i)
			case click.Modifiers.Contain(key.ModShift):
				p.selection.Extend(i)
			default:
				p.selection.Select(i)
			}
		}
	}
}

func (p *FolderPanel) layout(gtx layout.Context, th *material.Theme, eventOut *UIEvent) layout.Dimensions {
	p.update(gtx, eventOut)

	paint.FillShape(gtx.Ops, colSidebar, clip.Rect{Max: gtx.Constraints.Max}.Op())
	inset := layout.UniformInset(unit.Dp(8))

	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.H6(th, "Folders")
				lbl.Color = colBlack
				return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, lbl.Layout)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return widget.Border{Color: colLightGray, Width: unit.Dp(1), CornerRadius: unit.Dp(4)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							ed := material.Editor(th, &p.editor, "Folder path or list file")
							ed.Color, ed.HintColor = colBlack, colGray
							return ed.Layout(gtx)
						})
					})
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return p.buttonRow(gtx, th,
					button{&p.pickBtn, "Select Folder…"},
					button{&p.addBtn, "Add"},
				)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return p.layoutRows(gtx, th)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return p.buttonRow(gtx, th,
					button{&p.removeBtn, "Remove"},
					button{&p.saveBtn, "Save…"},
					button{&p.loadBtn, "Load…"},
				)
			}),
		)
	})
}

type button struct {
	btn   *widget.Clickable
	label string
}

func (p *FolderPanel) buttonRow(gtx layout.Context, th *material.Theme, buttons ...button) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(buttons))
	for _, b := range buttons {
		children = append(children, layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(6), Right: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				btn := material.Button(th, b.btn, b.label)
				btn.Inset = layout.UniformInset(unit.Dp(6))
				btn.TextSize = unit.Sp(12)
				btn.Background = colAccent
				return btn.Layout(gtx)
			})
		}))
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

func (p *FolderPanel) layoutRows(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		if len(p.folders) == 0 {
			lbl := material.Body2(th, "No folders yet")
			lbl.Color = colGray
			return lbl.Layout(gtx)
		}
		return p.list.Layout(gtx, len(p.folders), func(gtx layout.Context, i int) layout.Dimensions {
			return material.Clickable(gtx, &p.rows[i], func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				pad := layout.UniformInset(unit.Dp(4))
				if p.selection.Has(i) {
					return layout.Background{}.Layout(gtx,
						func(gtx layout.Context) layout.Dimensions {
							paint.FillShape(gtx.Ops, colSelected, clip.Rect{Max: gtx.Constraints.Min}.Op())
							return layout.Dimensions{Size: gtx.Constraints.Min}
						},
						func(gtx layout.Context) layout.Dimensions {
							return pad.Layout(gtx, p.rowLabel(th, i))
						})
				}
				return pad.Layout(gtx, p.rowLabel(th, i))
			})
		})
	})
}

func (p *FolderPanel) rowLabel(th *material.Theme, i int) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(th, p.folders[i])
		lbl.Color = colBlack
		lbl.MaxLines = 1
		lbl.Truncator = "…"
		lbl.Alignment = text.Start
		d := lbl.Layout(gtx)
		return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, d.Size.Y), Baseline: d.Baseline}
	}
}
