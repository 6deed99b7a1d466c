package ui

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/foldergrid/internal/config"
	"github.com/justyntemme/foldergrid/internal/debug"
)

// Renderer draws the window: the folder panel, the icon grid, the status
// line and transient overlays.
type Renderer struct {
	Theme       *material.Theme
	Explorer    *Explorer
	DarkMode    bool
	ConfigError string

	folders  *FolderPanel
	hotkeys  *config.HotkeyMatcher
	toast    toast
	themeBtn widget.Clickable
	focused  bool
}

// NewRenderer creates a renderer around ex.
func NewRenderer(ex *Explorer) *Renderer {
	r := &Renderer{
		Theme:    material.NewTheme(),
		Explorer: ex,
		folders:  newFolderPanel(),
	}
	r.SetHotkeys(config.DefaultHotkeys())
	r.applyTheme()
	return r
}

// SetDarkMode switches between the light and dark palettes.
func (r *Renderer) SetDarkMode(dark bool) {
	r.DarkMode = dark
	r.applyTheme()
}

func (r *Renderer) applyTheme() {
	p := lightPalette
	if r.DarkMode {
		p = darkPalette
	}
	p.apply()
	r.Theme.Palette.Bg = colWhite
	r.Theme.Palette.Fg = colBlack
	r.Theme.Palette.ContrastBg = colAccent
	r.Explorer.Grid.SetDark(r.DarkMode)
}

// SetConfigError sets the config error message to display in the banner
func (r *Renderer) SetConfigError(err string) {
	r.ConfigError = err
}

// SetHotkeys configures the keyboard shortcuts from config
func (r *Renderer) SetHotkeys(cfg config.HotkeysConfig) {
	r.hotkeys = config.NewHotkeyMatcher(cfg)
	r.Explorer.Grid.Hotkeys = r.hotkeys
	debug.Log(debug.UI, "hotkeys: copy=%s selectAll=%s open=%s refresh=%s",
		r.hotkeys.Copy, r.hotkeys.SelectAll, r.hotkeys.Open, r.hotkeys.Refresh)
}

// FolderText returns what is typed in the folder panel editor.
func (r *Renderer) FolderText() string {
	return r.folders.Text()
}

// ClearFolderText empties the folder panel editor.
func (r *Renderer) ClearFolderText() {
	r.folders.ClearText()
}

// Layout draws one frame and returns the user's action, if any.
func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, colWhite)

	// ===== KEYBOARD FOCUS =====
	if !r.focused {
		gtx.Execute(key.FocusCmd{Tag: r.Explorer.Grid})
		r.focused = true
	}
	eventOut := r.processGlobalInput(gtx, state)

	r.folders.setFolders(state.Folders)
	for _, n := range r.Explorer.Grid.takeNotices() {
		r.ShowToast(n, ToastInfo)
	}

	layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(r.layoutConfigErrorBanner),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							gtx.Constraints.Min.X, gtx.Constraints.Max.X = gtx.Dp(260), gtx.Dp(260)
							gtx.Constraints.Min.Y = gtx.Constraints.Max.Y
							return r.folders.layout(gtx, r.Theme, &eventOut)
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							paint.FillShape(gtx.Ops, color.NRGBA{A: 50}, clip.Rect{Max: image.Pt(gtx.Dp(1), gtx.Constraints.Max.Y)}.Op())
							return layout.Dimensions{Size: image.Pt(gtx.Dp(1), gtx.Constraints.Max.Y)}
						}),
						layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
							return r.Explorer.Grid.Layout(gtx, r.Theme, &eventOut)
						}),
					)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutStatusBar(gtx, state, &eventOut)
				}),
			)
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return r.layoutToast(gtx, r.Theme)
		}),
	)

	if eventOut.Action != ActionNone {
		debug.Log(debug.UI, "event %s", eventOut.Action)
	}
	return eventOut
}

// processGlobalInput handles the window-wide shortcuts. Grid shortcuts
// are handled by the grid while it has focus.
func (r *Renderer) processGlobalInput(gtx layout.Context, state *State) UIEvent {
	var eventOut UIEvent
	hk := r.hotkeys

	var filters []event.Filter
	for _, h := range []config.Hotkey{hk.Refresh, hk.AddFolder, hk.SaveFolders, hk.LoadFolders} {
		if !h.IsEmpty() {
			filters = append(filters, h.Filter(nil))
		}
	}
	if len(filters) == 0 {
		return eventOut
	}

	for {
		ev, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		switch {
		case hk.Refresh.Matches(e):
			eventOut = UIEvent{Action: ActionRescan}
		case hk.AddFolder.Matches(e):
			eventOut = UIEvent{Action: ActionPickFolder}
		case hk.SaveFolders.Matches(e):
			eventOut = UIEvent{Action: ActionSaveFolders, Path: r.folders.Text()}
		case hk.LoadFolders.Matches(e):
			eventOut = UIEvent{Action: ActionLoadFolders, Path: r.folders.Text()}
		}
	}
	return eventOut
}

func (r *Renderer) layoutConfigErrorBanner(gtx layout.Context) layout.Dimensions {
	if r.ConfigError == "" {
		return layout.Dimensions{}
	}
	height := gtx.Dp(28)
	paint.FillShape(gtx.Ops, colErrorBannerBg, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, height)}.Op())

	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, "Config error: "+r.ConfigError+" (using defaults)")
			lbl.Color = colErrorBannerText
			lbl.Font.Weight = font.Bold
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		})
}

func (r *Renderer) layoutStatusBar(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	if r.themeBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionToggleTheme}
	}

	status := r.Explorer.Status()
	if state.Scanning {
		status = "Scanning… " + status
	}
	if state.Skipped > 0 {
		status += fmt.Sprintf(", %d %s unreadable", state.Skipped, plural(state.Skipped, "folder", "folders"))
	}

	paint.FillShape(gtx.Ops, colSidebar, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, gtx.Dp(30))}.Op())
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8), Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, status)
					lbl.Color = colGray
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					label := "Dark"
					if r.DarkMode {
						label = "Light"
					}
					btn := material.Button(r.Theme, &r.themeBtn, label)
					btn.Inset = layout.UniformInset(unit.Dp(4))
					btn.TextSize = unit.Sp(11)
					btn.Background, btn.Color = color.NRGBA{}, colGray
					return btn.Layout(gtx)
				}),
			)
		})
}
