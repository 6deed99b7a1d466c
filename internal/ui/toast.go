package ui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// ToastType indicates the severity of a toast message
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// toast is a transient message shown over the bottom of the window.
type toast struct {
	message   string
	kind      ToastType
	expiresAt time.Time
}

const toastDuration = 3 * time.Second

// ShowToast displays a message that dismisses itself after a few seconds.
func (r *Renderer) ShowToast(message string, kind ToastType) {
	r.toast = toast{message: message, kind: kind, expiresAt: time.Now().Add(toastDuration)}
}

func (r *Renderer) ShowError(message string)   { r.ShowToast(message, ToastError) }
func (r *Renderer) ShowSuccess(message string) { r.ShowToast(message, ToastSuccess) }
func (r *Renderer) ShowWarning(message string) { r.ShowToast(message, ToastWarning) }

func toastColors(kind ToastType) (bg, fg color.NRGBA) {
	fg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	switch kind {
	case ToastError:
		bg = color.NRGBA{R: 200, G: 50, B: 50, A: 240}
	case ToastWarning:
		bg = color.NRGBA{R: 220, G: 160, B: 40, A: 240}
		fg = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	case ToastSuccess:
		bg = color.NRGBA{R: 50, G: 160, B: 80, A: 240}
	default:
		bg = color.NRGBA{R: 60, G: 60, B: 60, A: 240}
	}
	return bg, fg
}

// layoutToast draws the current toast at the bottom centre, if any.
func (r *Renderer) layoutToast(gtx layout.Context, th *material.Theme) layout.Dimensions {
	t := r.toast
	if t.message == "" || gtx.Now.After(t.expiresAt) {
		return layout.Dimensions{}
	}
	gtx.Execute(op.InvalidateCmd{At: t.expiresAt})

	bg, fg := toastColors(t.kind)
	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(20), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(500)))

				// Measure text first
				macro := op.Record(gtx.Ops)
				dims := layout.Inset{
					Top: unit.Dp(12), Bottom: unit.Dp(12), Left: unit.Dp(16), Right: unit.Dp(16),
				}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body1(th, t.message)
					lbl.Color = fg
					return lbl.Layout(gtx)
				})
				call := macro.Stop()

				rr := gtx.Dp(unit.Dp(8))
				paint.FillShape(gtx.Ops, bg, clip.RRect{
					Rect: image.Rectangle{Max: dims.Size},
					NE:   rr, NW: rr, SE: rr, SW: rr,
				}.Op(gtx.Ops))
				call.Add(gtx.Ops)
				return dims
			})
		})
	})
}
