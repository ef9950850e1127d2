package main

import (
	"errors"
	"image"
	"strconv"
	"strings"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/fnplot/backend"
	"git.sr.ht/~whereswaldon/fnplot/plot"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var resetIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.NavigationRefresh)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws     backend.WindowState
	expl   *explorer.Explorer
	logger *log.Logger
	th     *material.Theme

	view  *ChartView
	chart *plot.Chart

	traceStream *stream.Stream[backend.TraceUpdate]
	trace       backend.TraceUpdate
	hasTrace    bool
	// needsPlot is set until the chart accepts the current trace, which it
	// only does once the view has been laid out.
	needsPlot bool
	loadErr   string
	formErr   string

	controls widget.List

	openBtn          widget.Clickable
	resetBtn         widget.Clickable
	applyRangeBtn    widget.Clickable
	addTangentBtn    widget.Clickable
	clearTangentBtn  widget.Clickable
	addIntegralBtn   widget.Clickable
	clearIntegralBtn widget.Clickable
	aspect           widget.Bool
	interpolation    widget.Enum

	xMin, xMax                  component.TextField
	tanX0, tanFx0, tanSlope     component.TextField
	tanFrom, tanTo              component.TextField
	intA, intB, intArea, intLbl component.TextField
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, invalidate func(), logger *log.Logger) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	cfg := ws.Config
	ui := &UI{
		ws:          ws,
		expl:        expl,
		logger:      logger,
		th:          th,
		view:        NewChartView(invalidate),
		traceStream: stream.New(ws.Controller, ws.Datasource.Traces),
		controls:    widget.List{List: layout.List{Axis: layout.Vertical}},
	}
	ui.chart = plot.NewChart(ui.view, cfg.PlotOptions())
	ui.aspect.Value = cfg.AspectLocked
	ui.interpolation.Value = cfg.Interpolation.String()
	if cfg.HasXRange {
		ui.xMin.SetText(strconv.FormatFloat(cfg.XMin, 'g', -1, 64))
		ui.xMax.SetText(strconv.FormatFloat(cfg.XMax, 'g', -1, 64))
	}
	for _, tf := range []*component.TextField{
		&ui.xMin, &ui.xMax, &ui.tanX0, &ui.tanFx0, &ui.tanSlope,
		&ui.tanFrom, &ui.tanTo, &ui.intA, &ui.intB, &ui.intArea,
	} {
		tf.SingleLine = true
		tf.Submit = true
	}
	ui.intLbl.SingleLine = true
	return ui
}

// Update the state of the UI and apply the user's requests to the chart.
func (ui *UI) Update(gtx C) {
	if update, isNew := ui.traceStream.ReadNew(gtx); isNew {
		ui.receive(update)
	}
	if ui.openBtn.Clicked(gtx) {
		ui.openTrace()
	}
	if ui.aspect.Update(gtx) {
		ui.chart.SetAspectLocked(ui.aspect.Value)
		ui.chart.ResetAxes()
		ui.needsPlot = true
	}
	if ui.interpolation.Update(gtx) {
		mode, err := plot.ParseInterpolation(ui.interpolation.Value)
		if err != nil {
			ui.logger.Error("unknown interpolation", "value", ui.interpolation.Value, "error", err)
		} else {
			ui.chart.SetInterpolation(mode)
			ui.needsPlot = true
		}
	}
	if ui.resetBtn.Clicked(gtx) {
		ui.chart.ResetAxes()
		ui.needsPlot = true
	}
	if ui.applyRangeBtn.Clicked(gtx) || submitted(gtx, &ui.xMin, &ui.xMax) {
		if _, _, err := ui.xRange(); err == nil {
			ui.chart.ResetAxes()
			ui.needsPlot = true
		}
	}
	if ui.addTangentBtn.Clicked(gtx) || submitted(gtx, &ui.tanX0, &ui.tanFx0, &ui.tanSlope, &ui.tanFrom, &ui.tanTo) {
		ui.addTangent()
	}
	if ui.clearTangentBtn.Clicked(gtx) {
		ui.chart.ClearTangents()
	}
	if ui.addIntegralBtn.Clicked(gtx) || submitted(gtx, &ui.intA, &ui.intB, &ui.intArea) {
		ui.addIntegral()
	}
	if ui.clearIntegralBtn.Clicked(gtx) {
		ui.chart.ClearIntegrals()
	}
	if ui.needsPlot {
		ui.plot()
	}
}

// submitted reports whether the user pressed enter in any of fields.
func submitted(gtx C, fields ...*component.TextField) bool {
	var found bool
	for _, f := range fields {
		for {
			ev, ok := f.Editor.Update(gtx)
			if !ok {
				break
			}
			if _, ok := ev.(widget.SubmitEvent); ok {
				found = true
			}
		}
	}
	return found
}

func (ui *UI) receive(update backend.TraceUpdate) {
	if update.Err != nil {
		ui.loadErr = update.Err.Error()
	} else {
		ui.loadErr = ""
	}
	if len(update.Trace.Samples) == 0 {
		// Keep showing the last good trace, e.g. while a file is rewritten.
		return
	}
	ui.trace = update
	ui.hasTrace = true
	if update.NewSource {
		ui.chart.ResetAxes()
	}
	ui.needsPlot = true
}

func (ui *UI) openTrace() {
	go func() {
		f, err := ui.expl.ChooseFile(".csv", ".txt")
		if err != nil {
			if !errors.Is(err, explorer.ErrUserDecline) {
				ui.logger.Error("failed browsing for file", "error", err)
			}
			return
		}
		if err := ui.ws.Datasource.LoadReader("selected file", f); err != nil {
			ui.logger.Debug("selected trace did not load", "error", err)
		}
	}()
}

// xRange resolves the x-range fields, falling back to the trace domain.
func (ui *UI) xRange() (xMin, xMax float64, err error) {
	lo, hi, _ := ui.ws.Config.XRange(ui.trace.Trace)
	if xMin, err = fieldFloat(&ui.xMin, lo, true); err != nil {
		return 0, 0, err
	}
	if xMax, err = fieldFloat(&ui.xMax, hi, true); err != nil {
		return 0, 0, err
	}
	if xMin >= xMax {
		ui.xMax.SetError("must be greater than x min")
		return 0, 0, errors.New("empty x range")
	}
	return xMin, xMax, nil
}

// fieldEstimate parses tf, falling back to estimate when the field is empty.
// The field is required if no estimate is available.
func fieldEstimate(tf *component.TextField, estimate func() (float64, bool)) (float64, error) {
	if strings.TrimSpace(tf.Text()) == "" {
		if v, ok := estimate(); ok {
			tf.ClearError()
			return v, nil
		}
	}
	return fieldFloat(tf, 0, false)
}

// fieldFloat parses tf, displaying any error inline on the field.
func fieldFloat(tf *component.TextField, fallback float64, optional bool) (float64, error) {
	var (
		v   float64
		err error
	)
	if optional {
		v, err = optionalFloat(tf.Text(), fallback)
	} else {
		v, err = requiredFloat(tf.Text())
	}
	if err != nil {
		tf.SetError(err.Error())
		return 0, err
	}
	tf.ClearError()
	return v, nil
}

func (ui *UI) plot() {
	if !ui.hasTrace {
		ui.needsPlot = false
		return
	}
	xMin, xMax, err := ui.xRange()
	if err != nil {
		ui.needsPlot = false
		return
	}
	if ui.chart.Plot(ui.trace.Trace.Samples, xMin, xMax) {
		ui.needsPlot = false
	}
}

func (ui *UI) addTangent() {
	ui.formErr = ""
	b, ok := ui.chart.Bounds()
	if !ok {
		ui.formErr = "Plot a trace before adding a tangent."
		return
	}
	trace := ui.trace.Trace
	x0, err := fieldFloat(&ui.tanX0, 0, false)
	if err != nil {
		return
	}
	fx0, err0 := fieldEstimate(&ui.tanFx0, func() (float64, bool) { return trace.At(x0) })
	slope, err1 := fieldEstimate(&ui.tanSlope, func() (float64, bool) { return trace.Slope(x0) })
	from, err2 := fieldFloat(&ui.tanFrom, b.XMin, true)
	to, err3 := fieldFloat(&ui.tanTo, b.XMax, true)
	if errors.Join(err0, err1, err2, err3) != nil {
		return
	}
	from, to = ordered(from, to)
	ui.logger.Debug("adding tangent", "x0", x0, "fx0", fx0, "slope", slope, "from", from, "to", to)
	ui.chart.AddTangent(x0, fx0, slope, from, to)
}

func (ui *UI) addIntegral() {
	ui.formErr = ""
	if !ui.hasTrace {
		ui.formErr = "Load a trace before adding an integral."
		return
	}
	trace := ui.trace.Trace
	a, err0 := fieldFloat(&ui.intA, 0, false)
	b, err1 := fieldFloat(&ui.intB, 0, false)
	if errors.Join(err0, err1) != nil {
		return
	}
	a, b = ordered(a, b)
	area, err := fieldEstimate(&ui.intArea, func() (float64, bool) { return trace.Integrate(a, b) })
	if err != nil {
		return
	}
	label := optionalString(ui.intLbl.Text(), trace.Expression)
	ui.logger.Debug("adding integral", "a", a, "b", b, "area", area, "label", label)
	ui.chart.AddIntegralArea(trace.Samples, a, b, area, label)
}

func (ui *UI) iconButton(btn *widget.Clickable, icon *widget.Icon, label string) layout.Widget {
	return func(gtx C) D {
		return material.ButtonLayout(ui.th, btn).Layout(gtx, func(gtx C) D {
			return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx C) D {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx C) D {
						gtx.Constraints.Min = image.Pt(gtx.Dp(18), gtx.Dp(18))
						return icon.Layout(gtx, ui.th.ContrastFg)
					}),
					layout.Rigid(layout.Spacer{Width: 8}.Layout),
					layout.Rigid(func(gtx C) D {
						l := material.Body1(ui.th, label)
						l.Color = ui.th.ContrastFg
						return l.Layout(gtx)
					}),
				)
			})
		})
	}
}

func (ui *UI) button(btn *widget.Clickable, label string) layout.Widget {
	return material.Button(ui.th, btn, label).Layout
}

func (ui *UI) heading(s string) layout.Widget {
	return func(gtx C) D {
		return layout.Inset{Top: 12, Bottom: 4}.Layout(gtx, material.Subtitle1(ui.th, s).Layout)
	}
}

func (ui *UI) field(tf *component.TextField, hint string) layout.Widget {
	return func(gtx C) D {
		return tf.Layout(gtx, ui.th, hint)
	}
}

// pair lays out two widgets side by side with equal widths.
func pair(a, b layout.Widget) layout.Widget {
	return func(gtx C) D {
		return layout.Flex{Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Flexed(1, a),
			layout.Rigid(layout.Spacer{Width: 8}.Layout),
			layout.Flexed(1, b),
		)
	}
}

func (ui *UI) layoutControls(gtx C) D {
	rows := []layout.Widget{
		ui.iconButton(&ui.openBtn, openIcon, "Open Trace"),
		ui.heading("View"),
		ui.iconButton(&ui.resetBtn, resetIcon, "Reset Axes"),
		material.CheckBox(ui.th, &ui.aspect, "Lock aspect ratio").Layout,
		func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(material.RadioButton(ui.th, &ui.interpolation, plot.Linear.String(), "Linear").Layout),
				layout.Rigid(material.RadioButton(ui.th, &ui.interpolation, plot.Smoothed.String(), "Smoothed").Layout),
			)
		},
		pair(ui.field(&ui.xMin, "x min"), ui.field(&ui.xMax, "x max")),
		ui.button(&ui.applyRangeBtn, "Apply Range"),
		ui.heading("Tangent"),
		pair(ui.field(&ui.tanX0, "x0"), ui.field(&ui.tanFx0, "f(x0) (optional)")),
		ui.field(&ui.tanSlope, "Slope (optional)"),
		pair(ui.field(&ui.tanFrom, "From (optional)"), ui.field(&ui.tanTo, "To (optional)")),
		pair(ui.button(&ui.addTangentBtn, "Add Tangent"), ui.button(&ui.clearTangentBtn, "Clear Tangents")),
		ui.heading("Integral"),
		pair(ui.field(&ui.intA, "a"), ui.field(&ui.intB, "b")),
		ui.field(&ui.intArea, "Area (optional)"),
		ui.field(&ui.intLbl, "Label (optional)"),
		pair(ui.button(&ui.addIntegralBtn, "Add Integral"), ui.button(&ui.clearIntegralBtn, "Clear Integrals")),
		func(gtx C) D {
			if ui.formErr == "" {
				return D{}
			}
			l := material.Body2(ui.th, ui.formErr)
			l.Color = errorColor
			return l.Layout(gtx)
		},
	}
	return material.List(ui.th, &ui.controls).Layout(gtx, len(rows), func(gtx C, i int) D {
		return layout.Inset{Top: 2, Bottom: 2, Left: 8, Right: 8}.Layout(gtx, rows[i])
	})
}

func (ui *UI) layoutStatus(gtx C) D {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			l := material.Body2(ui.th, ui.trace.Source+": y = "+ui.trace.Trace.Expression)
			l.MaxLines = 1
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			if ui.loadErr == "" {
				return D{}
			}
			l := material.Body2(ui.th, ui.loadErr)
			l.Color = errorColor
			return l.Layout(gtx)
		}),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Flexed(1, func(gtx C) D {
						return ui.view.Layout(gtx, ui.th)
					}),
					layout.Rigid(ui.layoutStatus),
				)
			})
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.X = min(gtx.Dp(300), gtx.Constraints.Max.X)
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return ui.layoutControls(gtx)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No trace loaded yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return ui.iconButton(&ui.openBtn, openIcon, "Open Trace")(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			l := material.Body2(ui.th, ui.loadErr)
			l.Color = errorColor
			return l.Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.hasTrace {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
