package psytext

import (
	"bytes"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// bucketColors are the chart colors of each bucket. They match the report's
// CSS background colors.
var bucketColors = map[ColorBucket]color.NRGBA{
	VeryPositive:     {R: 0x00, G: 0x64, B: 0x00, A: 0xff}, // darkgreen
	Positive:         {R: 0x00, G: 0x80, B: 0x00, A: 0xff}, // green
	SlightlyPositive: {R: 0x90, G: 0xee, B: 0x90, A: 0xff}, // lightgreen
	Neutral:          {R: 0xff, G: 0xa5, B: 0x00, A: 0xff}, // orange
	SlightlyNegative: {R: 0xf0, G: 0x80, B: 0x80, A: 0xff}, // lightcoral
	Negative:         {R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
	VeryNegative:     {R: 0x8b, G: 0x00, B: 0x00, A: 0xff}, // darkred
}

var (
	axisColor  = color.NRGBA{A: 0xff}
	zeroColor  = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	lineColor  = color.NRGBA{B: 0xff, A: 0xff}
	pointAlpha = uint8(0x99)
)

// RenderAffectGrid draws valence (x) against arousal (y), one point per
// record colored by its bucket, and writes the PNG atomically to path.
func RenderAffectGrid(records []SentenceRecord, path string) error {
	if len(records) == 0 {
		return &RenderError{Message: "affect grid needs at least one sentence"}
	}

	p := plot.New()
	p.Title.Text = "Affect Grid (Valence vs Arousal)"
	p.X.Label.Text = "Valence (Negative <-> Positive)"
	p.Y.Label.Text = "Arousal (Passive <-> Active)"
	p.X.Min, p.X.Max = -1.05, 1.05
	p.Y.Min, p.Y.Max = -0.05, 1.05
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(records))
	for i, rec := range records {
		xys[i].X = rec.Valence
		xys[i].Y = rec.Arousal
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return &RenderError{Message: "failed to build affect grid", Cause: err}
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c := bucketColors[records[i].ColorBucket]
		c.A = pointAlpha
		return draw.GlyphStyle{Color: c, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
	}

	hAxis, err := referenceLine(plotter.XYs{{X: p.X.Min, Y: 0}, {X: p.X.Max, Y: 0}}, axisColor, false)
	if err != nil {
		return &RenderError{Message: "failed to build affect grid", Cause: err}
	}
	vAxis, err := referenceLine(plotter.XYs{{X: 0, Y: p.Y.Min}, {X: 0, Y: p.Y.Max}}, axisColor, false)
	if err != nil {
		return &RenderError{Message: "failed to build affect grid", Cause: err}
	}
	p.Add(hAxis, vAxis, scatter)

	return savePlot(p, 8*vg.Inch, 8*vg.Inch, path)
}

// RenderTrajectory draws valence over sentence index (1-based, in source
// order) with a dashed zero reference line, and writes the PNG atomically.
func RenderTrajectory(records []SentenceRecord, path string) error {
	if len(records) == 0 {
		return &RenderError{Message: "trajectory needs at least one sentence"}
	}

	p := plot.New()
	p.Title.Text = "Sentiment Trajectory Over Sentences"
	p.X.Label.Text = "Sentence Index"
	p.Y.Label.Text = "Valence Score"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(records))
	for i, rec := range records {
		xys[i].X = float64(i + 1)
		xys[i].Y = rec.Valence
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return &RenderError{Message: "failed to build trajectory", Cause: err}
	}
	line.LineStyle.Color = lineColor
	points.GlyphStyle.Color = lineColor
	points.GlyphStyle.Shape = draw.CircleGlyph{}

	zero, err := referenceLine(plotter.XYs{{X: 1, Y: 0}, {X: float64(len(records)), Y: 0}}, zeroColor, true)
	if err != nil {
		return &RenderError{Message: "failed to build trajectory", Cause: err}
	}
	p.Add(zero, line, points)

	return savePlot(p, 10*vg.Inch, 5*vg.Inch, path)
}

func referenceLine(xys plotter.XYs, c color.Color, dashed bool) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(0.8)
	if dashed {
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	}
	return l, nil
}

// savePlot renders p into memory first so a failed render never leaves a
// partial image on disk.
func savePlot(p *plot.Plot, w, h vg.Length, path string) error {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return &RenderError{Message: "failed to create canvas", Cause: err}
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return &RenderError{Message: "failed to encode png", Cause: err}
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return &RenderError{Message: "failed to write " + path, Cause: err}
	}
	return nil
}
