// Package charts draws the walkthrough's figures with gonum/plot and writes
// them as image files.
package charts

import (
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/pkg/log"
	"github.com/YuminosukeSato/primer/stats"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatPNG, FormatSVG, FormatPDF}

const (
	width  = 6 * vg.Inch
	height = 4 * vg.Inch

	fitSamples = 100
)

// Labels are the title and axis labels of a chart.
type Labels struct {
	Title string
	X     string
	Y     string
}

func newPlot(l Labels) *plot.Plot {
	p := plot.New()
	p.Title.Text = l.Title
	p.X.Label.Text = l.X
	p.Y.Label.Text = l.Y
	return p
}

// Histogram draws the distribution of values using the given number of bins.
func Histogram(values []float64, bins int, l Labels) (*plot.Plot, error) {
	if bins <= 0 {
		return nil, errors.NewValidationError("bins", "must be positive", bins)
	}
	if len(values) == 0 {
		return nil, errors.NewModelError("charts.Histogram", "no values", errors.ErrEmptyData)
	}
	if err := errors.CheckNumericalStability("charts.Histogram", values, 0); err != nil {
		return nil, err
	}

	p := newPlot(l)
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build histogram")
	}
	p.Add(h)
	return p, nil
}

// Scatter draws y against x.
func Scatter(x, y []float64, l Labels) (*plot.Plot, error) {
	pts, err := points(x, y)
	if err != nil {
		return nil, err
	}
	p := newPlot(l)
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build scatter")
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	return p, nil
}

// ScatterWithFit draws y against x and overlays the polynomial with the
// given coefficients (highest power first) as a red dashed line of width 2.
func ScatterWithFit(x, y, coeffs []float64, l Labels) (*plot.Plot, error) {
	if len(coeffs) == 0 {
		return nil, errors.NewValueError("charts.ScatterWithFit", "no polynomial coefficients")
	}
	p, err := Scatter(x, y, l)
	if err != nil {
		return nil, err
	}

	line, err := fitLine(x, coeffs)
	if err != nil {
		return nil, err
	}
	p.Add(line)
	return p, nil
}

// fitLine samples the polynomial across the range of x.
func fitLine(x, coeffs []float64) (*plotter.Line, error) {
	lo, hi := floats.Min(x), floats.Max(x)
	n := fitSamples
	if len(coeffs) <= 2 || lo == hi {
		n = 2
	}
	fit := make(plotter.XYs, n)
	for i := range fit {
		xi := lo + (hi-lo)*float64(i)/float64(n-1)
		fit[i] = plotter.XY{X: xi, Y: stats.Polyval(coeffs, xi)}
	}

	line, err := plotter.NewLine(fit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build fit line")
	}
	line.LineStyle.Color = color.RGBA{R: 255, A: 255}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	return line, nil
}

func points(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("charts.points", len(x), len(y), 0)
	}
	if len(x) == 0 {
		return nil, errors.NewModelError("charts.points", "no points", errors.ErrEmptyData)
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	if err := plotter.CheckFloats(x...); err != nil {
		return nil, errors.Wrap(err, "invalid x values")
	}
	if err := plotter.CheckFloats(y...); err != nil {
		return nil, errors.Wrap(err, "invalid y values")
	}
	return pts, nil
}

// ValidateFormat reports whether format is one of Formats.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return errors.NewValidationError("plot_format", "must be one of png, svg, pdf", format)
}

// Save writes p to dir/name.format, creating dir if needed, and returns the
// written path.
func Save(p *plot.Plot, dir, name, format string) (string, error) {
	if err := ValidateFormat(format); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	path := filepath.Join(dir, name+"."+format)
	if err := p.Save(width, height, path); err != nil {
		return "", errors.Wrapf(err, "failed to save %s", path)
	}

	log.GetLoggerWithName("charts").Info("chart saved",
		log.OperationKey, log.OperationPlot,
		log.OutputPathKey, path,
		log.FormatKey, format,
	)
	return path, nil
}

// Encode writes p to w in the given format.
func Encode(p *plot.Plot, w io.Writer, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return errors.Wrap(err, "failed to render chart")
	}
	_, err = wt.WriteTo(w)
	return err
}
