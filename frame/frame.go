// Package frame is a small data-frame of named float columns backed by gota,
// with the pandas-style describe/info/head views used in the walkthrough.
package frame

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/primer/core/parallel"
	"github.com/YuminosukeSato/primer/pkg/errors"
)

// Frame holds named float64 columns of equal length.
type Frame struct {
	df dataframe.DataFrame
	// offset is the index label of the first row, kept so Head views
	// print the same labels as the parent.
	offset int
}

// FromMatrix builds a Frame from m, one column per name.
func FromMatrix(m mat.Matrix, names []string) (*Frame, error) {
	r, c := m.Dims()
	if len(names) != c {
		return nil, errors.NewDimensionError("frame.FromMatrix", c, len(names), 1)
	}
	seen := make(map[string]bool, len(names))
	cols := make([]series.Series, c)
	for j, name := range names {
		if seen[name] {
			return nil, errors.NewValidationError("names", "column names must be unique", name)
		}
		seen[name] = true
		cols[j] = series.New(mat.Col(nil, j, m), series.Float, name)
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "failed to build data frame")
	}
	if df.Nrow() != r {
		return nil, errors.NewDimensionError("frame.FromMatrix", r, df.Nrow(), 0)
	}
	return &Frame{df: df}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int { return f.df.Nrow() }

// Shape returns (rows, columns).
func (f *Frame) Shape() (int, int) { return f.df.Dims() }

// Names returns the column names in order.
func (f *Frame) Names() []string { return f.df.Names() }

// Column returns a copy of column i.
func (f *Frame) Column(i int) ([]float64, error) {
	if i < 0 || i >= f.df.Ncol() {
		return nil, errors.NewValueError("frame.Column", fmt.Sprintf("column index %d out of range [0, %d)", i, f.df.Ncol()))
	}
	return f.column(i), nil
}

// ColumnByName returns a copy of the named column.
func (f *Frame) ColumnByName(name string) ([]float64, error) {
	for i, n := range f.df.Names() {
		if n == name {
			return f.column(i), nil
		}
	}
	return nil, errors.NewValueError("frame.ColumnByName", "no column named "+strconv.Quote(name))
}

func (f *Frame) column(i int) []float64 {
	return f.df.Col(f.df.Names()[i]).Float()
}

// Mean returns the arithmetic mean of column i.
func (f *Frame) Mean(i int) (float64, error) {
	col, err := f.Column(i)
	if err != nil {
		return 0, err
	}
	if len(col) == 0 {
		return math.NaN(), nil
	}
	return stat.Mean(col, nil), nil
}

// Head returns the first n rows (all rows when n exceeds Len).
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.Len() {
		n = f.Len()
	}
	if n == 0 {
		cols := make([]series.Series, 0, f.df.Ncol())
		for _, name := range f.Names() {
			cols = append(cols, series.New([]float64{}, series.Float, name))
		}
		return &Frame{df: dataframe.New(cols...), offset: f.offset}
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return &Frame{df: f.df.Subset(idx), offset: f.offset}
}

// Render writes the frame as a box-drawn table with an index column.
func (f *Frame) Render(w io.Writer) error {
	t := f.table(w)
	t.Render()
	_, err := fmt.Fprintf(w, "[%d rows x %d columns]\n", f.Len(), f.df.Ncol())
	return err
}

// Markdown writes the frame as a markdown table.
func (f *Frame) Markdown(w io.Writer) error {
	t := f.table(w)
	t.RenderMarkdown()
	return nil
}

func (f *Frame) table(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	names := f.Names()
	header := make(table.Row, 0, len(names)+1)
	header = append(header, "")
	for _, n := range names {
		header = append(header, n)
	}
	t.AppendHeader(header)

	cols := make([][]float64, len(names))
	for j := range names {
		cols[j] = f.column(j)
	}
	for i := 0; i < f.Len(); i++ {
		row := make(table.Row, 0, len(names)+1)
		row = append(row, f.offset+i)
		for j := range names {
			row = append(row, formatFloat(cols[j][i]))
		}
		t.AppendRow(row)
	}
	return t
}

// Info writes a column overview: index range, non-null counts and dtypes.
func (f *Frame) Info(w io.Writer) error {
	rows, ncols := f.Shape()
	fmt.Fprintln(w, "<class 'frame.Frame'>")
	if rows == 0 {
		fmt.Fprintln(w, "RangeIndex: 0 entries")
	} else {
		fmt.Fprintf(w, "RangeIndex: %d entries, %d to %d\n", rows, f.offset, f.offset+rows-1)
	}
	fmt.Fprintf(w, "Data columns (total %d columns):\n", ncols)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Column", "Non-Null Count", "Dtype"})
	for j, name := range f.Names() {
		nonNull := 0
		for _, v := range f.column(j) {
			if !math.IsNaN(v) {
				nonNull++
			}
		}
		t.AppendRow(table.Row{j, name, fmt.Sprintf("%d non-null", nonNull), "float64"})
	}
	t.Render()

	_, err := fmt.Fprintf(w, "dtypes: float64(%d)\nmemory usage: %d bytes\n", ncols, rows*ncols*8)
	return err
}

// Description is the result of Describe: one row per statistic, one column
// per frame column.
type Description struct {
	Stats   []string
	Columns []string
	Values  [][]float64 // Values[stat][column]
}

// DescribeStats are the row labels of Describe in order.
var DescribeStats = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max for every column. NaN cells are skipped.
func (f *Frame) Describe() *Description {
	names := f.Names()
	d := &Description{
		Stats:   append([]string(nil), DescribeStats...),
		Columns: names,
		Values:  make([][]float64, len(DescribeStats)),
	}
	for i := range d.Values {
		d.Values[i] = make([]float64, len(names))
	}

	cols := make([][]float64, len(names))
	for j := range names {
		cols[j] = f.column(j)
	}

	// 列ごとに独立しているので列単位で分割する
	parallel.For(len(names), f.Len()*len(names), func(start, end int) {
		for j := start; j < end; j++ {
			describeColumn(d, j, cols[j])
		}
	})
	return d
}

func describeColumn(d *Description, j int, raw []float64) {
	col := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) {
			col = append(col, v)
		}
	}
	sort.Float64s(col)

	stats := []float64{float64(len(col)), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()}
	if len(col) > 0 {
		stats[1] = stat.Mean(col, nil)
		stats[3] = floats.Min(col)
		stats[4] = Quantile(col, 0.25)
		stats[5] = Quantile(col, 0.5)
		stats[6] = Quantile(col, 0.75)
		stats[7] = floats.Max(col)
	}
	if len(col) > 1 {
		stats[2] = stat.StdDev(col, nil)
	}
	for i, v := range stats {
		d.Values[i][j] = v
	}
}

// Quantile returns the p-quantile of sorted data by linear interpolation
// between the order statistics at floor((n-1)p) and ceil((n-1)p).
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Get returns the value of a statistic for a column.
func (d *Description) Get(statName, column string) (float64, bool) {
	si, ci := -1, -1
	for i, s := range d.Stats {
		if s == statName {
			si = i
		}
	}
	for j, c := range d.Columns {
		if c == column {
			ci = j
		}
	}
	if si < 0 || ci < 0 {
		return 0, false
	}
	return d.Values[si][ci], true
}

// Render writes the description as a box-drawn table.
func (d *Description) Render(w io.Writer) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{""}
	for _, c := range d.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for i, s := range d.Stats {
		row := table.Row{s}
		for _, v := range d.Values[i] {
			row = append(row, formatFloat(v))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
