package tour

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/plot"

	"github.com/YuminosukeSato/primer/basics"
	"github.com/YuminosukeSato/primer/charts"
	"github.com/YuminosukeSato/primer/linear"
	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/pkg/log"
	"github.com/YuminosukeSato/primer/stats"
)

func newTable(s *Session) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(s.Out)
	t.SetStyle(table.StyleLight)
	return t
}

func runLibraries(_ context.Context, s *Session) error {
	t := newTable(s)
	t.AppendHeader(table.Row{"library", "used for"})
	t.AppendRow(table.Row{"gonum.org/v1/gonum/mat", "numeric arrays"})
	t.AppendRow(table.Row{"github.com/go-gota/gota", "tabular data"})
	t.AppendRow(table.Row{"gonum.org/v1/plot", "plotting"})
	t.AppendRow(table.Row{"gonum.org/v1/gonum/stat", "statistical modelling"})
	t.Render()
	return nil
}

func runVariables(_ context.Context, s *Session) error {
	count := basics.IntLiteral
	ratio := basics.FloatLiteral
	done := basics.BoolLiteral
	label := basics.StringLiteral

	fmt.Fprintln(s.Out, label, count)
	fmt.Fprintf(s.Out, "(%T %v, %T %v)\n", ratio, ratio, done, done)

	count = basics.ReassignedInt
	fmt.Fprintln(s.Out, count)
	return nil
}

func runArithmetic(_ context.Context, s *Session) error {
	quotient, err := basics.Div(20, 2)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "5 + 1    = %d\n", basics.Add(5, 1))
	fmt.Fprintf(s.Out, "5*3      = %d\n", basics.Mul(5, 3))
	fmt.Fprintf(s.Out, "6 == 100 = %t\n", basics.Equal(6, 100))
	fmt.Fprintf(s.Out, "6 != 100 = %t\n", basics.NotEqual(6, 100))
	fmt.Fprintf(s.Out, "20 / 2   = %g\n", quotient)
	fmt.Fprintf(s.Out, "2 ** 3   = %g\n", basics.Pow(2, 3))
	return nil
}

func runComments(_ context.Context, s *Session) error {
	/*
		A block comment.
		Nothing in here is executed.
	*/
	note := "Only code runs; comments are skipped."
	fmt.Fprintln(s.Out, note)
	return nil
}

func runConversion(_ context.Context, s *Session) error {
	fmt.Fprintf(s.Out, "%q\n", fmt.Sprint(basics.IntLiteral))
	fmt.Fprintf(s.Out, "%q\n", fmt.Sprint(basics.StringLiteral))

	v, err := basics.ToFloat(basics.StringLiteral)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, v)
	return nil
}

func runLists(_ context.Context, s *Session) error {
	s.Authors = basics.DefaultAuthors()
	fmt.Fprintln(s.Out, s.Authors)

	first, err := s.Authors.At(0)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, first)

	s.Authors.Append("Mephistopheles")
	fmt.Fprintln(s.Out, s.Authors)

	if err := s.Authors.Insert(2, "Shrek"); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, s.Authors)

	s.Authors.Sort()
	fmt.Fprintln(s.Out, s.Authors)
	return nil
}

func runDataset(_ context.Context, s *Session) error {
	b, err := s.LoadDataset()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, b.Descr)
	return nil
}

func runDescribe(_ context.Context, s *Session) error {
	f, err := s.LoadFrame()
	if err != nil {
		return err
	}

	if err := f.Describe().Render(s.Out); err != nil {
		return err
	}
	if err := f.Info(s.Out); err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "len: %d\n", f.Len())

	head := f.Head(s.Config.HeadRows)
	if err := head.Render(s.Out); err != nil {
		return err
	}
	if err := head.Markdown(s.Out); err != nil {
		return err
	}

	s.Logger.Debug("frame described",
		log.OperationKey, log.OperationDescribe,
		log.SamplesKey, f.Len(),
	)
	return nil
}

func runColumn(_ context.Context, s *Session) error {
	f, err := s.LoadFrame()
	if err != nil {
		return err
	}
	mean, err := f.Mean(1)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "mean of column 1 (%s): %v\n", f.Names()[1], mean)
	return nil
}

func runOLSML(_ context.Context, s *Session) error {
	b, err := s.LoadDataset()
	if err != nil {
		return err
	}

	r, c := b.Data.Dims()
	fmt.Fprintf(s.Out, "Y shape: (%d,)\n", b.Target.Len())
	fmt.Fprintf(s.Out, "X shape: (%d, %d)\n", r, c)

	model := linear.NewLinearRegression(linear.WithFeatureNames(b.FeatureNames))
	if err := model.Fit(b.Data, b.Target); err != nil {
		return err
	}
	s.Model = model

	fmt.Fprintf(s.Out, "coefficients: %.4f\n", model.Coefficients())
	fmt.Fprintf(s.Out, "intercept: %.4f\n", model.Intercept)

	t := newTable(s)
	t.AppendHeader(table.Row{"feature", "coefficient"})
	for i, name := range b.FeatureNames {
		t.AppendRow(table.Row{name, fmt.Sprintf("%.4f", model.Coef.AtVec(i))})
	}
	t.Render()

	ev, err := model.Evaluate(b.Data, b.Target)
	if err != nil {
		return err
	}
	s.Logger.Info("linear regression fitted",
		log.ModelNameKey, "LinearRegression",
		log.R2ScoreKey, ev.R2,
		log.MSEKey, ev.MSE,
		log.RMSEKey, ev.RMSE,
		log.MAEKey, ev.MAE,
	)
	return nil
}

func runOLSStats(_ context.Context, s *Session) error {
	b, err := s.LoadDataset()
	if err != nil {
		return err
	}

	ols, err := stats.NewOLS(b.Target, stats.AddConstant(b.Data),
		stats.WithEndogName("target"),
		stats.WithExogNames(b.FeatureNames),
	)
	if err != nil {
		return err
	}
	res, err := ols.Fit()
	if err != nil {
		return err
	}
	s.Results = res
	return res.Summary(s.Out)
}

func runPlots(_ context.Context, s *Session) error {
	f, err := s.LoadFrame()
	if err != nil {
		return err
	}
	age, err := f.ColumnByName("age")
	if err != nil {
		return err
	}
	bmi, err := f.ColumnByName("bmi")
	if err != nil {
		return err
	}

	hist, err := charts.Histogram(bmi, s.Config.Bins, charts.Labels{Title: "bmi", X: "bmi", Y: "count"})
	if err != nil {
		return err
	}
	scatter, err := charts.Scatter(age, bmi, charts.Labels{Title: "age vs bmi", X: "age", Y: "bmi"})
	if err != nil {
		return err
	}
	coeffs, err := stats.Polyfit(age, bmi, 1)
	if err != nil {
		return err
	}
	fitted, err := charts.ScatterWithFit(age, bmi, coeffs, charts.Labels{Title: "age vs bmi with fit", X: "age", Y: "bmi"})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "fit: bmi = %.6g * age + %.6g\n", coeffs[0], coeffs[1])

	for _, fig := range []struct {
		name string
		p    *plot.Plot
	}{
		{"hist_bmi", hist},
		{"scatter_age_bmi", scatter},
		{"scatter_age_bmi_fit", fitted},
	} {
		path, err := charts.Save(fig.p, s.Config.OutputDir, fig.name, s.Config.PlotFormat)
		if err != nil {
			return err
		}
		s.Charts = append(s.Charts, path)
		fmt.Fprintf(s.Out, "wrote %s\n", path)
	}
	return nil
}

func runLoop(_ context.Context, s *Session) error {
	total := 0
	for i := 1; i <= 10; i++ {
		total += i
	}
	if total != basics.SumRange(1, 10) {
		return errors.Newf("loop total %d differs from SumRange", total)
	}
	fmt.Fprintf(s.Out, "We have a total sum of: %d.\n", total)
	return nil
}

func runConditional(_ context.Context, s *Session) error {
	if msg := basics.GoldBranch(101, 100); msg != "" {
		fmt.Fprintln(s.Out, msg)
	}
	return nil
}

func runFunction(_ context.Context, s *Session) error {
	return basics.Introduce(s.Out, "Saruman", 1000)
}
