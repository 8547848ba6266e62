package stats_test

import (
	"math"
	"os"
	"testing"

	"github.com/YuminosukeSato/primer/datasets"
	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/stats"
)

func TestOLS_DiabetesRaw(t *testing.T) {
	d, err := datasets.LoadDiabetes(datasets.WithScaled(false))
	if err != nil {
		t.Fatal(err)
	}

	var warnings []error
	errors.SetZerologWarnFunc(func(w error) { warnings = append(warnings, w) })
	defer errors.SetZerologWarnFunc(nil)

	model, err := stats.NewOLS(d.Target, stats.AddConstant(d.Data),
		stats.WithEndogName("target"), stats.WithExogNames(d.FeatureNames))
	if err != nil {
		t.Fatal(err)
	}
	res, err := model.Fit()
	if err != nil {
		t.Fatal(err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"const", res.Params[0], -281.41449992274795, 1e-5},
		{"s5", res.Params[9], 68.45867099609504, 1e-6},
		{"R-squared", res.RSquared, 0.5438389978737237, 1e-9},
		{"Adj. R-squared", res.AdjRSquared, 0.533255215921838, 1e-9},
		{"F-statistic", res.FValue, 51.38418387170434, 1e-6},
		{"Log-Likelihood", res.LogLikelihood, -2362.1254905511696, 1e-6},
		{"AIC", res.AIC, 4746.250981102339, 1e-6},
		{"BIC", res.BIC, 4791.255389805194, 1e-6},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > c.tol {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	// 生データでは列のスケールが大きく異なるため条件数が大きい
	if res.CondNo <= stats.ConditionNumberThreshold {
		t.Errorf("CondNo = %v, expected > %v", res.CondNo, stats.ConditionNumberThreshold)
	}
	var mw *errors.MulticollinearityWarning
	if len(warnings) != 1 || !errors.As(warnings[0], &mw) {
		t.Errorf("expected one MulticollinearityWarning, got %v", warnings)
	}
}

func TestPolyfit_DiabetesAgeBMI(t *testing.T) {
	d, err := datasets.LoadDiabetes(datasets.WithScaled(false))
	if err != nil {
		t.Fatal(err)
	}

	age := make([]float64, d.Data.RawMatrix().Rows)
	bmi := make([]float64, len(age))
	for i := range age {
		age[i] = d.Data.At(i, 0)
		bmi[i] = d.Data.At(i, 2)
	}

	p, err := stats.Polyfit(age, bmi, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p[0]-(-0.002135096811157559)) > 1e-10 {
		t.Errorf("slope = %v", p[0])
	}
	if math.Abs(p[1]-26.3772112407343) > 1e-8 {
		t.Errorf("intercept = %v", p[1])
	}
}

func TestOLS_PublishedDiabetes(t *testing.T) {
	path := os.Getenv("PRIMER_DIABETES_FILE")
	if path == "" {
		t.Skip("PRIMER_DIABETES_FILE not set")
	}
	d, err := datasets.LoadDiabetesFile(path)
	if err != nil {
		t.Fatal(err)
	}

	model, err := stats.NewOLS(d.Target, stats.AddConstant(d.Data), stats.WithExogNames(d.FeatureNames))
	if err != nil {
		t.Fatal(err)
	}
	res, err := model.Fit()
	if err != nil {
		t.Fatal(err)
	}

	// 公表されている回帰表の値（表示桁まで）
	checks := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"const", res.Params[0], 152.1335, 1e-3},
		{"bmi", res.Params[3], 519.8459, 1e-3},
		{"s5", res.Params[9], 751.2737, 1e-3},
		{"R-squared", res.RSquared, 0.518, 5e-4},
		{"Adj. R-squared", res.AdjRSquared, 0.507, 5e-4},
		{"F-statistic", res.FValue, 46.27, 5e-3},
		{"Log-Likelihood", res.LogLikelihood, -2386.0, 0.5},
		{"AIC", res.AIC, 4794, 1},
		{"BIC", res.BIC, 4839, 1},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > c.tol {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}
