// Package datasets loads the diabetes toy dataset used by the walkthrough.
package datasets

import (
	"bytes"
	_ "embed"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/pkg/log"
	"github.com/YuminosukeSato/primer/preprocessing"
)

//go:embed data/diabetes.tab.txt
var diabetesTab []byte

// DiabetesFeatureNames lists the ten covariates in file order.
var DiabetesFeatureNames = []string{"age", "sex", "bmi", "bp", "s1", "s2", "s3", "s4", "s5", "s6"}

const (
	diabetesColumns = 11
	targetColumn    = "Y"
)

// Bunch mirrors the container scikit-learn returns for toy datasets.
type Bunch struct {
	Data         *mat.Dense    // n_samples × 10
	Target       *mat.VecDense // n_samples
	FeatureNames []string
	Descr        string
	Scaled       bool
	Source       string
}

// Option configures dataset loading.
type Option func(*loadOptions)

type loadOptions struct {
	scaled bool
}

// WithScaled controls whether features are mean-centered and scaled so that
// each column has unit sum of squares. The default is true.
func WithScaled(scaled bool) Option {
	return func(o *loadOptions) {
		o.scaled = scaled
	}
}

// LoadDiabetes loads the bundled diabetes data.
func LoadDiabetes(opts ...Option) (*Bunch, error) {
	b, err := ReadDiabetes(bytes.NewReader(diabetesTab), opts...)
	if err != nil {
		return nil, err
	}
	b.Source = "bundled"
	return b, nil
}

// LoadDiabetesFile loads a file in the tab-separated layout of the original
// study (header AGE SEX BMI BP S1 .. S6 Y).
func LoadDiabetesFile(path string, opts ...Option) (*Bunch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer func() { _ = f.Close() }()

	b, err := ReadDiabetes(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dataset %s", path)
	}
	b.Source = path
	return b, nil
}

// ReadDiabetes parses diabetes data from r.
func ReadDiabetes(r io.Reader, opts ...Option) (*Bunch, error) {
	o := loadOptions{scaled: true}
	for _, opt := range opts {
		opt(&o)
	}

	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter('\t'),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.Float),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "failed to parse diabetes data")
	}
	if df.Ncol() != diabetesColumns {
		return nil, errors.NewDimensionError("ReadDiabetes", diabetesColumns, df.Ncol(), 1)
	}
	n := df.Nrow()
	if n == 0 {
		return nil, errors.NewModelError("ReadDiabetes", "no rows", errors.ErrEmptyData)
	}
	names := df.Names()
	if strings.ToUpper(names[diabetesColumns-1]) != targetColumn {
		return nil, errors.NewValueError("ReadDiabetes", "last column must be the target Y, got "+names[diabetesColumns-1])
	}

	features := len(DiabetesFeatureNames)
	data := mat.NewDense(n, features, nil)
	for j := 0; j < features; j++ {
		data.SetCol(j, df.Col(names[j]).Float())
	}
	target := mat.NewVecDense(n, df.Col(names[features]).Float())

	// 数値に変換できないセルはNaNになる
	if err := errors.CheckMatrix("ReadDiabetes", data, n, features); err != nil {
		return nil, err
	}
	if err := errors.CheckMatrix("ReadDiabetes", target, n, 1); err != nil {
		return nil, err
	}

	b := &Bunch{
		Data:         data,
		Target:       target,
		FeatureNames: append([]string(nil), DiabetesFeatureNames...),
		Descr:        diabetesDescr,
	}
	if o.scaled {
		scaled, err := scaleUnitNorm(data)
		if err != nil {
			return nil, err
		}
		b.Data = scaled
		b.Scaled = true
	}

	log.GetLoggerWithName("datasets").Debug("diabetes data loaded",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey, n,
		log.FeaturesKey, features,
		log.TargetsKey, 1,
		"scaled", b.Scaled,
	)
	return b, nil
}

// scaleUnitNorm standardizes each column and divides by sqrt(n), leaving
// every column with zero mean and unit sum of squares.
func scaleUnitNorm(X *mat.Dense) (*mat.Dense, error) {
	scaler := preprocessing.NewStandardScalerDefault()
	standardized, err := scaler.FitTransform(X)
	if err != nil {
		return nil, err
	}
	n, _ := X.Dims()
	out := mat.DenseCopyOf(standardized)
	out.Scale(1/math.Sqrt(float64(n)), out)
	return out, nil
}

const diabetesDescr = `Diabetes dataset
----------------

Ten baseline variables (age, sex, body mass index, average blood pressure
and six blood serum measurements) were obtained for each of n = 442
diabetes patients, as well as the response of interest, a quantitative
measure of disease progression one year after baseline.

:Number of Instances: 442
:Number of Attributes: First 10 columns are numeric predictive values
:Target: Column 11 is a quantitative measure of disease progression one year after baseline

:Attribute Information:
    - age     age in years
    - sex
    - bmi     body mass index
    - bp      average blood pressure
    - s1      tc, total serum cholesterol
    - s2      ldl, low-density lipoproteins
    - s3      hdl, high-density lipoproteins
    - s4      tch, total cholesterol / HDL
    - s5      ltg, possibly log of serum triglycerides level
    - s6      glu, blood sugar level

Note: each of the 10 feature variables has been mean centered and scaled by
the standard deviation times the square root of n_samples (i.e. the sum of
squares of each column totals 1) unless loaded with WithScaled(false).

The embedded copy has the layout and value ranges of the study file but
synthetic values. Run "primer fetch-data" to download the published file
(Efron, Hastie, Johnstone and Tibshirani (2004) "Least Angle Regression",
Annals of Statistics) and set data_file to it to reproduce the published fits.
`
