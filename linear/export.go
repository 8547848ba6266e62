package linear

import (
	"encoding/json"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/primer/core/model"
	"github.com/YuminosukeSato/primer/pkg/errors"
)

const sklearnFormatVersion = "1.0"

// ExportJSON writes the fitted model in the JSON layout used by
// scikit-learn exports (coef_, intercept_, n_features_in_, fit_intercept).
func (lr *LinearRegression) ExportJSON(w io.Writer) error {
	if !lr.IsFitted() {
		return errors.NewNotFittedError("LinearRegression", "ExportJSON")
	}

	fitIntercept := lr.fitIntercept
	params, err := json.Marshal(model.SKLearnLinearRegressionParams{
		Coefficients: lr.Coefficients(),
		Intercept:    lr.Intercept,
		NFeatures:    lr.NFeaturesIn,
		FeatureNames: lr.FeatureNames,
		FitIntercept: &fitIntercept,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode LinearRegression params")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(model.SKLearnModel{
		ModelSpec: model.SKLearnModelSpec{
			Name:          "LinearRegression",
			FormatVersion: sklearnFormatVersion,
		},
		Params: params,
	})
}

// ExportFile writes ExportJSON output to path.
func (lr *LinearRegression) ExportFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return lr.ExportJSON(f)
}

// ImportJSON loads coefficients written by ExportJSON (or by scikit-learn)
// and marks the model as fitted.
func (lr *LinearRegression) ImportJSON(r io.Reader) error {
	m, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return err
	}
	params, err := model.LoadLinearRegressionParams(m)
	if err != nil {
		return err
	}
	if params.NFeatures == 0 {
		return errors.NewModelError("LinearRegression.ImportJSON", "no coefficients", errors.ErrEmptyData)
	}

	lr.NFeaturesIn = params.NFeatures
	lr.Coef = mat.NewVecDense(params.NFeatures, append([]float64(nil), params.Coefficients...))
	lr.Intercept = params.Intercept
	lr.FeatureNames = params.FeatureNames
	lr.fitIntercept = true
	if params.FitIntercept != nil {
		lr.fitIntercept = *params.FitIntercept
	}
	lr.MarkFitted(params.NFeatures)
	return nil
}
