package model

import (
	"encoding/json"
	"io"

	"github.com/YuminosukeSato/primer/pkg/errors"
)

// SKLearnModelSpec はエクスポートされたモデルのメタデータ
type SKLearnModelSpec struct {
	Name          string `json:"name"`
	FormatVersion string `json:"format_version"`
}

// SKLearnModel はscikit-learnからエクスポートされたモデルのJSON表現
type SKLearnModel struct {
	ModelSpec SKLearnModelSpec `json:"model_spec"`
	Params    json.RawMessage  `json:"params"`
}

// SKLearnLinearRegressionParams はLinearRegressionのパラメータ
type SKLearnLinearRegressionParams struct {
	Coefficients []float64 `json:"coef_"`
	Intercept    float64   `json:"intercept_"`
	NFeatures    int       `json:"n_features_in_"`
	FeatureNames []string  `json:"feature_names_in_,omitempty"`
	// FitIntercept はnilの場合scikit-learnの既定値(true)として扱う
	FitIntercept *bool `json:"fit_intercept,omitempty"`
}

// LoadSKLearnModelFromReader はReaderからJSON形式のモデルを読み込む
func LoadSKLearnModelFromReader(r io.Reader) (*SKLearnModel, error) {
	var m SKLearnModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode sklearn model")
	}
	if m.ModelSpec.Name == "" {
		return nil, errors.NewValueError("LoadSKLearnModelFromReader", "missing model_spec.name")
	}
	return &m, nil
}

// LoadLinearRegressionParams はLinearRegressionのパラメータを取り出す
func LoadLinearRegressionParams(m *SKLearnModel) (*SKLearnLinearRegressionParams, error) {
	if m.ModelSpec.Name != "LinearRegression" {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			"expected LinearRegression model, got "+m.ModelSpec.Name)
	}

	var params SKLearnLinearRegressionParams
	if err := json.Unmarshal(m.Params, &params); err != nil {
		return nil, errors.Wrap(err, "failed to decode LinearRegression params")
	}
	if params.NFeatures != len(params.Coefficients) {
		return nil, errors.NewDimensionError("LoadLinearRegressionParams", params.NFeatures, len(params.Coefficients), 1)
	}
	return &params, nil
}
