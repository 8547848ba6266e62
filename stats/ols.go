// Package stats provides statistical models in the statsmodels style:
// ordinary least squares with inference results and polynomial fitting.
package stats

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/pkg/log"
)

// ConditionNumberThreshold is the condition number above which Fit reports
// a MulticollinearityWarning.
const ConditionNumberThreshold = 1000

// AddConstant はXの先頭に1の列を追加した行列を返す
func AddConstant(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, 1)
		for j := 0; j < c; j++ {
			out.Set(i, j+1, X.At(i, j))
		}
	}
	return out
}

// Option configures an OLS model.
type Option func(*OLS)

// WithEndogName sets the dependent variable name shown in the summary.
func WithEndogName(name string) Option {
	return func(m *OLS) {
		m.endogName = name
	}
}

// WithExogNames sets the regressor names. When the first column of X is a
// constant, names may omit it and "const" is prepended.
func WithExogNames(names []string) Option {
	return func(m *OLS) {
		m.exogNames = append([]string(nil), names...)
	}
}

// OLS は通常最小二乗法モデル
type OLS struct {
	endog *mat.VecDense
	exog  *mat.Dense

	endogName string
	exogNames []string

	kConstant int
}

// NewOLS はyとXからOLSモデルを作成する
//
// 切片を推定するにはAddConstantで定数列を追加すること。
func NewOLS(y mat.Vector, X mat.Matrix, opts ...Option) (*OLS, error) {
	n, k := X.Dims()
	if n == 0 || k == 0 {
		return nil, errors.NewModelError("NewOLS", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("NewOLS", n, y.Len(), 0)
	}
	if err := errors.CheckMatrix("NewOLS", X, n, k); err != nil {
		return nil, err
	}
	if err := errors.CheckMatrix("NewOLS", y, n, 1); err != nil {
		return nil, err
	}

	m := &OLS{
		endog:     mat.VecDenseCopyOf(y),
		exog:      mat.DenseCopyOf(X),
		endogName: "y",
	}
	for _, opt := range opts {
		opt(m)
	}

	constCol := constantColumn(m.exog)
	if constCol >= 0 {
		m.kConstant = 1
	}

	switch {
	case m.exogNames == nil:
		m.exogNames = make([]string, k)
		for j := range m.exogNames {
			if j == constCol {
				m.exogNames[j] = "const"
			} else {
				m.exogNames[j] = fmt.Sprintf("x%d", j+1)
			}
		}
	case len(m.exogNames) == k-1 && constCol == 0:
		m.exogNames = append([]string{"const"}, m.exogNames...)
	case len(m.exogNames) != k:
		return nil, errors.NewDimensionError("NewOLS", k, len(m.exogNames), 1)
	}

	return m, nil
}

// constantColumn は値が一定（かつ0でない）列の添字を返す。無ければ-1
func constantColumn(X *mat.Dense) int {
	n, k := X.Dims()
	for j := 0; j < k; j++ {
		first := X.At(0, j)
		if first == 0 {
			continue
		}
		constant := true
		for i := 1; i < n; i++ {
			if X.At(i, j) != first {
				constant = false
				break
			}
		}
		if constant {
			return j
		}
	}
	return -1
}

// Fit はモデルを推定して結果を返す
func (m *OLS) Fit() (*Results, error) {
	start := time.Now()
	n, k := m.exog.Dims()

	// 条件数と階数は特異値から求める
	var svd mat.SVD
	if ok := svd.Factorize(m.exog, mat.SVDNone); !ok {
		return nil, errors.NewModelError("OLS.Fit", "SVD factorization failed", nil)
	}
	sv := svd.Values(nil)
	rank := 0
	tol := sv[0] * float64(max(n, k)) * 2.220446049250313e-16
	for _, s := range sv {
		if s > tol {
			rank++
		}
	}
	if rank < k || n <= k {
		return nil, errors.NewModelError("OLS.Fit", "design matrix is rank deficient", errors.ErrSingularMatrix)
	}
	condNo := sv[0] / sv[len(sv)-1]

	// パラメータ推定（QR分解による最小二乗）
	var beta mat.VecDense
	if err := beta.SolveVec(m.exog, m.endog); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, errors.NewModelError("OLS.Fit", "least squares solve failed", err)
		}
	}

	var fitted mat.VecDense
	fitted.MulVec(m.exog, &beta)
	resid := mat.NewVecDense(n, nil)
	resid.SubVec(m.endog, &fitted)

	yRaw := m.endog.RawVector().Data
	residRaw := make([]float64, n)
	for i := range residRaw {
		residRaw[i] = resid.AtVec(i)
	}

	ssr := floats.Dot(residRaw, residRaw)
	yMean := floats.Sum(yRaw) / float64(n)
	var tss float64
	if m.kConstant == 1 {
		for _, v := range yRaw {
			tss += (v - yMean) * (v - yMean)
		}
	} else {
		tss = floats.Dot(yRaw, yRaw)
	}

	dfModel := float64(rank - m.kConstant)
	dfResid := float64(n - rank)

	r := &Results{
		model:     m,
		NObs:      n,
		DFModel:   dfModel,
		DFResid:   dfResid,
		SSR:       ssr,
		CondNo:    condNo,
		Residuals: residRaw,
		Params:    make([]float64, k),
		BSE:       make([]float64, k),
		TValues:   make([]float64, k),
		PValues:   make([]float64, k),
		ConfInt:   make([][2]float64, k),
	}
	for j := 0; j < k; j++ {
		r.Params[j] = beta.AtVec(j)
	}

	r.RSquared = 1 - ssr/tss
	r.AdjRSquared = 1 - float64(n-m.kConstant)/dfResid*(1-r.RSquared)
	r.Scale = ssr / dfResid

	// 共分散行列 scale * (X'X)^-1
	var xtx, xtxInv mat.Dense
	xtx.Mul(m.exog.T(), m.exog)
	if err := xtxInv.Inverse(&xtx); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, errors.NewModelError("OLS.Fit", "normal matrix is not invertible", errors.ErrSingularMatrix)
		}
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dfResid}
	q := tDist.Quantile(0.975)
	for j := 0; j < k; j++ {
		r.BSE[j] = math.Sqrt(r.Scale * xtxInv.At(j, j))
		r.TValues[j] = r.Params[j] / r.BSE[j]
		r.PValues[j] = 2 * tDist.Survival(math.Abs(r.TValues[j]))
		r.ConfInt[j] = [2]float64{r.Params[j] - q*r.BSE[j], r.Params[j] + q*r.BSE[j]}
	}

	if dfModel > 0 {
		ess := tss - ssr
		r.FValue = (ess / dfModel) / (ssr / dfResid)
		r.FPValue = distuv.F{D1: dfModel, D2: dfResid}.Survival(r.FValue)
	} else {
		r.FValue = math.NaN()
		r.FPValue = math.NaN()
	}

	nf := float64(n)
	r.LogLikelihood = -nf / 2 * (math.Log(2*math.Pi) + math.Log(ssr/nf) + 1)
	kParams := dfModel + float64(m.kConstant)
	r.AIC = -2*r.LogLikelihood + 2*kParams
	r.BIC = -2*r.LogLikelihood + math.Log(nf)*kParams

	if condNo > ConditionNumberThreshold {
		errors.Warn(errors.NewMulticollinearityWarning(condNo, ConditionNumberThreshold))
	}

	log.GetLoggerWithName("stats").Debug("OLS fitted",
		log.ModelNameKey, "OLS",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, k,
		log.R2ScoreKey, r.RSquared,
		log.ConditionNumberKey, condNo,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return r, nil
}

// Results はOLSの推定結果
type Results struct {
	model *OLS

	NObs    int
	DFModel float64
	DFResid float64

	Params  []float64
	BSE     []float64
	TValues []float64
	PValues []float64
	ConfInt [][2]float64 // 95%信頼区間

	RSquared    float64
	AdjRSquared float64
	FValue      float64
	FPValue     float64

	LogLikelihood float64
	AIC           float64
	BIC           float64

	SSR       float64
	Scale     float64
	CondNo    float64
	Residuals []float64
}

// Names returns the regressor names in parameter order.
func (r *Results) Names() []string {
	return append([]string(nil), r.model.exogNames...)
}

// Predict は新しいXに対する予測値を返す
func (r *Results) Predict(X mat.Matrix) ([]float64, error) {
	n, k := X.Dims()
	if k != len(r.Params) {
		return nil, errors.NewDimensionError("Results.Predict", len(r.Params), k, 1)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		row := mat.Row(nil, i, X)
		out[i] = floats.Dot(row, r.Params)
	}
	return out, nil
}

// DurbinWatson は残差の自己相関の検定統計量
func (r *Results) DurbinWatson() float64 {
	var num float64
	for i := 1; i < len(r.Residuals); i++ {
		d := r.Residuals[i] - r.Residuals[i-1]
		num += d * d
	}
	return num / floats.Dot(r.Residuals, r.Residuals)
}

// Moments returns the (biased) skewness and kurtosis of the residuals.
func (r *Results) Moments() (skew, kurtosis float64) {
	n := float64(len(r.Residuals))
	mean := floats.Sum(r.Residuals) / n
	var m2, m3, m4 float64
	for _, v := range r.Residuals {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m3 /= n
	m4 /= n
	return m3 / math.Pow(m2, 1.5), m4 / (m2 * m2)
}

// JarqueBera は残差の正規性検定の統計量とp値を返す
func (r *Results) JarqueBera() (jb, p float64) {
	skew, kurt := r.Moments()
	n := float64(len(r.Residuals))
	jb = n / 6 * (skew*skew + (kurt-3)*(kurt-3)/4)
	// 自由度2のカイ二乗分布の上側確率
	return jb, math.Exp(-jb / 2)
}
