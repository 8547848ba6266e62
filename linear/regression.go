package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/primer/core/model"
	"github.com/YuminosukeSato/primer/core/parallel"
	"github.com/YuminosukeSato/primer/metrics"
	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/pkg/log"
)

var _ model.Regressor = (*LinearRegression)(nil)

// LinearRegression はscikit-learn互換の最小二乗線形回帰モデル
type LinearRegression struct {
	model.BaseEstimator

	fitIntercept bool
	copyX        bool

	Coef         *mat.VecDense // 係数（特徴量の順）
	Intercept    float64       // 切片
	NFeaturesIn  int           // 学習時の特徴量の数
	FeatureNames []string      // 特徴量名（任意）
	Rank         int           // 中心化したXのランク
	Singular     []float64     // 中心化したXの特異値
}

// NewLinearRegression は新しい線形回帰モデルを作成する
//
// 使用例:
//
//	lr := linear.NewLinearRegression(linear.WithFitIntercept(true))
//	err := lr.Fit(X, y)
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept: true,
		copyX:        true,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる
//
// 切片を推定する場合はXとyを中心化してから最小二乗問題をQR分解で解き、
// 切片を yMean - xMean・coef として復元する。中心化したXがランク落ちの
// 場合（行数が列数より少ない場合を含む）はSVDによる最小ノルム解を返す。
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	start := time.Now()

	// 入力の検証
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", X, r, c); err != nil {
		return err
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", y, ry, cy); err != nil {
		return err
	}
	if lr.FeatureNames != nil && len(lr.FeatureNames) != c {
		return errors.NewDimensionError("LinearRegression.Fit", len(lr.FeatureNames), c, 1)
	}

	lr.Reset()
	xWork := lr.workingCopy(X, r, c)
	yWork := mat.DenseCopyOf(y)

	xMean := make([]float64, c)
	var yMean float64
	if lr.fitIntercept {
		for j := 0; j < c; j++ {
			xMean[j] = mat.Sum(xWork.ColView(j)) / float64(r)
		}
		yMean = mat.Sum(yWork.ColView(0)) / float64(r)

		parallel.For(r, r*c, func(start, end int) {
			for i := start; i < end; i++ {
				for j := 0; j < c; j++ {
					xWork.Set(i, j, xWork.At(i, j)-xMean[j])
				}
				yWork.Set(i, 0, yWork.At(i, 0)-yMean)
			}
		})
	}

	// ランクと特異値（scikit-learnのrank_/singular_に相当）
	var svd mat.SVD
	if ok := svd.Factorize(xWork, mat.SVDThin); !ok {
		return errors.NewModelError("LinearRegression.Fit", "SVD factorization failed", nil)
	}
	lr.Singular = svd.Values(nil)
	lr.Rank = 0
	if len(lr.Singular) > 0 {
		tol := lr.Singular[0] * float64(max(r, c)) * 2.220446049250313e-16
		for _, s := range lr.Singular {
			if s > tol {
				lr.Rank++
			}
		}
	}

	var coef mat.Dense
	switch {
	case lr.Rank == 0:
		// すべての列が定数: 係数0、切片はyの平均
		coef.ReuseAs(c, 1)
	case lr.Rank < c:
		// ランク落ちまたはr<c: scikit-learnと同じく最小ノルム解
		svd.SolveTo(&coef, yWork, lr.Rank)
		log.GetLoggerWithName("linear").Debug("rank deficient design matrix, using minimum-norm solution",
			log.FeaturesKey, c,
			"rank", lr.Rank,
		)
	default:
		if err := coef.Solve(xWork, yWork); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
				return errors.NewModelError("LinearRegression.Fit", "least squares solve failed", err)
			}
			// 悪条件だが解は得られている
			errors.Warn(errors.NewMulticollinearityWarning(float64(cond), mat.ConditionTolerance))
		}
	}

	lr.NFeaturesIn = c
	lr.Coef = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		lr.Coef.SetVec(j, coef.At(j, 0))
	}
	lr.Intercept = 0
	if lr.fitIntercept {
		lr.Intercept = yMean - mat.Dot(mat.NewVecDense(c, xMean), lr.Coef)
	}

	lr.MarkFitted(c)

	log.GetLoggerWithName("linear").Debug("LinearRegression fitted",
		log.ModelNameKey, "LinearRegression",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// workingCopy はcopyXに従ってXの作業用行列を返す
func (lr *LinearRegression) workingCopy(X mat.Matrix, r, c int) *mat.Dense {
	if !lr.copyX {
		if d, ok := X.(*mat.Dense); ok {
			return d
		}
	}
	xCopy := mat.NewDense(r, c, nil)
	xCopy.Copy(X)
	return xCopy
}

// Predict は入力データに対する予測を行う（n×1行列を返す）
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := lr.CheckInput("LinearRegression", "Predict", c); err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, errors.NewModelError("LinearRegression.Predict", "empty data", errors.ErrEmptyData)
	}

	// 予測: y = X * coef + intercept
	predictions := mat.NewDense(r, 1, nil)
	parallel.For(r, r*c, func(start, end int) {
		for i := start; i < end; i++ {
			pred := lr.Intercept
			for j := 0; j < c; j++ {
				pred += X.At(i, j) * lr.Coef.AtVec(j)
			}
			predictions.Set(i, 0, pred)
		}
	})

	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}

// Evaluation は学習データまたは検証データに対する誤差指標
type Evaluation struct {
	R2   float64
	MSE  float64
	RMSE float64
	MAE  float64
}

// Evaluate は予測値とyを比較してR²、MSE、RMSE、MAEを計算する
func (lr *LinearRegression) Evaluate(X, y mat.Matrix) (Evaluation, error) {
	r, c := y.Dims()
	if r == 0 {
		return Evaluation{}, errors.NewValueError("LinearRegression.Evaluate", "empty target")
	}
	if c != 1 {
		return Evaluation{}, errors.NewValueError("LinearRegression.Evaluate", "y must be a column vector (n×1 matrix)")
	}
	if xr, _ := X.Dims(); xr != r {
		return Evaluation{}, errors.NewDimensionError("LinearRegression.Evaluate", r, xr, 0)
	}
	yPred, err := lr.Predict(X)
	if err != nil {
		return Evaluation{}, err
	}
	yTrue := mat.NewVecDense(r, mat.Col(nil, 0, y))
	yHat := mat.NewVecDense(r, mat.Col(nil, 0, yPred))

	var ev Evaluation
	if ev.R2, err = metrics.R2Score(yTrue, yHat); err != nil {
		return Evaluation{}, err
	}
	if ev.MSE, err = metrics.MSE(yTrue, yHat); err != nil {
		return Evaluation{}, err
	}
	if ev.RMSE, err = metrics.RMSE(yTrue, yHat); err != nil {
		return Evaluation{}, err
	}
	if ev.MAE, err = metrics.MAE(yTrue, yHat); err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

// Coefficients は学習された係数を返す
func (lr *LinearRegression) Coefficients() []float64 {
	if lr.Coef == nil {
		return nil
	}
	out := make([]float64, lr.Coef.Len())
	for i := range out {
		out[i] = lr.Coef.AtVec(i)
	}
	return out
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// GetParams returns the parameters of the model
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.fitIntercept,
		"copy_X":        lr.copyX,
	}
}
