package model

import "github.com/YuminosukeSato/primer/pkg/errors"

// BaseEstimator は学習済みかどうかと学習時の特徴量数を記録する。
// 各モデルに埋め込んで使う。
type BaseEstimator struct {
	fitted    bool
	nFeatures int
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.fitted
}

// MarkFitted はnFeatures個の特徴量で学習済みになったことを記録する
func (e *BaseEstimator) MarkFitted(nFeatures int) {
	e.fitted = true
	e.nFeatures = nFeatures
}

// Reset は学習前の状態に戻す。Fitの先頭で呼び、失敗した再学習が
// 古い係数を学習済みとして残さないようにする。
func (e *BaseEstimator) Reset() {
	e.fitted = false
	e.nFeatures = 0
}

// CheckInput は学習済みであることと、入力の列数が学習時と一致することを確認する。
// modelName と method はエラーメッセージに使われる。
func (e *BaseEstimator) CheckInput(modelName, method string, cols int) error {
	if !e.fitted {
		return errors.NewNotFittedError(modelName, method)
	}
	if cols != e.nFeatures {
		return errors.NewDimensionError(modelName+"."+method, e.nFeatures, cols, 1)
	}
	return nil
}
