package linear

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithFitIntercept sets whether to calculate the intercept
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithCopyX sets whether to copy X before centering.
// With copyX=false and a *mat.Dense input, X is centered in place.
func WithCopyX(copy bool) Option {
	return func(lr *LinearRegression) {
		lr.copyX = copy
	}
}

// WithFeatureNames records column names, used when printing and exporting coefficients
func WithFeatureNames(names []string) Option {
	return func(lr *LinearRegression) {
		lr.FeatureNames = append([]string(nil), names...)
	}
}
