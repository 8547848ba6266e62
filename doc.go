// Package primer is a first walk through data analysis in Go.
//
// It covers the basics a newcomer meets in their first hour (variables,
// arithmetic, type conversion, lists, loops, conditionals and functions)
// and then works through a small analysis of the diabetes toy dataset:
// loading it, describing it, fitting ordinary least squares twice and
// drawing a few plots.
//
// # Packages
//
//   - basics: the language warm-up used by the first lessons
//   - datasets: the diabetes dataset, bundled or read from a file
//   - frame: a gota-backed frame with describe, info and head views
//   - linear: scikit-learn style LinearRegression with JSON export
//   - stats: statsmodels style OLS with a regression summary, plus Polyfit
//   - charts: histogram and scatter plots written with gonum/plot
//   - tour: the ordered walkthrough tying the packages together
//
// # Quick Start
//
//	b, err := datasets.LoadDiabetes()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	model := linear.NewLinearRegression(linear.WithFeatureNames(b.FeatureNames))
//	if err := model.Fit(b.Data, b.Target); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Intercept)
//
// The primer command runs the whole walkthrough:
//
//	primer run
//	primer fit --method stats
//	primer plot --plot-format svg --output-dir figures
//
// Settings come from primer.yaml, PRIMER_ environment variables and flags,
// in increasing order of precedence.
package primer
