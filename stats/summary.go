package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary writes a statsmodels-like report of the fit to w: model
// information and goodness of fit, the coefficient table, residual
// diagnostics and notes. The report is written in a single Write.
func (r *Results) Summary(w io.Writer) error {
	var b strings.Builder
	b.WriteString("OLS Regression Results\n")

	top := newSummaryTable()
	top.AppendRow(table.Row{"Dep. Variable:", r.model.endogName, "R-squared:", fmt.Sprintf("%.3f", r.RSquared)})
	top.AppendRow(table.Row{"Model:", "OLS", "Adj. R-squared:", fmt.Sprintf("%.3f", r.AdjRSquared)})
	top.AppendRow(table.Row{"Method:", "Least Squares", "F-statistic:", fmt.Sprintf("%.2f", r.FValue)})
	top.AppendRow(table.Row{"No. Observations:", r.NObs, "Prob (F-statistic):", fmt.Sprintf("%.2e", r.FPValue)})
	top.AppendRow(table.Row{"Df Residuals:", fmt.Sprintf("%.0f", r.DFResid), "Log-Likelihood:", fmt.Sprintf("%.2f", r.LogLikelihood)})
	top.AppendRow(table.Row{"Df Model:", fmt.Sprintf("%.0f", r.DFModel), "AIC:", fmt.Sprintf("%.1f", r.AIC)})
	top.AppendRow(table.Row{"Covariance Type:", "nonrobust", "BIC:", fmt.Sprintf("%.1f", r.BIC)})
	writeTable(&b, top)

	coef := newSummaryTable()
	coef.AppendHeader(table.Row{"", "coef", "std err", "t", "P>|t|", "[0.025", "0.975]"})
	for j, name := range r.model.exogNames {
		coef.AppendRow(table.Row{
			name,
			fmt.Sprintf("%.4f", r.Params[j]),
			fmt.Sprintf("%.3f", r.BSE[j]),
			fmt.Sprintf("%.3f", r.TValues[j]),
			fmt.Sprintf("%.3f", r.PValues[j]),
			fmt.Sprintf("%.3f", r.ConfInt[j][0]),
			fmt.Sprintf("%.3f", r.ConfInt[j][1]),
		})
	}
	writeTable(&b, coef)

	skew, kurt := r.Moments()
	jb, jbp := r.JarqueBera()
	diag := newSummaryTable()
	diag.AppendRow(table.Row{"Durbin-Watson:", fmt.Sprintf("%.3f", r.DurbinWatson()), "Jarque-Bera (JB):", fmt.Sprintf("%.3f", jb)})
	diag.AppendRow(table.Row{"Skew:", fmt.Sprintf("%.3f", skew), "Prob(JB):", fmt.Sprintf("%.3g", jbp)})
	diag.AppendRow(table.Row{"Kurtosis:", fmt.Sprintf("%.3f", kurt), "Cond. No.", fmt.Sprintf("%.3g", r.CondNo)})
	writeTable(&b, diag)

	b.WriteString("\nNotes:\n")
	b.WriteString("[1] Standard Errors assume that the covariance matrix of the errors is correctly specified.\n")
	if r.CondNo > ConditionNumberThreshold {
		fmt.Fprintf(&b, "[2] The condition number is large, %.3g. This might indicate that there are\n"+
			"strong multicollinearity or other numerical problems.\n", r.CondNo)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func newSummaryTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}

func writeTable(b *strings.Builder, t table.Writer) {
	b.WriteString(t.Render())
	b.WriteByte('\n')
}
