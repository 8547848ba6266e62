package linear_test

import (
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/YuminosukeSato/primer/datasets"
	"github.com/YuminosukeSato/primer/linear"
)

func TestLinearRegression_DiabetesRaw(t *testing.T) {
	d, err := datasets.LoadDiabetes(datasets.WithScaled(false))
	if err != nil {
		t.Fatal(err)
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(d.Data, d.Target); err != nil {
		t.Fatal(err)
	}

	wantCoef := []float64{
		0.27770271033045635, -18.58623388092578, 4.97537894416803,
		0.9565567634574138, -0.922703738254948, 0.7324214597894764,
		-0.23243012539014649, -2.2785572787018653, 68.45867099609504,
		0.30014502784239927,
	}
	for i, got := range lr.Coefficients() {
		if math.Abs(got-wantCoef[i]) > 1e-6*math.Max(1, math.Abs(wantCoef[i])) {
			t.Errorf("coef[%s] = %v, want %v", d.FeatureNames[i], got, wantCoef[i])
		}
	}
	if math.Abs(lr.Intercept-(-281.41449992274795)) > 1e-5 {
		t.Errorf("intercept = %v", lr.Intercept)
	}

	score, err := lr.Score(d.Data, d.Target)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(score-0.5438389978737237) > 1e-9 {
		t.Errorf("R2 = %v", score)
	}
}

func TestLinearRegression_DiabetesScaledIntercept(t *testing.T) {
	d, err := datasets.LoadDiabetes()
	if err != nil {
		t.Fatal(err)
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(d.Data, d.Target); err != nil {
		t.Fatal(err)
	}

	// 中心化された特徴量では切片はyの平均になる
	if math.Abs(lr.Intercept-158.2443438914027) > 1e-6 {
		t.Errorf("intercept = %v, want mean(y)", lr.Intercept)
	}
	if math.Abs(lr.Coefficients()[8]-803.7067) > 1e-3 {
		t.Errorf("coef[s5] = %v", lr.Coefficients()[8])
	}
}

func TestLinearRegression_PublishedDiabetes(t *testing.T) {
	path := os.Getenv("PRIMER_DIABETES_FILE")
	if path == "" {
		t.Skip("PRIMER_DIABETES_FILE not set")
	}
	d, err := datasets.LoadDiabetesFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(d.Data, d.Target); err != nil {
		t.Fatal(err)
	}

	if math.Abs(lr.Intercept-152.13348416289594) > 1e-6 {
		t.Errorf("intercept = %v, want 152.133", lr.Intercept)
	}
	wantCoef := []float64{
		-10.00986189, -239.81564367, 519.84592005, 324.3846455, -792.17563855,
		476.73902101, 101.04326794, 177.06323767, 751.27369956, 67.62669218,
	}
	for i, got := range lr.Coefficients() {
		if math.Abs(got-wantCoef[i]) > 1e-3 {
			t.Errorf("coef[%s] = %v, want %v", d.FeatureNames[i], got, wantCoef[i])
		}
	}

	score, err := lr.Score(d.Data, d.Target)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(score-0.5177) > 5e-4 {
		t.Errorf("R2 = %v, want 0.518", score)
	}
}

func ExampleLinearRegression() {
	d, err := datasets.LoadDiabetes(datasets.WithScaled(false))
	if err != nil {
		fmt.Println(err)
		return
	}

	lr := linear.NewLinearRegression(linear.WithFeatureNames(d.FeatureNames))
	if err := lr.Fit(d.Data, d.Target); err != nil {
		fmt.Println(err)
		return
	}

	score, _ := lr.Score(d.Data, d.Target)
	fmt.Printf("intercept: %.2f\n", lr.Intercept)
	fmt.Printf("R2: %.4f\n", score)
	// Output:
	// intercept: -281.41
	// R2: 0.5438
}
