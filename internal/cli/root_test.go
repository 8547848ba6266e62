package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/primer/pkg/errors"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRootCommandMetadata(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "primer", cmd.Use)
	assert.True(t, cmd.SilenceUsage)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"run", "lessons", "describe", "fit", "plot", "basics", "fetch-data", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "primer v"+Version)
}

func TestLessons(t *testing.T) {
	out, _, err := execute(t, "lessons")
	require.NoError(t, err)
	assert.Contains(t, out, "ols-stats")
	assert.Contains(t, out, "Type conversion")
}

func TestBasics(t *testing.T) {
	out, stderr, err := execute(t, "basics", "--log-format", "json", "--log-level", "warn")
	require.NoError(t, err)

	assert.Contains(t, out, "We have a total sum of: 55.")
	assert.Contains(t, out, "Much gold!")
	assert.Contains(t, out, `error: primer: could not convert string to float`)
	assert.NotContains(t, out, "Diabetes dataset")

	// 期待されたエラーはJSONのwarnレコードになる
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.SplitN([]byte(stderr), []byte("\n"), 2)[0], &rec), stderr)
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "conversion", rec["tour.lesson"])
}

func TestRunSelectedLessons(t *testing.T) {
	out, _, err := execute(t, "run", "loop", "function")
	require.NoError(t, err)
	assert.Contains(t, out, "== 1. Loops ==")
	assert.Contains(t, out, "Je m'appelle Saruman")
}

func TestRunRejectsUnknownLesson(t *testing.T) {
	_, stderr, err := execute(t, "run", "nope")
	require.Error(t, err)
	assert.Contains(t, stderr, "Error:")
}

func TestDescribe(t *testing.T) {
	out, _, err := execute(t, "describe", "--head-rows", "3", "--markdown", "--scaled=false")
	require.NoError(t, err)
	assert.Contains(t, out, "count")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "RangeIndex: 442 entries, 0 to 441")
	assert.Contains(t, out, "| 2 |")
}

func TestFit(t *testing.T) {
	dir := t.TempDir()
	export := filepath.Join(dir, "model.json")

	out, _, err := execute(t, "fit", "--method", "both", "--export", export, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "intercept")
	assert.Contains(t, out, "OLS Regression Results")

	data, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"n_features_in_": 10`)
}

func TestFitValidation(t *testing.T) {
	_, _, err := execute(t, "fit", "--method", "bayes")
	var ve *errors.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "method", ve.ParamName)

	_, _, err = execute(t, "fit", "--method", "stats", "--export", "x.json")
	require.Error(t, err)
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, "plot", "--output-dir", dir, "--plot-format", "svg", "--bins", "5")
	require.NoError(t, err)

	for _, name := range []string{"hist_bmi.svg", "scatter_age_bmi.svg", "scatter_age_bmi_fit.svg"} {
		assert.FileExists(t, filepath.Join(dir, name))
		assert.Contains(t, out, name)
	}
}

func TestInvalidConfigFlag(t *testing.T) {
	_, _, err := execute(t, "basics", "--plot-format", "gif")
	var ve *errors.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "plot_format", ve.ParamName)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.yaml")
	outDir := filepath.Join(dir, "figs")
	require.NoError(t, os.WriteFile(cfgPath, []byte("plot_format: pdf\noutput_dir: "+outDir+"\n"), 0o644))

	_, _, err := execute(t, "plot", "--config", cfgPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "hist_bmi.pdf"))
}

func TestFetchData(t *testing.T) {
	tab, err := os.ReadFile(filepath.Join("..", "..", "datasets", "data", "diabetes.tab.txt"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(tab)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "data", "diabetes.tab.txt")
	out, _, err := execute(t, "fetch-data", "--url", srv.URL, "--dest", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+dest+" (442 rows)")
	assert.Contains(t, out, "--data-file "+dest)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, tab, got)

	out, _, err = execute(t, "describe", "--data-file", dest, "--scaled=false")
	require.NoError(t, err)
	assert.Contains(t, out, "RangeIndex: 442 entries, 0 to 441")
}

func TestFetchDataRejectsBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "diabetes.tab.txt")
	_, stderr, err := execute(t, "fetch-data", "--url", srv.URL, "--dest", dest)
	require.Error(t, err)
	assert.Contains(t, stderr, "unexpected status")
	assert.NoFileExists(t, dest)
}
