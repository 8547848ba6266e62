package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/primer/internal/config"
	"github.com/YuminosukeSato/primer/pkg/log"
	"github.com/YuminosukeSato/primer/tour"
)

func TestEnvFromDefaults(t *testing.T) {
	env := EnvFrom(context.Background())
	require.NotNil(t, env.Config)
	require.NotNil(t, env.Logger)
	assert.Equal(t, config.Default(), env.Config)
}

func TestEnvRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Bins = 3
	logger, _ := log.NewTestLogger(log.LevelDebug)

	env := EnvFrom(WithEnv(context.Background(), &Env{Config: cfg, Logger: logger}))
	assert.Equal(t, 3, env.Config.Bins)
	assert.Same(t, logger, env.Logger)
}

func TestBasicsLessonsExist(t *testing.T) {
	lessons, err := tour.Select(BasicsLessons...)
	require.NoError(t, err)
	assert.Len(t, lessons, len(BasicsLessons))
	for _, l := range lessons {
		assert.NotEqual(t, "dataset", l.Name)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "primer v1.2.3")
}

func TestLessonsCommand(t *testing.T) {
	cmd := NewLessonsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	for _, name := range tour.Names() {
		assert.Contains(t, out.String(), name)
	}
}

func TestFitCommandRejectsMethod(t *testing.T) {
	cmd := NewFitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--method", "ridge"})
	assert.Error(t, cmd.Execute())
}

func TestFitCommandML(t *testing.T) {
	cmd := NewFitCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--method", "ml"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "R-squared:")
	assert.Contains(t, out.String(), "RMSE:")
	assert.NotContains(t, out.String(), "OLS Regression Results")
}
