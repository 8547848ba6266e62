package commands

import (
	"context"

	"github.com/YuminosukeSato/primer/internal/config"
	"github.com/YuminosukeSato/primer/pkg/log"
)

// Env is what the root command prepares for every subcommand.
type Env struct {
	Config *config.Config
	Logger log.Logger
}

type envKey struct{}

// WithEnv stores env in ctx.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// EnvFrom returns the Env stored in ctx, or defaults with a discarding
// logger when there is none (commands executed on their own in tests).
func EnvFrom(ctx context.Context) *Env {
	if ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok {
			return env
		}
	}
	return &Env{
		Config: config.Default(),
		Logger: log.NewNopLogger(),
	}
}
