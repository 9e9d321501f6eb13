// Package smoke drives the signup, login and profile calls against a users
// service and prints every response for manual inspection.
package smoke

import (
	"context"
	"io"
	"webook-smoke/internal/configs"
	"webook-smoke/internal/session"
)

// Execute runs the default plan with a fresh session. Only transport
// failures come back as errors.
func Execute(ctx context.Context, cfg *configs.SmokeConfig, out io.Writer) ([]Result, error) {
	s, err := session.New(&cfg.Session)
	if err != nil {
		return nil, err
	}

	runner := NewRunner(cfg.BaseURL, s, NewPrinter(out))
	return runner.Run(ctx, DefaultPlan(CredentialsFromConfig(cfg)))
}
