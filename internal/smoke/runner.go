package smoke

import (
	"context"
	"net/url"
	"webook-smoke/internal/session"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

type Result struct {
	Step     Step
	Response *session.Response
}

// Runner issues plan steps one by one on a single session. Statuses are
// printed, never judged.
type Runner struct {
	baseURL string
	session *session.Session
	printer *Printer
}

func NewRunner(baseURL string, s *session.Session, p *Printer) *Runner {
	return &Runner{
		baseURL: baseURL,
		session: s,
		printer: p,
	}
}

// Run drains the plan and stops at the first transport failure. Results
// gathered before the failure are returned along with it.
func (r *Runner) Run(ctx context.Context, plan *Plan) ([]Result, error) {
	results := make([]Result, 0, plan.Len())

	for next := plan.Next(); next.IsSome(); next = plan.Next() {
		step := next.Unwrap()

		if len(results) > 0 {
			if err := r.printer.Separator(); err != nil {
				return results, errors.Wrap(err, "print separator")
			}
		}

		target, err := url.JoinPath(r.baseURL, step.Path)
		if err != nil {
			return results, errors.Wrapf(err, "step %s: join %s with %s", step.Name, r.baseURL, step.Path)
		}

		zlog.Debug().Str("step", string(step.Name)).Str("method", step.Method).Str("url", target).Msg("sending")

		resp, err := r.session.Do(ctx, step.Method, target, step.Payload)
		if err != nil {
			return results, errors.Wrapf(err, "step %s", step.Name)
		}

		zlog.Info().
			Str("step", string(step.Name)).
			Int("status", resp.StatusCode).
			Dur("latency", resp.Latency).
			Int("cookies", len(r.session.Cookies(target))).
			Bool("token", r.session.Token().IsSome()).
			Msg("step done")

		if err := r.printer.Print(resp); err != nil {
			return results, errors.Wrapf(err, "print %s response", step.Name)
		}

		results = append(results, Result{Step: step, Response: resp})
	}

	return results, nil
}
