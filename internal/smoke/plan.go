package smoke

import (
	"github.com/gammazero/deque"
	"github.com/moznion/go-optional"
)

// Plan is the ordered queue of steps a Runner drains.
type Plan struct {
	steps *deque.Deque[Step]
}

func NewPlan(steps ...Step) *Plan {
	p := &Plan{steps: deque.New[Step](len(steps))}
	for _, s := range steps {
		p.steps.PushBack(s)
	}
	return p
}

// DefaultPlan is signup, then login, then profile.
func DefaultPlan(c Credentials) *Plan {
	return NewPlan(
		SignupStep(c),
		LoginStep(c),
		ProfileStep(),
	)
}

func (p *Plan) Len() int {
	return p.steps.Len()
}

func (p *Plan) Next() optional.Option[Step] {
	if p.steps.Len() == 0 {
		return optional.None[Step]()
	}
	return optional.Some(p.steps.PopFront())
}
