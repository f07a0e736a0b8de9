package filters

import (
	"context"
	"fmt"
	"strings"

	"github.com/tgrouter/tgrouter/pkg/domain"
)

// CheckFunc decides whether an event passes a filter. It may record
// match data on the event (command arguments, regex submatches) but
// must not mutate the underlying update.
type CheckFunc func(ctx context.Context, e *domain.Event) (bool, error)

// Filter is a named predicate over incoming events. Filters compose
// with And, Or and Not; the composed name is kept readable so a
// handler's filter shows up in logs as e.g. "(text & !command)".
//
// The zero Filter matches everything.
type Filter struct {
	name  string
	check CheckFunc
}

// New builds a custom filter from a closure. The closure carries
// whatever data the filter needs.
func New(name string, check CheckFunc) Filter {
	return Filter{name: name, check: check}
}

func (f Filter) Name() string {
	if f.check == nil {
		return "all"
	}
	return f.name
}

func (f Filter) Check(ctx context.Context, e *domain.Event) (bool, error) {
	if f.check == nil {
		return true, nil
	}
	return f.check(ctx, e)
}

func (f Filter) String() string { return f.Name() }

// And matches when both f and g match. Evaluation short-circuits:
// g is not checked when f fails.
func (f Filter) And(g Filter) Filter { return And(f, g) }

// Or matches when either f or g matches. Evaluation short-circuits:
// g is not checked when f passes.
func (f Filter) Or(g Filter) Filter { return Or(f, g) }

// Not inverts f.
func (f Filter) Not() Filter { return Not(f) }

func And(fs ...Filter) Filter {
	return Filter{
		name: joinNames(" & ", fs),
		check: func(ctx context.Context, e *domain.Event) (bool, error) {
			for _, f := range fs {
				ok, err := f.Check(ctx, e)
				if err != nil {
					return false, fmt.Errorf("checking %q: %w", f.Name(), err)
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		},
	}
}

func Or(fs ...Filter) Filter {
	return Filter{
		name: joinNames(" | ", fs),
		check: func(ctx context.Context, e *domain.Event) (bool, error) {
			for _, f := range fs {
				ok, err := f.Check(ctx, e)
				if err != nil {
					return false, fmt.Errorf("checking %q: %w", f.Name(), err)
				}
				if ok {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

func Not(f Filter) Filter {
	return Filter{
		name: "!" + f.Name(),
		check: func(ctx context.Context, e *domain.Event) (bool, error) {
			ok, err := f.Check(ctx, e)
			if err != nil {
				return false, fmt.Errorf("checking %q: %w", f.Name(), err)
			}
			return !ok, nil
		},
	}
}

func joinNames(sep string, fs []Filter) string {
	names := make([]string, 0, len(fs))
	for _, f := range fs {
		names = append(names, f.Name())
	}
	return "(" + strings.Join(names, sep) + ")"
}
