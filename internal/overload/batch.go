package overload

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"wrapgen/internal/decl"
)

// Instantiable is a callable that can be copied and expanded in place.
type Instantiable[F any] interface {
	Clone() F
	ExpandTemplate(ts decl.TemplateSubstitution)
}

// Verifiable checks its argument types against a known-type set.
type Verifiable interface {
	VerifyArguments(known TypeSet) error
}

// ExpandMethodTemplate returns a new table with the same keys whose values
// are expanded copies. methods is not modified.
func ExpandMethodTemplate[F Instantiable[F]](methods map[string]F, ts decl.TemplateSubstitution) map[string]F {
	result := make(map[string]F, len(methods))
	for name, method := range methods {
		inst := method.Clone()
		inst.ExpandTemplate(ts)
		result[name] = inst
	}
	return result
}

// VerifyAll verifies every entry in key order and stops at the first failure.
func VerifyAll[F Verifiable](known TypeSet, table map[string]F) error {
	for _, name := range SortedNames(table) {
		if err := table[name].VerifyArguments(known); err != nil {
			return err
		}
	}
	return nil
}

// ExpandParallel instantiates methods once per substitution. Results keep
// the order of subs. Entries share no mutable state, so each substitution
// runs on its own goroutine; jobs <= 0 means no limit.
func ExpandParallel[F Instantiable[F]](ctx context.Context, methods map[string]F, subs []decl.TemplateSubstitution, jobs int) ([]map[string]F, error) {
	results := make([]map[string]F, len(subs))
	if len(subs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(min(jobs, len(subs)))
	}
	for i, ts := range subs {
		i, ts := i, ts
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// index i is unique per goroutine, no lock needed
			results[i] = ExpandMethodTemplate(methods, ts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SortedNames lists the keys of table in lexical order.
func SortedNames[F any](table map[string]F) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
