package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wrapgen/internal/diag"
	"wrapgen/internal/manifest"
	"wrapgen/internal/overload"
	"wrapgen/internal/trace"
)

// Entry summarises one overload set for the check report.
type Entry struct {
	Subject   string
	Overloads int
	Arities   []int
	Ambiguous []int
	Missing   string // first unknown argument type, if any
}

// CheckResult holds the findings of Check.
type CheckResult struct {
	Entries []Entry
	Bag     *diag.Bag
}

// Check collects and expands m, then reports every missing argument type and
// every arity shared by several signatures. Unlike Generate it does not stop
// at the first missing type.
func Check(ctx context.Context, m *manifest.Manifest, jobs, maxDiagnostics int) (*CheckResult, error) {
	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeRun, "check", 0)
	defer root.End("")

	mod, err := Collect(ctx, m, jobs)
	if err != nil {
		return nil, err
	}

	res := &CheckResult{Bag: diag.NewBag(maxDiagnostics)}
	rep := diag.BagReporter{Bag: res.Bag}
	for _, u := range checkTargets(mod) {
		set := u.callable.Fn.Overloads()
		entry := Entry{
			Subject:   u.name,
			Overloads: set.NrOverloads(),
			Arities:   set.Arities(),
			Ambiguous: set.AmbiguousArities(),
		}
		if err := u.callable.VerifyArguments(mod.Known); err != nil {
			var missing *overload.DependencyMissingError
			if errors.As(err, &missing) {
				entry.Missing = missing.Type
			}
			diag.ReportError(rep, u.name, err)
		}
		if len(entry.Ambiguous) > 0 {
			rep.Report(diag.AmbPositionalArity, diag.SevWarning, u.name,
				ambiguityMessage(entry.Ambiguous), ambiguityNotes(set, entry.Ambiguous))
		}
		res.Entries = append(res.Entries, entry)
	}
	res.Bag.Sort()
	root.WithExtra("diagnostics", fmt.Sprint(res.Bag.Len()))
	return res, nil
}

type checkTarget struct {
	name     string
	callable *Callable
}

func checkTargets(mod *Module) []checkTarget {
	var out []checkTarget
	for _, name := range overload.SortedNames(mod.Functions) {
		out = append(out, checkTarget{name: name, callable: mod.Functions[name]})
	}
	for _, cls := range mod.Classes {
		for _, name := range overload.SortedNames(cls.Methods) {
			out = append(out, checkTarget{name: cls.Name.Name + "." + name, callable: cls.Methods[name]})
		}
	}
	return out
}

func ambiguityMessage(arities []int) string {
	parts := make([]string, len(arities))
	for i, n := range arities {
		parts[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("positional calls with %s argument(s) are rejected as ambiguous; pass keywords to select an overload",
		strings.Join(parts, " or "))
}

func ambiguityNotes(set *overload.ArgumentOverloads, arities []int) []diag.Note {
	shared := make(map[int]bool, len(arities))
	for _, n := range arities {
		shared[n] = true
	}
	var notes []diag.Note
	for i, args := range set.ArgumentLists() {
		if shared[len(args)] {
			notes = append(notes, diag.Note{Subject: fmt.Sprintf("overload %d", i), Msg: args.String()})
		}
	}
	return notes
}
